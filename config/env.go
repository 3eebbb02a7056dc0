package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// envLoader fills struct fields from `env:"NAME" default:"value"` tags.
type envLoader struct {
	lookup func(string) (string, bool)
	errs   []error
}

// loadFromEnvironment reports every malformed variable at once rather than stopping at the first.
func loadFromEnvironment(config *Config) error {
	return loadWith(config, os.LookupEnv)
}

func loadWith(config *Config, lookup func(string) (string, bool)) error {
	l := &envLoader{lookup: lookup}
	l.walk(reflect.ValueOf(config).Elem())
	return errors.Join(l.errs...)
}

func (l *envLoader) walk(v reflect.Value) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field, structField := v.Field(i), t.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			l.walk(field)
			continue
		}

		name := structField.Tag.Get("env")
		if name == "" {
			continue
		}
		raw, ok := l.lookup(name)
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			raw = structField.Tag.Get("default")
		}
		if raw == "" {
			continue
		}
		if err := assign(field, raw); err != nil {
			l.errs = append(l.errs, fmt.Errorf("%s=%q: %w", name, raw, err))
		}
	}
}

func assign(field reflect.Value, raw string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return errors.New("not a duration (e.g. 30s, 1h)")
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.New("not a boolean")
		}
		field.SetBool(b)
	case reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errors.New("not a number")
		}
		field.SetFloat(f)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return errors.New("not an integer")
		}
		field.SetInt(n)
	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}
	return nil
}
