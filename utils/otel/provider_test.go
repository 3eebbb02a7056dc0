package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalURL(t *testing.T) {
	assert.Equal(t, "http://collector:4318/v1/traces", signalURL("http://collector:4318", "traces"))
	assert.Equal(t, "https://otel.example.com/v1/logs", signalURL("https://otel.example.com/", "logs"))
	assert.True(t, plaintext("http://collector:4318"))
	assert.False(t, plaintext("https://otel.example.com"))
}

func TestInitProvider_Disabled(t *testing.T) {
	shutdown, err := InitProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.NotNil(t, Tracer())
}
