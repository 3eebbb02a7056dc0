package newsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsbias/domain"
)

func TestClient_Everything(t *testing.T) {
	var gotQuery map[string]string
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":1,"articles":[{"source":{"id":"cnn","name":"CNN"},"title":"Senate vote","description":"desc","url":"https://cnn.com/a","publishedAt":"2024-05-01T10:00:00Z"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v2/everything", "secret", 5*time.Second, nil)
	resp, err := c.Everything(context.Background(), EverythingParams{
		Query:    `politics OR "white house"`,
		Domains:  "cnn.com",
		Language: "en",
		SortBy:   "publishedAt",
		PageSize: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, map[string]string{
		"q":        `politics OR "white house"`,
		"domains":  "cnn.com",
		"language": "en",
		"sortBy":   "publishedAt",
		"pageSize": "10",
	}, gotQuery)
	require.Len(t, resp.Articles, 1)
	assert.Equal(t, "Senate vote", resp.Articles[0].Title)
	assert.Equal(t, "CNN", resp.Articles[0].Source.Name)
}

func TestClient_Everything_ErrorStatus(t *testing.T) {
	tests := map[string]struct {
		status   int
		body     string
		wantCode string
		wantMsg  string
	}{
		"json error body": {
			status:   http.StatusUnauthorized,
			body:     `{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid."}`,
			wantCode: "apiKeyInvalid",
			wantMsg:  "Your API key is invalid.",
		},
		"rate limited": {
			status:   http.StatusTooManyRequests,
			body:     `{"status":"error","code":"rateLimited","message":"slow down"}`,
			wantCode: "rateLimited",
			wantMsg:  "slow down",
		},
		"non json body": {
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			wantMsg: "API request failed with status: 502 Bad Gateway",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "k", time.Second, nil)
			_, err := c.Everything(context.Background(), EverythingParams{Domains: "cnn.com"})

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
			var ue *domain.UpstreamError
			require.True(t, errors.As(err, &ue))
			assert.Equal(t, tc.status, ue.StatusCode)
			assert.Equal(t, tc.wantCode, ue.Code)
			assert.Equal(t, tc.wantMsg, ue.Message)
		})
	}
}

func TestClient_Everything_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "k", time.Second, nil)
	_, err := c.Everything(context.Background(), EverythingParams{})

	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_Everything_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second, nil)
	_, err := c.Everything(context.Background(), EverythingParams{})

	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
