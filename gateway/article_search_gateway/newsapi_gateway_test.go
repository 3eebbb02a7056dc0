package article_search_gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsbias/domain"
	"newsbias/driver/newsapi"
)

func TestKeywordQuery(t *testing.T) {
	assert.Equal(t, `politics OR "white house" OR vote`, KeywordQuery([]string{"politics", "white house", " ", "vote"}))
	assert.Equal(t, "", KeywordQuery(nil))
}

func newNewsAPIServer(t *testing.T, body string, seen *url.Values) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = r.URL.Query()
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewsAPIGateway_SearchArticles_Scoped(t *testing.T) {
	var seen url.Values
	srv := newNewsAPIServer(t, `{"status":"ok","articles":[
		{"title":"Senate vote","url":"https://cnn.com/a","description":"<p>The <b>Senate</b> &amp; House</p>","publishedAt":"2024-05-01T10:00:00Z"},
		{"title":"[Removed]","url":"https://removed.com","description":"[Removed]"},
		{"title":"No date","url":"https://cnn.com/b","publishedAt":"yesterday"}
	]}`, &seen)

	gw := NewNewsAPIGateway(newsapi.NewClient(srv.URL, "k", time.Second, nil), "en", 10, nil)
	got, err := gw.SearchArticles(context.Background(), domain.SearchQuery{
		Domain:   "cnn.com",
		Keywords: []string{"politics", "white house"},
	})
	require.NoError(t, err)

	assert.Equal(t, "cnn.com", seen.Get("domains"))
	assert.Equal(t, `politics OR "white house"`, seen.Get("q"))
	assert.Equal(t, "en", seen.Get("language"))
	assert.Equal(t, "publishedAt", seen.Get("sortBy"))
	assert.Equal(t, "10", seen.Get("pageSize"))

	require.Len(t, got, 2)
	assert.Equal(t, "The Senate & House", got[0].Description)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), got[0].PublishedAt)
	assert.True(t, got[1].PublishedAt.IsZero())
}

func TestNewsAPIGateway_SearchArticles_Broadened(t *testing.T) {
	var seen url.Values
	srv := newNewsAPIServer(t, `{"status":"ok","articles":[]}`, &seen)

	gw := NewNewsAPIGateway(newsapi.NewClient(srv.URL, "k", time.Second, nil), "en", 10, nil)
	got, err := gw.SearchArticles(context.Background(), domain.SearchQuery{
		Domain:    "foxnews.com",
		Keywords:  []string{"politics"},
		Broadened: true,
	})
	require.NoError(t, err)

	assert.Empty(t, got)
	assert.Equal(t, "site:foxnews.com", seen.Get("q"))
	assert.False(t, seen.Has("domains"))
}

func TestNewsAPIGateway_SearchArticles_Upstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"bad"}`))
	}))
	defer srv.Close()

	gw := NewNewsAPIGateway(newsapi.NewClient(srv.URL, "k", time.Second, nil), "en", 10, nil)
	_, err := gw.SearchArticles(context.Background(), domain.SearchQuery{Domain: "cnn.com"})

	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
