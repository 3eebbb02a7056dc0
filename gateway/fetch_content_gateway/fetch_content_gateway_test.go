package fetch_content_gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsbias/domain"
	"newsbias/utils/metrics"
	"newsbias/utils/rate_limiter"
	"newsbias/utils/security"
)

const paragraph = "The committee released its findings on Thursday after a months-long inquiry."

func newGateway(client *http.Client, extractor string) *FetchContentGateway {
	return NewFetchContentGatewayWithDeps(
		rate_limiter.NewHostRateLimiter(time.Millisecond),
		client,
		Options{MinParagraphLength: 50, Extractor: extractor, UserAgent: "test-agent"},
		nil,
	)
}

func TestFetchContentGateway_FetchContent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><nav><p>` + strings.Repeat("menu item ", 10) + `</p></nav>
<p>` + paragraph + `</p><p>short</p><p>` + paragraph + ` Again.</p></body></html>`))
	}))
	defer srv.Close()

	gw := newGateway(srv.Client(), ExtractorParagraphs)
	content, err := gw.FetchContent(context.Background(), srv.URL+"/story")
	require.NoError(t, err)
	require.NotNil(t, content)

	assert.Equal(t, paragraph+" "+paragraph+" Again.", *content)
	assert.Equal(t, "test-agent", gotUA)
}

func TestFetchContentGateway_NoQualifyingParagraphs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>tiny</p><div>` + paragraph + `</div></body></html>`))
	}))
	defer srv.Close()

	gw := newGateway(srv.Client(), ExtractorParagraphs)
	content, err := gw.FetchContent(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Nil(t, content)
}

func TestFetchContentGateway_Errors(t *testing.T) {
	tests := map[string]struct {
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		"not found": {
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			check: func(t *testing.T, err error) {
				var httpErr *domain.ExternalHTTPError
				require.True(t, errors.As(err, &httpErr))
				assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
			},
		},
		"server error": {
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) },
			check: func(t *testing.T, err error) {
				var httpErr *domain.ExternalHTTPError
				require.True(t, errors.As(err, &httpErr))
				assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			gw := newGateway(srv.Client(), ExtractorParagraphs)
			_, err := gw.FetchContent(context.Background(), srv.URL)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrContentFetchFailed)
			tc.check(t, err)
		})
	}
}

func TestFetchContentGateway_InvalidURL(t *testing.T) {
	gw := newGateway(http.DefaultClient, ExtractorParagraphs)

	for _, u := range []string{"://bad-url", "ftp://example.com/file", "javascript:alert(1)"} {
		_, err := gw.FetchContent(context.Background(), u)
		assert.ErrorIs(t, err, domain.ErrContentFetchFailed, u)
	}
}

func TestFetchContentGateway_TransportError(t *testing.T) {
	rt := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, io.ErrUnexpectedEOF
	})
	gw := newGateway(&http.Client{Transport: rt}, ExtractorParagraphs)

	_, err := gw.FetchContent(context.Background(), "https://example.com/a")
	assert.ErrorIs(t, err, domain.ErrContentFetchFailed)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestFetchContentGateway_BodyLimit(t *testing.T) {
	rt := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		body := "<p>" + paragraph + "</p>" + strings.Repeat("x", 1000) + "<p>" + paragraph + " Late.</p>"
		resp := &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(body)), Header: make(http.Header)}
		resp.Header.Set("Content-Type", "text/html")
		return resp, nil
	})
	gw := NewFetchContentGatewayWithDeps(nil, &http.Client{Transport: rt},
		Options{MaxBodyBytes: 200, MinParagraphLength: 50}, nil)
	truncated := metrics.PageFetches.WithLabelValues("truncated")
	before := testutil.ToFloat64(truncated)

	content, err := gw.FetchContent(context.Background(), "https://example.com/a")
	require.NoError(t, err)
	require.NotNil(t, content)
	assert.Equal(t, paragraph, *content)
	assert.Equal(t, before+1, testutil.ToFloat64(truncated))
}

func TestFetchContentGateway_BodyAtLimitIsNotTruncated(t *testing.T) {
	body := "<p>" + paragraph + "</p>"
	rt := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		resp := &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(body)), Header: make(http.Header)}
		resp.Header.Set("Content-Type", "text/html")
		return resp, nil
	})
	gw := NewFetchContentGatewayWithDeps(nil, &http.Client{Transport: rt},
		Options{MaxBodyBytes: int64(len(body)), MinParagraphLength: 50}, nil)
	truncated := metrics.PageFetches.WithLabelValues("truncated")
	before := testutil.ToFloat64(truncated)

	content, err := gw.FetchContent(context.Background(), "https://example.com/a")
	require.NoError(t, err)
	require.NotNil(t, content)
	assert.Equal(t, paragraph, *content)
	assert.Equal(t, before, testutil.ToFloat64(truncated))
}

func TestFetchContentGateway_MislabelledContentTypeIsParsed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte(`<html><body><p>` + paragraph + `</p></body></html>`))
	}))
	defer srv.Close()
	unexpected := metrics.PageFetches.WithLabelValues("unexpected_content_type")
	before := testutil.ToFloat64(unexpected)

	gw := newGateway(srv.Client(), ExtractorParagraphs)
	content, err := gw.FetchContent(context.Background(), srv.URL)

	require.NoError(t, err)
	require.NotNil(t, content)
	assert.Equal(t, paragraph, *content)
	assert.Equal(t, before+1, testutil.ToFloat64(unexpected))
}

func TestFetchContentGateway_BinaryBodyIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj"))
	}))
	defer srv.Close()

	gw := newGateway(srv.Client(), ExtractorParagraphs)
	content, err := gw.FetchContent(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Nil(t, content)
}

func TestNewFetchContentGateway_RefusesInternalAddresses(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<p>INTERNAL-SECRET: admin credentials for the metadata service live here.</p>`))
	}))
	defer srv.Close()

	gw := NewFetchContentGateway(nil, 2*time.Second, Options{MinParagraphLength: 50}, nil)

	for _, u := range []string{
		srv.URL + "/latest/meta-data",
		"http://127.0.0.1/latest/meta-data",
		"http://169.254.169.254/",
		"http://10.0.0.7/admin",
		"http://localhost/",
	} {
		content, err := gw.FetchContent(context.Background(), u)
		assert.Nil(t, content, u)
		assert.ErrorIs(t, err, domain.ErrContentFetchFailed, u)
		var vErr *security.ValidationError
		assert.True(t, errors.As(err, &vErr), u)
	}
	assert.Zero(t, hits.Load())
}

func TestNewFetchContentGateway_RefusesRedirectToInternalAddress(t *testing.T) {
	gw := NewFetchContentGateway(nil, 2*time.Second, Options{MinParagraphLength: 50}, nil)
	require.NotNil(t, gw.httpClient.CheckRedirect)

	req, err := http.NewRequest(http.MethodGet, "http://169.254.169.254/latest/meta-data/", nil)
	require.NoError(t, err)
	assert.Error(t, gw.httpClient.CheckRedirect(req, []*http.Request{{}}))
}

func TestFetchContentGateway_Readability(t *testing.T) {
	rt := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		var b strings.Builder
		b.WriteString("<html><head><title>Story</title></head><body><header>Site</header><article>")
		for i := 0; i < 6; i++ {
			b.WriteString("<p>" + paragraph + " " + paragraph + "</p>")
		}
		b.WriteString("</article></body></html>")
		resp := &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(b.String())), Header: make(http.Header)}
		resp.Header.Set("Content-Type", "text/html; charset=utf-8")
		return resp, nil
	})
	gw := newGateway(&http.Client{Transport: rt}, ExtractorReadability)

	content, err := gw.FetchContent(context.Background(), "https://example.com/story")
	require.NoError(t, err)
	require.NotNil(t, content)
	assert.Contains(t, *content, "committee released")
}

// roundTripperFunc is a helper to stub http.RoundTripper
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
