package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON_HeadersAndDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/check", r.URL.Path)
		assert.Equal(t, "k1", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "per-call", r.Header.Get("X-Trace"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", 0, WithHeader("X-Api-Key", "k1"))
	require.NoError(t, err)

	var out struct {
		OK bool `json:"ok"`
	}
	err = c.PostJSON(context.Background(), "v1/check", map[string]string{"X-Trace": "per-call"}, map[string]string{"a": "b"}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestDoJSON_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(" nope "))
	}))
	defer srv.Close()

	c, err := New(srv.URL, 0)
	require.NoError(t, err)

	err = c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	assert.Equal(t, "nope", httpErr.Body)
	assert.True(t, httpErr.Denied())
}

func TestResolveURL(t *testing.T) {
	c, err := New("", 0)
	require.NoError(t, err)

	_, err = c.resolveURL("/relative")
	assert.Error(t, err)

	u, err := c.resolveURL("https://odin.example/v1")
	require.NoError(t, err)
	assert.Equal(t, "https://odin.example/v1", u)

	_, err = New("not a url", 0)
	assert.Error(t, err)
}
