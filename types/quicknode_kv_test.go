package types

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQuickNodeKVProvider_Initialize(t *testing.T) {
	p := NewQuickNodeKVProvider()
	require.Error(t, p.Initialize(map[string]interface{}{}))
	require.NoError(t, p.Initialize(map[string]interface{}{"api_key": "key", "base_url": "http://localhost/"}))
	require.Equal(t, "http://localhost", p.listsURL)

	require.Error(t, p.Initialize(map[string]interface{}{"api_key": "key", "timeout_seconds": "soon"}))
	require.NoError(t, p.Initialize(map[string]interface{}{"api_key": "key", "timeout_seconds": 3}))
	require.Equal(t, 3*time.Second, p.httpClient.Timeout)
}

func TestQuickNodeKVProvider_FetchList(t *testing.T) {
	var gotKey, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"data":{"items":["21/` + testEmitterHex + `", "  ", ""]}}`))
	}))
	defer server.Close()

	p := NewQuickNodeKVProvider()
	require.NoError(t, p.Initialize(map[string]interface{}{"api_key": "secret", "base_url": server.URL}))

	items, err := p.FetchList(context.Background(), "emitters")
	require.NoError(t, err)
	require.Equal(t, []string{"21/" + testEmitterHex}, items)
	require.Equal(t, "secret", gotKey)
	require.Equal(t, "/emitters", gotPath)

	_, err = p.FetchList(context.Background(), "")
	require.Error(t, err)
	require.NoError(t, p.Close())
}

func TestQuickNodeKVProvider_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	p := NewQuickNodeKVProvider()
	require.NoError(t, p.Initialize(map[string]interface{}{"api_key": "k", "base_url": server.URL}))
	_, err := p.FetchList(context.Background(), "emitters")
	require.ErrorContains(t, err, "401")
}

func TestQuickNodeKVProvider_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	p := NewQuickNodeKVProvider()
	require.NoError(t, p.Initialize(map[string]interface{}{"api_key": "k", "base_url": server.URL}))
	_, err := p.FetchList(context.Background(), "emitters")
	require.ErrorIs(t, err, ErrListNotFound)
}
