package shortener

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitly_Shorten(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req shortenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://example.com/a?utm_source=vk", req.LongURL)
		assert.Equal(t, "bit.ly", req.Domain)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(shortenResponse{Link: "https://bit.ly/abc"})
	}))
	defer srv.Close()

	b := NewBitly("secret")
	b.endpoint = srv.URL

	short, err := b.Shorten(context.TODO(), "https://example.com/a?utm_source=vk")
	require.NoError(t, err)
	assert.Equal(t, "https://bit.ly/abc", short)
}

func TestBitly_ShortenUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	b := NewBitly("secret")
	b.endpoint = srv.URL

	_, err := b.Shorten(context.TODO(), "https://example.com/a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestBitly_ShortenCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	b := NewBitly("secret")
	b.endpoint = srv.URL

	ctx, cancel := context.WithCancel(context.TODO())
	cancel()

	_, err := b.Shorten(ctx, "https://example.com/a")
	require.Error(t, err)
}
