package qr_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Menu-api/internal/application/catalog"
	"github.com/jhoicas/Menu-api/internal/infrastructure/qr"
)

func TestGenerate_Binario(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer srv.Close()

	img, err := qr.NewHTTPClient(srv.URL, time.Second).Generate(context.Background(), "https://x.example.com/public/menu?id=1", "png", 256)
	require.NoError(t, err)

	assert.Equal(t, "image/png", img.ContentType)
	assert.False(t, img.IsJSON)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, img.Body)
	assert.Equal(t, "https://x.example.com/public/menu?id=1", got["data"])
	assert.Equal(t, "png", got["format"])
	assert.Equal(t, float64(256), got["size"])
}

func TestGenerate_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"url":"https://cdn.example.com/qr.png"}`))
	}))
	defer srv.Close()

	img, err := qr.NewHTTPClient(srv.URL, time.Second).Generate(context.Background(), "d", "svg", 128)
	require.NoError(t, err)
	assert.True(t, img.IsJSON)
	assert.JSONEq(t, `{"url":"https://cdn.example.com/qr.png"}`, string(img.Body))
}

func TestGenerate_ErroresDelProveedor(t *testing.T) {
	cases := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantStatus  int
		wantClient  bool
	}{
		{"4xx", http.StatusUnprocessableEntity, "text/plain", "size inválido", http.StatusUnprocessableEntity, true},
		{"5xx", http.StatusServiceUnavailable, "text/plain", "", http.StatusServiceUnavailable, false},
		{"JSON roto", http.StatusOK, "application/json", "{no", http.StatusBadGateway, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := qr.NewHTTPClient(srv.URL, time.Second).Generate(context.Background(), "d", "png", 512)
			var perr *catalog.QRProviderError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.wantStatus, perr.StatusCode)
			assert.Equal(t, tc.wantClient, perr.ClientError())
		})
	}
}

func TestGenerate_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := qr.NewHTTPClient(srv.URL, 50*time.Millisecond).Generate(context.Background(), "d", "png", 512)
	var perr *catalog.QRProviderError
	require.True(t, errors.As(err, &perr))
	assert.Zero(t, perr.StatusCode)
}
