package fetch

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesReturnsPlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain body"))
	}))
	defer srv.Close()

	got, err := Bytes(context.Background(), resty.New(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "plain body", string(got))
}

func TestBytesDecompressesGzipByMagic(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, _ = gw.Write([]byte("compressed payload"))
	require.NoError(t, gw.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	got, err := Bytes(context.Background(), resty.New(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "compressed payload", string(got))
}

func TestBytesRejectsOversizedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, MaxSize+1))
	}))
	defer srv.Close()

	_, err := Bytes(context.Background(), resty.New(), srv.URL)
	assert.Error(t, err)
}

func TestBytesPropagatesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Bytes(context.Background(), resty.New(), srv.URL)
	assert.Error(t, err)
}
