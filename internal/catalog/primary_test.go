package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimaryQueryParsesSubtitles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tt123", r.URL.Query().Get("content_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"subtitles":[{"id":"a","url":"http://x/a.srt","lang":"eng"},{"id":"b","url":"http://x/b.srt","lang":"fre"}]}`))
	}))
	defer srv.Close()

	p := NewPrimary(resty.New(), srv.URL)
	cands, err := p.Query(context.Background(), "tt123")
	require.NoError(t, err)
	require.Len(t, cands, 2)
	assert.Equal(t, "a", cands[0].ID)
	assert.Equal(t, 0, cands[0].DownloadRank)
	assert.Equal(t, 1, cands[1].DownloadRank)
}

func TestPrimaryQueryPropagatesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewPrimary(resty.New(), srv.URL)
	_, err := p.Query(context.Background(), "tt123")
	assert.Error(t, err)
}
