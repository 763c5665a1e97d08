// Package fetch downloads subtitle bytes from a catalog-supplied URL,
// auto-detecting and undoing gzip framing before handing raw bytes to the
// decoder.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/klauspost/compress/gzip"
)

// Timeout is the §5 per-subtitle byte download timeout.
const Timeout = 15 * time.Second

// MaxSize is the §5 subtitle max size; larger responses are rejected.
const MaxSize = 5 * 1024 * 1024

var gzipMagic = []byte{0x1F, 0x8B}

// Bytes downloads url and returns its content, gunzipped if the URL ends
// in .gz or the body's first two bytes are the gzip magic number.
func Bytes(ctx context.Context, client *resty.Client, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch: request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch: unexpected status %s", resp.Status())
	}

	body := resp.Body()
	if len(body) > MaxSize {
		return nil, fmt.Errorf("fetch: response exceeds max size (%d bytes)", len(body))
	}

	if isGzip(url, body) {
		decompressed, err := gunzip(body)
		if err != nil {
			return nil, fmt.Errorf("fetch: gunzip failed: %w", err)
		}
		if len(decompressed) > MaxSize {
			return nil, fmt.Errorf("fetch: decompressed response exceeds max size (%d bytes)", len(decompressed))
		}
		return decompressed, nil
	}
	return body, nil
}

func isGzip(url string, body []byte) bool {
	if strings.HasSuffix(strings.ToLower(url), ".gz") {
		return true
	}
	return len(body) >= 2 && body[0] == gzipMagic[0] && body[1] == gzipMagic[1]
}

func gunzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(io.LimitReader(r, MaxSize+1))
}
