package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// fallbackRecord is one entry of the §6 fallback catalog's flat JSON array.
type fallbackRecord struct {
	IDSubtitleFile  string `json:"IDSubtitleFile"`
	SubDownloadLink string `json:"SubDownloadLink"`
	SubFormat       string `json:"SubFormat"`
	SubLanguageID   string `json:"SubLanguageID"`
	SubDownloadsCnt string `json:"SubDownloadsCnt"`
}

// Fallback queries the secondary upstream catalog, which requires a
// session cookie obtained from a landing page before the search endpoint
// will answer. A 403/404 triggers exactly one forced cookie refresh and
// retry, per §6.
type Fallback struct {
	Client     *resty.Client
	BaseURL    string
	LandingURL string
	Session    *SessionState
}

func NewFallback(client *resty.Client, baseURL, landingURL string, session *SessionState) *Fallback {
	return &Fallback{Client: client, BaseURL: baseURL, LandingURL: landingURL, Session: session}
}

func (f *Fallback) Query(ctx context.Context, contentID string) ([]Candidate, error) {
	candidates, status, err := f.query(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if status == http.StatusForbidden || status == http.StatusNotFound {
		if rerr := f.refreshCookie(ctx); rerr != nil {
			return nil, fmt.Errorf("catalog: fallback cookie refresh failed: %w", rerr)
		}
		candidates, status, err = f.query(ctx, contentID)
		if err != nil {
			return nil, err
		}
	}
	if status >= 400 {
		return nil, fmt.Errorf("catalog: fallback query returned status %d", status)
	}
	return candidates, nil
}

func (f *Fallback) query(ctx context.Context, contentID string) ([]Candidate, int, error) {
	cookie, ok := f.Session.Cookie()
	if !ok {
		if err := f.refreshCookie(ctx); err != nil {
			return nil, 0, fmt.Errorf("catalog: fallback cookie acquisition failed: %w", err)
		}
		cookie, _ = f.Session.Cookie()
	}

	var records []fallbackRecord
	resp, err := f.Client.R().
		SetContext(ctx).
		SetHeader("Cookie", cookie).
		SetQueryParam("content_id", contentID).
		SetResult(&records).
		Get(f.BaseURL)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog: fallback query failed: %w", err)
	}

	if resp.StatusCode() == http.StatusForbidden || resp.StatusCode() == http.StatusNotFound {
		return nil, resp.StatusCode(), nil
	}
	if resp.IsError() {
		return nil, resp.StatusCode(), nil
	}

	out := make([]Candidate, 0, len(records))
	for i, r := range records {
		if !supportedSubFormat(r.SubFormat) {
			continue
		}
		out = append(out, Candidate{
			ID:           r.IDSubtitleFile,
			URL:          r.SubDownloadLink,
			Lang:         r.SubLanguageID,
			DownloadRank: downloadRank(r.SubDownloadsCnt, i),
		})
	}
	return out, resp.StatusCode(), nil
}

func (f *Fallback) refreshCookie(ctx context.Context) error {
	f.Session.Invalidate()
	resp, err := f.Client.R().SetContext(ctx).Get(f.LandingURL)
	if err != nil {
		return err
	}
	for _, c := range resp.Cookies() {
		f.Session.Refresh(c.Name + "=" + c.Value)
		return nil
	}
	return fmt.Errorf("catalog: landing page returned no cookie")
}

// supportedSubFormat accepts only SRT; this specification treats SRT as
// the canonical input format (§9) and leaves non-SRT container conversion
// to an implementer-specified converter contract this package doesn't
// provide.
func supportedSubFormat(format string) bool {
	return format == "srt"
}

// downloadRank recovers a rank from SubDownloadsCnt (higher count first);
// unparsable counts fall back to the record's array position.
func downloadRank(cntStr string, fallbackIndex int) int {
	cnt, err := strconv.Atoi(cntStr)
	if err != nil {
		return fallbackIndex
	}
	return -cnt
}
