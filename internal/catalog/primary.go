package catalog

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// primaryResponse is the §6 primary catalog wire shape: subtitles ordered
// by descending download count.
type primaryResponse struct {
	Subtitles []struct {
		ID   string `json:"id"`
		URL  string `json:"url"`
		Lang string `json:"lang"`
	} `json:"subtitles"`
}

// Primary queries the main upstream catalog.
type Primary struct {
	Client  *resty.Client
	BaseURL string
}

// NewPrimary builds a Primary adapter sharing a resty client tuned to the
// §5 catalog-query timeout.
func NewPrimary(client *resty.Client, baseURL string) *Primary {
	return &Primary{Client: client, BaseURL: baseURL}
}

func (p *Primary) Query(ctx context.Context, contentID string) ([]Candidate, error) {
	var body primaryResponse
	resp, err := p.Client.R().
		SetContext(ctx).
		SetQueryParam("content_id", contentID).
		SetResult(&body).
		Get(p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: primary query failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog: primary query returned %s", resp.Status())
	}

	out := make([]Candidate, 0, len(body.Subtitles))
	for i, s := range body.Subtitles {
		out = append(out, Candidate{ID: s.ID, URL: s.URL, Lang: s.Lang, DownloadRank: i})
	}
	return out, nil
}
