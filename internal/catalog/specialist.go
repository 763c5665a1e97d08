package catalog

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Specialist queries the Japanese-focused catalog §4.6 step 1 consults in
// addition to the primary when the requested main or translation language
// is Japanese. It shares the primary catalog's JSON shape — the spec names
// the consultation but not a distinct wire format for this adapter.
type Specialist struct {
	Client  *resty.Client
	BaseURL string
}

func NewSpecialist(client *resty.Client, baseURL string) *Specialist {
	return &Specialist{Client: client, BaseURL: baseURL}
}

func (s *Specialist) Query(ctx context.Context, contentID string) ([]Candidate, error) {
	var body primaryResponse
	resp, err := s.Client.R().
		SetContext(ctx).
		SetQueryParam("content_id", contentID).
		SetResult(&body).
		Get(s.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: specialist query failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog: specialist query returned %s", resp.Status())
	}

	out := make([]Candidate, 0, len(body.Subtitles))
	for i, sub := range body.Subtitles {
		out = append(out, Candidate{ID: sub.ID, URL: sub.URL, Lang: sub.Lang, DownloadRank: i})
	}
	return out, nil
}
