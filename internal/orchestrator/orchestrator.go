// Package orchestrator drives the per-request pipeline: fetch, decode,
// verify, parse, merge, serialize, picking candidates from the upstream
// catalogs and caching the outcome.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"subtrellis/internal/artifact"
	"subtrellis/internal/catalog"
	"subtrellis/internal/codectables"
	"subtrellis/internal/config"
	"subtrellis/internal/cue"
	"subtrellis/internal/decoder"
	"subtrellis/internal/fetch"
	"subtrellis/internal/langverify"
	"subtrellis/internal/merge"
	"subtrellis/internal/storage"
)

// SubtitleRef is one entry of the §6 downstream API's subtitles array.
type SubtitleRef struct {
	ID   string
	URL  string
	Lang string
}

// Artifact is one successfully merged and serialized output, paired with
// the ref the downstream API would advertise for it.
type Artifact struct {
	Ref      SubtitleRef
	Filename string
	Content  []byte
}

// Result is the orchestrator's answer to one request, shaped after the §6
// downstream API document.
type Result struct {
	Artifacts       []Artifact
	CacheMaxAge     time.Duration
	StaleRevalidate time.Duration
}

// Orchestrator wires the catalog adapters, HTTP client, cache and storage
// destination into the fetch -> decode -> verify -> parse -> merge ->
// serialize pipeline.
type Orchestrator struct {
	Primary    catalog.Catalog
	Fallback   catalog.Catalog
	Specialist catalog.Catalog
	Client     *resty.Client
	Cache      *gocache.Cache
	Storage    storage.Destination
	Config     config.Orchestrator
	Log        *slog.Logger
}

// New builds an Orchestrator. client should already carry the §5 catalog
// query timeout (10s); per-download timeouts are applied by fetch.Bytes
// independently.
func New(cfg config.Orchestrator, primary, fallback, specialist catalog.Catalog, client *resty.Client, dest storage.Destination, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		Primary:    primary,
		Fallback:   fallback,
		Specialist: specialist,
		Client:     client,
		Cache:      gocache.New(cfg.SuccessCacheTTL, cfg.SuccessCacheTTL/2),
		Storage:    dest,
		Config:     cfg,
		Log:        log,
	}
}

// Process runs the full pipeline for one (content_id, main_tag, trans_tag)
// request, returning up to Config.MaxCandidates merged artifacts.
func (o *Orchestrator) Process(ctx context.Context, contentID string, mainTag, transTag codectables.LanguageTag, ep artifact.Episode) (*Result, error) {
	requestID := uuid.New().String()
	log := o.Log.With("request_id", requestID, "content_id", contentID, "main", mainTag, "trans", transTag)

	req := config.Request{MainLanguage: mainTag, TranslationLanguage: transTag}
	if err := req.Verify(); err != nil {
		kind := KindSameLanguage
		if err == config.ErrSkippedLanguage {
			kind = KindSkippedLanguage
		}
		log.Warn("precondition failed", "kind", kind)
		return o.emptyResult(), newErr(kind, "", err)
	}

	cacheKey := fmt.Sprintf("%s|%s|%s", contentID, mainTag, transTag)
	if cached, ok := o.Cache.Get(cacheKey); ok {
		log.Debug("cache hit")
		return cached.(*Result), nil
	}

	mainTwo := codectables.ToTwoLetter(mainTag)
	transTwo := codectables.ToTwoLetter(transTag)

	candidates, err := o.queryCatalogs(ctx, contentID, mainTwo, transTwo)
	if err != nil {
		result := o.cacheFailure(cacheKey)
		return result, newErr(KindUpstreamUnavailable, "", err)
	}

	mainCandidates := rankedByLang(candidates, mainTwo)
	mainStream, mainErr := o.firstValidCandidate(ctx, mainCandidates, mainTag, log)
	if mainErr != nil {
		result := o.cacheFailure(cacheKey)
		return result, newErr(KindNoMainCandidate, "", mainErr)
	}

	transCandidates := dedupeByURL(rankedByLang(candidates, transTwo))
	if len(transCandidates) > o.Config.MaxCandidates {
		transCandidates = transCandidates[:o.Config.MaxCandidates]
	}

	var artifacts []Artifact
	version := 1
	for _, c := range transCandidates {
		transStream, err := o.fetchDecodeVerifyParse(ctx, c, transTag, log)
		if err != nil {
			log.Debug("translation candidate skipped", "candidate", c.ID, "error", err)
			continue
		}

		merged, err := merge.Merge(mainStream.Clone(), transStream, o.Config.MergeThresholdMS)
		if err != nil {
			log.Debug("merge skipped", "candidate", c.ID, "error", err)
			continue
		}

		content := []byte(cue.Serialize(merged))
		lang := fmt.Sprintf("%s+%s", mainTag, transTag)
		name := artifact.Name(contentID, ep, string(mainTag), string(transTag), version)

		if o.Storage != nil {
			if _, err := o.Storage.Put(name, content); err != nil {
				log.Warn("storage put failed", "error", err)
			}
		}

		artifacts = append(artifacts, Artifact{
			Ref:      SubtitleRef{ID: c.ID, URL: c.URL, Lang: lang},
			Filename: name,
			Content:  content,
		})
		version++
	}

	var result *Result
	if len(artifacts) == 0 {
		result = o.cacheFailure(cacheKey)
	} else {
		result = &Result{
			Artifacts:       artifacts,
			CacheMaxAge:     o.Config.SuccessCacheTTL,
			StaleRevalidate: o.Config.StaleRevalidate,
		}
		o.Cache.Set(cacheKey, result, o.Config.SuccessCacheTTL)
	}
	return result, nil
}

func (o *Orchestrator) emptyResult() *Result {
	return &Result{CacheMaxAge: o.Config.FailureCacheTTL}
}

func (o *Orchestrator) cacheFailure(key string) *Result {
	result := o.emptyResult()
	o.Cache.Set(key, result, o.Config.FailureCacheTTL)
	return result
}

// queryCatalogs implements §4.6 step 1: query the primary catalog, fall
// back to the secondary when neither requested language is present, and
// additionally consult the specialist catalog for Japanese.
func (o *Orchestrator) queryCatalogs(ctx context.Context, contentID, mainTwo, transTwo string) ([]catalog.Candidate, error) {
	var candidates []catalog.Candidate
	var primaryErr error
	if o.Primary != nil {
		candidates, primaryErr = o.Primary.Query(ctx, contentID)
	}

	mainPresent := len(rankedByLang(candidates, mainTwo)) > 0
	transPresent := len(rankedByLang(candidates, transTwo)) > 0

	if !mainPresent && !transPresent && o.Fallback != nil {
		if fb, err := o.Fallback.Query(ctx, contentID); err == nil {
			candidates = append(candidates, fb...)
		}
	}

	if (mainTwo == "ja" || transTwo == "ja") && o.Specialist != nil {
		if sp, err := o.Specialist.Query(ctx, contentID); err == nil {
			candidates = catalog.MergeByLang(candidates, sp)
		}
	}

	if len(candidates) == 0 {
		if primaryErr != nil {
			return nil, primaryErr
		}
		return nil, fmt.Errorf("no candidates from any catalog")
	}
	return candidates, nil
}

func rankedByLang(candidates []catalog.Candidate, twoLetter string) []catalog.Candidate {
	matched := catalog.FilterByLang(candidates, twoLetter, func(s string) string {
		return codectables.ToTwoLetter(codectables.LanguageTag(s))
	})
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].DownloadRank < matched[j].DownloadRank })
	return matched
}

func dedupeByURL(candidates []catalog.Candidate) []catalog.Candidate {
	seen := map[string]struct{}{}
	out := make([]catalog.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.URL]; ok {
			continue
		}
		seen[c.URL] = struct{}{}
		out = append(out, c)
	}
	return out
}

// firstValidCandidate implements §4.6 step 2: iterate candidates in rank
// order, stop at the first one that clears fetch/decode/verify/parse.
func (o *Orchestrator) firstValidCandidate(ctx context.Context, candidates []catalog.Candidate, tag codectables.LanguageTag, log *slog.Logger) (cue.Stream, error) {
	var lastErr error
	for _, c := range candidates {
		stream, err := o.fetchDecodeVerifyParse(ctx, c, tag, log)
		if err != nil {
			lastErr = err
			log.Debug("main candidate skipped", "candidate", c.ID, "error", err)
			continue
		}
		return stream, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no candidates available")
	}
	return nil, lastErr
}

// fetchDecodeVerifyParse runs the single-candidate leg: download, decode,
// verify, parse. It is the unit the orchestrator may run concurrently
// across distinct candidates and languages.
func (o *Orchestrator) fetchDecodeVerifyParse(ctx context.Context, c catalog.Candidate, tag codectables.LanguageTag, log *slog.Logger) (cue.Stream, error) {
	raw, err := fetch.Bytes(ctx, o.Client, c.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	hint := codectables.ToTwoLetter(tag)
	text, guess := decoder.Decode(raw, hint)
	log.Debug("decoded candidate", "candidate", c.ID, "encoding", guess.Name, "origin", guess.Origin)
	if decoder.FinalCheck(text) {
		return nil, newErr(KindDecodeReplacementChars, c.ID, errReplacementChars)
	}

	verdict := langverify.Verify(text, tag)
	if verdict == langverify.Reject {
		return nil, newErr(KindLangMismatch, c.ID, errLangMismatch)
	}

	stream, err := cue.Parse(text)
	if err != nil {
		return nil, newErr(KindParseFailure, c.ID, err)
	}
	return stream, nil
}
