// Package config validates the small options surface the orchestrator
// takes, following the teacher's Verify/Prepare pattern: a caller builds a
// struct and calls Verify before it's used.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"subtrellis/internal/codectables"
	"subtrellis/internal/merge"
)

// Request is the §6 per-request configuration surface.
type Request struct {
	MainLanguage        codectables.LanguageTag
	TranslationLanguage codectables.LanguageTag
}

// Verify validates the preconditions §4.6 names: neither tag is skippable,
// and they aren't the same language once normalized.
func (r Request) Verify() error {
	if codectables.Skippable(r.MainLanguage) {
		return ErrSkippedLanguage
	}
	if codectables.Skippable(r.TranslationLanguage) {
		return ErrSkippedLanguage
	}
	if codectables.ToTwoLetter(r.MainLanguage) == codectables.ToTwoLetter(r.TranslationLanguage) {
		return ErrSameLanguage
	}
	return nil
}

// Orchestrator is the environment-only settings the orchestrator reads at
// process start; none of these affect the core per §6.
type Orchestrator struct {
	OutputDir         string
	PrimaryBaseURL    string
	FallbackBaseURL   string
	FallbackLandingURL string
	SpecialistBaseURL string
	MergeThresholdMS  int64
	MaxCandidates     int
	FailureCacheTTL   time.Duration
	SuccessCacheTTL   time.Duration
	StaleRevalidate   time.Duration
}

// FromEnv reads the orchestrator's environment-only settings, applying the
// §4.6/§7 defaults when a variable is unset.
func FromEnv() Orchestrator {
	o := Orchestrator{
		OutputDir:          getEnvOr("SUBTRELLIS_OUTPUT_DIR", "output"),
		PrimaryBaseURL:     getEnvOr("SUBTRELLIS_PRIMARY_URL", ""),
		FallbackBaseURL:    getEnvOr("SUBTRELLIS_FALLBACK_URL", ""),
		FallbackLandingURL: getEnvOr("SUBTRELLIS_FALLBACK_LANDING_URL", ""),
		SpecialistBaseURL:  getEnvOr("SUBTRELLIS_SPECIALIST_URL", ""),
		MergeThresholdMS:   merge.DefaultThresholdMS,
		MaxCandidates:      4,
		FailureCacheTTL:    60 * time.Second,
		SuccessCacheTTL:    6 * time.Hour,
		StaleRevalidate:    24 * time.Hour,
	}
	if v := os.Getenv("SUBTRELLIS_MERGE_THRESHOLD_MS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			o.MergeThresholdMS = n
		}
	}
	return o
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ErrSameLanguage and ErrSkippedLanguage are the §7 precondition error
// kinds Request.Verify can produce.
var (
	ErrSameLanguage    = fmt.Errorf("config: main and translation language are the same")
	ErrSkippedLanguage = fmt.Errorf("config: language tag is in the skip-set")
)
