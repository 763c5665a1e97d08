package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyRejectsSameLanguage(t *testing.T) {
	r := Request{MainLanguage: "en", TranslationLanguage: "eng"}
	assert.ErrorIs(t, r.Verify(), ErrSameLanguage)
}

func TestVerifyRejectsSkippedLanguage(t *testing.T) {
	r := Request{MainLanguage: "pob", TranslationLanguage: "en"}
	assert.ErrorIs(t, r.Verify(), ErrSkippedLanguage)
}

func TestVerifyAcceptsDistinctLanguages(t *testing.T) {
	r := Request{MainLanguage: "en", TranslationLanguage: "fr"}
	assert.NoError(t, r.Verify())
}

func TestFromEnvDefaults(t *testing.T) {
	o := FromEnv()
	assert.Equal(t, "output", o.OutputDir)
	assert.Equal(t, 4, o.MaxCandidates)
	assert.Greater(t, int64(o.MergeThresholdMS), int64(0))
}

func TestFromEnvOverride(t *testing.T) {
	t.Setenv("SUBTRELLIS_MERGE_THRESHOLD_MS", "750")
	o := FromEnv()
	assert.Equal(t, int64(750), o.MergeThresholdMS)
}

func TestFromEnvIgnoresInvalidOverride(t *testing.T) {
	t.Setenv("SUBTRELLIS_MERGE_THRESHOLD_MS", "not-a-number")
	o := FromEnv()
	assert.Equal(t, int64(500), o.MergeThresholdMS)
}
