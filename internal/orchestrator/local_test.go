package orchestrator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subtrellis/internal/codectables"
	"subtrellis/internal/merge"
)

const mainEnglish = `1
00:00:01,000 --> 00:00:02,000
The quick brown fox jumps over the lazy dog near the old stone bridge
every single morning before the sun has fully risen above the hills.

2
00:00:05,000 --> 00:00:06,000
The villagers watch quietly from their windows as the animals wander by.
`

const transFrench = `1
00:00:01,200 --> 00:00:02,200
Le renard brun et rapide saute par-dessus le chien paresseux pres du vieux pont de pierre chaque matin avant que le soleil ne se leve entierement au-dessus des collines lointaines et tranquilles.

2
00:00:05,100 --> 00:00:06,100
Les villageois regardent tranquillement par leurs fenetres tandis que les animaux se promenent pres de la riviere paisible.
`

func TestLocalPipelineMergesTwoStreams(t *testing.T) {
	out, err := LocalPipeline([]byte(mainEnglish), []byte(transFrench), codectables.LanguageTag("en"), codectables.LanguageTag("fr"), merge.DefaultThresholdMS)
	require.NoError(t, err)
	assert.Contains(t, out, "fox jumps")
	assert.Contains(t, out, "<i>")
}

func TestLocalPipelineFailsOnUnparsableMain(t *testing.T) {
	_, err := LocalPipeline([]byte("not an srt file at all"), []byte(transFrench), codectables.LanguageTag("en"), codectables.LanguageTag("fr"), merge.DefaultThresholdMS)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "main:"))
}

func TestLocalPipelineFailsOnEmptyTranslation(t *testing.T) {
	_, err := LocalPipeline([]byte(mainEnglish), []byte(""), codectables.LanguageTag("en"), codectables.LanguageTag("fr"), merge.DefaultThresholdMS)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "translation:"))
}

func TestPipelineErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := newErr(KindParseFailure, "cand-1", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "parse_failure")
	assert.Contains(t, err.Error(), "cand-1")
}
