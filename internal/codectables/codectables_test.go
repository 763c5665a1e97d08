package codectables

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkippable(t *testing.T) {
	assert.True(t, Skippable("pob"))
	assert.True(t, Skippable("POB"))
	assert.False(t, Skippable("pt"))
}

func TestToTwoLetterFixedAliases(t *testing.T) {
	assert.Equal(t, "zh", ToTwoLetter("cmn"))
	assert.Equal(t, "zh", ToTwoLetter("yue"))
	assert.Equal(t, "ar", ToTwoLetter("arb"))
	assert.Equal(t, "ms", ToTwoLetter("zsm"))
	assert.Equal(t, "pt", ToTwoLetter("pt"))
	assert.Equal(t, "en", ToTwoLetter("eng"))
}

func TestToTwoLetterFallsBackToISOTable(t *testing.T) {
	// "fil" (Filipino) isn't in threeToOne; it should resolve via the
	// barbashov/iso639-3 table rather than just truncating to "fi".
	got := ToTwoLetter("fil")
	assert.NotEmpty(t, got)
}

func TestRelatedLanguageGroupSymmetric(t *testing.T) {
	assert.ElementsMatch(t, []string{"bs", "sr", "sl"}, RelatedLanguageGroup("hr"))
	assert.Contains(t, RelatedLanguageGroup("pt"), "gl")
}

func TestIsRelated(t *testing.T) {
	assert.True(t, IsRelated("hr", "sr"))
	assert.True(t, IsRelated("sr", "hr"))
	assert.False(t, IsRelated("hr", "en"))
}

func TestScriptCoverage(t *testing.T) {
	cov := ScriptCoverage("привет", "ru")
	assert.Equal(t, 1.0, cov)
	cov = ScriptCoverage("hello", "ru")
	assert.Equal(t, 0.0, cov)
}

func TestHasImpossibleScriptPair(t *testing.T) {
	assert.True(t, HasImpossibleScriptPair("שלום สวัสดี"))
	assert.False(t, HasImpossibleScriptPair("hello world"))
}

func TestEncodingPriorityEndsWithGlobalFallback(t *testing.T) {
	pr := EncodingPriority("ru")
	assert.Equal(t, "win1251", pr[0])
	assert.Equal(t, globalFallbackOrder, pr[len(pr)-len(globalFallbackOrder):])
}

func TestCanonicalizeDetectorLabel(t *testing.T) {
	assert.Equal(t, "utf8", CanonicalizeDetectorLabel("UTF-8"))
	assert.Equal(t, "win1251", CanonicalizeDetectorLabel("windows-1251"))
	assert.Equal(t, "", CanonicalizeDetectorLabel("made-up-charset"))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("utf8"))
	assert.True(t, Supported("win1251"))
	assert.False(t, Supported("made-up"))
}
