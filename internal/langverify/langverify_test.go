package langverify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"subtrellis/internal/codectables"
)

const englishParagraph = `The quick brown fox jumps over the lazy dog near the old
stone bridge every single morning before the sun has fully risen above the
distant hills, and the villagers watch quietly from their windows as the
animals go about their business in the cool autumn air.`

func TestVerifyMatchesEnglish(t *testing.T) {
	assert.Equal(t, Match, Verify(englishParagraph, "en"))
}

func TestVerifyRejectsShortText(t *testing.T) {
	assert.Equal(t, Reject, Verify("too short", "en"))
}

func TestVerifyRejectsHighReplacementRatio(t *testing.T) {
	text := strings.Repeat("�", 150)
	assert.Equal(t, Reject, Verify(text, "en"))
}

func TestCorruptFlagsShortText(t *testing.T) {
	assert.True(t, corrupt("short"))
}

func TestCorruptAllowsCleanLongText(t *testing.T) {
	assert.False(t, corrupt(englishParagraph))
}

func TestCorruptFlagsImpossibleScriptPair(t *testing.T) {
	text := strings.Repeat("שלום עולם טקסט ארוך מאוד בעברית כדי לעבור את סף האורך המינימלי ", 2) +
		strings.Repeat("สวัสดีครับข้อความภาษาไทยที่ยาวพอสำหรับการทดสอบ ", 2)
	assert.True(t, corrupt(text))
}

func TestSampleAndCleanStripsSRTNoise(t *testing.T) {
	text := "1\n00:00:01,000 --> 00:00:02,000\n" + englishParagraph
	cleaned := sampleAndClean(text)
	assert.NotContains(t, cleaned, "-->")
	assert.NotContains(t, cleaned, "00:00:01,000")
}

func TestSampleAndCleanSkipFormula(t *testing.T) {
	cases := []struct {
		textLen  int
		wantSkip int
	}{
		{50000, 2000},
		{25000, 0},
		{35000, 2000},
		{31000, 1000},
	}
	for _, c := range cases {
		// The only 'c' sits right after the expected skip, so the cleaned
		// sample starts with it exactly when sampleAndClean skipped wantSkip.
		text := strings.Repeat("a", c.wantSkip) + "c" + strings.Repeat("b", c.textLen-c.wantSkip-1)
		cleaned := sampleAndClean(text)
		assert.Equal(t, "c", cleaned[:1], "textLen=%d", c.textLen)
	}
}

func TestDetectTopCandidateEmptySample(t *testing.T) {
	assert.Equal(t, "", detectTopCandidate("   "))
}

func TestToTwoLetterUsedByVerify(t *testing.T) {
	// sanity check that the expected-tag normalization path Verify relies on
	// behaves the way the corruption/detection gates assume.
	assert.Equal(t, "en", codectables.ToTwoLetter("eng"))
}
