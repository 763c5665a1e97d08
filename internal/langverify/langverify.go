// Package langverify decides, after decoding, whether text actually is in
// the language a caller expects, accepting mutually intelligible relatives
// instead of demanding an exact match.
package langverify

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"

	"subtrellis/internal/codectables"
)

// Verdict is the three-way outcome of verification.
type Verdict string

const (
	Match        Verdict = "match"
	RelatedMatch Verdict = "related-match"
	Reject       Verdict = "reject"
)

const (
	minTextLength          = 100
	maxReplacementRatio    = 0.01
	maxC0ControlRatio      = 0.01
	sampleSkipCap          = 2000
	sampleWindow           = 30000
)

var (
	srtTimestampLine = regexp.MustCompile(`\d{2}:\d{2}:\d{2},\d{3}\s*-->\s*\d{2}:\d{2}:\d{2},\d{3}`)
	standaloneNumber = regexp.MustCompile(`(?m)^\s*\d+\s*$`)
	htmlTag          = regexp.MustCompile(`<[^>]*>`)
)

// Verify runs the §4.2 algorithm against text for the expected tag.
func Verify(text string, expected codectables.LanguageTag) Verdict {
	if corrupt(text) {
		return Reject
	}

	sample := sampleAndClean(text)
	detected := detectTopCandidate(sample)
	if detected == "" {
		return Reject
	}

	e := codectables.ToTwoLetter(expected)
	if detected == e {
		return Match
	}
	if codectables.IsRelated(detected, e) {
		return RelatedMatch
	}
	return Reject
}

// corrupt implements the §4.2 step 1 corruption gate.
func corrupt(text string) bool {
	if utf8.RuneCountInString(text) < minTextLength {
		return true
	}

	total := 0
	replacement := 0
	c0 := 0
	for _, r := range text {
		total++
		if r == utf8.RuneError {
			replacement++
		}
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			c0++
		}
	}
	if total == 0 {
		return true
	}
	if float64(replacement)/float64(total) > maxReplacementRatio {
		return true
	}
	if float64(c0)/float64(total) > maxC0ControlRatio {
		return true
	}

	return codectables.HasImpossibleScriptPair(text)
}

// sampleAndClean implements §4.2 step 2: skip a header-avoiding prefix,
// take a bounded window, and strip SRT-specific noise before detection.
func sampleAndClean(text string) string {
	runes := []rune(text)
	textLen := len(runes)

	skip := sampleSkipCap
	if remainder := textLen - sampleWindow; remainder < skip {
		skip = remainder
	}
	if skip < 0 {
		skip = 0
	}

	end := textLen
	if skip+sampleWindow < end {
		end = skip + sampleWindow
	}
	windowed := string(runes[skip:end])

	windowed = srtTimestampLine.ReplaceAllString(windowed, " ")
	windowed = standaloneNumber.ReplaceAllString(windowed, " ")
	windowed = htmlTag.ReplaceAllString(windowed, " ")
	return strings.Join(strings.Fields(windowed), " ")
}

// detectTopCandidate runs the trigram detector and maps its best guess to
// the internal 2-letter form via the ISO 639-3 rollup table.
func detectTopCandidate(sample string) string {
	if strings.TrimSpace(sample) == "" {
		return ""
	}
	info := whatlanggo.Detect(sample)
	if info.Lang == whatlanggo.Lang(-1) {
		return ""
	}
	iso3 := info.Lang.Iso6393()
	if iso3 == "" {
		return ""
	}
	return codectables.ToTwoLetter(codectables.LanguageTag(iso3))
}
