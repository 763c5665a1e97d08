// Package decoder turns a raw, heterogeneously-encoded byte buffer into a
// trustworthy UTF-8 string. It runs, in strict precedence, a BOM dispatch
// pass, a no-BOM statistical detection pass, and a text-level mojibake
// repair pass that undoes double-encoding and raw legacy-codepage damage.
//
// Decode never returns an error for decode-only problems: a buffer that
// still contains replacement characters after every attempt is returned
// unchanged, and FinalCheck lets the caller reject it the way the
// orchestrator does.
package decoder

import (
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"

	"subtrellis/internal/codectables"
)

// Origin records which stage of the algorithm produced the final guess.
type Origin string

const (
	OriginBOM                Origin = "BOM"
	OriginStatistical        Origin = "statistical"
	OriginLanguagePrioritized Origin = "language-prioritized"
	OriginFallback           Origin = "fallback"
)

// EncodingGuess is the (name, origin) pair the decoder settled on.
type EncodingGuess struct {
	Name   string
	Origin Origin
}

const (
	mojibakePatternLimit   = 10
	mojibakeResidualRatio  = 0.20
	legacyDensityMin       = 0.10
	legacyDensityMinCount  = 50
	legacyDensityReduction = 0.30
	scriptCoverageAccept   = 0.15
	detectorSampleSize     = 1024
)

// Decode applies the full BOM/statistical/mojibake-repair pipeline to data,
// using hint (a language tag, possibly empty) to prioritize legacy-codepage
// candidates. It is a pure function: identical inputs always yield
// identical outputs.
func Decode(data []byte, hint string) (string, EncodingGuess) {
	if s, guess, ok := bomDispatch(data); ok {
		return s, guess
	}

	name, origin := statisticalDetect(data)
	text := decodeWith(data, name)

	repaired, usedPrioritized := repairMojibake(text, hint)
	if usedPrioritized {
		origin = OriginLanguagePrioritized
	}
	return repaired, EncodingGuess{Name: name, Origin: origin}
}

// FinalCheck reports whether s still contains the Unicode replacement
// character, the §7 decode_replacement_chars signal the orchestrator uses
// to skip a candidate.
func FinalCheck(s string) bool {
	return strings.ContainsRune(s, utf8.RuneError)
}

// bomDispatch implements §4.1 step 1, testing the fixed byte patterns in
// order and returning the first match.
func bomDispatch(data []byte) (string, EncodingGuess, bool) {
	switch {
	case hasPrefix(data, 0xC3, 0xBF, 0xC3, 0xBE):
		if s, ok := undoDoubleEncodedUTF16(data, false); ok {
			return tailCleanup(s), EncodingGuess{Name: "utf16le", Origin: OriginBOM}, true
		}
	case hasPrefix(data, 0xFF, 0xFE):
		return tailCleanup(decodeWith(data[2:], "utf16le")), EncodingGuess{Name: "utf16le", Origin: OriginBOM}, true
	case hasPrefix(data, 0xC3, 0xBE, 0xC3, 0xBF):
		if s, ok := undoDoubleEncodedUTF16(data, true); ok {
			return tailCleanup(s), EncodingGuess{Name: "utf16be", Origin: OriginBOM}, true
		}
	case hasPrefix(data, 0xFE, 0xFF):
		return tailCleanup(decodeWith(data[2:], "utf16be")), EncodingGuess{Name: "utf16be", Origin: OriginBOM}, true
	case hasPrefix(data, 0xC3, 0xAF, 0xC2, 0xBB, 0xC2, 0xBF):
		return tailCleanup(decodeWith(data[6:], "utf8")), EncodingGuess{Name: "utf8", Origin: OriginBOM}, true
	case hasPrefix(data, 0xEF, 0xBB, 0xBF):
		return tailCleanup(decodeWith(data[3:], "utf8")), EncodingGuess{Name: "utf8", Origin: OriginBOM}, true
	}
	return "", EncodingGuess{}, false
}

func hasPrefix(data []byte, want ...byte) bool {
	if len(data) < len(want) {
		return false
	}
	for i, b := range want {
		if data[i] != b {
			return false
		}
	}
	return true
}

// undoDoubleEncodedUTF16 reconstructs the original BOM+payload bytes from a
// buffer whose UTF-16 BOM was itself mistakenly re-encoded as UTF-8, then
// skips the 2-byte BOM and decodes the remainder as UTF-16.
func undoDoubleEncodedUTF16(data []byte, bigEndian bool) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	latin1, ok := collapseToLatin1Bytes(string(data))
	if !ok || len(latin1) < 2 {
		return "", false
	}
	name := "utf16le"
	if bigEndian {
		name = "utf16be"
	}
	return decodeWith(latin1[2:], name), true
}

// collapseToLatin1Bytes treats every rune of s as a Latin-1 code point and
// writes the corresponding single byte; fails if any rune exceeds U+00FF.
func collapseToLatin1Bytes(s string) ([]byte, bool) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, false
		}
		out = append(out, byte(r))
	}
	return out, true
}

// tailCleanup implements §4.1 step 5.
func tailCleanup(s string) string {
	s = strings.TrimPrefix(s, "\xef\xbb\xbf")
	s = strings.TrimPrefix(s, "\xc3\xaf\xc2\xbb\xc2\xbf")
	return s
}

// statisticalDetect runs a byte-frequency detector over the first sample
// bytes and canonicalizes its label, falling back to utf8 when the
// detector's choice isn't one this decoder supports.
func statisticalDetect(data []byte) (string, Origin) {
	sample := data
	if len(sample) > detectorSampleSize {
		sample = sample[:detectorSampleSize]
	}
	det := chardet.NewTextDetector()
	result, err := det.DetectBest(sample)
	if err != nil {
		return "utf8", OriginFallback
	}
	name := codectables.CanonicalizeDetectorLabel(result.Charset)
	if name == "" || !codectables.Supported(name) {
		return "utf8", OriginFallback
	}
	return name, OriginStatistical
}

// repairMojibake implements §4.1 steps 3-4: detect the suspect pattern,
// then try decoders in precedence order until one satisfies its acceptance
// rule. Returns the repaired text (or the original, unchanged, if nothing
// qualified) and whether a language-prioritized candidate was the one that
// won.
func repairMojibake(s string, hint string) (string, bool) {
	patternCount := countMojibakePairs(s)
	density, denseCount := legacyDensity(s)

	suspectDouble := patternCount > mojibakePatternLimit
	suspectLegacy := !suspectDouble && density > legacyDensityMin && denseCount > legacyDensityMinCount

	if !suspectDouble && !suspectLegacy {
		return s, false
	}

	latin1, ok := collapseToLatin1Bytes(s)
	if !ok {
		return s, false
	}

	// First: plain UTF-8 reinterpretation.
	if candidate := decodeWith(latin1, "utf8"); !FinalCheck(candidate) {
		if suspectDouble && countMojibakePairs(candidate) <= int(float64(patternCount)*mojibakeResidualRatio) {
			return candidate, false
		}
	}

	candidates := codectables.EncodingPriority(hint)
	prioritizedCount := len(codectables.EncodingPriority(hint)) - len(codectables.EncodingPriority(""))
	for i, name := range candidates {
		candidate := decodeWith(latin1, name)
		if FinalCheck(candidate) {
			continue
		}
		if suspectDouble {
			if countMojibakePairs(candidate) <= int(float64(patternCount)*mojibakeResidualRatio) {
				return candidate, i < prioritizedCount
			}
		}
		if suspectLegacy {
			newDensity, _ := legacyDensity(candidate)
			if newDensity <= density*legacyDensityReduction {
				return candidate, i < prioritizedCount
			}
		}
		if hint != "" && codectables.ScriptCoverage(candidate, hint) >= scriptCoverageAccept {
			return candidate, i < prioritizedCount
		}
	}
	return s, false
}

// mojibakeLeadRanges are the first-rune classes tracked by §4.1 step 3.
var mojibakeLeadRanges = [][2]rune{
	{0xC2, 0xC2}, {0xC3, 0xC3}, {0xC4, 0xC5}, {0xC6, 0xCB}, {0xCC, 0xCF},
	{0xD0, 0xD4}, {0xD5, 0xD6}, {0xD7, 0xD7}, {0xD8, 0xDB}, {0xDC, 0xDF},
	{0xE0, 0xEF},
}

func isMojibakeLead(r rune) bool {
	for _, rg := range mojibakeLeadRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// countMojibakePairs counts consecutive rune pairs (lead, continuation)
// matching the double-encoded-UTF-8 signature.
func countMojibakePairs(s string) int {
	runes := []rune(s)
	count := 0
	for i := 0; i+1 < len(runes); i++ {
		if isMojibakeLead(runes[i]) && runes[i+1] >= 0x80 && runes[i+1] <= 0xBF {
			count++
		}
	}
	return count
}

// legacyDensity returns the fraction and absolute count of runes in the
// U+0080..U+00FF band, the signature of an undecoded legacy codepage.
func legacyDensity(s string) (float64, int) {
	total := 0
	dense := 0
	for _, r := range s {
		total++
		if r >= 0x80 && r <= 0xFF {
			dense++
		}
	}
	if total == 0 {
		return 0, 0
	}
	return float64(dense) / float64(total), dense
}

// decodeWith decodes data with the named canonical encoding, returning the
// result verbatim (including any replacement characters the decoder
// emits) so the caller can run FinalCheck.
func decodeWith(data []byte, name string) string {
	enc := lookupEncoding(name)
	if enc == nil {
		out, _ := decodeUTF8Lenient(data)
		return out
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		lenient, _ := decodeUTF8Lenient(data)
		return lenient
	}
	return string(out)
}

// decodeUTF8Lenient returns data as a string unchanged, together with
// whether it is valid UTF-8. Invalid bytes are kept as they are; ranging
// over the result (as FinalCheck does) reads each of them as U+FFFD.
func decodeUTF8Lenient(data []byte) (string, bool) {
	return string(data), utf8.Valid(data)
}

// lookupEncoding maps a canonical name to its golang.org/x/text encoder.
// tis620 and iso885911 (Thai) and cp949 (Korean) have no dedicated x/text
// implementation; the nearest available codepage is used since the two are
// byte-compatible for the common range.
func lookupEncoding(name string) encoding.Encoding {
	switch name {
	case "utf8":
		return encoding.Nop
	case "utf16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "win1250":
		return charmap.Windows1250
	case "win1251":
		return charmap.Windows1251
	case "win1252":
		return charmap.Windows1252
	case "win1253":
		return charmap.Windows1253
	case "win1254":
		return charmap.Windows1254
	case "win1255":
		return charmap.Windows1255
	case "win1256":
		return charmap.Windows1256
	case "win1257":
		return charmap.Windows1257
	case "win1258":
		return charmap.Windows1258
	case "win874", "tis620", "iso885911":
		return charmap.Windows874
	case "iso88591":
		return charmap.ISO8859_1
	case "iso88592":
		return charmap.ISO8859_2
	case "iso88595":
		return charmap.ISO8859_5
	case "iso88596":
		return charmap.ISO8859_6
	case "iso88597":
		return charmap.ISO8859_7
	case "iso88598":
		return charmap.ISO8859_8
	case "iso88599":
		return charmap.ISO8859_9
	case "iso885913":
		return charmap.ISO8859_13
	case "koi8r":
		return charmap.KOI8R
	case "koi8u":
		return charmap.KOI8U
	case "gbk", "gb2312":
		return simplifiedchinese.GBK
	case "big5":
		return traditionalchinese.Big5
	case "shiftjis":
		return japanese.ShiftJIS
	case "eucjp":
		return japanese.EUCJP
	case "iso2022jp":
		return japanese.ISO2022JP
	case "euckr", "cp949":
		return korean.EUCKR
	default:
		return nil
	}
}
