// Package codectables holds the static, read-only tables shared by the
// decode and language-verification stages: ISO code rollups, per-language
// codepage priority, script-block ranges and the related-language groups
// that let a dual-subtitle request accept a mutually intelligible relative
// instead of an exact match.
//
// Everything here is initialized at process start and never mutated; every
// request-scoped stage reads these maps freely with no locking.
package codectables

import (
	"strings"

	iso "github.com/barbashov/iso639-3"
)

// LanguageTag is a 2- or 3-letter language code as received from a catalog
// or a caller. Lookups normalize it to the internal 2-letter form.
type LanguageTag string

// skipSet holds tags that mean "pre-mixed bilingual" upstream; merging two
// streams that are already bilingual would double the translation line, so
// the orchestrator treats these as unusable for either slot.
var skipSet = map[string]struct{}{
	"pob": {}, // Brazilian Portuguese alias used by some catalogs to flag mixed tracks
}

// Skippable reports whether tag is in the fixed skip-set.
func Skippable(tag LanguageTag) bool {
	_, ok := skipSet[strings.ToLower(string(tag))]
	return ok
}

// threeToOne maps ISO 639-2/B (bibliographic) and ISO 639-2/T
// (terminological) codes, common ISO 639-3 codes, and three-letter
// macrolanguage member codes to the 639-1 code they resolve or roll up to.
var threeToOne = map[string]string{
	// bibliographic/terminological pairs
	"alb": "sq", "sqi": "sq",
	"arm": "hy", "hye": "hy",
	"baq": "eu", "eus": "eu",
	"bur": "my", "mya": "my",
	"chi": "zh", "zho": "zh",
	"cze": "cs", "ces": "cs",
	"dut": "nl", "nld": "nl",
	"fre": "fr", "fra": "fr",
	"geo": "ka", "kat": "ka",
	"ger": "de", "deu": "de",
	"gre": "el", "ell": "el",
	"ice": "is", "isl": "is",
	"mac": "mk", "mkd": "mk",
	"mao": "mi", "mri": "mi",
	"may": "ms", "msa": "ms",
	"per": "fa", "fas": "fa",
	"rum": "ro", "ron": "ro",
	"slo": "sk", "slk": "sk",
	"tib": "bo", "bod": "bo",
	"wel": "cy", "cym": "cy",

	// direct 639-3 -> 639-1 for common single-letter-pair languages
	"eng": "en", "spa": "es", "por": "pt", "ita": "it", "rus": "ru",
	"jpn": "ja", "kor": "ko", "ara": "ar", "heb": "he", "tur": "tr",
	"pol": "pl", "ukr": "uk", "vie": "vi", "tha": "th", "ind": "id",
	"hin": "hi", "ben": "bn", "fin": "fi", "swe": "sv", "nor": "no",
	"nob": "no", "nno": "no", "dan": "da", "hrv": "hr", "srp": "sr",
	"bos": "bs", "slv": "sl", "bul": "bg", "est": "et", "lav": "lv",
	"lit": "lt", "cat": "ca", "glg": "gl", "aze": "az", "kaz": "kk",
	"mon": "mn", "tgl": "tl", "hun": "hu",

	// macrolanguage rollups (§4.2)
	"cmn": "zh", "yue": "zh", "wuu": "zh", "nan": "zh", "hak": "zh",
	"khk": "mn",
	"arb": "ar", "acm": "ar", "apc": "ar", "ars": "ar",
	"zsm": "ms",
}

// ToTwoLetter normalizes any 2- or 3-letter tag to its canonical 2-letter
// form where one exists. The spec pins the semantic content of a handful of
// bibliographic aliases and macrolanguage rollups (threeToOne); every other
// 3-letter code is resolved against the full ISO 639-3 table for the
// authoritative 639-1 mapping, falling back to the full ISO 639-3 code if
// no 639-1 code exists.
func ToTwoLetter(tag LanguageTag) string {
	t := strings.ToLower(strings.TrimSpace(string(tag)))
	if len(t) == 2 {
		return t
	}
	if mapped, ok := threeToOne[t]; ok {
		return mapped
	}
	if len(t) == 3 {
		if lang := iso.FromAnyCode(t); lang != nil {
			switch {
			case lang.Part1 != "":
				return lang.Part1
			case lang.Part3 != "":
				return lang.Part3
			}
		}
	}
	if len(t) >= 2 {
		return t[:2]
	}
	return t
}

// relatedGroups expresses mutual intelligibility. Membership is looked up
// symmetrically by RelatedLanguageGroup even though some source entries are
// asymmetric lists (a code may list relatives that don't list it back).
var relatedGroups = map[string][]string{
	// South Slavic, Latin-script
	"hr": {"bs", "sr", "sl"},
	"bs": {"hr", "sr", "sl"},
	"sr": {"hr", "bs", "sl"},
	"sl": {"hr", "bs", "sr"},

	// West Slavic
	"cs": {"sk"},
	"sk": {"cs", "pl"},
	"pl": {"sk"},

	// Scandinavian
	"no": {"da", "sv"},
	"da": {"no", "sv"},
	"sv": {"no", "da"},

	// Iberian Romance
	"pt": {"gl"},
	"gl": {"pt", "es"},
	"es": {"gl", "ca"},
	"ca": {"es"},

	// Malay-Indonesian
	"ms": {"id"},
	"id": {"ms"},

	// East Slavic
	"ru": {"uk", "be"},
	"uk": {"ru", "be"},
	"be": {"ru", "uk"},
}

// RelatedLanguageGroup returns the set of 2-letter codes considered
// mutually intelligible with code, per the static groups above. The lookup
// is symmetric: if code is not itself a key but appears as a relative of
// another key, that key is included too.
func RelatedLanguageGroup(code string) []string {
	code = strings.ToLower(code)
	seen := map[string]struct{}{}
	var out []string
	add := func(c string) {
		if c == code {
			return
		}
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for _, r := range relatedGroups[code] {
		add(r)
	}
	for key, relatives := range relatedGroups {
		for _, r := range relatives {
			if r == code {
				add(key)
			}
		}
	}
	return out
}

// IsRelated reports whether b is in a's related-language group (or vice
// versa), which is how LangVerifier's acceptance rule is checked.
func IsRelated(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	for _, r := range RelatedLanguageGroup(a) {
		if r == b {
			return true
		}
	}
	for _, r := range RelatedLanguageGroup(b) {
		if r == a {
			return true
		}
	}
	return false
}

// ScriptRange is a closed Unicode code-point interval.
type ScriptRange struct {
	Lo, Hi rune
}

// scriptBlocks gives each language the code-point ranges characteristic of
// its primary script, used to validate a legacy-codepage repair candidate.
var scriptBlocks = map[string][]ScriptRange{
	"ru": {{Lo: 0x0400, Hi: 0x04FF}},
	"uk": {{Lo: 0x0400, Hi: 0x04FF}},
	"be": {{Lo: 0x0400, Hi: 0x04FF}},
	"bg": {{Lo: 0x0400, Hi: 0x04FF}},
	"sr": {{Lo: 0x0400, Hi: 0x04FF}},
	"mk": {{Lo: 0x0400, Hi: 0x04FF}},
	"el": {{Lo: 0x0370, Hi: 0x03FF}},
	"he": {{Lo: 0x0590, Hi: 0x05FF}},
	"ar": {{Lo: 0x0600, Hi: 0x06FF}},
	"fa": {{Lo: 0x0600, Hi: 0x06FF}},
	"ur": {{Lo: 0x0600, Hi: 0x06FF}},
	"th": {{Lo: 0x0E00, Hi: 0x0E7F}},
	"hi": {{Lo: 0x0900, Hi: 0x097F}},
	"bn": {{Lo: 0x0980, Hi: 0x09FF}},
	"ja": {{Lo: 0x3040, Hi: 0x30FF}, {Lo: 0x4E00, Hi: 0x9FFF}},
	"ko": {{Lo: 0xAC00, Hi: 0xD7A3}},
	"zh": {{Lo: 0x4E00, Hi: 0x9FFF}},
	"hy": {{Lo: 0x0530, Hi: 0x058F}},
	"ka": {{Lo: 0x10A0, Hi: 0x10FF}},
}

// ScriptCoverage returns the fraction (0..1) of runes in s that fall inside
// any of code's characteristic script ranges. Returns 0 if code has no
// known script blocks.
func ScriptCoverage(s string, code string) float64 {
	ranges, ok := scriptBlocks[strings.ToLower(code)]
	if !ok || len(ranges) == 0 {
		return 0
	}
	var total, hits int
	for _, r := range s {
		total++
		for _, rg := range ranges {
			if r >= rg.Lo && r <= rg.Hi {
				hits++
				break
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// impossiblePairs lists script co-occurrences that never happen in a real
// document and therefore flag a corrupt decode outright.
var impossiblePairs = [][2]string{
	{"he", "th"},
	{"ar", "th"},
	{"ru", "th"},
}

// HasImpossibleScriptPair reports whether s contains runes from two of the
// scripts named in any entry of impossiblePairs.
func HasImpossibleScriptPair(s string) bool {
	present := map[string]bool{}
	for _, r := range s {
		for code, ranges := range scriptBlocks {
			if present[code] {
				continue
			}
			for _, rg := range ranges {
				if r >= rg.Lo && r <= rg.Hi {
					present[code] = true
					break
				}
			}
		}
	}
	for _, pair := range impossiblePairs {
		if present[pair[0]] && present[pair[1]] {
			return true
		}
	}
	return false
}

// EncodingPriority returns the ordered list of canonical encoding names to
// try for a given language hint, most likely first, followed by the fixed
// global fallback order.
func EncodingPriority(hint string) []string {
	hint = strings.ToLower(hint)
	var priority []string
	switch hint {
	case "ru", "uk", "be", "bg", "sr", "mk":
		priority = []string{"win1251", "iso88595", "koi8r"}
	case "uk1":
		priority = []string{"koi8u"}
	case "el":
		priority = []string{"win1253", "iso88597"}
	case "th":
		priority = []string{"win874", "tis620", "iso885911"}
	case "he":
		priority = []string{"win1255", "iso88598"}
	case "ar", "fa", "ur":
		priority = []string{"win1256", "iso88596"}
	case "tr":
		priority = []string{"win1254", "iso88599"}
	case "zh":
		priority = []string{"gbk", "gb2312", "big5"}
	case "ja":
		priority = []string{"shiftjis", "eucjp", "iso2022jp"}
	case "ko":
		priority = []string{"euckr", "cp949"}
	case "vi":
		priority = []string{"win1258"}
	case "lt", "lv", "et":
		priority = []string{"win1257", "iso885913"}
	case "pl", "cs", "sk", "hu", "hr", "sl", "ro":
		priority = []string{"win1250", "iso88592"}
	}
	return append(priority, globalFallbackOrder...)
}

// globalFallbackOrder is tried when no language hint is available, or after
// a hint's own priority list has been exhausted.
var globalFallbackOrder = []string{
	"win1252", "iso88591", "win1250", "win1251", "win1253", "win1254",
	"win1255", "win1256", "win1257", "win1258", "win874",
	"iso88592", "iso88595", "iso88596", "iso88597", "iso88598", "iso88599",
	"koi8r", "koi8u", "gbk", "big5", "shiftjis", "euckr",
}

// CanonicalizeDetectorLabel maps a third-party encoding detector's label to
// the canonical names used throughout this codebase.
func CanonicalizeDetectorLabel(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	l = strings.ReplaceAll(l, "_", "-")
	switch l {
	case "utf-8", "ascii", "us-ascii":
		return "utf8"
	case "utf-16le":
		return "utf16le"
	case "utf-16be":
		return "utf16be"
	case "iso-8859-1", "latin1":
		return "iso88591"
	case "iso-8859-2":
		return "iso88592"
	case "iso-8859-5":
		return "iso88595"
	case "iso-8859-6":
		return "iso88596"
	case "iso-8859-7":
		return "iso88597"
	case "iso-8859-8":
		return "iso88598"
	case "iso-8859-9", "windows-1254-alias":
		return "iso88599"
	case "iso-8859-11":
		return "iso885911"
	case "iso-8859-13":
		return "iso885913"
	case "windows-1250":
		return "win1250"
	case "windows-1251":
		return "win1251"
	case "windows-1252":
		return "win1252"
	case "windows-1253":
		return "win1253"
	case "windows-1254":
		return "win1254"
	case "windows-1255":
		return "win1255"
	case "windows-1256":
		return "win1256"
	case "windows-1257":
		return "win1257"
	case "windows-1258":
		return "win1258"
	case "tis-620":
		return "tis620"
	case "koi8-r":
		return "koi8r"
	case "koi8-u":
		return "koi8u"
	case "gb18030", "gb2312", "gbk", "hz-gb-2312":
		return "gbk"
	case "big5":
		return "big5"
	case "shift_jis", "shift-jis", "sjis":
		return "shiftjis"
	case "euc-jp":
		return "eucjp"
	case "iso-2022-jp":
		return "iso2022jp"
	case "euc-kr":
		return "euckr"
	case "cp949", "x-windows-949":
		return "cp949"
	default:
		return ""
	}
}

// Supported reports whether name is one of the canonical encodings the
// decoder knows how to instantiate.
func Supported(name string) bool {
	switch name {
	case "utf8", "utf16le", "utf16be",
		"win1250", "win1251", "win1252", "win1253", "win1254", "win1255",
		"win1256", "win1257", "win1258", "win874",
		"iso88591", "iso88592", "iso88595", "iso88596", "iso88597", "iso88598",
		"iso88599", "iso885911", "iso885913",
		"koi8r", "koi8u", "gbk", "gb2312", "big5",
		"shiftjis", "eucjp", "iso2022jp", "euckr", "cp949", "tis620":
		return true
	default:
		return false
	}
}
