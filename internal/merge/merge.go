// Package merge aligns a main-language cue stream with a translation cue
// stream by overlap or proximity and produces one bilingual stream, the
// italic translation line appended beneath the main line.
package merge

import (
	"errors"
	"regexp"

	"subtrellis/internal/cue"
)

// DefaultThresholdMS is the merge_threshold_ms default from §3.
const DefaultThresholdMS = 500

// ErrEmptyMerge is the §7 empty_merge signal, raised when the main stream
// itself is empty — there is nothing to merge into.
var ErrEmptyMerge = errors.New("merge: no output cues")

// htmlTag matches every span from a < to the next >, the minimal sanitizer
// used in place of a full HTML parser. Escapes are not recognized: an
// escaped < still starts a span that is stripped.
var htmlTag = regexp.MustCompile(`<[^>]*>`)

// Merge walks main in order against trans using a monotonic cursor and
// returns a stream of the same length as main, same ids and timings,
// enriched with the matched translation line where one was found.
func Merge(main, trans cue.Stream, thresholdMS int64) (cue.Stream, error) {
	if len(main) == 0 {
		return nil, ErrEmptyMerge
	}
	if thresholdMS <= 0 {
		thresholdMS = DefaultThresholdMS
	}

	out := make(cue.Stream, len(main))
	transIndex := 0

	for i, m := range main {
		bestIdx := -1
		bestDiff := int64(-1)
		foundMatch := false

		for j := transIndex; j < len(trans); j++ {
			t := trans[j]

			if t.EndMS < m.StartMS-2*thresholdMS && j == transIndex {
				transIndex = j + 1
			}

			if isCandidate(m, t, thresholdMS) {
				diff := absDiff(m.StartMS, t.StartMS)
				if !foundMatch || diff < bestDiff {
					bestIdx = j
					bestDiff = diff
					foundMatch = true
				}
			}

			if t.StartMS > m.EndMS+thresholdMS {
				break
			}
		}

		text := flatten(m.Text)
		if foundMatch {
			text = text + "\n<i>" + flatten(trans[bestIdx].Text) + "</i>"
		}

		out[i] = cue.Cue{SequenceID: m.SequenceID, StartMS: m.StartMS, EndMS: m.EndMS, Text: text}
	}

	return out, nil
}

// isCandidate implements the five-way candidacy test from §4.4.
func isCandidate(m, t cue.Cue, thresholdMS int64) bool {
	startsWithin := t.StartMS >= m.StartMS && t.StartMS < m.EndMS
	endsWithin := t.EndMS > m.StartMS && t.EndMS <= m.EndMS
	fullyWithin := t.StartMS >= m.StartMS && t.EndMS <= m.EndMS
	contains := t.StartMS <= m.StartMS && t.EndMS >= m.EndMS
	proximate := absDiff(m.StartMS, t.StartMS) < thresholdMS
	return startsWithin || endsWithin || fullyWithin || contains || proximate
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}

var newlineRun = regexp.MustCompile(`\r\n|\r|\n`)

// flatten strips HTML tags and collapses any newline into a single space,
// guaranteeing the merged cue has exactly one newline, between the two
// languages.
func flatten(s string) string {
	s = htmlTag.ReplaceAllString(s, "")
	return newlineRun.ReplaceAllString(s, " ")
}
