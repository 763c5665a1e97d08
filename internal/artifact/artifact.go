// Package artifact names the output SRT file the orchestrator produces,
// sanitizing the upstream content id the way the teacher's naming helper
// sanitizes user-supplied layer names: NFKC fold, strip to a safe
// identifier alphabet, then render the fixed grammar.
package artifact

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Episode identifies a season/episode pair, omitted from the filename when
// Season is zero (movies have no season).
type Episode struct {
	Season  int
	Episode int
}

// Name renders the §6 output artifact grammar:
// {content_id}[_S{season}E{episode}]_{main_tag}_{trans_tag}_v{n}.srt
func Name(contentID string, ep Episode, mainTag, transTag string, version int) string {
	id := sanitize(contentID)
	var b strings.Builder
	b.WriteString(id)
	if ep.Season > 0 {
		b.WriteString(fmt.Sprintf("_S%02dE%02d", ep.Season, ep.Episode))
	}
	b.WriteByte('_')
	b.WriteString(strings.ToLower(mainTag))
	b.WriteByte('_')
	b.WriteString(strings.ToLower(transTag))
	b.WriteString("_v")
	b.WriteString(strconv.Itoa(version))
	b.WriteString(".srt")
	return b.String()
}

// ContentType is the §6 output artifact content type.
const ContentType = "text/srt; charset=utf-8"

// sanitize NFKC-normalizes an arbitrary catalog key and keeps only
// letters, digits, underscore and hyphen, collapsing everything else into
// a single underscore, the way the teacher's name sanitizer folds
// arbitrary file/layer names into safe identifiers.
func sanitize(s string) string {
	s = norm.NFKC.String(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	prevUnderscore := false
	for _, r := range s {
		if r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevUnderscore = false
			continue
		}
		if !prevUnderscore {
			b.WriteByte('_')
			prevUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "unnamed"
	}
	return out
}
