package cue

import (
	"strconv"
	"strings"
)

// Serialize renders a Stream as SRT text with sequential 1-based ids,
// regardless of the SequenceID values carried on the input cues. Output is
// a pure function of the input: Parse(Serialize(c)) reproduces c with ids
// renumbered from 1.
func Serialize(s Stream) string {
	var b strings.Builder
	for i, c := range s {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
		b.WriteString(formatTimestamp(c.StartMS))
		b.WriteString(" --> ")
		b.WriteString(formatTimestamp(c.EndMS))
		b.WriteByte('\n')
		b.WriteString(c.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

func formatTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	h := ms / 3600000
	ms %= 3600000
	m := ms / 60000
	ms %= 60000
	s := ms / 1000
	ms %= 1000
	return pad2(h) + ":" + pad2(m) + ":" + pad2(s) + "," + pad3(ms)
}

func pad2(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) < 2 {
		return strings.Repeat("0", 2-len(s)) + s
	}
	return s
}

func pad3(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) < 3 {
		return strings.Repeat("0", 3-len(s)) + s
	}
	return s
}
