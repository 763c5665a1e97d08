package cue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "1\n00:00:01,000 --> 00:00:02,500\nHello there\n\n2\n00:00:03,000 --> 00:00:04,000\nSecond line\n"

func TestParseValidStream(t *testing.T) {
	s, err := Parse(sample)
	require.NoError(t, err)
	require.Len(t, s, 2)
	assert.Equal(t, int64(1000), s[0].StartMS)
	assert.Equal(t, int64(2500), s[0].EndMS)
	assert.Equal(t, "Hello there", s[0].Text)
	assert.Equal(t, "Second line", s[1].Text)
}

func TestParseStripsBOM(t *testing.T) {
	s, err := Parse("\xef\xbb\xbf" + sample)
	require.NoError(t, err)
	require.Len(t, s, 2)
}

func TestParseFailsOnMalformedBlock(t *testing.T) {
	_, err := Parse("1\nnot-a-timestamp\ntext\n")
	assert.ErrorIs(t, err, ErrParseFailure)
}

func TestParseFailsWholeDocumentOnOneBadBlock(t *testing.T) {
	bad := sample + "\n3\nbroken\ntext\n"
	_, err := Parse(bad)
	assert.ErrorIs(t, err, ErrParseFailure)
}

func TestParseFiltersAdKeyword(t *testing.T) {
	withAd := "1\n00:00:01,000 --> 00:00:02,000\nDownloaded from OpenSubtitles.org\n\n" +
		"2\n00:00:03,000 --> 00:00:04,000\nReal subtitle line\n"
	s, err := Parse(withAd)
	require.NoError(t, err)
	require.Len(t, s, 1)
	assert.Equal(t, "Real subtitle line", s[0].Text)
}

func TestSerializeRenumbersSequentially(t *testing.T) {
	s := Stream{
		{SequenceID: 7, StartMS: 1000, EndMS: 2500, Text: "a"},
		{SequenceID: 9, StartMS: 3000, EndMS: 4000, Text: "b"},
	}
	out := Serialize(s)
	assert.Contains(t, out, "1\n00:00:01,000 --> 00:00:02,500\na")
	assert.Contains(t, out, "2\n00:00:03,000 --> 00:00:04,000\nb")
}

func TestParseSerializeRoundTrip(t *testing.T) {
	s, err := Parse(sample)
	require.NoError(t, err)
	reparsed, err := Parse(Serialize(s))
	require.NoError(t, err)
	require.Len(t, reparsed, len(s))
	for i := range s {
		assert.Equal(t, s[i].StartMS, reparsed[i].StartMS)
		assert.Equal(t, s[i].EndMS, reparsed[i].EndMS)
		assert.Equal(t, s[i].Text, reparsed[i].Text)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := Stream{{SequenceID: 1, StartMS: 0, EndMS: 100, Text: "x"}}
	c := s.Clone()
	c[0].Text = "changed"
	assert.Equal(t, "x", s[0].Text)
}
