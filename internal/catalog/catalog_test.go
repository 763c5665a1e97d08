package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoLetter(s string) string {
	if s == "eng" {
		return "en"
	}
	if s == "fre" {
		return "fr"
	}
	return s
}

func TestFilterByLangPreservesOrder(t *testing.T) {
	cands := []Candidate{
		{ID: "1", Lang: "eng"},
		{ID: "2", Lang: "fre"},
		{ID: "3", Lang: "eng"},
	}
	out := FilterByLang(cands, "en", twoLetter)
	assert.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ID)
	assert.Equal(t, "3", out[1].ID)
}

func TestMergeByLangKeepsPrimaryFirst(t *testing.T) {
	primary := []Candidate{{ID: "p1"}}
	specialist := []Candidate{{ID: "s1"}}
	out := MergeByLang(primary, specialist)
	assert.Equal(t, []Candidate{{ID: "p1"}, {ID: "s1"}}, out)
}

func TestSessionStateRefreshAndInvalidate(t *testing.T) {
	var s SessionState

	_, ok := s.Cookie()
	assert.False(t, ok)

	s.Refresh("abc")
	cookie, ok := s.Cookie()
	assert.True(t, ok)
	assert.Equal(t, "abc", cookie)

	s.Invalidate()
	_, ok = s.Cookie()
	assert.False(t, ok)
}
