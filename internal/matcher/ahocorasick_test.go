package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestACSuffixPatternsReported(t *testing.T) {
	// "cde" is a suffix of "abcde": the fail-link copy must surface both
	// when the longer pattern matches.
	ac, err := NewAC([]Pattern{"abcde", "cde"})
	require.NoError(t, err)

	got := SortResult(ac.Find("abcde"))
	assert.Equal(t, MatchResult{
		{Pos: 0, Pattern: "abcde"},
		{Pos: 2, Pattern: "cde"},
	}, got)
}

func TestACChainedSuffixPatterns(t *testing.T) {
	ac, err := NewAC([]Pattern{"国际文凭课程", "文凭课程", "课程"})
	require.NoError(t, err)

	got := SortResult(ac.Find("国际文凭课程"))
	assert.Equal(t, MatchResult{
		{Pos: 0, Pattern: "国际文凭课程"},
		{Pos: 2, Pattern: "文凭课程"},
		{Pos: 4, Pattern: "课程"},
	}, got)
}

func TestACRestartsViaFailLinks(t *testing.T) {
	// After a partial "longlongw..." the scan must fall back and still
	// catch "ongword" ending inside the abandoned prefix.
	ac, err := NewAC([]Pattern{"longlongwordx", "ongword"})
	require.NoError(t, err)

	got := SortResult(ac.Find("longlongword"))
	assert.Equal(t, MatchResult{{Pos: 5, Pattern: "ongword"}}, got)
}

func TestACDuplicatePatternReportedTwice(t *testing.T) {
	ac, err := NewAC([]Pattern{"文凭", "文凭"})
	require.NoError(t, err)

	got := SortResult(ac.Find("文凭"))
	assert.Equal(t, MatchResult{
		{Pos: 0, Pattern: "文凭"},
		{Pos: 0, Pattern: "文凭"},
	}, got)
}

func TestACDeterministicConstruction(t *testing.T) {
	build := func() *AC {
		ac, err := NewAC(englishPatterns)
		require.NoError(t, err)
		return ac
	}

	first, second := build(), build()
	assert.Equal(t, first.Dump(), second.Dump())
	assert.Equal(t,
		SortResult(first.Find(englishText)),
		SortResult(second.Find(englishText)))
}

func TestACInsertAfterSealPanics(t *testing.T) {
	ac, err := NewAC([]Pattern{"文凭"})
	require.NoError(t, err)

	assert.Panics(t, func() { ac.insert("课程") })
}

func TestACScanIsReadOnly(t *testing.T) {
	ac, err := NewAC(chinesePatterns)
	require.NoError(t, err)

	first := SortResult(ac.Find(chineseText))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, SortResult(ac.Find(chineseText)))
	}
}
