package matcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWMDefaultBlockSize(t *testing.T) {
	wm, err := NewWM(englishPatterns, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultBlockSize, wm.blockSize)
}

func TestWMRejectsBlockSizeBelowOne(t *testing.T) {
	_, err := NewWM(englishPatterns, -1)
	assert.Error(t, err)
}

func TestWMRejectsTooShortPattern(t *testing.T) {
	// A 2-byte pattern cannot support a 3-byte block.
	_, err := NewWM([]Pattern{"ab", "abcdef"}, 3)
	assert.ErrorIs(t, err, ErrShortPattern)
}

func TestWMSharedBlocksKeepMinimumShift(t *testing.T) {
	// "ab" sits two bytes from the window end in "abcd" but one byte
	// from it in "zabc"; the shared entry must keep the smaller shift
	// or "zabc" occurrences would be skipped.
	wm, err := NewWM([]Pattern{"abcd", "zabc"}, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, wm.shift["ab"])
	assert.Equal(t, 0, wm.shift["bc"])

	got := SortResult(wm.Find("zabcd"))
	assert.Equal(t, MatchResult{
		{Pos: 0, Pattern: "zabc"},
		{Pos: 1, Pattern: "abcd"},
	}, got)
}

func TestWMVerifiesCandidatesFully(t *testing.T) {
	// "abyde" shares the prefix and suffix blocks of "abxde"; the byte
	// comparison must reject it.
	wm, err := NewWM([]Pattern{"abxde"}, 2)
	require.NoError(t, err)

	assert.Empty(t, wm.Find("abyde"))
	assert.Equal(t,
		MatchResult{{Pos: 2, Pattern: "abxde"}},
		SortResult(wm.Find("zzabxde")))
}

func TestWMOverlappingWindows(t *testing.T) {
	// Two candidates end one byte apart; the scan must advance by one
	// after a zero-shift window to catch both.
	wm, err := NewWM([]Pattern{"aab", "aba"}, 2)
	require.NoError(t, err)

	got := SortResult(wm.Find("aaba"))
	assert.Equal(t, MatchResult{
		{Pos: 0, Pattern: "aab"},
		{Pos: 1, Pattern: "aba"},
	}, got)
}

func TestWMLongPatternBeyondWindow(t *testing.T) {
	// minPtnLen is 4 ("word"): longer patterns still verify over their
	// full length, not just the scan window.
	wm, err := NewWM([]Pattern{"word", "wordlist"}, 2)
	require.NoError(t, err)

	got := SortResult(wm.Find("awordlist"))
	assert.Equal(t, MatchResult{
		{Pos: 1, Pattern: "word"},
		{Pos: 1, Pattern: "wordlist"},
	}, got)

	// A long-pattern prefix at the very end of the text must not match.
	got = SortResult(wm.Find("xxword"))
	assert.Equal(t, MatchResult{
		{Pos: 2, Pattern: "word"},
	}, got)
}

func TestWMNeverSkipsOccurrences(t *testing.T) {
	// Dense pattern embeddings against the brute force oracle: any
	// over-long shift value would lose one of these occurrences.
	patterns := []Pattern{"国际文凭", "文凭组织", "新加坡", "书院"}
	brute, err := NewBruteForce(patterns)
	require.NoError(t, err)
	wm, err := NewWM(patterns, 2)
	require.NoError(t, err)

	texts := []string{
		"国际文凭组织",
		"新加坡书院国际文凭",
		strings.Repeat("国际文凭", 3),
		"书院书院新加坡文凭组织的国际文凭组织",
	}
	for _, text := range texts {
		assert.Equal(t,
			SortResult(brute.Find(text)),
			SortResult(wm.Find(text)), text)
	}
}
