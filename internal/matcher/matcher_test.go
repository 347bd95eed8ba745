package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	englishPatterns = []Pattern{"longlo", "ongword", "shortword", "shiningword", "longlongword"}
	englishText     = "shortwordlonglongword"
	englishExpected = MatchResult{
		{Pos: 0, Pattern: "shortword"},
		{Pos: 9, Pattern: "longlo"},
		{Pos: 9, Pattern: "longlongword"},
		{Pos: 14, Pattern: "ongword"},
	}

	chinesePatterns = []Pattern{"他", "她", "他的", "她的"}
	chineseText     = "他和她的"
	chineseExpected = MatchResult{
		{Pos: 0, Pattern: "他"},
		{Pos: 2, Pattern: "她"},
		{Pos: 2, Pattern: "她的"},
	}
)

func TestMatchEnglish(t *testing.T) {
	for _, algo := range Algos {
		t.Run(string(algo), func(t *testing.T) {
			m, err := New(englishPatterns, Options{Algorithm: algo})
			require.NoError(t, err)

			res := m.Match(englishText)
			require.Len(t, res, 1)
			assert.Equal(t, englishExpected, SortResult(res[0]))
		})
	}
}

func TestMatchChinese(t *testing.T) {
	for _, algo := range Algos {
		t.Run(string(algo), func(t *testing.T) {
			m, err := New(chinesePatterns, Options{Algorithm: algo})
			require.NoError(t, err)

			res := m.Match(chineseText)
			require.Len(t, res, 1)
			assert.Equal(t, chineseExpected, SortResult(res[0]))
		})
	}
}

func TestMatchEmptyText(t *testing.T) {
	m, err := New(chinesePatterns, Options{Algorithm: AlgoAC})
	require.NoError(t, err)

	res := m.Match("")
	require.Len(t, res, 1)
	assert.Empty(t, res[0])
}

func TestMatchNormalizesInput(t *testing.T) {
	m, err := New([]Pattern{"shortword"}, Options{Algorithm: AlgoAC})
	require.NoError(t, err)

	// Uppercase and accented input normalizes before matching.
	res := m.Match("SHÓRTWÓRD")
	require.Len(t, res, 1)
	assert.Equal(t, MatchResult{{Pos: 0, Pattern: "shortword"}}, SortResult(res[0]))
}

func TestNewRejectsEmptyPatternSet(t *testing.T) {
	for _, algo := range Algos {
		_, err := New(nil, Options{Algorithm: algo})
		assert.ErrorIs(t, err, ErrNoPatterns, string(algo))
	}
}

func TestNewRejectsEmptyPattern(t *testing.T) {
	for _, algo := range Algos {
		_, err := New([]Pattern{"他", ""}, Options{Algorithm: algo})
		assert.ErrorIs(t, err, ErrEmptyPattern, string(algo))
	}
}

func TestNewRejectsShortPatternForWM(t *testing.T) {
	// "他" is 3 bytes; block size 4 cannot be satisfied.
	_, err := New([]Pattern{"他"}, Options{Algorithm: AlgoWM, BlockSize: 4})
	assert.ErrorIs(t, err, ErrShortPattern)
}

func TestNewRejectsUnknownAlgo(t *testing.T) {
	_, err := New(chinesePatterns, Options{Algorithm: "kmp"})
	assert.ErrorIs(t, err, ErrUnknownAlgo)
}

func TestDumpIsDiagnosticOnly(t *testing.T) {
	for _, algo := range Algos {
		m, err := New(chinesePatterns, Options{Algorithm: algo})
		require.NoError(t, err)

		before := m.Dump()
		res := m.Match(chineseText)
		require.Len(t, res, 1)
		assert.Equal(t, before, m.Dump(), "dump must not mutate state")
		assert.NotEmpty(t, before)
	}
}

func TestSortResults(t *testing.T) {
	results := []MatchResult{
		{{Pos: 3, Pattern: "b"}, {Pos: 1, Pattern: "a"}},
		{{Pos: 0, Pattern: "a"}},
	}
	sorted := SortResults(results)
	assert.Equal(t, []MatchResult{
		{{Pos: 0, Pattern: "a"}},
		{{Pos: 1, Pattern: "a"}, {Pos: 3, Pattern: "b"}},
	}, sorted)
}
