package pinyin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeSpacedSyllables(t *testing.T) {
	tk := NewTokenizer()
	assert.Equal(t, []string{"ta", "de"}, tk.Tokenize("ta de"))
}

func TestTokenizeUnspacedSyllables(t *testing.T) {
	tk := NewTokenizer()
	assert.Equal(t, []string{"ta", "de"}, tk.Tokenize("tade"))
	assert.Equal(t, []string{"ni", "hao"}, tk.Tokenize("nihao"))
}

func TestTokenizePrefersLongestMatch(t *testing.T) {
	tk := NewTokenizer()
	// "xian" is itself a syllable, so greedy matching must not split it
	// into "xi" + "an".
	assert.Equal(t, []string{"xian"}, tk.Tokenize("xian"))
	assert.Equal(t, []string{"zhuang"}, tk.Tokenize("zhuang"))
}

func TestTokenizeSkipsNonPinyinResidue(t *testing.T) {
	tk := NewTokenizer()
	assert.Equal(t, []string{"ta"}, tk.Tokenize("xxta"))
	assert.Empty(t, tk.Tokenize("qqq"))
}

func TestTokenizeCollapsesWhitespace(t *testing.T) {
	tk := NewTokenizer()
	assert.Equal(t, []string{"ta", "de"}, tk.Tokenize("  ta\t de \n"))
}

func TestIsSyllable(t *testing.T) {
	tk := NewTokenizer()
	assert.True(t, tk.IsSyllable("zhong"))
	assert.True(t, tk.IsSyllable("lv"))
	assert.False(t, tk.IsSyllable("zh"))
	assert.False(t, tk.IsSyllable(""))
}

func TestReadingsCoverHeteronyms(t *testing.T) {
	readings := Readings()

	// 银 has a single reading, 长 is a classic heteronym.
	assert.Equal(t, []string{"yin"}, readings('银'))
	assert.ElementsMatch(t, []string{"chang", "zhang"}, readings('长'))

	// Non-Chinese input has no reading.
	assert.Empty(t, readings('a'))
}
