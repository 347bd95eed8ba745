package pinyin

import "strings"

// Tokenizer splits romanized Mandarin into syllables by greedy
// longest-match against the standard syllable inventory. Whitespace
// separates chunks; runs that never match a syllable are dropped as
// non-pinyin residue.
type Tokenizer struct {
	syllables map[string]struct{}
	maxLen    int
}

// NewTokenizer builds a tokenizer over the full Mandarin syllable table.
func NewTokenizer() *Tokenizer {
	t := &Tokenizer{syllables: make(map[string]struct{}, len(syllableTable))}
	for _, s := range syllableTable {
		t.syllables[s] = struct{}{}
		if len(s) > t.maxLen {
			t.maxLen = len(s)
		}
	}
	return t
}

// IsSyllable reports whether s is a valid toneless Mandarin syllable.
func (t *Tokenizer) IsSyllable(s string) bool {
	_, ok := t.syllables[s]
	return ok
}

// Tokenize returns the pinyin syllables found in s, in order.
func (t *Tokenizer) Tokenize(s string) []string {
	var out []string
	for _, chunk := range strings.Fields(s) {
		out = append(out, t.split(chunk)...)
	}
	return out
}

func (t *Tokenizer) split(chunk string) []string {
	var out []string
	for i := 0; i < len(chunk); {
		end := i + t.maxLen
		if end > len(chunk) {
			end = len(chunk)
		}
		matched := false
		for j := end; j > i; j-- {
			if _, ok := t.syllables[chunk[i:j]]; ok {
				out = append(out, chunk[i:j])
				i = j
				matched = true
				break
			}
		}
		if !matched {
			// Not pinyin at this position; skip the byte and resync.
			i++
		}
	}
	return out
}
