// Package pinyin supplies the two collaborators the fuzzy-evasion layer
// needs: per-character pinyin readings with heteronym support, and a
// syllable tokenizer for romanized input. Both are injected into the
// preprocessor rather than accessed through package-level state.
package pinyin

import gopinyin "github.com/mozillazg/go-pinyin"

// ReadingsFunc returns the candidate plain-style (toneless) readings of a
// single Chinese character, one entry per heteronym. Characters without a
// reading yield an empty slice.
type ReadingsFunc func(r rune) []string

// Readings returns a heteronym-aware ReadingsFunc backed by go-pinyin.
func Readings() ReadingsFunc {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Normal
	args.Heteronym = true

	return func(r rune) []string {
		return dedupe(gopinyin.SinglePinyin(r, args))
	}
}

// go-pinyin can report the same toneless reading for several toned
// heteronyms; collapse them while preserving order.
func dedupe(readings []string) []string {
	seen := make(map[string]struct{}, len(readings))
	out := readings[:0]
	for _, r := range readings {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
