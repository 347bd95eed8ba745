package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold strips combining marks so accented Latin collapses to its
// ASCII base form ("café" -> "cafe").
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases text and transliterates its non-Chinese runs to an
// ASCII approximation. Chinese characters pass through untouched. The
// result is a fixed point: normalizing twice yields the same string.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	var sb strings.Builder
	sb.Grow(len(lowered))

	rs := []rune(lowered)
	for i := 0; i < len(rs); {
		j := i
		han := isHan(rs[i])
		for j < len(rs) && isHan(rs[j]) == han {
			j++
		}
		seg := string(rs[i:j])
		if !han {
			if folded, _, err := transform.String(asciiFold, seg); err == nil {
				seg = folded
			}
		}
		sb.WriteString(seg)
		i = j
	}
	return sb.String()
}

func isHan(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// mapRune bounds the characters eligible for the pinyin and radical maps.
func mapRune(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FA5
}

func mapRunes(s string) []rune {
	var out []rune
	for _, r := range s {
		if mapRune(r) {
			out = append(out, r)
		}
	}
	return out
}
