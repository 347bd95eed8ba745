package matcher

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Native finds each pattern with the standard library substring search,
// restarting past the end of every hit so the same anchor is never
// reported twice for one pattern.
type Native struct {
	patterns []Pattern
}

// NewNative builds a native substring-search matcher over patterns.
func NewNative(patterns []Pattern) (*Native, error) {
	if err := validatePatterns(patterns); err != nil {
		return nil, fmt.Errorf("native: %w", err)
	}
	return &Native{patterns: patterns}, nil
}

func (n *Native) Name() string { return "Native" }

func (n *Native) Find(text string) MatchResult {
	var matches MatchResult
	for _, pattern := range n.patterns {
		byteIdx := 0
		for byteIdx < len(text) {
			rel := strings.Index(text[byteIdx:], pattern)
			if rel < 0 {
				break
			}
			abs := byteIdx + rel
			matches = append(matches, Match{
				Pos:     utf8.RuneCountInString(text[:abs]),
				Pattern: pattern,
			})
			byteIdx = abs + len(pattern)
		}
	}
	return matches
}

func (n *Native) Dump() string {
	return fmt.Sprintf("Native(patterns=%d)", len(n.patterns))
}
