package matcher

import "fmt"

// BruteForce compares every pattern against every start position,
// character by character. It is the correctness oracle for the
// cleverer engines.
type BruteForce struct {
	patterns []Pattern
	runes    [][]rune
}

// NewBruteForce builds a brute force matcher over patterns.
func NewBruteForce(patterns []Pattern) (*BruteForce, error) {
	if err := validatePatterns(patterns); err != nil {
		return nil, fmt.Errorf("brute force: %w", err)
	}

	b := &BruteForce{
		patterns: patterns,
		runes:    make([][]rune, len(patterns)),
	}
	for i, p := range patterns {
		b.runes[i] = []rune(p)
	}
	return b, nil
}

func (b *BruteForce) Name() string { return "BruteForce" }

func (b *BruteForce) Find(text string) MatchResult {
	runes := []rune(text)

	var matches MatchResult
	for pi, pattern := range b.runes {
		for i := 0; i+len(pattern) <= len(runes); i++ {
			hit := true
			for j, pc := range pattern {
				if runes[i+j] != pc {
					hit = false
					break
				}
			}
			if hit {
				matches = append(matches, Match{Pos: i, Pattern: b.patterns[pi]})
			}
		}
	}
	return matches
}

func (b *BruteForce) Dump() string {
	return fmt.Sprintf("BruteForce(patterns=%d)", len(b.patterns))
}
