package matcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/textsec/blockmatch/pkg/log"
)

// DefaultBlockSize is B from the Wu-Manber paper.
const DefaultBlockSize = 2

// WM is a Wu-Manber block-hash matcher. It scans with a shift table keyed
// by fixed-size byte blocks and verifies zero-shift candidates with a full
// byte comparison, so block collisions never surface as matches. All
// tables are scoped to the first minPtnLen bytes of each pattern.
type WM struct {
	blockSize int
	minPtnLen int

	// shift maps a block to the minimum safe skip distance. hash maps the
	// suffix block (ending at minPtnLen) to its patterns; prefix maps the
	// leading block to its patterns.
	shift  map[string]int
	hash   map[string][]Pattern
	prefix map[string]map[Pattern]struct{}
}

// NewWM builds a Wu-Manber matcher with the given block size; pass 0 for
// the default. Every pattern must be at least blockSize bytes long.
func NewWM(patterns []Pattern, blockSize int) (*WM, error) {
	if err := validatePatterns(patterns); err != nil {
		return nil, fmt.Errorf("wumanber: %w", err)
	}
	if blockSize == 0 {
		blockSize = DefaultBlockSize
	}
	if blockSize < 1 {
		return nil, fmt.Errorf("wumanber: block size %d must be at least 1", blockSize)
	}

	minPtnLen := len(patterns[0])
	for _, p := range patterns[1:] {
		if len(p) < minPtnLen {
			minPtnLen = len(p)
		}
	}
	if minPtnLen < blockSize {
		return nil, fmt.Errorf("wumanber: %w: min pattern length %d < block size %d",
			ErrShortPattern, minPtnLen, blockSize)
	}

	w := &WM{
		blockSize: blockSize,
		minPtnLen: minPtnLen,
		shift:     make(map[string]int),
		hash:      make(map[string][]Pattern),
		prefix:    make(map[string]map[Pattern]struct{}),
	}
	for _, p := range patterns {
		w.insert(p)
	}
	return w, nil
}

func (w *WM) Name() string { return "WM" }

// insert records the shift distances for every block window inside the
// pattern's first minPtnLen bytes, then files the pattern under its suffix
// and prefix blocks. When several patterns share a block, the smallest
// shift wins: the skip must be safe for every one of them.
func (w *WM) insert(pattern Pattern) {
	for i := 0; i+w.blockSize <= w.minPtnLen; i++ {
		block := pattern[i : i+w.blockSize]
		dist := w.minPtnLen - i - w.blockSize
		if cur, ok := w.shift[block]; !ok || dist < cur {
			w.shift[block] = dist
		}
	}

	suffixKey := pattern[w.minPtnLen-w.blockSize : w.minPtnLen]
	if !containsPattern(w.hash[suffixKey], pattern) {
		w.hash[suffixKey] = append(w.hash[suffixKey], pattern)
	}

	prefixKey := pattern[:w.blockSize]
	if w.prefix[prefixKey] == nil {
		w.prefix[prefixKey] = make(map[Pattern]struct{})
	}
	w.prefix[prefixKey][pattern] = struct{}{}
}

func containsPattern(list []Pattern, p Pattern) bool {
	for _, cur := range list {
		if cur == p {
			return true
		}
	}
	return false
}

func (w *WM) Find(text string) MatchResult {
	textBytes := []byte(text)
	var matches MatchResult

	// Blocks never seen in any pattern allow the maximum safe skip.
	defaultShift := w.minPtnLen - w.blockSize + 1

	endPos := w.minPtnLen - 1
	for endPos < len(textBytes) {
		endBlock := string(textBytes[endPos-w.blockSize+1 : endPos+1])
		shift, ok := w.shift[endBlock]
		if !ok {
			shift = defaultShift
		}
		if shift != 0 {
			endPos += shift
			continue
		}

		// A pattern may end here: intersect the suffix-block and
		// prefix-block tables, then verify each candidate byte by byte.
		startPos := endPos - w.minPtnLen + 1
		startBlock := string(textBytes[startPos : startPos+w.blockSize])
		prefixSet := w.prefix[startBlock]
		for _, pattern := range w.hash[endBlock] {
			if _, ok := prefixSet[pattern]; !ok {
				continue
			}
			if startPos+len(pattern) > len(textBytes) {
				continue
			}
			if string(textBytes[startPos:startPos+len(pattern)]) != pattern {
				log.Debug("wumanber: false positive for %q at byte %d", pattern, startPos)
				continue
			}
			matches = append(matches, Match{
				Pos:     bytePosToCharPos(startPos+len(pattern)-1, textBytes, len(pattern)),
				Pattern: pattern,
			})
		}

		// Overlapping windows must still be checked.
		endPos++
	}
	return matches
}

// Dump renders the shift, hash and prefix tables with sorted keys.
func (w *WM) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "WM(blockSize=%d minPtnLen=%d)\n", w.blockSize, w.minPtnLen)

	fmt.Fprintf(&sb, "shift:\n")
	for _, block := range sortedKeys(w.shift) {
		fmt.Fprintf(&sb, "  %q: %d\n", block, w.shift[block])
	}
	fmt.Fprintf(&sb, "hash:\n")
	for _, block := range sortedKeys(w.hash) {
		fmt.Fprintf(&sb, "  %q: %v\n", block, w.hash[block])
	}
	fmt.Fprintf(&sb, "prefix:\n")
	for _, block := range sortedKeys(w.prefix) {
		patterns := make([]Pattern, 0, len(w.prefix[block]))
		for p := range w.prefix[block] {
			patterns = append(patterns, p)
		}
		sort.Strings(patterns)
		fmt.Fprintf(&sb, "  %q: %v\n", block, patterns)
	}
	return sb.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
