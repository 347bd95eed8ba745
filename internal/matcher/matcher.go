package matcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/textsec/blockmatch/internal/fuzzy"
	"github.com/textsec/blockmatch/internal/pinyin"
	"github.com/textsec/blockmatch/internal/radical"
	"github.com/textsec/blockmatch/pkg/log"
)

// Options selects the exact engine and the fuzzy-evasion switches.
// The collaborator fields override the built-in radical table, pinyin
// readings and tokenizer; leave them nil for the defaults.
type Options struct {
	Algorithm Algo
	// BlockSize applies to the WM engine only; 0 means DefaultBlockSize.
	BlockSize     int
	EnableRadical bool
	EnablePinyin  bool

	Radicals  radical.Table
	Readings  pinyin.ReadingsFunc
	Tokenizer *pinyin.Tokenizer
}

// Matcher composes the fuzzy-evasion preprocessor with one exact engine.
// It is immutable after New and safe for concurrent Match calls.
type Matcher struct {
	engine Engine
	pre    *fuzzy.Preprocessor
}

// New builds a matcher over the pattern set. Construction fails when the
// pattern set is empty, contains an empty pattern, or (for WM) contains a
// pattern shorter than the block size.
func New(patterns []Pattern, opts Options) (*Matcher, error) {
	engine, err := newEngine(patterns, opts)
	if err != nil {
		return nil, err
	}

	pre := fuzzy.NewPreprocessor(patterns, fuzzy.Config{
		EnableRadical: opts.EnableRadical,
		EnablePinyin:  opts.EnablePinyin,
		Radicals:      opts.Radicals,
		Readings:      opts.Readings,
		Tokenizer:     opts.Tokenizer,
	})

	return &Matcher{engine: engine, pre: pre}, nil
}

func newEngine(patterns []Pattern, opts Options) (Engine, error) {
	switch opts.Algorithm {
	case AlgoBruteForce:
		return NewBruteForce(patterns)
	case AlgoNative, "":
		return NewNative(patterns)
	case AlgoAC:
		return NewAC(patterns)
	case AlgoWM:
		return NewWM(patterns, opts.BlockSize)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgo, opts.Algorithm)
	}
}

// Name reports the underlying engine's name.
func (m *Matcher) Name() string { return m.engine.Name() }

// Match runs the exact engine against every candidate rewrite of text and
// returns one MatchResult per candidate. The first result always belongs
// to the normalized original text. An empty text is degenerate, not an
// error: it warns and yields a single empty result.
func (m *Matcher) Match(text string) []MatchResult {
	if text == "" {
		log.Warn("match called with empty text")
		return []MatchResult{{}}
	}

	candidates := m.pre.Candidates(text)
	res := make([]MatchResult, 0, len(candidates))
	for _, candidate := range candidates {
		res = append(res, m.engine.Find(candidate))
	}
	return res
}

// Dump returns the diagnostic view of the engine and the expansion maps.
func (m *Matcher) Dump() string {
	var sb strings.Builder
	sb.WriteString(m.engine.Dump())
	sb.WriteString(m.pre.Dump())
	return sb.String()
}

// SortResult orders a MatchResult by (Pos, Pattern) in place and returns
// it. Engines report matches in scan order, which differs between
// algorithms; sorting gives a canonical form for comparison and export.
func SortResult(res MatchResult) MatchResult {
	sort.Slice(res, func(i, j int) bool {
		if res[i].Pos != res[j].Pos {
			return res[i].Pos < res[j].Pos
		}
		return res[i].Pattern < res[j].Pattern
	})
	return res
}

// SortResults canonicalizes every result and then orders the result list
// itself, so independently produced outputs compare byte for byte.
func SortResults(results []MatchResult) []MatchResult {
	for _, res := range results {
		SortResult(res)
	}
	sort.Slice(results, func(i, j int) bool {
		return lessResult(results[i], results[j])
	})
	return results
}

func lessResult(a, b MatchResult) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].Pos != b[i].Pos {
			return a[i].Pos < b[i].Pos
		}
		if a[i].Pattern != b[i].Pattern {
			return a[i].Pattern < b[i].Pattern
		}
	}
	return len(a) < len(b)
}
