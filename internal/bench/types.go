// Package bench measures matcher construction and matching cost across
// blocklist sizes, test texts, engines and fuzzy enhancements, and exports
// the outcomes as CSV rows and per-case JSON result files.
package bench

import (
	"strings"
	"time"
)

// Enhancement names select which fuzzy expansions a run enables.
var Enhancements = []string{"naive", "pinyin", "radical", "radical_pinyin"}

// EnhancementFlags decodes an enhancement name into the matcher switches.
func EnhancementFlags(name string) (enableRadical, enablePinyin bool) {
	return strings.Contains(name, "radical"), strings.Contains(name, "pinyin")
}

// Blocklist is a named pattern set under test.
type Blocklist struct {
	Name     string
	Patterns []string
}

// Case is a named target text under test.
type Case struct {
	Name string
	Text string
}

// CaseResult holds the cost of matching one case.
type CaseResult struct {
	CaseName   string
	Duration   time.Duration
	AllocBytes uint64
}

// RunResult holds one (enhancement) run over every case: construction
// cost plus the per-case matching cost.
type RunResult struct {
	Enhancement  string
	CreationTime time.Duration
	CreationMem  uint64
	CaseResults  []CaseResult
}

// AlgoResult groups the runs of one engine against one blocklist.
type AlgoResult struct {
	Algo          string
	BlocklistName string
	RunResults    []RunResult
}
