package matcher

// Pattern is a blocklist entry to search for.
type Pattern = string

// Match records one occurrence of a pattern. Pos is the character
// (not byte) offset of the occurrence start in the candidate text.
type Match struct {
	Pos     int     `json:"pos"`
	Pattern Pattern `json:"pattern"`
}

// MatchResult collects every occurrence found in a single candidate text.
// Overlapping occurrences of distinct patterns, and the same pattern at
// distinct offsets, legitimately co-occur; the (Pos, Pattern) pair is the
// dedup key.
type MatchResult []Match

// Engine is an exact multi-pattern matcher over one candidate text.
// Implementations are read-only after construction and safe for
// concurrent Find calls.
type Engine interface {
	Name() string
	// Find reports every occurrence of every pattern in text,
	// with character start offsets.
	Find(text string) MatchResult
	// Dump returns a diagnostic view of the engine's internal state.
	Dump() string
}

// Algo selects one of the exact matching engines.
type Algo string

const (
	AlgoBruteForce Algo = "brute_force"
	AlgoNative     Algo = "native"
	AlgoAC         Algo = "ac"
	AlgoWM         Algo = "wm"
)

// Algos lists every supported engine, in oracle-first order.
var Algos = []Algo{AlgoBruteForce, AlgoNative, AlgoAC, AlgoWM}
