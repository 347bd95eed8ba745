package matcher

import "errors"

// Configuration errors reported at construction time. They wrap into the
// errors returned by New and the engine constructors, so callers can test
// with errors.Is.
var (
	ErrNoPatterns   = errors.New("pattern set is empty")
	ErrEmptyPattern = errors.New("pattern is empty")
	ErrShortPattern = errors.New("pattern is shorter than the block size")
	ErrUnknownAlgo  = errors.New("unknown algorithm")
)

// validatePatterns enforces the constraints shared by every engine:
// at least one pattern, none of them empty.
func validatePatterns(patterns []Pattern) error {
	if len(patterns) == 0 {
		return ErrNoPatterns
	}
	for _, p := range patterns {
		if p == "" {
			return ErrEmptyPattern
		}
	}
	return nil
}
