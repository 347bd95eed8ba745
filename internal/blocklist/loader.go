// Package blocklist loads, validates and generates the newline-separated
// blocklist files the matchers are built from.
package blocklist

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"

	"github.com/textsec/blockmatch/pkg/log"
)

// Load reads a UTF-8 blocklist file, one pattern per line. Blank lines
// are skipped; duplicates are kept (they are harmless to the matchers).
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blocklist: %w", err)
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}

// Validate warns about entries whose dominant script is not Han. Latin
// entries are legitimate (the matchers are script-agnostic), so this is
// diagnostics only; it returns the flagged entries.
func Validate(patterns []string) []string {
	var flagged []string
	for _, p := range patterns {
		if script := whatlanggo.DetectScript(p); script != unicode.Han {
			log.Warn("blocklist entry %q is not Han script", p)
			flagged = append(flagged, p)
		}
	}
	return flagged
}
