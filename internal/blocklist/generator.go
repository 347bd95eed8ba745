package blocklist

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/textsec/blockmatch/pkg/log"
)

// stripRunes are removed from raw lines before they become blocklist
// entries: ASCII punctuation, control characters, the Latin-1 high range
// and common full-width Chinese punctuation.
const stripRunes = `,?!%&-*$^~\"'[]{}，。？！：；“”‘’`

// GenerateOptions configures blocklist generation from a directory of raw
// text files.
type GenerateOptions struct {
	RawDir string
	OutDir string
	// Seed makes the sampled variants reproducible.
	Seed int64
	// Core entries are always included and become blocklist_10.txt.
	Core []string
	// Exclude entries are removed from the raw corpus.
	Exclude []string
}

// Generate builds the blocklist file family from raw text: the full list
// plus sampled variants of increasing size and a variant tuned for the
// Wu-Manber matcher (similar lengths, diverse prefixes).
func Generate(opts GenerateOptions) error {
	raw, err := collectRaw(opts.RawDir, opts.Exclude)
	if err != nil {
		return err
	}

	full := sortedUnion(raw, opts.Core)
	if len(full) == len(opts.Core) {
		return fmt.Errorf("no blocklist entries found under %s", opts.RawDir)
	}
	log.Info("generated %d blocklist entries from %s", len(full), opts.RawDir)

	rng := rand.New(rand.NewSource(opts.Seed))
	core := append([]string(nil), opts.Core...)
	sort.Strings(core)

	files := map[string][]string{
		"blocklist_full.txt": full,
		"blocklist_10.txt":   core,
		"blocklist_wm.txt":   wmVariant(full, core),
	}
	files["blocklist_100.txt"] = sampledVariant(full, core, 90, 0, rng)
	files["blocklist_1k.txt"] = sampledVariant(full, files["blocklist_100.txt"], 900, 1000, rng)
	files["blocklist_10k.txt"] = sampledVariant(full, files["blocklist_1k.txt"], 9000, 10000, rng)

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for name, lines := range files {
		path := filepath.Join(opts.OutDir, name)
		if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

func collectRaw(rawDir string, exclude []string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(rawDir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list raw files: %w", err)
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		excluded[e] = struct{}{}
	}

	set := make(map[string]struct{})
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			entry := strings.TrimSpace(stripPunct(line))
			if entry == "" || len([]rune(entry)) <= 1 {
				continue
			}
			if _, ok := excluded[entry]; ok {
				continue
			}
			set[entry] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for entry := range set {
		out = append(out, entry)
	}
	sort.Strings(out)
	return out, nil
}

func stripPunct(line string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || (r >= 127 && r < 256) {
			return -1
		}
		if strings.ContainsRune(stripRunes, r) {
			return -1
		}
		return r
	}, line)
}

// sampledVariant unions base with a random sample of size n from pool,
// then tops the list up to minTotal with repeated random picks (0 means
// no top-up). The sampled portion is sorted; top-up entries may repeat.
func sampledVariant(pool, base []string, n, minTotal int, rng *rand.Rand) []string {
	if n > len(pool) {
		n = len(pool)
	}

	set := make(map[string]struct{}, len(base)+n)
	for _, e := range base {
		set[e] = struct{}{}
	}
	for _, idx := range rng.Perm(len(pool))[:n] {
		set[pool[idx]] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	sort.Strings(out)

	for len(out) < minTotal {
		out = append(out, pool[rng.Intn(len(pool))])
	}
	return out
}

// wmVariant keeps one entry per distinct 2-character prefix and drops the
// longest quartile, so pattern lengths stay close and prefixes diverse.
func wmVariant(full, core []string) []string {
	byLen := append([]string(nil), full...)
	sort.SliceStable(byLen, func(i, j int) bool {
		return len([]rune(byLen[i])) < len([]rune(byLen[j]))
	})

	prefixes := make(map[string]struct{})
	var kept []string
	for _, entry := range byLen {
		runes := []rune(entry)
		if len(runes) < 2 {
			continue
		}
		prefix := string(runes[:2])
		if _, ok := prefixes[prefix]; ok {
			continue
		}
		prefixes[prefix] = struct{}{}
		kept = append(kept, entry)
	}

	kept = kept[:len(kept)*3/4]
	return sortedUnion(kept, core)
}

func sortedUnion(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, e := range a {
		set[e] = struct{}{}
	}
	for _, e := range b {
		set[e] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}
