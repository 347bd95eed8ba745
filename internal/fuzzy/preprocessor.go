// Package fuzzy expands a target text into candidate rewrites that undo
// homophone (pinyin) and character-split (radical) evasion, so the exact
// matchers can catch disguised blocklist terms. Candidate generation is
// deliberately one-substitution-per-candidate and does not deduplicate:
// recall is preferred over a minimal candidate list.
package fuzzy

import (
	"regexp"
	"strings"

	"github.com/textsec/blockmatch/internal/pinyin"
	"github.com/textsec/blockmatch/internal/radical"
	"github.com/textsec/blockmatch/pkg/log"
)

// pinyinRun matches a run of lowercase Latin syllable candidates,
// tolerating single spaces between them.
var pinyinRun = regexp.MustCompile(`(?:[a-z]+ ?)+`)

// Config carries the preprocessor's switches and injected collaborators.
// Nil collaborators fall back to the built-in defaults.
type Config struct {
	EnableRadical bool
	EnablePinyin  bool

	Radicals  radical.Table
	Readings  pinyin.ReadingsFunc
	Tokenizer *pinyin.Tokenizer
}

// Preprocessor owns the pinyin and radical lookup maps derived from the
// pattern set. All maps are built once by NewPreprocessor and read-only
// afterwards.
type Preprocessor struct {
	enableRadical bool
	enablePinyin  bool
	tokenizer     *pinyin.Tokenizer

	// radicalMap: decomposition key -> characters reachable through it.
	// radicalKeySet: every rune appearing in any key, for run scanning.
	radicalMap    map[string][]rune
	radicalKeySet map[rune]struct{}

	// pinyinMap: space-joined syllable tuple -> pattern substrings that
	// tuple could spell.
	pinyinMap map[string][]string
}

// NewPreprocessor builds the expansion maps from the pattern set.
func NewPreprocessor(patterns []string, cfg Config) *Preprocessor {
	p := &Preprocessor{
		enableRadical: cfg.EnableRadical,
		enablePinyin:  cfg.EnablePinyin,
		tokenizer:     cfg.Tokenizer,
	}

	radicals := cfg.Radicals
	if radicals == nil {
		radicals = radical.Default()
	}
	readings := cfg.Readings
	if readings == nil && cfg.EnablePinyin {
		readings = pinyin.Readings()
	}
	if p.tokenizer == nil {
		p.tokenizer = pinyin.NewTokenizer()
	}

	if p.enableRadical {
		p.radicalMap = make(map[string][]rune)
		p.radicalKeySet = make(map[rune]struct{})
		for _, pattern := range patterns {
			p.insertRadical(pattern, radicals)
		}
	}
	if p.enablePinyin {
		p.pinyinMap = make(map[string][]string)
		for _, pattern := range patterns {
			p.insertPinyin(pattern, readings)
		}
	}
	return p
}

func (p *Preprocessor) insertRadical(pattern string, radicals radical.Table) {
	for _, r := range mapRunes(pattern) {
		for _, key := range radicals[r] {
			if !containsRune(p.radicalMap[key], r) {
				p.radicalMap[key] = append(p.radicalMap[key], r)
			}
			for _, kr := range key {
				p.radicalKeySet[kr] = struct{}{}
			}
		}
	}
}

// insertPinyin expands every heteronym reading of the pattern's Chinese
// characters and maps each contiguous syllable sub-sequence to the
// character substring it spells.
func (p *Preprocessor) insertPinyin(pattern string, readings pinyin.ReadingsFunc) {
	han := mapRunes(pattern)
	if len(han) == 0 {
		return
	}

	perChar := make([][]string, len(han))
	for i, r := range han {
		perChar[i] = readings(r)
		if len(perChar[i]) == 0 {
			log.Debug("fuzzy: no pinyin reading for %q, skipping %q", r, pattern)
			return
		}
	}

	seen := make(map[string]struct{})
	for _, combo := range cartesian(perChar) {
		for i := 0; i < len(combo); i++ {
			for j := i + 1; j <= len(combo); j++ {
				key := strings.Join(combo[i:j], " ")
				sub := string(han[i:j])
				mark := key + "\x00" + sub
				if _, ok := seen[mark]; ok {
					continue
				}
				seen[mark] = struct{}{}
				p.pinyinMap[key] = append(p.pinyinMap[key], sub)
			}
		}
	}
}

// Candidates returns the candidate texts to run through an exact matcher.
// The normalized original is always first; each accepted radical or pinyin
// hit contributes one independent rewrite.
func (p *Preprocessor) Candidates(text string) []string {
	normalized := Normalize(text)
	res := []string{normalized}

	if p.enableRadical && len(p.radicalMap) > 0 {
		res = append(res, p.radicalCandidates(normalized)...)
	}
	if p.enablePinyin && len(p.pinyinMap) > 0 {
		res = append(res, p.pinyinCandidates(normalized)...)
	}
	return res
}

// radicalCandidates scans for maximal runs of radical-key characters and
// looks up every contiguous sub-run of length >= 2.
func (p *Preprocessor) radicalCandidates(text string) []string {
	var res []string
	for _, run := range p.radicalRuns(text) {
		for i := 0; i < len(run); i++ {
			for j := i + 2; j <= len(run); j++ {
				key := string(run[i:j])
				chars, ok := p.radicalMap[key]
				if !ok {
					continue
				}
				log.Debug("fuzzy: radical hit %q -> %q", key, chars)
				for _, c := range chars {
					res = append(res, strings.ReplaceAll(text, key, string(c)))
				}
			}
		}
	}
	return res
}

// radicalRuns returns the distinct maximal runs (length >= 2) of
// radical-key characters, in first-appearance order.
func (p *Preprocessor) radicalRuns(text string) [][]rune {
	var runs [][]rune
	seen := make(map[string]struct{})

	rs := []rune(text)
	for i := 0; i < len(rs); {
		if _, ok := p.radicalKeySet[rs[i]]; !ok {
			i++
			continue
		}
		j := i + 1
		for j < len(rs) {
			if _, ok := p.radicalKeySet[rs[j]]; !ok {
				break
			}
			j++
		}
		if j-i >= 2 {
			if _, ok := seen[string(rs[i:j])]; !ok {
				seen[string(rs[i:j])] = struct{}{}
				runs = append(runs, rs[i:j])
			}
		}
		i = j
	}
	return runs
}

// pinyinCandidates tokenizes each Latin run twice (as spelled and with
// spaces stripped) and rewrites every syllable sub-sequence found in the
// pinyin map, absorbing whitespace variation in the replaced span.
func (p *Preprocessor) pinyinCandidates(text string) []string {
	var res []string
	for _, group := range pinyinRun.FindAllString(text, -1) {
		spaced := p.tokenizer.Tokenize(group)
		stripped := p.tokenizer.Tokenize(strings.Join(strings.Fields(group), ""))

		combos := subSequences(spaced)
		combos = append(combos, subSequences(stripped)...)
		for _, combo := range combos {
			key := strings.Join(combo, " ")
			subs, ok := p.pinyinMap[key]
			if !ok {
				continue
			}
			log.Debug("fuzzy: pinyin hit %q -> %q", key, subs)

			quoted := make([]string, len(combo))
			for i, syl := range combo {
				quoted[i] = regexp.QuoteMeta(syl)
			}
			span := regexp.MustCompile(strings.Join(quoted, `\s*`))
			for _, sub := range subs {
				res = append(res, span.ReplaceAllLiteralString(text, sub))
			}
		}
	}
	return res
}

// subSequences returns every contiguous sub-sequence of length >= 1.
func subSequences(seq []string) [][]string {
	var out [][]string
	for i := 0; i < len(seq); i++ {
		for j := i + 1; j <= len(seq); j++ {
			out = append(out, seq[i:j])
		}
	}
	return out
}

// cartesian expands the per-character heteronym lists into full readings.
func cartesian(lists [][]string) [][]string {
	total := 1
	for _, l := range lists {
		total *= len(l)
	}

	out := make([][]string, 0, total)
	idx := make([]int, len(lists))
	for {
		combo := make([]string, len(lists))
		for i, l := range lists {
			combo[i] = l[idx[i]]
		}
		out = append(out, combo)

		pos := len(lists) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(lists[pos]) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return out
		}
	}
}

func containsRune(list []rune, r rune) bool {
	for _, cur := range list {
		if cur == r {
			return true
		}
	}
	return false
}
