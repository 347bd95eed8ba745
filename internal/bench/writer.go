package bench

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/textsec/blockmatch/internal/matcher"
)

// WriteCSV exports one row per (algo, blocklist, enhancement) run. The
// per-case columns follow the suite's case order.
func WriteCSV(path string, caseNames []string, results []AlgoResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}
	defer f.Close()

	header := []string{"algo", "blocklist_name", "enhancement", "creation_time", "creation_mem"}
	for _, name := range caseNames {
		header = append(header, "test_"+name+"_time", "test_"+name+"_mem")
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, res := range results {
		for _, run := range res.RunResults {
			row := []string{
				res.Algo,
				res.BlocklistName,
				run.Enhancement,
				formatSeconds(run.CreationTime.Seconds()),
				strconv.FormatUint(run.CreationMem, 10),
			}
			byCase := make(map[string]CaseResult, len(run.CaseResults))
			for _, cr := range run.CaseResults {
				byCase[cr.CaseName] = cr
			}
			for _, name := range caseNames {
				cr := byCase[name]
				row = append(row,
					formatSeconds(cr.Duration.Seconds()),
					strconv.FormatUint(cr.AllocBytes, 10))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}

// WriteExpected runs the reference Native engine for every blocklist x
// enhancement x case in the suite and writes canonical (sorted) match
// results as JSON, one file per case under
// <outDir>/<blocklist>/<enhancement>/<case>.json.
func WriteExpected(suite *Suite, outDir string) error {
	lists, err := suite.LoadBlocklists()
	if err != nil {
		return err
	}
	cases, err := suite.LoadCases()
	if err != nil {
		return err
	}

	for _, list := range lists {
		for _, enhancement := range suite.Enhancements {
			enableRadical, enablePinyin := EnhancementFlags(enhancement)
			m, err := matcher.New(list.Patterns, matcher.Options{
				Algorithm:     matcher.AlgoNative,
				EnableRadical: enableRadical,
				EnablePinyin:  enablePinyin,
			})
			if err != nil {
				return err
			}

			dir := filepath.Join(outDir, list.Name, enhancement)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create result directory: %w", err)
			}
			for _, c := range cases {
				results := matcher.SortResults(m.Match(c.Text))
				data, err := json.MarshalIndent(encodeResults(results), "", "    ")
				if err != nil {
					return err
				}
				path := filepath.Join(dir, c.Name+".json")
				if err := os.WriteFile(path, data, 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// encodeResults renders results as nested [offset, pattern] pairs, the
// shape the result files have always used.
func encodeResults(results []matcher.MatchResult) [][][]any {
	out := make([][][]any, len(results))
	for i, res := range results {
		rows := make([][]any, len(res))
		for j, m := range res {
			rows[j] = []any{m.Pos, m.Pattern}
		}
		out[i] = rows
	}
	return out
}
