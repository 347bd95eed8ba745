package bench

import (
	"runtime"
	"time"

	"github.com/textsec/blockmatch/internal/matcher"
	"github.com/textsec/blockmatch/pkg/log"
)

// Runner executes a suite and collects timing and allocation figures.
type Runner struct {
	suite *Suite
}

func NewRunner(suite *Suite) *Runner {
	return &Runner{suite: suite}
}

// Run benchmarks every algorithm x blocklist x enhancement combination in
// the suite. Combinations whose construction fails (a WM blocklist with a
// too-short pattern, say) are logged and skipped rather than aborting the
// whole run.
func (r *Runner) Run() ([]AlgoResult, error) {
	lists, err := r.suite.LoadBlocklists()
	if err != nil {
		return nil, err
	}
	cases, err := r.suite.LoadCases()
	if err != nil {
		return nil, err
	}

	var results []AlgoResult
	for _, algo := range r.suite.Algorithms {
		for _, list := range lists {
			res := AlgoResult{Algo: algo, BlocklistName: list.Name}
			for _, enhancement := range r.suite.Enhancements {
				run, err := r.runOne(algo, list, enhancement, cases)
				if err != nil {
					log.Warn("bench: skipping %s/%s/%s: %v",
						algo, list.Name, enhancement, err)
					continue
				}
				res.RunResults = append(res.RunResults, run)
			}
			results = append(results, res)
		}
	}
	return results, nil
}

func (r *Runner) runOne(algo string, list Blocklist, enhancement string, cases []Case) (RunResult, error) {
	enableRadical, enablePinyin := EnhancementFlags(enhancement)

	creationStart := time.Now()
	allocBefore := currentAlloc()
	m, err := matcher.New(list.Patterns, matcher.Options{
		Algorithm:     matcher.Algo(algo),
		BlockSize:     r.suite.BlockSize,
		EnableRadical: enableRadical,
		EnablePinyin:  enablePinyin,
	})
	if err != nil {
		return RunResult{}, err
	}
	run := RunResult{
		Enhancement:  enhancement,
		CreationTime: time.Since(creationStart),
		CreationMem:  allocDelta(allocBefore),
	}

	for _, c := range cases {
		matchStart := time.Now()
		allocBefore = currentAlloc()
		m.Match(c.Text)
		run.CaseResults = append(run.CaseResults, CaseResult{
			CaseName:   c.Name,
			Duration:   time.Since(matchStart),
			AllocBytes: allocDelta(allocBefore),
		})
	}
	return run, nil
}

func currentAlloc() uint64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return stats.TotalAlloc
}

func allocDelta(before uint64) uint64 {
	after := currentAlloc()
	if after < before {
		return 0
	}
	return after - before
}
