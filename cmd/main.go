package main

import (
	"context"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/textsec/blockmatch/internal/bench"
	"github.com/textsec/blockmatch/internal/blocklist"
	"github.com/textsec/blockmatch/internal/config"
	"github.com/textsec/blockmatch/internal/matcher"
	"github.com/textsec/blockmatch/internal/persistence"
	"github.com/textsec/blockmatch/internal/scan"
	"github.com/textsec/blockmatch/pkg/log"
)

func main() {
	// Initialize configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		stdlog.Fatal("Failed to load configuration:", err)
	}
	log.InitLogger(log.ParseLevel(cfg.System.LogLevel))

	mode := "scan"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	ctx := context.Background()
	switch mode {
	case "scan":
		runScan(ctx, cfg)
	case "watch":
		runWatch(ctx, cfg)
	case "bench":
		runBench(cfg)
	case "results":
		runResults(cfg)
	case "genlist":
		runGenlist(cfg)
	default:
		log.Fatal("Unknown mode %q (want scan, watch, bench, results or genlist)", mode)
	}
}

func newMatcher(cfg *config.Config) *matcher.Matcher {
	patterns, err := blocklist.Load(cfg.Matcher.BlocklistPath)
	if err != nil {
		log.Fatal("Failed to load blocklist: %v", err)
	}
	blocklist.Validate(patterns)

	m, err := matcher.New(patterns, cfg.Matcher.Options())
	if err != nil {
		log.Fatal("Failed to build matcher: %v", err)
	}
	log.Info("Built %s matcher over %d patterns", m.Name(), len(patterns))
	return m
}

// newReportStore opens the scan history database when one is configured.
// Callers must Close the returned store; a nil store disables history.
func newReportStore(cfg *config.Config) *persistence.SQLiteStore {
	if cfg.Scan.DBPath == "" {
		return nil
	}
	store, err := persistence.NewSQLiteStore(cfg.Scan.DBPath)
	if err != nil {
		log.Fatal("Failed to open scan history db: %v", err)
	}
	return store
}

func runScan(ctx context.Context, cfg *config.Config) {
	m := newMatcher(cfg)
	store := newReportStore(cfg)
	defer store.Close()

	err := scan.ScanDirs(ctx, m, cfg.Scan.Dirs, cfg.Scan.Concurrency, cfg.Bench.OutputDir, reportStore(store))
	if err != nil {
		log.Fatal("Scan failed: %v", err)
	}
}

func runWatch(ctx context.Context, cfg *config.Config) {
	m := newMatcher(cfg)
	store := newReportStore(cfg)
	defer store.Close()

	cronEngine := cron.New()
	svc := scan.NewRunnableScanService(*cfg, m, reportStore(store), cronEngine)
	if err := svc.Schedule(ctx); err != nil {
		log.Fatal("Failed to schedule scan: %v", err)
	}
	cronEngine.Run()
}

// reportStore avoids handing scan a non-nil interface holding a nil
// pointer when history is disabled.
func reportStore(store *persistence.SQLiteStore) scan.ReportStore {
	if store == nil {
		return nil
	}
	return store
}

func runBench(cfg *config.Config) {
	suite, err := bench.LoadSuite(cfg.Bench.SuitePath)
	if err != nil {
		log.Fatal("Failed to load bench suite: %v", err)
	}

	results, err := bench.NewRunner(suite).Run()
	if err != nil {
		log.Fatal("Bench run failed: %v", err)
	}

	if err := os.MkdirAll(cfg.Bench.OutputDir, 0755); err != nil {
		log.Fatal("Failed to create output dir: %v", err)
	}
	out := filepath.Join(cfg.Bench.OutputDir, time.Now().Format("20060102-150405")+".csv")
	if err := bench.WriteCSV(out, suite.Cases, results); err != nil {
		log.Fatal("Failed to write results: %v", err)
	}
	log.Info("Wrote bench results to %s", out)
}

func runResults(cfg *config.Config) {
	suite, err := bench.LoadSuite(cfg.Bench.SuitePath)
	if err != nil {
		log.Fatal("Failed to load bench suite: %v", err)
	}
	if err := bench.WriteExpected(suite, cfg.Bench.OutputDir); err != nil {
		log.Fatal("Failed to write expected results: %v", err)
	}
	log.Info("Wrote expected results to %s", cfg.Bench.OutputDir)
}

func runGenlist(cfg *config.Config) {
	err := blocklist.Generate(blocklist.GenerateOptions{
		RawDir: filepath.Join(filepath.Dir(cfg.Matcher.BlocklistPath), "raw"),
		OutDir: filepath.Dir(cfg.Matcher.BlocklistPath),
		Seed:   256,
		Core: []string{
			"新加坡",
			"世界联合书院",
			"国际文凭",
			"国际文凭组织",
			"国际文凭课程",
			"国际文凭学校",
			"国际文凭学院",
			"国际文凭大学预科",
			"国际文凭大学预科课程",
			"拓展论文",
		},
		Exclude: []string{"文凭", "独立", "领导", "社会"},
	})
	if err != nil {
		log.Fatal("Failed to generate blocklists: %v", err)
	}
}
