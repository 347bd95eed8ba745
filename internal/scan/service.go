// Package scan walks directories of text files and runs every file
// through a shared blocklist matcher, writing one JSON report per file.
// The matcher is read-only after construction, so one instance serves all
// workers without locking.
package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/textsec/blockmatch/internal/config"
	"github.com/textsec/blockmatch/internal/matcher"
	"github.com/textsec/blockmatch/pkg/file"
	"github.com/textsec/blockmatch/pkg/icron"
	"github.com/textsec/blockmatch/pkg/log"
)

type scanService struct {
	cfg             config.Config
	matcher         *matcher.Matcher
	store           ReportStore
	lastTriggerTime time.Time
	cronExpr        string
	cron            *cron.Cron
}

// NewRunnableScanService wires a service that rescans the configured
// directories on the configured cron schedule.
func NewRunnableScanService(
	cfg config.Config,
	m *matcher.Matcher,
	store ReportStore,
	cron *cron.Cron,
) *scanService {
	return &scanService{
		cfg:      cfg,
		matcher:  m,
		store:    store,
		cronExpr: cfg.Scan.CronExpr,
		cron:     cron,
	}
}

var singleflightGroup singleflight.Group

// Schedule registers the periodic rescan. Overlapping triggers collapse
// into one run.
func (s *scanService) Schedule(ctx context.Context) error {
	log.Info("Run ScanService")

	runFunc := func() {
		_, _, _ = singleflightGroup.Do("run", func() (any, error) {
			for _, dir := range s.cfg.Scan.Dirs {
				log.Info("Scanning dir %s", dir)
				if err := s.run(ctx, dir); err != nil {
					log.Error("Failed to scan dir %s: %v", dir, err)
				}
			}
			return nil, nil
		})
	}
	_, err := s.cron.AddFunc(s.cronExpr, runFunc)
	return err
}

// run scans the files in dir modified since the previous trigger.
func (s *scanService) run(ctx context.Context, dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("directory %s does not exist", dir)
	}

	startTime, err := s.startTime()
	if err != nil {
		return fmt.Errorf("failed to get start time: %w", err)
	}
	log.Info("Start searching target text files after time: %v", startTime)

	recentFiles, err := file.FindRecentAfter(dir, startTime)
	if err != nil {
		return fmt.Errorf("failed to find recent files: %w", err)
	}

	var targets []string
	for _, path := range recentFiles {
		if strings.EqualFold(filepath.Ext(path), ".txt") {
			targets = append(targets, path)
		}
	}
	log.Info("Found %d target text files in dir %s", len(targets), dir)

	s.lastTriggerTime = time.Now()
	return ScanFiles(ctx, s.matcher, targets, s.cfg.Scan.Concurrency, s.cfg.Bench.OutputDir, s.store)
}

func (s *scanService) startTime() (time.Time, error) {
	if s.lastTriggerTime.IsZero() {
		cronSchedule, err := icron.GetTriggerInfo(s.cronExpr, time.Now())
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to get cron schedule: %w", err)
		}

		if time.Now().Add(-24 * 1 * time.Hour).Before(cronSchedule.Last) {
			return time.Now().Add(-24 * 7 * time.Hour), nil
		}
		return cronSchedule.Last, nil
	}

	return s.lastTriggerTime, nil
}

// ScanDirs scans every .txt file under dirs once, concurrency files at a
// time, and writes reports to outputDir.
func ScanDirs(ctx context.Context, m *matcher.Matcher, dirs []string, concurrency int, outputDir string, store ReportStore) error {
	var targets []string
	for _, dir := range dirs {
		files, err := file.FindWithExt(dir, ".txt")
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", dir, err)
		}
		targets = append(targets, files...)
	}
	log.Info("Scanning %d text files", len(targets))
	return ScanFiles(ctx, m, targets, concurrency, outputDir, store)
}

// ScanFiles matches each file against the shared matcher, writes one
// JSON report per file and records each report in store when one is
// configured.
func ScanFiles(ctx context.Context, m *matcher.Matcher, paths []string, concurrency int, outputDir string, store ReportStore) error {
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if concurrency < 1 {
		concurrency = 1
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for _, path := range paths {
		path := path
		group.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			report, err := scanOne(m, path)
			if err != nil {
				return err
			}
			if store != nil {
				if err := store.SaveReport(ctx, report); err != nil {
					return fmt.Errorf("failed to record report for %s: %w", path, err)
				}
			}
			if outputDir == "" {
				return nil
			}
			return writeReport(report, outputDir)
		})
	}
	return group.Wait()
}

func scanOne(m *matcher.Matcher, path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	text := string(data)

	report := &Report{
		Path:      path,
		Language:  whatlanggo.DetectLang(text).Iso6391(),
		Results:   matcher.SortResults(m.Match(text)),
		ScannedAt: time.Now().UTC(),
	}
	for _, res := range report.Results {
		report.Total += len(res)
	}

	log.Info("Scanned %s (lang=%s): %d matches", path, report.Language, report.Total)
	return report, nil
}

func writeReport(report *Report, outputDir string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	name := file.ReplaceExt(filepath.Base(report.Path), "json")
	path := filepath.Join(outputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
