// Package persistence keeps scan history in a local SQLite database so
// repeated runs can be compared and queried. Matcher state itself is
// never stored; engines are rebuilt from the blocklist on every start.
package persistence

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/textsec/blockmatch/internal/scan"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &SQLiteStore{db: db}
	if err := store.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	// Bootstrap schema_migrations table so we can track applied versions.
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		version := migrationVersion(entry.Name())
		if version <= 0 {
			continue
		}
		var exists int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(&exists); err != nil {
			return fmt.Errorf("check migration %s: %w", entry.Name(), err)
		}
		if exists > 0 {
			continue
		}
		content, err := migrationFiles.ReadFile(filepath.Join("migrations", entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// migrationVersion extracts the leading integer from a migration filename (e.g. "001_init.sql" → 1).
func migrationVersion(name string) int {
	for i, c := range name {
		if c < '0' || c > '9' {
			if i == 0 {
				return 0
			}
			n, _ := strconv.Atoi(name[:i])
			return n
		}
	}
	n, _ := strconv.Atoi(name)
	return n
}

// SaveReport upserts the report for its file path. Rescanning a file
// replaces the previous record.
func (s *SQLiteStore) SaveReport(ctx context.Context, report *scan.Report) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}
	resultsJSON, err := json.Marshal(report.Results)
	if err != nil {
		return err
	}
	scannedAt := report.ScannedAt.UTC()
	if scannedAt.IsZero() {
		scannedAt = time.Now().UTC()
	}
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO scan_reports (path, language, total, results_json, scanned_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			language=excluded.language,
			total=excluded.total,
			results_json=excluded.results_json,
			scanned_at=excluded.scanned_at`,
		report.Path,
		report.Language,
		report.Total,
		string(resultsJSON),
		scannedAt,
	)
	return err
}

// GetReport returns the stored report for path, if any.
func (s *SQLiteStore) GetReport(ctx context.Context, path string) (*scan.Report, bool, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT path, language, total, results_json, scanned_at
		 FROM scan_reports
		 WHERE path = ?`,
		path,
	)
	report, err := scanRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return report, true, nil
}

// ListRecent returns the most recently scanned reports, newest first.
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]*scan.Report, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT path, language, total, results_json, scanned_at
		 FROM scan_reports
		 ORDER BY scanned_at DESC, path ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]*scan.Report, 0)
	for rows.Next() {
		report, err := scanRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		ret = append(ret, report)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

// DeleteBefore removes reports last scanned before cutoff and returns
// how many were dropped.
func (s *SQLiteStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scan_reports WHERE scanned_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanRow(scanFn func(dest ...any) error) (*scan.Report, error) {
	var report scan.Report
	var resultsJSON string
	if err := scanFn(
		&report.Path,
		&report.Language,
		&report.Total,
		&resultsJSON,
		&report.ScannedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(resultsJSON), &report.Results); err != nil {
		return nil, err
	}
	return &report, nil
}

var _ scan.ReportStore = (*SQLiteStore)(nil)
