package scan

import (
	"context"
	"time"

	"github.com/textsec/blockmatch/internal/matcher"
)

// Report is the outcome of scanning one text file.
type Report struct {
	Path      string                `json:"path"`
	Language  string                `json:"language"`
	Total     int                   `json:"total"`
	Results   []matcher.MatchResult `json:"results"`
	ScannedAt time.Time             `json:"scanned_at"`
}

// ReportStore persists reports across runs. A nil store disables
// persistence; JSON report files are written either way.
type ReportStore interface {
	SaveReport(ctx context.Context, report *Report) error
}
