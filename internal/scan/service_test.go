package scan

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textsec/blockmatch/internal/matcher"
)

func newTestMatcher(t *testing.T) *matcher.Matcher {
	t.Helper()
	m, err := matcher.New([]string{"她的", "他"}, matcher.Options{Algorithm: matcher.AlgoAC})
	require.NoError(t, err)
	return m
}

func TestScanFilesWritesReports(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	path := filepath.Join(srcDir, "sample.txt")
	require.NoError(t, os.WriteFile(path, []byte("他说她的话"), 0644))

	err := ScanFiles(context.Background(), newTestMatcher(t), []string{path}, 2, outDir, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "sample.json"))
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, path, report.Path)
	assert.Equal(t, "zh", report.Language)
	assert.Equal(t, 2, report.Total)
	require.Len(t, report.Results, 1)
	assert.Equal(t, matcher.MatchResult{
		{Pos: 0, Pattern: "他"},
		{Pos: 2, Pattern: "她的"},
	}, report.Results[0])
}

func TestScanFilesMissingFile(t *testing.T) {
	err := ScanFiles(context.Background(), newTestMatcher(t),
		[]string{filepath.Join(t.TempDir(), "absent.txt")}, 1, t.TempDir(), nil)
	assert.Error(t, err)
}

func TestScanDirsOnlyPicksTextFiles(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "a.txt"), []byte("他"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "b.md"), []byte("他"), 0644))

	err := ScanDirs(context.Background(), newTestMatcher(t), []string{srcDir}, 1, outDir, nil)
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.json", entries[0].Name())
}

func TestScanFilesHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srcDir := t.TempDir()
	path := filepath.Join(srcDir, "sample.txt")
	require.NoError(t, os.WriteFile(path, []byte("他"), 0644))

	err := ScanFiles(ctx, newTestMatcher(t), []string{path}, 1, t.TempDir(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanFilesWithoutOutputDir(t *testing.T) {
	srcDir := t.TempDir()
	path := filepath.Join(srcDir, "sample.txt")
	require.NoError(t, os.WriteFile(path, []byte("他"), 0644))

	err := ScanFiles(context.Background(), newTestMatcher(t), []string{path}, 1, "", nil)
	assert.NoError(t, err)
}

type memStore struct {
	mu      sync.Mutex
	reports []*Report
}

func (s *memStore) SaveReport(_ context.Context, report *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
	return nil
}

func TestScanFilesRecordsToStore(t *testing.T) {
	srcDir := t.TempDir()
	path := filepath.Join(srcDir, "sample.txt")
	require.NoError(t, os.WriteFile(path, []byte("他说她的话"), 0644))

	store := &memStore{}
	err := ScanFiles(context.Background(), newTestMatcher(t), []string{path}, 1, "", store)
	require.NoError(t, err)

	require.Len(t, store.reports, 1)
	assert.Equal(t, path, store.reports[0].Path)
	assert.Equal(t, 2, store.reports[0].Total)
	assert.False(t, store.reports[0].ScannedAt.IsZero())
}
