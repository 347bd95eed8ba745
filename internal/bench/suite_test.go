package bench

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeSuite(t *testing.T) string {
	t.Helper()
	listDir := t.TempDir()
	caseDir := t.TempDir()
	writeFile(t, listDir, "blocklist_10.txt", "她的\n他\n")
	writeFile(t, caseDir, "short.txt", "他说她的话")

	dir := t.TempDir()
	content := "blocklist_dir: " + listDir + "\ncase_dir: " + caseDir +
		"\nblocklists: [\"10\"]\ncases: [\"short\"]\nalgorithms: [\"native\", \"ac\"]\n"
	return writeFile(t, dir, "suite.yaml", content)
}

func TestLoadSuiteDefaultsEnhancements(t *testing.T) {
	suite, err := LoadSuite(writeSuite(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"10"}, suite.Blocklists)
	assert.Equal(t, []string{"short"}, suite.Cases)
	assert.Equal(t, []string{"native", "ac"}, suite.Algorithms)
	assert.Equal(t, Enhancements, suite.Enhancements)
}

func TestLoadSuiteRejectsEmptySections(t *testing.T) {
	path := writeFile(t, t.TempDir(), "suite.yaml", "blocklists: []\n")
	_, err := LoadSuite(path)
	assert.Error(t, err)
}

func TestLoadSuiteMissingFile(t *testing.T) {
	_, err := LoadSuite(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestSuiteLoadsBlocklistsAndCases(t *testing.T) {
	suite, err := LoadSuite(writeSuite(t))
	require.NoError(t, err)

	lists, err := suite.LoadBlocklists()
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "10", lists[0].Name)
	assert.Equal(t, []string{"她的", "他"}, lists[0].Patterns)

	cases, err := suite.LoadCases()
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "short", cases[0].Name)
	assert.Equal(t, "他说她的话", cases[0].Text)
}

func TestEnhancementFlags(t *testing.T) {
	for name, want := range map[string][2]bool{
		"naive":          {false, false},
		"pinyin":         {false, true},
		"radical":        {true, false},
		"radical_pinyin": {true, true},
	} {
		radical, pinyin := EnhancementFlags(name)
		assert.Equal(t, want[0], radical, name)
		assert.Equal(t, want[1], pinyin, name)
	}
}

func TestRunnerProducesRunPerEnhancement(t *testing.T) {
	suite, err := LoadSuite(writeSuite(t))
	require.NoError(t, err)
	suite.Enhancements = []string{"naive", "radical"}

	results, err := NewRunner(suite).Run()
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, res := range results {
		assert.Equal(t, "10", res.BlocklistName)
		require.Len(t, res.RunResults, 2)
		for _, run := range res.RunResults {
			require.Len(t, run.CaseResults, 1)
			assert.Equal(t, "short", run.CaseResults[0].CaseName)
			assert.GreaterOrEqual(t, run.CreationTime, time.Duration(0))
		}
	}
}

func TestRunnerSkipsFailedConstructions(t *testing.T) {
	suite, err := LoadSuite(writeSuite(t))
	require.NoError(t, err)
	// 他 is a 3-byte pattern; block size 4 makes WM construction fail.
	suite.Algorithms = []string{"wm", "native"}
	suite.BlockSize = 4
	suite.Enhancements = []string{"naive"}

	results, err := NewRunner(suite).Run()
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Empty(t, results[0].RunResults)
	assert.Len(t, results[1].RunResults, 1)
}
