package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindWithExt(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.TXT"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.txt"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "d.md"), nil, 0644))

	files, err := FindWithExt(dir, ".txt")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.TXT"),
		filepath.Join(sub, "c.txt"),
	}, files)
}

func TestFindRecentAfter(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.txt")
	newPath := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(oldPath, nil, 0644))
	require.NoError(t, os.WriteFile(newPath, nil, 0644))

	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, past, past))

	files, err := FindRecentAfter(dir, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{newPath}, files)
}

func TestReplaceExt(t *testing.T) {
	assert.Equal(t, "sample.json", ReplaceExt("sample.txt", "json"))
	assert.Equal(t, filepath.Join("dir", "sample.json"), ReplaceExt(filepath.Join("dir", "sample.txt"), ".json"))
	assert.Equal(t, "noext.json", ReplaceExt("noext", "json"))
	assert.Equal(t, "", ReplaceExt("", "json"))
}
