package blocklist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSkipsBlankLinesKeepsDuplicates(t *testing.T) {
	path := writeFile(t, t.TempDir(), "list.txt", "国际文凭\n\n课程\r\n国际文凭\n")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"国际文凭", "课程", "国际文凭"}, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestValidateFlagsNonHanEntries(t *testing.T) {
	flagged := Validate([]string{"国际文凭", "badword", "领导人"})
	assert.Equal(t, []string{"badword"}, flagged)
}

func TestValidateAllHan(t *testing.T) {
	assert.Empty(t, Validate([]string{"国际文凭", "课程"}))
}
