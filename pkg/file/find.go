package file

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FindRecentAfter walks dir and returns every file modified after
// startTime. Watch mode uses it to rescan only what changed.
func FindRecentAfter(dir string, startTime time.Time) ([]string, error) {
	var recentFiles []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo,
		err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && info.ModTime().After(startTime) {
			recentFiles = append(recentFiles, path)
		}
		return nil
	})

	return recentFiles, err
}

// FindWithExt walks dir and returns every file with the given extension
// (compared case-insensitively, leading dot required).
func FindWithExt(dir, ext string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo,
		err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.EqualFold(filepath.Ext(path), ext) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}
