// Package inbox finds and watches incoming telematik exports.
package inbox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoSuggestion indicates no export for the requested day was found.
var ErrNoSuggestion = errors.New("no export found for date")

// Suggest returns the most recently modified "*<YYYYMMDD>*.xlsx" export of
// day in dir. Office lock files are ignored.
func Suggest(dir string, day time.Time) (string, error) {
	date := day.Format("20060102")
	matches, err := filepath.Glob(filepath.Join(dir, "*"+date+"*.xlsx"))
	if err != nil {
		return "", err
	}

	var best string
	var bestTime time.Time
	for _, path := range matches {
		if !IsExport(path) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if best == "" || info.ModTime().After(bestTime) {
			best, bestTime = path, info.ModTime()
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w %s in %s", ErrNoSuggestion, date, dir)
	}
	return best, nil
}

// IsExport reports whether path names an xlsx workbook rather than an
// Office lock file or a hidden temporary file.
func IsExport(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".xlsx")
}
