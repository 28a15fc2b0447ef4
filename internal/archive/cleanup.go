package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"curationsla/internal/clierr"
)

// Cleaner removes publication directories past the retention window,
// leaving a lightweight JSON summary behind in the archive hub. The summary
// is fully persisted (fsynced) before the directory is deleted, so a crash
// in between leaves either the original intact or safely summarized.
type Cleaner struct {
	ContentDir string // date-partitioned tree: year/month/week/day
	HubDir     string
}

// CleanupResult reports what a retention pass did.
type CleanupResult struct {
	CleanedCount int      `json:"cleaned_count"`
	KeptCount    int      `json:"kept_count"`
	CleanedPaths []string `json:"cleaned_paths"`
	KeptPaths    []string `json:"kept_paths"`
}

// leafSummary is the lightweight record that outlives a cleaned directory.
// Deletion is lossy on purpose: only this summary survives.
type leafSummary struct {
	Date         string          `json:"date"`
	OriginalPath string          `json:"original_path"`
	ArchivedAt   string          `json:"archived_at"`
	Status       string          `json:"status"`
	Stats        json.RawMessage `json:"stats,omitempty"`
}

var datePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)

// Cleanup walks the content tree and summarizes-then-deletes every leaf older
// than retentionDays. Unparseable dates and per-leaf read errors are logged
// and skipped; failures of the destructive step itself are collected and
// returned so the caller exits non-zero.
func (c *Cleaner) Cleanup(retentionDays int, now time.Time) (CleanupResult, error) {
	cutoff := now.AddDate(0, 0, -retentionDays)
	result := CleanupResult{CleanedPaths: []string{}, KeptPaths: []string{}}

	leaves, err := c.leafDirs()
	if err != nil {
		return result, err
	}

	var destructiveErrs []error
	for _, leaf := range leaves {
		date, ok := c.leafDate(leaf)
		if !ok {
			continue
		}
		if !date.Before(cutoff) {
			result.KeptPaths = append(result.KeptPaths, leaf)
			continue
		}
		if err := c.writeSummary(leaf, date); err != nil {
			// summary failed: leave the leaf untouched rather than delete
			// content that has no surviving record
			slog.Error("cleanup: summary write failed, keeping leaf", "path", leaf, "err", err)
			destructiveErrs = append(destructiveErrs, err)
			continue
		}
		if err := os.RemoveAll(leaf); err != nil {
			slog.Error("cleanup: delete failed", "path", leaf, "err", err)
			destructiveErrs = append(destructiveErrs, fmt.Errorf("%w: delete %s: %v", clierr.ErrStore, leaf, err))
			continue
		}
		slog.Info("cleanup: cleaned old publication", "path", leaf, "date", date.Format("2006-01-02"))
		result.CleanedPaths = append(result.CleanedPaths, leaf)
	}

	result.CleanedCount = len(result.CleanedPaths)
	result.KeptCount = len(result.KeptPaths)
	return result, errors.Join(destructiveErrs...)
}

// leafDirs walks exactly four directory levels (year/month/week/day).
func (c *Cleaner) leafDirs() ([]string, error) {
	var leaves []string
	level := []string{c.ContentDir}
	for depth := 0; depth < 4; depth++ {
		var next []string
		for _, dir := range level {
			entries, err := os.ReadDir(dir)
			if err != nil {
				if dir == c.ContentDir && os.IsNotExist(err) {
					return nil, nil
				}
				slog.Warn("cleanup: unreadable directory", "path", dir, "err", err)
				continue
			}
			for _, e := range entries {
				if e.IsDir() {
					next = append(next, filepath.Join(dir, e.Name()))
				}
			}
		}
		level = next
	}
	leaves = level
	return leaves, nil
}

// leafDate derives the publication date of a leaf from its own name, falling
// back to the first entry inside it containing a YYYY-MM-DD stamp.
func (c *Cleaner) leafDate(leaf string) (time.Time, bool) {
	candidates := []string{filepath.Base(leaf)}
	if entries, err := os.ReadDir(leaf); err == nil {
		for _, e := range entries {
			candidates = append(candidates, e.Name())
		}
	} else {
		slog.Warn("cleanup: unreadable leaf", "path", leaf, "err", err)
	}
	for _, name := range candidates {
		m := datePattern.FindString(name)
		if m == "" {
			continue
		}
		date, err := time.Parse("2006-01-02", m)
		if err != nil {
			slog.Warn("cleanup: unparseable date in leaf", "path", leaf, "name", name)
			continue
		}
		return date, true
	}
	slog.Warn("cleanup: no date for leaf, skipping", "path", leaf)
	return time.Time{}, false
}

// writeSummary persists the lightweight archive record for a leaf, fsyncing
// both file and directory before returning so the subsequent delete can never
// outrun it.
func (c *Cleaner) writeSummary(leaf string, date time.Time) error {
	if err := os.MkdirAll(c.HubDir, 0o755); err != nil {
		return fmt.Errorf("%w: create hub dir: %v", clierr.ErrStore, err)
	}

	rec := leafSummary{
		Date:         date.Format(time.RFC3339),
		OriginalPath: leaf,
		ArchivedAt:   time.Now().UTC().Format(time.RFC3339),
		Status:       "archived_and_cleaned",
	}
	if stats, err := os.ReadFile(filepath.Join(leaf, "stats.json")); err == nil && json.Valid(stats) {
		rec.Stats = stats
	}

	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal summary: %v", clierr.ErrStore, err)
	}

	final := filepath.Join(c.HubDir, fmt.Sprintf("archive_%s.json", date.Format("2006_01_02")))
	tmp := final + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create summary: %v", clierr.ErrStore, err)
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return fmt.Errorf("%w: write summary: %v", clierr.ErrStore, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("%w: sync summary: %v", clierr.ErrStore, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close summary: %v", clierr.ErrStore, err)
	}
	if err := os.Rename(tmp, final); err != nil {
		return fmt.Errorf("%w: rename summary: %v", clierr.ErrStore, err)
	}
	if d, err := os.Open(c.HubDir); err == nil {
		d.Sync()
		d.Close()
	}
	return nil
}
