package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// makeLeaf creates a content-tree leaf dated the given day with a newsletter
// file and stats snapshot inside.
func makeLeaf(t *testing.T, contentDir string, date time.Time) string {
	t.Helper()
	day := date.Format("2006-01-02")
	week := fmt.Sprintf("week-%02d", (date.Day()-1)/7+1)
	leaf := filepath.Join(contentDir, date.Format("2006"), date.Format("01"), week, day)
	if err := os.MkdirAll(leaf, 0o755); err != nil {
		t.Fatalf("mkdir leaf: %v", err)
	}
	md := filepath.Join(leaf, "newsletter-"+day+".md")
	if err := os.WriteFile(md, []byte("# Good Vibes\n\ncontent here\n"), 0o644); err != nil {
		t.Fatalf("write newsletter: %v", err)
	}
	stats := filepath.Join(leaf, "stats.json")
	if err := os.WriteFile(stats, []byte(`{"total_items": 12}`), 0o644); err != nil {
		t.Fatalf("write stats: %v", err)
	}
	return leaf
}

func TestCleanupRetention(t *testing.T) {
	t.Parallel()
	contentDir := t.TempDir()
	hubDir := t.TempDir()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	oldLeaf := makeLeaf(t, contentDir, now.AddDate(0, 0, -10))
	freshLeaf := makeLeaf(t, contentDir, now.AddDate(0, 0, -2))

	c := &Cleaner{ContentDir: contentDir, HubDir: hubDir}
	result, err := c.Cleanup(7, now)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	if result.CleanedCount != 1 || result.KeptCount != 1 {
		t.Fatalf("cleaned=%d kept=%d, want 1/1", result.CleanedCount, result.KeptCount)
	}
	if _, err := os.Stat(oldLeaf); !os.IsNotExist(err) {
		t.Errorf("old leaf still exists: %s", oldLeaf)
	}
	if _, err := os.Stat(freshLeaf); err != nil {
		t.Errorf("fresh leaf missing: %v", err)
	}

	// the lightweight summary must survive, with the stats snapshot embedded
	sumPath := filepath.Join(hubDir, "archive_"+now.AddDate(0, 0, -10).Format("2006_01_02")+".json")
	b, err := os.ReadFile(sumPath)
	if err != nil {
		t.Fatalf("summary missing: %v", err)
	}
	var rec leafSummary
	if err := json.Unmarshal(b, &rec); err != nil {
		t.Fatalf("summary not valid JSON: %v", err)
	}
	if rec.Status != "archived_and_cleaned" {
		t.Errorf("summary status = %q", rec.Status)
	}
	if rec.OriginalPath != oldLeaf {
		t.Errorf("summary original path = %q, want %q", rec.OriginalPath, oldLeaf)
	}
	if len(rec.Stats) == 0 {
		t.Errorf("stats snapshot not embedded in summary")
	}
}

func TestCleanupSkipsUndatedLeaves(t *testing.T) {
	t.Parallel()
	contentDir := t.TempDir()
	leaf := filepath.Join(contentDir, "2026", "08", "week-01", "notes")
	if err := os.MkdirAll(leaf, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(leaf, "scratch.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := &Cleaner{ContentDir: contentDir, HubDir: t.TempDir()}
	result, err := c.Cleanup(7, time.Now().UTC())
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if result.CleanedCount != 0 || result.KeptCount != 0 {
		t.Errorf("undated leaf counted: cleaned=%d kept=%d", result.CleanedCount, result.KeptCount)
	}
	if _, err := os.Stat(leaf); err != nil {
		t.Errorf("undated leaf touched: %v", err)
	}
}

func TestCleanupMissingContentDir(t *testing.T) {
	t.Parallel()
	c := &Cleaner{ContentDir: filepath.Join(t.TempDir(), "missing"), HubDir: t.TempDir()}
	result, err := c.Cleanup(7, time.Now().UTC())
	if err != nil {
		t.Fatalf("Cleanup on missing dir: %v", err)
	}
	if result.CleanedCount != 0 || result.KeptCount != 0 {
		t.Errorf("unexpected counts on missing dir: %+v", result)
	}
}
