package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"curationsla/internal/clierr"
	"curationsla/internal/model"
)

// RetentionPolicy mirrors the policy block of the exported JSON index.
type RetentionPolicy struct {
	Days             int `json:"days"`
	ArchiveThreshold int `json:"archive_threshold"`
}

// IndexExport is the JSON artifact written next to the hub page. It is an
// export of the SQLite ledger, not a source of truth.
type IndexExport struct {
	LastUpdated       time.Time                 `json:"last_updated"`
	TotalPublications int                       `json:"total_publications"`
	Publications      []model.PublicationRecord `json:"publications"`
	RetentionPolicy   RetentionPolicy           `json:"retention_policy"`
}

var hubTmpl = template.Must(template.New("hub").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>CurationsLA Publications Archive</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 40px; }
  .header { text-align: center; margin-bottom: 40px; }
  .publication { background: #f8f9fa; padding: 20px; margin: 20px 0; border-radius: 8px; }
  .date { font-weight: bold; color: #0366d6; }
  .stats { color: #666; font-size: 0.9em; }
  .recent { border-left: 4px solid #28a745; }
  .archived { border-left: 4px solid #ffc107; }
</style>
</head>
<body>
<div class="header">
  <h1>&#127796; CurationsLA Publications Archive</h1>
  <p>Total Publications: {{.Total}}</p>
  <p>Last Updated: {{.Updated}}</p>
</div>
{{range .Publications}}
<div class="publication {{.Class}}">
  <div class="date">{{.Date}}</div>
  <div class="stats">&#128196; {{.Count}} content items | &#128193; {{.Path}} | &#127991; {{.Status}}</div>
</div>
{{end}}
</body>
</html>
`))

type hubEntry struct {
	Date   string
	Count  int
	Path   string
	Class  string
	Status string
}

// GenerateHub writes the archive hub page and the JSON index export into
// hubDir, returning the path of the HTML index.
func GenerateHub(ctx context.Context, store *Store, hubDir string, policy RetentionPolicy, now time.Time) (string, error) {
	pubs, err := store.List(ctx)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(hubDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create hub dir: %v", clierr.ErrStore, err)
	}

	export := IndexExport{
		LastUpdated:       now.UTC(),
		TotalPublications: len(pubs),
		Publications:      pubs,
		RetentionPolicy:   policy,
	}
	b, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: marshal index export: %v", clierr.ErrStore, err)
	}
	jsonPath := filepath.Join(hubDir, "publications_index.json")
	if err := os.WriteFile(jsonPath, b, 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", clierr.ErrStore, jsonPath, err)
	}

	// hub page lists newest first
	sorted := make([]model.PublicationRecord, len(pubs))
	copy(sorted, pubs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	cutoff := now.AddDate(0, 0, -policy.Days)
	entries := make([]hubEntry, 0, len(sorted))
	for _, p := range sorted {
		e := hubEntry{
			Date:  p.Date.Format("Monday, January 2, 2006"),
			Count: p.ContentCount,
			Path:  p.Path,
		}
		if p.Date.Before(cutoff) {
			e.Class, e.Status = "archived", "Archived"
		} else {
			e.Class, e.Status = "recent", "Recent"
		}
		entries = append(entries, e)
	}

	var buf bytes.Buffer
	err = hubTmpl.Execute(&buf, struct {
		Total        int
		Updated      string
		Publications []hubEntry
	}{
		Total:        len(pubs),
		Updated:      now.Format("January 2, 2006 at 3:04 PM"),
		Publications: entries,
	})
	if err != nil {
		return "", fmt.Errorf("%w: render hub: %v", clierr.ErrStore, err)
	}

	htmlPath := filepath.Join(hubDir, "index.html")
	if err := os.WriteFile(htmlPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", clierr.ErrStore, htmlPath, err)
	}
	return htmlPath, nil
}
