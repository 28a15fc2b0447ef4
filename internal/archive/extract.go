package archive

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"curationsla/internal/clierr"
	"curationsla/internal/contenthash"
	"curationsla/internal/markdown"
)

// minItemLength filters out section headers and stray fragments when
// splitting a newsletter body into content blocks.
const minItemLength = 50

// ExtractedItem is one content block recovered from a published newsletter,
// with its dedup hash.
type ExtractedItem struct {
	Content    string `json:"content"`
	Hash       string `json:"hash"`
	SourceFile string `json:"source_file"`
}

// ExtractItems pulls individual content blocks out of every newsletter-*.md
// file in a publication directory. A file that fails to parse is logged and
// skipped; the rest of the directory is still processed.
func ExtractItems(dir string) ([]ExtractedItem, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("%w: publication path %s", clierr.ErrNotFound, dir)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "newsletter-*.md"))
	if err != nil {
		return nil, fmt.Errorf("%w: glob %s: %v", clierr.ErrStore, dir, err)
	}

	var items []ExtractedItem
	for _, path := range matches {
		doc, err := markdown.ParseFile(path)
		if err != nil {
			slog.Warn("archive: skipping unreadable newsletter file", "path", path, "err", err)
			continue
		}
		items = append(items, splitBlocks(doc.Body, filepath.Base(path))...)
	}
	return items, nil
}

// splitBlocks divides a newsletter body into content blocks. A new block
// starts at headlines, bold lead-ins, images, tables, and rules; everything
// below a marker line belongs to that block.
func splitBlocks(body, sourceFile string) []ExtractedItem {
	var items []ExtractedItem
	var current strings.Builder

	flush := func() {
		block := strings.TrimSpace(current.String())
		current.Reset()
		if len(block) > minItemLength {
			items = append(items, ExtractedItem{
				Content:    block,
				Hash:       contenthash.Sum(block),
				SourceFile: sourceFile,
			})
		}
	}

	for _, line := range strings.Split(body, "\n") {
		if isBlockMarker(line) {
			flush()
			current.WriteString(line)
		} else {
			current.WriteString("\n")
			current.WriteString(line)
		}
	}
	flush()
	return items
}

func isBlockMarker(line string) bool {
	for _, prefix := range []string{"#", "**", "![", "|", "---"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
