package markdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseWithFrontmatter(t *testing.T) {
	t.Parallel()
	content := "" +
		"---\n" +
		"title: \"CurationsLA Good Vibes — Friday\"\n" +
		"slug: good-vibes-20260828\n" +
		"datetime: 2026-08-28 06:00\n" +
		"---\n\n" +
		"#### 🍟 **EATS**\n\nBody paragraph here.\n"

	doc, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	for _, key := range []string{"title", "slug", "datetime"} {
		if _, ok := doc.Frontmatter[key]; !ok {
			t.Errorf("missing %s in frontmatter", key)
		}
	}
	if !strings.Contains(doc.Body, "#### 🍟 **EATS**") {
		t.Errorf("body missing section header; got: %q", doc.Body)
	}
	if strings.Contains(doc.Body, "slug:") {
		t.Errorf("frontmatter leaked into body")
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	t.Parallel()
	body := "# Hello\n\nNo frontmatter here.\n"
	doc, err := Parse([]byte(body))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(doc.Frontmatter) != 0 {
		t.Errorf("expected empty frontmatter, got %v", doc.Frontmatter)
	}
	if doc.Body != body {
		t.Errorf("body altered: %q", doc.Body)
	}
}

func TestParseUnterminatedFrontmatter(t *testing.T) {
	t.Parallel()
	content := "---\ntitle: dangling\nno closing delimiter\n"
	doc, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if doc.Body != content {
		t.Errorf("unterminated frontmatter should fall back to whole-file body")
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "newsletter-friday.md")
	if err := os.WriteFile(path, []byte("---\ntitle: t\n---\nbody\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if doc.Frontmatter["title"] != "t" {
		t.Errorf("title = %v", doc.Frontmatter["title"])
	}
	if strings.TrimSpace(doc.Body) != "body" {
		t.Errorf("body = %q", doc.Body)
	}
}
