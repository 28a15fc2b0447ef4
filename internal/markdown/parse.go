// Package markdown parses newsletter markdown files with optional YAML
// frontmatter, used when re-reading published newsletters for archiving.
package markdown

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a markdown file split into YAML frontmatter and body.
type Document struct {
	Frontmatter map[string]any
	Body        string
}

// ParseFile reads a newsletter markdown file from disk.
func ParseFile(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	return Parse(b)
}

// Parse splits content into frontmatter and body. Frontmatter, when present,
// sits at the top of the file between two lines containing only "---".
func Parse(content []byte) (Document, error) {
	br := bufio.NewReader(bytes.NewReader(content))
	peek, err := br.Peek(3)
	if err != nil && !errors.Is(err, io.EOF) {
		return Document{}, err
	}
	if string(peek) != "---" {
		return Document{Body: string(content)}, nil
	}

	// consume the opening delimiter line
	if _, err := br.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return Document{}, err
	}

	var fmBuf, bodyBuf strings.Builder
	closed := false
	for {
		line, err := br.ReadString('\n')
		if !closed && strings.TrimRight(line, "\r\n") == "---" {
			closed = true
		} else if closed {
			bodyBuf.WriteString(line)
		} else {
			fmBuf.WriteString(line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Document{}, err
		}
	}

	if !closed {
		// unterminated frontmatter; treat the whole file as body
		return Document{Body: string(content)}, nil
	}

	doc := Document{Body: strings.TrimLeft(bodyBuf.String(), "\n")}
	if err := yaml.Unmarshal([]byte(fmBuf.String()), &doc.Frontmatter); err != nil {
		return Document{}, err
	}
	return doc, nil
}
