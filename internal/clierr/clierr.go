// Package clierr defines the error classes surfaced to the CLI exit code
// mapping. Wrap errors with these sentinels via fmt.Errorf("...: %w", ...).
package clierr

import "errors"

var (
	// ErrNotFound marks a missing publication path or record.
	ErrNotFound = errors.New("not found")
	// ErrParse marks malformed input (dates, frontmatter, feed XML).
	ErrParse = errors.New("parse error")
	// ErrStore marks archive index or filesystem write failures. These affect
	// durable state and must never be swallowed.
	ErrStore = errors.New("store error")
)
