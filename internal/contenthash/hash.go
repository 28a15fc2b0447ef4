// Package contenthash produces the deduplication digests for newsletter
// content. The digest is MD5 over normalized text; it is a dedup key, not a
// security primitive, and genuinely different text may collide. That
// false-positive risk is accepted: a collision is treated as a duplicate.
package contenthash

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// stopWords are removed from normalized text so that reworded headlines with
// shuffled filler still hash the same.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {},
}

// Normalize lowercases text, strips punctuation, collapses whitespace runs
// to single spaces, trims, and drops stop words as whole tokens. Normalize is
// idempotent, so a reworded headline like "New Restaurant Opens!!" and
// "new restaurant opens" hash the same.
func Normalize(text string) string {
	lower := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '\t', r == '\n', r == '\r':
			return ' '
		default:
			return -1
		}
	}, text)
	fields := strings.Fields(lower)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := stopWords[f]; ok {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

// Sum returns the hex digest of the normalized text. Identical text after
// normalization always yields the identical digest, in-process and across
// runs (no salt).
func Sum(text string) string {
	d := md5.Sum([]byte(Normalize(text)))
	return hex.EncodeToString(d[:])
}
