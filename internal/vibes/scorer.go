// Package vibes implements the Good Vibes content scoring used to decide
// which items make it into the newsletter: a keyword-count heuristic score in
// [0,1], plus neighborhood extraction from a fixed gazetteer.
package vibes

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefaultThreshold is the minimum vibe score for an item to be published.
	DefaultThreshold = 0.3

	// DefaultNeighborhood is returned when no gazetteer entry matches.
	DefaultNeighborhood = "Los Angeles"

	blockedWeight = 2
	scoreBaseline = 5
	scoreDivisor  = 10
)

// Scorer computes vibe scores and neighborhoods over free text. It is a pure
// value type; all state is fixed at construction.
type Scorer struct {
	lexicon       Lexicon
	neighborhoods []Area
	titleCaser    cases.Caser
}

// NewScorer builds a scorer from the given lexicon and gazetteer. Keyword and
// variant matching is case-insensitive substring matching, deliberately
// without word boundaries: the published scores depend on it.
func NewScorer(lex Lexicon, hoods []Area) *Scorer {
	return &Scorer{
		lexicon:       lex,
		neighborhoods: hoods,
		titleCaser:    cases.Title(language.AmericanEnglish),
	}
}

// NewDefaultScorer builds a scorer over the built-in lexicon and gazetteer.
func NewDefaultScorer() *Scorer {
	return NewScorer(DefaultLexicon(), DefaultNeighborhoods())
}

// Score maps text to a vibe score in [0,1]. Blocked keywords weigh double;
// the +5 baseline puts neutral (and empty) text at 0.5.
func (s *Scorer) Score(text string) float64 {
	lower := strings.ToLower(text)

	net := 0
	for _, kw := range s.lexicon.Good {
		if strings.Contains(lower, kw) {
			net++
		}
	}
	for _, kw := range s.lexicon.Blocked {
		if strings.Contains(lower, kw) {
			net -= blockedWeight
		}
	}

	score := float64(net+scoreBaseline) / scoreDivisor
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Neighborhood returns the title-cased first gazetteer match in text, or
// DefaultNeighborhood if none matches. Areas and variants are checked in
// declaration order, so the tie-break is stable across runs.
func (s *Scorer) Neighborhood(text string) string {
	lower := strings.ToLower(text)
	for _, area := range s.neighborhoods {
		for _, variant := range area.Variants {
			if strings.Contains(lower, variant) {
				return s.titleCaser.String(variant)
			}
		}
	}
	return DefaultNeighborhood
}

// Analysis is a diagnostic breakdown of one text's scoring.
type Analysis struct {
	VibeScore    float64  `json:"vibe_score"`
	PassesFilter bool     `json:"passes_filter"`
	Neighborhood string   `json:"neighborhood"`
	GoodKeywords []string `json:"good_keywords_found"`
	BadKeywords  []string `json:"bad_keywords_found"`
	TextLength   int      `json:"text_length"`
}

// Analyze reports which keywords fired for a text, alongside its score and
// neighborhood. Backs the analyze CLI command.
func (s *Scorer) Analyze(text string, threshold float64) Analysis {
	lower := strings.ToLower(text)

	var good, bad []string
	for _, kw := range s.lexicon.Good {
		if strings.Contains(lower, kw) {
			good = append(good, kw)
		}
	}
	for _, kw := range s.lexicon.Blocked {
		if strings.Contains(lower, kw) {
			bad = append(bad, kw)
		}
	}

	score := s.Score(text)
	return Analysis{
		VibeScore:    score,
		PassesFilter: score >= threshold,
		Neighborhood: s.Neighborhood(text),
		GoodKeywords: good,
		BadKeywords:  bad,
		TextLength:   len(text),
	}
}
