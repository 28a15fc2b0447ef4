package vibes

import (
	"sort"

	"curationsla/internal/model"
)

// Filter scores each item over "title description", drops items below the
// threshold, and returns the survivors sorted by vibe score descending.
// The sort is stable: ties keep their original feed order. Input items are
// not mutated.
func Filter(s *Scorer, items []model.ContentItem, threshold float64) []model.ScoredItem {
	kept := make([]model.ScoredItem, 0, len(items))
	for _, it := range items {
		text := it.Title + " " + it.Description
		score := s.Score(text)
		if score < threshold {
			continue
		}
		kept = append(kept, model.ScoredItem{
			Item:         it,
			VibeScore:    score,
			Neighborhood: s.Neighborhood(text),
		})
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].VibeScore > kept[j].VibeScore
	})
	return kept
}
