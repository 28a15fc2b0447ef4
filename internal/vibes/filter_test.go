package vibes

import (
	"testing"

	"curationsla/internal/model"
)

func testItems() []model.ContentItem {
	return []model.ContentItem{
		{Title: "Art festival celebrates community", Description: "A wonderful celebration of creativity and culture"},
		{Title: "Crime wave hits area", Description: "Police investigate a series of robberies"},
		{Title: "New restaurant opens", Description: "A beautiful new cafe featuring local artists"},
		{Title: "Quiet day in the city", Description: "Nothing much going on"},
	}
}

func TestFilterDropsBelowThreshold(t *testing.T) {
	t.Parallel()
	s := NewDefaultScorer()
	kept := Filter(s, testItems(), DefaultThreshold)
	for _, sc := range kept {
		if sc.VibeScore < DefaultThreshold {
			t.Errorf("kept item %q with score %v below threshold", sc.Item.Title, sc.VibeScore)
		}
		if sc.Item.Title == "Crime wave hits area" {
			t.Errorf("bad vibes item survived the filter")
		}
	}
	if len(kept) == 0 {
		t.Fatalf("expected some items to survive")
	}
}

func TestFilterSortsByScoreDescending(t *testing.T) {
	t.Parallel()
	s := NewDefaultScorer()
	kept := Filter(s, testItems(), 0)
	for i := 1; i < len(kept); i++ {
		if kept[i].VibeScore > kept[i-1].VibeScore {
			t.Errorf("items not sorted descending: %v before %v", kept[i-1].VibeScore, kept[i].VibeScore)
		}
	}
}

func TestFilterStableOnTies(t *testing.T) {
	t.Parallel()
	s := NewDefaultScorer()
	items := []model.ContentItem{
		{Title: "first neutral item"},
		{Title: "second neutral item"},
		{Title: "third neutral item"},
	}
	kept := Filter(s, items, 0)
	if len(kept) != 3 {
		t.Fatalf("expected 3 items, got %d", len(kept))
	}
	for i, want := range []string{"first neutral item", "second neutral item", "third neutral item"} {
		if kept[i].Item.Title != want {
			t.Errorf("tie order broken at %d: got %q, want %q", i, kept[i].Item.Title, want)
		}
	}
}

func TestFilterThresholdMonotonicity(t *testing.T) {
	t.Parallel()
	s := NewDefaultScorer()
	items := testItems()
	prev := len(Filter(s, items, 0))
	for _, threshold := range []float64{0.1, 0.3, 0.5, 0.7, 0.9, 1.0} {
		n := len(Filter(s, items, threshold))
		if n > prev {
			t.Errorf("raising threshold to %v grew kept set from %d to %d", threshold, prev, n)
		}
		prev = n
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	s := NewDefaultScorer()
	items := testItems()
	want := items[0].Title
	Filter(s, items, DefaultThreshold)
	if items[0].Title != want {
		t.Errorf("input mutated: %q", items[0].Title)
	}
}
