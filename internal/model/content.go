package model

import "time"

// ContentItem is a single piece of content pulled from an RSS feed or a
// scraped page, before Good Vibes filtering.
type ContentItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Source      string `json:"source"`
	Category    string `json:"category"`
	PublishedAt string `json:"published"` // free-form date as given by the feed
}

// ScoredItem decorates a content item with its vibe score and the
// neighborhood it was matched to.
type ScoredItem struct {
	Item         ContentItem `json:"item"`
	VibeScore    float64     `json:"vibe_score"`
	Neighborhood string      `json:"neighborhood"`
}

// PublicationRecord describes one archived newsletter publication.
// Records are append-only; they are never mutated after creation.
type PublicationRecord struct {
	Date          time.Time `json:"date"`
	Path          string    `json:"path"`
	ContentHashes []string  `json:"content_hashes"`
	ContentCount  int       `json:"content_count"`
	ArchivedAt    time.Time `json:"archived_at"`
}
