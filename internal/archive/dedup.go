package archive

import (
	"context"
	"time"
)

// DuplicateMatch pairs a new item with the publication that already carried
// its hash.
type DuplicateMatch struct {
	Item     ExtractedItem `json:"item"`
	Previous HashOrigin    `json:"previous_publication"`
}

// DuplicateReport partitions checked items into duplicates and unique items.
type DuplicateReport struct {
	Duplicates     []DuplicateMatch `json:"duplicates"`
	Unique         []ExtractedItem  `json:"unique_items"`
	DuplicateCount int              `json:"duplicate_count"`
	UniqueCount    int              `json:"unique_count"`
}

// CheckDuplicates looks each item's hash up against publications inside the
// lookback window. The window boundary is inclusive: a publication dated
// exactly lookbackDays before now still counts.
func (s *Store) CheckDuplicates(ctx context.Context, items []ExtractedItem, lookbackDays int, now time.Time) (DuplicateReport, error) {
	since := now.AddDate(0, 0, -lookbackDays)
	recent, err := s.RecentHashes(ctx, since)
	if err != nil {
		return DuplicateReport{}, err
	}

	report := DuplicateReport{
		Duplicates: []DuplicateMatch{},
		Unique:     []ExtractedItem{},
	}
	for _, item := range items {
		if origin, ok := recent[item.Hash]; ok {
			report.Duplicates = append(report.Duplicates, DuplicateMatch{Item: item, Previous: origin})
		} else {
			report.Unique = append(report.Unique, item)
		}
	}
	report.DuplicateCount = len(report.Duplicates)
	report.UniqueCount = len(report.Unique)
	return report, nil
}

// ArchivePublication extracts content items from a publication directory,
// records them in the ledger, and returns the number of extracted blocks.
//
// extraHashes registers alternate normal forms of the same content (generate
// passes the raw feed-text hashes of the items it just published), so later
// lookups match whichever representation the caller has. They do not count
// toward the publication's content count.
func (s *Store) ArchivePublication(ctx context.Context, date time.Time, dir, relPath string, extraHashes ...string) (int, error) {
	items, err := ExtractItems(dir)
	if err != nil {
		return 0, err
	}
	hashes := make([]string, 0, len(items)+len(extraHashes))
	for _, it := range items {
		hashes = append(hashes, it.Hash)
	}
	hashes = append(hashes, extraHashes...)
	rec := newPublicationRecord(date, relPath, hashes)
	rec.ContentCount = len(items)
	if err := s.Append(ctx, rec); err != nil {
		return 0, err
	}
	return len(items), nil
}
