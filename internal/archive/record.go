package archive

import (
	"time"

	"curationsla/internal/model"
)

// newPublicationRecord builds an immutable ledger entry for a publication.
// ContentCount equals the number of hashes at creation time.
func newPublicationRecord(date time.Time, path string, hashes []string) model.PublicationRecord {
	return model.PublicationRecord{
		Date:          date.UTC(),
		Path:          path,
		ContentHashes: hashes,
		ContentCount:  len(hashes),
		ArchivedAt:    time.Now().UTC(),
	}
}
