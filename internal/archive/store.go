// Package archive manages the publications ledger: which newsletters were
// published, which content hashes they carried, duplicate detection over a
// lookback window, and retention cleanup of old publication directories.
//
// The ledger lives in an embedded SQLite database so that overlapping
// scheduled runs cannot corrupt it the way a read-modify-write JSON file
// could. A JSON export of the index is still emitted for the archive hub.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"curationsla/internal/clierr"
	"curationsla/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS publications (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	path TEXT NOT NULL,
	content_count INTEGER NOT NULL,
	archived_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS content_hashes (
	publication_id INTEGER NOT NULL REFERENCES publications(id) ON DELETE CASCADE,
	hash TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_publications_date ON publications(date);
CREATE INDEX IF NOT EXISTS idx_content_hashes_hash ON content_hashes(hash);
`

// Store is the publications index. All mutations go through SQLite
// transactions; concurrent CLI invocations serialize on the database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the index database at path.
// A corrupt or unreadable database surfaces as a store error rather than
// being silently treated as empty: it is durable state.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open index %s: %v", clierr.ErrStore, path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate index %s: %v", clierr.ErrStore, path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// timeFmt stores dates as zero-padded RFC 3339 UTC so lexical order in SQL
// equals chronological order.
const timeFmt = time.RFC3339

// Append adds a publication record to the ledger. Records are append-only:
// nothing updates or retracts them afterwards.
func (s *Store) Append(ctx context.Context, rec model.PublicationRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", clierr.ErrStore, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO publications (date, path, content_count, archived_at) VALUES (?, ?, ?, ?)`,
		rec.Date.UTC().Format(timeFmt), rec.Path, rec.ContentCount, rec.ArchivedAt.UTC().Format(timeFmt))
	if err != nil {
		return fmt.Errorf("%w: insert publication: %v", clierr.ErrStore, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: publication id: %v", clierr.ErrStore, err)
	}
	for _, h := range rec.ContentHashes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO content_hashes (publication_id, hash) VALUES (?, ?)`, id, h); err != nil {
			return fmt.Errorf("%w: insert hash: %v", clierr.ErrStore, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", clierr.ErrStore, err)
	}
	return nil
}

// HashOrigin records where a content hash was previously published.
type HashOrigin struct {
	PublicationDate time.Time `json:"publication_date"`
	PublicationPath string    `json:"publication_path"`
}

// RecentHashes flattens the hash sets of all publications dated at or after
// since into one lookup map. Publications are scanned in ascending date
// order, so when the same hash appears in several publications inside the
// window, the most recent one wins.
func (s *Store) RecentHashes(ctx context.Context, since time.Time) (map[string]HashOrigin, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT h.hash, p.date, p.path
		FROM content_hashes h
		JOIN publications p ON p.id = h.publication_id
		WHERE p.date >= ?
		ORDER BY p.date ASC, p.id ASC`,
		since.UTC().Format(timeFmt))
	if err != nil {
		return nil, fmt.Errorf("%w: recent hashes: %v", clierr.ErrStore, err)
	}
	defer rows.Close()

	out := map[string]HashOrigin{}
	for rows.Next() {
		var hash, dateStr, path string
		if err := rows.Scan(&hash, &dateStr, &path); err != nil {
			return nil, fmt.Errorf("%w: scan hash row: %v", clierr.ErrStore, err)
		}
		date, err := time.Parse(timeFmt, dateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date in index %q: %v", clierr.ErrStore, dateStr, err)
		}
		out[hash] = HashOrigin{PublicationDate: date, PublicationPath: path}
	}
	return out, rows.Err()
}

// FindPrevious returns the most recent publication strictly before the given
// date, or clierr.ErrNotFound when the ledger has none.
func (s *Store) FindPrevious(ctx context.Context, before time.Time) (model.PublicationRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, path, content_count, archived_at
		FROM publications
		WHERE date < ?
		ORDER BY date DESC, id DESC
		LIMIT 1`,
		before.UTC().Format(timeFmt))

	var id int64
	rec, err := scanPublication(row, &id)
	if err == sql.ErrNoRows {
		return model.PublicationRecord{}, fmt.Errorf("%w: no publication before %s", clierr.ErrNotFound, before.Format("2006-01-02"))
	}
	if err != nil {
		return model.PublicationRecord{}, err
	}
	rec.ContentHashes, err = s.hashesFor(ctx, id)
	return rec, err
}

// List returns every publication in ascending date order with its hashes.
func (s *Store) List(ctx context.Context) ([]model.PublicationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, path, content_count, archived_at
		FROM publications
		ORDER BY date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: list publications: %v", clierr.ErrStore, err)
	}
	defer rows.Close()

	var recs []model.PublicationRecord
	var ids []int64
	for rows.Next() {
		var id int64
		rec, err := scanPublication(rows, &id)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list publications: %v", clierr.ErrStore, err)
	}
	for i, id := range ids {
		hashes, err := s.hashesFor(ctx, id)
		if err != nil {
			return nil, err
		}
		recs[i].ContentHashes = hashes
	}
	return recs, nil
}

// Count returns the total number of publications in the ledger.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM publications`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count publications: %v", clierr.ErrStore, err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPublication(row rowScanner, id *int64) (model.PublicationRecord, error) {
	var rec model.PublicationRecord
	var dateStr, archivedStr string
	if err := row.Scan(id, &dateStr, &rec.Path, &rec.ContentCount, &archivedStr); err != nil {
		if err == sql.ErrNoRows {
			return rec, err
		}
		return rec, fmt.Errorf("%w: scan publication: %v", clierr.ErrStore, err)
	}
	var err error
	if rec.Date, err = time.Parse(timeFmt, dateStr); err != nil {
		return rec, fmt.Errorf("%w: bad date in index %q: %v", clierr.ErrStore, dateStr, err)
	}
	if rec.ArchivedAt, err = time.Parse(timeFmt, archivedStr); err != nil {
		return rec, fmt.Errorf("%w: bad archived_at in index %q: %v", clierr.ErrStore, archivedStr, err)
	}
	return rec, nil
}

func (s *Store) hashesFor(ctx context.Context, id int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT hash FROM content_hashes WHERE publication_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, fmt.Errorf("%w: load hashes: %v", clierr.ErrStore, err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("%w: scan hash: %v", clierr.ErrStore, err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
