package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ademuri/speech-profile-tools/internal/report"
)

// ErrNoEntry is returned when an archive index does not name an entry.
var ErrNoEntry = errors.New("no archive entry at that index")

// Entry is an archived report's summary row. Index is the 0-based position
// in insertion order; it shifts down when earlier entries are deleted.
type Entry struct {
	Index          int
	ID             string
	Source         report.SourceKind
	Created        time.Time
	SavedAt        time.Time
	PrimaryPattern string
	Duration       int
}

// Type is the source's human label.
func (e Entry) Type() string {
	return e.Source.Label()
}

// Save appends r to the archive and returns its id. The full report is
// stored, history included, so it can be replayed later.
func (s *Store) Save(r *report.Report) (string, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encoding report %s: %w", r.ID, err)
	}
	_, err = s.db.Exec(
		"INSERT INTO Report (id, source, created, primary_pattern, duration, body, saved_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		r.ID, string(r.Source), r.Timestamp.UTC(), r.PrimaryPattern, r.Duration, string(body), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("inserting report %s: %w", r.ID, err)
	}
	return r.ID, nil
}

// List returns the archive in insertion order.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query("SELECT id, source, created, primary_pattern, duration, saved_at FROM Report ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("listing archive: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var source string
		var savedAt sql.NullTime
		if err := rows.Scan(&e.ID, &source, &e.Created, &e.PrimaryPattern, &e.Duration, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning archive entry: %w", err)
		}
		e.Index = len(entries)
		e.Source = report.SourceKind(source)
		e.SavedAt = savedAt.Time
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archive: %w", err)
	}
	return entries, nil
}

// LoadAll returns every archived report in insertion order.
func (s *Store) LoadAll() ([]report.Report, error) {
	rows, err := s.db.Query("SELECT body FROM Report ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("loading archive: %w", err)
	}
	defer rows.Close()

	var reports []report.Report
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning archive body: %w", err)
		}
		var r report.Report
		if err := json.Unmarshal([]byte(body), &r); err != nil {
			return nil, fmt.Errorf("decoding archived report %d: %w", len(reports), err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archive: %w", err)
	}
	return reports, nil
}

// Get returns the report at index.
func (s *Store) Get(index int) (*report.Report, error) {
	if index < 0 {
		return nil, ErrNoEntry
	}
	row := s.db.QueryRow("SELECT body FROM Report ORDER BY position LIMIT 1 OFFSET ?", index)
	var body string
	err := row.Scan(&body)
	if err == sql.ErrNoRows {
		return nil, ErrNoEntry
	}
	if err != nil {
		return nil, fmt.Errorf("getting archive entry %d: %w", index, err)
	}
	var r report.Report
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return nil, fmt.Errorf("decoding archived report %d: %w", index, err)
	}
	return &r, nil
}

// Delete removes the entry at index and returns the id it carried. Later
// entries move up by one.
func (s *Store) Delete(index int) (string, error) {
	if index < 0 {
		return "", ErrNoEntry
	}
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow("SELECT position, id FROM Report ORDER BY position LIMIT 1 OFFSET ?", index)
	var position int64
	var id string
	err = row.Scan(&position, &id)
	if err == sql.ErrNoRows {
		return "", ErrNoEntry
	}
	if err != nil {
		return "", fmt.Errorf("finding archive entry %d: %w", index, err)
	}

	if _, err := tx.Exec("DELETE FROM Report WHERE position = ?", position); err != nil {
		return "", fmt.Errorf("deleting archive entry %d: %w", index, err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing delete: %w", err)
	}
	return id, nil
}

// CountWithPrefix counts archived reports whose id starts with prefix.
func (s *Store) CountWithPrefix(prefix string) (int, error) {
	// Not LIKE: '_' in the prefixes is a LIKE wildcard.
	row := s.db.QueryRow("SELECT COUNT(*) FROM Report WHERE substr(id, 1, length(?)) = ?", prefix, prefix)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting reports with prefix %q: %w", prefix, err)
	}
	return count, nil
}
