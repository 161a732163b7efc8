package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound indicates the referenced entry does not exist.
var ErrNotFound = errors.New("queue entry not found")

// Entry is one file awaiting conversion. Position determines dispatch
// order.
type Entry struct {
	ID           int64     `json:"id"`
	SourcePath   string    `json:"source_path"`
	DisplayTitle string    `json:"display_title"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
}

// Enqueue inserts the given paths, skipping unsupported extensions and
// case-insensitive duplicates of both the current queue and the batch
// itself. It returns how many entries were added and how many paths
// were skipped.
func (s *Store) Enqueue(ctx context.Context, paths []string) (added, skipped int, err error) {
	ctx = ensureContext(ctx)

	existing, err := s.List(ctx)
	if err != nil {
		return 0, 0, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, entry := range existing {
		seen[strings.ToLower(entry.SourcePath)] = struct{}{}
	}
	nextPosition := 0
	for _, entry := range existing {
		if entry.Position >= nextPosition {
			nextPosition = entry.Position + 1
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin enqueue tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	for _, path := range paths {
		key := strings.ToLower(path)
		if !SupportedExtension(path) {
			skipped++
			continue
		}
		if _, dup := seen[key]; dup {
			skipped++
			continue
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO queue_entries (source_path, display_title, position, created_at)
             VALUES (?, ?, ?, ?)`,
			path, inferTitleFromPath(path), nextPosition, timestamp)
		if err != nil {
			return 0, 0, fmt.Errorf("insert queue entry: %w", err)
		}
		seen[key] = struct{}{}
		nextPosition++
		added++
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit enqueue: %w", err)
	}
	return added, skipped, nil
}

// List returns all entries in dispatch order.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	ctx = ensureContext(ctx)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_path, display_title, position, created_at
         FROM queue_entries ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("list queue entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Remove deletes the entry with the given id.
func (s *Store) Remove(ctx context.Context, id int64) error {
	res, err := s.execWithRetry(ctx, "DELETE FROM queue_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("remove queue entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.execWithRetry(ctx, "DELETE FROM queue_entries"); err != nil {
		return fmt.Errorf("clear queue: %w", err)
	}
	return nil
}

// DequeueAll atomically drains the queue in dispatch order. Used when
// committing the queue into a conversion batch.
func (s *Store) DequeueAll(ctx context.Context) ([]Entry, error) {
	ctx = ensureContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin drain tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx,
		`SELECT id, source_path, display_title, position, created_at
         FROM queue_entries ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("drain queue entries: %w", err)
	}
	entries, err := scanEntries(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM queue_entries"); err != nil {
		return nil, fmt.Errorf("delete drained entries: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit drain: %w", err)
	}
	return entries, nil
}

// Count returns the number of queued entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM queue_entries").Scan(&count); err != nil {
		return 0, fmt.Errorf("count queue entries: %w", err)
	}
	return count, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			createdAt string
		)
		if err := rows.Scan(&entry.ID, &entry.SourcePath, &entry.DisplayTitle, &entry.Position, &createdAt); err != nil {
			return nil, fmt.Errorf("scan queue entry: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate queue entries: %w", err)
	}
	return entries, nil
}

func inferTitleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
