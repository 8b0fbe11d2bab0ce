package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const timeLayout = time.RFC3339

// Log is one recorded occurrence of an item. Comment and Details are a
// snapshot; later template edits never change them.
type Log struct {
	ID     int64
	ItemID int64
	DoneAt time.Time
	// Comment is the rendered text, or the user's override.
	Comment string
	// Details are the raw values captured by the template form.
	Details map[string]string

	// Populated by reads.
	ItemName   string
	CategoryID int64
}

// CreateLog inserts entry and returns it with its id.
func (s *Store) CreateLog(ctx context.Context, entry Log) (Log, error) {
	detail, err := encodeDetails(entry.Details)
	if err != nil {
		return Log{}, err
	}

	res, err := s.db.ExecContext(ctx, `
	INSERT INTO logs (item_id, done_at, comment, detail)
	VALUES (?, ?, ?, ?)
	`, entry.ItemID, entry.DoneAt.UTC().Format(timeLayout), nullable(entry.Comment), detail)
	if err != nil {
		return Log{}, fmt.Errorf("failed to insert log: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Log{}, fmt.Errorf("failed to read log id: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// UpdateLog changes the time and comment of an existing log.
func (s *Store) UpdateLog(ctx context.Context, id int64, doneAt time.Time, comment string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE logs SET done_at = ?, comment = ? WHERE id = ?`,
		doneAt.UTC().Format(timeLayout), nullable(comment), id)
	if err != nil {
		return fmt.Errorf("failed to update log: %w", err)
	}
	return expectRow(res, ErrLogNotFound)
}

// DeleteLog removes a log.
func (s *Store) DeleteLog(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete log: %w", err)
	}
	return expectRow(res, ErrLogNotFound)
}

// LogsBetween returns logs with start <= done_at < end, oldest first.
func (s *Store) LogsBetween(ctx context.Context, start, end time.Time) ([]Log, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT logs.id, logs.item_id, logs.done_at, COALESCE(logs.comment, ''), COALESCE(logs.detail, ''),
		items.name, COALESCE(items.parent_id, 0)
	FROM logs
	INNER JOIN items ON items.id = logs.item_id
	WHERE logs.done_at >= ? AND logs.done_at < ?
	ORDER BY logs.done_at, logs.id
	`, start.UTC().Format(timeLayout), end.UTC().Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	var logs []Log
	for rows.Next() {
		var (
			entry  Log
			doneAt string
			detail string
		)
		if err := rows.Scan(&entry.ID, &entry.ItemID, &doneAt, &entry.Comment, &detail,
			&entry.ItemName, &entry.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		entry.DoneAt, err = time.Parse(timeLayout, doneAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse done_at %q: %w", doneAt, err)
		}
		entry.Details = decodeDetails(detail)
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}
	return logs, nil
}

func encodeDetails(details map[string]string) (any, error) {
	if len(details) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("failed to encode details: %w", err)
	}
	return string(data), nil
}

// decodeDetails treats unreadable detail columns as empty.
func decodeDetails(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	var details map[string]string
	if err := json.Unmarshal([]byte(raw), &details); err != nil {
		return nil
	}
	return details
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func expectRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
