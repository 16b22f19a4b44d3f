package activity

import (
	"database/sql"
	"fmt"
	"github.com/google/uuid"
	"time"
)

func NewActivityStore(db *sql.DB) (*Store, error) {
	as := &Store{db: db}
	if err := as.initialize(); err != nil {
		return nil, err
	}
	return as, nil
}

func (as *Store) initialize() error {
	_, err := as.db.Exec(`
		CREATE TABLE IF NOT EXISTS activity (
			id TEXT PRIMARY KEY,
			action TEXT NOT NULL,
			name TEXT NOT NULL,
			new_name TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			remote_addr TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS activity_created_at ON activity (created_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to create activity table: %w", err)
	}
	return nil
}

func (as *Store) Record(event Event) error {
	if event.Id == "" {
		event.Id = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	_, err := as.db.Exec(
		"INSERT INTO activity (id, action, name, new_name, outcome, remote_addr, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		event.Id,
		string(event.Action),
		event.Name,
		event.NewName,
		event.Outcome,
		event.RemoteAddr,
		event.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// ListRecent returns at most limit events, newest first.
func (as *Store) ListRecent(limit int) ([]Event, error) {
	events := make([]Event, 0)
	if limit <= 0 {
		return events, nil
	}
	rows, err := as.db.Query(
		"SELECT id, action, name, new_name, outcome, remote_addr, created_at FROM activity ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var event Event
		var action string
		if err := rows.Scan(&event.Id, &action, &event.Name, &event.NewName, &event.Outcome, &event.RemoteAddr, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		event.Action = Action(action)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over activity: %w", err)
	}
	return events, nil
}

// Prune deletes events created before olderThan and reports how many were
// removed.
func (as *Store) Prune(olderThan time.Time) (int64, error) {
	res, err := as.db.Exec(
		"DELETE FROM activity WHERE created_at < ?",
		olderThan.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune activity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned activity: %w", err)
	}
	return n, nil
}
