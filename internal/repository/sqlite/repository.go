package sqlite

import (
	"context"
	"database/sql"
	"time"

	"duelist/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// SearchOptions filters journal queries. Zero values are not applied.
type SearchOptions struct {
	// TaskName matches one task exactly.
	TaskName string
	// Limit keeps only the newest events.
	Limit int
}

// Repository defines the interface for the events journal
type Repository interface {
	CreateEvent(ctx context.Context, record *EventRecord) error
	// SearchEvents returns matching events, newest first.
	SearchEvents(ctx context.Context, opts SearchOptions) ([]*EventRecord, error)
	DeleteEventsBefore(ctx context.Context, before time.Time) (int64, error)

	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, dbError("open database", err)
	}
	// The monitor and the shell write from different goroutines; a single
	// connection serializes them and keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, dbError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateEvent inserts a journal entry
func (r *SQLiteRepository) CreateEvent(ctx context.Context, record *EventRecord) error {
	query := `
	INSERT INTO events (` + eventColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := exec(ctx, r.db, "insert event", query,
		record.ID,
		record.Kind,
		record.TaskName,
		record.Description,
		FormatTimeForDB(record.StartTime),
		FormatTimeForDB(record.Deadline),
		FormatTimeForDB(record.OccurredAt),
		record.Detail,
	)
	return err
}

// SearchEvents searches the journal, newest first
func (r *SQLiteRepository) SearchEvents(ctx context.Context, opts SearchOptions) ([]*EventRecord, error) {
	var w where
	if opts.TaskName != "" {
		w.add("task_name = ?", opts.TaskName)
	}

	query := `SELECT ` + eventColumns + ` FROM events` + w.String() + ` ORDER BY occurred_at DESC, seq DESC`
	args := w.args
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	return queryEvents(ctx, r.db, "search events", query, args...)
}

// DeleteEventsBefore prunes events older than before and returns how many were removed
func (r *SQLiteRepository) DeleteEventsBefore(ctx context.Context, before time.Time) (int64, error) {
	return exec(ctx, r.db, "prune events", `DELETE FROM events WHERE occurred_at < ?`, FormatTimeForDB(before))
}
