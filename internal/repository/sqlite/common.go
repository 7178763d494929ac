package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"duelist/internal/errors"
)

// eventColumns is the column order ScanEvent expects.
const eventColumns = `id, kind, task_name, description, start_time, deadline, occurred_at, detail`

// dbError reports a failed journal operation as a database AppError.
func dbError(operation string, err error) error {
	return errors.NewDatabaseError(operation, err)
}

// exec runs a write and returns the number of rows it changed.
func exec(ctx context.Context, db *sql.DB, operation, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, dbError(operation, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, dbError(operation, err)
	}
	return rows, nil
}

// queryEvents runs a SELECT of eventColumns and scans every row.
func queryEvents(ctx context.Context, db *sql.DB, operation, query string, args ...interface{}) ([]*EventRecord, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(operation, err)
	}
	defer rows.Close()

	records, err := ScanEvents(rows)
	if err != nil {
		return nil, dbError(operation, err)
	}
	return records, nil
}

// where collects AND-ed conditions and their arguments.
type where struct {
	conditions []string
	args       []interface{}
}

func (w *where) add(condition string, arg interface{}) {
	w.conditions = append(w.conditions, condition)
	w.args = append(w.args, arg)
}

// String returns the WHERE clause with a leading space, or "" when empty.
func (w *where) String() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conditions, " AND ")
}
