package sqlite

import "fmt"

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanEvent scans a single event from a database row
func ScanEvent(scanner Scanner) (*EventRecord, error) {
	record := &EventRecord{}
	var start, deadline, occurred string

	err := scanner.Scan(
		&record.ID,
		&record.Kind,
		&record.TaskName,
		&record.Description,
		&start,
		&deadline,
		&occurred,
		&record.Detail,
	)
	if err != nil {
		return nil, err
	}

	if record.StartTime, err = ParseTimeFromDB(start); err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}
	if record.Deadline, err = ParseTimeFromDB(deadline); err != nil {
		return nil, fmt.Errorf("deadline: %w", err)
	}
	if record.OccurredAt, err = ParseTimeFromDB(occurred); err != nil {
		return nil, fmt.Errorf("occurred_at: %w", err)
	}

	return record, nil
}

// ScanEvents scans multiple events from database rows
func ScanEvents(rows Rows) ([]*EventRecord, error) {
	var records []*EventRecord
	for rows.Next() {
		record, err := ScanEvent(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
