package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const createLogsTable = `
CREATE TABLE IF NOT EXISTS interview_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	question TEXT,
	response TEXT,
	timestamp TEXT
)`

// SQLiteRecorder stores records in the interview_logs table.
// Timestamps are stored as RFC 3339 text with nanoseconds.
type SQLiteRecorder struct {
	db *sql.DB
}

func NewSQLiteRecorder(ctx context.Context, path string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to ensure db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// single connection keeps writes ordered
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, createLogsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create interview_logs: %w", err)
	}
	return &SQLiteRecorder{db: db}, nil
}

// OpenSQLiteRecorder opens an existing log database without creating
// the file or the interview_logs table.
func OpenSQLiteRecorder(ctx context.Context, path string) (*SQLiteRecorder, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	return &SQLiteRecorder{db: db}, nil
}

func (r *SQLiteRecorder) AppendRecord(ctx context.Context, rec Record) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO interview_logs (question, response, timestamp) VALUES (?, ?, ?)`,
		rec.Question, rec.Response, rec.Timestamp.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert interview log: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) LoadRecords(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT question, response, timestamp FROM interview_logs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query interview logs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var ts string
		if err := rows.Scan(&rec.Question, &rec.Response, &ts); err != nil {
			return nil, fmt.Errorf("scan interview log: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.Timestamp = t
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interview logs: %w", err)
	}
	return records, nil
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
