package storage

import (
	"context"
	"time"
)

// Record is one question/answer pair of an interview.
// Records are appended once and never mutated or deleted.
type Record struct {
	Question  string    `json:"question"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Recorder abstracts persistence of interview records.
// AppendRecord must persist synchronously: when it returns nil the record is durable.
// LoadRecords returns records in the order they were appended.
type Recorder interface {
	AppendRecord(ctx context.Context, rec Record) error
	LoadRecords(ctx context.Context) ([]Record, error)
	Close() error
}
