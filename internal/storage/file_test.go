package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileRecorder_AppendAndLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	p := filepath.Join(dir, "logs", "interview.jsonl")
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}

	r1 := Record{Question: "Tell me about it.", Response: "It was red.", Timestamp: time.Unix(1, 0).UTC()}
	r2 := Record{Question: "Where?", Response: "In Porto.", Timestamp: time.Unix(2, 0).UTC()}
	if err := rec.AppendRecord(ctx, r1); err != nil {
		t.Fatalf("append1: %v", err)
	}
	if err := rec.AppendRecord(ctx, r2); err != nil {
		t.Fatalf("append2: %v", err)
	}

	records, err := rec.LoadRecords(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("want 2, got %d", len(records))
	}
	if records[0].Question != r1.Question || records[1].Response != r2.Response {
		t.Fatalf("order mismatch: %+v", records)
	}
	if !records[1].Timestamp.Equal(r2.Timestamp) {
		t.Fatalf("timestamp lost: %v", records[1].Timestamp)
	}

	st, err := os.Stat(p)
	if err != nil || st.Size() == 0 {
		t.Fatalf("file not written")
	}
}

func TestFileRecorder_CanceledContext(t *testing.T) {
	rec, err := NewFileRecorder(filepath.Join(t.TempDir(), "log.jsonl"))
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := rec.AppendRecord(ctx, Record{Question: "q", Response: "r"}); err == nil {
		t.Fatal("expected error on canceled context")
	}
	records, _ := rec.LoadRecords(context.Background())
	if len(records) != 0 {
		t.Fatalf("nothing should be written, got %+v", records)
	}
}

func TestOpenFileRecorder_MissingFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "interview.jsonl")
	if _, err := OpenFileRecorder(p); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := os.Stat(filepath.Dir(p)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("opening must not create anything, stat dir: %v", err)
	}
}

func TestOpenFileRecorder_Existing(t *testing.T) {
	ctx := context.Background()
	p := filepath.Join(t.TempDir(), "interview.jsonl")
	w, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := w.AppendRecord(ctx, Record{Question: "q", Response: "r", Timestamp: time.Now()}); err != nil {
		t.Fatalf("append: %v", err)
	}

	r, err := OpenFileRecorder(p)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	records, err := r.LoadRecords(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 1 || records[0].Question != "q" {
		t.Fatalf("unexpected records: %+v", records)
	}
}
