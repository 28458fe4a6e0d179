package audit

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/example/certtrack/pkg/kit"
)

func openTestLogger(t *testing.T) (*SQLiteLogger, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.db")
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("opening audit db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	l := NewSQLiteLogger(db)
	if err := l.Init(); err != nil {
		t.Fatalf("initializing audit schema: %v", err)
	}
	return l, db
}

func TestLogWritesRow(t *testing.T) {
	l, db := openTestLogger(t)
	defer l.Close()

	err := l.Log(context.Background(), &Entry{
		Action:     "add_retry_tip",
		Transport:  "mcp",
		Parameters: `{"type":"GTS"}`,
	})
	if err != nil {
		t.Fatalf("logging entry: %v", err)
	}

	var entryID, status string
	err = db.QueryRow(
		"SELECT entry_id, status FROM audit_log WHERE action = ?", "add_retry_tip").
		Scan(&entryID, &status)
	if err != nil {
		t.Fatalf("reading entry back: %v", err)
	}
	if entryID == "" {
		t.Error("entry_id not filled in")
	}
	if status != "success" {
		t.Errorf("status = %q, want success default", status)
	}
}

func TestLogAsyncFlushedOnClose(t *testing.T) {
	l, db := openTestLogger(t)

	for i := 0; i < 5; i++ {
		l.LogAsync(&Entry{Action: "list_suites", Transport: "mcp"})
	}
	if err := l.Close(); err != nil {
		t.Fatalf("closing logger: %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM audit_log WHERE action = ?", "list_suites").Scan(&n); err != nil {
		t.Fatalf("counting entries: %v", err)
	}
	if n != 5 {
		t.Errorf("flushed %d entries, want 5", n)
	}
}

func TestErrorEntryStatus(t *testing.T) {
	l, db := openTestLogger(t)
	defer l.Close()

	err := l.Log(context.Background(), &Entry{Action: "add_retry_tip", Error: "invalid input"})
	if err != nil {
		t.Fatalf("logging entry: %v", err)
	}

	var status string
	if err := db.QueryRow("SELECT status FROM audit_log").Scan(&status); err != nil {
		t.Fatalf("reading status: %v", err)
	}
	if status != "error" {
		t.Errorf("status = %q, want error when error_message set", status)
	}
}

type captureLogger struct {
	entries []*Entry
}

func (c *captureLogger) Log(_ context.Context, e *Entry) error { c.entries = append(c.entries, e); return nil }
func (c *captureLogger) LogAsync(e *Entry)                     { c.entries = append(c.entries, e) }
func (c *captureLogger) Close() error                          { return nil }

func TestMiddlewareCapturesOutcome(t *testing.T) {
	capture := &captureLogger{}

	ok := Middleware(capture, "add_retry_tip")(func(ctx context.Context, request any) (any, error) {
		return map[string]int64{"id": 7}, nil
	})
	ctx := kit.WithTransport(context.Background(), "mcp")
	if _, err := ok(ctx, map[string]string{"type": "GTS"}); err != nil {
		t.Fatalf("endpoint: %v", err)
	}

	failing := Middleware(capture, "add_retry_tip")(func(ctx context.Context, request any) (any, error) {
		return nil, errors.New("invalid input: type is required")
	})
	if _, err := failing(ctx, map[string]string{}); err == nil {
		t.Fatal("expected endpoint error to pass through")
	}

	if len(capture.entries) != 2 {
		t.Fatalf("captured %d entries, want 2", len(capture.entries))
	}
	success, failure := capture.entries[0], capture.entries[1]
	if success.Status != "success" || success.Transport != "mcp" {
		t.Errorf("success entry = %+v", success)
	}
	if success.Result == "" {
		t.Error("success entry missing result")
	}
	if failure.Status != "error" || failure.Error == "" {
		t.Errorf("failure entry = %+v", failure)
	}
	if success.DurationMs < 0 || success.DurationMs > time.Minute.Milliseconds() {
		t.Errorf("implausible duration %dms", success.DurationMs)
	}
}
