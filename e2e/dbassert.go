// CLAUDE:SUMMARY Direct SQLite assertion helpers for E2E tests — persistent connections to retry, manual, and waiver DBs
package e2e

import (
	"database/sql"
	"sync"
	"testing"

	_ "modernc.org/sqlite"
)

// DBAssert provides direct SQLite assertions on the store files.
// It keeps persistent connections to avoid file descriptor exhaustion.
type DBAssert struct {
	retryPath  string
	manualPath string
	waiverPath string

	mu         sync.Mutex
	retryConn  *sql.DB
	manualConn *sql.DB
	waiverConn *sql.DB
}

// NewDBAssert creates assertion helpers for direct database verification.
func NewDBAssert(h *TestHarness) *DBAssert {
	return &DBAssert{
		retryPath:  h.RetryDB,
		manualPath: h.ManualDB,
		waiverPath: h.WaiverDB,
	}
}

// Close releases persistent connections.
func (d *DBAssert) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, conn := range []*sql.DB{d.retryConn, d.manualConn, d.waiverConn} {
		if conn != nil {
			conn.Close()
		}
	}
	d.retryConn, d.manualConn, d.waiverConn = nil, nil, nil
}

func (d *DBAssert) open(conn **sql.DB, path string) (*sql.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if *conn != nil {
		return *conn, nil
	}
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	*conn = db
	return db, nil
}

func (d *DBAssert) retry(t *testing.T) *sql.DB {
	t.Helper()
	db, err := d.open(&d.retryConn, d.retryPath)
	if err != nil {
		t.Fatalf("opening retry.db: %v", err)
	}
	return db
}

func (d *DBAssert) manual(t *testing.T) *sql.DB {
	t.Helper()
	db, err := d.open(&d.manualConn, d.manualPath)
	if err != nil {
		t.Fatalf("opening manual.db: %v", err)
	}
	return db
}

func (d *DBAssert) waiver(t *testing.T) *sql.DB {
	t.Helper()
	db, err := d.open(&d.waiverConn, d.waiverPath)
	if err != nil {
		t.Fatalf("opening waiver.db: %v", err)
	}
	return db
}

// CountRetry returns the row count for a retry.db table with an optional WHERE.
func (d *DBAssert) CountRetry(t *testing.T, table, where string, args ...interface{}) int {
	t.Helper()
	return count(t, d.retry(t), table, where, args)
}

// CountManual returns the row count for a manual.db table with an optional WHERE.
func (d *DBAssert) CountManual(t *testing.T, table, where string, args ...interface{}) int {
	t.Helper()
	return count(t, d.manual(t), table, where, args)
}

// CountWaiver returns the row count for a waiver.db table with an optional WHERE.
func (d *DBAssert) CountWaiver(t *testing.T, table, where string, args ...interface{}) int {
	t.Helper()
	return count(t, d.waiver(t), table, where, args)
}

func count(t *testing.T, db *sql.DB, table, where string, args []interface{}) int {
	t.Helper()
	q := "SELECT COUNT(*) FROM " + table
	if where != "" {
		q += " WHERE " + where
	}
	var n int
	if err := db.QueryRow(q, args...).Scan(&n); err != nil {
		t.Fatalf("counting %s rows: %v", table, err)
	}
	return n
}

// AssertSuiteOrder verifies the display_order stored for one suite key.
func (d *DBAssert) AssertSuiteOrder(t *testing.T, key string, expected int) {
	t.Helper()
	var order int
	err := d.retry(t).QueryRow(
		"SELECT display_order FROM suites WHERE suite_key = ?", key).Scan(&order)
	if err != nil {
		t.Fatalf("querying suite %s: %v", key, err)
	}
	if order != expected {
		t.Errorf("suite %s display_order = %d, want %d", key, order, expected)
	}
}

// AssertCardOrder verifies the display_order stored for one card.
func (d *DBAssert) AssertCardOrder(t *testing.T, id int64, expected int) {
	t.Helper()
	var order int
	err := d.manual(t).QueryRow(
		"SELECT display_order FROM test_cards WHERE id = ?", id).Scan(&order)
	if err != nil {
		t.Fatalf("querying card %d: %v", id, err)
	}
	if order != expected {
		t.Errorf("card %d display_order = %d, want %d", id, order, expected)
	}
}

// QueryCardImages returns a card's stored image paths in display order.
func (d *DBAssert) QueryCardImages(t *testing.T, cardID int64) []string {
	t.Helper()
	rows, err := d.manual(t).Query(
		"SELECT filename FROM card_images WHERE card_id = ? ORDER BY display_order, id", cardID)
	if err != nil {
		t.Fatalf("querying images for card %d: %v", cardID, err)
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			t.Fatalf("scanning image row: %v", err)
		}
		files = append(files, f)
	}
	return files
}
