// CLAUDE:SUMMARY SQLite store openers — one DB file per catalog (retry, manual, waiver), WAL + FK pragmas, schema apply + seed
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// RetryDB holds the suites and retry_tips tables.
type RetryDB struct {
	*sql.DB
}

// ManualDB holds the sections, test_cards, and card_images tables.
type ManualDB struct {
	*sql.DB
}

// WaiverDB holds the waivers table.
type WaiverDB struct {
	*sql.DB
}

func open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return sqlDB, nil
}

// OpenRetry opens the retry store and seeds the default suites if empty.
func OpenRetry(path string) (*RetryDB, error) {
	sqlDB, err := open(path)
	if err != nil {
		return nil, err
	}
	db := &RetryDB{sqlDB}
	if _, err := db.Exec(retrySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating retry store: %w", err)
	}
	if err := db.seedSuites(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding suites: %w", err)
	}
	return db, nil
}

// OpenManual opens the manual-test store and seeds the default sections if empty.
func OpenManual(path string) (*ManualDB, error) {
	sqlDB, err := open(path)
	if err != nil {
		return nil, err
	}
	db := &ManualDB{sqlDB}
	if _, err := db.Exec(manualSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating manual store: %w", err)
	}
	if err := db.seedSections(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding sections: %w", err)
	}
	return db, nil
}

// OpenWaiver opens the waiver store.
func OpenWaiver(path string) (*WaiverDB, error) {
	sqlDB, err := open(path)
	if err != nil {
		return nil, err
	}
	db := &WaiverDB{sqlDB}
	if _, err := db.Exec(waiverSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating waiver store: %w", err)
	}
	return db, nil
}
