// CLAUDE:SUMMARY Suite catalog — list/add/cascade-delete/reorder for retry suite blocks, key derivation + gap ordering
package db

import (
	"fmt"
	"strings"
)

// Suite is a named block grouping retry tips, ordered on the retry page.
type Suite struct {
	SuiteKey     string `json:"suite_key"`
	SuiteTitle   string `json:"suite_title"`
	SuiteTag     string `json:"suite_tag"`
	DisplayOrder int    `json:"display_order"`
}

// ListSuites returns all suites in display order.
func (db *RetryDB) ListSuites() ([]Suite, error) {
	rows, err := db.Query(`
		SELECT suite_key, suite_title, COALESCE(suite_tag,''), display_order
		FROM suites ORDER BY display_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suites []Suite
	for rows.Next() {
		var s Suite
		if err := rows.Scan(&s.SuiteKey, &s.SuiteTitle, &s.SuiteTag, &s.DisplayOrder); err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}
	return suites, rows.Err()
}

// AddSuite derives a key from tag (or title), allocates the next display
// order, and inserts. Returns the new row id and the derived key.
func (db *RetryDB) AddSuite(title, tag string) (int64, string, error) {
	title = strings.TrimSpace(title)
	tag = strings.TrimSpace(tag)
	if title == "" {
		return 0, "", fmt.Errorf("%w: suite_title is required", ErrInvalid)
	}

	key := DeriveKey(tag, title)
	if key == "" {
		return 0, "", fmt.Errorf("%w: cannot derive a key from title or tag", ErrInvalid)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRow("SELECT COUNT(*) FROM suites WHERE suite_key = ?", key).Scan(&exists)
	if err != nil {
		return 0, "", err
	}
	if exists > 0 {
		return 0, "", fmt.Errorf("%w: suite key %q", ErrConflict, key)
	}

	var maxOrder int
	if err := tx.QueryRow("SELECT COALESCE(MAX(display_order), 0) FROM suites").Scan(&maxOrder); err != nil {
		return 0, "", err
	}

	res, err := tx.Exec(`
		INSERT INTO suites (suite_key, suite_title, suite_tag, display_order)
		VALUES (?, ?, ?, ?)`,
		key, title, tag, maxOrder+10)
	if err != nil {
		return 0, "", fmt.Errorf("inserting suite: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, "", err
	}

	if err := tx.Commit(); err != nil {
		return 0, "", err
	}
	return id, key, nil
}

// DeleteSuite removes a suite and every retry tip typed under it in one
// transaction. Returns the number of tips removed.
func (db *RetryDB) DeleteSuite(key string) (int64, error) {
	key = strings.ToUpper(strings.TrimSpace(key))

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	// tips reference the suite by plain-text type, not a FK
	res, err := tx.Exec("DELETE FROM retry_tips WHERE type = ?", key)
	if err != nil {
		return 0, fmt.Errorf("deleting suite tips: %w", err)
	}
	tipsRemoved, _ := res.RowsAffected()

	res, err = tx.Exec("DELETE FROM suites WHERE suite_key = ?", key)
	if err != nil {
		return 0, fmt.Errorf("deleting suite: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return 0, fmt.Errorf("%w: suite %q", ErrNotFound, key)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return tipsRemoved, nil
}

// ReorderSuites rewrites display_order to match the supplied key order,
// spacing values by 10. Keys absent from the table are skipped silently.
func (db *RetryDB) ReorderSuites(keys []string) error {
	if len(keys) == 0 {
		return fmt.Errorf("%w: empty reorder list", ErrInvalid)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, key := range keys {
		_, err := tx.Exec(
			"UPDATE suites SET display_order = ? WHERE suite_key = ?",
			(i+1)*10, strings.ToUpper(strings.TrimSpace(key)))
		if err != nil {
			return fmt.Errorf("reordering suite %q: %w", key, err)
		}
	}
	return tx.Commit()
}
