// CLAUDE:SUMMARY Retry tips — CRUD for per-suite retry heuristics, suite reference kept as plain text
package db

import (
	"fmt"
	"strings"
)

// RetryTip is a single retry heuristic. Type names the owning suite's key but
// is deliberately not a foreign key; suite deletion cascades explicitly.
type RetryTip struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	ModuleCase string `json:"module_case"`
	Condition  string `json:"condition"`
	Trick      string `json:"trick"`
}

// ListTips returns tips, optionally filtered to one suite key, in insertion order.
func (db *RetryDB) ListTips(suite string) ([]RetryTip, error) {
	query := "SELECT id, type, module_case, condition, COALESCE(trick,'') FROM retry_tips"
	var args []any
	if suite != "" {
		query += " WHERE type = ?"
		args = append(args, strings.ToUpper(strings.TrimSpace(suite)))
	}
	query += " ORDER BY id"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tips []RetryTip
	for rows.Next() {
		var t RetryTip
		if err := rows.Scan(&t.ID, &t.Type, &t.ModuleCase, &t.Condition, &t.Trick); err != nil {
			return nil, err
		}
		tips = append(tips, t)
	}
	return tips, rows.Err()
}

// AddTip inserts a tip and returns its id. The suite reference is uppercased
// so it matches derived suite keys.
func (db *RetryDB) AddTip(t RetryTip) (int64, error) {
	if err := t.validate(); err != nil {
		return 0, err
	}

	res, err := db.Exec(`
		INSERT INTO retry_tips (type, module_case, condition, trick)
		VALUES (?, ?, ?, ?)`,
		strings.ToUpper(strings.TrimSpace(t.Type)), t.ModuleCase, t.Condition, t.Trick)
	if err != nil {
		return 0, fmt.Errorf("inserting tip: %w", err)
	}
	return res.LastInsertId()
}

// UpdateTip replaces every mutable field of the tip. There is no partial
// patch; callers resupply the full record.
func (db *RetryDB) UpdateTip(id int64, t RetryTip) error {
	if err := t.validate(); err != nil {
		return err
	}

	res, err := db.Exec(`
		UPDATE retry_tips SET type = ?, module_case = ?, condition = ?, trick = ?
		WHERE id = ?`,
		strings.ToUpper(strings.TrimSpace(t.Type)), t.ModuleCase, t.Condition, t.Trick, id)
	if err != nil {
		return fmt.Errorf("updating tip: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("%w: tip %d", ErrNotFound, id)
	}
	return nil
}

// DeleteTip removes a single tip; the owning suite is untouched.
func (db *RetryDB) DeleteTip(id int64) error {
	res, err := db.Exec("DELETE FROM retry_tips WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting tip: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("%w: tip %d", ErrNotFound, id)
	}
	return nil
}

func (t RetryTip) validate() error {
	switch {
	case strings.TrimSpace(t.Type) == "":
		return fmt.Errorf("%w: type is required", ErrInvalid)
	case strings.TrimSpace(t.ModuleCase) == "":
		return fmt.Errorf("%w: module_case is required", ErrInvalid)
	case strings.TrimSpace(t.Condition) == "":
		return fmt.Errorf("%w: condition is required", ErrInvalid)
	}
	return nil
}
