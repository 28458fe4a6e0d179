// CLAUDE:SUMMARY Waiver catalog — flat per-suite waiver records, full-replace updates
package db

import (
	"fmt"
	"strings"
)

// Waiver records one waived test case for a suite.
type Waiver struct {
	ID       int64  `json:"id"`
	Suite    string `json:"suite"`
	WaiverID string `json:"waiver_id"`
	Module   string `json:"module"`
	TestCase string `json:"test_case"`
	Note     string `json:"note"`
}

// ListWaivers returns the waivers for one suite in insertion order.
func (db *WaiverDB) ListWaivers(suite string) ([]Waiver, error) {
	rows, err := db.Query(`
		SELECT id, suite, waiver_id, module, test_case, COALESCE(note,'')
		FROM waivers WHERE suite = ? ORDER BY id`,
		strings.ToUpper(strings.TrimSpace(suite)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var waivers []Waiver
	for rows.Next() {
		var w Waiver
		if err := rows.Scan(&w.ID, &w.Suite, &w.WaiverID, &w.Module, &w.TestCase, &w.Note); err != nil {
			return nil, err
		}
		waivers = append(waivers, w)
	}
	return waivers, rows.Err()
}

// AddWaiver inserts a waiver and returns its id.
func (db *WaiverDB) AddWaiver(w Waiver) (int64, error) {
	if err := w.validate(); err != nil {
		return 0, err
	}

	res, err := db.Exec(`
		INSERT INTO waivers (suite, waiver_id, module, test_case, note)
		VALUES (?, ?, ?, ?, ?)`,
		strings.ToUpper(strings.TrimSpace(w.Suite)), w.WaiverID, w.Module, w.TestCase, w.Note)
	if err != nil {
		return 0, fmt.Errorf("inserting waiver: %w", err)
	}
	return res.LastInsertId()
}

// UpdateWaiver replaces every mutable field of the waiver.
func (db *WaiverDB) UpdateWaiver(id int64, w Waiver) error {
	if err := w.validate(); err != nil {
		return err
	}

	res, err := db.Exec(`
		UPDATE waivers SET suite = ?, waiver_id = ?, module = ?, test_case = ?, note = ?
		WHERE id = ?`,
		strings.ToUpper(strings.TrimSpace(w.Suite)), w.WaiverID, w.Module, w.TestCase, w.Note, id)
	if err != nil {
		return fmt.Errorf("updating waiver: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("%w: waiver %d", ErrNotFound, id)
	}
	return nil
}

// DeleteWaiver removes a waiver.
func (db *WaiverDB) DeleteWaiver(id int64) error {
	res, err := db.Exec("DELETE FROM waivers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting waiver: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("%w: waiver %d", ErrNotFound, id)
	}
	return nil
}

func (w Waiver) validate() error {
	switch {
	case strings.TrimSpace(w.Suite) == "":
		return fmt.Errorf("%w: suite is required", ErrInvalid)
	case strings.TrimSpace(w.WaiverID) == "":
		return fmt.Errorf("%w: waiver_id is required", ErrInvalid)
	case strings.TrimSpace(w.Module) == "":
		return fmt.Errorf("%w: module is required", ErrInvalid)
	case strings.TrimSpace(w.TestCase) == "":
		return fmt.Errorf("%w: test_case is required", ErrInvalid)
	}
	return nil
}
