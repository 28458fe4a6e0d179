// CLAUDE:SUMMARY Manual-test sections — top-level anchors for the card board, same key/order contract as suites
package db

import (
	"fmt"
	"strings"
)

// Section is a top-level anchor on the manual-test board.
type Section struct {
	SectionKey   string `json:"section_key"`
	Title        string `json:"title"`
	Tag          string `json:"tag"`
	DisplayOrder int    `json:"display_order"`
}

// ListSections returns all sections in display order.
func (db *ManualDB) ListSections() ([]Section, error) {
	rows, err := db.Query(`
		SELECT section_key, title, COALESCE(tag,''), display_order
		FROM sections ORDER BY display_order, section_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []Section
	for rows.Next() {
		var s Section
		if err := rows.Scan(&s.SectionKey, &s.Title, &s.Tag, &s.DisplayOrder); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// AddSection derives a section key from tag (or title) and appends it after
// the current last section.
func (db *ManualDB) AddSection(title, tag string) (string, error) {
	title = strings.TrimSpace(title)
	tag = strings.TrimSpace(tag)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalid)
	}

	key := DeriveKey(tag, title)
	if key == "" {
		return "", fmt.Errorf("%w: cannot derive a key from title or tag", ErrInvalid)
	}

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRow("SELECT COUNT(*) FROM sections WHERE section_key = ?", key).Scan(&exists); err != nil {
		return "", err
	}
	if exists > 0 {
		return "", fmt.Errorf("%w: section key %q", ErrConflict, key)
	}

	var maxOrder int
	if err := tx.QueryRow("SELECT COALESCE(MAX(display_order), 0) FROM sections").Scan(&maxOrder); err != nil {
		return "", err
	}

	_, err = tx.Exec(`
		INSERT INTO sections (section_key, title, tag, display_order)
		VALUES (?, ?, ?, ?)`,
		key, title, tag, maxOrder+10)
	if err != nil {
		return "", fmt.Errorf("inserting section: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return key, nil
}

// DeleteSection removes a section, its cards, and their images in one
// transaction. Returns the number of cards removed.
func (db *ManualDB) DeleteSection(key string) (int64, error) {
	key = strings.ToUpper(strings.TrimSpace(key))

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		DELETE FROM card_images
		WHERE card_id IN (SELECT id FROM test_cards WHERE section_key = ?)`, key)
	if err != nil {
		return 0, fmt.Errorf("deleting section images: %w", err)
	}

	res, err := tx.Exec("DELETE FROM test_cards WHERE section_key = ?", key)
	if err != nil {
		return 0, fmt.Errorf("deleting section cards: %w", err)
	}
	cardsRemoved, _ := res.RowsAffected()

	res, err = tx.Exec("DELETE FROM sections WHERE section_key = ?", key)
	if err != nil {
		return 0, fmt.Errorf("deleting section: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return 0, fmt.Errorf("%w: section %q", ErrNotFound, key)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return cardsRemoved, nil
}

// ReorderSections rewrites display_order to the supplied key order, spacing
// by 10. Unknown keys are skipped silently.
func (db *ManualDB) ReorderSections(keys []string) error {
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
			"UPDATE sections SET display_order = ? WHERE section_key = ?",
			(i+1)*10, strings.ToUpper(strings.TrimSpace(key)))
		if err != nil {
			return fmt.Errorf("reordering section %q: %w", key, err)
		}
	}
	return tx.Commit()
}
