// CLAUDE:SUMMARY Test cards — per-section reference cards with wholesale-replaced ordered image lists
package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Card is one manual-test reference card. ImageURLs is the full ordered image
// set; updates always replace it wholesale.
type Card struct {
	ID           int64    `json:"id"`
	SectionKey   string   `json:"section_key"`
	CardTitle    string   `json:"card_title"`
	CardSubtitle string   `json:"card_subtitle"`
	Content      string   `json:"content"`
	Note         string   `json:"note"`
	DisplayOrder int      `json:"display_order"`
	ImageURLs    []string `json:"image_urls"`
}

// ListCards returns cards with their ordered images, optionally filtered to
// one section.
func (db *ManualDB) ListCards(section string) ([]Card, error) {
	query := `
		SELECT id, section_key, card_title, COALESCE(card_subtitle,''),
		       COALESCE(content,''), COALESCE(note,''), display_order
		FROM test_cards`
	var args []any
	if section != "" {
		query += " WHERE section_key = ?"
		args = append(args, strings.ToUpper(strings.TrimSpace(section)))
	}
	query += " ORDER BY section_key, display_order, id"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []Card
	index := make(map[int64]int)
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.SectionKey, &c.CardTitle, &c.CardSubtitle,
			&c.Content, &c.Note, &c.DisplayOrder); err != nil {
			return nil, err
		}
		c.ImageURLs = []string{}
		index[c.ID] = len(cards)
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return cards, nil
	}

	imgRows, err := db.Query(`
		SELECT card_id, filename FROM card_images
		ORDER BY card_id, display_order, id`)
	if err != nil {
		return nil, err
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var cardID int64
		var filename string
		if err := imgRows.Scan(&cardID, &filename); err != nil {
			return nil, err
		}
		if i, ok := index[cardID]; ok {
			cards[i].ImageURLs = append(cards[i].ImageURLs, filename)
		}
	}
	return cards, imgRows.Err()
}

// AddCard appends a card to its section and inserts its images in the same
// transaction. Returns the new card id.
func (db *ManualDB) AddCard(c Card) (int64, error) {
	if err := c.validate(); err != nil {
		return 0, err
	}
	section := strings.ToUpper(strings.TrimSpace(c.SectionKey))

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var maxOrder int
	err = tx.QueryRow(
		"SELECT COALESCE(MAX(display_order), 0) FROM test_cards WHERE section_key = ?",
		section).Scan(&maxOrder)
	if err != nil {
		return 0, err
	}

	res, err := tx.Exec(`
		INSERT INTO test_cards (section_key, card_title, card_subtitle, content, note, display_order)
		VALUES (?, ?, ?, ?, ?, ?)`,
		section, c.CardTitle, c.CardSubtitle, c.Content, c.Note, maxOrder+10)
	if err != nil {
		return 0, fmt.Errorf("inserting card: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := insertImages(tx, id, c.ImageURLs); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateCard replaces every mutable field of the card and its entire image
// set in one transaction. A card may move between sections here.
func (db *ManualDB) UpdateCard(id int64, c Card) error {
	if err := c.validate(); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		UPDATE test_cards
		SET section_key = ?, card_title = ?, card_subtitle = ?, content = ?, note = ?
		WHERE id = ?`,
		strings.ToUpper(strings.TrimSpace(c.SectionKey)), c.CardTitle, c.CardSubtitle,
		c.Content, c.Note, id)
	if err != nil {
		return fmt.Errorf("updating card: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("%w: card %d", ErrNotFound, id)
	}

	if _, err := tx.Exec("DELETE FROM card_images WHERE card_id = ?", id); err != nil {
		return fmt.Errorf("clearing card images: %w", err)
	}
	if err := insertImages(tx, id, c.ImageURLs); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteCard removes a card; its images go with it via the FK cascade.
func (db *ManualDB) DeleteCard(id int64) error {
	res, err := db.Exec("DELETE FROM test_cards WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("%w: card %d", ErrNotFound, id)
	}
	return nil
}

// ReorderCards rewrites display_order for the given card ids within one
// section, spacing by 10. Ids outside the section are skipped silently.
func (db *ManualDB) ReorderCards(section string, ids []int64) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: empty reorder list", ErrInvalid)
	}
	section = strings.ToUpper(strings.TrimSpace(section))

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, id := range ids {
		_, err := tx.Exec(
			"UPDATE test_cards SET display_order = ? WHERE id = ? AND section_key = ?",
			(i+1)*10, id, section)
		if err != nil {
			return fmt.Errorf("reordering card %d: %w", id, err)
		}
	}
	return tx.Commit()
}

func insertImages(tx *sql.Tx, cardID int64, urls []string) error {
	for i, url := range urls {
		_, err := tx.Exec(
			"INSERT INTO card_images (card_id, filename, display_order) VALUES (?, ?, ?)",
			cardID, url, (i+1)*10)
		if err != nil {
			return fmt.Errorf("inserting card image: %w", err)
		}
	}
	return nil
}

func (c Card) validate() error {
	switch {
	case strings.TrimSpace(c.SectionKey) == "":
		return fmt.Errorf("%w: section_key is required", ErrInvalid)
	case strings.TrimSpace(c.CardTitle) == "":
		return fmt.Errorf("%w: card_title is required", ErrInvalid)
	case strings.TrimSpace(c.Content) == "":
		return fmt.Errorf("%w: content is required", ErrInvalid)
	}
	return nil
}
