package db

import "log/slog"

const retrySchema = `
CREATE TABLE IF NOT EXISTS suites (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    suite_key     TEXT UNIQUE NOT NULL,
    suite_title   TEXT NOT NULL,
    suite_tag     TEXT,
    display_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS retry_tips (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    type        TEXT NOT NULL,
    module_case TEXT NOT NULL,
    condition   TEXT NOT NULL,
    trick       TEXT
);

CREATE INDEX IF NOT EXISTS idx_retry_tips_type ON retry_tips(type);
`

const manualSchema = `
CREATE TABLE IF NOT EXISTS sections (
    section_key   TEXT PRIMARY KEY,
    title         TEXT NOT NULL,
    tag           TEXT,
    display_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS test_cards (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    section_key   TEXT NOT NULL,
    card_title    TEXT NOT NULL,
    card_subtitle TEXT,
    content       TEXT,
    note          TEXT,
    display_order INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY(section_key) REFERENCES sections(section_key)
);

CREATE TABLE IF NOT EXISTS card_images (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    card_id       INTEGER NOT NULL,
    filename      TEXT NOT NULL,
    display_order INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY(card_id) REFERENCES test_cards(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_test_cards_section ON test_cards(section_key);
CREATE INDEX IF NOT EXISTS idx_card_images_card ON card_images(card_id);
`

const waiverSchema = `
CREATE TABLE IF NOT EXISTS waivers (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    suite     TEXT NOT NULL,
    waiver_id TEXT NOT NULL,
    module    TEXT NOT NULL,
    test_case TEXT NOT NULL,
    note      TEXT
);

CREATE INDEX IF NOT EXISTS idx_waivers_suite ON waivers(suite);
`

// seedSuites inserts the default retry suite blocks on first run.
func (db *RetryDB) seedSuites() error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM suites").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		key, title, tag string
		order           int
	}{
		{"BASIC", "Basic 測項", "SIM / Host / Permission 類", 10},
		{"GTS", "GTS 測項", "GTS", 20},
		{"CTS", "CTS 測項", "CTS", 30},
		{"SECURITYTOT", "Security / TOT 測項", "Security / TOT", 40},
		{"SPECIAL", "特殊情況", "Special Cases / General", 50},
	}
	for _, s := range defaults {
		if _, err := db.Exec(
			"INSERT INTO suites (suite_key, suite_title, suite_tag, display_order) VALUES (?, ?, ?, ?)",
			s.key, s.title, s.tag, s.order); err != nil {
			return err
		}
	}
	slog.Info("seeded default suites", "count", len(defaults))
	return nil
}

// seedSections inserts the default top-level manual-test sections on first run.
func (db *ManualDB) seedSections() error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sections").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		key, title, tag string
		order           int
	}{
		{"GTSI", "GTS Interactive 區塊", "Android 13+ / MADA", 10},
		{"CTSV", "CTS Verifier 區塊", "CameraITS / Audio / Sensor", 20},
		{"MADA", "MADA Check List 區塊", "Auto discoverability / Doc", 30},
	}
	for _, s := range defaults {
		if _, err := db.Exec(
			"INSERT INTO sections (section_key, title, tag, display_order) VALUES (?, ?, ?, ?)",
			s.key, s.title, s.tag, s.order); err != nil {
			return err
		}
	}
	slog.Info("seeded default sections", "count", len(defaults))
	return nil
}
