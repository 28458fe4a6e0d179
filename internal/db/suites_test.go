package db

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestRetry(t *testing.T) *RetryDB {
	t.Helper()
	db, err := OpenRetry(filepath.Join(t.TempDir(), "retry.db"))
	if err != nil {
		t.Fatalf("opening retry store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSeedSuites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retry.db")
	db, err := OpenRetry(path)
	if err != nil {
		t.Fatalf("opening retry store: %v", err)
	}

	suites, err := db.ListSuites()
	if err != nil {
		t.Fatalf("listing suites: %v", err)
	}
	if len(suites) != 5 {
		t.Fatalf("seeded %d suites, want 5", len(suites))
	}
	if suites[0].SuiteKey != "BASIC" || suites[4].SuiteKey != "SPECIAL" {
		t.Errorf("unexpected seed order: first %q last %q", suites[0].SuiteKey, suites[4].SuiteKey)
	}
	db.Close()

	// Reopening must not double-seed
	db2, err := OpenRetry(path)
	if err != nil {
		t.Fatalf("reopening retry store: %v", err)
	}
	defer db2.Close()
	suites, err = db2.ListSuites()
	if err != nil {
		t.Fatalf("listing after reopen: %v", err)
	}
	if len(suites) != 5 {
		t.Errorf("after reopen got %d suites, want 5", len(suites))
	}
}

func TestAddSuiteDerivesKeyAndOrder(t *testing.T) {
	db := openTestRetry(t)

	id, key, err := db.AddSuite("SIM / Host tests", "")
	if err != nil {
		t.Fatalf("adding suite: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero suite id")
	}
	if key != "SIM_HOST_TESTS" {
		t.Errorf("derived key = %q, want SIM_HOST_TESTS", key)
	}

	suites, err := db.ListSuites()
	if err != nil {
		t.Fatalf("listing suites: %v", err)
	}
	// seeds end at 50, appended suite lands at 60
	last := suites[len(suites)-1]
	if last.SuiteKey != key {
		t.Fatalf("appended suite is %q, want %q last", last.SuiteKey, key)
	}
	if last.DisplayOrder != 60 {
		t.Errorf("display_order = %d, want 60", last.DisplayOrder)
	}
}

func TestAddSuiteAppendStrictlyIncreasing(t *testing.T) {
	db := openTestRetry(t)

	prev := 50 // max of the seed rows
	for _, title := range []string{"Alpha", "Beta", "Gamma"} {
		if _, _, err := db.AddSuite(title, ""); err != nil {
			t.Fatalf("adding suite %q: %v", title, err)
		}
		suites, err := db.ListSuites()
		if err != nil {
			t.Fatalf("listing suites: %v", err)
		}
		got := suites[len(suites)-1].DisplayOrder
		if got != prev+10 {
			t.Errorf("after adding %q display_order = %d, want %d", title, got, prev+10)
		}
		prev = got
	}
}

func TestAddSuiteConflictLeavesStoreUnchanged(t *testing.T) {
	db := openTestRetry(t)

	before, _ := db.ListSuites()
	_, _, err := db.AddSuite("Anything", "GTS") // tag derives to seeded GTS
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate key error = %v, want ErrConflict", err)
	}
	after, _ := db.ListSuites()
	if len(after) != len(before) {
		t.Errorf("suite count changed on conflict: %d -> %d", len(before), len(after))
	}
}

func TestAddSuiteBlankKeyRejected(t *testing.T) {
	db := openTestRetry(t)

	if _, _, err := db.AddSuite("", ""); !errors.Is(err, ErrInvalid) {
		t.Errorf("blank title error = %v, want ErrInvalid", err)
	}
	if _, _, err := db.AddSuite("!!!", "???"); !errors.Is(err, ErrInvalid) {
		t.Errorf("symbol-only inputs error = %v, want ErrInvalid", err)
	}
}

func TestDeleteSuiteCascadesTips(t *testing.T) {
	db := openTestRetry(t)

	for i := 0; i < 3; i++ {
		if _, err := db.AddTip(RetryTip{Type: "gts", ModuleCase: "CtsCameraTestCases", Condition: "retry x3"}); err != nil {
			t.Fatalf("adding tip: %v", err)
		}
	}
	// tip under a different suite must survive
	if _, err := db.AddTip(RetryTip{Type: "BASIC", ModuleCase: "SIM lock", Condition: "host reboot"}); err != nil {
		t.Fatalf("adding basic tip: %v", err)
	}

	removed, err := db.DeleteSuite("gts")
	if err != nil {
		t.Fatalf("deleting suite: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed %d tips, want 3", removed)
	}

	tips, err := db.ListTips("GTS")
	if err != nil {
		t.Fatalf("listing tips: %v", err)
	}
	if len(tips) != 0 {
		t.Errorf("GTS still has %d tips after cascade", len(tips))
	}
	tips, _ = db.ListTips("BASIC")
	if len(tips) != 1 {
		t.Errorf("BASIC has %d tips, want 1 untouched", len(tips))
	}
}

func TestDeleteSuiteNotFound(t *testing.T) {
	db := openTestRetry(t)
	if _, err := db.DeleteSuite("NOPE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestReorderSuites(t *testing.T) {
	db := openTestRetry(t)

	if err := db.ReorderSuites([]string{"SPECIAL", "CTS", "GTS", "BASIC", "SECURITYTOT"}); err != nil {
		t.Fatalf("reordering: %v", err)
	}

	suites, err := db.ListSuites()
	if err != nil {
		t.Fatalf("listing suites: %v", err)
	}
	wantKeys := []string{"SPECIAL", "CTS", "GTS", "BASIC", "SECURITYTOT"}
	for i, want := range wantKeys {
		if suites[i].SuiteKey != want {
			t.Errorf("position %d = %q, want %q", i, suites[i].SuiteKey, want)
		}
		if suites[i].DisplayOrder != (i+1)*10 {
			t.Errorf("%s display_order = %d, want %d", want, suites[i].DisplayOrder, (i+1)*10)
		}
	}
}

func TestReorderSuitesEmptyRejected(t *testing.T) {
	db := openTestRetry(t)
	if err := db.ReorderSuites(nil); !errors.Is(err, ErrInvalid) {
		t.Errorf("error = %v, want ErrInvalid", err)
	}
}

func TestReorderSuitesUnknownKeysSkipped(t *testing.T) {
	db := openTestRetry(t)

	if err := db.ReorderSuites([]string{"GTS", "GHOST", "BASIC"}); err != nil {
		t.Fatalf("reordering with unknown key: %v", err)
	}
	suites, _ := db.ListSuites()
	if suites[0].SuiteKey != "GTS" {
		t.Errorf("first suite = %q, want GTS", suites[0].SuiteKey)
	}
}
