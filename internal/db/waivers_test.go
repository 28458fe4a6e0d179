package db

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestWaiver(t *testing.T) *WaiverDB {
	t.Helper()
	db, err := OpenWaiver(filepath.Join(t.TempDir(), "waiver.db"))
	if err != nil {
		t.Fatalf("opening waiver store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestWaiverLifecycle(t *testing.T) {
	db := openTestWaiver(t)

	id, err := db.AddWaiver(Waiver{
		Suite:    "cts",
		WaiverID: "W-2024-031",
		Module:   "CtsMediaTestCases",
		TestCase: "testTunneledPlayback",
		Note:     "waived on this SoC, vendor bug 1182",
	})
	if err != nil {
		t.Fatalf("adding waiver: %v", err)
	}

	waivers, err := db.ListWaivers("CTS")
	if err != nil {
		t.Fatalf("listing waivers: %v", err)
	}
	if len(waivers) != 1 {
		t.Fatalf("got %d waivers, want 1", len(waivers))
	}
	if waivers[0].Suite != "CTS" {
		t.Errorf("stored suite = %q, want uppercased CTS", waivers[0].Suite)
	}

	err = db.UpdateWaiver(id, Waiver{
		Suite:    "CTS",
		WaiverID: "W-2024-031",
		Module:   "CtsMediaTestCases",
		TestCase: "testTunneledPlayback",
		Note:     "closed by vendor patch, keep for history",
	})
	if err != nil {
		t.Fatalf("updating waiver: %v", err)
	}
	waivers, _ = db.ListWaivers("CTS")
	if waivers[0].Note != "closed by vendor patch, keep for history" {
		t.Errorf("note after update = %q", waivers[0].Note)
	}

	if err := db.DeleteWaiver(id); err != nil {
		t.Fatalf("deleting waiver: %v", err)
	}
	waivers, _ = db.ListWaivers("CTS")
	if len(waivers) != 0 {
		t.Errorf("%d waivers left after delete", len(waivers))
	}
}

func TestWaiversScopedBySuite(t *testing.T) {
	db := openTestWaiver(t)

	for _, suite := range []string{"GTS", "GTS", "CTS"} {
		if _, err := db.AddWaiver(Waiver{Suite: suite, WaiverID: "w", Module: "m", TestCase: "tc"}); err != nil {
			t.Fatalf("adding %s waiver: %v", suite, err)
		}
	}

	gts, err := db.ListWaivers("gts")
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(gts) != 2 {
		t.Errorf("GTS has %d waivers, want 2", len(gts))
	}
}

func TestWaiverValidation(t *testing.T) {
	db := openTestWaiver(t)

	cases := []Waiver{
		{WaiverID: "w", Module: "m", TestCase: "tc"},
		{Suite: "CTS", Module: "m", TestCase: "tc"},
		{Suite: "CTS", WaiverID: "w", TestCase: "tc"},
		{Suite: "CTS", WaiverID: "w", Module: "m"},
	}
	for i, w := range cases {
		if _, err := db.AddWaiver(w); !errors.Is(err, ErrInvalid) {
			t.Errorf("case %d: error = %v, want ErrInvalid", i, err)
		}
	}
}

func TestWaiverNotFound(t *testing.T) {
	db := openTestWaiver(t)

	valid := Waiver{Suite: "CTS", WaiverID: "w", Module: "m", TestCase: "tc"}
	if err := db.UpdateWaiver(7, valid); !errors.Is(err, ErrNotFound) {
		t.Errorf("update error = %v, want ErrNotFound", err)
	}
	if err := db.DeleteWaiver(7); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete error = %v, want ErrNotFound", err)
	}
}
