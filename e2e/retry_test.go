package e2e

import (
	"net/http"
	"testing"
)

func TestRetryTipCRUD(t *testing.T) {
	h := NewHarness(t)

	var created map[string]interface{}
	resp, err := h.JSON("POST", "/api/retry", map[string]string{
		"type":        "cts",
		"module_case": "CtsCameraTestCases#testBurst",
		"condition":   "fails under low light rig",
		"trick":       "re-aim the light box, retry once",
	}, &created)
	if err != nil {
		t.Fatalf("adding tip: %v", err)
	}
	RequireStatus(t, resp, http.StatusOK)
	id := int64(created["id"].(float64))

	var tips []map[string]interface{}
	resp, err = h.JSON("GET", "/api/retry?suite=CTS", nil, &tips)
	if err != nil {
		t.Fatalf("listing tips: %v", err)
	}
	RequireStatus(t, resp, http.StatusOK)
	if len(tips) != 1 {
		t.Fatalf("got %d tips, want 1", len(tips))
	}
	if tips[0]["type"] != "CTS" {
		t.Errorf("tip type = %v, want uppercased CTS", tips[0]["type"])
	}

	resp, err = h.Do("PUT", "/api/retry/"+itoa(id), map[string]string{
		"type":        "CTS",
		"module_case": "CtsCameraTestCases#testBurst",
		"condition":   "fails under low light rig",
		"trick":       "swap to backup light box",
	})
	if err != nil {
		t.Fatalf("updating tip: %v", err)
	}
	RequireStatus(t, resp, http.StatusOK)

	h.JSON("GET", "/api/retry?suite=CTS", nil, &tips)
	if tips[0]["trick"] != "swap to backup light box" {
		t.Errorf("trick after update = %v", tips[0]["trick"])
	}

	resp, err = h.Do("DELETE", "/api/retry/"+itoa(id), nil)
	if err != nil {
		t.Fatalf("deleting tip: %v", err)
	}
	RequireStatus(t, resp, http.StatusOK)

	h.JSON("GET", "/api/retry?suite=CTS", nil, &tips)
	if len(tips) != 0 {
		t.Errorf("%d tips left after delete", len(tips))
	}
}

func TestRetryTipValidation(t *testing.T) {
	h := NewHarness(t)

	resp, err := h.Do("POST", "/api/retry", map[string]string{
		"type": "GTS", "condition": "missing module",
	})
	if err != nil {
		t.Fatalf("posting invalid tip: %v", err)
	}
	RequireStatus(t, resp, http.StatusBadRequest)
}

func TestRetryTipMissingID(t *testing.T) {
	h := NewHarness(t)

	resp, err := h.Do("PUT", "/api/retry/99999", map[string]string{
		"type": "GTS", "module_case": "m", "condition": "c",
	})
	if err != nil {
		t.Fatalf("updating missing tip: %v", err)
	}
	RequireStatus(t, resp, http.StatusNotFound)

	resp, err = h.Do("DELETE", "/api/retry/99999", nil)
	if err != nil {
		t.Fatalf("deleting missing tip: %v", err)
	}
	RequireStatus(t, resp, http.StatusNotFound)

	resp, err = h.Do("DELETE", "/api/retry/not-a-number", nil)
	if err != nil {
		t.Fatalf("deleting garbage id: %v", err)
	}
	RequireStatus(t, resp, http.StatusBadRequest)
}

func TestRetryTipListEmptySuite(t *testing.T) {
	h := NewHarness(t)

	var tips []map[string]interface{}
	resp, err := h.JSON("GET", "/api/retry?suite=SPECIAL", nil, &tips)
	if err != nil {
		t.Fatalf("listing empty suite: %v", err)
	}
	RequireStatus(t, resp, http.StatusOK)
	if tips == nil {
		t.Error("empty suite should serialize as [], not null")
	}
}
