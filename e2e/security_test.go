package e2e

import (
	"net/http"
	"strings"
	"testing"
)

func TestHealth(t *testing.T) {
	h := NewHarness(t)

	var result map[string]string
	resp, err := h.JSON("GET", "/api/health", nil, &result)
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	RequireStatus(t, resp, http.StatusOK)
	if result["status"] != "ok" {
		t.Errorf("status = %q, want ok", result["status"])
	}
}

func TestSecurityHeadersOnEveryResponse(t *testing.T) {
	h := NewHarness(t)

	resp, err := h.Do("GET", "/api/suites", nil)
	if err != nil {
		t.Fatalf("listing suites: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := resp.Header.Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	if got := resp.Header.Get("Referrer-Policy"); got == "" {
		t.Error("Referrer-Policy header missing")
	}
}

func TestMalformedJSONRejected(t *testing.T) {
	h := NewHarness(t)

	req, err := http.NewRequest("POST", h.BaseURL+"/api/retry", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := h.client.Do(req)
	if err != nil {
		t.Fatalf("posting malformed body: %v", err)
	}
	defer resp.Body.Close()
	RequireStatus(t, resp, http.StatusBadRequest)
}

func TestErrorsAreJSON(t *testing.T) {
	h := NewHarness(t)

	var result map[string]string
	resp, err := h.JSON("DELETE", "/api/suites/GHOST", nil, &result)
	if err != nil {
		t.Fatalf("deleting missing suite: %v", err)
	}
	RequireStatus(t, resp, http.StatusNotFound)
	if result["error"] == "" {
		t.Error("error body missing the error field")
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("error Content-Type = %q", ct)
	}
}

func TestMethodRouting(t *testing.T) {
	h := NewHarness(t)

	// Wrong verb on a registered pattern
	resp, err := h.Do("PATCH", "/api/suites", nil)
	if err != nil {
		t.Fatalf("patching suites: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("PATCH /api/suites = %d, want 405", resp.StatusCode)
	}
}
