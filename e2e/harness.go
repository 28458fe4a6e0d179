// CLAUDE:SUMMARY E2E test harness — in-process certtrack server over temp stores with HTTP helpers
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/example/certtrack/internal/api"
	"github.com/example/certtrack/internal/config"
	"github.com/example/certtrack/internal/db"
)

// TestHarness runs the full HTTP surface in-process against temp store files.
type TestHarness struct {
	BaseURL    string
	DataDir    string
	RetryDB    string
	ManualDB   string
	WaiverDB   string
	UploadsDir string

	srv    *httptest.Server
	client *http.Client
}

// NewHarness opens the three stores in a temp dir and starts an httptest
// server with the same mux wiring as `certtrack serve`.
func NewHarness(t *testing.T) *TestHarness {
	t.Helper()

	dataDir := t.TempDir()
	retryPath := filepath.Join(dataDir, "retry.db")
	manualPath := filepath.Join(dataDir, "manual.db")
	waiverPath := filepath.Join(dataDir, "waiver.db")
	uploadsDir := filepath.Join(dataDir, "uploads")

	retryDB, err := db.OpenRetry(retryPath)
	if err != nil {
		t.Fatalf("opening retry store: %v", err)
	}
	manualDB, err := db.OpenManual(manualPath)
	if err != nil {
		t.Fatalf("opening manual store: %v", err)
	}
	waiverDB, err := db.OpenWaiver(waiverPath)
	if err != nil {
		t.Fatalf("opening waiver store: %v", err)
	}
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		t.Fatalf("creating uploads dir: %v", err)
	}

	uploads := config.UploadsConfig{Dir: uploadsDir, MaxUploadMB: 8}
	apiHandler := api.New(retryDB, manualDB, waiverDB, uploads)

	mux := http.NewServeMux()
	apiHandler.RegisterRoutes(mux)
	uploadsFS := http.FileServer(http.Dir(uploadsDir))
	mux.Handle("GET /static/uploads/", api.NoCacheStatic(http.StripPrefix("/static/uploads/", uploadsFS)))

	srv := httptest.NewServer(api.SecurityHeaders(mux))
	t.Cleanup(func() {
		srv.Close()
		retryDB.Close()
		manualDB.Close()
		waiverDB.Close()
	})

	return &TestHarness{
		BaseURL:    srv.URL,
		DataDir:    dataDir,
		RetryDB:    retryPath,
		ManualDB:   manualPath,
		WaiverDB:   waiverPath,
		UploadsDir: uploadsDir,
		srv:        srv,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Do executes an HTTP request with an optional JSON body.
func (h *TestHarness) Do(method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, h.BaseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return h.client.Do(req)
}

// JSON executes a request and decodes the JSON response into dst.
func (h *TestHarness) JSON(method, path string, body, dst interface{}) (*http.Response, error) {
	resp, err := h.Do(method, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, fmt.Errorf("reading body: %w", err)
	}

	// Reset body so caller can inspect status
	resp.Body = io.NopCloser(bytes.NewReader(data))

	if dst != nil && len(data) > 0 {
		if err := json.Unmarshal(data, dst); err != nil {
			return resp, fmt.Errorf("decoding JSON (status %d, body: %s): %w", resp.StatusCode, truncate(string(data), 500), err)
		}
	}
	return resp, nil
}

// Upload posts one multipart file to /api/upload and returns the response.
func (h *TestHarness) Upload(t *testing.T, filename string, content []byte) (*http.Response, map[string]string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	mw.Close()

	req, err := http.NewRequest("POST", h.BaseURL+"/api/upload", &buf)
	if err != nil {
		t.Fatalf("building upload request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := h.client.Do(req)
	if err != nil {
		t.Fatalf("uploading %s: %v", filename, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	resp.Body = io.NopCloser(bytes.NewReader(data))

	var result map[string]string
	if len(data) > 0 {
		_ = json.Unmarshal(data, &result)
	}
	return resp, result
}

// AddSuite creates a suite and returns its derived key.
func (h *TestHarness) AddSuite(t *testing.T, title, tag string) string {
	t.Helper()
	var result map[string]interface{}
	resp, err := h.JSON("POST", "/api/suites", map[string]string{
		"suite_title": title,
		"suite_tag":   tag,
	}, &result)
	if err != nil {
		t.Fatalf("adding suite %q: %v", title, err)
	}
	RequireStatus(t, resp, http.StatusOK)
	return result["suite_key"].(string)
}

// AddSection creates a section and returns its derived key.
func (h *TestHarness) AddSection(t *testing.T, title, tag string) string {
	t.Helper()
	var result map[string]interface{}
	resp, err := h.JSON("POST", "/api/sections", map[string]string{
		"title": title,
		"tag":   tag,
	}, &result)
	if err != nil {
		t.Fatalf("adding section %q: %v", title, err)
	}
	RequireStatus(t, resp, http.StatusOK)
	return result["section_key"].(string)
}

// AddCard creates a card and returns its id.
func (h *TestHarness) AddCard(t *testing.T, card map[string]interface{}) int64 {
	t.Helper()
	var result map[string]interface{}
	resp, err := h.JSON("POST", "/api/cards", card, &result)
	if err != nil {
		t.Fatalf("adding card: %v", err)
	}
	RequireStatus(t, resp, http.StatusOK)
	return int64(result["id"].(float64))
}

// RequireStatus asserts the HTTP status code matches expected.
func RequireStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, resp.StatusCode, truncate(string(body), 500))
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// StringSlice converts an interface{} slice to a string slice.
func StringSlice(v interface{}) []string {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, len(arr))
	for i, val := range arr {
		result[i] = fmt.Sprintf("%v", val)
	}
	return result
}
