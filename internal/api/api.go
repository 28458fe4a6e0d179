// CLAUDE:SUMMARY Core API struct and shared HTTP plumbing — route registration, JSON helpers, store-error mapping
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/example/certtrack/internal/config"
	"github.com/example/certtrack/internal/db"
)

// maxBodySize caps JSON request bodies; card content is text, not blobs.
const maxBodySize = 512 * 1024

type API struct {
	retry   *db.RetryDB
	manual  *db.ManualDB
	waivers *db.WaiverDB
	uploads config.UploadsConfig
}

func New(retry *db.RetryDB, manual *db.ManualDB, waivers *db.WaiverDB, uploads config.UploadsConfig) *API {
	return &API{retry: retry, manual: manual, waivers: waivers, uploads: uploads}
}

func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", a.handleHealth)

	// Suites (retry page blocks)
	mux.HandleFunc("GET /api/suites", a.handleListSuites)
	mux.HandleFunc("POST /api/suites", a.handleAddSuite)
	mux.HandleFunc("DELETE /api/suites/{key}", a.handleDeleteSuite)
	mux.HandleFunc("PUT /api/suites/reorder", a.handleReorderSuites)

	// Retry tips
	mux.HandleFunc("GET /api/retry", a.handleListTips)
	mux.HandleFunc("POST /api/retry", a.handleAddTip)
	mux.HandleFunc("PUT /api/retry/{id}", a.handleUpdateTip)
	mux.HandleFunc("DELETE /api/retry/{id}", a.handleDeleteTip)

	// Manual-test sections
	mux.HandleFunc("GET /api/sections", a.handleListSections)
	mux.HandleFunc("POST /api/sections", a.handleAddSection)
	mux.HandleFunc("DELETE /api/sections/{key}", a.handleDeleteSection)
	mux.HandleFunc("PUT /api/sections/reorder", a.handleReorderSections)

	// Test cards
	mux.HandleFunc("GET /api/cards", a.handleListCards)
	mux.HandleFunc("POST /api/cards", a.handleAddCard)
	mux.HandleFunc("PUT /api/cards/{id}", a.handleUpdateCard)
	mux.HandleFunc("DELETE /api/cards/{id}", a.handleDeleteCard)
	mux.HandleFunc("PUT /api/cards/reorder/{key}", a.handleReorderCards)

	// Waivers
	mux.HandleFunc("GET /api/waivers/{suite}", a.handleListWaivers)
	mux.HandleFunc("POST /api/waivers", a.handleAddWaiver)
	mux.HandleFunc("PUT /api/waivers/{id}", a.handleUpdateWaiver)
	mux.HandleFunc("DELETE /api/waivers/{id}", a.handleDeleteWaiver)

	// Attachments
	mux.HandleFunc("POST /api/upload", a.handleUpload)
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBody decodes a size-limited JSON body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// storeError maps store error kinds to HTTP statuses. Unclassified errors are
// logged and reported as a plain 500 so storage detail never leaks.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrInvalid):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, db.ErrConflict):
		jsonError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, db.ErrNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("store error: %v", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

// --- Helpers ---

func jsonResp(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
