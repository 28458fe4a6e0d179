package api

import (
	"fmt"
	"net/http"

	"github.com/example/certtrack/internal/db"
)

func (a *API) handleListSuites(w http.ResponseWriter, r *http.Request) {
	suites, err := a.retry.ListSuites()
	if err != nil {
		storeError(w, err)
		return
	}
	if suites == nil {
		suites = []db.Suite{}
	}
	jsonResp(w, http.StatusOK, suites)
}

// handleAddSuite creates a suite block. The key is derived from the tag when
// present, else the title.
// POST /api/suites  {"suite_title": "...", "suite_tag": "..."}
func (a *API) handleAddSuite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SuiteTitle string `json:"suite_title"`
		SuiteTag   string `json:"suite_tag"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	id, key, err := a.retry.AddSuite(req.SuiteTitle, req.SuiteTag)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, map[string]any{"id": id, "suite_key": key})
}

// handleDeleteSuite removes a suite block and every tip typed under it.
func (a *API) handleDeleteSuite(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	tipsRemoved, err := a.retry.DeleteSuite(key)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, map[string]any{
		"removed_tips": tipsRemoved,
		"message":      fmt.Sprintf("suite %q and %d related tips deleted", key, tipsRemoved),
	})
}

// handleReorderSuites takes the full desired key order as a JSON array.
// PUT /api/suites/reorder  ["GTS","BASIC",...]
func (a *API) handleReorderSuites(w http.ResponseWriter, r *http.Request) {
	var keys []string
	if !decodeBody(w, r, &keys) {
		return
	}
	if err := a.retry.ReorderSuites(keys); err != nil {
		storeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, map[string]any{})
}
