package api

import (
	"net/http"
	"strconv"

	"github.com/example/certtrack/internal/db"
)

func (a *API) handleListTips(w http.ResponseWriter, r *http.Request) {
	tips, err := a.retry.ListTips(r.URL.Query().Get("suite"))
	if err != nil {
		storeError(w, err)
		return
	}
	if tips == nil {
		tips = []db.RetryTip{}
	}
	jsonResp(w, http.StatusOK, tips)
}

// POST /api/retry  {"type": "GTS", "module_case": "...", "condition": "...", "trick": "..."}
func (a *API) handleAddTip(w http.ResponseWriter, r *http.Request) {
	var tip db.RetryTip
	if !decodeBody(w, r, &tip) {
		return
	}

	id, err := a.retry.AddTip(tip)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, map[string]any{"id": id})
}

// handleUpdateTip replaces the full field set; there is no partial patch.
func (a *API) handleUpdateTip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var tip db.RetryTip
	if !decodeBody(w, r, &tip) {
		return
	}

	if err := a.retry.UpdateTip(id, tip); err != nil {
		storeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, map[string]any{})
}

func (a *API) handleDeleteTip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.retry.DeleteTip(id); err != nil {
		storeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, map[string]any{})
}

// pathID parses the {id} path segment, writing a 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
