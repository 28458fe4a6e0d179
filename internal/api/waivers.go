package api

import (
	"net/http"

	"github.com/example/certtrack/internal/db"
)

func (a *API) handleListWaivers(w http.ResponseWriter, r *http.Request) {
	waivers, err := a.waivers.ListWaivers(r.PathValue("suite"))
	if err != nil {
		storeError(w, err)
		return
	}
	if waivers == nil {
		waivers = []db.Waiver{}
	}
	jsonResp(w, http.StatusOK, waivers)
}

// POST /api/waivers
// {"suite":"CTS","waiver_id":"W-123","module":"...","test_case":"...","note":"..."}
func (a *API) handleAddWaiver(w http.ResponseWriter, r *http.Request) {
	var waiver db.Waiver
	if !decodeBody(w, r, &waiver) {
		return
	}

	id, err := a.waivers.AddWaiver(waiver)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, map[string]any{"id": id})
}

func (a *API) handleUpdateWaiver(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var waiver db.Waiver
	if !decodeBody(w, r, &waiver) {
		return
	}

	if err := a.waivers.UpdateWaiver(id, waiver); err != nil {
		storeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, map[string]any{})
}

func (a *API) handleDeleteWaiver(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.waivers.DeleteWaiver(id); err != nil {
		storeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, map[string]any{})
}
