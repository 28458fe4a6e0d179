package api

import (
	"fmt"
	"net/http"

	"github.com/example/certtrack/internal/db"
)

func (a *API) handleListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := a.manual.ListSections()
	if err != nil {
		storeError(w, err)
		return
	}
	if sections == nil {
		sections = []db.Section{}
	}
	jsonResp(w, http.StatusOK, sections)
}

// POST /api/sections  {"title": "...", "tag": "..."}
func (a *API) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
		Tag   string `json:"tag"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	key, err := a.manual.AddSection(req.Title, req.Tag)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, map[string]any{"section_key": key})
}

// handleDeleteSection removes a section with its cards and their images.
func (a *API) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	cardsRemoved, err := a.manual.DeleteSection(key)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, map[string]any{
		"removed_cards": cardsRemoved,
		"message":       fmt.Sprintf("section %q and %d related cards deleted", key, cardsRemoved),
	})
}

// PUT /api/sections/reorder  ["GTSI","MADA",...]
func (a *API) handleReorderSections(w http.ResponseWriter, r *http.Request) {
	var keys []string
	if !decodeBody(w, r, &keys) {
		return
	}
	if err := a.manual.ReorderSections(keys); err != nil {
		storeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, map[string]any{})
}
