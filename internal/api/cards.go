package api

import (
	"net/http"

	"github.com/example/certtrack/internal/db"
)

func (a *API) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := a.manual.ListCards(r.URL.Query().Get("section"))
	if err != nil {
		storeError(w, err)
		return
	}
	if cards == nil {
		cards = []db.Card{}
	}
	jsonResp(w, http.StatusOK, cards)
}

// POST /api/cards
// {"section_key":"CTSV","card_title":"...","content":"...","card_subtitle":"...","note":"...","image_urls":[...]}
func (a *API) handleAddCard(w http.ResponseWriter, r *http.Request) {
	var card db.Card
	if !decodeBody(w, r, &card) {
		return
	}

	id, err := a.manual.AddCard(card)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, map[string]any{"id": id})
}

// handleUpdateCard replaces the full field set and the entire image list.
func (a *API) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var card db.Card
	if !decodeBody(w, r, &card) {
		return
	}

	if err := a.manual.UpdateCard(id, card); err != nil {
		storeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, map[string]any{})
}

func (a *API) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.manual.DeleteCard(id); err != nil {
		storeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, map[string]any{})
}

// PUT /api/cards/reorder/{key}  [id,...]
func (a *API) handleReorderCards(w http.ResponseWriter, r *http.Request) {
	var ids []int64
	if !decodeBody(w, r, &ids) {
		return
	}
	if err := a.manual.ReorderCards(r.PathValue("key"), ids); err != nil {
		storeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, map[string]any{})
}
