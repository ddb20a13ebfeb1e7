package api

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/korjavin/fridgechef/pkg/models"
)

type itemRequest struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit,omitempty"`
	ExpiryDate string  `json:"expiry_date,omitempty"`
}

// ListItems returns the fridge inventory sorted earliest-expiry-first.
// The sort is display order only; matching never depends on it.
func (a *API) ListItems(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	items, err := a.fridges.Items(ps.ByName("fridgeId"))
	if err != nil {
		a.logger.Error("Failed to list items: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	models.SortByExpiry(items)
	respondWithJSON(w, http.StatusOK, items)
}

// AddItem adds one item to the fridge
func (a *API) AddItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	item, err := a.fridges.AddItem(ps.ByName("fridgeId"), req.Name, req.Quantity, req.Unit, req.ExpiryDate)
	if err != nil {
		a.logger.Error("Failed to add item: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to add item")
		return
	}
	respondWithJSON(w, http.StatusCreated, item)
}

// QuickAddItems parses free text into ingredients via the LLM and adds them
func (a *API) QuickAddItems(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !a.suggester.Enabled() {
		respondWithError(w, http.StatusServiceUnavailable, "ingredient parsing is not configured")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		respondWithError(w, http.StatusBadRequest, "text is required")
		return
	}

	parsed, err := a.suggester.ParseIngredients(req.Text)
	if err != nil {
		a.logger.Error("Failed to parse ingredients: %v", err)
		respondWithError(w, http.StatusBadGateway, "failed to parse ingredients")
		return
	}

	fridgeID := ps.ByName("fridgeId")
	added := make([]models.FridgeItem, 0, len(parsed))
	for _, p := range parsed {
		quantity := p.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		item, err := a.fridges.AddItem(fridgeID, p.Name, quantity, p.Unit, "")
		if err != nil {
			a.logger.Error("Failed to add parsed item %s: %v", p.Name, err)
			continue
		}
		added = append(added, *item)
	}
	respondWithJSON(w, http.StatusCreated, added)
}

// UpdateItem overwrites an item's editable fields
func (a *API) UpdateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fridgeID, itemID := ps.ByName("fridgeId"), ps.ByName("itemId")
	item, err := a.fridges.GetItem(fridgeID, itemID)
	if err != nil {
		if isNotFound(err) {
			respondWithError(w, http.StatusNotFound, "item not found")
			return
		}
		a.logger.Error("Failed to load item: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to load item")
		return
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	item.Quantity = req.Quantity
	item.Unit = req.Unit
	item.ExpiryDate = req.ExpiryDate

	if err := a.fridges.UpdateItem(*item); err != nil {
		a.logger.Error("Failed to update item: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to update item")
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}

// DeleteItem removes an item
func (a *API) DeleteItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := a.fridges.DeleteItem(ps.ByName("fridgeId"), ps.ByName("itemId")); err != nil {
		a.logger.Error("Failed to delete item: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	respondWithJSON(w, http.StatusOK, M{"status": "deleted"})
}

// MatchIngredient resolves one ingredient name against the fridge, returning
// the cascade hits and, when there is no exact match, the substitution-table
// alternatives. Exact matches are expiry-sorted here for display.
func (a *API) MatchIngredient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name := r.URL.Query().Get("ingredient")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "ingredient query parameter is required")
		return
	}

	items, err := a.fridges.Items(ps.ByName("fridgeId"))
	if err != nil {
		a.logger.Error("Failed to list items: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	result := a.matcher.Lookup(name, items)
	models.SortByExpiry(result.ExactMatches)
	respondWithJSON(w, http.StatusOK, result)
}
