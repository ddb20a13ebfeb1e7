package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/korjavin/fridgechef/pkg/consume"
	"github.com/korjavin/fridgechef/pkg/models"
)

// Availability computes availability of one recipe against the fridge
func (a *API) Availability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	recipe, err := a.recipes.Get(ps.ByName("recipeId"))
	if err != nil {
		if isNotFound(err) {
			respondWithError(w, http.StatusNotFound, "recipe not found")
			return
		}
		a.logger.Error("Failed to get recipe: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to get recipe")
		return
	}

	items, err := a.fridges.Items(ps.ByName("fridgeId"))
	if err != nil {
		a.logger.Error("Failed to list items: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	respondWithJSON(w, http.StatusOK, a.aggregator.ForRecipe(*recipe, items))
}

// AvailabilityBatch computes availability for many recipes against a single
// fridge snapshot. The snapshot is fetched once and shared across all
// recipes. An empty recipe_ids list means all recipes.
func (a *API) AvailabilityBatch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req struct {
		RecipeIDs []string `json:"recipe_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var recipes []models.Recipe
	var err error
	if len(req.RecipeIDs) > 0 {
		recipes, err = a.recipes.GetMany(req.RecipeIDs)
	} else {
		recipes, err = a.recipes.List()
	}
	if err != nil {
		a.logger.Error("Failed to load recipes: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to load recipes")
		return
	}

	items, err := a.fridges.Items(ps.ByName("fridgeId"))
	if err != nil {
		a.logger.Error("Failed to list items: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	respondWithJSON(w, http.StatusOK, a.aggregator.ForRecipes(recipes, items))
}

type cookDeduction struct {
	ItemID    string  `json:"item_id"`
	Requested float64 `json:"requested"`
	Max       float64 `json:"max"`
}

type cookRequest struct {
	RecipeID   string          `json:"recipe_id,omitempty"`
	Context    string          `json:"context,omitempty"`
	Deductions []cookDeduction `json:"deductions"`
}

// Cook validates the requested deductions against the current fridge state
// and applies them. Over-consumption rejects the whole request with the
// offending item and amounts; a failure partway through application returns
// a generic error (earlier entries stay applied and the client should
// re-fetch the fridge).
func (a *API) Cook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req cookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Deductions) == 0 {
		respondWithError(w, http.StatusBadRequest, "deductions are required")
		return
	}

	fridgeID := ps.ByName("fridgeId")
	items, err := a.fridges.Items(fridgeID)
	if err != nil {
		a.logger.Error("Failed to list items: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	byID := make(map[string]models.FridgeItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	deductions := make([]consume.Deduction, 0, len(req.Deductions))
	for _, d := range req.Deductions {
		item, ok := byID[d.ItemID]
		if !ok {
			respondWithError(w, http.StatusBadRequest, "unknown fridge item: "+d.ItemID)
			return
		}
		deductions = append(deductions, consume.Deduction{
			Item:      item,
			Requested: d.Requested,
			Max:       d.Max,
		})
	}

	plan, err := consume.BuildPlan(deductions)
	if err != nil {
		var verr *consume.ValidationError
		if errors.As(err, &verr) {
			respondWithJSON(w, http.StatusUnprocessableEntity, M{
				"error":     verr.Error(),
				"item_name": verr.ItemName,
				"requested": verr.Requested,
				"available": verr.Available,
			})
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	contextLabel := req.Context
	if contextLabel == "" && req.RecipeID != "" {
		contextLabel = "recipe:" + req.RecipeID
	}

	applied, err := a.applier.Apply(r.Context(), plan, contextLabel)
	if err != nil {
		// Earlier entries stay applied; the client re-fetches to reconcile.
		a.logger.Error("Consumption partially applied (%d entries): %v", applied, err)
		respondWithError(w, http.StatusInternalServerError, "failed to process consumption")
		return
	}

	respondWithJSON(w, http.StatusOK, M{
		"applied": applied,
		"entries": plan.Entries,
	})
}

// History returns recent usage records for a fridge
func (a *API) History(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	records, err := a.history.ForFridge(ps.ByName("fridgeId"), limit)
	if err != nil {
		a.logger.Error("Failed to list history: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list history")
		return
	}
	respondWithJSON(w, http.StatusOK, records)
}

// Suggestions proposes dishes from the fridge contents via the LLM
func (a *API) Suggestions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !a.suggester.Enabled() {
		respondWithError(w, http.StatusServiceUnavailable, "suggestions are not configured")
		return
	}

	var req struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, err := a.fridges.Items(ps.ByName("fridgeId"))
	if err != nil {
		a.logger.Error("Failed to list items: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	suggestions, err := a.suggester.SuggestDishes(items, req.Count)
	if err != nil {
		a.logger.Error("Failed to suggest dishes: %v", err)
		respondWithError(w, http.StatusBadGateway, "failed to suggest dishes")
		return
	}
	respondWithJSON(w, http.StatusOK, suggestions)
}
