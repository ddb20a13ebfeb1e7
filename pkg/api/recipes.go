package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/korjavin/fridgechef/pkg/models"
)

type recipeRequest struct {
	Title       string                    `json:"title"`
	Description string                    `json:"description,omitempty"`
	Ingredients []models.RecipeIngredient `json:"ingredients"`
	Steps       []string                  `json:"steps,omitempty"`
	Tags        []string                  `json:"tags,omitempty"`
}

// ListRecipes returns all recipes, optionally filtered by a case-insensitive
// search over title and description. A non-empty search term is recorded to
// the search history.
func (a *API) ListRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	recipes, err := a.recipes.List()
	if err != nil {
		a.logger.Error("Failed to list recipes: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}

	search := strings.TrimSpace(r.URL.Query().Get("search"))
	if search != "" {
		if err := a.recipes.AddSearchTerm(search); err != nil {
			a.logger.Error("Failed to record search term: %v", err)
		}

		needle := strings.ToLower(search)
		filtered := make([]models.Recipe, 0, len(recipes))
		for _, recipe := range recipes {
			if strings.Contains(strings.ToLower(recipe.Title), needle) ||
				strings.Contains(strings.ToLower(recipe.Description), needle) {
				filtered = append(filtered, recipe)
			}
		}
		recipes = filtered
	}

	respondWithJSON(w, http.StatusOK, recipes)
}

// CreateRecipe stores a new recipe
func (a *API) CreateRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	recipe, err := a.recipes.Create(req.Title, req.Description, req.Ingredients, req.Steps, req.Tags)
	if err != nil {
		a.logger.Error("Failed to create recipe: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to create recipe")
		return
	}
	respondWithJSON(w, http.StatusCreated, recipe)
}

// GetRecipe returns one recipe
func (a *API) GetRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	recipe, err := a.recipes.Get(ps.ByName("id"))
	if err != nil {
		if isNotFound(err) {
			respondWithError(w, http.StatusNotFound, "recipe not found")
			return
		}
		a.logger.Error("Failed to get recipe: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to get recipe")
		return
	}
	respondWithJSON(w, http.StatusOK, recipe)
}

// UpdateRecipe overwrites an existing recipe
func (a *API) UpdateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated := models.Recipe{
		ID:          ps.ByName("id"),
		Title:       req.Title,
		Description: req.Description,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		Tags:        req.Tags,
	}
	if err := a.recipes.Update(updated); err != nil {
		if isNotFound(err) {
			respondWithError(w, http.StatusNotFound, "recipe not found")
			return
		}
		a.logger.Error("Failed to update recipe: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to update recipe")
		return
	}
	respondWithJSON(w, http.StatusOK, M{"status": "updated"})
}

// DeleteRecipe removes a recipe
func (a *API) DeleteRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := a.recipes.Delete(ps.ByName("id")); err != nil {
		a.logger.Error("Failed to delete recipe: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to delete recipe")
		return
	}
	respondWithJSON(w, http.StatusOK, M{"status": "deleted"})
}

// SetFavorite marks a recipe as favorite
func (a *API) SetFavorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	a.setFavorite(w, ps.ByName("id"), true)
}

// UnsetFavorite removes the favorite mark
func (a *API) UnsetFavorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	a.setFavorite(w, ps.ByName("id"), false)
}

func (a *API) setFavorite(w http.ResponseWriter, recipeID string, favorite bool) {
	if err := a.recipes.SetFavorite(recipeID, favorite); err != nil {
		if isNotFound(err) {
			respondWithError(w, http.StatusNotFound, "recipe not found")
			return
		}
		a.logger.Error("Failed to set favorite: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to set favorite")
		return
	}
	respondWithJSON(w, http.StatusOK, M{"favorite": favorite})
}

// ListFavorites returns all favorite recipes
func (a *API) ListFavorites(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	recipes, err := a.recipes.Favorites()
	if err != nil {
		a.logger.Error("Failed to list favorites: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list favorites")
		return
	}
	respondWithJSON(w, http.StatusOK, recipes)
}

// SearchHistory returns recent search terms, newest first
func (a *API) SearchHistory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	terms, err := a.recipes.SearchHistory(limit)
	if err != nil {
		a.logger.Error("Failed to list search history: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list search history")
		return
	}
	respondWithJSON(w, http.StatusOK, terms)
}

// AddSearchTerm records a search term explicitly
func (a *API) AddSearchTerm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Term string `json:"term"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Term) == "" {
		respondWithError(w, http.StatusBadRequest, "term is required")
		return
	}
	if err := a.recipes.AddSearchTerm(strings.TrimSpace(req.Term)); err != nil {
		a.logger.Error("Failed to record search term: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to record search term")
		return
	}
	respondWithJSON(w, http.StatusCreated, M{"status": "recorded"})
}

// ClearSearchHistory removes all search history entries
func (a *API) ClearSearchHistory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := a.recipes.ClearSearchHistory(); err != nil {
		a.logger.Error("Failed to clear search history: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to clear search history")
		return
	}
	respondWithJSON(w, http.StatusOK, M{"status": "cleared"})
}
