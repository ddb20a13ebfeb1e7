package api

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

// Router builds the HTTP router with all application routes
func (a *API) Router() *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", health)

	// Fridge inventory
	router.GET("/api/v1/fridges/:fridgeId/items", a.ListItems)
	router.POST("/api/v1/fridges/:fridgeId/items", a.AddItem)
	router.POST("/api/v1/fridges/:fridgeId/items/quickadd", a.QuickAddItems)
	router.PUT("/api/v1/fridges/:fridgeId/items/:itemId", a.UpdateItem)
	router.DELETE("/api/v1/fridges/:fridgeId/items/:itemId", a.DeleteItem)

	// Matching and availability
	router.GET("/api/v1/fridges/:fridgeId/match", a.MatchIngredient)
	router.GET("/api/v1/fridges/:fridgeId/availability/:recipeId", a.Availability)
	router.POST("/api/v1/fridges/:fridgeId/availability", a.AvailabilityBatch)

	// Cooking and usage history
	router.POST("/api/v1/fridges/:fridgeId/cook", a.Cook)
	router.GET("/api/v1/fridges/:fridgeId/history", a.History)
	router.POST("/api/v1/fridges/:fridgeId/suggestions", a.Suggestions)

	// Recipes
	router.GET("/api/v1/recipes", a.ListRecipes)
	router.POST("/api/v1/recipes", a.CreateRecipe)
	router.GET("/api/v1/recipes/recipe/:id", a.GetRecipe)
	router.PUT("/api/v1/recipes/recipe/:id", a.UpdateRecipe)
	router.DELETE("/api/v1/recipes/recipe/:id", a.DeleteRecipe)
	router.PUT("/api/v1/recipes/recipe/:id/favorite", a.SetFavorite)
	router.DELETE("/api/v1/recipes/recipe/:id/favorite", a.UnsetFavorite)
	router.GET("/api/v1/favorites", a.ListFavorites)

	// Search history
	router.GET("/api/v1/search-history", a.SearchHistory)
	router.POST("/api/v1/search-history", a.AddSearchTerm)
	router.DELETE("/api/v1/search-history", a.ClearSearchHistory)

	return router
}
