// Package recipe manages recipes, favorites and the search history
package recipe

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/korjavin/fridgechef/pkg/storage"
)

// Service provides recipe management
type Service struct {
	store  *storage.Store
	logger *logger.Logger
}

// New creates a new recipe service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("recipe"),
	}
}

func recipeKey(id string) string   { return "recipe:" + id }
func favoriteKey(id string) string { return "favorite:" + id }

// searchEntry is one persisted search-history row
type searchEntry struct {
	Term string    `json:"term"`
	At   time.Time `json:"at"`
}

// Create stores a new recipe and returns it
func (s *Service) Create(title, description string, ingredients []models.RecipeIngredient, steps, tags []string) (*models.Recipe, error) {
	for i := range ingredients {
		if ingredients[i].ID == "" {
			ingredients[i].ID = uuid.NewString()
		}
	}

	recipe := models.Recipe{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Ingredients: ingredients,
		Steps:       steps,
		Tags:        tags,
		CreatedAt:   time.Now(),
	}
	if err := s.store.Set(recipeKey(recipe.ID), recipe); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	return &recipe, nil
}

// Get retrieves one recipe
func (s *Service) Get(id string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.store.Get(recipeKey(id), &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetMany retrieves the recipes with the given IDs, skipping unknown IDs
func (s *Service) GetMany(ids []string) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0, len(ids))
	for _, id := range ids {
		recipe, err := s.Get(id)
		if err != nil {
			s.logger.Warn("Skipping unknown recipe %s: %v", id, err)
			continue
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, nil
}

// List returns all recipes
func (s *Service) List() ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	err := s.store.Each("recipe:", func(key string, data []byte) error {
		var recipe models.Recipe
		if err := json.Unmarshal(data, &recipe); err != nil {
			s.logger.Error("Skipping corrupt recipe %s: %v", key, err)
			return nil
		}
		recipes = append(recipes, recipe)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// Update overwrites an existing recipe
func (s *Service) Update(recipe models.Recipe) error {
	var existing models.Recipe
	if err := s.store.Get(recipeKey(recipe.ID), &existing); err != nil {
		return err
	}
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = existing.CreatedAt
	}
	if err := s.store.Set(recipeKey(recipe.ID), recipe); err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	return nil
}

// Delete removes a recipe and its favorite mark
func (s *Service) Delete(id string) error {
	if err := s.store.Delete(recipeKey(id)); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if err := s.store.Delete(favoriteKey(id)); err != nil {
		s.logger.Error("Failed to clear favorite for %s: %v", id, err)
	}
	return nil
}

// SetFavorite marks or unmarks a recipe as a favorite
func (s *Service) SetFavorite(recipeID string, favorite bool) error {
	if _, err := s.Get(recipeID); err != nil {
		return err
	}
	if !favorite {
		return s.store.Delete(favoriteKey(recipeID))
	}
	return s.store.Set(favoriteKey(recipeID), time.Now())
}

// Favorites returns all favorite recipes
func (s *Service) Favorites() ([]models.Recipe, error) {
	keys, err := s.store.Keys("favorite:")
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	recipes := make([]models.Recipe, 0, len(keys))
	for _, key := range keys {
		id := key[len("favorite:"):]
		recipe, err := s.Get(id)
		if err != nil {
			s.logger.Warn("Favorite points at missing recipe %s: %v", id, err)
			continue
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, nil
}

// AddSearchTerm appends a search term to the history
func (s *Service) AddSearchTerm(term string) error {
	if term == "" {
		return nil
	}
	key := fmt.Sprintf("search:%d", time.Now().UnixNano())
	return s.store.Set(key, searchEntry{Term: term, At: time.Now()})
}

// SearchHistory returns up to limit most recent search terms, newest first
func (s *Service) SearchHistory(limit int) ([]string, error) {
	var entries []searchEntry
	err := s.store.Each("search:", func(key string, data []byte) error {
		var e searchEntry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list search history: %w", err)
	}

	// Keys are timestamp-ordered ascending; newest last
	terms := make([]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		terms = append(terms, entries[i].Term)
		if limit > 0 && len(terms) >= limit {
			break
		}
	}
	return terms, nil
}

// ClearSearchHistory removes all search history entries
func (s *Service) ClearSearchHistory() error {
	keys, err := s.store.Keys("search:")
	if err != nil {
		return fmt.Errorf("failed to list search history: %w", err)
	}
	for _, key := range keys {
		if err := s.store.Delete(key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}
