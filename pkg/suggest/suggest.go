// Package suggest proposes dishes from a fridge snapshot via the LLM and
// annotates every proposal with real availability from the matching engine.
package suggest

import (
	"fmt"

	"github.com/korjavin/fridgechef/pkg/avail"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/korjavin/fridgechef/pkg/openai"
)

// Suggestion is one proposed dish with its availability against the fridge
type Suggestion struct {
	Name         string                    `json:"name"`
	Description  string                    `json:"description,omitempty"`
	Ingredients  []string                  `json:"ingredients"`
	Availability models.RecipeAvailability `json:"availability"`
}

// Service generates dish suggestions. A nil LLM client disables the service.
type Service struct {
	client     *openai.Client
	aggregator *avail.Aggregator
	logger     *logger.Logger
}

// New creates a new suggestion service. client may be nil when no API key is
// configured.
func New(client *openai.Client, aggregator *avail.Aggregator) *Service {
	return &Service{
		client:     client,
		aggregator: aggregator,
		logger:     logger.New("suggest"),
	}
}

// Enabled reports whether the LLM backend is configured
func (s *Service) Enabled() bool {
	return s.client != nil
}

// SuggestDishes asks the LLM for up to count dishes cookable from the
// snapshot and scores each one with the availability aggregator, so the
// client sees which suggested ingredients are actually present, substitutable
// or missing.
func (s *Service) SuggestDishes(items []models.FridgeItem, count int) ([]Suggestion, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("suggestions are not configured")
	}
	if count <= 0 {
		count = 3
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}

	dishes, err := s.client.SuggestDishes(names, count)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest dishes: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(dishes))
	for _, dish := range dishes {
		ingredients := make([]models.RecipeIngredient, 0, len(dish.Ingredients))
		for _, name := range dish.Ingredients {
			ingredients = append(ingredients, models.RecipeIngredient{Name: name})
		}

		availability := s.aggregator.ForRecipe(models.Recipe{
			Title:       dish.Name,
			Ingredients: ingredients,
		}, items)

		suggestions = append(suggestions, Suggestion{
			Name:         dish.Name,
			Description:  dish.Description,
			Ingredients:  dish.Ingredients,
			Availability: availability,
		})
	}

	s.logger.Info("Produced %d suggestions from %d fridge items", len(suggestions), len(items))
	return suggestions, nil
}

// ParseIngredients extracts ingredients from free text for quick-add
func (s *Service) ParseIngredients(text string) ([]openai.ParsedIngredient, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("suggestions are not configured")
	}
	return s.client.ParseIngredients(text)
}
