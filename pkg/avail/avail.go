// Package avail aggregates per-ingredient matching results into per-recipe
// availability summaries.
package avail

import (
	"github.com/korjavin/fridgechef/pkg/match"
	"github.com/korjavin/fridgechef/pkg/models"
)

// Aggregator computes recipe availability against a fridge snapshot
type Aggregator struct {
	matcher *match.Matcher
}

// New creates an aggregator backed by the given matcher
func New(matcher *match.Matcher) *Aggregator {
	return &Aggregator{matcher: matcher}
}

// ForRecipe computes availability for a single recipe against the snapshot.
// An ingredient with an exact-cascade match counts as available without
// consulting the substitution table; alternatives are looked up only for
// ingredients the cascade could not resolve. A recipe with zero ingredients
// is never cookable.
func (a *Aggregator) ForRecipe(recipe models.Recipe, items []models.FridgeItem) models.RecipeAvailability {
	info := models.RecipeAvailability{
		RecipeID:             recipe.ID,
		TotalCount:           len(recipe.Ingredients),
		MissingIngredients:   []string{},
		AvailableIngredients: []models.AvailableIngredient{},
	}

	for _, ing := range recipe.Ingredients {
		if exact := a.matcher.Match(ing.Name, items); len(exact) > 0 {
			info.AvailableCount++
			info.AvailableIngredients = append(info.AvailableIngredients, models.AvailableIngredient{
				Name:           ing.Name,
				FridgeItemName: exact[0].Name,
			})
			continue
		}

		if alts := a.matcher.FindAlternatives(ing.Name, items); len(alts) > 0 {
			info.AvailableCount++
			info.AvailableIngredients = append(info.AvailableIngredients, models.AvailableIngredient{
				Name:           ing.Name,
				IsAlternative:  true,
				FridgeItemName: alts[0].Item.Name,
			})
			continue
		}

		info.MissingIngredients = append(info.MissingIngredients, ing.Name)
	}

	info.CanMake = info.TotalCount > 0 && info.AvailableCount == info.TotalCount
	return info
}

// ForRecipes computes availability for many recipes against one shared
// snapshot. The snapshot is reused across recipes; per-recipe results are
// identical to calling ForRecipe individually.
func (a *Aggregator) ForRecipes(recipes []models.Recipe, items []models.FridgeItem) map[string]models.RecipeAvailability {
	results := make(map[string]models.RecipeAvailability, len(recipes))
	for _, recipe := range recipes {
		results[recipe.ID] = a.ForRecipe(recipe, items)
	}
	return results
}
