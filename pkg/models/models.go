package models

import (
	"sort"
	"time"
)

// Fridge is a named inventory container shared by one or more users
type Fridge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// FridgeItem is a single inventory entry in a fridge. Quantity is a
// non-negative amount remaining; an empty unit displays as a count unit.
// ExpiryDate ("2006-01-02") is used for display sorting only, never matching.
type FridgeItem struct {
	ID         string  `json:"id"`
	FridgeID   string  `json:"fridge_id"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit,omitempty"`
	ExpiryDate string  `json:"expiry_date,omitempty"`
}

// DisplayUnit returns the unit label, falling back to a count unit
func (i FridgeItem) DisplayUnit() string {
	if i.Unit == "" {
		return "개"
	}
	return i.Unit
}

// RecipeIngredient is one component of a recipe; read-only to the engine
type RecipeIngredient struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
}

// Recipe is a user-authored or fetched recipe
type Recipe struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Steps       []string           `json:"steps,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Alternative is a fridge item matched through the substitution table rather
// than to the requested ingredient itself
type Alternative struct {
	Item   FridgeItem `json:"item"`
	Reason string     `json:"reason"`
}

// AvailableIngredient describes how one recipe ingredient was satisfied
type AvailableIngredient struct {
	Name           string `json:"name"`
	IsAlternative  bool   `json:"is_alternative"`
	FridgeItemName string `json:"fridge_item_name"`
}

// RecipeAvailability aggregates matching results over all ingredients of one
// recipe against one fridge snapshot
type RecipeAvailability struct {
	RecipeID             string                `json:"recipe_id"`
	AvailableCount       int                   `json:"available_count"`
	TotalCount           int                   `json:"total_count"`
	CanMake              bool                  `json:"can_make"`
	MissingIngredients   []string              `json:"missing_ingredients"`
	AvailableIngredients []AvailableIngredient `json:"available_ingredients"`
}

// UsageRecord is one audit entry for a consumption event
type UsageRecord struct {
	ID       string    `json:"id"`
	FridgeID string    `json:"fridge_id"`
	ItemID   string    `json:"item_id"`
	ItemName string    `json:"item_name"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit,omitempty"`
	Context  string    `json:"context,omitempty"`
	At       time.Time `json:"at"`
}

// SortByExpiry sorts items earliest-expiry-first in place. Items without an
// expiry date sort last. This is a presentation concern; the matcher never
// orders its results.
func SortByExpiry(items []FridgeItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].ExpiryDate, items[j].ExpiryDate
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a < b
	})
}
