package match

import "github.com/korjavin/fridgechef/pkg/models"

// Result is the per-ingredient outcome of a lookup. ExactMatches holds the
// cascade hits (no substitution involved); Alternatives is populated only
// when ExactMatches is empty. The selection always points at a member of
// ExactMatches or Alternatives when non-nil.
type Result struct {
	ExactMatches          []models.FridgeItem  `json:"exact_matches"`
	Alternatives          []models.Alternative `json:"alternatives"`
	Selected              *models.FridgeItem   `json:"selected,omitempty"`
	IsAlternativeSelected bool                 `json:"is_alternative_selected"`
}

// Lookup runs the full cascade and, when it comes up empty, the substitution
// table. The selection defaults to the first exact match, or the first
// alternative when there is no exact match.
func (m *Matcher) Lookup(name string, items []models.FridgeItem) Result {
	result := Result{ExactMatches: m.Match(name, items)}
	if len(result.ExactMatches) == 0 {
		result.Alternatives = m.FindAlternatives(name, items)
	}

	if len(result.ExactMatches) > 0 {
		item := result.ExactMatches[0]
		result.Selected = &item
	} else if len(result.Alternatives) > 0 {
		item := result.Alternatives[0].Item
		result.Selected = &item
		result.IsAlternativeSelected = true
	}
	return result
}

// Available reports whether the ingredient has an exact match. Alternatives
// alone do not count as available.
func (r Result) Available() bool {
	return len(r.ExactMatches) > 0
}

// Select moves the selection to the candidate with the given item ID and
// reports whether the ID named a candidate. An unknown ID leaves the
// selection untouched.
func (r *Result) Select(itemID string) bool {
	for _, item := range r.ExactMatches {
		if item.ID == itemID {
			selected := item
			r.Selected = &selected
			r.IsAlternativeSelected = false
			return true
		}
	}
	for _, alt := range r.Alternatives {
		if alt.Item.ID == itemID {
			selected := alt.Item
			r.Selected = &selected
			r.IsAlternativeSelected = true
			return true
		}
	}
	return false
}
