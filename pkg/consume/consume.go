// Package consume plans and applies fridge deductions when a recipe is
// marked as cooked.
package consume

import (
	"fmt"
	"math"

	"github.com/korjavin/fridgechef/pkg/models"
)

// MaxQuantityEpsilon is the tolerance used to decide that a requested
// quantity means "use everything currently present". It guards against
// slider rounding drift in the client, not general numeric equality.
const MaxQuantityEpsilon = 0.0001

// Deduction is one user-flagged deduction: the bound fridge item, the amount
// the user asked for, and the maximum the client offered on its slider. Max
// may have drifted from the item's current quantity; planning reconciles the
// two.
type Deduction struct {
	Item      models.FridgeItem `json:"item"`
	Requested float64           `json:"requested"`
	Max       float64           `json:"max"`
}

// PlanEntry is one validated deduction. Requested is the effective amount
// after max reconciliation.
type PlanEntry struct {
	Item          models.FridgeItem `json:"item"`
	Requested     float64           `json:"requested"`
	Resulting     float64           `json:"resulting"`
	FullyConsumed bool              `json:"fully_consumed"`
}

// Plan is the validated set of deductions for one cooking event
type Plan struct {
	Entries []PlanEntry `json:"entries"`
}

// ValidationError reports the first deduction that would overdraw an item.
// It is an expected outcome, surfaced verbatim to the user; no part of the
// plan is applied.
type ValidationError struct {
	ItemName  string  `json:"item_name"`
	Requested float64 `json:"requested"`
	Available float64 `json:"available"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("cannot use %g of %q: only %g available", e.Requested, e.ItemName, e.Available)
}

// BuildPlan validates the deductions and produces a plan. Entries with a
// non-positive request are skipped. A request within MaxQuantityEpsilon of
// the offered maximum is treated as "use all remaining" and substitutes the
// item's current quantity, so "max" always means exactly what is present
// now, never a stale snapshot amount. Any effective request exceeding the
// item's quantity rejects the whole plan with a *ValidationError.
func BuildPlan(deductions []Deduction) (*Plan, error) {
	plan := &Plan{}
	for _, d := range deductions {
		if d.Requested <= 0 {
			continue
		}

		effective := d.Requested
		if math.Abs(d.Requested-d.Max) < MaxQuantityEpsilon {
			effective = d.Item.Quantity
		}

		if effective > d.Item.Quantity {
			return nil, &ValidationError{
				ItemName:  d.Item.Name,
				Requested: effective,
				Available: d.Item.Quantity,
			}
		}

		resulting := d.Item.Quantity - effective
		plan.Entries = append(plan.Entries, PlanEntry{
			Item:          d.Item,
			Requested:     effective,
			Resulting:     resulting,
			FullyConsumed: resulting <= 0,
		})
	}
	return plan, nil
}
