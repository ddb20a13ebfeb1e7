package consume

import (
	"context"
	"fmt"
	"time"

	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/models"
)

// ItemStore applies the engine's intended mutations to persistent storage
type ItemStore interface {
	SetItemQuantity(fridgeID, itemID string, quantity float64) error
	DeleteItem(fridgeID, itemID string) error
}

// Recorder receives one usage record per applied plan entry. Recorder errors
// are logged by the applier and never propagated.
type Recorder interface {
	Record(rec models.UsageRecord) error
}

// Applier walks a plan and drives the store and recorder
type Applier struct {
	store    ItemStore
	recorder Recorder
	logger   *logger.Logger
}

// NewApplier creates an applier over the given store and recorder
func NewApplier(store ItemStore, recorder Recorder) *Applier {
	return &Applier{
		store:    store,
		recorder: recorder,
		logger:   logger.New("consume"),
	}
}

// Apply walks the plan entries in order: fully consumed items are deleted,
// others have their quantity reduced, and each applied entry emits one usage
// record. There is no cross-entry transaction: a store failure stops the
// walk, earlier entries stay applied, and the returned count tells the
// caller how many were, so it can re-fetch and reconcile.
func (a *Applier) Apply(ctx context.Context, plan *Plan, contextLabel string) (int, error) {
	applied := 0
	for _, entry := range plan.Entries {
		if err := ctx.Err(); err != nil {
			return applied, err
		}

		var err error
		if entry.FullyConsumed {
			err = a.store.DeleteItem(entry.Item.FridgeID, entry.Item.ID)
		} else {
			quantity := entry.Resulting
			if quantity < 0 {
				quantity = 0
			}
			err = a.store.SetItemQuantity(entry.Item.FridgeID, entry.Item.ID, quantity)
		}
		if err != nil {
			return applied, fmt.Errorf("failed to apply deduction for %q after %d of %d entries: %w",
				entry.Item.Name, applied, len(plan.Entries), err)
		}
		applied++

		rec := models.UsageRecord{
			FridgeID: entry.Item.FridgeID,
			ItemID:   entry.Item.ID,
			ItemName: entry.Item.Name,
			Quantity: entry.Requested,
			Unit:     entry.Item.Unit,
			Context:  contextLabel,
			At:       time.Now(),
		}
		if err := a.recorder.Record(rec); err != nil {
			a.logger.Error("Failed to record usage for %s: %v", entry.Item.Name, err)
		}
	}
	return applied, nil
}
