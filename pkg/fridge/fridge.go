// Package fridge manages fridges and their inventory items. The matching
// engine consumes read snapshots produced here and hands intended mutations
// back through the consume.ItemStore methods.
package fridge

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/korjavin/fridgechef/pkg/storage"
)

// Service provides fridge and item management
type Service struct {
	store  *storage.Store
	logger *logger.Logger
}

// New creates a new fridge service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("fridge"),
	}
}

func fridgeKey(id string) string { return "fridge:" + id }

func itemKey(fridgeID, itemID string) string {
	return fmt.Sprintf("item:%s:%s", fridgeID, itemID)
}

func itemPrefix(fridgeID string) string {
	return fmt.Sprintf("item:%s:", fridgeID)
}

// GetFridge retrieves a fridge, creating an empty one on first use
func (s *Service) GetFridge(id string) (*models.Fridge, error) {
	var f models.Fridge
	err := s.store.Get(fridgeKey(id), &f)
	if err != nil {
		f = models.Fridge{
			ID:          id,
			Name:        id,
			CreatedAt:   time.Now(),
			LastUpdated: time.Now(),
		}
		if err := s.store.Set(fridgeKey(id), f); err != nil {
			return nil, fmt.Errorf("failed to create fridge: %w", err)
		}
	}
	return &f, nil
}

// touch bumps the fridge's LastUpdated stamp; failures are logged only
func (s *Service) touch(fridgeID string) {
	f, err := s.GetFridge(fridgeID)
	if err != nil {
		s.logger.Error("Failed to load fridge %s: %v", fridgeID, err)
		return
	}
	f.LastUpdated = time.Now()
	if err := s.store.Set(fridgeKey(fridgeID), f); err != nil {
		s.logger.Error("Failed to touch fridge %s: %v", fridgeID, err)
	}
}

// Items returns a snapshot of all items in a fridge. The returned slice is
// owned by the caller; the matching engine treats it as immutable.
func (s *Service) Items(fridgeID string) ([]models.FridgeItem, error) {
	items := make([]models.FridgeItem, 0)
	err := s.store.Each(itemPrefix(fridgeID), func(key string, data []byte) error {
		var item models.FridgeItem
		if err := json.Unmarshal(data, &item); err != nil {
			s.logger.Error("Skipping corrupt item %s: %v", key, err)
			return nil
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// GetItem retrieves one item
func (s *Service) GetItem(fridgeID, itemID string) (*models.FridgeItem, error) {
	var item models.FridgeItem
	if err := s.store.Get(itemKey(fridgeID, itemID), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// AddItem adds a new item to the fridge and returns it
func (s *Service) AddItem(fridgeID, name string, quantity float64, unit, expiryDate string) (*models.FridgeItem, error) {
	if quantity < 0 {
		quantity = 0
	}
	item := models.FridgeItem{
		ID:         uuid.NewString(),
		FridgeID:   fridgeID,
		Name:       name,
		Quantity:   quantity,
		Unit:       unit,
		ExpiryDate: expiryDate,
	}
	if err := s.store.Set(itemKey(fridgeID, item.ID), item); err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}
	s.touch(fridgeID)
	return &item, nil
}

// UpdateItem overwrites an existing item
func (s *Service) UpdateItem(item models.FridgeItem) error {
	if _, err := s.GetItem(item.FridgeID, item.ID); err != nil {
		return err
	}
	if item.Quantity < 0 {
		item.Quantity = 0
	}
	if err := s.store.Set(itemKey(item.FridgeID, item.ID), item); err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	s.touch(item.FridgeID)
	return nil
}

// SetItemQuantity sets the remaining quantity of an item. Implements
// consume.ItemStore.
func (s *Service) SetItemQuantity(fridgeID, itemID string, quantity float64) error {
	item, err := s.GetItem(fridgeID, itemID)
	if err != nil {
		return err
	}
	if quantity < 0 {
		quantity = 0
	}
	item.Quantity = quantity
	if err := s.store.Set(itemKey(fridgeID, itemID), item); err != nil {
		return fmt.Errorf("failed to set quantity: %w", err)
	}
	s.touch(fridgeID)
	return nil
}

// DeleteItem removes an item from the fridge. Implements consume.ItemStore.
func (s *Service) DeleteItem(fridgeID, itemID string) error {
	if err := s.store.Delete(itemKey(fridgeID, itemID)); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	s.touch(fridgeID)
	return nil
}
