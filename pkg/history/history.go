// Package history is the usage-history audit sink. Records are append-only;
// a write failure never fails the consumption that produced it.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/korjavin/fridgechef/pkg/storage"
)

// Service provides usage-history recording and retrieval
type Service struct {
	store  *storage.Store
	logger *logger.Logger
}

// New creates a new history service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("history"),
	}
}

func usagePrefix(fridgeID string) string {
	return fmt.Sprintf("usage:%s:", fridgeID)
}

// Record appends one usage record. Implements consume.Recorder.
func (s *Service) Record(rec models.UsageRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.At.IsZero() {
		rec.At = time.Now()
	}
	key := fmt.Sprintf("usage:%s:%d", rec.FridgeID, rec.At.UnixNano())
	if err := s.store.Set(key, rec); err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}
	return nil
}

// ForFridge returns up to limit usage records for a fridge, newest first.
// limit <= 0 returns everything.
func (s *Service) ForFridge(fridgeID string, limit int) ([]models.UsageRecord, error) {
	var records []models.UsageRecord
	err := s.store.Each(usagePrefix(fridgeID), func(key string, data []byte) error {
		var rec models.UsageRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			s.logger.Error("Skipping corrupt usage record %s: %v", key, err)
			return nil
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list usage records: %w", err)
	}

	// Keys are timestamp-ordered ascending; reverse for newest first
	out := make([]models.UsageRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		out = append(out, records[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
