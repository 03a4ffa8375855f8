package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/fenilmodi00/ipo-dashboard/models"
	"github.com/fenilmodi00/ipo-dashboard/shared"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DatasetSnapshot is a read-only view of the record collection at one revision.
type DatasetSnapshot struct {
	Records  []models.IPORecord
	Revision uuid.UUID
	LoadedAt time.Time
	Source   string
}

// DatasetStore holds the authoritative record collection. The collection is only
// ever swapped wholesale; snapshots handed out are never mutated afterwards.
type DatasetStore struct {
	mutex    sync.RWMutex
	snapshot DatasetSnapshot
}

// NewDatasetStore creates a store seeded with records.
func NewDatasetStore(records []models.IPORecord, source string) (*DatasetStore, error) {
	store := &DatasetStore{}
	if err := store.Replace(records, source); err != nil {
		return nil, err
	}
	return store, nil
}

// Snapshot returns the current collection and its revision.
func (s *DatasetStore) Snapshot() DatasetSnapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.snapshot
}

// Replace validates records and installs them as the new collection under a
// fresh revision. On validation failure the current collection is kept.
func (s *DatasetStore) Replace(records []models.IPORecord, source string) error {
	if err := ValidateRecords(records); err != nil {
		return err
	}

	owned := make([]models.IPORecord, len(records))
	copy(owned, records)

	s.mutex.Lock()
	s.snapshot = DatasetSnapshot{
		Records:  owned,
		Revision: uuid.New(),
		LoadedAt: time.Now(),
		Source:   source,
	}
	revision := s.snapshot.Revision
	s.mutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"component": "DatasetStore",
		"records":   len(owned),
		"revision":  revision,
		"source":    source,
	}).Info("Dataset replaced")

	return nil
}

// ValidateRecords checks the data-quality preconditions the query layer relies on.
func ValidateRecords(records []models.IPORecord) error {
	var failures []error

	for i, r := range records {
		if err := validateRecord(r); err != nil {
			failures = append(failures, fmt.Errorf("record %d (%s): %w", i, r.Ticker, err))
		}
	}

	if len(failures) == 0 {
		return nil
	}

	return shared.NewServiceError(
		shared.ErrorCategoryValidation,
		"INVALID_DATASET",
		shared.BuildValidationErrorSummary(len(records)-len(failures), failures),
		"DatasetStore",
		"ValidateRecords",
		false,
		failures[0],
	).WithDetails(map[string]interface{}{
		"invalid_count": len(failures),
		"total_count":   len(records),
	})
}

func validateRecord(r models.IPORecord) error {
	if r.Ticker == "" {
		return fmt.Errorf("ticker is required")
	}
	if r.Company == "" {
		return fmt.Errorf("company is required")
	}
	if r.Year <= 0 {
		return fmt.Errorf("year is required")
	}

	prices := []struct {
		name  string
		value *float64
	}{
		{"ipoPrice", r.IPOPrice},
		{"currentPrice", r.CurrentPrice},
		{"firstDayPrice", r.FirstDayPrice},
		{"acquisitionPrice", r.AcquisitionPrice},
	}
	for _, price := range prices {
		if price.value != nil && *price.value < 0 {
			return fmt.Errorf("%s must not be negative", price.name)
		}
	}
	return nil
}
