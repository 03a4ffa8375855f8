package services

import (
	"context"
	"time"

	"github.com/fenilmodi00/ipo-dashboard/models"
	"github.com/fenilmodi00/ipo-dashboard/shared"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EvaluateRequest is one recomputation trigger: search box contents plus sort selection.
type EvaluateRequest struct {
	Search    string
	Field     models.SortField
	Direction models.SortDirection
}

// DashboardView is everything the table and autocomplete need for one request.
// Views may be shared through the cache and must not be modified.
type DashboardView struct {
	Records     []models.IPORow     `json:"records"`
	Suggestions []models.Suggestion `json:"suggestions"`
	Query       string              `json:"query"`
	Count       int                 `json:"count"`
	Total       int                 `json:"total"`
	Revision    uuid.UUID           `json:"revision"`
}

// DashboardService runs the parse → filter → sort pipeline and the suggestion
// generator over the current dataset snapshot.
type DashboardService struct {
	store   *DatasetStore
	ceiling int
	now     func() time.Time
	metrics *shared.ServiceMetrics
}

// NewDashboardService creates a dashboard service. ceiling bounds open-ended year ranges.
func NewDashboardService(store *DatasetStore, ceiling int) *DashboardService {
	return &DashboardService{
		store:   store,
		ceiling: ceiling,
		now:     time.Now,
		metrics: shared.NewServiceMetrics("Dashboard_Service"),
	}
}

// WithClock replaces the wall clock used for "current year" reads.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Store returns the dataset store
func (s *DashboardService) Store() *DatasetStore {
	return s.store
}

// CurrentYear is read on every call so year suggestions follow date rollovers.
func (s *DashboardService) CurrentYear() int {
	return s.now().Year()
}

// Ceiling returns the open-range ceiling year
func (s *DashboardService) Ceiling() int {
	return s.ceiling
}

// Evaluate filters and sorts the current dataset and generates suggestions for req.
func (s *DashboardService) Evaluate(ctx context.Context, req EvaluateRequest) (*DashboardView, error) {
	return s.evaluateSnapshot(ctx, s.store.Snapshot(), req)
}

func (s *DashboardService) evaluateSnapshot(ctx context.Context, snapshot DatasetSnapshot, req EvaluateRequest) (*DashboardView, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		s.metrics.RecordRequest(false, time.Since(start))
		return nil, err
	}

	if req.Field == "" {
		req.Field = models.SortYear
	}
	if req.Direction == "" {
		req.Direction = models.Descending
	}

	query := ParseQuery(req.Search, s.ceiling)
	filtered := FilterRecords(snapshot.Records, query)
	sorted := SortRecords(filtered, req.Field, req.Direction)
	suggestions := GenerateSuggestions(req.Search, snapshot.Records, s.now())

	s.metrics.RecordRequest(true, time.Since(start))

	logrus.WithFields(logrus.Fields{
		"component": "DashboardService",
		"query":     query.String(),
		"sort":      req.Field,
		"direction": req.Direction,
		"matched":   len(sorted),
		"duration":  time.Since(start),
	}).Debug("Evaluated dashboard view")

	return &DashboardView{
		Records:     models.Rows(sorted),
		Suggestions: suggestions,
		Query:       query.String(),
		Count:       len(sorted),
		Total:       len(snapshot.Records),
		Revision:    snapshot.Revision,
	}, nil
}

// Suggestions returns autocomplete entries for raw against the current dataset.
func (s *DashboardService) Suggestions(raw string) []models.Suggestion {
	return GenerateSuggestions(raw, s.store.Snapshot().Records, s.now())
}

// YearlyCounts returns the bar chart series for the whole dataset.
func (s *DashboardService) YearlyCounts() []models.YearCount {
	return YearlyCounts(s.store.Snapshot().Records, s.ceiling)
}

// Scatter returns scatter plot points for the records matching search.
func (s *DashboardService) Scatter(search string, xField, yField models.SortField) ([]models.ScatterPoint, error) {
	filtered := FilterRecords(s.store.Snapshot().Records, ParseQuery(search, s.ceiling))
	points, err := ScatterPoints(filtered, xField, yField)
	if err != nil {
		return nil, shared.NewServiceError(shared.ErrorCategoryValidation, "INVALID_SCATTER_AXES",
			err.Error(), "DashboardService", "Scatter", false, err)
	}
	return points, nil
}

// ReplaceDataset swaps in a new authoritative collection.
func (s *DashboardService) ReplaceDataset(records []models.IPORecord, source string) error {
	if err := s.store.Replace(records, source); err != nil {
		s.metrics.IncrementCounter("dataset_replace_rejected")
		return err
	}
	s.metrics.IncrementCounter("dataset_replaced")
	return nil
}

// GetServiceMetrics returns the evaluation metrics
func (s *DashboardService) GetServiceMetrics() *shared.ServiceMetrics {
	return s.metrics
}
