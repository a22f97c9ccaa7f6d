// Package services contains the application services backing the TUI:
// the metric list view-model and the media attachment view-model. They
// own all transient client-side state; the server stays authoritative.
package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/adboard/internal/client/api"
	"github.com/dmitrijs2005/adboard/internal/client/models"
	"github.com/dmitrijs2005/adboard/internal/logging"
)

// State is the metric list lifecycle. The list re-enters StateLoading
// whenever the filter changes or a mutation completes.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateFailed
)

// MetricService is the view-model for the metric list.
//
// Contract:
//   - Refresh replaces the list wholesale; a failed refresh keeps the
//     previously loaded list and records the error string.
//   - Create/Update/Delete issue exactly one remote call each and, on
//     success, trigger a full refresh with the current filter.
//   - There is no client-side validation beyond what the input widgets
//     enforce; the server validates authoritatively.
//
// Methods are safe to call from tea.Cmd goroutines.
type MetricService struct {
	client api.Client
	media  *MediaService
	log    logging.Logger

	mu      sync.RWMutex
	state   State
	filter  string
	metrics []models.Metric
	lastErr string
}

// NewMetricService builds the view-model. media may be nil when the
// caller never uses CreateWithMedia.
func NewMetricService(client api.Client, media *MediaService, log logging.Logger) *MetricService {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &MetricService{client: client, media: media, log: log}
}

// Refresh fetches the full list matching filter and replaces local state.
func (s *MetricService) Refresh(ctx context.Context, filter string) error {
	s.mu.Lock()
	s.state = StateLoading
	s.filter = filter
	s.mu.Unlock()

	list, err := s.client.ListMetrics(ctx, filter)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// Keep whatever was displayed before the failed fetch.
		s.state = StateFailed
		s.lastErr = api.ErrorMessage(err, "Failed to load metrics")
		s.log.Warn(ctx, "metric refresh failed", "filter", filter, "error", err)
		return err
	}
	s.state = StateLoaded
	s.lastErr = ""
	s.metrics = list
	return nil
}

// Create issues one create call and refreshes on success. On failure the
// caller keeps its form input; only the error string is recorded.
func (s *MetricService) Create(ctx context.Context, data models.CreateMetricData) error {
	return s.CreateWithMedia(ctx, data, nil, nil)
}

// CreateWithMedia creates a metric and, when files are given, uploads
// them in a single request scoped to the new id. Exactly one create call
// and at most one upload call are made.
func (s *MetricService) CreateWithMedia(ctx context.Context, data models.CreateMetricData, files []api.File, onProgress api.ProgressFunc) error {
	created, err := s.client.CreateMetric(ctx, data)
	if err != nil {
		s.setError(api.ErrorMessage(err, "Failed to save metric"))
		return err
	}

	if len(files) > 0 && s.media != nil {
		if _, err := s.media.Upload(ctx, created.ID, files, onProgress); err != nil {
			// The metric exists, so refresh to show the new row, then
			// surface the upload failure on top.
			_ = s.Refresh(ctx, s.Filter())
			s.setError(api.ErrorMessage(err, "Failed to upload media"))
			return err
		}
	}
	return s.Refresh(ctx, s.Filter())
}

// Update issues one update call and refreshes on success.
func (s *MetricService) Update(ctx context.Context, id int64, data models.CreateMetricData) error {
	if _, err := s.client.UpdateMetric(ctx, id, data); err != nil {
		s.setError(api.ErrorMessage(err, "Failed to save metric"))
		return err
	}
	return s.Refresh(ctx, s.Filter())
}

// Delete issues one delete call and refreshes on success.
func (s *MetricService) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteMetric(ctx, id); err != nil {
		s.setError(api.ErrorMessage(err, "Failed to delete metric"))
		return err
	}
	return s.Refresh(ctx, s.Filter())
}

// Metrics returns a copy of the current list.
func (s *MetricService) Metrics() []models.Metric {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Metric, len(s.metrics))
	copy(out, s.metrics)
	return out
}

// Summary recomputes the dashboard aggregates from the current list.
func (s *MetricService) Summary() models.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Summarize(s.metrics)
}

// State returns the current lifecycle state.
func (s *MetricService) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Filter returns the filter used by the last Refresh.
func (s *MetricService) Filter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// LastError returns the display string of the last failure, empty after
// a successful refresh.
func (s *MetricService) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearError dismisses the error banner.
func (s *MetricService) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *MetricService) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}
