package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/adboard/internal/client/api"
	"github.com/dmitrijs2005/adboard/internal/client/models"
)

// fakeClient implements api.Client for view-model unit tests.
type fakeClient struct {
	mu sync.Mutex

	// ListMetrics
	ListRet     []models.Metric
	ListErr     error
	ListCalls   int
	LastFilter  string
	ListFilters []string

	// CreateMetric
	CreateRet   *models.Metric
	CreateErr   error
	CreateCalls int
	LastCreate  models.CreateMetricData

	// UpdateMetric
	UpdateErr   error
	UpdateCalls int
	LastUpdate  int64

	// DeleteMetric
	DeleteErr   error
	DeleteCalls int
	LastDelete  int64

	// UploadMedia
	UploadRet      []models.MediaItem
	UploadErr      error
	UploadCalls    int
	LastUploadID   int64
	ProgressScript []int

	// ListMedia
	MediaRet map[int64][]models.MediaItem
	MediaErr error

	// ProbeMedia
	ProbeRet string
	ProbeErr error
}

func (f *fakeClient) Login(context.Context, models.Credentials) (*models.AuthResponse, error) {
	return nil, nil
}

func (f *fakeClient) Signup(context.Context, models.Credentials) (*models.AuthResponse, error) {
	return nil, nil
}

func (f *fakeClient) ListMetrics(_ context.Context, filter string) ([]models.Metric, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	f.LastFilter = filter
	f.ListFilters = append(f.ListFilters, filter)
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]models.Metric(nil), f.ListRet...), nil
}

func (f *fakeClient) CreateMetric(_ context.Context, data models.CreateMetricData) (*models.Metric, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	f.LastCreate = data
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	return f.CreateRet, nil
}

func (f *fakeClient) UpdateMetric(_ context.Context, id int64, data models.CreateMetricData) (*models.Metric, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	f.LastUpdate = id
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	m := models.Metric{ID: id, CampaignName: data.CampaignName}
	return &m, nil
}

func (f *fakeClient) DeleteMetric(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	f.LastDelete = id
	return f.DeleteErr
}

func (f *fakeClient) UploadMedia(_ context.Context, metricID int64, files []api.File, onProgress api.ProgressFunc) ([]models.MediaItem, error) {
	f.mu.Lock()
	f.UploadCalls++
	f.LastUploadID = metricID
	script := f.ProgressScript
	f.mu.Unlock()

	for _, pct := range script {
		if onProgress != nil {
			onProgress(pct)
		}
	}
	if f.UploadErr != nil {
		return nil, f.UploadErr
	}
	return append([]models.MediaItem(nil), f.UploadRet...), nil
}

func (f *fakeClient) ListMedia(_ context.Context, metricID int64) ([]models.MediaItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.MediaErr != nil {
		return nil, f.MediaErr
	}
	return append([]models.MediaItem(nil), f.MediaRet[metricID]...), nil
}

func (f *fakeClient) ProbeMedia(context.Context, int64) (string, error) {
	return f.ProbeRet, f.ProbeErr
}

func (f *fakeClient) MediaFileURL(mediaID int64, withToken bool) string {
	u := fmt.Sprintf("http://fake/media/%d/file", mediaID)
	if withToken {
		u += "?token=tok"
	}
	return u
}
