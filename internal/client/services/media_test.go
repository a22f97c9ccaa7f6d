package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/adboard/internal/client/api"
	"github.com/dmitrijs2005/adboard/internal/client/models"
)

func TestUpload_AppendsAndHoldsProgress(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{
		UploadRet:      []models.MediaItem{{ID: 2, OriginalName: "b.png", MetricID: 5}},
		ProgressScript: []int{0, 50, 100},
	}
	s := NewMediaService(f, nil)
	s.items[5] = []models.MediaItem{{ID: 1, OriginalName: "a.png", MetricID: 5}}

	var reported []int
	created, err := s.Upload(ctx, 5, []api.File{{Name: "b.png"}}, func(pct int) {
		reported = append(reported, pct)
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, []int{0, 50, 100}, reported)

	// The earlier item survives; the new one is appended after it.
	items := s.Items(5)
	require.Len(t, items, 2)
	assert.Equal(t, "a.png", items[0].OriginalName)
	assert.Equal(t, "b.png", items[1].OriginalName)

	pct, ok := s.Progress(5)
	require.True(t, ok)
	assert.Equal(t, 100, pct)

	s.ClearProgress(5)
	_, ok = s.Progress(5)
	assert.False(t, ok)
}

func TestActiveProgress(t *testing.T) {
	f := &fakeClient{}
	s := NewMediaService(f, nil)

	_, ok := s.ActiveProgress()
	assert.False(t, ok, "no upload, no progress")

	s.mu.Lock()
	s.progress[5] = 42
	s.mu.Unlock()

	pct, ok := s.ActiveProgress()
	require.True(t, ok)
	assert.Equal(t, 42, pct)

	// A second, less advanced upload takes precedence.
	s.mu.Lock()
	s.progress[6] = 10
	s.mu.Unlock()

	pct, ok = s.ActiveProgress()
	require.True(t, ok)
	assert.Equal(t, 10, pct)

	s.ClearProgress(5)
	s.ClearProgress(6)
	_, ok = s.ActiveProgress()
	assert.False(t, ok)
}

func TestUpload_FailureDropsProgress(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{
		UploadErr:      &api.RequestError{StatusCode: 413, Message: "file too large"},
		ProgressScript: []int{0, 30},
	}
	s := NewMediaService(f, nil)

	_, err := s.Upload(ctx, 5, []api.File{{Name: "huge.bin"}}, nil)
	require.Error(t, err)

	_, ok := s.Progress(5)
	assert.False(t, ok, "a failed upload must not leave a stale progress entry")
	assert.Empty(t, s.Items(5))
}

func TestRefresh_ReplacesSequence(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{MediaRet: map[int64][]models.MediaItem{
		5: {{ID: 10, MetricID: 5}, {ID: 11, MetricID: 5}},
	}}
	s := NewMediaService(f, nil)
	s.items[5] = []models.MediaItem{{ID: 99, MetricID: 5}}

	require.NoError(t, s.Refresh(ctx, 5))
	items := s.Items(5)
	require.Len(t, items, 2)
	assert.Equal(t, int64(10), items[0].ID)
}

func TestRefreshAll_PopulatesEveryMetric(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{MediaRet: map[int64][]models.MediaItem{
		1: {{ID: 10, MetricID: 1}},
		2: {},
		3: {{ID: 30, MetricID: 3}, {ID: 31, MetricID: 3}},
	}}
	s := NewMediaService(f, nil)

	require.NoError(t, s.RefreshAll(ctx, []int64{1, 2, 3}))
	assert.Len(t, s.Items(1), 1)
	assert.Empty(t, s.Items(2))
	assert.Len(t, s.Items(3), 2)
}

func TestRefreshAll_ReturnsFirstError(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{MediaErr: errors.New("boom")}
	s := NewMediaService(f, nil)

	err := s.RefreshAll(ctx, []int64{1, 2})
	require.Error(t, err)
}

func TestOpen_SetsViewerWithTokenizedURL(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{ProbeRet: "image/png"}
	s := NewMediaService(f, nil)

	v, err := s.Open(ctx, models.MediaItem{ID: 7, OriginalName: "poster.png"})
	require.NoError(t, err)
	assert.True(t, v.IsImage())
	assert.False(t, v.IsVideo())
	assert.Equal(t, "http://fake/media/7/file?token=tok", v.URL)

	cur := s.Current()
	require.NotNil(t, cur)
	assert.Equal(t, int64(7), cur.Item.ID)

	s.CloseViewer()
	assert.Nil(t, s.Current())
}

func TestOpen_ProbeFailureLeavesViewerClosed(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{ProbeErr: &api.RequestError{StatusCode: 404, Message: "not found"}}
	s := NewMediaService(f, nil)

	_, err := s.Open(ctx, models.MediaItem{ID: 7})
	require.Error(t, err)
	assert.Nil(t, s.Current())
}

func TestViewer_ContentTypeKinds(t *testing.T) {
	assert.True(t, Viewer{ContentType: "video/mp4"}.IsVideo())
	assert.False(t, Viewer{ContentType: "video/mp4"}.IsImage())
	assert.False(t, Viewer{ContentType: "application/pdf"}.IsImage())
	assert.False(t, Viewer{ContentType: "application/pdf"}.IsVideo())
}

func TestShareCurrent(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{ProbeRet: "image/png"}
	s := NewMediaService(f, nil)

	// Nothing open yet.
	assert.False(t, s.ShareCurrent(ctx))

	_, err := s.Open(ctx, models.MediaItem{ID: 7})
	require.NoError(t, err)

	orig := writeClipboard
	defer func() { writeClipboard = orig }()

	var copied string
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	assert.True(t, s.ShareCurrent(ctx))
	assert.Equal(t, "http://fake/media/7/file?token=tok", copied)

	writeClipboard = func(string) error { return errors.New("no display") }
	assert.False(t, s.ShareCurrent(ctx))
}
