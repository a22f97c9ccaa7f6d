package services

import (
	"context"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/adboard/internal/client/api"
	"github.com/dmitrijs2005/adboard/internal/client/models"
	"github.com/dmitrijs2005/adboard/internal/logging"
)

// writeClipboard is a test seam for the clipboard dependency.
var writeClipboard = clipboard.WriteAll

// prefetchConcurrency bounds how many media lists are fetched in
// parallel after a metric refresh.
const prefetchConcurrency = 4

// Viewer describes the single media item currently shown by the reel.
type Viewer struct {
	Item        models.MediaItem
	ContentType string
	URL         string
}

// IsImage reports whether the probed content type is an image.
func (v Viewer) IsImage() bool { return strings.HasPrefix(v.ContentType, "image/") }

// IsVideo reports whether the probed content type is a video.
func (v Viewer) IsVideo() bool { return strings.HasPrefix(v.ContentType, "video/") }

// MediaService is the view-model for media attachments: a per-metric map
// of uploaded items in insertion order, per-metric upload progress, and
// the reel viewer holding at most one current item.
//
// Presence of an item in the map does not imply it still exists
// server-side beyond the last fetch; there is no live sync.
type MediaService struct {
	client api.Client
	log    logging.Logger

	mu       sync.RWMutex
	items    map[int64][]models.MediaItem
	progress map[int64]int
	viewer   *Viewer
}

func NewMediaService(client api.Client, log logging.Logger) *MediaService {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &MediaService{
		client:   client,
		log:      log,
		items:    make(map[int64][]models.MediaItem),
		progress: make(map[int64]int),
	}
}

// Upload sends all files in one multipart request and appends the
// returned items to the metric's sequence, preserving existing entries.
// Progress is tracked in the per-metric map; on completion it stays at
// 100 until the UI clears it (cosmetic decay). onProgress, when non-nil,
// is additionally invoked with the same percentages.
func (s *MediaService) Upload(ctx context.Context, metricID int64, files []api.File, onProgress api.ProgressFunc) ([]models.MediaItem, error) {
	track := func(pct int) {
		s.mu.Lock()
		s.progress[metricID] = pct
		s.mu.Unlock()
		if onProgress != nil {
			onProgress(pct)
		}
	}

	created, err := s.client.UploadMedia(ctx, metricID, files, track)
	if err != nil {
		s.mu.Lock()
		delete(s.progress, metricID)
		s.mu.Unlock()
		s.log.Warn(ctx, "media upload failed", "metric_id", metricID, "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.items[metricID] = append(s.items[metricID], created...)
	s.progress[metricID] = 100
	s.mu.Unlock()
	return created, nil
}

// Refresh replaces the metric's media sequence with the server's list.
func (s *MediaService) Refresh(ctx context.Context, metricID int64) error {
	list, err := s.client.ListMedia(ctx, metricID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items[metricID] = list
	s.mu.Unlock()
	return nil
}

// RefreshAll prefetches media lists for the given metrics with bounded
// concurrency. The first error wins but does not stop other fetches from
// populating the map.
func (s *MediaService) RefreshAll(ctx context.Context, metricIDs []int64) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(prefetchConcurrency)
	for _, id := range metricIDs {
		id := id
		g.Go(func() error { return s.Refresh(ctx, id) })
	}
	return g.Wait()
}

// Items returns a copy of the metric's media sequence.
func (s *MediaService) Items(metricID int64) []models.MediaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MediaItem, len(s.items[metricID]))
	copy(out, s.items[metricID])
	return out
}

// Progress returns the metric's upload progress, if one is tracked.
func (s *MediaService) Progress(metricID int64) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pct, ok := s.progress[metricID]
	return pct, ok
}

// ActiveProgress returns the percentage of the upload currently in
// flight, when any is tracked. With several tracked at once the lowest
// one wins, so the bar never skips ahead of an unfinished upload.
func (s *MediaService) ActiveProgress() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pct, found := 0, false
	for _, p := range s.progress {
		if !found || p < pct {
			pct = p
			found = true
		}
	}
	return pct, found
}

// ClearProgress drops the progress entry once the UI is done showing it.
func (s *MediaService) ClearProgress(metricID int64) {
	s.mu.Lock()
	delete(s.progress, metricID)
	s.mu.Unlock()
}

// Open probes the item's content type and makes it the viewer's current
// item. The returned Viewer carries the tokenized URL for embedding.
func (s *MediaService) Open(ctx context.Context, item models.MediaItem) (Viewer, error) {
	ct, err := s.client.ProbeMedia(ctx, item.ID)
	if err != nil {
		return Viewer{}, err
	}
	v := Viewer{Item: item, ContentType: ct, URL: s.client.MediaFileURL(item.ID, true)}
	s.mu.Lock()
	s.viewer = &v
	s.mu.Unlock()
	return v, nil
}

// Current returns the item the viewer is showing, or nil.
func (s *MediaService) Current() *Viewer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewer
}

// CloseViewer clears the current item.
func (s *MediaService) CloseViewer() {
	s.mu.Lock()
	s.viewer = nil
	s.mu.Unlock()
}

// ShareCurrent copies the current item's tokenized URL to the system
// clipboard. A non-critical side effect: failure is unobservable beyond
// the returned flag and a log line.
func (s *MediaService) ShareCurrent(ctx context.Context) bool {
	v := s.Current()
	if v == nil {
		return false
	}
	if err := writeClipboard(v.URL); err != nil {
		s.log.Debug(ctx, "clipboard write failed", "error", err)
		return false
	}
	return true
}
