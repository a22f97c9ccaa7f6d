package api

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/adboard/internal/client/api/apitest"
	"github.com/dmitrijs2005/adboard/internal/client/models"
)

func setupMediaTest(t *testing.T) (*apitest.Server, *HTTPClient, models.Metric) {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	token := srv.SeedUser("u@example.org", "pw")
	c := NewHTTPClient(srv.URL(), staticToken(token))
	m := srv.SeedMetric(models.CreateMetricData{CampaignName: "Reel", Date: "2025-05-01"})
	return srv, c, m
}

func TestUploadMedia_SingleRequestForAllFiles(t *testing.T) {
	ctx := context.Background()
	srv, c, m := setupMediaTest(t)

	files := []File{
		{Name: "banner.png", Data: []byte("png-bytes")},
		{Name: "clip.mp4", Data: []byte("mp4-bytes")},
	}
	items, err := c.UploadMedia(ctx, m.ID, files, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, srv.UploadCalls())

	for _, it := range items {
		assert.Equal(t, m.ID, it.MetricID)
		assert.NotZero(t, it.ID)
		assert.NotEmpty(t, it.URL)
	}
	assert.Equal(t, "banner.png", items[0].OriginalName)
	assert.Equal(t, "clip.mp4", items[1].OriginalName)
}

func TestUploadMedia_ProgressMonotonicAndTerminal(t *testing.T) {
	ctx := context.Background()
	_, c, m := setupMediaTest(t)

	payload := make([]byte, 256*1024)
	var reported []int
	_, err := c.UploadMedia(ctx, m.ID, []File{{Name: "big.bin", Data: payload}}, func(pct int) {
		reported = append(reported, pct)
	})
	require.NoError(t, err)

	require.NotEmpty(t, reported)
	for i := 1; i < len(reported); i++ {
		assert.GreaterOrEqual(t, reported[i], reported[i-1], "progress must never decrease")
	}
	assert.Equal(t, 100, reported[len(reported)-1])
}

func TestUploadMedia_NoFilesIsNoop(t *testing.T) {
	srv, c, m := setupMediaTest(t)

	items, err := c.UploadMedia(context.Background(), m.ID, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, items)
	assert.Zero(t, srv.UploadCalls())
}

func TestListMedia_PreservesUploadOrder(t *testing.T) {
	ctx := context.Background()
	_, c, m := setupMediaTest(t)

	_, err := c.UploadMedia(ctx, m.ID, []File{{Name: "a.png", Data: []byte("a")}}, nil)
	require.NoError(t, err)
	_, err = c.UploadMedia(ctx, m.ID, []File{{Name: "b.png", Data: []byte("b")}}, nil)
	require.NoError(t, err)

	items, err := c.ListMedia(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a.png", items[0].OriginalName)
	assert.Equal(t, "b.png", items[1].OriginalName)
}

func TestProbeMedia(t *testing.T) {
	ctx := context.Background()
	_, c, m := setupMediaTest(t)

	items, err := c.UploadMedia(ctx, m.ID, []File{{Name: "poster.png", Data: []byte("x")}}, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)

	ct, err := c.ProbeMedia(ctx, items[0].ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ct, "image/"), "got content type %q", ct)
}

func TestMediaFileURL(t *testing.T) {
	c := NewHTTPClient("http://example.com/", staticToken("tok"))

	assert.Equal(t, "http://example.com/media/5/file", c.MediaFileURL(5, false))
	assert.Equal(t, "http://example.com/media/5/file?token=tok", c.MediaFileURL(5, true))

	anon := NewHTTPClient("http://example.com", staticToken(""))
	assert.Equal(t, "http://example.com/media/5/file", anon.MediaFileURL(5, true))
}
