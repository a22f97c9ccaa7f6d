package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/adboard/internal/client/models"
)

// mediaListResponse matches the `{"files": [...]}` envelope used by the
// media endpoints.
type mediaListResponse struct {
	Files []models.MediaItem `json:"files"`
}

// UploadMedia attaches files to a metric in a single multipart request.
// onProgress (optional) receives 0–100 as the body is transferred. There
// is no retry and no resume: on failure the whole upload is restarted by
// the caller.
func (c *HTTPClient) UploadMedia(ctx context.Context, metricID int64, files []File, onProgress ProgressFunc) ([]models.MediaItem, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("building multipart body: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("building multipart body: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}

	body := newProgressReader(&buf, int64(buf.Len()), onProgress)
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/metrics/%d/media", metricID), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.ContentLength = int64(buf.Len())

	var out mediaListResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// ListMedia fetches the media attached to a metric, in server order.
func (c *HTTPClient) ListMedia(ctx context.Context, metricID int64) ([]models.MediaItem, error) {
	var out mediaListResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/metrics/%d/media", metricID), nil, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// ProbeMedia issues a HEAD request against the raw media endpoint and
// returns the Content-Type header. The reel viewer uses it to pick an
// image or video presentation before fetching any bytes.
func (c *HTTPClient) ProbeMedia(ctx context.Context, mediaID int64) (string, error) {
	req, err := c.newRequest(ctx, http.MethodHead, fmt.Sprintf("/media/%d/file", mediaID), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// HEAD responses carry no body, so no server message either.
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return "", &RequestError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return resp.Header.Get("Content-Type"), nil
}

// MediaFileURL returns the raw media URL, with the bearer token appended
// as a `token` query parameter when withToken is set. Direct-embedding
// contexts (external players, share links) cannot send headers.
func (c *HTTPClient) MediaFileURL(mediaID int64, withToken bool) string {
	u := fmt.Sprintf("%s/media/%d/file", c.baseURL, mediaID)
	if !withToken {
		return u
	}
	t := c.tokens.Token()
	if t == "" {
		return u
	}
	return u + "?" + url.Values{"token": {t}}.Encode()
}
