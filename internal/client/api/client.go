// Package api implements the HTTP client for the campaign analytics
// backend. Every method returns the parsed success payload or an error;
// non-2xx responses surface as *RequestError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/adboard/internal/client/models"
	"github.com/dmitrijs2005/adboard/internal/logging"
)

// TokenSource supplies the current bearer token. An empty string means
// the call goes out unauthenticated. The session store satisfies this.
type TokenSource interface {
	Token() string
}

// ProgressFunc receives upload progress as an integer percentage, 0–100.
// It is invoked synchronously as bytes are transferred; values are
// non-decreasing and end at 100.
type ProgressFunc func(percent int)

// File is one attachment handed to UploadMedia.
type File struct {
	Name string
	Data []byte
}

// Client defines the typed operations the view-models depend on.
//
// Contract:
//   - Login/Signup work without a token; everything else attaches the
//     current token as a bearer credential when present.
//   - No call is retried; a failed upload must be restarted by the caller.
//   - All methods honor context cancellation.
type Client interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Signup(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)

	ListMetrics(ctx context.Context, campaignName string) ([]models.Metric, error)
	CreateMetric(ctx context.Context, data models.CreateMetricData) (*models.Metric, error)
	UpdateMetric(ctx context.Context, id int64, data models.CreateMetricData) (*models.Metric, error)
	DeleteMetric(ctx context.Context, id int64) error

	UploadMedia(ctx context.Context, metricID int64, files []File, onProgress ProgressFunc) ([]models.MediaItem, error)
	ListMedia(ctx context.Context, metricID int64) ([]models.MediaItem, error)
	ProbeMedia(ctx context.Context, mediaID int64) (contentType string, err error)
	MediaFileURL(mediaID int64, withToken bool) string
}

// HTTPClient is the concrete Client over net/http.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	log     logging.Logger

	// onUnauthorized, when set, is called once per 401 response. The
	// session store hooks in here when the clear-on-401 policy is on.
	onUnauthorized func()
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithLogger sets the client logger.
func WithLogger(log logging.Logger) Option {
	return func(c *HTTPClient) { c.log = log }
}

// WithTimeout overrides the transport timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.httpc.Timeout = d }
}

// WithUnauthorizedHook registers fn to run whenever the server answers 401.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *HTTPClient) { c.onUnauthorized = fn }
}

// NewHTTPClient creates a client for the given base URL. tokens may not
// be nil; use the session store.
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
		log:     logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newRequest builds a request with the standard headers: bearer token when
// present and a correlation id for the server logs.
func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if t := c.tokens.Token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	return req, nil
}

// do executes req and decodes a 2xx JSON body into out (when non-nil).
// Non-2xx responses become *RequestError with the server's message.
func (c *HTTPClient) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn(req.Context(), "request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(req.Context(), "request done",
		"method", req.Method, "path", req.URL.Path,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.asRequestError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *HTTPClient) asRequestError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	msg := ""
	var body struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(data, &body); err == nil {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &RequestError{StatusCode: resp.StatusCode, Message: msg}
}

// postJSON marshals v and POSTs (or PUTs) it to path.
func (c *HTTPClient) sendJSON(ctx context.Context, method, path string, v, out any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	req, err := c.newRequest(ctx, method, path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}
