package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/adboard/internal/client/models"
)

// ListMetrics fetches all metrics, optionally filtered by campaign name.
// The filter is passed through verbatim; matching semantics belong to the
// server.
func (c *HTTPClient) ListMetrics(ctx context.Context, campaignName string) ([]models.Metric, error) {
	q := url.Values{}
	if campaignName != "" {
		q.Set("campaign_name", campaignName)
	}

	var out []models.Metric
	if err := c.getJSON(ctx, "/metrics", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMetric creates a metric record; the server assigns the id.
func (c *HTTPClient) CreateMetric(ctx context.Context, data models.CreateMetricData) (*models.Metric, error) {
	var out models.Metric
	if err := c.sendJSON(ctx, http.MethodPost, "/metrics", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMetric replaces the record's mutable fields.
func (c *HTTPClient) UpdateMetric(ctx context.Context, id int64, data models.CreateMetricData) (*models.Metric, error) {
	var out models.Metric
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/metrics/%d", id), data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMetric removes the record.
func (c *HTTPClient) DeleteMetric(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/metrics/%d", id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
