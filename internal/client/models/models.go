// Package models defines the wire-level entities exchanged with the
// campaign analytics backend. The server is the authoritative source for
// all of them; the client never synthesizes ids.
package models

// User identifies the authenticated account.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Metric is a per-campaign-per-date record of impressions, clicks and
// conversions. Mutated only through explicit update calls; lists are
// replaced wholesale on every fetch.
type Metric struct {
	ID           int64  `json:"id"`
	CampaignName string `json:"campaign_name"`
	Date         string `json:"date"`
	Impressions  int64  `json:"impressions"`
	Clicks       int64  `json:"clicks"`
	Conversions  int64  `json:"conversions"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// CreateMetricData is the payload for metric create and update calls.
type CreateMetricData struct {
	CampaignName string `json:"campaign_name"`
	Date         string `json:"date"`
	Impressions  int64  `json:"impressions"`
	Clicks       int64  `json:"clicks"`
	Conversions  int64  `json:"conversions"`
}

// MediaItem is a stored image or video asset attached to a Metric.
// Presence in the client's media map does not imply the asset still
// exists server-side beyond the last fetch.
type MediaItem struct {
	ID           int64  `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname,omitempty"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size,omitempty"`
	URL          string `json:"url"`
	CreatedAt    string `json:"created_at,omitempty"`
	MetricID     int64  `json:"metric_id,omitempty"`
	UserID       int64  `json:"user_id,omitempty"`
}

// AuthResponse is returned by the login and signup endpoints.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// Credentials carries the email/password pair for login and signup.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
