package tui

import (
	"github.com/dmitrijs2005/adboard/internal/client/models"
	"github.com/dmitrijs2005/adboard/internal/client/services"
)

// authDoneMsg reports the outcome of a login or signup attempt.
type authDoneMsg struct {
	resp *models.AuthResponse
	err  error
}

// metricsRefreshedMsg reports a completed list fetch. The fresh data is
// read from the metric service, not carried in the message.
type metricsRefreshedMsg struct {
	err error
}

// mutationDoneMsg reports a completed create, update, or delete. The
// service has already re-fetched the list by the time it arrives.
type mutationDoneMsg struct {
	action string
	err    error
}

// mediaListedMsg reports that a metric's attachments were fetched.
type mediaListedMsg struct {
	metricID int64
	items    []models.MediaItem
	err      error
}

// viewerOpenedMsg reports the reel viewer's probe result.
type viewerOpenedMsg struct {
	viewer services.Viewer
	err    error
}

// shareDoneMsg reports whether the share link reached the clipboard.
type shareDoneMsg struct {
	ok bool
}

// uploadTickMsg drives the progress bar refresh while an upload runs.
type uploadTickMsg struct{}

// progressDecayMsg clears a finished upload's progress bar.
type progressDecayMsg struct {
	metricID int64
}
