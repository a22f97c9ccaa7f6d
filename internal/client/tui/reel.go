package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/adboard/internal/client/api"
	"github.com/dmitrijs2005/adboard/internal/client/models"
	"github.com/dmitrijs2005/adboard/internal/client/services"
)

// ReelModel pages through one metric's attachments, one item at a time.
// A terminal cannot decode the asset itself, so the page shows the
// probed kind plus a shareable link instead of pixels.
type ReelModel struct {
	media  *services.MediaService
	styles Styles

	metric models.Metric
	items  []models.MediaItem
	idx    int
	viewer *services.Viewer
	status string
	errMsg string
}

func NewReelModel(media *services.MediaService, styles Styles, metric models.Metric) ReelModel {
	return ReelModel{media: media, styles: styles, metric: metric}
}

// Init fetches the attachment list for the metric.
func (m ReelModel) Init() tea.Cmd {
	metricID := m.metric.ID
	return func() tea.Msg {
		if err := m.media.Refresh(context.Background(), metricID); err != nil {
			return mediaListedMsg{metricID: metricID, err: err}
		}
		return mediaListedMsg{metricID: metricID, items: m.media.Items(metricID)}
	}
}

func (m ReelModel) openCmd(item models.MediaItem) tea.Cmd {
	return func() tea.Msg {
		v, err := m.media.Open(context.Background(), item)
		return viewerOpenedMsg{viewer: v, err: err}
	}
}

func (m ReelModel) shareCmd() tea.Cmd {
	return func() tea.Msg {
		return shareDoneMsg{ok: m.media.ShareCurrent(context.Background())}
	}
}

func (m ReelModel) Update(msg tea.Msg) (ReelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			if m.idx > 0 {
				m.idx--
				return m, m.openCmd(m.items[m.idx])
			}
		case "right", "l":
			if m.idx < len(m.items)-1 {
				m.idx++
				return m, m.openCmd(m.items[m.idx])
			}
		case "s":
			if m.viewer != nil {
				return m, m.shareCmd()
			}
		}

	case mediaListedMsg:
		if msg.err != nil {
			m.errMsg = api.ErrorMessage(msg.err, "Failed to load media")
			return m, nil
		}
		m.items = msg.items
		m.idx = 0
		if len(m.items) > 0 {
			return m, m.openCmd(m.items[0])
		}

	case viewerOpenedMsg:
		if msg.err != nil {
			m.errMsg = api.ErrorMessage(msg.err, "Failed to open media")
			return m, nil
		}
		m.errMsg = ""
		v := msg.viewer
		m.viewer = &v

	case shareDoneMsg:
		if msg.ok {
			m.status = "Link copied to clipboard"
		} else {
			m.status = "Clipboard unavailable"
		}
	}
	return m, nil
}

func (m ReelModel) View() string {
	rows := []string{m.styles.Title.Render(fmt.Sprintf("Media · %s", m.metric.CampaignName))}

	switch {
	case m.errMsg != "":
		rows = append(rows, m.styles.ErrBanner.Render(m.errMsg))
	case len(m.items) == 0:
		rows = append(rows, m.styles.Status.Render("No media attached to this metric."))
	default:
		item := m.items[m.idx]
		rows = append(rows, m.styles.CardValue.Render(
			fmt.Sprintf("Media #%d (%d of %d)", item.ID, m.idx+1, len(m.items))))
		rows = append(rows, m.styles.CardLabel.Render(item.OriginalName))

		if m.viewer != nil && m.viewer.Item.ID == item.ID {
			kind := "file"
			if m.viewer.IsImage() {
				kind = "image"
			} else if m.viewer.IsVideo() {
				kind = "video"
			}
			rows = append(rows, fmt.Sprintf("%s · %s · %s",
				kind, m.viewer.ContentType, humanize.Bytes(uint64(item.Size))))
			rows = append(rows, m.styles.Status.Render(m.viewer.URL))
		} else {
			rows = append(rows, m.styles.Status.Render("probing..."))
		}
	}

	if m.status != "" {
		rows = append(rows, m.styles.Status.Render(m.status))
	}
	rows = append(rows, "")
	rows = append(rows, m.styles.Help.Render("←/→ navigate · s share link · esc back"))

	return m.styles.Overlay.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
