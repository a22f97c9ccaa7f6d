package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/adboard/internal/client/api"
	"github.com/dmitrijs2005/adboard/internal/client/models"
	"github.com/dmitrijs2005/adboard/internal/client/services"
)

const uploadTickInterval = 100 * time.Millisecond

// progressDecay is how long a finished upload's bar stays at 100%.
const progressDecay = 1500 * time.Millisecond

// DashboardModel is the main page: summary cards, the filterable metric
// table, and the create/edit overlay.
type DashboardModel struct {
	metrics *services.MetricService
	media   *services.MediaService
	styles  Styles

	filter    textinput.Model
	tbl       table.Model
	bar       progress.Model
	sp        spinner.Model
	form      *FormModel
	confirmID *int64
	uploading bool
	status    string
	width     int
	height    int
}

func NewDashboardModel(metrics *services.MetricService, media *services.MediaService, styles Styles) DashboardModel {
	filter := textinput.New()
	filter.Placeholder = "filter by campaign name"
	filter.CharLimit = 128

	tbl := table.New(
		table.WithColumns(metricColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	return DashboardModel{
		metrics: metrics,
		media:   media,
		styles:  styles,
		filter:  filter,
		tbl:     tbl,
		bar:     progress.New(progress.WithDefaultGradient()),
		sp:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:   80,
		height:  24,
	}
}

func metricColumns(width int) []table.Column {
	name := width - 74
	if name < 16 {
		name = 16
	}
	return []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Campaign", Width: name},
		{Title: "Date", Width: 10},
		{Title: "Impressions", Width: 12},
		{Title: "Clicks", Width: 9},
		{Title: "CTR %", Width: 7},
		{Title: "Conv.", Width: 7},
		{Title: "CR %", Width: 7},
		{Title: "Media", Width: 6},
	}
}

// SetSize adapts the layout to the terminal.
func (m *DashboardModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.tbl.SetColumns(metricColumns(w - 6))
	rows := h - 14
	if rows < 4 {
		rows = 4
	}
	m.tbl.SetHeight(rows)
	m.bar.Width = w - 20
}

// reload rebuilds the table rows from the metric service.
func (m *DashboardModel) reload() {
	list := m.metrics.Metrics()
	rows := make([]table.Row, 0, len(list))
	for _, mt := range list {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", mt.ID),
			mt.CampaignName,
			mt.Date,
			humanize.Comma(mt.Impressions),
			humanize.Comma(mt.Clicks),
			mt.CTR(),
			humanize.Comma(mt.Conversions),
			mt.ConversionRate(),
			fmt.Sprintf("%d", len(m.media.Items(mt.ID))),
		})
	}
	m.tbl.SetRows(rows)
}

// Selected returns the metric under the cursor.
func (m *DashboardModel) Selected() *models.Metric {
	list := m.metrics.Metrics()
	i := m.tbl.Cursor()
	if i < 0 || i >= len(list) {
		return nil
	}
	mt := list[i]
	return &mt
}

func (m DashboardModel) refreshCmd(filter string) tea.Cmd {
	return func() tea.Msg {
		err := m.metrics.Refresh(context.Background(), filter)
		if err == nil {
			ids := make([]int64, 0)
			for _, mt := range m.metrics.Metrics() {
				ids = append(ids, mt.ID)
			}
			_ = m.media.RefreshAll(context.Background(), ids)
		}
		return metricsRefreshedMsg{err: err}
	}
}

func (m DashboardModel) saveCmd(form FormModel) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		data, err := form.Data()
		if err != nil {
			return mutationDoneMsg{action: "validate", err: err}
		}

		if form.IsEdit() {
			return mutationDoneMsg{action: "update", err: m.metrics.Update(ctx, form.EditID(), data)}
		}

		files, err := form.Files()
		if err != nil {
			return mutationDoneMsg{action: "validate", err: err}
		}
		return mutationDoneMsg{action: "create", err: m.metrics.CreateWithMedia(ctx, data, files, nil)}
	}
}

func (m DashboardModel) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{action: "delete", err: m.metrics.Delete(context.Background(), id)}
	}
}

func uploadTick() tea.Cmd {
	return tea.Tick(uploadTickInterval, func(time.Time) tea.Msg { return uploadTickMsg{} })
}

func decayTick(metricID int64) tea.Cmd {
	return tea.Tick(progressDecay, func(time.Time) tea.Msg { return progressDecayMsg{metricID: metricID} })
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case metricsRefreshedMsg:
		m.reload()
		m.status = fmt.Sprintf("%d metrics", len(m.metrics.Metrics()))
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			if m.form != nil {
				m.form.setError(api.ErrorMessage(msg.err, "Failed to save metric"))
			}
			m.uploading = false
			m.reload()
			return m, nil
		}
		m.form = nil
		m.confirmID = nil
		m.reload()
		m.status = "Saved"

		var cmds []tea.Cmd
		if msg.action == "create" && m.uploading {
			m.uploading = false
			// The created row is the newest one; hold its bar briefly.
			if id, ok := m.newestID(); ok {
				cmds = append(cmds, decayTick(id))
			}
		}
		return m, tea.Batch(cmds...)

	case uploadTickMsg:
		if m.uploading {
			return m, uploadTick()
		}
		return m, nil

	case spinner.TickMsg:
		if m.metrics.State() == services.StateLoading {
			var cmd tea.Cmd
			m.sp, cmd = m.sp.Update(msg)
			return m, cmd
		}
		return m, nil

	case progressDecayMsg:
		m.media.ClearProgress(msg.metricID)
		return m, nil
	}

	var cmd tea.Cmd
	if m.form != nil {
		form, cmd := m.form.Update(msg)
		m.form = &form
		return m, cmd
	}
	if m.filter.Focused() {
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

func (m DashboardModel) handleKey(key tea.KeyMsg) (DashboardModel, tea.Cmd) {
	// The overlay captures everything except save and cancel.
	if m.form != nil {
		switch key.String() {
		case "esc":
			m.form = nil
			return m, nil
		case "enter":
			m.uploading = !m.form.IsEdit()
			cmds := []tea.Cmd{m.saveCmd(*m.form)}
			if m.uploading {
				cmds = append(cmds, uploadTick())
			}
			return m, tea.Batch(cmds...)
		}
		form, cmd := m.form.Update(key)
		m.form = &form
		return m, cmd
	}

	if m.confirmID != nil {
		switch key.String() {
		case "y", "Y":
			id := *m.confirmID
			return m, m.deleteCmd(id)
		case "n", "N", "esc":
			m.confirmID = nil
		}
		return m, nil
	}

	if m.filter.Focused() {
		switch key.String() {
		case "enter":
			m.filter.Blur()
			return m, tea.Batch(m.refreshCmd(m.filter.Value()), m.sp.Tick)
		case "esc":
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(key)
		return m, cmd
	}

	switch key.String() {
	case "/":
		m.filter.Focus()
		return m, textinput.Blink
	case "r":
		return m, tea.Batch(m.refreshCmd(m.filter.Value()), m.sp.Tick)
	case "a":
		form := NewFormModel(m.styles, nil)
		m.form = &form
		return m, textinput.Blink
	case "e":
		if sel := m.Selected(); sel != nil {
			form := NewFormModel(m.styles, sel)
			m.form = &form
			return m, textinput.Blink
		}
	case "d":
		if sel := m.Selected(); sel != nil {
			m.confirmID = &sel.ID
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(key)
	return m, cmd
}

func (m *DashboardModel) newestID() (int64, bool) {
	var max int64
	for _, mt := range m.metrics.Metrics() {
		if mt.ID > max {
			max = mt.ID
		}
	}
	return max, max != 0
}

func (m DashboardModel) uploadBar(pct int) string {
	return lipgloss.JoinHorizontal(lipgloss.Left,
		m.styles.CardLabel.Render("Uploading "),
		m.bar.ViewAs(float64(pct)/100))
}

func (m DashboardModel) View() string {
	if m.form != nil {
		view := m.form.View()
		// The overlay stays open while the attachments transfer, so the
		// bar renders beneath it.
		if m.uploading {
			if pct, ok := m.media.ActiveProgress(); ok {
				view = lipgloss.JoinVertical(lipgloss.Left, view, m.uploadBar(pct))
			}
		}
		return view
	}

	rows := []string{m.styles.Title.Render("adboard · campaign metrics")}
	rows = append(rows, m.summaryCards())
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Left,
		m.styles.FieldLabel.Render("Filter"), m.filter.View()))
	rows = append(rows, m.tbl.View())

	// After the overlay closes a just-finished upload keeps its bar at
	// 100% until the decay tick clears it, even before the created row
	// is selected.
	if pct, ok := m.media.ActiveProgress(); ok {
		rows = append(rows, m.uploadBar(pct))
	}

	if m.confirmID != nil {
		rows = append(rows, m.styles.ErrBanner.Render(
			fmt.Sprintf("Delete metric #%d and its media? (y/n)", *m.confirmID)))
	}
	if errMsg := m.metrics.LastError(); errMsg != "" {
		rows = append(rows, m.styles.ErrBanner.Render(errMsg))
	} else if m.metrics.State() == services.StateLoading {
		rows = append(rows, m.sp.View()+m.styles.Status.Render(" loading"))
	} else if m.status != "" {
		rows = append(rows, m.styles.Status.Render(m.status))
	}

	rows = append(rows, m.styles.Help.Render(
		"a add · e edit · d delete · enter view media · / filter · r refresh · ctrl+l logout · ctrl+c quit"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m DashboardModel) summaryCards() string {
	sum := m.metrics.Summary()

	card := func(label, value string) string {
		return m.styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.styles.CardLabel.Render(label),
			m.styles.CardValue.Render(value)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Impressions", humanize.Comma(sum.TotalImpressions)),
		card("Clicks", humanize.Comma(sum.TotalClicks)),
		card("Conversions", humanize.Comma(sum.TotalConversions)),
		card("Avg CTR", sum.AvgCTR+"%"),
		card("Conv. rate", sum.ConvRate+"%"),
	)
}
