package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/adboard/internal/client/api"
	"github.com/dmitrijs2005/adboard/internal/client/models"
)

const (
	fieldCampaign = iota
	fieldDate
	fieldImpressions
	fieldClicks
	fieldConversions
	fieldFiles
	fieldCount
)

// FormModel is the metric create/edit overlay. Attachments are given as
// comma-separated file paths; they are read and uploaded in one request
// after the metric is saved.
type FormModel struct {
	styles Styles

	inputs [fieldCount]textinput.Model
	focus  int
	editID *int64
	errMsg string
}

func NewFormModel(styles Styles, edit *models.Metric) FormModel {
	m := FormModel{styles: styles}

	labels := [fieldCount]string{"Summer Sale", "2025-06-01", "0", "0", "0", "banner.png, clip.mp4"}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 256
		m.inputs[i] = in
	}
	m.inputs[fieldCampaign].Focus()

	if edit != nil {
		m.editID = &edit.ID
		m.inputs[fieldCampaign].SetValue(edit.CampaignName)
		m.inputs[fieldDate].SetValue(edit.Date)
		m.inputs[fieldImpressions].SetValue(strconv.FormatInt(edit.Impressions, 10))
		m.inputs[fieldClicks].SetValue(strconv.FormatInt(edit.Clicks, 10))
		m.inputs[fieldConversions].SetValue(strconv.FormatInt(edit.Conversions, 10))
	}
	return m
}

// IsEdit reports whether the form updates an existing metric.
func (m FormModel) IsEdit() bool { return m.editID != nil }

// EditID returns the metric under edit, 0 for a create form.
func (m FormModel) EditID() int64 {
	if m.editID == nil {
		return 0
	}
	return *m.editID
}

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	// The files field only exists on the create form; attachments for an
	// existing metric go through the reel.
	count := fieldCount
	if m.IsEdit() {
		count = fieldFiles
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return m.setFocus((m.focus + 1) % count), textinput.Blink
		case "shift+tab", "up":
			return m.setFocus((m.focus + count - 1) % count), textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m FormModel) setFocus(i int) FormModel {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	return m
}

// Data collects the form values into the request payload. Numeric
// fields default to zero when blank; anything unparsable is an error.
func (m *FormModel) Data() (models.CreateMetricData, error) {
	var data models.CreateMetricData
	data.CampaignName = strings.TrimSpace(m.inputs[fieldCampaign].Value())
	data.Date = strings.TrimSpace(m.inputs[fieldDate].Value())

	nums := []struct {
		field int
		dst   *int64
		name  string
	}{
		{fieldImpressions, &data.Impressions, "impressions"},
		{fieldClicks, &data.Clicks, "clicks"},
		{fieldConversions, &data.Conversions, "conversions"},
	}
	for _, n := range nums {
		raw := strings.TrimSpace(m.inputs[n.field].Value())
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return data, fmt.Errorf("%s must be a number", n.name)
		}
		*n.dst = v
	}
	return data, nil
}

// Files reads the attachment paths listed in the files field.
func (m *FormModel) Files() ([]api.File, error) {
	raw := strings.TrimSpace(m.inputs[fieldFiles].Value())
	if raw == "" {
		return nil, nil
	}

	var files []api.File
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, api.File{Name: filepath.Base(p), Data: data})
	}
	return files, nil
}

func (m *FormModel) setError(msg string) { m.errMsg = msg }

func (m FormModel) View() string {
	title := "New metric"
	if m.IsEdit() {
		title = fmt.Sprintf("Edit metric #%d", *m.editID)
	}

	labels := [fieldCount]string{"Campaign", "Date", "Impressions", "Clicks", "Conversions", "Attach files"}
	rows := []string{m.styles.Title.Render(title)}
	for i, in := range m.inputs {
		label := m.styles.FieldLabel.Render(labels[i])
		if i == m.focus {
			label = m.styles.FieldFocused.Render(labels[i])
			label = lipgloss.NewStyle().Width(14).Render(label)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Left, label, in.View()))
	}
	if m.IsEdit() {
		// Attachments are managed from the reel; editing only changes
		// the numbers.
		rows = rows[:len(rows)-1]
	}

	if m.errMsg != "" {
		rows = append(rows, m.styles.ErrBanner.Render(m.errMsg))
	}
	rows = append(rows, "")
	rows = append(rows, m.styles.Help.Render("enter save · tab next field · esc cancel"))

	return m.styles.Overlay.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
