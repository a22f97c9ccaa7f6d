package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/adboard/internal/client/api"
	"github.com/dmitrijs2005/adboard/internal/client/models"
)

// LoginModel is the authentication page. It toggles between sign-in and
// sign-up against the same two inputs; the backend decides everything
// else.
type LoginModel struct {
	client api.Client
	styles Styles

	email    textinput.Model
	password textinput.Model
	focus    int
	signup   bool
	busy     bool
	errMsg   string
}

func NewLoginModel(client api.Client, styles Styles) LoginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	return LoginModel{client: client, styles: styles, email: email, password: password}
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focus = (m.focus + 1) % 2
			if m.focus == 0 {
				m.email.Focus()
				m.password.Blur()
			} else {
				m.email.Blur()
				m.password.Focus()
			}
			return m, textinput.Blink
		case "ctrl+t":
			m.signup = !m.signup
			m.errMsg = ""
			return m, nil
		case "enter":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.errMsg = ""
			creds := models.Credentials{Email: m.email.Value(), Password: m.password.Value()}
			return m, m.submit(creds)
		}

	case authDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = api.ErrorMessage(msg.err, "Authentication failed")
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m LoginModel) submit(creds models.Credentials) tea.Cmd {
	signup := m.signup
	return func() tea.Msg {
		ctx := context.Background()
		var resp *models.AuthResponse
		var err error
		if signup {
			resp, err = m.client.Signup(ctx, creds)
		} else {
			resp, err = m.client.Login(ctx, creds)
		}
		return authDoneMsg{resp: resp, err: err}
	}
}

func (m LoginModel) View() string {
	title := "Sign in"
	action := "sign up"
	if m.signup {
		title = "Sign up"
		action = "sign in"
	}

	var rows []string
	rows = append(rows, m.styles.Title.Render("adboard · "+title))
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Left,
		m.styles.FieldLabel.Render("Email"), m.email.View()))
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Left,
		m.styles.FieldLabel.Render("Password"), m.password.View()))

	if m.busy {
		rows = append(rows, m.styles.Status.Render("Signing in..."))
	}
	if m.errMsg != "" {
		rows = append(rows, m.styles.ErrBanner.Render(m.errMsg))
	}
	rows = append(rows, "")
	rows = append(rows, m.styles.Help.Render("enter submit · tab next field · ctrl+t switch to "+action+" · ctrl+c quit"))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
