package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/adboard/internal/client/api"
	"github.com/dmitrijs2005/adboard/internal/client/services"
	"github.com/dmitrijs2005/adboard/internal/client/session"
	"github.com/dmitrijs2005/adboard/internal/logging"
)

// Page identifies the active surface.
type Page int

const (
	PageLogin Page = iota
	PageDashboard
	PageReel
)

// App is the root model. It owns page routing and re-evaluates the
// access rule on every message: the dashboard and the reel require an
// authenticated session, and a logged-in user never sees the login page.
type App struct {
	session *session.Store
	client  api.Client
	metrics *services.MetricService
	media   *services.MediaService
	log     logging.Logger
	styles  Styles

	page   Page
	login  LoginModel
	dash   DashboardModel
	reel   *ReelModel
	width  int
	height int
}

// NewApp wires the pages. The starting page follows the session: a
// restored token lands on the dashboard, anything else on login.
func NewApp(sess *session.Store, client api.Client, metrics *services.MetricService, media *services.MediaService, log logging.Logger) App {
	if log == nil {
		log = logging.NewNopLogger()
	}
	styles := DefaultStyles()

	a := App{
		session: sess,
		client:  client,
		metrics: metrics,
		media:   media,
		log:     log,
		styles:  styles,
		login:   NewLoginModel(client, styles),
		dash:    NewDashboardModel(metrics, media, styles),
	}
	if sess.IsAuthenticated() {
		a.page = PageDashboard
	}
	return a
}

func (a App) Init() tea.Cmd {
	if a.page == PageDashboard {
		return tea.Batch(a.dash.refreshCmd(""), a.dash.sp.Tick)
	}
	return a.login.Init()
}

// allowed applies the access rule for the requested page.
func (a App) allowed(p Page) bool {
	if p == PageLogin {
		return true
	}
	return a.session.IsAuthenticated()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// A signed-in session never interacts with the login page; flipping
	// here keeps input routing and rendering on the same page.
	if a.page == PageLogin && a.session.IsAuthenticated() {
		a.page = PageDashboard
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dash.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+l":
			if a.session.IsAuthenticated() {
				a.session.Logout(context.Background())
				a.page = PageLogin
				a.reel = nil
				a.login = NewLoginModel(a.client, a.styles)
				return a, a.login.Init()
			}
		}

		// A denied page accepts only the jump back to login.
		if !a.allowed(a.page) {
			if msg.String() == "enter" || msg.String() == "l" {
				a.page = PageLogin
				return a, a.login.Init()
			}
			return a, nil
		}

		if a.page == PageReel && msg.String() == "esc" {
			a.page = PageDashboard
			a.media.CloseViewer()
			a.reel = nil
			return a, nil
		}
		if a.page == PageDashboard && msg.String() == "enter" && a.dash.form == nil &&
			a.confirmIdle() && !a.dash.filter.Focused() {
			if sel := a.dash.Selected(); sel != nil {
				reel := NewReelModel(a.media, a.styles, *sel)
				a.reel = &reel
				a.page = PageReel
				return a, reel.Init()
			}
			return a, nil
		}

	case authDoneMsg:
		if msg.err == nil && msg.resp != nil {
			a.session.Login(context.Background(), msg.resp.Token, msg.resp.User)
			a.page = PageDashboard
			return a, a.dash.refreshCmd("")
		}
		// Let the login page show the failure.
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	}

	return a.route(msg)
}

func (a App) confirmIdle() bool { return a.dash.confirmID == nil }

// route forwards msg to the active page.
func (a App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.page {
	case PageLogin:
		a.login, cmd = a.login.Update(msg)
	case PageReel:
		if a.reel != nil {
			reel, c := a.reel.Update(msg)
			a.reel = &reel
			cmd = c
		}
	default:
		a.dash, cmd = a.dash.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	// The guard runs on render, so a session cleared mid-flight (e.g.
	// by the 401 policy) drops the protected view immediately.
	if !a.allowed(a.page) {
		return a.styles.App.Render(a.accessDeniedView())
	}

	var body string
	switch a.page {
	case PageLogin:
		if a.session.IsAuthenticated() {
			body = a.dash.View()
		} else {
			body = a.login.View()
		}
	case PageReel:
		if a.reel != nil {
			body = a.reel.View()
		}
	default:
		body = a.dash.View()
	}
	return a.styles.App.Render(body)
}

func (a App) accessDeniedView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Denied.Render("Access denied"),
		"You need to sign in first.",
		"",
		a.styles.Help.Render("press enter to go to the login page · ctrl+c quit"),
	)
}
