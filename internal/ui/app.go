package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/five82/parkview/internal/api"
	"github.com/five82/parkview/internal/prefs"
	"github.com/five82/parkview/internal/router"
	"github.com/five82/parkview/internal/session"
	"github.com/five82/parkview/internal/toast"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Session    session.Provider
	Backend    api.Backend
	Toast      toast.Options
	ThemeName  string
	StartRoute string
	PrefsPath  string
	APIURL     string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx        context.Context
	session    session.Provider
	router     *router.Router[View]
	keys       keyMap
	help       help.Model
	toast      toast.Model
	prefsPath  string
	startRoute string
	apiURL     string
	now        func() time.Time

	theme  Theme
	width  int
	height int
	ready  bool

	path  string
	view  View
	state session.State

	loggingOut bool
	showHelp   bool
	gotoActive bool
	gotoInput  textinput.Model
}

// New builds the root model. Only the home view exists afterwards; the
// rest are built the first time they are visited.
func New(opts Options) (Model, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Session == nil || opts.Backend == nil {
		return Model{}, fmt.Errorf("ui: session and backend are required")
	}

	keys := DefaultKeyMap()
	e := &env{ctx: ctx, session: opts.Session, backend: opts.Backend, keys: keys}
	r, err := newRouter(e)
	if err != nil {
		return Model{}, fmt.Errorf("build routes: %w", err)
	}

	startRoute := opts.StartRoute
	if startRoute == "" {
		startRoute = "/"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(opts.ThemeName)
	toastOpts := opts.Toast
	toastOpts.Palette = theme.ToastPalette()

	gotoInput := textinput.New()
	gotoInput.Prompt = ": "
	gotoInput.Placeholder = "/user_dashboard"
	gotoInput.CharLimit = 64

	return Model{
		ctx:        ctx,
		session:    opts.Session,
		router:     r,
		keys:       keys,
		help:       help.New(),
		toast:      toast.New(toastOpts),
		prefsPath:  prefsPath,
		startRoute: startRoute,
		apiURL:     opts.APIURL,
		now:        time.Now,
		theme:      theme,
		state:      opts.Session.Snapshot(),
		gotoInput:  gotoInput,
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return navigateCmd(m.startRoute)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var notifyCmd tea.Cmd
	m.toast, notifyCmd = m.toast.Update(msg)

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.resizeView()

	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	case navigateMsg:
		m, cmd = m.navigate(msg.path)

	case backMsg:
		m, cmd = m.back()

	case statusMsg:
		m.state = msg.state
		if msg.err != nil {
			log.Debug().Err(msg.err).Str("path", m.path).Msg("session status unavailable")
		}

	case logoutMsg:
		m, cmd = m.handleLogout(msg)

	case sessionClearedMsg:
		m.state = m.session.Snapshot()
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("clear session")
		}
		m, cmd = m.navigate(msg.next)

	case toastMsg:
		m.toast, cmd = m.toast.Push(msg.kind, msg.text, nil)

	case addressedMsg:
		cmd = m.deliver(msg)

	default:
		if m.gotoActive {
			m.gotoInput, cmd = m.gotoInput.Update(msg)
		} else if m.view != nil {
			cmd = m.view.Update(msg)
		}
	}

	return m, tea.Batch(notifyCmd, cmd)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	body := ""
	if m.view != nil {
		body = m.view.Render(m.renderContext())
	}
	h := m.contentHeight()
	body = lipgloss.NewStyle().Width(m.width).Height(h).MaxHeight(h).Render(body)

	return m.toast.Overlay(lipgloss.JoinVertical(lipgloss.Left, header, body, footer))
}

func (m Model) renderContext() renderContext {
	return renderContext{
		Width:   m.width,
		Height:  m.contentHeight(),
		Theme:   m.theme,
		Styles:  m.theme.Styles(),
		Session: m.state,
		Keys:    m.keys,
	}
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.gotoActive {
		return styles.Footer.Width(m.width).Render(m.gotoInput.View())
	}
	return styles.Footer.Width(m.width).Render(m.help.View(m.keys))
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.gotoActive {
		return m.handleGotoKey(msg)
	}
	if m.view != nil && m.view.Capturing() {
		return m, m.view.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.toast.SetPalette(m.theme.ToastPalette())
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, StartRoute: m.startRoute}); err != nil {
				log.Warn().Err(err).Msg("save prefs")
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		return m.back()

	case key.Matches(msg, m.keys.Home):
		return m.navigate("/")

	case key.Matches(msg, m.keys.Goto):
		m.gotoActive = true
		m.gotoInput.SetValue("")
		return m, m.gotoInput.Focus()

	case key.Matches(msg, m.keys.Logout):
		if m.loggingOut {
			return m, nil
		}
		m.loggingOut = true
		return m, logoutCmd(m.ctx, m.session)

	case key.Matches(msg, m.keys.Refresh):
		return m.navigate(m.path)

	case key.Matches(msg, m.keys.Dismiss):
		var cmd tea.Cmd
		m.toast, cmd = m.toast.DismissNewest()
		return m, cmd
	}

	if m.view != nil {
		return m, m.view.Update(msg)
	}
	return m, nil
}

func (m Model) handleGotoKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.gotoActive = false
		m.gotoInput.Blur()
		return m.navigate(m.gotoInput.Value())
	case tea.KeyEsc:
		m.gotoActive = false
		m.gotoInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

// navigate switches to path. Every successful navigation re-checks the
// session, the way each page re-reads the user on creation. An unknown path
// leaves the current view in place and shows an error toast.
func (m Model) navigate(path string) (Model, tea.Cmd) {
	target := router.Normalize(path)

	var (
		match router.Match[View]
		err   error
	)
	if target != "" && target == m.path {
		match, err = m.router.Resolve(target)
	} else {
		match, err = m.router.Navigate(target)
	}
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("navigation failed")
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Error(fmt.Sprintf("No page at %q", path))
		return m, cmd
	}
	return m.enter(match)
}

func (m Model) back() (Model, tea.Cmd) {
	match, ok := m.router.Back()
	if !ok {
		return m, nil
	}
	return m.enter(match)
}

func (m Model) enter(match router.Match[View]) (Model, tea.Cmd) {
	if match.Fresh {
		log.Debug().Str("route", match.Name).Msg("view loaded")
	}
	m.path = match.Path
	m.view = match.View
	m.resizeView()
	return m, tea.Batch(statusCmd(m.ctx, m.session), m.view.Enter())
}

func (m Model) handleLogout(msg logoutMsg) (Model, tea.Cmd) {
	m.loggingOut = false
	if msg.err != nil {
		return m, nil
	}
	provider := m.session
	var cmd tea.Cmd
	m.toast, cmd = m.toast.Success(msg.message, func() tea.Cmd {
		return clearSessionCmd(provider, "/login")
	})
	return m, cmd
}

// deliver hands an async result to the view that asked for it.
func (m Model) deliver(msg addressedMsg) tea.Cmd {
	match, err := m.router.ResolveName(msg.route())
	if err != nil {
		log.Warn().Err(err).Str("route", msg.route()).Msg("result for unknown view")
		return nil
	}
	return match.View.Update(msg)
}

type resizable interface {
	Resize(width, height int)
}

func (m Model) resizeView() {
	if r, ok := m.view.(resizable); ok && m.ready {
		r.Resize(m.width, m.contentHeight())
	}
}

// Path returns the current route path.
func (m Model) Path() string {
	return m.path
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	ctx := m.ctx
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	_, err = p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
