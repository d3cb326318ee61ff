package ui

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/five82/parkview/internal/api"
	"github.com/five82/parkview/internal/tokenstore"
)

type endpointMsg struct {
	name    string
	seq     int
	payload map[string]any
	err     error
}

func (m endpointMsg) route() string { return m.name }

// endpointView shows the JSON document returned by one backend GET route.
// Routes that take a search term expose it through queryParam.
type endpointView struct {
	env        *env
	name       string
	title      string
	endpoint   string
	queryParam string

	query     string
	seq       int
	loading   bool
	err       error
	lines     []string
	fetchedAt time.Time

	searching bool
	search    textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model
}

func newEndpointView(e *env, name, title, endpoint, queryParam string) *endpointView {
	search := textinput.New()
	search.Placeholder = "search term"
	search.CharLimit = 80
	search.Width = 30
	search.Prompt = "/ "

	return &endpointView{
		env:        e,
		name:       name,
		title:      title,
		endpoint:   endpoint,
		queryParam: queryParam,
		search:     search,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport:   viewport.New(80, 20),
	}
}

func (v *endpointView) Title() string   { return v.title }
func (v *endpointView) Capturing() bool { return v.searching }

// Resize fits the scroll area to the content region.
func (v *endpointView) Resize(width, height int) {
	v.viewport.Width = max(width-4, 10)
	v.viewport.Height = max(height-6, 3)
}

func (v *endpointView) Enter() tea.Cmd {
	v.seq++
	v.loading = true
	return tea.Batch(v.spinner.Tick, v.fetch(v.seq))
}

func (v *endpointView) target() string {
	if v.queryParam == "" || v.query == "" {
		return v.endpoint
	}
	q := url.Values{}
	q.Set(v.queryParam, v.query)
	return v.endpoint + "?" + q.Encode()
}

func (v *endpointView) fetch(seq int) tea.Cmd {
	e := v.env
	name := v.name
	target := v.target()
	return func() tea.Msg {
		token, err := e.session.Token()
		if err != nil && !errors.Is(err, tokenstore.ErrNoToken) {
			return endpointMsg{name: name, seq: seq, err: fmt.Errorf("load token: %w", err)}
		}
		payload, err := e.backend.FetchJSON(e.ctx, token, target)
		if err != nil {
			log.Warn().Err(err).Str("path", target).Msg("view fetch failed")
		}
		return endpointMsg{name: name, seq: seq, payload: payload, err: err}
	}
}

func (v *endpointView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case endpointMsg:
		if msg.seq != v.seq {
			return nil
		}
		v.loading = false
		v.err = msg.err
		v.fetchedAt = time.Now()
		if msg.err == nil {
			v.lines = formatPayload(msg.payload)
		} else {
			v.lines = nil
		}
		v.viewport.SetContent(strings.Join(v.lines, "\n"))
		v.viewport.GotoTop()
		return nil

	case spinner.TickMsg:
		if !v.loading {
			return nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		if v.queryParam != "" && key.Matches(msg, v.env.keys.Search) {
			v.searching = true
			v.search.SetValue(v.query)
			return v.search.Focus()
		}
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return cmd
	}

	if v.searching {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return cmd
	}
	return nil
}

func (v *endpointView) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		v.searching = false
		v.search.Blur()
		v.query = strings.TrimSpace(v.search.Value())
		return v.Enter()
	case tea.KeyEsc:
		v.searching = false
		v.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	return cmd
}

func (v *endpointView) Render(rc renderContext) string {
	s := rc.Styles
	var b strings.Builder

	b.WriteString(s.Title.Render(v.title))
	b.WriteString("  ")
	b.WriteString(s.FaintText.Render("GET " + v.target()))
	b.WriteString("\n")

	switch {
	case v.searching:
		b.WriteString(v.search.View())
	case v.query != "":
		b.WriteString(s.MutedText.Render("filter: " + v.query))
	case v.queryParam != "":
		b.WriteString(s.FaintText.Render("press / to search"))
	}
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.spinner.View() + " " + s.WarningText.Render("Loading..."))
	case v.err != nil:
		b.WriteString(s.DangerText.Render(errorText(v.err)))
		var statusErr *api.StatusError
		if errors.As(v.err, &statusErr) && statusErr.Unauthorized() {
			b.WriteString("\n")
			b.WriteString(s.MutedText.Render("Sign in with an account that can open this page."))
		}
	case len(v.lines) == 0:
		b.WriteString(s.MutedText.Render("Nothing to show."))
	default:
		b.WriteString(s.Text.Render(v.viewport.View()))
		if !v.fetchedAt.IsZero() {
			b.WriteString("\n")
			b.WriteString(s.FaintText.Render(fmt.Sprintf("updated %s  %d%%", v.fetchedAt.Format("15:04:05"), int(v.viewport.ScrollPercent()*100))))
		}
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
