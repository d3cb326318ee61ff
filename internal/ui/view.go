package ui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/parkview/internal/api"
	"github.com/five82/parkview/internal/session"
	"github.com/five82/parkview/internal/toast"
)

// View is one screen of the route table.
type View interface {
	Title() string
	// Enter runs every time the route is navigated to.
	Enter() tea.Cmd
	// Update receives key messages while the view is on screen and
	// addressed results at any time.
	Update(msg tea.Msg) tea.Cmd
	Render(rc renderContext) string
	// Capturing reports whether the view is consuming typed text, in which
	// case global single-letter bindings are not applied.
	Capturing() bool
}

// renderContext is what a view needs to draw itself.
type renderContext struct {
	Width   int
	Height  int
	Theme   Theme
	Styles  Styles
	Session session.State
	Keys    keyMap
}

// env is shared by all views.
type env struct {
	ctx     context.Context
	session session.Provider
	backend api.Backend
	keys    keyMap
}

// Messages

// navigateMsg asks the root model to change route.
type navigateMsg struct {
	path string
}

// backMsg asks the root model to return to the previous route.
type backMsg struct{}

// statusMsg carries the result of a session status check.
type statusMsg struct {
	state session.State
	err   error
}

// logoutMsg carries the result of the remote logout.
type logoutMsg struct {
	message string
	err     error
}

// sessionClearedMsg follows the dismissal of the logout toast.
type sessionClearedMsg struct {
	err  error
	next string
}

// toastMsg asks the root model to show a notification.
type toastMsg struct {
	kind toast.Kind
	text string
}

// addressedMsg is delivered to the named view even when it is not on screen.
type addressedMsg interface {
	route() string
}

// Commands

func navigateCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{path: path}
	}
}

func backCmd() tea.Msg {
	return backMsg{}
}

func toastCmd(kind toast.Kind, text string) tea.Cmd {
	return func() tea.Msg {
		return toastMsg{kind: kind, text: text}
	}
}

func statusCmd(ctx context.Context, p session.Provider) tea.Cmd {
	return func() tea.Msg {
		st, err := p.Status(ctx)
		return statusMsg{state: st, err: err}
	}
}

func logoutCmd(ctx context.Context, p session.Provider) tea.Cmd {
	return func() tea.Msg {
		msg, err := p.Logout(ctx)
		return logoutMsg{message: msg, err: err}
	}
}

// clearSessionCmd is returned by the logout toast's close callback.
func clearSessionCmd(p session.Provider, next string) tea.Cmd {
	return func() tea.Msg {
		return sessionClearedMsg{err: p.Clear(), next: next}
	}
}

// errorText turns an API error into something fit for a toast.
func errorText(err error) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		if msg := strings.TrimSpace(statusErr.Message); msg != "" {
			return msg
		}
		if statusErr.Unauthorized() {
			return "Please sign in first"
		}
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled"
	}
	return "Could not reach the parking service"
}
