package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// routeLink is an entry of the home menu.
type routeLink struct {
	Path  string
	Title string
	Admin bool
}

// homeView is the landing page: a menu of every other route.
type homeView struct {
	env    *env
	links  []routeLink
	cursor int
}

func newHomeView(e *env, links []routeLink) *homeView {
	return &homeView{env: e, links: links}
}

func (v *homeView) Title() string   { return "Home" }
func (v *homeView) Capturing() bool { return false }
func (v *homeView) Enter() tea.Cmd  { return nil }

func (v *homeView) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(v.links) == 0 {
		return nil
	}
	switch {
	case key.Matches(keyMsg, v.env.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(keyMsg, v.env.keys.Down):
		if v.cursor < len(v.links)-1 {
			v.cursor++
		}
	case key.Matches(keyMsg, v.env.keys.Confirm):
		return navigateCmd(v.links[v.cursor].Path)
	}
	return nil
}

func (v *homeView) Render(rc renderContext) string {
	s := rc.Styles
	var b strings.Builder

	b.WriteString(s.Title.Render("Parking booking"))
	b.WriteString("\n\n")

	switch {
	case rc.Session.LoggedIn && rc.Session.User != nil:
		b.WriteString(s.Text.Render(fmt.Sprintf("Welcome back, %s.", rc.Session.User.DisplayName())))
	default:
		b.WriteString(s.MutedText.Render("You are not signed in. Pick Sign in or Register below."))
	}
	b.WriteString("\n\n")

	for i, link := range v.links {
		label := fmt.Sprintf("%-18s %s", link.Title, link.Path)
		if link.Admin {
			label += " " + s.FaintText.Render("(admin)")
		}
		if i == v.cursor {
			b.WriteString(s.Selected.Render("> " + label))
		} else {
			b.WriteString(s.Text.Render("  " + label))
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
