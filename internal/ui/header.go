package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the one-line status bar: app name, current page and
// the session as last reported by the provider.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	title := ""
	if m.view != nil {
		title = m.view.Title()
	}
	left := []string{
		bg.Render("parkview", styles.Logo),
		bg.Render(title, styles.Title),
	}
	if !compact {
		left = append(left, bg.Render(m.path, styles.FaintText))
	}

	right := m.sessionParts(styles, bg, compact)
	if !compact && m.apiURL != "" {
		right = append(right, bg.Render(truncate(m.apiURL, 40), styles.FaintText))
	}

	leftText := bg.Join(left, "  ")
	rightText := bg.Join(right, "  ")
	gap := m.width - 2 - lipgloss.Width(leftText) - lipgloss.Width(rightText)
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).MaxHeight(headerHeight).
		Render(leftText + bg.Spaces(gap) + rightText)
}

func (m Model) sessionParts(styles Styles, bg BgStyle, compact bool) []string {
	st := m.state
	if !st.LoggedIn || st.User == nil {
		return []string{bg.Render("○ signed out", styles.MutedText)}
	}

	parts := []string{bg.Render("● "+truncate(st.User.DisplayName(), 24), styles.SuccessText)}
	if st.Admin {
		parts = append(parts, styles.Badge.Render("admin"))
	}
	if !compact {
		if left := formatRemaining(st.Remaining(m.now())); left != "" {
			parts = append(parts, bg.Render("expires in "+left, styles.MutedText))
		}
	}
	return parts
}
