package toast

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type placement struct {
	index int
	x, y  int
	w, h  int
	lines []string
}

func (m Model) top() bool {
	return strings.HasPrefix(m.opts.Position, "top")
}

func (m Model) offsetX(boxWidth int) int {
	if m.width <= boxWidth {
		return 0
	}
	switch {
	case strings.HasSuffix(m.opts.Position, "left"):
		return 0
	case strings.HasSuffix(m.opts.Position, "right"):
		return m.width - boxWidth
	default:
		return (m.width - boxWidth) / 2
	}
}

// layout places the newest Max toasts. Top positions stack downward with
// the newest first; bottom positions stack upward with the newest last.
func (m Model) layout() []placement {
	if len(m.toasts) == 0 {
		return nil
	}
	first := len(m.toasts) - m.opts.Max
	if first < 0 {
		first = 0
	}

	var out []placement
	if m.top() {
		y := 0
		for i := len(m.toasts) - 1; i >= first; i-- {
			p := m.place(i)
			p.y = y
			y += p.h
			out = append(out, p)
		}
		return out
	}

	bottom := m.height
	for i := len(m.toasts) - 1; i >= first; i-- {
		p := m.place(i)
		bottom -= p.h
		p.y = bottom
		out = append(out, p)
	}
	return out
}

func (m Model) place(i int) placement {
	box := m.renderToast(m.toasts[i])
	lines := strings.Split(box, "\n")
	w := lipgloss.Width(box)
	return placement{
		index: i,
		x:     m.offsetX(w),
		w:     w,
		h:     len(lines),
		lines: lines,
	}
}

func (m Model) renderToast(t Toast) string {
	p := m.opts.Palette
	inner := m.opts.Width - 4
	if inner < 8 {
		inner = 8
	}

	body := icon(t.Kind) + " " + t.Message
	if m.opts.CloseButton {
		text := lipgloss.NewStyle().Width(inner - 2).Render(body)
		glyph := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text)).Render(" " + closeGlyph)
		body = lipgloss.JoinHorizontal(lipgloss.Top, text, glyph)
	} else {
		body = lipgloss.NewStyle().Width(inner).Render(body)
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.accent(t.Kind)).
		Foreground(lipgloss.Color(p.Text)).
		Background(lipgloss.Color(p.Surface)).
		Padding(0, 1)
	if m.opts.Transition == TransitionFade && t.frame < enterFrames {
		style = style.Faint(true)
	}
	return style.Render(body)
}

func icon(kind Kind) string {
	switch kind {
	case KindSuccess:
		return "✓"
	case KindError:
		return "✗"
	case KindWarning:
		return "!"
	case KindInfo:
		return "i"
	default:
		return "•"
	}
}

// hit returns the index of the toast under (x, y), or -1, and whether the
// point is on its close glyph.
func (m Model) hit(x, y int) (int, bool) {
	for _, p := range m.layout() {
		if x < p.x || x >= p.x+p.w || y < p.y || y >= p.y+p.h {
			continue
		}
		onGlyph := m.opts.CloseButton && y == p.y+1 && x >= p.x+p.w-4 && x < p.x+p.w-1
		return p.index, onGlyph
	}
	return -1, false
}

// Overlay draws the toasts over base, replacing the rows they occupy.
// While a slide transition is running only part of the box is shown,
// anchored to the edge the toast enters from.
func (m Model) Overlay(base string) string {
	placements := m.layout()
	if len(placements) == 0 {
		return base
	}

	rows := strings.Split(base, "\n")
	for len(rows) < m.height {
		rows = append(rows, "")
	}

	for _, p := range placements {
		lines := p.lines
		y := p.y
		if m.opts.Transition == TransitionSlide {
			lines, y = m.slide(p)
		}
		pad := strings.Repeat(" ", p.x)
		for i, line := range lines {
			row := y + i
			if row < 0 || row >= len(rows) {
				continue
			}
			rows[row] = pad + line
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) slide(p placement) ([]string, int) {
	frame := m.toasts[p.index].frame
	if frame >= enterFrames {
		return p.lines, p.y
	}
	show := (p.h*(frame+1) + enterFrames - 1) / (enterFrames + 1)
	if show < 1 {
		show = 1
	}
	if m.top() {
		return p.lines[p.h-show:], p.y
	}
	return p.lines[:show], p.y + p.h - show
}
