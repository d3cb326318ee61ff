// Package toast renders transient notifications on top of a Bubble Tea view.
//
// A Model holds a stack of toasts. Each toast closes on its own after
// Options.AutoClose, or earlier when clicked or dismissed. Its OnClose
// callback runs exactly once, whichever way it closed, and may return a
// command (for example a navigation) that the parent program then runs.
package toast

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Kind selects the toast colour and icon.
type Kind int

const (
	KindDefault Kind = iota
	KindInfo
	KindSuccess
	KindWarning
	KindError
)

// Positions.
const (
	TopLeft      = "top-left"
	TopCenter    = "top-center"
	TopRight     = "top-right"
	BottomLeft   = "bottom-left"
	BottomCenter = "bottom-center"
	BottomRight  = "bottom-right"
)

// Transitions.
const (
	TransitionSlide = "slide"
	TransitionFade  = "fade"
	TransitionNone  = "none"
)

const (
	tickInterval     = 100 * time.Millisecond
	enterFrames      = 3
	defaultAutoClose = 5 * time.Second
	defaultMax       = 3
	defaultWidth     = 44
	closeGlyph       = "✕"
)

// Options configure the notifier. Zero values fall back to sensible defaults
// except for the booleans, which are taken as given.
type Options struct {
	Position         string
	Transition       string
	CloseOnClick     bool
	PauseOnFocusLoss bool
	PauseOnHover     bool
	CloseButton      bool
	AutoClose        time.Duration
	Width            int
	Max              int
	Palette          Palette
}

// Palette holds hex colours per kind plus the toast surface.
type Palette struct {
	Surface string
	Text    string
	Border  string
	Info    string
	Success string
	Warning string
	Error   string
}

// DefaultPalette is used when Options.Palette is empty.
func DefaultPalette() Palette {
	return Palette{
		Surface: "#192330",
		Text:    "#cdcecf",
		Border:  "#39506d",
		Info:    "#63cdcf",
		Success: "#81b29a",
		Warning: "#dbc074",
		Error:   "#c94f6d",
	}
}

// Toast is one notification.
type Toast struct {
	ID      int
	Kind    Kind
	Message string
	OnClose func() tea.Cmd

	remaining time.Duration
	frame     int
}

// Model is the notifier state. It is a value type like every Bubble Tea
// component; keep the returned copy.
type Model struct {
	opts    Options
	toasts  []Toast
	nextID  int
	width   int
	height  int
	blurred bool
	hovered bool
	ticking bool
	last    time.Time
	now     func() time.Time
}

type tickMsg struct {
	at time.Time
}

// New returns an empty notifier.
func New(opts Options) Model {
	switch opts.Position {
	case TopLeft, TopCenter, TopRight, BottomLeft, BottomCenter, BottomRight:
	default:
		opts.Position = TopCenter
	}
	switch opts.Transition {
	case TransitionSlide, TransitionFade, TransitionNone:
	default:
		opts.Transition = TransitionNone
	}
	if opts.AutoClose <= 0 {
		opts.AutoClose = defaultAutoClose
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Max <= 0 {
		opts.Max = defaultMax
	}
	if opts.Palette == (Palette{}) {
		opts.Palette = DefaultPalette()
	}
	return Model{opts: opts, nextID: 1, now: time.Now}
}

// Options returns the effective configuration.
func (m Model) Options() Options {
	return m.opts
}

// SetPalette swaps colours, e.g. after a theme change.
func (m *Model) SetPalette(p Palette) {
	m.opts.Palette = p
}

// SetSize records the terminal size used for layout and hit testing.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Len returns the number of open toasts.
func (m Model) Len() int {
	return len(m.toasts)
}

// Toasts returns the open toasts, oldest first.
func (m Model) Toasts() []Toast {
	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// Push opens a toast and starts the timer loop if it is not running.
func (m Model) Push(kind Kind, message string, onClose func() tea.Cmd) (Model, tea.Cmd) {
	t := Toast{
		ID:        m.nextID,
		Kind:      kind,
		Message:   strings.TrimSpace(message),
		OnClose:   onClose,
		remaining: m.opts.AutoClose,
	}
	if m.opts.Transition == TransitionNone {
		t.frame = enterFrames
	}
	m.nextID++
	m.toasts = append(m.toasts, t)

	if m.ticking {
		return m, nil
	}
	m.ticking = true
	m.last = m.now()
	return m, tick()
}

// Success is Push with KindSuccess.
func (m Model) Success(message string, onClose func() tea.Cmd) (Model, tea.Cmd) {
	return m.Push(KindSuccess, message, onClose)
}

// Error is Push with KindError and no callback.
func (m Model) Error(message string) (Model, tea.Cmd) {
	return m.Push(KindError, message, nil)
}

// Info is Push with KindInfo and no callback.
func (m Model) Info(message string) (Model, tea.Cmd) {
	return m.Push(KindInfo, message, nil)
}

// Dismiss closes the toast with id.
func (m Model) Dismiss(id int) (Model, tea.Cmd) {
	for i, t := range m.toasts {
		if t.ID == id {
			return m.closeAt(i)
		}
	}
	return m, nil
}

// DismissNewest closes the most recent toast.
func (m Model) DismissNewest() (Model, tea.Cmd) {
	if len(m.toasts) == 0 {
		return m, nil
	}
	return m.closeAt(len(m.toasts) - 1)
}

// DismissAll closes every toast, running all callbacks in order.
func (m Model) DismissAll() (Model, tea.Cmd) {
	var cmds []tea.Cmd
	for len(m.toasts) > 0 {
		var cmd tea.Cmd
		m, cmd = m.closeAt(0)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) closeAt(i int) (Model, tea.Cmd) {
	t := m.toasts[i]
	m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
	if t.OnClose == nil {
		return m, nil
	}
	return m, t.OnClose()
}

// Paused reports whether timers are currently frozen.
func (m Model) Paused() bool {
	return (m.opts.PauseOnFocusLoss && m.blurred) || (m.opts.PauseOnHover && m.hovered)
}

// Update handles timer ticks, focus changes, window size and mouse input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m.handleTick(msg.at)
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.BlurMsg:
		m.blurred = true
	case tea.FocusMsg:
		m.blurred = false
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleTick(at time.Time) (Model, tea.Cmd) {
	elapsed := at.Sub(m.last)
	if elapsed < 0 {
		elapsed = 0
	}
	m.last = at

	paused := m.Paused()
	var cmds []tea.Cmd
	kept := m.toasts[:0:0]
	for _, t := range m.toasts {
		if t.frame < enterFrames {
			t.frame++
		}
		if !paused {
			t.remaining -= elapsed
		}
		if t.remaining <= 0 {
			if t.OnClose != nil {
				cmds = append(cmds, t.OnClose())
			}
			continue
		}
		kept = append(kept, t)
	}
	m.toasts = kept

	if len(m.toasts) == 0 {
		m.ticking = false
		return m, tea.Batch(cmds...)
	}
	cmds = append(cmds, tick())
	return m, tea.Batch(cmds...)
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	idx, onClose := m.hit(msg.X, msg.Y)
	if msg.Action == tea.MouseActionMotion {
		m.hovered = idx >= 0
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft || idx < 0 {
		return m, nil
	}
	if m.opts.CloseOnClick || onClose {
		return m.closeAt(idx)
	}
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{at: t}
	})
}

func (p Palette) accent(kind Kind) lipgloss.Color {
	switch kind {
	case KindInfo:
		return lipgloss.Color(p.Info)
	case KindSuccess:
		return lipgloss.Color(p.Success)
	case KindWarning:
		return lipgloss.Color(p.Warning)
	case KindError:
		return lipgloss.Color(p.Error)
	default:
		return lipgloss.Color(p.Border)
	}
}
