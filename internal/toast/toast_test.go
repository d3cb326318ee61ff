package toast

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closedMsg struct{ id string }

var epoch = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newModel(opts Options) Model {
	m := New(opts)
	m.now = func() time.Time { return epoch }
	m.SetSize(80, 24)
	return m
}

func closer(id string, calls *int) func() tea.Cmd {
	return func() tea.Cmd {
		*calls++
		return func() tea.Msg { return closedMsg{id: id} }
	}
}

// drain runs cmd and every batched command except timer ticks.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if _, ok := msg.(tickMsg); ok {
		return nil
	}
	return []tea.Msg{msg}
}

func TestNew_Defaults(t *testing.T) {
	m := New(Options{Position: "middle", Transition: "wobble"})
	opts := m.Options()
	assert.Equal(t, TopCenter, opts.Position)
	assert.Equal(t, TransitionNone, opts.Transition)
	assert.Equal(t, defaultAutoClose, opts.AutoClose)
	assert.Equal(t, DefaultPalette(), opts.Palette)
}

func TestAutoClose_RunsCallbackOnceAfterTimeout(t *testing.T) {
	m := newModel(Options{AutoClose: time.Second})
	calls := 0

	m, cmd := m.Success("Logout successful", closer("logout", &calls))
	require.NotNil(t, cmd, "first toast starts the timer")
	require.Equal(t, 1, m.Len())

	m, cmd = m.Update(tickMsg{at: epoch.Add(500 * time.Millisecond)})
	assert.Empty(t, drain(cmd))
	assert.Equal(t, 0, calls, "callback waits for the toast to close")
	assert.Equal(t, 1, m.Len())

	m, cmd = m.Update(tickMsg{at: epoch.Add(time.Second)})
	assert.Equal(t, []tea.Msg{closedMsg{id: "logout"}}, drain(cmd))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.ticking)
}

func TestPauseOnFocusLoss(t *testing.T) {
	m := newModel(Options{AutoClose: time.Second, PauseOnFocusLoss: true})
	m, _ = m.Info("hello")

	m, _ = m.Update(tea.BlurMsg{})
	assert.True(t, m.Paused())
	m, _ = m.Update(tickMsg{at: epoch.Add(10 * time.Second)})
	assert.Equal(t, 1, m.Len(), "timer frozen while unfocused")

	m, _ = m.Update(tea.FocusMsg{})
	m, _ = m.Update(tickMsg{at: epoch.Add(11 * time.Second)})
	assert.Equal(t, 0, m.Len())
}

func TestPauseOnHover_Disabled(t *testing.T) {
	m := newModel(Options{AutoClose: time.Second, PauseOnHover: false})
	m, _ = m.Info("hello")

	m, _ = m.Update(tea.MouseMsg{X: 20, Y: 1, Action: tea.MouseActionMotion})
	assert.False(t, m.Paused())

	m, _ = m.Update(tickMsg{at: epoch.Add(2 * time.Second)})
	assert.Equal(t, 0, m.Len())
}

func TestPauseOnHover_Enabled(t *testing.T) {
	m := newModel(Options{AutoClose: time.Second, PauseOnHover: true})
	m, _ = m.Info("hello")

	m, _ = m.Update(tea.MouseMsg{X: 20, Y: 1, Action: tea.MouseActionMotion})
	assert.True(t, m.Paused())

	m, _ = m.Update(tea.MouseMsg{X: 0, Y: 20, Action: tea.MouseActionMotion})
	assert.False(t, m.Paused())
}

func TestCloseOnClick(t *testing.T) {
	m := newModel(Options{CloseOnClick: true})
	calls := 0
	m, _ = m.Success("saved", closer("saved", &calls))

	m, cmd := m.Update(tea.MouseMsg{X: 0, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Len(), "click outside the toast is ignored")

	// top-center, 44 wide on an 80 column terminal starts at column 18.
	m, cmd = m.Update(tea.MouseMsg{X: 20, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, []tea.Msg{closedMsg{id: "saved"}}, drain(cmd))
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 1, calls)
}

func TestCloseButtonOnly(t *testing.T) {
	m := newModel(Options{CloseOnClick: false, CloseButton: true})
	m, _ = m.Info("hello")

	m, _ = m.Update(tea.MouseMsg{X: 20, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 1, m.Len(), "body click does nothing without close-on-click")

	m, _ = m.Update(tea.MouseMsg{X: 59, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 0, m.Len())
}

func TestDismiss(t *testing.T) {
	m := newModel(Options{})
	calls := 0
	m, _ = m.Push(KindWarning, "first", closer("first", &calls))
	m, _ = m.Push(KindError, "second", closer("second", &calls))

	m, cmd := m.DismissNewest()
	assert.Equal(t, []tea.Msg{closedMsg{id: "second"}}, drain(cmd))

	m, cmd = m.Dismiss(m.Toasts()[0].ID)
	assert.Equal(t, []tea.Msg{closedMsg{id: "first"}}, drain(cmd))
	assert.Equal(t, 2, calls)

	m, cmd = m.DismissNewest()
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Len())
}

func TestDismissAll(t *testing.T) {
	m := newModel(Options{})
	calls := 0
	m, _ = m.Push(KindInfo, "a", closer("a", &calls))
	m, _ = m.Push(KindInfo, "b", nil)
	m, _ = m.Push(KindInfo, "c", closer("c", &calls))

	m, cmd := m.DismissAll()
	assert.ElementsMatch(t, []tea.Msg{closedMsg{id: "a"}, closedMsg{id: "c"}}, drain(cmd))
	assert.Equal(t, 0, m.Len())
}

func TestOverlay_ReplacesRowsAtPosition(t *testing.T) {
	base := strings.TrimSuffix(strings.Repeat("content\n", 24), "\n")

	m := newModel(Options{Position: TopCenter})
	assert.Equal(t, base, m.Overlay(base), "no toasts leaves the view untouched")

	m, _ = m.Success("Logout successful", nil)
	rows := strings.Split(m.Overlay(base), "\n")
	require.Len(t, rows, 24)
	assert.Contains(t, rows[1], "Logout successful")
	assert.Equal(t, "content", rows[23])

	m = newModel(Options{Position: BottomRight})
	m, _ = m.Error("boom")
	rows = strings.Split(m.Overlay(base), "\n")
	require.Len(t, rows, 24)
	assert.Contains(t, rows[22], "boom")
	assert.Equal(t, "content", rows[0])
}

func TestOverlay_SlideRevealsGradually(t *testing.T) {
	base := strings.TrimSuffix(strings.Repeat("content\n", 24), "\n")
	m := newModel(Options{Position: TopCenter, Transition: TransitionSlide})
	m, _ = m.Info("sliding in")

	countToastRows := func(out string) int {
		n := 0
		for _, row := range strings.Split(out, "\n") {
			if row != "content" {
				n++
			}
		}
		return n
	}

	entering := countToastRows(m.Overlay(base))
	for i := 0; i < enterFrames; i++ {
		m, _ = m.Update(tickMsg{at: epoch.Add(time.Duration(i+1) * tickInterval)})
	}
	settled := countToastRows(m.Overlay(base))

	assert.Less(t, entering, settled)
	assert.Equal(t, 3, settled)
}

func TestMaxVisible(t *testing.T) {
	base := strings.TrimSuffix(strings.Repeat("content\n", 24), "\n")
	m := newModel(Options{Max: 2})
	for _, msg := range []string{"one", "two", "three"} {
		m, _ = m.Info(msg)
	}
	out := m.Overlay(base)
	assert.NotContains(t, out, "one")
	assert.Contains(t, out, "two")
	assert.Contains(t, out, "three")
	assert.Equal(t, 3, m.Len())
}
