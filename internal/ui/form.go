package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formField struct {
	label string
	input textinput.Model
}

// form is a vertical stack of text inputs with one focused field.
type form struct {
	fields []formField
	focus  int
	busy   bool
	err    string
}

func newField(label, placeholder string, limit int, secret bool) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 32
	ti.Prompt = ""
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return formField{label: label, input: ti}
}

func newForm(fields ...formField) form {
	return form{fields: fields}
}

func (f *form) setFocus(i int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.focus = (i + len(f.fields)) % len(f.fields)
	var cmd tea.Cmd
	for j := range f.fields {
		if j == f.focus {
			cmd = f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
	return cmd
}

// update routes a key to the form. submit is true when enter is pressed on
// the last field.
func (f *form) update(msg tea.KeyMsg, keys keyMap) (submit bool, cmd tea.Cmd) {
	if f.busy && msg.Type != tea.KeyEsc {
		return false, nil
	}
	if msg.Type == tea.KeyEsc {
		return false, backCmd
	}
	switch {
	case key.Matches(msg, keys.NextItem):
		return false, f.setFocus(f.focus + 1)
	case key.Matches(msg, keys.PrevItem):
		return false, f.setFocus(f.focus - 1)
	case key.Matches(msg, keys.Confirm):
		if f.focus < len(f.fields)-1 {
			return false, f.setFocus(f.focus + 1)
		}
		return true, nil
	}
	f.err = ""
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return false, cmd
}

// forward passes non-key messages (cursor blink) to the focused input.
func (f *form) forward(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

func (f *form) complete() bool {
	for i := range f.fields {
		if f.value(i) == "" {
			return false
		}
	}
	return true
}

func (f *form) clear(i int) {
	f.fields[i].input.SetValue("")
}

func (f *form) render(s Styles, submitLabel string) string {
	var b strings.Builder
	for i, field := range f.fields {
		label := s.MutedText.Render(field.label)
		if i == f.focus {
			label = s.AccentText.Render(field.label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		panel := s.Panel
		if i == f.focus {
			panel = s.FocusPanel
		}
		b.WriteString(panel.Render(field.input.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case f.busy:
		b.WriteString(s.WarningText.Render("Working..."))
	case f.err != "":
		b.WriteString(s.DangerText.Render(f.err))
	default:
		b.WriteString(s.FaintText.Render("enter " + submitLabel + "  tab next field  esc back"))
	}
	return b.String()
}
