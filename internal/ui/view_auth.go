package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/five82/parkview/internal/api"
	"github.com/five82/parkview/internal/toast"
)

const (
	defaultLoginMessage    = "Login successful"
	defaultRegisterMessage = "Registration successful"
)

type loginResultMsg struct {
	message string
	dest    string
	err     error
}

func (loginResultMsg) route() string { return "login" }

type registerResultMsg struct {
	message string
	err     error
}

func (registerResultMsg) route() string { return "register" }

// loginView exchanges credentials for a token.
type loginView struct {
	env  *env
	form form
}

func newLoginView(e *env) *loginView {
	return &loginView{
		env: e,
		form: newForm(
			newField("Username", "username", 64, false),
			newField("Password", "password", 128, true),
		),
	}
}

func (v *loginView) Title() string   { return "Sign in" }
func (v *loginView) Capturing() bool { return true }

func (v *loginView) Enter() tea.Cmd {
	v.form.err = ""
	v.form.busy = false
	v.form.clear(1)
	return v.form.setFocus(0)
}

func (v *loginView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loginResultMsg:
		v.form.busy = false
		v.form.clear(1)
		if msg.err != nil {
			v.form.err = errorText(msg.err)
			return toastCmd(toast.KindError, v.form.err)
		}
		message := strings.TrimSpace(msg.message)
		if message == "" {
			message = defaultLoginMessage
		}
		return tea.Batch(toastCmd(toast.KindSuccess, message), navigateCmd(msg.dest))

	case tea.KeyMsg:
		submit, cmd := v.form.update(msg, v.env.keys)
		if !submit {
			return cmd
		}
		if !v.form.complete() {
			v.form.err = "Username and password are required"
			return nil
		}
		v.form.busy = true
		return v.login(v.form.value(0), v.form.fields[1].input.Value())
	}
	return v.form.forward(msg)
}

func (v *loginView) login(username, password string) tea.Cmd {
	e := v.env
	return func() tea.Msg {
		message, err := e.session.Login(e.ctx, username, password)
		if err != nil {
			log.Warn().Err(err).Str("username", username).Msg("login failed")
			return loginResultMsg{err: err}
		}
		dest := "/user_dashboard"
		if st, err := e.session.Status(e.ctx); err == nil && st.Admin {
			dest = "/admin_dashboard"
		}
		return loginResultMsg{message: message, dest: dest}
	}
}

func (v *loginView) Render(rc renderContext) string {
	var b strings.Builder
	b.WriteString(rc.Styles.Title.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString(v.form.render(rc.Styles, "sign in"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// registerView creates an account.
type registerView struct {
	env  *env
	form form
}

func newRegisterView(e *env) *registerView {
	return &registerView{
		env: e,
		form: newForm(
			newField("Name", "full name", 80, false),
			newField("Username", "username", 64, false),
			newField("Email", "name@example.com", 120, false),
			newField("Password", "password", 128, true),
		),
	}
}

func (v *registerView) Title() string   { return "Register" }
func (v *registerView) Capturing() bool { return true }

func (v *registerView) Enter() tea.Cmd {
	v.form.err = ""
	v.form.busy = false
	return v.form.setFocus(0)
}

func (v *registerView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case registerResultMsg:
		v.form.busy = false
		if msg.err != nil {
			v.form.err = errorText(msg.err)
			return toastCmd(toast.KindError, v.form.err)
		}
		for i := range v.form.fields {
			v.form.clear(i)
		}
		message := strings.TrimSpace(msg.message)
		if message == "" {
			message = defaultRegisterMessage
		}
		return tea.Batch(toastCmd(toast.KindSuccess, message), navigateCmd("/login"))

	case tea.KeyMsg:
		submit, cmd := v.form.update(msg, v.env.keys)
		if !submit {
			return cmd
		}
		if !v.form.complete() {
			v.form.err = "All fields are required"
			return nil
		}
		if !strings.Contains(v.form.value(2), "@") {
			v.form.err = "Email address looks invalid"
			return nil
		}
		v.form.busy = true
		return v.register(api.RegisterRequest{
			Name:     v.form.value(0),
			Username: v.form.value(1),
			Email:    v.form.value(2),
			Password: v.form.fields[3].input.Value(),
		})
	}
	return v.form.forward(msg)
}

func (v *registerView) register(req api.RegisterRequest) tea.Cmd {
	e := v.env
	return func() tea.Msg {
		resp, err := e.backend.Register(e.ctx, req)
		if err != nil {
			log.Warn().Err(err).Str("username", req.Username).Msg("registration failed")
			return registerResultMsg{err: err}
		}
		log.Info().Str("username", req.Username).Msg("registered")
		return registerResultMsg{message: resp.Message}
	}
}

func (v *registerView) Render(rc renderContext) string {
	var b strings.Builder
	b.WriteString(rc.Styles.Title.Render("Create an account"))
	b.WriteString("\n\n")
	b.WriteString(v.form.render(rc.Styles, "register"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
