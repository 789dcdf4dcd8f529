package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginForm struct {
	email    textinput.Model
	password textinput.Model
	focus    int
}

func newLoginForm() loginForm {
	email := textinput.New()
	email.Prompt = "> "
	email.Placeholder = "email"
	email.CharLimit = 200

	password := textinput.New()
	password.Prompt = "> "
	password.Placeholder = "password"
	password.CharLimit = 200
	password.EchoMode = textinput.EchoPassword

	return loginForm{email: email, password: password}
}

func (f *loginForm) focusCmd() tea.Cmd {
	f.focus = 0
	f.password.Blur()
	return f.email.Focus()
}

func (f *loginForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.email, &f.password}
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			return m, cycleFocus(m.login.inputs(), &m.login.focus, key.String())
		case "ctrl+r":
			m.view = viewRegister
			m.status = ""
			return m, m.register.focusCmd()
		case "enter":
			email := strings.TrimSpace(m.login.email.Value())
			password := m.login.password.Value()
			if email == "" || password == "" {
				m.status = errorStyle.Render("email and password are required")
				return m, nil
			}
			m.status = mutedStyle.Render("signing in...")
			return m, m.loginCmd(email, password)
		}
	}

	var cmds []tea.Cmd
	for _, in := range m.login.inputs() {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	sess := m.session
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := newTimeoutContext(timeout)
		defer cancel()
		return authDoneMsg{err: sess.Login(ctx, email, password)}
	}
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Taskify") + "\n\n")
	b.WriteString("Sign in\n\n")
	b.WriteString(m.login.email.View() + "\n")
	b.WriteString(m.login.password.View() + "\n\n")
	b.WriteString(helpStyle.Render("enter sign in • ctrl+r register • esc quit"))
	return b.String()
}

type registerForm struct {
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int
}

func newRegisterForm() registerForm {
	name := textinput.New()
	name.Prompt = "> "
	name.Placeholder = "name"
	name.CharLimit = 200

	email := textinput.New()
	email.Prompt = "> "
	email.Placeholder = "email"
	email.CharLimit = 200

	password := textinput.New()
	password.Prompt = "> "
	password.Placeholder = "password"
	password.CharLimit = 200
	password.EchoMode = textinput.EchoPassword

	return registerForm{name: name, email: email, password: password}
}

func (f *registerForm) focusCmd() tea.Cmd {
	f.focus = 0
	f.email.Blur()
	f.password.Blur()
	return f.name.Focus()
}

func (f *registerForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.name, &f.email, &f.password}
}

func (m Model) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.view = viewLogin
			m.status = ""
			return m, m.login.focusCmd()
		case "tab", "shift+tab", "up", "down":
			return m, cycleFocus(m.register.inputs(), &m.register.focus, key.String())
		case "enter":
			name := strings.TrimSpace(m.register.name.Value())
			email := strings.TrimSpace(m.register.email.Value())
			password := m.register.password.Value()
			if name == "" || email == "" || password == "" {
				m.status = errorStyle.Render("name, email and password are required")
				return m, nil
			}
			m.status = mutedStyle.Render("creating account...")
			return m, m.registerCmd(name, email, password)
		}
	}

	var cmds []tea.Cmd
	for _, in := range m.register.inputs() {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) registerCmd(name, email, password string) tea.Cmd {
	sess := m.session
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := newTimeoutContext(timeout)
		defer cancel()
		return authDoneMsg{err: sess.Register(ctx, name, email, password)}
	}
}

func (m Model) viewRegister() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Taskify") + "\n\n")
	b.WriteString("Create account\n\n")
	b.WriteString(m.register.name.View() + "\n")
	b.WriteString(m.register.email.View() + "\n")
	b.WriteString(m.register.password.View() + "\n\n")
	b.WriteString(helpStyle.Render("enter create • esc back to sign in"))
	return b.String()
}

// cycleFocus moves focus between form inputs, wrapping at both ends.
func cycleFocus(inputs []*textinput.Model, focus *int, key string) tea.Cmd {
	if key == "shift+tab" || key == "up" {
		*focus--
	} else {
		*focus++
	}
	if *focus < 0 {
		*focus = len(inputs) - 1
	}
	if *focus >= len(inputs) {
		*focus = 0
	}

	var cmd tea.Cmd
	for i, in := range inputs {
		if i == *focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}
