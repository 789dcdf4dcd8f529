// Package tui implements the interactive terminal frontend. All server calls
// run asynchronously as tea.Cmds so the interface never blocks on the
// network.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskify-app/taskify/internal/client/api"
	"github.com/taskify-app/taskify/internal/client/session"
	"github.com/taskify-app/taskify/internal/client/tasklist"
)

type view int

const (
	viewLogin view = iota
	viewRegister
	viewTasks
	viewForm
	viewConfirmDelete
)

// messages produced by async commands
type authDoneMsg struct{ err error }
type logoutMsg struct{ err error }
type listMsg struct {
	state tasklist.State
	tasks []api.Task
	err   error
}
type opDoneMsg struct{ err error }

type Model struct {
	session *session.Manager
	list    *tasklist.List
	timeout time.Duration

	view   view
	status string
	width  int
	height int

	tasks  []api.Task
	state  tasklist.State
	cursor int
	filter filterState

	login    loginForm
	register registerForm
	form     taskForm

	deleteTarget *api.Task
}

func NewModel(sess *session.Manager, list *tasklist.List, timeout time.Duration) Model {
	m := Model{
		session:  sess,
		list:     list,
		timeout:  timeout,
		login:    newLoginForm(),
		register: newRegisterForm(),
		form:     newTaskForm(),
		filter:   newFilterState(),
	}
	if sess.LoggedIn() {
		m.view = viewTasks
	} else {
		m.view = viewLogin
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.view == viewTasks {
		return m.refreshCmd()
	}
	return m.login.focusCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case listMsg:
		m.state = msg.state
		m.tasks = msg.tasks
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
		}
		if m.cursor >= len(m.visibleTasks()) {
			m.cursor = max(0, len(m.visibleTasks())-1)
		}
		return m, nil

	case authDoneMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
			return m, nil
		}
		m.view = viewTasks
		m.status = ""
		m.login = newLoginForm()
		m.register = newRegisterForm()
		return m, m.refreshCmd()

	case logoutMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
			return m, nil
		}
		m.view = viewLogin
		m.status = ""
		m.tasks = nil
		m.cursor = 0
		m.filter = newFilterState()
		return m, m.login.focusCmd()

	case opDoneMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
			return m, nil
		}
		return m, m.refreshCmd()
	}

	switch m.view {
	case viewLogin:
		return m.updateLogin(msg)
	case viewRegister:
		return m.updateRegister(msg)
	case viewTasks:
		return m.updateTasks(msg)
	case viewForm:
		return m.updateForm(msg)
	case viewConfirmDelete:
		return m.updateConfirmDelete(msg)
	}
	return m, nil
}

func (m Model) View() string {
	var content string
	switch m.view {
	case viewLogin:
		content = m.viewLogin()
	case viewRegister:
		content = m.viewRegister()
	case viewTasks:
		content = m.viewTasks()
	case viewForm:
		content = m.viewForm()
	case viewConfirmDelete:
		content = m.viewConfirmDelete()
	}
	if m.status != "" {
		content += "\n" + m.status
	}
	return panelStyle.Render(content)
}

func newTimeoutContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// refreshCmd refetches the task collection and reports the new snapshot.
func (m Model) refreshCmd() tea.Cmd {
	list := m.list
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := newTimeoutContext(timeout)
		defer cancel()
		err := list.Refresh(ctx)
		state, tasks, _ := list.Snapshot()
		return listMsg{state: state, tasks: tasks, err: err}
	}
}
