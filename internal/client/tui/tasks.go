package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskify-app/taskify/internal/client/api"
	"github.com/taskify-app/taskify/internal/client/tasklist"
)

type filterState struct {
	input  textinput.Model
	active bool
}

func newFilterState() filterState {
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "filter tasks..."
	input.CharLimit = 200
	return filterState{input: input}
}

// visibleTasks applies the current filter query to the last snapshot.
func (m Model) visibleTasks() []api.Task {
	return tasklist.Filter(m.tasks, strings.TrimSpace(m.filter.input.Value()))
}

func (m Model) selectedTask() *api.Task {
	visible := m.visibleTasks()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return nil
	}
	task := visible[m.cursor]
	return &task
}

func (m Model) updateTasks(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// typing goes to the filter input while it is focused
	if m.filter.active {
		switch key.String() {
		case "enter", "esc":
			if key.String() == "esc" {
				m.filter.input.SetValue("")
			}
			m.filter.active = false
			m.filter.input.Blur()
			m.cursor = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.filter.input, cmd = m.filter.input.Update(msg)
		m.cursor = 0
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.visibleTasks())-1 {
			m.cursor++
		}
		return m, nil

	case "/":
		m.filter.active = true
		return m, m.filter.input.Focus()

	case "esc":
		if m.filter.input.Value() != "" {
			m.filter.input.SetValue("")
			m.cursor = 0
		}
		return m, nil

	case "r":
		m.status = mutedStyle.Render("refreshing...")
		return m, m.refreshCmd()

	case "a":
		m.view = viewForm
		m.status = ""
		m.form = newTaskForm()
		return m, m.form.focusCmd()

	case "e":
		task := m.selectedTask()
		if task == nil {
			return m, nil
		}
		m.view = viewForm
		m.status = ""
		m.form = newTaskForm()
		m.form.loadTask(*task)
		return m, m.form.focusCmd()

	case " ":
		task := m.selectedTask()
		if task == nil {
			return m, nil
		}
		completed := !task.Completed
		return m, m.updateTaskCmd(task.ID, api.TaskPatch{Completed: &completed})

	case "d":
		task := m.selectedTask()
		if task == nil {
			return m, nil
		}
		m.view = viewConfirmDelete
		m.deleteTarget = task
		return m, nil

	case "L":
		return m, m.logoutCmd()
	}

	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "enter":
		target := m.deleteTarget
		m.view = viewTasks
		m.deleteTarget = nil
		if target == nil {
			return m, nil
		}
		return m, m.deleteTaskCmd(target.ID)
	case "n", "esc", "q":
		m.view = viewTasks
		m.deleteTarget = nil
		return m, nil
	}
	return m, nil
}

func (m Model) updateTaskCmd(id string, patch api.TaskPatch) tea.Cmd {
	list := m.list
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := newTimeoutContext(timeout)
		defer cancel()
		return opDoneMsg{err: list.Update(ctx, id, patch)}
	}
}

func (m Model) deleteTaskCmd(id string) tea.Cmd {
	list := m.list
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := newTimeoutContext(timeout)
		defer cancel()
		return opDoneMsg{err: list.Delete(ctx, id)}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	sess := m.session
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := newTimeoutContext(timeout)
		defer cancel()
		return logoutMsg{err: sess.Logout(ctx)}
	}
}

func (m Model) viewTasks() string {
	var b strings.Builder

	header := titleStyle.Render("Taskify")
	if user := m.session.Current(); user != nil {
		header += mutedStyle.Render("  " + user.Email)
	}
	b.WriteString(header + "\n\n")

	if m.filter.active || m.filter.input.Value() != "" {
		b.WriteString(m.filter.input.View() + "\n\n")
	}

	visible := m.visibleTasks()
	switch {
	case m.state == tasklist.StateLoading:
		b.WriteString(mutedStyle.Render("loading tasks...") + "\n")
	case len(visible) == 0 && m.filter.input.Value() != "":
		b.WriteString(mutedStyle.Render("no tasks match the filter") + "\n")
	case len(visible) == 0:
		b.WriteString(mutedStyle.Render("no tasks yet, press 'a' to add one") + "\n")
	default:
		for i, task := range visible {
			b.WriteString(m.renderTaskLine(i, task) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render(
		"a add • e edit • d delete • space toggle • / filter • r refresh • L logout • q quit"))
	return b.String()
}

func (m Model) renderTaskLine(index int, task api.Task) string {
	box := "[ ]"
	title := task.Title
	if task.Completed {
		box = "[x]"
		title = doneStyle.Render(title)
	}

	line := fmt.Sprintf("%s %s %s", box, renderPriority(task.Priority), title)
	if task.Description != "" {
		line += mutedStyle.Render("  " + task.Description)
	}

	prefix := "  "
	if index == m.cursor {
		prefix = selectedStyle.Render("> ")
	}
	return prefix + line
}

func (m Model) viewConfirmDelete() string {
	title := ""
	if m.deleteTarget != nil {
		title = m.deleteTarget.Title
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Delete task") + "\n\n")
	b.WriteString(fmt.Sprintf("Delete %q?\n\n", title))
	b.WriteString(helpStyle.Render("y delete • n cancel"))
	return b.String()
}
