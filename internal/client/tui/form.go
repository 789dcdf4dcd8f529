package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskify-app/taskify/internal/client/api"
)

var priorities = []string{"Low", "Medium", "High"}

// taskForm backs both the add and the edit screen; editID is empty when
// adding.
type taskForm struct {
	editID      string
	title       textinput.Model
	description textinput.Model
	priority    int
	focus       int
}

func newTaskForm() taskForm {
	title := textinput.New()
	title.Prompt = "> "
	title.Placeholder = "title"
	title.CharLimit = 200

	description := textinput.New()
	description.Prompt = "> "
	description.Placeholder = "description (optional)"
	description.CharLimit = 500

	return taskForm{title: title, description: description}
}

func (f *taskForm) loadTask(task api.Task) {
	f.editID = task.ID
	f.title.SetValue(task.Title)
	f.title.CursorEnd()
	f.description.SetValue(task.Description)
	for i, p := range priorities {
		if p == task.Priority {
			f.priority = i
		}
	}
}

func (f *taskForm) focusCmd() tea.Cmd {
	f.focus = 0
	f.description.Blur()
	return f.title.Focus()
}

func (f *taskForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.title, &f.description}
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.view = viewTasks
			m.status = ""
			return m, nil
		case "tab", "shift+tab", "up", "down":
			return m, cycleFocus(m.form.inputs(), &m.form.focus, key.String())
		case "ctrl+p":
			m.form.priority = (m.form.priority + 1) % len(priorities)
			return m, nil
		case "enter":
			title := strings.TrimSpace(m.form.title.Value())
			if title == "" {
				m.status = errorStyle.Render("title is required")
				return m, nil
			}
			m.view = viewTasks
			m.status = ""
			return m, m.submitFormCmd(title)
		}
	}

	var cmds []tea.Cmd
	for _, in := range m.form.inputs() {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) submitFormCmd(title string) tea.Cmd {
	list := m.list
	timeout := m.timeout
	form := m.form
	description := strings.TrimSpace(form.description.Value())
	priority := priorities[form.priority]

	return func() tea.Msg {
		ctx, cancel := newTimeoutContext(timeout)
		defer cancel()

		if form.editID == "" {
			draft := api.TaskDraft{Title: title, Description: description, Priority: priority}
			return opDoneMsg{err: list.Create(ctx, draft)}
		}

		patch := api.TaskPatch{Title: &title, Description: &description, Priority: &priority}
		return opDoneMsg{err: list.Update(ctx, form.editID, patch)}
	}
}

func (m Model) viewForm() string {
	heading := "New task"
	if m.form.editID != "" {
		heading = "Edit task"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(heading) + "\n\n")
	b.WriteString(m.form.title.View() + "\n")
	b.WriteString(m.form.description.View() + "\n\n")
	b.WriteString("Priority: " + renderPriority(priorities[m.form.priority]) + "\n\n")
	b.WriteString(helpStyle.Render("enter save • ctrl+p priority • tab next field • esc cancel"))
	return b.String()
}
