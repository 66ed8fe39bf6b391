// Package tui is the terminal front end for the task API.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskflow/internal/client"
	"taskflow/internal/models"
)

// Run starts the TUI against the given API client.
func Run(ctx context.Context, c *client.Client) error {
	program := tea.NewProgram(newModel(c), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type mode int

const (
	modeList mode = iota
	modeCreate
)

type model struct {
	client  *client.Client
	tasks   []models.Task
	cursor  int
	filter  models.Status // empty means show all
	mode    mode
	form    createForm
	status  string
	loading bool
}

// createForm is the inline new-task form: title, description, assignee.
type createForm struct {
	fields [3]string
	focus  int
}

var formLabels = [3]string{"Title", "Description", "Assignee"}

type tasksLoadedMsg []models.Task

type mutationDoneMsg struct{}

type errorMsg struct {
	err error
}

func newModel(c *client.Client) *model {
	return &model{client: c, loading: true}
}

func (m *model) Init() tea.Cmd {
	return m.fetchTasks()
}

func (m *model) fetchTasks() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		tasks, err := c.ListTasks(ctx)
		if err != nil {
			return errorMsg{err}
		}
		return tasksLoadedMsg(tasks)
	}
}

func (m *model) cycleStatus(task models.Task) tea.Cmd {
	c := m.client
	next := task.Status.Next()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := c.UpdateTask(ctx, task.ID, models.UpdateTaskInput{Status: &next}); err != nil {
			return errorMsg{err}
		}
		return mutationDoneMsg{}
	}
}

func (m *model) deleteTask(id int64) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.DeleteTask(ctx, id); err != nil {
			return errorMsg{err}
		}
		return mutationDoneMsg{}
	}
}

func (m *model) createTask(input models.CreateTaskInput) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := c.CreateTask(ctx, input); err != nil {
			return errorMsg{err}
		}
		return mutationDoneMsg{}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		m.tasks = msg
		m.loading = false
		m.clampCursor()
		return m, nil
	case mutationDoneMsg:
		// Every mutation refetches the full list; nothing is updated
		// optimistically.
		return m, m.fetchTasks()
	case errorMsg:
		m.loading = false
		m.status = msg.err.Error()
		return m, nil
	case tea.KeyMsg:
		if m.mode == modeCreate {
			return m.updateCreate(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "r", "f5":
		m.status = ""
		m.loading = true
		return m, m.fetchTasks()
	case "0":
		m.filter = ""
		m.clampCursor()
	case "1":
		m.filter = models.StatusTodo
		m.clampCursor()
	case "2":
		m.filter = models.StatusInProgress
		m.clampCursor()
	case "3":
		m.filter = models.StatusDone
		m.clampCursor()
	case "enter", "c":
		if task, ok := m.selected(); ok {
			m.status = ""
			return m, m.cycleStatus(task)
		}
	case "d":
		if task, ok := m.selected(); ok {
			m.status = ""
			return m, m.deleteTask(task.ID)
		}
	case "n":
		m.mode = modeCreate
		m.form = createForm{}
		m.status = ""
	}
	return m, nil
}

func (m *model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeList
		m.status = ""
		return m, nil
	case "tab", "down":
		m.form.focus = (m.form.focus + 1) % len(m.form.fields)
		return m, nil
	case "shift+tab", "up":
		m.form.focus = (m.form.focus + len(m.form.fields) - 1) % len(m.form.fields)
		return m, nil
	case "backspace":
		field := []rune(m.form.fields[m.form.focus])
		if len(field) > 0 {
			m.form.fields[m.form.focus] = string(field[:len(field)-1])
		}
		return m, nil
	case "enter":
		if m.form.focus < len(m.form.fields)-1 {
			m.form.focus++
			return m, nil
		}
		return m.submitCreate()
	case " ":
		m.form.fields[m.form.focus] += " "
		return m, nil
	}
	if msg.Type == tea.KeyRunes {
		m.form.fields[m.form.focus] += string(msg.Runes)
	}
	return m, nil
}

func (m *model) submitCreate() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.form.fields[0])
	if title == "" {
		m.status = "Title is required"
		return m, nil
	}
	input := models.CreateTaskInput{
		Title:       title,
		Description: strings.TrimSpace(m.form.fields[1]),
	}
	if assignee := strings.TrimSpace(m.form.fields[2]); assignee != "" {
		input.Assignee = &assignee
	}
	m.mode = modeList
	m.status = ""
	m.loading = true
	return m, m.createTask(input)
}

// visible applies the status filter as a pure predicate over the already
// fetched set.
func (m *model) visible() []models.Task {
	if m.filter == "" {
		return m.tasks
	}
	filtered := make([]models.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		if task.Status == m.filter {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

func (m *model) selected() (models.Task, bool) {
	visible := m.visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return models.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *model) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("TaskFlow") + "\n\n")

	if m.mode == modeCreate {
		m.viewCreate(&b)
		m.viewStatus(&b)
		return b.String()
	}

	if m.filter != "" {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", m.filter))
	}

	switch {
	case m.loading && len(m.tasks) == 0:
		b.WriteString("Loading...\n")
	case len(m.visible()) == 0:
		b.WriteString(helpStyle.Render("No tasks.") + "\n")
	default:
		for i, task := range m.visible() {
			cursor := "  "
			line := fmt.Sprintf("%s %s", statusBadge(task.Status), task.Title)
			if task.Assignee != nil {
				line += helpStyle.Render(" @" + *task.Assignee)
			}
			if i == m.cursor {
				cursor = "> "
				line = selectedStyle.Render(line)
			}
			b.WriteString(cursor + line + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render(
		"n new · enter/c cycle status · d delete · r refresh · 1/2/3 filter · 0 all · q quit") + "\n")
	m.viewStatus(&b)
	return b.String()
}

func (m *model) viewCreate(b *strings.Builder) {
	b.WriteString("New task\n\n")
	for i, label := range formLabels {
		marker := "  "
		if i == m.form.focus {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s: %s\n", marker, label, m.form.fields[i]))
	}
	b.WriteString("\n" + helpStyle.Render("tab next field · enter submit · esc cancel") + "\n")
}

func (m *model) viewStatus(b *strings.Builder) {
	if m.status != "" {
		b.WriteString(errStyle.Render(m.status) + "\n")
	}
}
