// Package tui is the interactive terminal face of the client: an input form,
// the stats bar, filter buttons and the task list, all rendered from the
// view-state manager on every frame.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todo/internal/output"
	"todo/internal/service"
	"todo/internal/viewstate"
)

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	statLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statValueStyle  = lipgloss.NewStyle().Bold(true)
	statActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	statDoneStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))

	filterStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	filterActiveStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62"))

	taskStyle      = lipgloss.NewStyle()
	taskDoneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	statusErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusOKStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const (
	loadingText = "Loading tasks..."
	placeholder = "What needs to be done?"
	listHelp    = "a: add | space: toggle | d: delete | 1/2/3, tab: filter | r: reload | q: quit"
	inputHelp   = "enter: add task | esc: cancel"
)

// Messages carrying request outcomes back to Update.
type (
	loadedMsg  struct{ err error }
	createdMsg struct {
		task service.Task
		err  error
	}
	toggledMsg struct {
		task service.Task
		err  error
	}
	deletedMsg struct {
		id  string
		err error
	}
)

// Model is the bubbletea model. All task state lives in the manager; the
// model only holds cursor, input and status line.
type Model struct {
	ctx context.Context
	mgr *viewstate.Manager

	input       textinput.Model
	cursor      int
	pendingLoad bool

	status    string
	statusErr bool
}

// New creates the model. The initial full-collection fetch starts from Init.
func New(ctx context.Context, mgr *viewstate.Manager) Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = "> "

	return Model{
		ctx:         ctx,
		mgr:         mgr,
		input:       ti,
		pendingLoad: true,
	}
}

// Run starts the terminal UI and blocks until the user quits or ctx ends.
func Run(ctx context.Context, mgr *viewstate.Manager) error {
	p := tea.NewProgram(New(ctx, mgr), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return loadTasks(m.ctx, m.mgr)
}

func loadTasks(ctx context.Context, mgr *viewstate.Manager) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: mgr.Load(ctx)}
	}
}

func createTask(ctx context.Context, mgr *viewstate.Manager, text string) tea.Cmd {
	return func() tea.Msg {
		task, err := mgr.Create(ctx, text)
		return createdMsg{task: task, err: err}
	}
}

func toggleTask(ctx context.Context, mgr *viewstate.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		task, err := mgr.Toggle(ctx, id)
		return toggledMsg{task: task, err: err}
	}
}

func deleteTask(ctx context.Context, mgr *viewstate.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: mgr.Delete(ctx, id)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateInput(msg)
		}
		return m.updateList(msg)

	case tea.WindowSizeMsg:
		if w := msg.Width - 10; w > 10 {
			m.input.Width = w
		}
		return m, nil

	case loadedMsg:
		m.pendingLoad = false
		if msg.err != nil {
			m.setError("Could not load tasks", msg.err)
		}
		m.clampCursor()
		return m, nil

	case createdMsg:
		if msg.err != nil {
			m.setError("Could not add task", msg.err)
			return m, nil
		}
		m.input.Reset()
		m.setStatus("Added task")
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			m.setError("Could not update task", msg.err)
		} else {
			m.status = ""
		}
		m.clampCursor()
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.setError("Could not delete task", msg.err)
		} else {
			m.setStatus("Deleted task")
		}
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.input.Blur()
		return m, nil
	case "enter":
		text := m.input.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		return m, createTask(m.ctx, m.mgr, text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "a", "i":
		m.status = ""
		return m, m.input.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case " ", "x":
		if task, ok := m.selected(); ok {
			return m, toggleTask(m.ctx, m.mgr, task.ID)
		}
	case "d":
		if task, ok := m.selected(); ok {
			return m, deleteTask(m.ctx, m.mgr, task.ID)
		}
	case "1":
		m.setFilter(viewstate.FilterAll)
	case "2":
		m.setFilter(viewstate.FilterActive)
	case "3":
		m.setFilter(viewstate.FilterCompleted)
	case "tab":
		m.setFilter(nextFilter(m.mgr.Filter(), 1))
	case "shift+tab":
		m.setFilter(nextFilter(m.mgr.Filter(), -1))
	case "r":
		m.pendingLoad = true
		return m, loadTasks(m.ctx, m.mgr)
	}
	return m, nil
}

func (m *Model) setFilter(f viewstate.Filter) {
	if err := m.mgr.SetFilter(f); err != nil {
		m.setError("Could not change filter", err)
		return
	}
	m.cursor = 0
}

func nextFilter(f viewstate.Filter, step int) viewstate.Filter {
	n := len(viewstate.Filters)
	for i, candidate := range viewstate.Filters {
		if candidate == f {
			return viewstate.Filters[((i+step)%n+n)%n]
		}
	}
	return viewstate.FilterAll
}

func (m Model) selected() (service.Task, bool) {
	tasks := m.mgr.View().Tasks
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return service.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.mgr.View().Tasks)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(prefix string, err error) {
	m.statusErr = true
	if errors.Is(err, viewstate.ErrTaskNotFound) {
		m.status = prefix + ": task no longer in the list"
		return
	}
	m.status = fmt.Sprintf("%s: %v", prefix, err)
}

func (m Model) View() string {
	v := m.mgr.View()

	var b strings.Builder
	b.WriteString(titleStyle.Render("To-Do Application"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Organize your tasks efficiently"))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(renderStats(v.Stats))
	b.WriteString("\n\n")
	b.WriteString(renderFilters(v.Filter))
	b.WriteString("\n\n")

	if v.Loading || m.pendingLoad {
		b.WriteString("  " + loadingText + "\n")
	} else if len(v.Tasks) == 0 {
		b.WriteString("  " + emptyStyle.Render(v.EmptyMessage) + "\n")
	} else {
		for i, task := range v.Tasks {
			b.WriteString(m.renderTask(i, task))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(statusErrStyle.Render(m.status))
		} else {
			b.WriteString(statusOKStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.input.Focused() {
		b.WriteString(helpStyle.Render(inputHelp))
	} else {
		b.WriteString(helpStyle.Render(listHelp))
	}
	return b.String()
}

func (m Model) renderTask(i int, task service.Task) string {
	prefix := "  "
	if i == m.cursor && !m.input.Focused() {
		prefix = cursorStyle.Render("> ")
	}
	style := taskStyle
	if task.Completed {
		style = taskDoneStyle
	}
	return prefix + output.Checkbox(task.Completed) + " " + style.Render(output.NormalizeText(task.Text))
}

func renderStats(s viewstate.Stats) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		statLabelStyle.Render("Total ")+statValueStyle.Render(fmt.Sprint(s.Total)),
		"   ",
		statLabelStyle.Render("Active ")+statActiveStyle.Render(fmt.Sprint(s.Active)),
		"   ",
		statLabelStyle.Render("Completed ")+statDoneStyle.Render(fmt.Sprint(s.Completed)),
	)
}

func renderFilters(active viewstate.Filter) string {
	buttons := make([]string, 0, len(viewstate.Filters))
	for _, f := range viewstate.Filters {
		style := filterStyle
		if f == active {
			style = filterActiveStyle
		}
		buttons = append(buttons, style.Render(f.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}
