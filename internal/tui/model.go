package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskflow/internal/controller"
	"taskflow/internal/output"
	"taskflow/internal/service"
)

// MaxInputLength caps task text typed in the UI.
const MaxInputLength = 100

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeSearch
	modeConfirm
)

type action int

const (
	actionLoad action = iota
	actionAdd
	actionToggle
	actionSave
	actionDelete
)

// resultMsg reports the outcome of an action that ran as a command.
type resultMsg struct {
	action action
	err    error
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
	loadingStyle = lipgloss.NewStyle().Reverse(true).Padding(0, 1)
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	noticeStyles = map[controller.Level]lipgloss.Style{
		controller.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		controller.LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		controller.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

const (
	helpBrowse  = "j/k move  a add  space toggle  e edit  d delete  f filter  / search  r reload  q quit"
	helpInput   = "enter save  esc cancel"
	helpSearch  = "enter done  esc clear"
	helpConfirm = "y yes  n no"
)

// Model is the bubbletea model for the task list.
type Model struct {
	ctx    context.Context
	ctrl   *controller.Controller
	bridge *bridge

	mode    mode
	cursor  int
	input   textinput.Model
	confirm *confirmRequest
	notice  controller.Notification
	width   int
}

func newModel(ctx context.Context, svc service.Service) Model {
	b := newBridge(ctx)
	ctrl := controller.New(svc,
		controller.WithNotifier(b),
		controller.WithConfirmer(b),
		controller.WithOnChange(b.changed),
	)

	in := textinput.New()
	in.CharLimit = MaxInputLength
	in.Width = 60

	return Model{
		ctx:    ctx,
		ctrl:   ctrl,
		bridge: b,
		input:  in,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.run(actionLoad, m.ctrl.Load),
		m.bridge.waitConfirm(),
		m.bridge.waitNotice(),
		m.bridge.waitChange(),
	)
}

// run wraps a controller action as a command.
func (m Model) run(a action, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return resultMsg{action: a, err: fn(ctx)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
		return m, nil

	case confirmMsg:
		req := confirmRequest(msg)
		m.confirm = &req
		m.mode = modeConfirm
		return m, m.bridge.waitConfirm()

	case noticeMsg:
		m.notice = controller.Notification(msg)
		return m, m.bridge.waitNotice()

	case changedMsg:
		m.clampCursor()
		return m, m.bridge.waitChange()

	case resultMsg:
		return m.handleResult(msg), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.answer(false)
			return m, tea.Quit
		}
		switch m.mode {
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		case modeSearch:
			return m.updateSearch(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) handleResult(msg resultMsg) Model {
	switch msg.action {
	case actionAdd:
		if msg.err == nil {
			m.input.Reset()
			m.leaveInput()
		}
	case actionSave:
		if msg.err == nil {
			m.leaveInput()
		}
	}
	m.clampCursor()
	return m
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.ctrl.View().Visible)-1 {
			m.cursor++
		}
	case "a":
		m.mode = modeAdd
		m.input.Placeholder = "What needs to be done?"
		m.input.Focus()
		return m, textinput.Blink
	case " ", "x":
		if task, ok := m.selected(); ok {
			return m, m.run(actionToggle, func(ctx context.Context) error {
				return m.ctrl.Toggle(ctx, task.ID)
			})
		}
	case "e":
		if task, ok := m.selected(); ok {
			if err := m.ctrl.StartEdit(task.ID); err != nil {
				return m, nil
			}
			editing, ok := m.ctrl.View().Editing()
			if !ok {
				return m, nil
			}
			m.mode = modeEdit
			m.input.Placeholder = ""
			m.input.SetValue(editing.Text)
			m.input.CursorEnd()
			m.input.Focus()
			return m, textinput.Blink
		}
	case "d":
		if task, ok := m.selected(); ok {
			return m, m.run(actionDelete, func(ctx context.Context) error {
				return m.ctrl.Delete(ctx, task.ID)
			})
		}
	case "f":
		m.ctrl.SetFilter(m.ctrl.View().Filter.Next())
		m.clampCursor()
	case "1", "2", "3":
		m.ctrl.SetFilter(controller.Filters[msg.String()[0]-'1'])
		m.clampCursor()
	case "/":
		m.mode = modeSearch
		m.input.Placeholder = "Search tasks..."
		m.input.SetValue(m.ctrl.View().Search)
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink
	case "r":
		return m, m.run(actionLoad, m.ctrl.Load)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.mode == modeEdit {
			m.ctrl.CancelEdit()
		}
		m.input.Reset()
		m.leaveInput()
		return m, nil
	case "enter":
		text := m.input.Value()
		if m.mode == modeEdit {
			return m, m.run(actionSave, func(ctx context.Context) error {
				return m.ctrl.SaveEdit(ctx, text)
			})
		}
		return m, m.run(actionAdd, func(ctx context.Context) error {
			return m.ctrl.Add(ctx, text)
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.SetSearch("")
		m.input.Reset()
		m.leaveInput()
		return m, nil
	case "enter":
		m.input.Reset()
		m.leaveInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetSearch(m.input.Value())
	m.cursor = 0
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.answer(true)
	case "n", "N", "esc":
		m.answer(false)
	default:
		return m, nil
	}
	m.mode = modeBrowse
	return m, nil
}

// answer resolves a pending confirmation, if any.
func (m *Model) answer(ok bool) {
	if m.confirm == nil {
		return
	}
	m.confirm.answer <- ok
	m.confirm = nil
}

func (m *Model) leaveInput() {
	m.input.Blur()
	m.mode = modeBrowse
}

func (m Model) selected() (service.Task, bool) {
	visible := m.ctrl.View().Visible
	if m.cursor < 0 || m.cursor >= len(visible) {
		return service.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.View().Visible)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m Model) View() string {
	v := m.ctrl.View()

	var b strings.Builder
	b.WriteString(titleStyle.Render("TaskFlow"))
	b.WriteString("\n\n")

	lv := output.NewListView(v)
	lv.Cursor = m.cursor
	output.Text(&b, lv)
	b.WriteString("\n")

	switch m.mode {
	case modeAdd:
		b.WriteString("Add: " + m.input.View() + "\n")
	case modeEdit:
		b.WriteString("Edit: " + m.input.View() + "\n")
	case modeSearch:
		b.WriteString("Search: " + m.input.View() + "\n")
	case modeConfirm:
		if m.confirm != nil {
			b.WriteString(promptStyle.Render(m.confirm.prompt+" (y/n)") + "\n")
		}
	}

	if v.Loading {
		b.WriteString(loadingStyle.Render("Loading...") + "\n")
	}
	if m.notice.Message != "" {
		style, ok := noticeStyles[m.notice.Level]
		if !ok {
			style = noticeStyles[controller.LevelInfo]
		}
		b.WriteString(style.Render(output.Sanitize(m.notice.Message)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) help() string {
	switch m.mode {
	case modeAdd, modeEdit:
		return helpInput
	case modeSearch:
		return helpSearch
	case modeConfirm:
		return helpConfirm
	default:
		return helpBrowse
	}
}

// Run starts the interactive UI over svc and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, svc service.Service) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newModel(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
