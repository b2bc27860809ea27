package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/diskjockey/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	WaitingView ViewState = iota
	TransferView
	ResultView
)

// Model represents the TUI application state for an interactive copy run.
type Model struct {
	ctx          context.Context
	cancel       context.CancelFunc
	view         ViewState
	engine       *tasks.Engine
	task         *tasks.Task
	bar          progress.Model
	width        int
	height       int
	progressChan chan tasks.ProgressUpdate
	update       tasks.ProgressUpdate
	result       *tasks.Result
	err          error
	help         help.Model
	keys         keyMap
}

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.quit}}
}

type progressUpdateMsg tasks.ProgressUpdate

type transferCompleteMsg struct {
	result *tasks.Result
	err    error
}

// NewModel creates a new TUI model that will run the given task through the
// engine. The run gets its own child context so that quitting the TUI aborts
// the engine rather than leaving it copying behind a dead screen.
func NewModel(ctx context.Context, engine *tasks.Engine, task *tasks.Task) *Model {
	ctx, cancel := context.WithCancel(ctx)
	return &Model{
		ctx:    ctx,
		cancel: cancel,
		view:   WaitingView,
		engine: engine,
		task:   task,
		bar:    progress.New(progress.WithDefaultGradient()),
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init starts the transfer immediately; there is nothing to select first.
func (m *Model) Init() tea.Cmd {
	return m.startTransfer()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(msg.Width-8, 60)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			m.cancel()
			return m, tea.Quit
		}
		return m, nil

	case progressUpdateMsg:
		m.update = tasks.ProgressUpdate(msg)
		switch m.update.Phase {
		case tasks.AwaitDevice:
			m.view = WaitingView
		default:
			m.view = TransferView
		}
		return m, m.waitForProgress()

	case transferCompleteMsg:
		m.cancel()
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case WaitingView:
		return m.renderWaiting()
	case TransferView:
		return m.renderTransfer()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) startTransfer() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		result, err := m.engine.Run(m.ctx, m.task, m.progressChan)
		m.result = result
		m.err = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.progressChan
		if !ok {
			return transferCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderWaiting() string {
	title := styles.title.Render("Waiting for device")
	info := "Connect the player, or press q to give up.\n"
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderTransfer() string {
	title := styles.title.Render("Copying tracks")

	var ratio float64
	if m.update.Total > 0 {
		ratio = float64(m.update.Step) / float64(m.update.Total)
	}
	bar := m.bar.ViewAs(ratio)

	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, m.update.Message, bar, helpView)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Transfer aborted: %v\n\nPress q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress q to quit")
	}

	title := styles.ok.Render("✓ Transfer Complete!")
	info := fmt.Sprintf(
		"\nFiles: %d copied, %d already on device\nBytes: %d\n",
		m.result.Copied,
		m.result.Skipped,
		m.result.BytesCopied,
	)

	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return fmt.Sprintf("%s%s\n%s", title, info, helpView)
}
