package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nconklindev/ifprofile/internal/config"
	"github.com/nconklindev/ifprofile/internal/converter"
	"github.com/nconklindev/ifprofile/internal/types"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// ErrAborted is returned when the user leaves the prompt with the exit keyword.
var ErrAborted = errors.New("aborted by user")

type state int

const (
	statePrompt state = iota
	stateProcessing
	stateComplete
	stateError
)

type Model struct {
	state        state
	cfg          *config.Config
	opts         converter.Options
	log          *zap.Logger
	input        textinput.Model
	notFound     bool
	folder       string
	summary      *types.Summary
	err          error
	aborted      bool
	width        int
	height       int
	progress     progress.Model
	progressChan chan float64
	resultChan   chan conversionCompleteMsg
}

type conversionCompleteMsg struct {
	summary *types.Summary
	err     error
}

type progressMsg float64

type waitForProgressMsg struct{}

func InitialModel(cfg *config.Config, opts converter.Options) Model {
	ti := textinput.New()
	ti.Placeholder = "/path/to/workbooks"
	ti.Prompt = "> "
	ti.PromptStyle = SelectedStyle
	ti.Focus()

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return Model{
		state:    statePrompt,
		cfg:      cfg,
		opts:     opts,
		log:      log,
		input:    ti,
		progress: progress.New(progress.WithGradient("#FF8C42", "#FF9F5A")),
	}
}

// Aborted reports whether the user typed the exit keyword.
func (m Model) Aborted() bool {
	return m.aborted
}

// Err returns the conversion error, if the run failed.
func (m Model) Err() error {
	return m.err
}

func (m Model) Summary() *types.Summary {
	return m.summary
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		width := msg.Width - 12
		if width < 20 {
			width = 20
		}
		m.input.Width = width
		m.progress.Width = width

		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case statePrompt:
			switch msg.Type {
			case tea.KeyCtrlC, tea.KeyEsc:
				m.aborted = true
				return m, tea.Quit
			case tea.KeyEnter:
				return m.submit()
			}

		case stateProcessing:
			// The pass runs to completion.
			return m, nil

		case stateComplete, stateError:
			switch msg.String() {
			case "ctrl+c", "q", "enter", "esc":
				return m, tea.Quit
			}
			return m, nil
		}

	case conversionCompleteMsg:
		if msg.err != nil {
			m.log.Error("conversion failed", zap.String("folder", m.folder), zap.Error(msg.err))
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.summary = msg.summary
		m.state = stateComplete
		m.log.Info("conversion finished",
			zap.String("folder", m.folder),
			zap.Int("workbooks", len(msg.summary.Results)),
			zap.Int("records", msg.summary.TotalRecords))
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		if m.state == stateProcessing {
			cmd := m.progress.SetPercent(float64(msg))
			return m, tea.Batch(cmd, waitForProgress(m.progressChan, m.resultChan))
		}
		return m, nil

	case waitForProgressMsg:
		return m, waitForProgress(m.progressChan, m.resultChan)
	}

	if m.state == statePrompt {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// submit handles enter on the prompt: exit keyword, unknown path or start.
func (m Model) submit() (tea.Model, tea.Cmd) {
	value := m.input.Value()

	if m.cfg.IsExitKeyword(value) {
		m.aborted = true
		return m, tea.Quit
	}

	path := strings.TrimSpace(value)
	if path == "" {
		return m, nil
	}

	if !isDir(path) {
		m.log.Debug("folder not found", zap.String("path", path))
		m.notFound = true
		m.input.Reset()
		return m, nil
	}

	m.notFound = false
	m.folder = path
	m.state = stateProcessing
	m.progressChan = make(chan float64, 100)
	m.resultChan = make(chan conversionCompleteMsg, 1)

	m.log.Info("conversion started", zap.String("folder", path))

	return m, tea.Batch(
		runConversion(m.folder, m.opts, m.progressChan, m.resultChan),
		m.progress.Init(),
	)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// runConversion starts the folder conversion in the background. The producer
// closes both channels when it is done.
func runConversion(folder string, opts converter.Options, progressChan chan float64, resultChan chan conversionCompleteMsg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			summary, err := converter.ConvertFolder(folder, opts, progressChan)

			resultChan <- conversionCompleteMsg{summary: summary, err: err}

			close(progressChan)
			close(resultChan)
		}()

		return waitForProgressMsg{}
	}
}

func waitForProgress(progressChan chan float64, resultChan chan conversionCompleteMsg) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		p, ok := <-progressChan
		if !ok {
			// Progress channel closed, check result
			res, ok := <-resultChan
			if ok {
				return res
			}
			return nil
		}

		return progressMsg(p)
	}
}

func (m Model) View() string {
	switch m.state {
	case statePrompt:
		return m.viewPrompt()
	case stateProcessing:
		return m.viewProcessing()
	case stateComplete:
		return m.viewComplete()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewPrompt() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("ifprofile - Interface Profile Exporter"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("Enter Excel files folder path (type %s to exit)", m.cfg.ExitKeyword)))
	s.WriteString("\n")

	if m.notFound {
		s.WriteString(ErrorStyle.Render("Cannot find the path ..."))
		s.WriteString("\n\n")
	}

	s.WriteString(m.input.View())
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("enter: convert • esc: quit"))

	return s.String()
}

func (m Model) viewProcessing() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Processing..."))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Converting workbooks in %s", m.folder))
	s.WriteString("\n\n")
	s.WriteString(m.progress.View())

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder

	s.WriteString(RenderSummary(m.summary, m.width))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press enter to exit ..."))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("Report Generation Failed ..."))
	s.WriteString("\n\n")
	s.WriteString(WarningStyle.Render("Error:"))
	s.WriteString("\n")
	s.WriteString(m.err.Error())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press enter to exit ..."))

	return BoxStyle.Render(s.String())
}
