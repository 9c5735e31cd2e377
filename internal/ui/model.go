package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"loctab/internal/manager"
	"loctab/internal/report"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type state int

const (
	stateFilePicker state = iota
	stateActionSelect
	stateProcessing
	stateComplete
	stateError
)

// action identifies the table operations runnable from the TUI.
type action int

const (
	actionGenerate action = iota
	actionScan
)

func (a action) title() string {
	switch a {
	case actionGenerate:
		return "Generate nested locale files"
	case actionScan:
		return "Scan table vs locale files and reconcile"
	}
	return ""
}

var actions = []action{actionGenerate, actionScan}

type runResult struct {
	action     action
	tablePath  string
	localesDir string
	locales    []string
	rows       int
	applied    int
}

type Model struct {
	state        state
	filepicker   filepicker.Model
	selectedFile string
	mgr          *manager.Manager
	recorder     *report.Recorder
	cursor       int
	result       *runResult
	err          error
	width        int
	height       int
	progress     progress.Model
	progressChan chan float64
	resultChan   chan runResultMsg
}

type runResultMsg struct {
	result *runResult
	err    error
}

type progressMsg float64

type waitForProgressMsg struct{}

func InitialModel() Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv", ".xlsx"}
	fp.CurrentDirectory, _ = os.Getwd()

	// Set filepicker colors to match theme
	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#42A5FF"))
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(lipgloss.Color("#4DD08A"))
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(lipgloss.Color("#42A5FF")).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	prog := progress.New(progress.WithGradient("#42A5FF", "#4DD08A"))

	return Model{
		state:      stateFilePicker,
		filepicker: fp,
		progress:   prog,
	}
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		height := msg.Height - 14
		if height < 5 {
			height = 5
		}
		m.filepicker.SetHeight(height)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateFilePicker:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			}

		case stateActionSelect:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < len(actions)-1 {
					m.cursor++
				}
			case "enter":
				m.state = stateProcessing
				return m.runAction(actions[m.cursor])
			}

		case stateComplete, stateError:
			switch msg.String() {
			case "ctrl+c", "q", "enter", "esc":
				return m, tea.Quit
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.mgr = msg.mgr
		m.recorder = msg.recorder
		m.state = stateActionSelect
		return m, nil

	case runResultMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.result = msg.result
		m.state = stateComplete
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

	// Handle filepicker updates
	if m.state == stateFilePicker {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			return m, m.loadTable(path)
		}

		return m, cmd
	}

	return m, nil
}

type loadedMsg struct {
	mgr      *manager.Manager
	recorder *report.Recorder
	err      error
}

func (m Model) loadTable(path string) tea.Cmd {
	return func() tea.Msg {
		rec := &report.Recorder{}
		mgr := manager.New(path, filepath.Dir(path), rec)
		if err := mgr.Load(); err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{mgr: mgr, recorder: rec}
	}
}

func (m Model) runAction(a action) (Model, tea.Cmd) {
	m.progressChan = make(chan float64, 100)
	m.resultChan = make(chan runResultMsg, 1)

	cmd := tea.Batch(
		func() tea.Msg {
			progressChan := m.progressChan
			resultChan := m.resultChan
			mgr := m.mgr
			tab := mgr.Table()
			res := &runResult{
				action:     a,
				tablePath:  m.selectedFile,
				localesDir: filepath.Dir(m.selectedFile),
				locales:    tab.Locales,
				rows:       tab.Len(),
			}

			go func() {
				var err error
				switch a {
				case actionGenerate:
					err = mgr.Generate(progressChan)
				case actionScan:
					res.applied, err = mgr.Scan()
				}

				resultChan <- runResultMsg{result: res, err: err}

				close(progressChan)
				close(resultChan)
			}()

			return waitForProgressMsg{}
		},
		waitForProgress(m.progressChan, m.resultChan),
		m.progress.Init(), // Start progress bar animation
	)

	return m, cmd
}

func waitForProgress(progressChan chan float64, resultChan chan runResultMsg) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		p, ok := <-progressChan
		if !ok {
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
	case stateFilePicker:
		return m.viewFilePicker()
	case stateActionSelect:
		return m.viewActionSelect()
	case stateProcessing:
		return m.viewProcessing()
	case stateComplete:
		return m.viewComplete()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("loctab - Localization Table Toolkit"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Select a translation table (.xlsx or .csv)"))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return s.String()
}

func (m Model) viewActionSelect() string {
	var s strings.Builder

	tab := m.mgr.Table()
	s.WriteString(TitleStyle.Render("Choose an action"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("Table: %s - %d row(s), locales: %s",
		filepath.Base(m.selectedFile), tab.Len(), strings.Join(tab.Locales, ", "))))
	s.WriteString("\n\n")

	for i, a := range actions {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %s", cursor, a.title())
		if m.cursor == i {
			line = SelectedStyle.Render(line)
		} else {
			line = UnselectedStyle.Render(line)
		}
		s.WriteString(line)
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("↑/↓: navigate • enter: run • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewProcessing() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Processing..."))
	s.WriteString("\n\n")
	s.WriteString("Converting translation data...")
	s.WriteString("\n\n")
	s.WriteString(m.progress.View())

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder

	s.WriteString(SuccessStyle.Render("Done!"))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Table:   %s (%d rows)\n", m.result.tablePath, m.result.rows))
	s.WriteString(fmt.Sprintf("Locales: %s\n", strings.Join(m.result.locales, ", ")))

	switch m.result.action {
	case actionGenerate:
		s.WriteString(fmt.Sprintf("Wrote %d locale file(s) to %s\n", len(m.result.locales), m.result.localesDir))
	case actionScan:
		s.WriteString(fmt.Sprintf("Applied %d pending update(s)\n", m.result.applied))
	}

	if m.recorder != nil && len(m.recorder.Warns) > 0 {
		s.WriteString("\n")
		s.WriteString(WarningStyle.Render(fmt.Sprintf("%d warning(s):", len(m.recorder.Warns))))
		s.WriteString("\n")
		for _, w := range m.recorder.Warns {
			s.WriteString(WarningStyle.Render("  • " + w))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(m.err.Error())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}
