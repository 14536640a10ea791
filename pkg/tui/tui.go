// Package tui provides a terminal user interface for env2cc
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harlanmb/env2cc/pkg/engine"
	"github.com/harlanmb/env2cc/pkg/project"
	"github.com/harlanmb/env2cc/pkg/smfio"
)

var (
	amber    = lipgloss.Color("#FFB000")
	ice      = lipgloss.Color("#7FDBFF")
	dimGray  = lipgloss.Color("#555555")
	darkGray = lipgloss.Color("#222222")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(amber).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(ice).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(amber).
			Bold(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(ice).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4136")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(amber).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimGray).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(amber).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateFilePicker
	StateBaseCC
	StateProcessing
	StateResult
)

type action int

const (
	actionProcess action = iota
	actionMerge
	actionQuit
)

// MenuItem represents a menu option
type MenuItem struct {
	Title       string
	Description string
	Action      action
}

var menuItems = []MenuItem{
	{Title: "Process project", Description: "Map envelopes to CC events, merge, and export a .mid file", Action: actionProcess},
	{Title: "Merge only", Description: "Merge the Target track's MIDI items and save the project", Action: actionMerge},
	{Title: "Exit", Description: "Exit the application", Action: actionQuit},
}

// Model represents the TUI model
type Model struct {
	state        State
	menuIndex    int
	action       action
	filePicker   filepicker.Model
	baseCCInput  textinput.Model
	spinner      spinner.Model
	selectedFile string
	outputFile   string
	report       *engine.Report
	err          error
	width        int
	height       int
}

// processingDoneMsg signals pipeline completion
type processingDoneMsg struct {
	outputFile string
	report     *engine.Report
	err        error
}

// New creates a new TUI model
func New() Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".yaml", ".yml"}
	fp.CurrentDirectory, _ = os.Getwd()

	ti := textinput.New()
	ti.Placeholder = strconv.Itoa(engine.DefaultBaseCC)
	ti.CharLimit = 3
	ti.Width = 8

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(amber)

	return Model{
		state:       StateMenu,
		filePicker:  fp,
		baseCCInput: ti,
		spinner:     s,
	}
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick)
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The file picker needs to receive all messages while active.
	if m.state == StateFilePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = StateMenu
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			if m.action == actionProcess {
				m.state = StateBaseCC
				m.baseCCInput.SetValue("")
				return m, m.baseCCInput.Focus()
			}
			m.state = StateProcessing
			return m, tea.Batch(m.spinner.Tick, m.runPipeline(engine.DefaultBaseCC))
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filePicker.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateBaseCC:
			return m.updateBaseCC(msg)
		case StateResult:
			return m.updateResult(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case processingDoneMsg:
		m.state = StateResult
		m.outputFile = msg.outputFile
		m.report = msg.report
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		item := menuItems[m.menuIndex]
		if item.Action == actionQuit {
			return m, tea.Quit
		}
		m.action = item.Action
		m.state = StateFilePicker
		return m, m.filePicker.Init()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateBaseCC(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Empty or non-numeric input falls back to the default.
		base := engine.DefaultBaseCC
		if v, err := strconv.Atoi(strings.TrimSpace(m.baseCCInput.Value())); err == nil && v >= 0 && v <= 127 {
			base = v
		}
		m.state = StateProcessing
		return m, tea.Batch(m.spinner.Tick, m.runPipeline(base))
	case "esc":
		m.state = StateMenu
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.baseCCInput, cmd = m.baseCCInput.Update(msg)
	return m, cmd
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateMenu
		m.err = nil
		m.report = nil
		m.selectedFile = ""
		m.outputFile = ""
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) runPipeline(baseCC int) tea.Cmd {
	action := m.action
	input := m.selectedFile
	return func() tea.Msg {
		p, err := project.LoadFile(input)
		if err != nil {
			return processingDoneMsg{err: err}
		}

		base := strings.TrimSuffix(input, filepath.Ext(input))

		if action == actionMerge {
			if _, err := engine.Merge(p, engine.DefaultTargetTrack); err != nil {
				return processingDoneMsg{err: err}
			}
			outputFile := base + ".merged.yaml"
			if err := p.SaveFile(outputFile); err != nil {
				return processingDoneMsg{err: err}
			}
			return processingDoneMsg{outputFile: outputFile}
		}

		opts := engine.DefaultOptions()
		opts.BaseCC = uint8(baseCC)

		report, err := engine.Run(p, opts)
		if err != nil {
			return processingDoneMsg{err: err}
		}

		data, err := smfio.ExportTrack(p, opts.TargetTrack)
		if err != nil {
			return processingDoneMsg{report: report, err: err}
		}

		outputFile := base + ".mid"
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return processingDoneMsg{report: report, err: err}
		}

		return processingDoneMsg{outputFile: outputFile, report: report}
	}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateFilePicker:
		s.WriteString(m.viewFilePicker())
	case StateBaseCC:
		s.WriteString(m.viewBaseCC())
	case StateProcessing:
		s.WriteString(m.viewProcessing())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT ACTION "))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			s.WriteString("\n")
			s.WriteString(lipgloss.NewStyle().Foreground(ice).PaddingLeft(4).Render(item.Description))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT PROJECT FILE "))
	s.WriteString("\n\n")
	s.WriteString(m.filePicker.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc: back to menu"))

	return s.String()
}

func (m Model) viewBaseCC() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" FIRST CC CONTROL NUMBER "))
	s.WriteString("\n\n")
	s.WriteString(m.baseCCInput.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render(fmt.Sprintf("enter: continue (blank = %d) • esc: back", engine.DefaultBaseCC)))

	return boxStyle.Render(s.String())
}

func (m Model) viewProcessing() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" PROCESSING "))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s Processing %s...\n", m.spinner.View(), filepath.Base(m.selectedFile)))
	s.WriteString(statusStyle.Render("  envelopes → CC → merge"))

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	var s strings.Builder

	if m.err != nil {
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ Processing failed: %s", m.err.Error())))
	} else {
		s.WriteString(titleStyle.Render(" SUCCESS "))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render("✓ Processing complete!"))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Input:  %s\n", filepath.Base(m.selectedFile)))
		s.WriteString(fmt.Sprintf("Output: %s", filepath.Base(m.outputFile)))
		if m.report != nil {
			s.WriteString("\n")
			s.WriteString(fmt.Sprintf("Items:  %d, events: %d", m.report.ItemsCreated, m.report.EventsInserted))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press enter to continue"))

	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
   ______ _   ___      _____   _____ _____
  |  ____| \ | \ \    / /__ \ / ____/ ____|
  | |__  |  \| |\ \  / /   ) | |   | |
  |  __| | . ' | \ \/ /   / /| |   | |
  | |____| |\  |  \  /   / /_| |___| |____
  |______|_| \_|   \/   |____|\_____\_____|
`
	return lipgloss.NewStyle().Foreground(amber).Render(logo)
}

// Run starts the TUI application
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
