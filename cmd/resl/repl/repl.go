// Package repl implements an interactive read-eval-print loop over RESL
// expressions, grounded on the teacher's cli/cmd/repl package: a Bubble Tea
// model driving a single-line text input, fuzzy completion over built-in
// names, and file-persisted history.
//
// It drops the teacher's namespace browser, external-editor AST patching,
// and eval/command mode toggle — RESL has no namespaces or persisted AST to
// browse or edit, only a single expression evaluated fresh each line — and
// keeps the input loop, history navigation, and completion bar.
package repl

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/resl"
)

const prompt = "resl> "

var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
)

func formatEcho(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

type model struct {
	input      textinput.Model
	history    *History
	historyIdx int
	pretty     bool
	prefsPath  string
	matches    fuzzy.Matches
	wordStart  int
	wordEnd    int
	selected   int
	tabActive  bool
	preTabText string
	width      int
	quitting   bool
}

// Run starts the REPL, persisting history to historyPath and settings to
// prefsPath (either empty disables that persistence). A persisted
// Prefs.Pretty of true from a previous session turns pretty-printing on
// even when the pretty argument is false; a persisted false leaves the
// argument as given. Ctrl+P toggles it at runtime and the final value is
// saved on exit.
func Run(historyPath, prefsPath string, pretty bool) error {
	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		fmt.Printf("warning: could not load history: %v\n", err)
	}

	prefs, err := LoadPrefs(prefsPath)
	if err != nil {
		fmt.Printf("warning: could not load preferences: %v\n", err)
	} else if prefs.Pretty {
		pretty = true
	}

	m := newModel(history, prefsPath, pretty)

	_, err = tea.NewProgram(m).Run()

	return err
}

const defaultWidth = 80

func newModel(history *History, prefsPath string, pretty bool) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		input:      ti,
		history:    history,
		historyIdx: history.Len(),
		pretty:     pretty,
		prefsPath:  prefsPath,
		width:      defaultWidth,
		selected:   -1,
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.selected, m.width))
	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render("Type an expression; Tab completes; Ctrl+P toggles pretty-print; Ctrl+C exits"))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		m.quitting = true

		if err := SavePrefs(m.prefsPath, Prefs{Pretty: m.pretty}); err != nil {
			return m, tea.Sequence(tea.Println(hintStyle.Render("warning: could not save preferences: "+err.Error())), tea.Quit)
		}

		return m, tea.Quit

	case tea.KeyEnter:
		return m.executeInput()

	case tea.KeyCtrlP:
		m.pretty = !m.pretty

		return m, nil

	case tea.KeyTab:
		return m.handleTab(1)

	case tea.KeyShiftTab:
		return m.handleTab(-1)

	case tea.KeyUp:
		return m.historyPrev()

	case tea.KeyDown:
		return m.historyNext()
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

func (m *model) refreshMatches() {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()
	if !m.tabActive {
		m.selected = -1
	}
}

func (m model) handleTab(dir int) (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	if !m.tabActive {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.selected = 0
	} else {
		m.selected = (m.selected + dir + len(m.matches)) % len(m.matches)
	}

	candidate := m.matches[m.selected].Str
	input := m.input.Value()
	newInput := input[:m.wordStart] + candidate + input[m.wordEnd:]

	m.input.SetValue(newInput)
	m.input.SetCursor(m.wordStart + len(candidate))
	m.wordEnd = m.wordStart + len(candidate)

	return m, nil
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.tabActive = false
	m.matches = nil

	_ = m.history.Write(input)
	m.historyIdx = m.history.Len()

	echo := tea.Println(formatEcho(input))

	out, err := resl.EvaluateAndFormat(input, m.pretty)
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render(err.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

func (m model) historyPrev() (model, tea.Cmd) {
	if m.historyIdx > 0 {
		m.historyIdx--

		if entry, err := m.history.Get(m.historyIdx); err == nil {
			m.input.SetValue(entry)
			m.input.SetCursor(len(entry))
			m.refreshMatches()
		}
	}

	return m, nil
}

func (m model) historyNext() (model, tea.Cmd) {
	if m.historyIdx < m.history.Len()-1 {
		m.historyIdx++

		if entry, err := m.history.Get(m.historyIdx); err == nil {
			m.input.SetValue(entry)
			m.input.SetCursor(len(entry))
			m.refreshMatches()
		}
	} else {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		m.refreshMatches()
	}

	return m, nil
}
