// Package repl implements an interactive inspector for the variable
// engine: assignment lines define, bare names resolve, and text containing
// references expands.
package repl

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/remake/vars"
)

const prompt = "➜ "

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	suggestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

func helpMessage() string {
	return `
Commands:

  :help    Print this cruft
  :list    List defined variable names
  :show X  Show the binding for X (value, origin, flavor)
  :clear   Clear screen
  :quit    Exit

Usage:
  NAME = VALUE defines (all flavors work, += ?= := :::= != too)
  A bare name resolves it
  Text containing $(...) expands it
  Tab cycles name completions, Ctrl+C or Ctrl+D exits
`
}

// model is the Bubble Tea model for the inspector.
type model struct {
	engine     *vars.Context
	input      textinput.Model
	history    []string
	historyIdx int
	matches    fuzzy.Matches
	suggIdx    int
	tabActive  bool
	width      int
	quitting   bool
}

const defaultWidth = 80

// Run starts the inspector on the given engine.
func Run(engine *vars.Context) error {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	m := model{
		engine: engine,
		input:  ti,
		width:  defaultWidth,
	}

	_, err := tea.NewProgram(m).Run()

	return err
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

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
	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render(
			"Type a definition or a name; :help for commands"))
	case len(m.matches) > 0:
		b.WriteString(m.candidateBar())
	}

	b.WriteString("\n")

	return b.String()
}

// candidateBar renders the completion candidates on one line, highlighting
// the tab selection.
func (m model) candidateBar() string {
	var b strings.Builder

	for i, match := range m.matches {
		if b.Len()+len(match.Str)+1 > m.width {
			break
		}

		if i > 0 {
			b.WriteByte(' ')
		}

		if m.tabActive && i == m.suggIdx {
			b.WriteString(selectStyle.Render(match.Str))
		} else {
			b.WriteString(suggestStyle.Render(match.Str))
		}
	}

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.refreshMatches()

		return m, nil

	case tea.KeyEnter:
		m.tabActive = false

		return m.execute()

	case tea.KeyTab:
		return m.cycle(1)

	case tea.KeyShiftTab:
		return m.cycle(-1)

	case tea.KeyUp:
		if m.historyIdx > 0 {
			m.historyIdx--
			m.input.SetValue(m.history[m.historyIdx])
			m.input.SetCursor(len(m.history[m.historyIdx]))
		}

		return m, nil

	case tea.KeyDown:
		if m.historyIdx < len(m.history)-1 {
			m.historyIdx++
			m.input.SetValue(m.history[m.historyIdx])
			m.input.SetCursor(len(m.history[m.historyIdx]))
		} else {
			m.historyIdx = len(m.history)
			m.input.SetValue("")
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = len(m.history)
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

// cycle advances the tab selection and writes the candidate into the
// current word.
func (m model) cycle(dir int) (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	if !m.tabActive {
		m.tabActive = true
		m.suggIdx = 0

		if dir < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	} else {
		m.suggIdx = (m.suggIdx + dir + len(m.matches)) % len(m.matches)
	}

	start, end := m.wordBounds()
	input := m.input.Value()
	replacement := m.matches[m.suggIdx].Str

	m.input.SetValue(input[:start] + replacement + input[end:])
	m.input.SetCursor(start + len(replacement))

	return m, nil
}

// wordBounds finds the boundaries of the word under the cursor.
func (m model) wordBounds() (start, end int) {
	input := m.input.Value()
	cursor := m.input.Position()

	start = cursor
	for start > 0 && !isBreak(input[start-1]) {
		start--
	}

	end = cursor
	for end < len(input) && !isBreak(input[end]) {
		end++
	}

	return start, end
}

func isBreak(c byte) bool {
	return c == ' ' || c == '\t' || c == '$' || c == '(' || c == ')' ||
		c == '{' || c == '}' || c == '=' || c == ':'
}

// refreshMatches recomputes completion candidates for the current word.
func (m *model) refreshMatches() {
	start, end := m.wordBounds()
	word := m.input.Value()[start:end]

	if word == "" {
		m.matches = nil

		return
	}

	m.matches = fuzzy.Find(word, m.engine.Global().Set().Names())
}

func (m model) execute() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.history = append(m.history, input)
	m.historyIdx = len(m.history)
	m.input.SetValue("")
	m.matches = nil

	echo := tea.Println(promptStyle.Render(prompt) + input)

	if strings.HasPrefix(input, ":") {
		return m.command(input, echo)
	}

	if b, err := m.engine.TryDefinition(input, vars.OriginFile, vars.ScopeGlobal); err != nil {
		return m, tea.Sequence(echo,
			tea.Println(errorStyle.Render("error: "+err.Error())))
	} else if b != nil {
		return m, tea.Sequence(echo, tea.Println(resultStyle.Render(
			fmt.Sprintf("%s = %s (%s)", b.Name, b.Value, b.Origin))))
	}

	if !strings.ContainsRune(input, '$') {
		b := m.engine.Lookup(input)
		if b == nil {
			return m, tea.Sequence(echo,
				tea.Println(hintStyle.Render("undefined: "+input)))
		}

		return m, tea.Sequence(echo, tea.Println(resultStyle.Render(
			fmt.Sprintf("%s (%s, %s)",
				m.engine.ResolveBinding(b), b.Origin, b.Flavor()))))
	}

	return m, tea.Sequence(echo,
		tea.Println(resultStyle.Render(m.engine.Expand(input))))
}

func (m model) command(input string, echo tea.Cmd) (model, tea.Cmd) {
	fields := strings.Fields(input)

	switch fields[0] {
	case ":q", ":quit", ":exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case ":h", ":help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case ":l", ":list":
		names := m.engine.Global().Set().Names()

		return m, tea.Sequence(echo,
			tea.Println(hintStyle.Render(strings.Join(names, " "))))

	case ":show":
		if len(fields) < 2 {
			return m, tea.Sequence(echo,
				tea.Println(errorStyle.Render("usage: :show NAME")))
		}

		b := m.engine.Lookup(fields[1])
		if b == nil {
			return m, tea.Sequence(echo,
				tea.Println(hintStyle.Render("undefined: "+fields[1])))
		}

		detail := fmt.Sprintf("%s %s %s\n  origin: %s\n  defined: %s",
			b.Name, operatorFor(b), b.Value, b.Origin, b.Loc)

		return m, tea.Sequence(echo, tea.Println(resultStyle.Render(detail)))

	case ":c", ":clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Sequence(echo, tea.Println(
			errorStyle.Render("unknown command "+fields[0]+" (try :help)")))
	}
}

func operatorFor(b *vars.Binding) string {
	switch {
	case b.Append:
		return "+="
	case b.Conditional:
		return "?="
	case b.Recursive:
		return "="
	default:
		return ":="
	}
}
