package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	cmdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	paramStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectCmd modelState = iota
	stateInputArgs
	stateShowResult
)

type interactiveModel struct {
	ctx      context.Context
	err      error
	sess     *session
	master   string
	kvStore  string
	result   string
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

func newInteractiveModel(ctx context.Context, master, kvStore string) *interactiveModel {
	return &interactiveModel{
		ctx:     ctx,
		master:  master,
		kvStore: kvStore,
		state:   stateSelectCmd,
	}
}

type connectedMsg struct {
	err  error
	sess *session
}

type execResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.connect
}

func (m *interactiveModel) connect() tea.Msg {
	s, err := newSession(m.ctx, m.master, m.kvStore, nil)
	return connectedMsg{sess: s, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()

		case "q":
			if m.state != stateInputArgs {
				return m, m.quit()
			}

		case "up", "k":
			if m.state == stateSelectCmd && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectCmd && m.selected < len(commands)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectCmd:
				if m.sess == nil {
					return m, nil
				}
				m.prepareInputs()
				m.state = stateInputArgs
				return m, textinput.Blink

			case stateInputArgs:
				return m, m.execCommand

			case stateShowResult:
				m.reset()
			}
			return m, nil

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}
			return m, nil

		case "esc":
			if m.state != stateSelectCmd {
				m.reset()
			}
			return m, nil
		}

	case connectedMsg:
		m.sess = msg.sess
		m.err = msg.err
		return m, nil

	case execResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
		return m, nil
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m *interactiveModel) quit() tea.Cmd {
	if m.sess != nil {
		_ = m.sess.Close()
		m.sess = nil
	}
	return tea.Quit
}

func (m *interactiveModel) reset() {
	m.state = stateSelectCmd
	m.inputs = nil
	m.result = ""
	m.err = nil
}

func (m *interactiveModel) prepareInputs() {
	c := commands[m.selected]
	m.inputs = make([]textinput.Model, len(c.params))
	for i, p := range c.params {
		ti := textinput.New()
		ti.Placeholder = p
		ti.Prompt = p + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) execCommand() tea.Msg {
	c := commands[m.selected]
	args := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		args[i] = input.Value()
	}

	var out bytes.Buffer
	m.sess.out = &out
	err := c.run(m.sess, args)
	return execResultMsg{result: out.String(), err: err}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.sess == nil {
		return "Connecting to " + m.master + "..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Tachyon"))
	b.WriteString(" ")
	b.WriteString(m.master)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectCmd:
		b.WriteString("Select a command:\n\n")
		for i, c := range commands {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + formatCommand(c)))
			} else {
				b.WriteString("  " + formatCommand(c))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter run • q quit"))

	case stateInputArgs:
		c := commands[m.selected]
		b.WriteString(fmt.Sprintf("Running %s\n\n", cmdStyle.Render(c.name)))
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter run • esc back"))

	case stateShowResult:
		c := commands[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", cmdStyle.Render(c.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else if m.result == "" {
			b.WriteString(resultStyle.Render("ok"))
		} else {
			b.WriteString(resultStyle.Render(strings.TrimRight(m.result, "\n")))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func formatCommand(c command) string {
	var params []string
	for _, p := range c.params {
		params = append(params, paramStyle.Render("<"+p+">"))
	}
	return cmdStyle.Render(c.name) + " " + strings.Join(params, " ") + "  " + helpStyle.Render(c.help)
}

func runInteractive(ctx context.Context, cfg *config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal")
	}
	p := tea.NewProgram(newInteractiveModel(ctx, cfg.Master, cfg.KVStore), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
