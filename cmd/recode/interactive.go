package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/recoderlab/recoder"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	encStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	aliasStyle = lipgloss.NewStyle().
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

type encInfo struct {
	name    string
	aliases []string
}

type interactiveModel struct {
	err      error
	encs     []encInfo
	fromIdx  int
	toIdx    int
	selected int
	input    textinput.Model
	result   string
	lossy    int
	state    modelState
}

type modelState int

const (
	stateSelectFrom modelState = iota
	stateSelectTo
	stateInputBytes
	stateShowResult
)

func newInteractiveModel() *interactiveModel {
	return &interactiveModel{state: stateSelectFrom}
}

type loadedMsg struct {
	encs []encInfo
}

type convertedMsg struct {
	err    error
	result string
	lossy  int
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadCatalog
}

func (m *interactiveModel) loadCatalog() tea.Msg {
	var encs []encInfo
	for _, group := range recoder.ListEncodings() {
		encs = append(encs, encInfo{name: group[0], aliases: group[1:]})
	}
	return loadedMsg{encs: encs}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputBytes {
				return m, tea.Quit
			}

		case "up", "k":
			if m.selecting() && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selecting() && m.selected < len(m.encs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFrom:
				m.fromIdx = m.selected
				m.state = stateSelectTo

			case stateSelectTo:
				m.toIdx = m.selected
				m.prepareInput()
				m.state = stateInputBytes

			case stateInputBytes:
				return m, m.convert

			case stateShowResult:
				m.state = stateSelectFrom
				m.selected = m.fromIdx
				m.result = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateSelectTo:
				m.state = stateSelectFrom
				m.selected = m.fromIdx
			case stateInputBytes:
				m.state = stateSelectTo
				m.selected = m.toIdx
			case stateShowResult:
				m.state = stateSelectFrom
				m.selected = m.fromIdx
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		m.encs = msg.encs

	case convertedMsg:
		m.result = msg.result
		m.lossy = msg.lossy
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputBytes {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) selecting() bool {
	return m.state == stateSelectFrom || m.state == stateSelectTo
}

func (m *interactiveModel) prepareInput() {
	ti := textinput.New()
	ti.Placeholder = "hex bytes, e.g. 82 A0 82 A2"
	ti.Prompt = "bytes: "
	ti.Width = 48
	ti.Focus()
	m.input = ti
}

func (m *interactiveModel) convert() tea.Msg {
	raw, err := parseHexBytes(m.input.Value())
	if err != nil {
		return convertedMsg{err: err}
	}

	out, lossy, err := recoder.Convert(m.encs[m.fromIdx].name, m.encs[m.toIdx].name, raw)
	if err != nil {
		return convertedMsg{err: err}
	}

	return convertedMsg{result: formatResult(out, m.encs[m.toIdx].name), lossy: lossy}
}

func parseHexBytes(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', ',':
			return -1
		}
		return r
	}, s)
	raw, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("parse hex input: %w", err)
	}
	return raw, nil
}

func formatResult(out []byte, to string) string {
	if to == "UTF-8" {
		return string(out)
	}
	return fmt.Sprintf("% X", out)
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.encs) == 0 {
		return "Loading encodings..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Recoder"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFrom:
		b.WriteString("Select the source encoding:\n\n")
		m.viewEncodingList(&b)
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter confirm • q quit"))

	case stateSelectTo:
		b.WriteString(fmt.Sprintf("Converting from %s\n", encStyle.Render(m.encs[m.fromIdx].name)))
		b.WriteString("Select the target encoding:\n\n")
		m.viewEncodingList(&b)
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter confirm • esc back • q quit"))

	case stateInputBytes:
		b.WriteString(fmt.Sprintf("Converting %s -> %s\n\n",
			encStyle.Render(m.encs[m.fromIdx].name),
			encStyle.Render(m.encs[m.toIdx].name)))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter convert • esc back"))

	case stateShowResult:
		b.WriteString(fmt.Sprintf("Result of %s -> %s:\n\n",
			encStyle.Render(m.encs[m.fromIdx].name),
			encStyle.Render(m.encs[m.toIdx].name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
			if m.lossy > 0 {
				b.WriteString(helpStyle.Render(fmt.Sprintf("  (%d lossy substitutions)", m.lossy)))
			}
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

// viewEncodingList renders a window of the catalog around the selection so
// long listings fit on screen.
func (m *interactiveModel) viewEncodingList(b *strings.Builder) {
	const window = 12
	start := 0
	if m.selected >= window {
		start = m.selected - window + 1
	}
	end := start + window
	if end > len(m.encs) {
		end = len(m.encs)
	}

	for i := start; i < end; i++ {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
			b.WriteString(selectedStyle.Render(cursor + m.encs[i].name))
		} else {
			b.WriteString(cursor + m.formatEnc(m.encs[i]))
		}
		b.WriteString("\n")
	}
	if end < len(m.encs) {
		b.WriteString(helpStyle.Render(fmt.Sprintf("  ... %d more", len(m.encs)-end)))
		b.WriteString("\n")
	}
}

func (m *interactiveModel) formatEnc(e encInfo) string {
	if len(e.aliases) == 0 {
		return encStyle.Render(e.name)
	}
	return encStyle.Render(e.name) + " " + aliasStyle.Render("("+strings.Join(e.aliases, ", ")+")")
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
