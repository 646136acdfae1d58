package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/aout"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// maxSegmentDump caps how much of a segment is loaded into the hex pane.
const maxSegmentDump = 64 << 10

type interactiveModel struct {
	err      error
	header   *aout.Header
	hex      viewport.Model
	filename string
	fields   []aout.FieldInfo
	segments []aout.Segment
	dumps    map[string]string
	selected int
	segment  int
	ready    bool
}

func newInteractiveModel(filename string) *interactiveModel {
	return &interactiveModel{
		filename: filename,
		hex:      viewport.New(78, 10),
	}
}

type loadedMsg struct {
	err      error
	header   *aout.Header
	segments []aout.Segment
	dumps    map[string]string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadFile
}

func (m *interactiveModel) loadFile() tea.Msg {
	f, err := aout.Open(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	defer f.Close()

	dumps := make(map[string]string)
	for _, seg := range f.Segments() {
		r := f.Segment(seg.Name)
		data, err := io.ReadAll(io.LimitReader(r, maxSegmentDump))
		if err != nil {
			return loadedMsg{err: fmt.Errorf("read %s segment: %w", seg.Name, err)}
		}
		dumps[seg.Name] = hex.Dump(data)
	}
	return loadedMsg{header: f.Header, segments: f.Segments(), dumps: dumps}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.fields)-1 {
				m.selected++
			}

		case "tab":
			if len(m.segments) > 0 {
				m.segment = (m.segment + 1) % len(m.segments)
				m.showSegment()
			}

		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.hex, cmd = m.hex.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.hex.Width = msg.Width
		if h := msg.Height - len(m.fields) - 8; h > 3 {
			m.hex.Height = h
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.header = msg.header
		m.fields = msg.header.Fields()
		m.segments = msg.segments
		m.dumps = msg.dumps
		m.ready = true
		m.showSegment()
	}

	return m, nil
}

func (m *interactiveModel) showSegment() {
	if len(m.segments) == 0 {
		return
	}
	seg := m.segments[m.segment]
	content := m.dumps[seg.Name]
	if content == "" {
		content = "(empty)\n"
	}
	m.hex.SetContent(content)
	m.hex.GotoTop()
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if !m.ready {
		return "Loading a.out..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("a.out"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(fmt.Sprintf(" (%s form, %s)\n\n", m.header.Form(), m.header.CPU))

	for i, f := range m.fields {
		line := fmt.Sprintf("%2d  %-9s  %s  %s", f.Offset, f.Name, fieldValue(m.header, f), fieldMeaning(m.header, f))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + fieldStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.segments) > 0 {
		seg := m.segments[m.segment]
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(fmt.Sprintf("segment %s: offset %d, %d bytes", seg.Name, seg.Offset, seg.Size)))
		b.WriteString("\n")
		b.WriteString(m.hex.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ field • tab segment • pgup/pgdn scroll • q quit"))

	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInteractiveModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
