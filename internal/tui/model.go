package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"comicpack/internal/packer"
)

// Model renders the verification progress bar for one directory. It stays
// invisible until the first update arrives so the overwrite prompt, which
// runs before scanning, keeps the terminal to itself.
type Model struct {
	updates  <-chan packer.ProgressUpdate
	width    int
	total    int
	verified int
	quitting bool
}

type doneMsg struct{}

type updateMsg packer.ProgressUpdate

func NewModel(updates <-chan packer.ProgressUpdate) Model {
	return Model{updates: updates}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.total += msg.TotalDelta
		m.verified += msg.VerifiedDelta
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting || m.total == 0 {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-24)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	ratio := float64(m.verified) / float64(m.total)
	if ratio > 1 {
		ratio = 1
	}

	return labelStyle.Render("Verifying files ") +
		barStyle.Render(renderBar(barWidth, ratio)) +
		dimStyle.Render(fmt.Sprintf(" %d/%d", m.verified, m.total))
}

func listenForUpdates(updates <-chan packer.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

var (
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	barStyle   = lipgloss.NewStyle().Foreground(ColorAccent)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
)
