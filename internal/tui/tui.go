// Package tui hosts the interactive review screen shown before a patch is
// applied. The pending diff scrolls inside a viewport; the user either
// approves or aborts.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Review displays preview under title and blocks until the user decides.
// It returns true when the user approved applying the patch.
func Review(title, preview string) (bool, error) {
	m := newModel(title, preview)
	program := tea.NewProgram(m, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("tui: review failed: %w", err)
	}
	result, ok := final.(model)
	if !ok {
		return false, fmt.Errorf("tui: unexpected final model %T", final)
	}
	return result.approved, nil
}

type model struct {
	title    string
	preview  string
	viewport viewport.Model
	ready    bool
	approved bool

	titleStyle  lipgloss.Style
	borderStyle lipgloss.Style
	footerStyle lipgloss.Style
}

func newModel(title, preview string) model {
	return model{
		title:       title,
		preview:     preview,
		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		borderStyle: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
		footerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y", "enter":
			m.approved = true
			return m, tea.Quit
		case "n", "N", "q", "esc", "ctrl+c":
			m.approved = false
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// Reserve rows for the title and footer plus the border.
		height := msg.Height - 6
		if height < 1 {
			height = 1
		}
		width := msg.Width - 2
		if width < 1 {
			width = 1
		}
		if !m.ready {
			m.viewport = viewport.New(width, height)
			m.viewport.SetContent(m.preview)
			m.ready = true
		} else {
			m.viewport.Width = width
			m.viewport.Height = height
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "loading preview..."
	}
	header := m.titleStyle.Render(m.title)
	body := m.borderStyle.Render(m.viewport.View())
	footer := m.footerStyle.Render("y apply · n cancel · ↑/↓ scroll")
	return header + "\n" + body + "\n" + footer
}
