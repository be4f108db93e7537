package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MatthieuRouland/effectsize/pkg/standardize"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// MethodListModel - Interactive method selection
// =============================================================================

// methodItem is one row of the method picker.
type methodItem struct {
	Method      standardize.Method
	Description string
	Usable      bool // the method applies to the loaded model
}

// MethodListModel is the bubbletea model for interactive method selection.
type MethodListModel struct {
	Items    []methodItem
	Cursor   int
	Selected *standardize.Method
}

// NewMethodListModel creates a new method list model with the cursor on
// the first usable method.
func NewMethodListModel(items []methodItem) MethodListModel {
	m := MethodListModel{Items: items}
	for i, it := range items {
		if it.Usable {
			m.Cursor = i
			break
		}
	}
	return m
}

func (m MethodListModel) Init() tea.Cmd {
	return nil
}

func (m MethodListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
			}
		case "enter":
			it := m.Items[m.Cursor]
			if !it.Usable {
				return m, nil
			}
			method := it.Method
			m.Selected = &method
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MethodListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Method"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, it := range m.Items {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		status := StyleSuccess.Render("*")
		if !it.Usable {
			status = StyleWarning.Render("!")
		}

		line := fmt.Sprintf("%s%s %-8s  %s", cursor, status, it.Method, listDimStyle.Render(it.Description))
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case !it.Usable:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s applies   %s falls back to basic\n",
		StyleSuccess.Render("*"), StyleWarning.Render("!")))

	return b.String()
}
