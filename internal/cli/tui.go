package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tobim/smartgraph/pkg/diagram"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newEditCmd creates the edit command, an interactive node editor.
func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a diagram's nodes interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			part, err := loadPart(args[0])
			if err != nil {
				return err
			}
			sa := part.SmartArt()

			p := tea.NewProgram(newEditorModel(sa, args[0]))
			final, err := p.Run()
			if err != nil {
				return err
			}

			m, ok := final.(editorModel)
			if !ok || !m.saved {
				fmt.Println(StyleWarning.Render("Discarded changes"))
				return nil
			}
			if err := writePart(args[0], part); err != nil {
				return err
			}
			fmt.Println(StyleSuccess.Render("Saved " + args[0]))
			return nil
		},
	}
}

// editorModel is the bubbletea model for the node editor. It shows the
// editable nodes as a flat list and supports retexting, adding, and
// removing nodes.
type editorModel struct {
	sa     *diagram.SmartArt
	path   string
	nodes  []*diagram.Node
	cursor int

	input   textinput.Model
	editing bool

	saved  bool
	status string
}

func newEditorModel(sa *diagram.SmartArt, path string) editorModel {
	input := textinput.New()
	input.CharLimit = 256
	return editorModel{
		sa:    sa,
		path:  path,
		nodes: sa.EditableNodes(),
		input: input,
	}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.editing {
		return m.updateEditing(keyMsg)
	}
	return m.updateList(keyMsg)
}

func (m editorModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.nodes[m.cursor].SetText(m.input.Value())
		m.editing = false
		m.status = "updated node " + fmt.Sprint(m.cursor)
		return m, nil
	case "esc":
		m.editing = false
		m.status = ""
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m editorModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.nodes)-1 {
			m.cursor++
		}
	case "enter", "e":
		if len(m.nodes) == 0 {
			return m, nil
		}
		m.input.SetValue(m.nodes[m.cursor].Text())
		m.input.CursorEnd()
		m.input.Focus()
		m.editing = true
		m.status = ""
		return m, textinput.Blink
	case "a":
		if _, err := m.sa.AddNode("", diagram.Sibling()); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.refresh()
		m.cursor = len(m.nodes) - 1
		m.status = "added node"
	case "A":
		if len(m.nodes) == 0 {
			return m, nil
		}
		if _, err := m.sa.AddNode("", diagram.Under(m.nodes[m.cursor])); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.refresh()
		m.status = "added child node"
	case "d":
		if len(m.nodes) == 0 {
			return m, nil
		}
		if err := m.sa.RemoveNodeAt(m.cursor); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.refresh()
		if m.cursor >= len(m.nodes) && m.cursor > 0 {
			m.cursor--
		}
		m.status = "removed node"
	case "s":
		m.saved = true
		return m, tea.Quit
	}
	return m, nil
}

// refresh reloads the node list after a structural edit.
func (m *editorModel) refresh() {
	m.nodes = m.sa.EditableNodes()
}

func (m editorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Edit " + m.path))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ edit  a add  A add child  d delete  s save  q quit"))
	b.WriteString("\n\n")

	if len(m.nodes) == 0 {
		b.WriteString(listDimStyle.Render("  (no nodes - press a to add one)"))
		b.WriteString("\n")
	}

	for i, node := range m.nodes {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		if m.editing && i == m.cursor {
			b.WriteString(cursor + m.input.View())
			b.WriteString("\n")
			continue
		}

		text := node.Text()
		if text == "" {
			text = listDimStyle.Render("(empty)")
		}
		line := fmt.Sprintf("%s%s", cursor, text)
		if node.HasImagePlaceholder() {
			line += " " + StyleHighlight.Render("[picture]")
		}

		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  " + m.status))
		b.WriteString("\n")
	}
	return b.String()
}
