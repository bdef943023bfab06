package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleMouseMsg handles mouse input. Rows are resolved through their zones.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.Overlay.Showing() {
		return m.updateOverlay(msg)
	}
	if m.ShowHelp {
		return m, nil
	}

	top := m.ColumnStack.Top()
	if top == nil {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		top.SetSelectedIndex(top.SelectedIndex() - 1)
		return m, nil
	case tea.MouseButtonWheelDown:
		top.SetSelectedIndex(top.SelectedIndex() + 1)
		return m, nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if row, ok := top.RowAt(msg); ok {
		// A click on the selected row opens it
		if row == top.SelectedIndex() {
			return m.handleEnter()
		}
		top.SetSelectedIndex(row)
		return m, nil
	}

	if parent := m.ColumnStack.Parent(); parent != nil {
		if row, ok := parent.RowAt(msg); ok {
			m.ColumnStack.Pop()
			parent.SetSelectedIndex(row)
			m.updateLayout()
			return m, nil
		}
	}
	return m, nil
}
