package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/skylight/internal/domain"
	"github.com/mmcdole/skylight/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		m.Overlay.Dismiss()
		return m, tea.Quit
	}

	// The viewer owns the keyboard while it is showing
	if m.Overlay.Showing() {
		return m.updateOverlay(msg)
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	if m.Omnibar.IsVisible() {
		return m.handleOmnibarKey(msg)
	}

	top := m.ColumnStack.Top()
	if top == nil {
		return m, nil
	}

	// Filter input has the keyboard while typing
	if top.IsFilterTyping() {
		_, cmd := top.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Filter):
		if !top.IsFiltering() {
			top.ToggleFilter()
			return m, nil
		}

	case key.Matches(msg, Keys.Jump):
		m.Omnibar.Show()
		m.Omnibar.SetResults(top.Items())
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		return m, m.folderLoadCmd(top, true)

	case key.Matches(msg, Keys.RefreshAll):
		m.FolderSvc.InvalidateAll()
		return m, tea.Batch(m.folderLoadCmd(top, true), m.setStatus("Cache cleared", false))

	case key.Matches(msg, Keys.Open):
		return m.handleEnter()

	case key.Matches(msg, Keys.Back):
		return m.handleBack()
	}

	_, cmd := top.Update(msg)
	return m, cmd
}

// handleOmnibarKey drives the jump modal. Matches are ranked over the
// whole folder, ignoring any column filter.
func (m Model) handleOmnibarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	top := m.ColumnStack.Top()
	omnibar, cmd, selected := m.Omnibar.Update(msg)
	m.Omnibar = omnibar

	if selected {
		item, ok := m.Omnibar.SelectedResult()
		m.Omnibar.Hide()
		if !ok || top == nil {
			return m, nil
		}
		top.ClearFilter()
		top.SelectID(item.ID)
		return m.handleEnter()
	}

	if m.Omnibar.QueryChanged() && top != nil {
		m.Omnibar.SetResults(m.FolderSvc.Filter(top.Items(), m.Omnibar.Query()))
	}
	return m, cmd
}

// handleEnter opens the selected item: folders drill in, media opens the
// viewer, anything else goes to the browser
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	top := m.ColumnStack.Top()
	if top == nil {
		return m, nil
	}
	item, ok := top.SelectedItem()
	if !ok {
		return m, nil
	}

	switch {
	case item.IsFolder():
		col := components.NewListColumn(item.ID, item.Name)
		m.ColumnStack.Push(col, top.SelectedIndex())
		m.updateLayout()
		return m, m.folderLoadCmd(col, false)

	case item.IsMedia():
		return m, m.openViewer(top, item)

	case item.WebURL != "":
		return m, openLinkCmd(m.PlaybackSvc, item.WebURL)
	}
	return m, nil
}

// openViewer shows item in the overlay, navigating among the column's
// visible media
func (m *Model) openViewer(col *components.ListColumn, item domain.Item) tea.Cmd {
	m.Overlay.SiblingGetter = m.FolderSvc.Siblings(col.VisibleItems())
	m.Overlay.SetSize(m.Width, m.Height)
	return m.Overlay.ShowID(item.ID)
}

// handleBack returns to the parent folder
func (m Model) handleBack() (tea.Model, tea.Cmd) {
	if top := m.ColumnStack.Top(); top != nil && top.IsFiltering() {
		top.ClearFilter()
		return m, nil
	}
	if !m.ColumnStack.CanGoBack() {
		return m, nil
	}

	_, savedCursor := m.ColumnStack.Pop()
	if top := m.ColumnStack.Top(); top != nil {
		top.SetSelectedIndex(savedCursor)
	}

	m.updateLayout()
	return m, nil
}

func openLinkCmd(player components.Player, url string) tea.Cmd {
	return func() tea.Msg {
		return components.LinkOpenedMsg{URL: url, Err: player.OpenLink(url)}
	}
}
