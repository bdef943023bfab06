package tui

// Layout proportions for the folder columns
const (
	ParentColumnPercent = 30 // Parent context
	MinColumnWidth      = 15

	// Vertical layout: single footer line
	ChromeHeight = 1
)

// columnLayout holds calculated column widths for the View
type columnLayout struct {
	parentWidth int // 0 if not shown
	activeWidth int
}

// calculateColumnLayout computes column widths based on stack depth
func (m Model) calculateColumnLayout(availableWidth int) columnLayout {
	if m.ColumnStack.Len() < 2 {
		return columnLayout{activeWidth: availableWidth}
	}
	parent := max(availableWidth*ParentColumnPercent/100, MinColumnWidth)
	return columnLayout{
		parentWidth: parent,
		activeWidth: max(availableWidth-parent, MinColumnWidth),
	}
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	m.Overlay.SetSize(m.Width, m.Height)
	m.Omnibar.SetSize(m.Width, m.Height)

	top := m.ColumnStack.Top()
	if top == nil {
		return
	}

	contentHeight := m.Height - ChromeHeight
	layout := m.calculateColumnLayout(m.Width)
	top.SetSize(layout.activeWidth, contentHeight)
	if parent := m.ColumnStack.Parent(); parent != nil {
		parent.SetSize(layout.parentWidth, contentHeight)
	}
}
