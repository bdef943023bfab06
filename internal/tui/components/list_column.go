package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/skylight/internal/domain"
	"github.com/mmcdole/skylight/internal/textutil"
	"github.com/mmcdole/skylight/internal/tui/styles"
)

// Layout constants for list columns
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// ListColumn is a scrollable listing of one drive folder
type ListColumn struct {
	folderID string
	items    []domain.Item

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	// Loading state
	loading      bool
	spinnerFrame int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into items

	zonePrefix string
}

// NewListColumn creates an empty, loading column for a folder
func NewListColumn(folderID, title string) *ListColumn {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ListColumn{
		folderID:    folderID,
		title:       title,
		loading:     true,
		filterInput: ti,
		zonePrefix:  zone.NewPrefix(),
	}
}

// Update handles navigation and filter keys when focused
func (c *ListColumn) Update(msg tea.Msg) (*ListColumn, tea.Cmd) {
	if !c.focused {
		return c, nil
	}
	keys := ListColumnKeys

	// Filter input has the keyboard while typing
	if c.filterActive && c.filterInput.Focused() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, keys.Escape):
				c.clearFilter()
				return c, nil
			case key.Matches(msg, keys.Enter):
				// Accept filter, blur input to allow navigation
				c.filterInput.Blur()
				return c, nil
			case msg.String() == "backspace" && c.filterInput.Value() == "":
				c.clearFilter()
				return c, nil
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return c, cmd
	}

	// Filter accepted: esc clears, / edits again
	if c.filterActive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, keys.Escape):
				c.clearFilter()
				return c, nil
			case key.Matches(msg, keys.Filter):
				c.filterInput.Focus()
				return c, nil
			}
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return c, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Down):
			if c.cursor < count-1 {
				c.cursor++
				c.ensureVisible()
			}
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
				c.ensureVisible()
			}
		case key.Matches(msg, keys.Home):
			c.cursor = 0
			c.offset = 0
		case key.Matches(msg, keys.End):
			c.cursor = count - 1
			c.ensureVisible()
		case key.Matches(msg, keys.HalfDown, keys.PageDown):
			c.cursor = min(c.cursor+c.maxVisible/2, count-1)
			c.ensureVisible()
		case key.Matches(msg, keys.HalfUp, keys.PageUp):
			c.cursor = max(c.cursor-c.maxVisible/2, 0)
			c.ensureVisible()
		}
	}
	return c, nil
}

// View renders the column inside its border
func (c *ListColumn) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	// Subtract frame (border) size so total rendered size equals c.width x c.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(c.width - frameW).
		Height(c.height - frameH).
		Render(c.renderContent())
}

func (c *ListColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *ListColumn) Width() int              { return c.width }
func (c *ListColumn) Height() int             { return c.height }
func (c *ListColumn) SetFocused(focused bool) { c.focused = focused }
func (c *ListColumn) IsFocused() bool         { return c.focused }
func (c *ListColumn) Title() string           { return c.title }
func (c *ListColumn) FolderID() string        { return c.folderID }
func (c *ListColumn) SelectedIndex() int      { return c.cursor }
func (c *ListColumn) IsLoading() bool         { return c.loading }
func (c *ListColumn) IsEmpty() bool           { return c.ItemCount() == 0 }

func (c *ListColumn) SetLoading(loading bool) {
	c.loading = loading
}

// SetSpinnerFrame updates the spinner animation frame
func (c *ListColumn) SetSpinnerFrame(frame int) {
	c.spinnerFrame = frame
}

// SetItems replaces the listing and resets the cursor and filter
func (c *ListColumn) SetItems(title string, items []domain.Item) {
	c.loading = false
	c.cursor = 0
	c.offset = 0
	c.items = items
	if title != "" {
		c.title = title
	}
	c.clearFilter()
}

// Items returns the full listing, ignoring the filter
func (c *ListColumn) Items() []domain.Item {
	return c.items
}

// VisibleItems returns the listing in display order, filter applied
func (c *ListColumn) VisibleItems() []domain.Item {
	if c.filteredIdx == nil {
		return c.items
	}
	result := make([]domain.Item, len(c.filteredIdx))
	for i, idx := range c.filteredIdx {
		result[i] = c.items[idx]
	}
	return result
}

// SelectedItem returns the item under the cursor
func (c *ListColumn) SelectedItem() (domain.Item, bool) {
	count := c.ItemCount()
	if count == 0 || c.cursor >= count {
		return domain.Item{}, false
	}
	return c.items[c.mapIndex(c.cursor)], true
}

func (c *ListColumn) SetSelectedIndex(idx int) {
	last := c.ItemCount() - 1
	if last < 0 {
		c.cursor = 0
		return
	}
	c.cursor = max(0, min(idx, last))
	c.ensureVisible()
}

// SelectID moves the cursor to the item with id, if it is visible
func (c *ListColumn) SelectID(id string) bool {
	for i := range c.ItemCount() {
		if c.items[c.mapIndex(i)].ID == id {
			c.SetSelectedIndex(i)
			return true
		}
	}
	return false
}

func (c *ListColumn) ItemCount() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.items)
}

// CanDrillInto reports whether the selected item is a folder
func (c *ListColumn) CanDrillInto() bool {
	item, ok := c.SelectedItem()
	return ok && item.IsFolder()
}

// RowAt returns the display index of the row under a mouse event
func (c *ListColumn) RowAt(msg tea.MouseMsg) (int, bool) {
	end := min(c.offset+c.maxVisible, c.ItemCount())
	for i := c.offset; i < end; i++ {
		if zi := zone.Get(c.rowZone(i)); zi != nil && zi.InBounds(msg) {
			return i, true
		}
	}
	return 0, false
}

// ToggleFilter activates the filter input
func (c *ListColumn) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c *ListColumn) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *ListColumn) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (c *ListColumn) ClearFilter() {
	c.clearFilter()
}

func (c *ListColumn) rowZone(i int) string {
	return fmt.Sprintf("%srow-%d", c.zonePrefix, i)
}

func (c *ListColumn) recalcMaxVisible() {
	// Interior height minus title line and scroll indicators
	c.maxVisible = c.height - BorderHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *ListColumn) ensureVisible() {
	// Size not known yet
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *ListColumn) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *ListColumn) applyFilter() {
	query := c.filterInput.Value()
	c.filterQuery = query

	if query == "" {
		c.filteredIdx = nil
		return
	}

	names := make([]string, len(c.items))
	for i, item := range c.items {
		names[i] = strings.ToLower(item.Name)
	}

	matches := fuzzy.Find(strings.ToLower(query), names)

	c.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
	}

	c.cursor = 0
	c.offset = 0
}

func (c *ListColumn) mapIndex(i int) int {
	if c.filteredIdx != nil && i < len(c.filteredIdx) {
		return c.filteredIdx[i]
	}
	return i
}

func (c *ListColumn) renderContent() string {
	itemWidth := max(c.width-BorderWidth, 10)

	titleLine := styles.AccentStyle.Render(textutil.Truncate(textutil.Sanitize(c.title), itemWidth))

	if c.loading {
		loadingLine := styles.RenderSpinner(c.spinnerFrame) + styles.DimStyle.Render(" Loading...")
		return titleLine + "\n \n" + loadingLine + "\n "
	}

	count := c.ItemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render("Empty folder")
		if c.filterActive && c.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n \n" + emptyMsg + "\n "
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	end := min(c.offset+c.maxVisible, count)
	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		row := c.renderItem(c.items[c.mapIndex(i)], i == c.cursor, itemWidth)
		lines = append(lines, zone.Mark(c.rowZone(i), row))
	}

	// Header and footer rows are always reserved to prevent layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}
	return content
}

func (c *ListColumn) renderItem(item domain.Item, selected bool, width int) string {
	var glyph string
	var glyphFg lipgloss.Color
	switch item.Kind {
	case domain.KindFolder:
		glyph, glyphFg = styles.FolderChar, styles.SkyBlue
	case domain.KindImage:
		glyph, glyphFg = styles.ImageChar, styles.Green
	case domain.KindVideo:
		glyph, glyphFg = styles.VideoChar, styles.Amber
	default:
		glyph, glyphFg = styles.OtherChar, styles.DimGray
	}

	name := textutil.Sanitize(item.Name)
	if item.IsFolder() && item.ChildCount > 0 {
		name = fmt.Sprintf("%s (%d)", name, item.ChildCount)
	}
	// width - glyph(1) - space(1) - margins(2)
	name = textutil.Truncate(name, max(width-4, 5))

	parts := []styles.RowPart{
		{Text: glyph, Foreground: &glyphFg},
		{Text: " " + name},
	}
	return styles.RenderListRow(parts, selected, width)
}

func (c *ListColumn) renderFilterBar() string {
	countStr := ""
	if c.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.items)))
	}
	return c.filterInput.View() + countStr
}
