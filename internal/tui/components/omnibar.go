package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/skylight/internal/domain"
	"github.com/mmcdole/skylight/internal/textutil"
	"github.com/mmcdole/skylight/internal/tui/styles"
)

const omnibarMaxResults = 10

// Omnibar is the jump-to-item modal for the current folder. Ranking is
// done by the caller; the omnibar only holds and renders results.
type Omnibar struct {
	input     textinput.Model
	results   []domain.Item
	cursor    int
	visible   bool
	width     int
	height    int
	prevQuery string
}

// NewOmnibar creates a new omnibar component
func NewOmnibar() Omnibar {
	ti := textinput.New()
	ti.Placeholder = "Jump to..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "› "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Omnibar{input: ti}
}

// Show makes the omnibar visible with an empty query
func (o *Omnibar) Show() {
	o.visible = true
	o.input.Focus()
	o.input.SetValue("")
	o.results = nil
	o.cursor = 0
	o.prevQuery = ""
}

// Hide hides the omnibar
func (o *Omnibar) Hide() {
	o.visible = false
	o.input.Blur()
}

func (o Omnibar) IsVisible() bool { return o.visible }
func (o Omnibar) Query() string   { return o.input.Value() }

// SetResults sets the ranked matches
func (o *Omnibar) SetResults(results []domain.Item) {
	o.results = results
	o.cursor = 0
}

// SetSize updates the component dimensions
func (o *Omnibar) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.input.Width = max(width/2-10, 10)
}

// QueryChanged returns true if the query changed since last check and updates prevQuery
func (o *Omnibar) QueryChanged() bool {
	current := o.input.Value()
	if current != o.prevQuery {
		o.prevQuery = current
		return true
	}
	return false
}

// SelectedResult returns the highlighted match
func (o Omnibar) SelectedResult() (domain.Item, bool) {
	if o.cursor >= len(o.results) {
		return domain.Item{}, false
	}
	return o.results[o.cursor], true
}

// Update handles input. selected reports that enter picked a result.
func (o Omnibar) Update(msg tea.Msg) (Omnibar, tea.Cmd, bool) {
	if !o.visible {
		return o, nil, false
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		keys := ListColumnKeys
		switch {
		case key.Matches(msg, keys.Escape):
			o.Hide()
			return o, nil, false
		case key.Matches(msg, keys.Enter):
			return o, nil, len(o.results) > 0
		case msg.String() == "down" || msg.String() == "ctrl+n":
			if o.cursor < min(len(o.results), omnibarMaxResults)-1 {
				o.cursor++
			}
			return o, nil, false
		case msg.String() == "up" || msg.String() == "ctrl+p":
			if o.cursor > 0 {
				o.cursor--
			}
			return o, nil, false
		}
	}

	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	return o, cmd, false
}

// View renders the modal centered in the available space
func (o Omnibar) View() string {
	if !o.visible {
		return ""
	}

	modalWidth := min(max(o.width*2/3, 40), 80)

	var b strings.Builder
	b.WriteString(o.input.View())
	b.WriteString("\n\n")
	o.renderResults(&b, modalWidth-4)

	content := lipgloss.NewStyle().Width(modalWidth - 4).Render(b.String())
	modal := styles.OverlayStyle.Width(modalWidth).Render(content)

	return lipgloss.Place(o.width, o.height, lipgloss.Center, lipgloss.Center, modal)
}

func (o Omnibar) renderResults(b *strings.Builder, width int) {
	if len(o.results) == 0 {
		if o.input.Value() != "" {
			b.WriteString(styles.DimStyle.Render("No matches found"))
		}
		return
	}

	shown := min(len(o.results), omnibarMaxResults)
	for i, item := range o.results[:shown] {
		style := styles.NormalItemStyle
		if i == o.cursor {
			style = styles.SelectedItemStyle
		}
		name := textutil.Truncate(textutil.Sanitize(item.Name), width-3)
		b.WriteString(styles.KindGlyph(string(item.Kind)) + " " + style.Render(name))
		b.WriteString("\n")
	}

	if len(o.results) > shown {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(o.results)-shown)))
	}
}
