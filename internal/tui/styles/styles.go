package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	SkyBlue    = lipgloss.Color("#0EA5E9")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	Backdrop   = lipgloss.Color("#0B0F14")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Amber      = lipgloss.Color("#E5A00D")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SkyBlue)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(SkyBlue)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	LinkStyle = lipgloss.NewStyle().
			Foreground(SkyBlue).
			Underline(true)
)

// Item kind glyphs
const (
	FolderChar = "▸"
	ImageChar  = "◆"
	VideoChar  = "▶"
	OtherChar  = "·"
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Overlay styles
var (
	OverlayStyle = lipgloss.NewStyle().
			Background(Backdrop)

	CaptionStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateDark).
			Padding(0, 1)

	ControlStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateLight).
			Padding(0, 1)

	ControlDisabledStyle = lipgloss.NewStyle().
				Foreground(DimGray).
				Background(SlateDark).
				Padding(0, 1)

	ErrorTitleStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	ErrorDetailStyle = lipgloss.NewStyle().
				Foreground(LightGray)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(SkyBlue)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(SkyBlue)
)

// SpinnerFrames is the loading animation
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(SkyBlue)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(SkyBlue).
				Bold(true)
)

// Match highlight styles for filter results
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(SkyBlue).
				Bold(true)

	MatchHighlightSelectedStyle = lipgloss.NewStyle().
					Foreground(SkyBlue).
					Background(SlateLight).
					Bold(true)
)

// RenderSpinner renders one spinner frame
func RenderSpinner(frame int) string {
	return SpinnerStyle.Render(SpinnerFrames[frame%len(SpinnerFrames)])
}

// KindGlyph returns the list marker for an item kind
func KindGlyph(kind string) string {
	switch kind {
	case "folder":
		return AccentStyle.Render(FolderChar)
	case "image":
		return SuccessStyle.Render(ImageChar)
	case "video":
		return lipgloss.NewStyle().Foreground(Amber).Render(VideoChar)
	default:
		return DimStyle.Render(OtherChar)
	}
}

// RowPart is a piece of a list row with an optional foreground colour
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}

// RenderListRow renders a list row with a uniform background when selected.
// Each part is styled separately so inner resets do not break the highlight.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	var b strings.Builder
	visible := 0
	for _, part := range parts {
		style := lipgloss.NewStyle()
		switch {
		case part.Foreground != nil:
			style = style.Foreground(*part.Foreground)
		case selected:
			style = style.Foreground(White)
		default:
			style = style.Foreground(LightGray)
		}
		if selected {
			style = style.Background(SlateLight)
		}
		b.WriteString(style.Render(part.Text))
		visible += lipgloss.Width(part.Text)
	}

	pad := lipgloss.NewStyle()
	if selected {
		pad = pad.Background(SlateLight)
	}
	// Two cells of margin, one each side
	if fill := width - visible - 2; fill > 0 {
		b.WriteString(pad.Render(strings.Repeat(" ", fill)))
	}
	margin := pad.Render(" ")
	return margin + b.String() + margin
}
