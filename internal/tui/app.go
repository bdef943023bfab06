package tui

import (
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/mmcdole/skylight/internal/service"
	"github.com/mmcdole/skylight/internal/textutil"
	"github.com/mmcdole/skylight/internal/tui/components"
	"github.com/mmcdole/skylight/internal/tui/styles"
)

const (
	tickInterval  = 100 * time.Millisecond
	statusTimeout = 4 * time.Second
	rootTitle     = "OneDrive"
)

// Preview is a local image opened in the viewer at startup
type Preview struct {
	Name    string
	DataURL string
	Err     error // reading the file failed; shown in the viewer instead
}

// Options configures a Model
type Options struct {
	StartFolder  string
	CaptionDelay time.Duration
	Location     *time.Location
	Logger       *slog.Logger
	Preview      *Preview
}

type showPreviewMsg struct{}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready    bool
	ShowHelp bool

	// Services
	FolderSvc   *service.FolderService
	PlaybackSvc components.Player

	// UI Components
	ColumnStack *ColumnStack
	Overlay     components.Overlay
	Omnibar     components.Omnibar

	// Dimensions
	Width  int
	Height int

	SpinnerFrame int

	// Status bar
	StatusMsg   string
	StatusIsErr bool

	startFolder string
	preview     *Preview
	logger      *slog.Logger
}

// NewModel creates the application model. media and player back the overlay.
func NewModel(
	folderSvc *service.FolderService,
	media components.MediaLoader,
	player components.Player,
	opts Options,
) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := opts.StartFolder
	if start == "" {
		start = "root"
	}

	overlay := components.NewOverlay(media, player)
	overlay.SetLogger(logger)
	overlay.SetCaptionDelay(opts.CaptionDelay)
	overlay.SetLocation(opts.Location)

	stack := NewColumnStack()
	stack.Reset(components.NewListColumn(start, rootTitle))

	return Model{
		FolderSvc:   folderSvc,
		PlaybackSvc: player,
		ColumnStack: stack,
		Overlay:     overlay,
		Omnibar:     components.NewOmnibar(),
		startFolder: start,
		preview:     opts.Preview,
		logger:      logger,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		LoadFolderCmd(m.FolderSvc, m.startFolder, false),
		TickCmd(tickInterval),
	}
	if m.preview != nil {
		cmds = append(cmds, func() tea.Msg { return showPreviewMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.ColumnStack.UpdateSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(tickInterval)

	case FolderLoadedMsg:
		col := m.ColumnStack.Find(msg.FolderID)
		if col == nil {
			m.logger.Debug("dropping listing for closed folder", "folderID", msg.FolderID)
			return m, nil
		}
		title := msg.Folder.Name
		if col == m.ColumnStack.Get(0) && msg.FolderID == "root" {
			title = rootTitle
		}
		col.SetItems(title, msg.Folder.Items)
		return m, nil

	case ErrMsg:
		m.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		if msg.FolderID != "" {
			if col := m.ColumnStack.Find(msg.FolderID); col != nil {
				col.SetLoading(false)
			}
		}
		return m, m.setStatus(msg.Error(), true)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case components.LinkOpenedMsg:
		if msg.Err != nil {
			return m, m.setStatus("Could not open link: "+msg.Err.Error(), true)
		}
		return m, m.setStatus("Opened in browser", false)

	case showPreviewMsg:
		return m, m.showPreview()
	}

	// Everything else belongs to the overlay: load results, ticks, fullscreen changes
	return m.updateOverlay(msg)
}

// updateOverlay forwards msg to the overlay and keeps the column cursor on
// the item it shows
func (m Model) updateOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Overlay, cmd = m.Overlay.Update(msg)
	m.syncSelection()
	return m, cmd
}

func (m *Model) syncSelection() {
	id, ok := m.Overlay.CurrentID()
	if !ok || id == "" {
		return
	}
	if top := m.ColumnStack.Top(); top != nil {
		top.SelectID(id)
	}
}

func (m *Model) showPreview() tea.Cmd {
	p := m.preview
	m.preview = nil
	if p == nil {
		return nil
	}
	if p.Err != nil {
		m.Overlay.ShowError("Unable to open "+textutil.Sanitize(p.Name), p.Err.Error())
		return nil
	}
	return m.Overlay.ShowDataURL(p.Name, p.DataURL, textutil.Sanitize(p.Name))
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusTimeout)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.Overlay.Showing() {
		return m.Overlay.View()
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	if m.Omnibar.IsVisible() {
		return m.Omnibar.View()
	}

	var content string
	top := m.ColumnStack.Top()
	if parent := m.ColumnStack.Parent(); parent != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, parent.View(), top.View())
	} else if top != nil {
		content = top.View()
	}

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter()))
}

// renderFooter renders the status line: spinner or status on the left,
// breadcrumb in the middle, help hint on the right
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(textutil.Sanitize(m.StatusMsg))
	case m.StatusMsg != "":
		left = styles.DimStyle.Render(textutil.Sanitize(m.StatusMsg))
	case m.ColumnStack.AnyLoading():
		left = styles.RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	available := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	crumb := textutil.Truncate(strings.Join(m.ColumnStack.Titles(), " / "), max(available-2, 0))
	center := styles.DimStyle.Render(crumb)

	gap := max(available-lipgloss.Width(center), 0)
	leftPad := gap / 2
	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", gap-leftPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
BROWSING                        VIEWER
  j/k        Up/down              h/l    Previous/next
  h/l        Back/open            f      Fullscreen
  g/G        First/last item      enter  Play video
  Ctrl+u/d   Scroll half page     c      Show/hide caption
  /          Filter               o      Open in OneDrive
  r          Refresh folder       esc    Close
  f          Jump to item
  R          Clear cache
  q          Quit

Press any key to return...
`
	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.OverlayStyle.Render(help))
}

// folderLoadCmd marks col as loading and fetches its listing
func (m Model) folderLoadCmd(col *components.ListColumn, refresh bool) tea.Cmd {
	col.SetLoading(true)
	m.logger.Debug("loading folder", "folderID", col.FolderID(), "refresh", refresh)
	return LoadFolderCmd(m.FolderSvc, col.FolderID(), refresh)
}
