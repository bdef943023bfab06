package components

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/mmcdole/skylight/internal/domain"
	"github.com/mmcdole/skylight/internal/imageview"
	"github.com/mmcdole/skylight/internal/textutil"
	"github.com/mmcdole/skylight/internal/tui/styles"
)

// DisplayMode is the overlay's presentation state. Exactly one is active.
type DisplayMode int

const (
	ModeHidden DisplayMode = iota
	ModeLoading
	ModeImage
	ModeVideo
	ModeError
)

func (m DisplayMode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeImage:
		return "image"
	case ModeVideo:
		return "video"
	case ModeError:
		return "error"
	default:
		return "hidden"
	}
}

// ClickTarget is the overlay element under a mouse press
type ClickTarget int

const (
	TargetBackground ClickTarget = iota
	TargetCaption
	TargetCaptionLink
	TargetErrorDetail
	TargetErrorLink
	TargetControls
	TargetFullscreen
	TargetPrev
	TargetNext
)

// Zone ids for mouse hit testing
const (
	zoneCaption     = "overlay-caption"
	zoneCaptionLink = "overlay-caption-link"
	zoneErrorDetail = "overlay-error-detail"
	zoneErrorLink   = "overlay-error-link"
	zoneControls    = "overlay-controls"
	zoneFullscreen  = "overlay-fullscreen"
	zonePrev        = "overlay-prev"
	zoneNext        = "overlay-next"
)

// Error messages shown by the overlay
const (
	MsgRetrieveFailed = "Unable to retrieve from OneDrive"
	MsgLoadFailed     = "Unable to load media"
)

const (
	fetchTimeout    = 30 * time.Second
	spinnerInterval = 100 * time.Millisecond
)

// MediaLoader resolves the media the overlay shows
type MediaLoader interface {
	FetchItem(ctx context.Context, id string) (*domain.MediaPayload, error)
	LoadImage(ctx context.Context, url string) (image.Image, error)
	ProbeVideo(ctx context.Context, url string) error
}

// Player runs videos and opens links outside the terminal
type Player interface {
	Play(url string) (domain.PlaybackSession, error)
	OpenLink(url string) error
}

// loadTicket identifies one show request. Async results carry the ticket
// they were issued with and are dropped once it is no longer current.
type loadTicket struct {
	id  string
	seq uint64
}

type itemFetchedMsg struct {
	ticket  loadTicket
	payload *domain.MediaPayload
	err     error
}

type imageLoadedMsg struct {
	ticket loadTicket
	img    image.Image
	err    error
}

type videoReadyMsg struct {
	ticket loadTicket
	err    error
}

type playStartedMsg struct {
	ticket  loadTicket
	session domain.PlaybackSession
	err     error
}

type captionRevealMsg struct {
	ticket loadTicket
}

type spinnerTickMsg struct {
	ticket loadTicket
}

// FullscreenChangedMsg reports that the overlay entered or left fullscreen
type FullscreenChangedMsg struct {
	Fullscreen bool
}

// LinkOpenedMsg reports the result of handing a link to the system opener
type LinkOpenedMsg struct {
	URL string
	Err error
}

type imageSurface struct {
	src   string
	img   image.Image
	lines []string // rendered for the current size
}

type videoSurface struct {
	src     string
	session domain.PlaybackSession
	notice  string
}

type errorSurface struct {
	message string
	detail  string
	link    string
}

// Overlay is the full-page media viewer
type Overlay struct {
	// SiblingGetter resolves the neighbours of the shown item. May be nil.
	SiblingGetter domain.SiblingResolver

	media        MediaLoader
	player       Player
	logger       *slog.Logger
	captionDelay time.Duration
	loc          *time.Location

	mode       DisplayMode
	id         string
	seq        uint64
	ticket     loadTicket
	allowNav   bool
	canPrev    bool
	canNext    bool
	fullscreen bool
	payload    *domain.MediaPayload

	image          imageSurface
	video          videoSurface
	errSurface     errorSurface
	caption        Caption
	captionVisible bool

	spinnerFrame int
	width        int
	height       int
}

// NewOverlay creates a hidden overlay
func NewOverlay(media MediaLoader, player Player) Overlay {
	return Overlay{
		media:  media,
		player: player,
		logger: slog.Default(),
		loc:    time.Local,
	}
}

// SetLogger sets the logger for stale-result and failure events
func (o *Overlay) SetLogger(logger *slog.Logger) {
	if logger != nil {
		o.logger = logger
	}
}

// SetCaptionDelay sets how long after an image appears its caption is revealed
func (o *Overlay) SetCaptionDelay(d time.Duration) {
	o.captionDelay = d
}

// SetLocation sets the time zone captions are formatted in
func (o *Overlay) SetLocation(loc *time.Location) {
	if loc != nil {
		o.loc = loc
	}
}

// SetSize sets the overlay dimensions
func (o *Overlay) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.renderImage()
}

// ShowID shows an item by id. Identity and navigation update immediately;
// the metadata fetch runs in the returned command.
func (o *Overlay) ShowID(id string) tea.Cmd {
	t := o.begin(id, true)
	o.setMode(ModeLoading)
	o.spinnerFrame = 0
	return tea.Batch(o.fetchCmd(t), spinnerTick(t))
}

// ShowDataURL shows an image the caller already holds as a data: URL.
// Navigation is disabled. caption is displayed as given.
func (o *Overlay) ShowDataURL(id, dataURL, caption string) tea.Cmd {
	t := o.begin(id, false)
	o.setMode(ModeImage)
	o.image = imageSurface{src: dataURL}
	o.caption = Caption{Text: caption}
	return tea.Batch(decodeDataURLCmd(t, dataURL), o.revealCaption(t))
}

// ShowError enters error mode with a message and optional detail text.
// The detail is sanitised; no link is offered.
func (o *Overlay) ShowError(message, detail string) {
	o.begin(o.id, false)
	o.enterError(message, textutil.Sanitize(detail), "")
}

// Dismiss hides the overlay and clears its state. Leaving fullscreen is
// reported through the returned command. Dismissing a hidden overlay is a no-op.
func (o *Overlay) Dismiss() tea.Cmd {
	if o.mode == ModeHidden {
		return nil
	}
	o.seq++
	o.ticket = loadTicket{}
	o.id = ""
	o.payload = nil
	o.caption = Caption{}
	o.allowNav, o.canPrev, o.canNext = false, false, false
	o.setMode(ModeHidden)

	if o.fullscreen {
		o.fullscreen = false
		return fullscreenCmd(false)
	}
	return nil
}

// Navigate shows the sibling in dir, if there is one
func (o *Overlay) Navigate(dir domain.Direction) tea.Cmd {
	if o.mode == ModeHidden || !o.allowNav || o.SiblingGetter == nil {
		return nil
	}
	sibling := o.SiblingGetter(o.id, dir)
	if sibling == "" {
		return nil
	}
	return o.ShowID(sibling)
}

// ToggleFullscreen requests entering or leaving fullscreen
func (o *Overlay) ToggleFullscreen() tea.Cmd {
	if o.mode == ModeHidden {
		return nil
	}
	return fullscreenCmd(!o.fullscreen)
}

// HandleClick applies a mouse press on target. Presses on the caption, the
// error detail and the control bar are swallowed. Links open and dismiss.
func (o *Overlay) HandleClick(target ClickTarget) tea.Cmd {
	if o.mode == ModeHidden {
		return nil
	}
	switch target {
	case TargetBackground:
		return o.Dismiss()
	case TargetCaptionLink:
		return o.followLink(o.caption.Link)
	case TargetErrorLink:
		return o.followLink(o.errSurface.link)
	case TargetFullscreen:
		return o.ToggleFullscreen()
	case TargetPrev:
		return o.Navigate(domain.DirPrev)
	case TargetNext:
		return o.Navigate(domain.DirNext)
	}
	return nil
}

// Mode returns the active display mode
func (o Overlay) Mode() DisplayMode { return o.mode }

// Showing reports whether the overlay is visible
func (o Overlay) Showing() bool { return o.mode != ModeHidden }

// CurrentID returns the shown item's id; ok is false when hidden
func (o Overlay) CurrentID() (string, bool) {
	return o.id, o.mode != ModeHidden
}

func (o Overlay) CanGoPrev() bool       { return o.canPrev }
func (o Overlay) CanGoNext() bool       { return o.canNext }
func (o Overlay) IsFullscreen() bool    { return o.fullscreen }
func (o Overlay) ImageSource() string   { return o.image.src }
func (o Overlay) VideoSource() string   { return o.video.src }
func (o Overlay) Caption() Caption      { return o.caption }
func (o Overlay) CaptionVisible() bool  { return o.captionVisible }
func (o Overlay) ErrorMessage() string  { return o.errSurface.message }
func (o Overlay) ErrorDetail() string   { return o.errSurface.detail }
func (o Overlay) ErrorLink() string     { return o.errSurface.link }
func (o Overlay) PlayerRunning() bool   { return o.video.session != nil }
func (o Overlay) PlayerNotice() string  { return o.video.notice }
func (o Overlay) SpinnerVisible() bool  { return o.mode == ModeLoading }
func (o Overlay) ControlsVisible() bool { return o.mode != ModeHidden && !o.fullscreen }

// Update handles load results, fullscreen changes, keys and mouse presses
func (o Overlay) Update(msg tea.Msg) (Overlay, tea.Cmd) {
	switch msg := msg.(type) {
	case itemFetchedMsg:
		if !o.current(msg.ticket, "item") {
			return o, nil
		}
		return o, o.applyPayload(msg.ticket, msg.payload, msg.err)

	case imageLoadedMsg:
		if !o.current(msg.ticket, "image") {
			return o, nil
		}
		if msg.err != nil {
			o.enterError(MsgLoadFailed, textutil.Sanitize(msg.err.Error()), o.itemLink())
			return o, nil
		}
		var cmd tea.Cmd
		if o.mode != ModeImage {
			o.setMode(ModeImage)
			cmd = o.revealCaption(msg.ticket)
		}
		o.image.img = msg.img
		o.renderImage()
		return o, cmd

	case videoReadyMsg:
		if !o.current(msg.ticket, "video") {
			return o, nil
		}
		if msg.err != nil {
			o.enterError(MsgLoadFailed, textutil.Sanitize(msg.err.Error()), o.itemLink())
			return o, nil
		}
		o.setMode(ModeVideo)
		return o, nil

	case playStartedMsg:
		if !o.current(msg.ticket, "player") || o.mode != ModeVideo {
			if msg.session != nil {
				msg.session.Stop()
			}
			return o, nil
		}
		if msg.err != nil {
			o.video.notice = "Player failed: " + textutil.Sanitize(msg.err.Error())
			return o, nil
		}
		if o.video.session != nil {
			o.video.session.Stop()
		}
		o.video.session = msg.session
		o.video.notice = "Playing in external player"
		return o, nil

	case captionRevealMsg:
		if o.current(msg.ticket, "caption") && o.mode == ModeImage {
			o.captionVisible = true
		}
		return o, nil

	case spinnerTickMsg:
		if msg.ticket != o.ticket || o.mode != ModeLoading {
			return o, nil
		}
		o.spinnerFrame++
		return o, spinnerTick(msg.ticket)

	case FullscreenChangedMsg:
		if msg.Fullscreen {
			o.fullscreen = o.mode != ModeHidden
			o.renderImage()
			return o, nil
		}
		wasFullscreen := o.fullscreen
		o.fullscreen = false
		if wasFullscreen && o.mode != ModeHidden {
			return o, o.Dismiss()
		}
		o.renderImage()
		return o, nil

	case tea.KeyMsg:
		if o.mode == ModeHidden {
			return o, nil
		}
		return o, o.handleKey(msg)

	case tea.MouseMsg:
		if o.mode == ModeHidden {
			return o, nil
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return o, o.HandleClick(o.targetAt(msg))
		}
	}
	return o, nil
}

func (o *Overlay) handleKey(msg tea.KeyMsg) tea.Cmd {
	keys := OverlayKeys
	switch {
	case key.Matches(msg, keys.Dismiss):
		return o.Dismiss()
	case key.Matches(msg, keys.Prev):
		return o.Navigate(domain.DirPrev)
	case key.Matches(msg, keys.Next):
		return o.Navigate(domain.DirNext)
	case key.Matches(msg, keys.Fullscreen):
		return o.ToggleFullscreen()
	case key.Matches(msg, keys.Play):
		return o.play()
	case key.Matches(msg, keys.OpenLink):
		return o.followLink(o.itemLink())
	case key.Matches(msg, keys.Caption):
		if o.mode == ModeImage && !o.caption.Empty() {
			o.captionVisible = !o.captionVisible
		}
	}
	return nil
}

// begin starts a new show request and recomputes navigation for id
func (o *Overlay) begin(id string, allowNav bool) loadTicket {
	o.seq++
	o.id = id
	o.ticket = loadTicket{id: id, seq: o.seq}
	o.payload = nil
	o.caption = Caption{}
	o.allowNav = allowNav

	o.canPrev, o.canNext = false, false
	if allowNav && o.SiblingGetter != nil {
		o.canPrev = o.SiblingGetter(id, domain.DirPrev) != ""
		o.canNext = o.SiblingGetter(id, domain.DirNext) != ""
	}
	return o.ticket
}

// setMode is the only place surfaces are shown or cleared. Leaving a
// surface's mode always clears its source; leaving video stops playback.
func (o *Overlay) setMode(mode DisplayMode) {
	if mode != ModeImage {
		o.image = imageSurface{}
		o.captionVisible = false
	}
	if mode != ModeVideo {
		if o.video.session != nil {
			o.video.session.Stop()
		}
		o.video = videoSurface{}
	}
	if mode != ModeError {
		o.errSurface = errorSurface{}
	}
	o.mode = mode
}

func (o *Overlay) enterError(message, detail, link string) {
	o.setMode(ModeError)
	o.errSurface = errorSurface{
		message: message,
		detail:  detail,
		link:    link,
	}
}

// current reports whether a result for t may still be applied
func (o *Overlay) current(t loadTicket, kind string) bool {
	if o.mode != ModeHidden && t == o.ticket {
		return true
	}
	o.logger.Debug("dropping stale overlay result", "kind", kind, "itemID", t.id)
	return false
}

func (o *Overlay) applyPayload(t loadTicket, p *domain.MediaPayload, err error) tea.Cmd {
	if err == nil && p == nil {
		err = domain.ErrItemNotFound
	}
	if err != nil {
		o.logger.Warn("overlay fetch failed", "itemID", t.id, "error", err)
		o.enterError(MsgRetrieveFailed, textutil.Sanitize(retrieveDetail(err)), "")
		return nil
	}

	o.payload = p
	if p.IsVideo {
		o.video.src = p.StreamURL
		return o.probeCmd(t, p.StreamURL)
	}
	o.caption = BuildCaption(p, o.loc)
	o.image.src = p.ThumbnailURL
	return o.loadImageCmd(t, p.ThumbnailURL)
}

// retrieveDetail prefers the response body of a failed request
func retrieveDetail(err error) string {
	if body, ok := domain.ResponseBody(err); ok {
		return body
	}
	if errors.Is(err, domain.ErrMissingThumbnails) {
		return domain.ErrMissingThumbnails.Error()
	}
	return err.Error()
}

// itemLink is the web link of whatever is showing
func (o *Overlay) itemLink() string {
	switch o.mode {
	case ModeImage:
		return o.caption.Link
	case ModeError:
		if o.errSurface.link != "" {
			return o.errSurface.link
		}
	}
	if o.payload != nil {
		return o.payload.WebURL
	}
	return ""
}

func (o *Overlay) revealCaption(t loadTicket) tea.Cmd {
	if o.caption.Empty() {
		return nil
	}
	if o.captionDelay <= 0 {
		o.captionVisible = true
		return nil
	}
	o.captionVisible = false
	return tea.Tick(o.captionDelay, func(time.Time) tea.Msg {
		return captionRevealMsg{ticket: t}
	})
}

func (o *Overlay) followLink(url string) tea.Cmd {
	if url == "" {
		return nil
	}
	return tea.Batch(o.openCmd(url), o.Dismiss())
}

func (o *Overlay) play() tea.Cmd {
	if o.mode != ModeVideo || o.player == nil || o.video.src == "" {
		return nil
	}
	t, src, player := o.ticket, o.video.src, o.player
	return func() tea.Msg {
		session, err := player.Play(src)
		return playStartedMsg{ticket: t, session: session, err: err}
	}
}

func (o *Overlay) openCmd(url string) tea.Cmd {
	player := o.player
	if player == nil {
		return nil
	}
	return func() tea.Msg {
		return LinkOpenedMsg{URL: url, Err: player.OpenLink(url)}
	}
}

func (o *Overlay) fetchCmd(t loadTicket) tea.Cmd {
	media := o.media
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		p, err := media.FetchItem(ctx, t.id)
		return itemFetchedMsg{ticket: t, payload: p, err: err}
	}
}

func (o *Overlay) loadImageCmd(t loadTicket, url string) tea.Cmd {
	media := o.media
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		img, err := media.LoadImage(ctx, url)
		return imageLoadedMsg{ticket: t, img: img, err: err}
	}
}

func (o *Overlay) probeCmd(t loadTicket, url string) tea.Cmd {
	media := o.media
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return videoReadyMsg{ticket: t, err: media.ProbeVideo(ctx, url)}
	}
}

func decodeDataURLCmd(t loadTicket, dataURL string) tea.Cmd {
	return func() tea.Msg {
		img, err := imageview.DecodeDataURL(dataURL)
		return imageLoadedMsg{ticket: t, img: img, err: err}
	}
}

func spinnerTick(t loadTicket) tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return spinnerTickMsg{ticket: t}
	})
}

func fullscreenCmd(on bool) tea.Cmd {
	return func() tea.Msg {
		return FullscreenChangedMsg{Fullscreen: on}
	}
}

// targetAt resolves a mouse press to the element under it
func (o *Overlay) targetAt(msg tea.MouseMsg) ClickTarget {
	type candidate struct {
		id     string
		target ClickTarget
		live   bool
		width  int // visible width of zones holding a hyperlink; 0 trusts the zone
	}
	labelWidth := lipgloss.Width(captionLinkLabel)
	candidates := []candidate{
		{zoneCaptionLink, TargetCaptionLink, o.captionShown(), labelWidth},
		{zoneErrorLink, TargetErrorLink, o.mode == ModeError, labelWidth},
		{zonePrev, TargetPrev, o.ControlsVisible(), 0},
		{zoneNext, TargetNext, o.ControlsVisible(), 0},
		{zoneFullscreen, TargetFullscreen, o.ControlsVisible(), 0},
		{zoneCaption, TargetCaption, o.captionShown(), o.captionWidth()},
		{zoneErrorDetail, TargetErrorDetail, o.mode == ModeError, 0},
		{zoneControls, TargetControls, o.ControlsVisible(), 0},
	}
	for _, c := range candidates {
		if !c.live {
			continue
		}
		zi := zone.Get(c.id)
		if zi == nil {
			continue
		}
		if c.width > 0 {
			zi = clampZone(zi, c.width)
		}
		if zi.InBounds(msg) {
			return c.target
		}
	}
	return TargetBackground
}

// clampZone limits a single-row zone to width cells. Zone scanning counts
// the target of an OSC 8 hyperlink as printable, so zones around links
// come out wider than what is drawn.
func clampZone(zi *zone.ZoneInfo, width int) *zone.ZoneInfo {
	clamped := *zi
	if clamped.StartY == clamped.EndY {
		clamped.EndX = min(clamped.EndX, clamped.StartX+width-1)
	}
	return &clamped
}

func (o Overlay) captionWidth() int {
	w, _ := o.bodySize()
	return lipgloss.Width(o.captionBlock(w))
}

func (o Overlay) captionBlock(width int) string {
	return styles.CaptionStyle.Render(o.renderCaption(width - 2))
}

func (o Overlay) captionShown() bool {
	return o.mode == ModeImage && o.captionVisible && !o.caption.Empty()
}

// bodySize is the area left for the media after the caption and control bar
func (o Overlay) bodySize() (int, int) {
	w, h := o.width, o.height
	if !o.fullscreen {
		w -= 4
		h -= 2
	}
	if o.ControlsVisible() {
		h--
	}
	// Caption row is reserved so the image does not jump on reveal
	if o.mode == ModeImage {
		h--
	}
	return max(w, 0), max(h, 0)
}

func (o *Overlay) renderImage() {
	if o.image.img == nil {
		o.image.lines = nil
		return
	}
	w, h := o.bodySize()
	o.image.lines = imageview.Render(o.image.img, w, h)
}

// View renders the overlay over the whole screen
func (o Overlay) View() string {
	if o.mode == ModeHidden || o.width <= 0 || o.height <= 0 {
		return ""
	}
	w, h := o.bodySize()

	rows := []string{lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, o.renderBody(w),
		lipgloss.WithWhitespaceBackground(styles.Backdrop))}
	if o.mode == ModeImage {
		caption := ""
		if o.captionShown() {
			caption = zone.Mark(zoneCaption, o.captionBlock(w))
		}
		rows = append(rows, lipgloss.PlaceHorizontal(w, lipgloss.Center, caption,
			lipgloss.WithWhitespaceBackground(styles.Backdrop)))
	}
	if o.ControlsVisible() {
		rows = append(rows, lipgloss.PlaceHorizontal(w, lipgloss.Center, o.renderControls(),
			lipgloss.WithWhitespaceBackground(styles.Backdrop)))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, rows...)
	return zone.Scan(lipgloss.Place(o.width, o.height, lipgloss.Center, lipgloss.Center, content,
		lipgloss.WithWhitespaceBackground(styles.Backdrop)))
}

func (o Overlay) renderBody(width int) string {
	switch o.mode {
	case ModeLoading:
		return styles.RenderSpinner(o.spinnerFrame) + " " + styles.DimStyle.Render("Loading...")

	case ModeImage:
		if len(o.image.lines) == 0 {
			return styles.RenderSpinner(o.spinnerFrame)
		}
		return strings.Join(o.image.lines, "\n")

	case ModeVideo:
		name := ""
		if o.payload != nil {
			name = textutil.Sanitize(o.payload.Name)
		}
		lines := []string{
			styles.TitleStyle.Render(styles.VideoChar + " " + textutil.Truncate(name, width-2)),
			"",
			styles.HelpKeyStyle.Render("enter") + " " + styles.HelpDescStyle.Render("play"),
		}
		if o.video.notice != "" {
			lines = append(lines, "", styles.SubtitleStyle.Render(o.video.notice))
		}
		return lipgloss.JoinVertical(lipgloss.Center, lines...)

	case ModeError:
		lines := []string{styles.ErrorTitleStyle.Render(o.errSurface.message)}
		if o.errSurface.detail != "" {
			detail := styles.ErrorDetailStyle.Width(min(width, 72)).Align(lipgloss.Center).
				Render(o.errSurface.detail)
			lines = append(lines, "", zone.Mark(zoneErrorDetail, detail))
		}
		if o.errSurface.link != "" {
			link := textutil.Hyperlink(o.errSurface.link, styles.LinkStyle.Render(captionLinkLabel))
			lines = append(lines, "", zone.Mark(zoneErrorLink, link))
		}
		return lipgloss.JoinVertical(lipgloss.Center, lines...)
	}
	return ""
}

func (o Overlay) renderCaption(width int) string {
	link := ""
	if o.caption.Link != "" {
		// Underlined styles go rune by rune, so the escape wraps the styled label
		link = zone.Mark(zoneCaptionLink,
			textutil.Hyperlink(o.caption.Link, styles.LinkStyle.Render(captionLinkLabel)))
	}
	text := textutil.Truncate(o.caption.Text, width-len(captionLinkLabel)-2)
	switch {
	case text == "":
		return link
	case link == "":
		return text
	}
	return text + "  " + link
}

func (o Overlay) renderControls() string {
	button := func(id, label string, enabled bool) string {
		style := styles.ControlStyle
		if !enabled {
			style = styles.ControlDisabledStyle
		}
		return zone.Mark(id, style.Render(label))
	}

	var parts []string
	if o.mode == ModeImage || o.mode == ModeVideo {
		parts = append(parts, button(zonePrev, "← prev", o.canPrev))
	}
	parts = append(parts, button(zoneFullscreen, "⛶ fullscreen", true))
	if o.mode == ModeImage || o.mode == ModeVideo {
		parts = append(parts, button(zoneNext, "next →", o.canNext))
	}
	parts = append(parts, styles.HelpKeyStyle.Render(" esc")+styles.HelpDescStyle.Render(" close"))

	return zone.Mark(zoneControls, lipgloss.JoinHorizontal(lipgloss.Center, parts...))
}
