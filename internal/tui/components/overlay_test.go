package components

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/mmcdole/skylight/internal/domain"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

type fakeMedia struct {
	mu       sync.Mutex
	items    map[string]*domain.MediaPayload
	errs     map[string]error
	imageErr error
	probeErr error
	fetches  []string
}

func (f *fakeMedia) FetchItem(ctx context.Context, id string) (*domain.MediaPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches = append(f.fetches, id)
	if err := f.errs[id]; err != nil {
		return nil, err
	}
	p, ok := f.items[id]
	if !ok {
		return nil, &domain.StatusError{Code: 404, Body: "itemNotFound", Err: domain.ErrItemNotFound}
	}
	copied := *p
	return &copied, nil
}

func (f *fakeMedia) LoadImage(ctx context.Context, url string) (image.Image, error) {
	if f.imageErr != nil {
		return nil, f.imageErr
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func (f *fakeMedia) ProbeVideo(ctx context.Context, url string) error {
	return f.probeErr
}

func (f *fakeMedia) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fetches)
}

type fakeSession struct {
	mu      sync.Mutex
	stopped int
}

func (s *fakeSession) Stop() {
	s.mu.Lock()
	s.stopped++
	s.mu.Unlock()
}

func (s *fakeSession) stops() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

type fakePlayer struct {
	mu       sync.Mutex
	opened   []string
	sessions []*fakeSession
}

func (p *fakePlayer) Play(url string) (domain.PlaybackSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := &fakeSession{}
	p.sessions = append(p.sessions, s)
	return s, nil
}

func (p *fakePlayer) OpenLink(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opened = append(p.opened, url)
	return nil
}

func (p *fakePlayer) openedLinks() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.opened...)
}

// run executes cmd and returns the messages it produced. Timers (spinner,
// caption reveal) do not fire within the deadline and are dropped.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, run(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// settle feeds every message produced by cmd back into the overlay
func settle(o *Overlay, cmd tea.Cmd) {
	queue := run(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		var next tea.Cmd
		*o, next = o.Update(msg)
		queue = append(queue, run(next)...)
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func testMedia() *fakeMedia {
	modified := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	return &fakeMedia{
		items: map[string]*domain.MediaPayload{
			"a": {ID: "a", Name: "a.jpg", ModifiedAt: modified, WebURL: "https://onedrive.example/a",
				ThumbnailURL: "https://thumb.example/a", Tags: []string{"summer", "family"}},
			"b": {ID: "b", Name: "b.jpg", ModifiedAt: modified, WebURL: "https://onedrive.example/b",
				ThumbnailURL: "https://thumb.example/b"},
			"v": {ID: "v", Name: "clip.mp4", IsVideo: true, WebURL: "https://onedrive.example/v",
				StreamURL: "https://dl.example/v", ThumbnailURL: "https://thumb.example/v"},
		},
		errs: map[string]error{},
	}
}

func newTestOverlay(media *fakeMedia, player *fakePlayer) Overlay {
	o := NewOverlay(media, player)
	o.SetLocation(time.UTC)
	o.SetSize(80, 24)
	o.SiblingGetter = domain.SiblingsOf([]string{"a", "b", "v"})
	return o
}

func TestShowIDImage(t *testing.T) {
	o := newTestOverlay(testMedia(), &fakePlayer{})

	cmd := o.ShowID("a")
	if o.Mode() != ModeLoading || !o.SpinnerVisible() {
		t.Fatalf("expected loading, got %s", o.Mode())
	}
	if id, ok := o.CurrentID(); !ok || id != "a" {
		t.Fatalf("CurrentID = %q, %v", id, ok)
	}

	settle(&o, cmd)
	if o.Mode() != ModeImage {
		t.Fatalf("expected image, got %s (%s)", o.Mode(), o.ErrorDetail())
	}
	if o.ImageSource() != "https://thumb.example/a" {
		t.Errorf("ImageSource = %q", o.ImageSource())
	}
	want := "Jun 1, 2024 10:30 AM  a.jpg  [summer, family]"
	if got := o.Caption().Text; got != want {
		t.Errorf("caption = %q, want %q", got, want)
	}
	if !o.CaptionVisible() {
		t.Error("caption should be visible without a delay")
	}
	if o.View() == "" {
		t.Error("expected a rendered view")
	}
}

func TestNavigationAvailability(t *testing.T) {
	tests := []struct {
		name     string
		resolver domain.SiblingResolver
		wantPrev bool
		wantNext bool
	}{
		{
			name: "prev only",
			resolver: func(id string, dir domain.Direction) string {
				if dir == domain.DirPrev {
					return "z"
				}
				return ""
			},
			wantPrev: true,
		},
		{
			name:     "both",
			resolver: func(string, domain.Direction) string { return "z" },
			wantPrev: true,
			wantNext: true,
		},
		{
			name: "nil resolver",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOverlay(testMedia(), &fakePlayer{})
			o.SiblingGetter = tt.resolver
			o.ShowID("a")
			if o.CanGoPrev() != tt.wantPrev || o.CanGoNext() != tt.wantNext {
				t.Errorf("prev=%v next=%v, want %v %v", o.CanGoPrev(), o.CanGoNext(), tt.wantPrev, tt.wantNext)
			}
		})
	}
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantDetail string
	}{
		{"not found", &domain.StatusError{Code: 404, Body: "The resource could not be found."}, "The resource could not be found."},
		{"missing thumbnails", domain.ErrMissingThumbnails, "missing thumbnails"},
		{"offline", errors.New("dial tcp: connection refused"), "dial tcp: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			media := testMedia()
			media.errs["a"] = tt.err
			o := newTestOverlay(media, &fakePlayer{})

			settle(&o, o.ShowID("a"))
			if o.Mode() != ModeError {
				t.Fatalf("expected error mode, got %s", o.Mode())
			}
			if o.ErrorMessage() != "Unable to retrieve from OneDrive" {
				t.Errorf("message = %q", o.ErrorMessage())
			}
			if o.ErrorDetail() != tt.wantDetail {
				t.Errorf("detail = %q, want %q", o.ErrorDetail(), tt.wantDetail)
			}
			if id, ok := o.CurrentID(); !ok || id != "a" {
				t.Errorf("identity should survive an error, got %q %v", id, ok)
			}
		})
	}
}

func TestVideoClearsStaleImage(t *testing.T) {
	o := newTestOverlay(testMedia(), &fakePlayer{})
	settle(&o, o.ShowID("a"))
	if o.ImageSource() == "" {
		t.Fatal("expected an image source")
	}

	settle(&o, o.ShowID("v"))
	if o.Mode() != ModeVideo {
		t.Fatalf("expected video, got %s", o.Mode())
	}
	if o.ImageSource() != "" {
		t.Errorf("stale image source %q", o.ImageSource())
	}
	if o.VideoSource() != "https://dl.example/v" {
		t.Errorf("VideoSource = %q", o.VideoSource())
	}
}

func TestMediaLoadFailureLinksToItem(t *testing.T) {
	t.Run("video", func(t *testing.T) {
		media := testMedia()
		media.probeErr = errors.New("unexpected status code: 410")
		o := newTestOverlay(media, &fakePlayer{})

		settle(&o, o.ShowID("v"))
		if o.Mode() != ModeError || o.ErrorMessage() != MsgLoadFailed {
			t.Fatalf("mode=%s message=%q", o.Mode(), o.ErrorMessage())
		}
		if o.ErrorLink() != "https://onedrive.example/v" {
			t.Errorf("ErrorLink = %q", o.ErrorLink())
		}
		if o.VideoSource() != "" {
			t.Errorf("video source not cleared: %q", o.VideoSource())
		}
	})

	t.Run("image", func(t *testing.T) {
		media := testMedia()
		media.imageErr = errors.New("decoding image: unknown format")
		o := newTestOverlay(media, &fakePlayer{})

		settle(&o, o.ShowID("b"))
		if o.Mode() != ModeError || o.ErrorDetail() != "decoding image: unknown format" {
			t.Fatalf("mode=%s detail=%q", o.Mode(), o.ErrorDetail())
		}
		if o.ErrorLink() != "https://onedrive.example/b" {
			t.Errorf("ErrorLink = %q", o.ErrorLink())
		}
		if o.ImageSource() != "" {
			t.Errorf("image source not cleared: %q", o.ImageSource())
		}
	})
}

func TestStaleResultIsDropped(t *testing.T) {
	o := newTestOverlay(testMedia(), &fakePlayer{})

	cmdA := o.ShowID("a")
	cmdB := o.ShowID("b")

	settle(&o, cmdB)
	// a resolves late
	settle(&o, cmdA)

	if id, _ := o.CurrentID(); id != "b" {
		t.Fatalf("CurrentID = %q, want b", id)
	}
	if o.ImageSource() != "https://thumb.example/b" {
		t.Errorf("stale result applied: %q", o.ImageSource())
	}
}

func TestResultAfterDismissIsDropped(t *testing.T) {
	o := newTestOverlay(testMedia(), &fakePlayer{})
	cmd := o.ShowID("a")
	o.Dismiss()

	settle(&o, cmd)
	if o.Mode() != ModeHidden || o.ImageSource() != "" {
		t.Errorf("late result revived the overlay: %s %q", o.Mode(), o.ImageSource())
	}
}

func pngDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestShowDataURL(t *testing.T) {
	media := testMedia()
	o := newTestOverlay(media, &fakePlayer{})
	o.SiblingGetter = func(string, domain.Direction) string { return "z" }
	url := pngDataURL(t)

	cmd := o.ShowDataURL("local-1", url, "preview")
	if o.Mode() != ModeImage {
		t.Fatalf("expected image immediately, got %s", o.Mode())
	}
	if o.CanGoPrev() || o.CanGoNext() {
		t.Error("navigation must be disabled for data urls")
	}
	if o.Navigate(domain.DirNext) != nil {
		t.Error("Navigate should be a no-op")
	}

	settle(&o, cmd)
	if o.Mode() != ModeImage || o.ImageSource() != url {
		t.Errorf("mode=%s src=%q", o.Mode(), o.ImageSource())
	}
	if o.Caption().Text != "preview" {
		t.Errorf("caption = %q", o.Caption().Text)
	}
	if media.fetchCount() != 0 {
		t.Errorf("expected no fetches, got %d", media.fetchCount())
	}
}

func TestShowDataURLDecodeFailure(t *testing.T) {
	o := newTestOverlay(testMedia(), &fakePlayer{})
	settle(&o, o.ShowDataURL("x", "data:image/png;base64,AAAA", ""))
	if o.Mode() != ModeError || o.ErrorMessage() != MsgLoadFailed {
		t.Errorf("mode=%s message=%q", o.Mode(), o.ErrorMessage())
	}
}

func TestShowError(t *testing.T) {
	o := newTestOverlay(testMedia(), &fakePlayer{})
	o.ShowError("Upload failed", "bad \x1b[31mred\x1b[0m\nline")

	if o.Mode() != ModeError {
		t.Fatalf("mode = %s", o.Mode())
	}
	if o.ErrorDetail() != "bad red line" {
		t.Errorf("detail = %q", o.ErrorDetail())
	}
	if o.ErrorLink() != "" {
		t.Errorf("unexpected link %q", o.ErrorLink())
	}
	if _, ok := o.CurrentID(); !ok {
		t.Error("error mode must have an identity")
	}
}

func TestDismissIsIdempotent(t *testing.T) {
	setups := map[string]func(o *Overlay) tea.Cmd{
		"hidden":  func(o *Overlay) tea.Cmd { return nil },
		"loading": func(o *Overlay) tea.Cmd { o.ShowID("a"); return nil },
		"image":   func(o *Overlay) tea.Cmd { return o.ShowID("a") },
		"video":   func(o *Overlay) tea.Cmd { return o.ShowID("v") },
		"error": func(o *Overlay) tea.Cmd {
			o.ShowError("boom", "")
			return nil
		},
	}
	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			o := newTestOverlay(testMedia(), &fakePlayer{})
			settle(&o, setup(&o))

			o.Dismiss()
			if o.Dismiss() != nil {
				t.Error("second Dismiss should do nothing")
			}
			if _, ok := o.CurrentID(); ok {
				t.Error("identity should be cleared")
			}
			if o.Mode() != ModeHidden || o.ImageSource() != "" || o.VideoSource() != "" || o.ErrorMessage() != "" {
				t.Errorf("surfaces not cleared: mode=%s img=%q vid=%q err=%q",
					o.Mode(), o.ImageSource(), o.VideoSource(), o.ErrorMessage())
			}
			if o.View() != "" {
				t.Error("hidden overlay should render nothing")
			}
		})
	}
}

func TestExactlyOneSurface(t *testing.T) {
	o := newTestOverlay(testMedia(), &fakePlayer{})
	steps := []func(o *Overlay) tea.Cmd{
		func(o *Overlay) tea.Cmd { return o.ShowID("a") },
		func(o *Overlay) tea.Cmd { return o.ShowID("v") },
		func(o *Overlay) tea.Cmd { return o.ShowID("missing") },
		func(o *Overlay) tea.Cmd { return o.ShowDataURL("d", pngDataURL(t), "") },
		func(o *Overlay) tea.Cmd { return o.Dismiss() },
		func(o *Overlay) tea.Cmd { return o.ShowID("b") },
		func(o *Overlay) tea.Cmd { return o.Dismiss() },
	}
	for i, step := range steps {
		settle(&o, step(&o))

		_, hasID := o.CurrentID()
		if hasID != (o.Mode() != ModeHidden) {
			t.Errorf("step %d: identity %v in mode %s", i, hasID, o.Mode())
		}
		surfaces := 0
		if o.ImageSource() != "" {
			surfaces++
		}
		if o.VideoSource() != "" {
			surfaces++
		}
		if o.ErrorMessage() != "" {
			surfaces++
		}
		if o.SpinnerVisible() {
			surfaces++
		}
		want := 1
		if o.Mode() == ModeHidden {
			want = 0
		}
		if surfaces != want {
			t.Errorf("step %d: %d surfaces active in mode %s", i, surfaces, o.Mode())
		}
	}
}

func TestCaptionLinkClickDismisses(t *testing.T) {
	player := &fakePlayer{}
	o := newTestOverlay(testMedia(), player)
	settle(&o, o.ShowID("a"))

	settle(&o, o.HandleClick(TargetCaption))
	if o.Mode() != ModeImage {
		t.Fatal("clicking the caption must not dismiss")
	}

	cmd := o.HandleClick(TargetCaptionLink)
	if o.Mode() != ModeHidden {
		t.Errorf("caption link should dismiss, mode = %s", o.Mode())
	}
	settle(&o, cmd)
	if links := player.openedLinks(); len(links) != 1 || links[0] != "https://onedrive.example/a" {
		t.Errorf("opened = %v", links)
	}
}

func TestClickTargets(t *testing.T) {
	tests := []struct {
		target      ClickTarget
		wantShowing bool
	}{
		{TargetCaption, true},
		{TargetErrorDetail, true},
		{TargetControls, true},
		{TargetBackground, false},
	}
	for _, tt := range tests {
		o := newTestOverlay(testMedia(), &fakePlayer{})
		o.ShowError("boom", "detail")
		settle(&o, o.HandleClick(tt.target))
		if o.Showing() != tt.wantShowing {
			t.Errorf("target %d: showing = %v", tt.target, o.Showing())
		}
	}
}

func TestNavigation(t *testing.T) {
	o := newTestOverlay(testMedia(), &fakePlayer{})
	settle(&o, o.ShowID("a"))
	if o.CanGoPrev() || !o.CanGoNext() {
		t.Fatalf("prev=%v next=%v", o.CanGoPrev(), o.CanGoNext())
	}

	if cmd := o.HandleClick(TargetPrev); cmd != nil {
		t.Error("no previous sibling, expected no-op")
	}

	var cmd tea.Cmd
	o, cmd = o.Update(keyMsg("l"))
	if id, _ := o.CurrentID(); id != "b" {
		t.Fatalf("after next, CurrentID = %q", id)
	}
	settle(&o, cmd)

	settle(&o, o.HandleClick(TargetNext))
	if o.Mode() != ModeVideo {
		t.Errorf("expected video after second next, got %s", o.Mode())
	}
	if !o.CanGoPrev() || o.CanGoNext() {
		t.Errorf("last item: prev=%v next=%v", o.CanGoPrev(), o.CanGoNext())
	}
}

func TestFullscreen(t *testing.T) {
	o := newTestOverlay(testMedia(), &fakePlayer{})
	settle(&o, o.ShowID("a"))

	settle(&o, o.HandleClick(TargetFullscreen))
	if !o.IsFullscreen() || o.ControlsVisible() {
		t.Fatalf("fullscreen=%v controls=%v", o.IsFullscreen(), o.ControlsVisible())
	}
	if !o.Showing() {
		t.Fatal("toggle must not dismiss")
	}

	// Leaving fullscreen while showing dismisses
	settle(&o, o.ToggleFullscreen())
	if o.IsFullscreen() || o.Showing() {
		t.Errorf("fullscreen=%v showing=%v", o.IsFullscreen(), o.Showing())
	}
}

func TestDismissExitsFullscreen(t *testing.T) {
	o := newTestOverlay(testMedia(), &fakePlayer{})
	settle(&o, o.ShowID("a"))
	settle(&o, o.ToggleFullscreen())

	cmd := o.Dismiss()
	if o.IsFullscreen() {
		t.Error("Dismiss should leave fullscreen")
	}
	msgs := run(cmd)
	if len(msgs) != 1 || msgs[0] != (FullscreenChangedMsg{Fullscreen: false}) {
		t.Errorf("expected fullscreen exit notice, got %v", msgs)
	}
	settle(&o, cmd)
	if o.Showing() {
		t.Error("overlay should stay hidden")
	}
}

func TestEscapeKey(t *testing.T) {
	o := newTestOverlay(testMedia(), &fakePlayer{})
	o, _ = o.Update(keyMsg("esc"))
	if o.Showing() {
		t.Fatal("hidden overlay should ignore esc")
	}

	settle(&o, o.ShowID("a"))
	o, _ = o.Update(keyMsg("esc"))
	if o.Showing() {
		t.Error("esc should dismiss")
	}
}

func TestPlaybackSessionLifecycle(t *testing.T) {
	player := &fakePlayer{}
	o := newTestOverlay(testMedia(), player)
	settle(&o, o.ShowID("v"))

	var cmd tea.Cmd
	o, cmd = o.Update(keyMsg("enter"))
	settle(&o, cmd)
	if !o.PlayerRunning() || len(player.sessions) != 1 {
		t.Fatalf("expected a running session")
	}

	// Leaving video mode stops the player
	settle(&o, o.ShowID("a"))
	if got := player.sessions[0].stops(); got != 1 {
		t.Errorf("session stopped %d times", got)
	}
}

func TestStaleSessionIsStopped(t *testing.T) {
	player := &fakePlayer{}
	o := newTestOverlay(testMedia(), player)
	settle(&o, o.ShowID("v"))

	var cmd tea.Cmd
	o, cmd = o.Update(keyMsg("p"))
	o.Dismiss()
	settle(&o, cmd)

	if len(player.sessions) != 1 || player.sessions[0].stops() != 1 {
		t.Error("a session started for a dismissed item must be stopped")
	}
	if o.PlayerRunning() {
		t.Error("no session should be attached")
	}
}

func TestCaptionDelay(t *testing.T) {
	o := newTestOverlay(testMedia(), &fakePlayer{})
	o.SetCaptionDelay(time.Hour)
	settle(&o, o.ShowID("a"))
	if o.CaptionVisible() {
		t.Fatal("caption should wait for the reveal tick")
	}

	o, _ = o.Update(captionRevealMsg{ticket: loadTicket{id: "a", seq: 0}})
	if o.CaptionVisible() {
		t.Error("stale reveal applied")
	}

	o, _ = o.Update(captionRevealMsg{ticket: o.ticket})
	if !o.CaptionVisible() {
		t.Error("caption should be revealed")
	}

	o, _ = o.Update(keyMsg("c"))
	if o.CaptionVisible() {
		t.Error("c should hide the caption")
	}
}

func TestOpenKeyFollowsErrorLink(t *testing.T) {
	media := testMedia()
	media.imageErr = errors.New("bad image")
	player := &fakePlayer{}
	o := newTestOverlay(media, player)
	settle(&o, o.ShowID("a"))

	var cmd tea.Cmd
	o, cmd = o.Update(keyMsg("o"))
	settle(&o, cmd)
	if o.Showing() {
		t.Error("opening the link should dismiss")
	}
	if links := player.openedLinks(); len(links) != 1 || !strings.HasSuffix(links[0], "/a") {
		t.Errorf("opened = %v", links)
	}
}

func TestShowDataURLClearsPreviousImage(t *testing.T) {
	o := newTestOverlay(testMedia(), &fakePlayer{})
	settle(&o, o.ShowID("a"))
	if o.image.img == nil || len(o.image.lines) == 0 {
		t.Fatal("a should be rendered")
	}

	url := pngDataURL(t)
	cmd := o.ShowDataURL("local-1", url, "preview")
	if o.image.img != nil || len(o.image.lines) != 0 {
		t.Fatal("the previous picture must not be drawn while the data url decodes")
	}
	if o.Caption().Link != "" || o.Caption().Text != "preview" {
		t.Errorf("caption = %+v", o.Caption())
	}

	settle(&o, cmd)
	if o.image.img == nil || o.image.img.Bounds().Dx() != 2 {
		t.Error("decoded data url should be shown")
	}
}

func TestFullscreenRerendersImage(t *testing.T) {
	o := newTestOverlay(testMedia(), &fakePlayer{})
	settle(&o, o.ShowID("a"))
	o.image.img = image.NewRGBA(image.Rect(0, 0, 200, 200))
	o.renderImage()
	windowed := len(o.image.lines)

	o, _ = o.Update(FullscreenChangedMsg{Fullscreen: true})
	_, h := o.bodySize()
	if len(o.image.lines) != h || h == windowed {
		t.Errorf("fullscreen image has %d lines, body is %d (windowed %d)", len(o.image.lines), h, windowed)
	}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// renderZones draws o and waits until the zone manager has recorded ids
func renderZones(t *testing.T, o Overlay, ids ...string) map[string]*zone.ZoneInfo {
	t.Helper()
	for _, id := range ids {
		zone.Clear(id)
	}
	o.View()

	zones := make(map[string]*zone.ZoneInfo)
	deadline := time.Now().Add(time.Second)
	for len(zones) < len(ids) {
		if time.Now().After(deadline) {
			t.Fatalf("zones %v not recorded, have %d", ids, len(zones))
		}
		time.Sleep(5 * time.Millisecond)
		for _, id := range ids {
			if zi := zone.Get(id); zi != nil {
				zones[id] = zi
			}
		}
	}

	// Let queued updates from this render land
	time.Sleep(20 * time.Millisecond)
	for _, id := range ids {
		if zi := zone.Get(id); zi != nil {
			zones[id] = zi
		}
	}
	return zones
}

func pressAt(o *Overlay, x, y int) {
	var cmd tea.Cmd
	*o, cmd = o.Update(press(x, y))
	settle(o, cmd)
}

func TestMousePressesOnImage(t *testing.T) {
	player := &fakePlayer{}
	o := newTestOverlay(testMedia(), player)
	settle(&o, o.ShowID("a"))
	if !o.CaptionVisible() {
		t.Fatal("caption should be visible without a delay")
	}
	zones := renderZones(t, o, zoneCaption, zoneControls)

	caption := zones[zoneCaption]
	pressAt(&o, caption.StartX, caption.StartY)
	if o.Mode() != ModeImage {
		t.Fatalf("press on the caption closed the viewer")
	}

	controls := zones[zoneControls]
	pressAt(&o, controls.EndX, controls.EndY)
	if o.Mode() != ModeImage {
		t.Fatalf("press on the control bar closed the viewer")
	}

	pressAt(&o, 0, 0)
	if o.Showing() {
		t.Error("press on the backdrop should close the viewer")
	}
	if links := player.openedLinks(); len(links) != 0 {
		t.Errorf("no link should open, got %v", links)
	}
}

func TestMousePressesOnError(t *testing.T) {
	o := newTestOverlay(testMedia(), &fakePlayer{})
	o.ShowError("boom", "the server said no")
	zones := renderZones(t, o, zoneErrorDetail, zoneControls)

	detail := zones[zoneErrorDetail]
	pressAt(&o, detail.StartX, detail.StartY)
	if o.Mode() != ModeError {
		t.Fatal("press on the error detail closed the viewer")
	}

	controls := zones[zoneControls]
	pressAt(&o, controls.EndX, controls.EndY)
	if o.Mode() != ModeError {
		t.Fatal("press on the control bar closed the viewer")
	}

	pressAt(&o, 0, 0)
	if o.Showing() {
		t.Error("press on the backdrop should close the viewer")
	}
}

func TestCaptionLinkZoneCoversLabelOnly(t *testing.T) {
	player := &fakePlayer{}
	o := newTestOverlay(testMedia(), player)
	settle(&o, o.ShowID("a"))
	link := renderZones(t, o, zoneCaptionLink)[zoneCaptionLink]
	width := lipgloss.Width(captionLinkLabel)

	pressAt(&o, link.StartX+width, link.StartY)
	if links := player.openedLinks(); len(links) != 0 {
		t.Fatalf("press past the label opened %v", links)
	}
	if o.Mode() != ModeImage {
		t.Fatal("press on the caption padding closed the viewer")
	}

	pressAt(&o, link.StartX+width-1, link.StartY)
	if o.Showing() {
		t.Error("following the link should close the viewer")
	}
	if links := player.openedLinks(); len(links) != 1 || links[0] != "https://onedrive.example/a" {
		t.Errorf("opened = %v", links)
	}
}
