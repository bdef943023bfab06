package player

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"
)

// TestHelperProcess is not a real test; it stands in for a player binary.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("SKYLIGHT_HELPER_PROCESS") != "1" {
		return
	}
	if os.Getenv("SKYLIGHT_HELPER_MODE") == "exit" {
		os.Exit(0)
	}
	time.Sleep(time.Minute)
	os.Exit(0)
}

type recorder struct {
	calls [][]string
	mode  string
}

func (r *recorder) command(name string, args ...string) *exec.Cmd {
	r.calls = append(r.calls, append([]string{name}, args...))
	cmd := exec.Command(os.Args[0], "-test.run=TestHelperProcess")
	cmd.Env = append(os.Environ(), "SKYLIGHT_HELPER_PROCESS=1", "SKYLIGHT_HELPER_MODE="+r.mode)
	return cmd
}

func testLauncher(command string, goos string, installed ...string) (*Launcher, *recorder) {
	rec := &recorder{}
	l := NewLauncher(command, []string{"--fs"}, nil)
	l.goos = goos
	l.execCommand = rec.command
	l.lookPath = func(name string) (string, error) {
		for _, n := range installed {
			if n == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", fmt.Errorf("%s: %w", name, exec.ErrNotFound)
	}
	return l, rec
}

func waitDone(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("player process did not exit")
	}
}

func TestLaunchConfiguredPlayer(t *testing.T) {
	l, rec := testLauncher("mpv", "linux", "mpv")

	s, err := l.Launch("https://cdn.example/v.mp4")
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	defer s.Stop()

	if len(rec.calls) != 1 {
		t.Fatalf("calls = %v", rec.calls)
	}
	got := rec.calls[0]
	want := []string{"mpv", "--fs", "https://cdn.example/v.mp4"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("command = %v, want %v", got, want)
	}
}

func TestLaunchDetectsCandidate(t *testing.T) {
	l, rec := testLauncher("", "linux", "celluloid")

	s, err := l.Launch("https://cdn.example/v.mp4")
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	defer s.Stop()

	if rec.calls[0][0] != "celluloid" {
		t.Errorf("expected celluloid (mpv missing), got %v", rec.calls[0])
	}
}

func TestLaunchFallsBackToOpener(t *testing.T) {
	l, rec := testLauncher("", "linux")
	rec.mode = "exit"

	s, err := l.Launch("https://cdn.example/v.mp4")
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if rec.calls[0][0] != "xdg-open" {
		t.Errorf("expected xdg-open, got %v", rec.calls[0])
	}
	s.Stop() // detached session, no-op
}

func TestLaunchConfiguredMissing(t *testing.T) {
	l, _ := testLauncher("mpv", "linux")
	_, err := l.Launch("https://cdn.example/v.mp4")
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionStopKillsPlayer(t *testing.T) {
	l, _ := testLauncher("mpv", "linux", "mpv")
	s, err := l.Launch("https://cdn.example/v.mp4")
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}

	s.Stop()
	waitDone(t, s)
	s.Stop() // idempotent
}

func TestNilSessionStop(t *testing.T) {
	var s *Session
	s.Stop()
}

func TestOpenPerPlatform(t *testing.T) {
	for goos, want := range map[string]string{"darwin": "open", "windows": "rundll32", "linux": "xdg-open"} {
		l, rec := testLauncher("", goos)
		rec.mode = "exit"
		if err := l.Open("https://onedrive.live.com/x"); err != nil {
			t.Fatalf("%s: Open: %v", goos, err)
		}
		if rec.calls[0][0] != want {
			t.Errorf("%s: got %v, want %s", goos, rec.calls[0], want)
		}
	}
}
