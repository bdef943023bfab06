// Package player starts external media players and the system URL opener.
package player

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// launchPath defines a single way to launch a player
type launchPath struct {
	path      string   // Command path: "mpv", "vlc", or "open-a:AppName"
	openFlags []string // For "open-a:" paths only - flags for macOS open command
}

// players registry - platform -> launch paths to try in order
var players = map[string]map[string][]launchPath{
	"mpv": {
		"darwin":  {{path: "mpv"}},
		"linux":   {{path: "mpv"}},
		"windows": {{path: "mpv"}},
	},
	"vlc": {
		"darwin":  {{path: "vlc"}, {path: "open-a:VLC"}},
		"linux":   {{path: "vlc"}},
		"windows": {{path: "vlc"}},
	},
	"iina": {
		"darwin": {{path: "open-a:IINA", openFlags: []string{"-n"}}},
	},
	"celluloid": {
		"linux": {{path: "celluloid"}},
	},
	"haruna": {
		"linux": {{path: "haruna"}},
	},
	"potplayer": {
		"windows": {{path: "PotPlayerMini64.exe"}, {path: "PotPlayerMini.exe"}},
	},
}

// candidatePlayers defines the preferred player order for each platform
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "vlc", "mpv"},
	"linux":   {"mpv", "celluloid", "haruna", "vlc"},
	"windows": {"vlc", "mpv", "potplayer"},
}

// Session is a running player process. Stopping it ends playback.
// Sessions started through macOS "open -a" hand off to the app and
// cannot be stopped; Stop is then a no-op.
type Session struct {
	cmd  *exec.Cmd
	once sync.Once
	done chan struct{}
}

func newSession(cmd *exec.Cmd, detached bool) *Session {
	s := &Session{done: make(chan struct{})}
	if detached {
		close(s.done)
		return s
	}
	s.cmd = cmd
	go func() {
		_ = cmd.Wait() // reap the child
		close(s.done)
	}()
	return s
}

// Stop terminates the player if it is still running. Safe to call repeatedly.
func (s *Session) Stop() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		select {
		case <-s.done:
			return
		default:
		}
		if s.cmd != nil && s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
	})
}

// Done is closed once the player process has exited
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Launcher launches media URLs in an external player
type Launcher struct {
	command string   // configured player command, empty for auto-detection
	args    []string // additional arguments for the player
	goos    string
	logger  *slog.Logger

	lookPath    func(string) (string, error)
	execCommand func(name string, args ...string) *exec.Cmd
}

// NewLauncher creates a new Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:     command,
		args:        args,
		goos:        runtime.GOOS,
		logger:      logger,
		lookPath:    exec.LookPath,
		execCommand: exec.Command,
	}
}

// Launch opens a media URL in the configured player, the first detected
// candidate, or the system default, in that order
func (l *Launcher) Launch(url string) (*Session, error) {
	if l.command != "" {
		l.logger.Info("using configured player", "command", l.command)
		return l.start(l.command, append(append([]string{}, l.args...), url))
	}

	if s, err := l.detectAndLaunch(url); err == nil {
		return s, nil
	}

	l.logger.Info("no candidate players found, using system default")
	if err := l.Open(url); err != nil {
		return nil, err
	}
	return newSession(nil, true), nil
}

// Open hands a URL to the system default handler (browser for web links)
func (l *Launcher) Open(url string) error {
	var cmd *exec.Cmd
	switch l.goos {
	case "darwin":
		cmd = l.execCommand("open", url)
	case "windows":
		cmd = l.execCommand("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = l.execCommand("xdg-open", url)
	}

	l.logger.Info("opening with system default", "os", l.goos, "url", url)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open url: %w", err)
	}
	go cmd.Wait()
	return nil
}

// detectAndLaunch tries candidate players in order using configured launch paths
func (l *Launcher) detectAndLaunch(url string) (*Session, error) {
	candidates, ok := candidatePlayers[l.goos]
	if !ok {
		candidates = candidatePlayers["linux"]
	}

	for _, name := range candidates {
		paths, ok := players[name][l.goos]
		if !ok {
			l.logger.Debug("player not available on this platform", "player", name, "platform", l.goos)
			continue
		}

		for _, lp := range paths {
			var (
				s   *Session
				err error
			)
			if app, ok := strings.CutPrefix(lp.path, "open-a:"); ok {
				s, err = l.openWithApp(app, url, lp.openFlags)
			} else {
				s, err = l.start(lp.path, append(append([]string{}, l.args...), url))
			}
			if err == nil {
				l.logger.Info("launched with detected player", "player", name, "path", lp.path)
				return s, nil
			}
			l.logger.Debug("launch path not available", "player", name, "path", lp.path, "error", err)
		}
	}

	return nil, fmt.Errorf("no candidate players found")
}

// start runs a CLI player found in PATH without waiting for it
func (l *Launcher) start(command string, args []string) (*Session, error) {
	if _, err := l.lookPath(command); err != nil {
		return nil, err
	}
	cmd := l.execCommand(command, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", command, err)
	}
	return newSession(cmd, false), nil
}

// openWithApp launches a macOS app bundle with "open -a"; Run returns an
// error when the app does not exist
func (l *Launcher) openWithApp(app, url string, openFlags []string) (*Session, error) {
	cmdArgs := append([]string{}, openFlags...)
	cmdArgs = append(cmdArgs, "-a", app)
	if len(l.args) > 0 {
		cmdArgs = append(cmdArgs, "--args")
		cmdArgs = append(cmdArgs, l.args...)
	}
	cmdArgs = append(cmdArgs, url)

	if err := l.execCommand("open", cmdArgs...).Run(); err != nil {
		return nil, err
	}
	return newSession(nil, true), nil
}
