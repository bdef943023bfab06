package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/mmcdole/skylight/internal/config"
	"github.com/mmcdole/skylight/internal/log"
	"github.com/mmcdole/skylight/internal/onedrive"
	"github.com/mmcdole/skylight/internal/player"
	"github.com/mmcdole/skylight/internal/service"
	"github.com/mmcdole/skylight/internal/store"
	"github.com/mmcdole/skylight/internal/tui"
	"github.com/mmcdole/skylight/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

// maxPreviewSize bounds files read for --preview
const maxPreviewSize = 32 << 20

func main() {
	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if showVersion, _ := flags.GetBool("version"); showVersion {
		fmt.Printf("skylight %s\n", Version)
		return
	}

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *pflag.FlagSet) error {
	cfg, err := config.LoadConfig(flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting skylight", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	client := onedrive.NewClient(cfg.Drive.APIURL, cfg.Drive.Token, logger)

	folderStore, err := store.NewFolderStore(cfg.Cache.Dir, cfg.Drive.APIURL+"|"+cfg.Drive.Account, cfg.Cache.TTL)
	if err != nil {
		logger.Warn("disk cache unavailable, using memory only", "error", err)
		folderStore, err = store.NewFolderStore("", "", cfg.Cache.TTL)
		if err != nil {
			return fmt.Errorf("failed to create folder cache: %w", err)
		}
	}
	defer folderStore.Close()

	launcher := player.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)

	folderSvc := service.NewFolderService(client, folderStore, logger)
	mediaSvc := service.NewMediaService(client, logger)
	playbackSvc := service.NewPlaybackService(launcher, logger)

	opts := tui.Options{
		StartFolder:  cfg.Drive.StartFolder,
		CaptionDelay: cfg.UI.CaptionDelay,
		Location:     time.Local,
		Logger:       logger,
	}
	if path, _ := flags.GetString("preview"); path != "" {
		opts.Preview = loadPreview(path)
	}

	// Zones must exist before the model builds its columns
	zone.NewGlobal()

	model := tui.NewModel(folderSvc, mediaSvc, playbackSvc, opts)

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, programOpts...)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// loadPreview reads an image file into a data: URL for the viewer
func loadPreview(path string) *tui.Preview {
	name := filepath.Base(path)
	info, err := os.Stat(path)
	if err == nil && info.Size() > maxPreviewSize {
		err = fmt.Errorf("%s is larger than %d MB", name, maxPreviewSize>>20)
	}
	var data []byte
	if err == nil {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return &tui.Preview{Name: name, Err: err}
	}

	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return &tui.Preview{
		Name:    name,
		DataURL: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
	}
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Skylight!")
	fmt.Println()
	fmt.Println("Paste a Microsoft Graph access token with Files.Read permission.")
	fmt.Println()

	for {
		fmt.Print("Access token: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token := strings.TrimSpace(string(raw))
		if token == "" {
			fmt.Println("Token cannot be empty. Please try again.")
			continue
		}

		drive, err := verifyTokenWithSpinner(cfg.Drive.APIURL, token, logger)
		if err != nil {
			fmt.Printf("✗ Could not reach your drive: %v\n", err)
			fmt.Println("Please check the token and try again.")
			fmt.Println()
			continue
		}

		cfg.Drive.Token = token
		cfg.Drive.Account = drive.Owner.User.DisplayName
		break
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run skylight again to start the application.")

	return nil
}

// verifyTokenWithSpinner fetches the drive with a visual spinner
func verifyTokenWithSpinner(apiURL, token string, logger *slog.Logger) (*onedrive.Drive, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	type result struct {
		drive *onedrive.Drive
		err   error
	}
	resultCh := make(chan result, 1)

	go func() {
		drive, err := onedrive.NewClient(apiURL, token, logger).FetchDriveInfo(ctx)
		resultCh <- result{drive, err}
	}()

	frame := 0
	fmt.Printf("\r%s Checking drive access...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if res.err != nil {
				return nil, res.err
			}
			owner := res.drive.Owner.User.DisplayName
			if owner == "" {
				owner = res.drive.ID
			}
			fmt.Printf("✓ Connected to %s (%s)\n", owner, res.drive.DriveType)
			return res.drive, nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking drive access...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return nil, fmt.Errorf("drive check timed out")
		}
	}
}
