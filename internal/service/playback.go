package service

import (
	"log/slog"

	"github.com/mmcdole/skylight/internal/domain"
	"github.com/mmcdole/skylight/internal/player"
)

// launcher abstracts media player launching (consumer-defined interface)
type launcher interface {
	Launch(url string) (*player.Session, error)
	Open(url string) error
}

// PlaybackService orchestrates playback operations
type PlaybackService struct {
	launcher launcher
	logger   *slog.Logger
}

// NewPlaybackService creates a new playback service
func NewPlaybackService(launcher launcher, logger *slog.Logger) *PlaybackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackService{
		launcher: launcher,
		logger:   logger,
	}
}

// Play starts the external player on a stream URL
func (s *PlaybackService) Play(url string) (domain.PlaybackSession, error) {
	s.logger.Info("launching playback")
	session, err := s.launcher.Launch(url)
	if err != nil {
		s.logger.Error("failed to launch player", "error", err)
		return nil, err
	}
	return session, nil
}

// OpenLink hands a web link to the system opener
func (s *PlaybackService) OpenLink(url string) error {
	s.logger.Info("opening link", "url", url)
	if err := s.launcher.Open(url); err != nil {
		s.logger.Error("failed to open link", "error", err, "url", url)
		return err
	}
	return nil
}
