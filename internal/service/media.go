package service

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/mmcdole/skylight/internal/domain"
	"github.com/mmcdole/skylight/internal/imageview"
)

// MediaService resolves items for the media overlay
type MediaService struct {
	store  domain.MediaStore
	logger *slog.Logger
}

// NewMediaService creates a new media service
func NewMediaService(store domain.MediaStore, logger *slog.Logger) *MediaService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MediaService{
		store:  store,
		logger: logger,
	}
}

// FetchItem fetches fresh metadata for one item.
// Items without a large thumbnail are rejected with ErrMissingThumbnails.
func (s *MediaService) FetchItem(ctx context.Context, id string) (*domain.MediaPayload, error) {
	p, err := s.store.GetItem(ctx, id)
	if err != nil {
		s.logger.Error("failed to fetch item", "error", err, "itemID", id)
		return nil, err
	}
	if p.ThumbnailURL == "" {
		s.logger.Warn("item has no thumbnails", "itemID", id)
		return nil, domain.ErrMissingThumbnails
	}
	return p, nil
}

// LoadImage downloads and decodes an image
func (s *MediaService) LoadImage(ctx context.Context, url string) (image.Image, error) {
	data, err := s.store.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	img, err := imageview.Decode(data)
	if err != nil {
		s.logger.Warn("image decode failed", "error", err, "bytes", len(data))
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// ProbeVideo checks that a video stream is reachable before it is offered for playback
func (s *MediaService) ProbeVideo(ctx context.Context, url string) error {
	if err := s.store.ProbeStream(ctx, url); err != nil {
		s.logger.Warn("video probe failed", "error", err)
		return err
	}
	return nil
}
