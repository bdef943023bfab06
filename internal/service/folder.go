package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/skylight/internal/domain"
)

// FolderService handles folder browsing with caching
type FolderService struct {
	repo   domain.MediaStore
	store  domain.FolderStore
	logger *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(repo domain.MediaStore, store domain.FolderStore, logger *slog.Logger) *FolderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FolderService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// ListFolder returns a folder listing, from cache unless refresh is set
func (s *FolderService) ListFolder(ctx context.Context, folderID string, refresh bool) (*domain.Folder, error) {
	if folderID == "" {
		folderID = "root"
	}

	if !refresh && s.store != nil {
		if folder, ok := s.store.GetFolder(folderID); ok {
			s.logger.Debug("folder cache hit", "folderID", folderID)
			return folder, nil
		}
	}

	folder, err := s.repo.ListChildren(ctx, folderID)
	if err != nil {
		s.logger.Error("failed to list folder", "error", err, "folderID", folderID)
		return nil, err
	}
	folder.ID = folderID
	sortItems(folder.Items)

	if s.store != nil {
		if err := s.store.SaveFolder(folder); err != nil {
			s.logger.Warn("failed to cache folder", "error", err, "folderID", folderID)
		}
	}
	return folder, nil
}

// InvalidateAll drops every cached listing
func (s *FolderService) InvalidateAll() {
	if s.store != nil {
		s.store.InvalidateAll()
	}
}

// Siblings builds a resolver over the media items of a listing, in listing order.
// Folders and other files are skipped.
func (s *FolderService) Siblings(items []domain.Item) domain.SiblingResolver {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.IsMedia() {
			ids = append(ids, item.ID)
		}
	}
	return domain.SiblingsOf(ids)
}

// Filter returns the items whose names fuzzy-match query, best match first.
// An empty query returns items unchanged.
func (s *FolderService) Filter(items []domain.Item, query string) []domain.Item {
	if query == "" {
		return items
	}

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	result := make([]domain.Item, 0, len(ranks))
	for _, r := range ranks {
		result = append(result, items[r.OriginalIndex])
	}
	return result
}

// sortItems puts folders first, then orders by name
func sortItems(items []domain.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		fi, fj := items[i].IsFolder(), items[j].IsFolder()
		if fi != fj {
			return fi
		}
		return items[i].Name < items[j].Name
	})
}
