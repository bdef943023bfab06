package onedrive

import (
	"strings"
	"time"

	"github.com/mmcdole/skylight/internal/domain"
)

// MapItem converts a DriveItem into a folder listing entry
func MapItem(d DriveItem) domain.Item {
	item := domain.Item{
		ID:         d.ID,
		Name:       d.Name,
		Kind:       kindOf(d),
		Size:       d.Size,
		ModifiedAt: parseTime(d.LastModifiedDateTime),
		WebURL:     d.WebURL,
	}
	if d.Folder != nil {
		item.ChildCount = d.Folder.ChildCount
	}
	return item
}

// MapItems converts a page of DriveItems
func MapItems(items []DriveItem) []domain.Item {
	result := make([]domain.Item, 0, len(items))
	for _, d := range items {
		result = append(result, MapItem(d))
	}
	return result
}

// MapPayload converts an expanded DriveItem into the overlay payload.
// ThumbnailURL is empty when the first thumbnail set has no large rendition.
func MapPayload(d DriveItem) *domain.MediaPayload {
	p := &domain.MediaPayload{
		ID:         d.ID,
		Name:       d.Name,
		ModifiedAt: parseTime(d.LastModifiedDateTime),
		WebURL:     d.WebURL,
		IsVideo:    d.Video != nil,
		StreamURL:  d.DownloadURL,
	}
	if len(d.Thumbnails) > 0 && d.Thumbnails[0].Large != nil {
		p.ThumbnailURL = d.Thumbnails[0].Large.URL
	}
	for _, t := range d.Tags {
		if t.Name != "" {
			p.Tags = append(p.Tags, t.Name)
		}
	}
	return p
}

func kindOf(d DriveItem) domain.ItemKind {
	switch {
	case d.Folder != nil:
		return domain.KindFolder
	case d.Video != nil:
		return domain.KindVideo
	case d.Image != nil || d.Photo != nil:
		return domain.KindImage
	case d.File != nil && strings.HasPrefix(d.File.MimeType, "video/"):
		return domain.KindVideo
	case d.File != nil && strings.HasPrefix(d.File.MimeType, "image/"):
		return domain.KindImage
	default:
		return domain.KindOther
	}
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
