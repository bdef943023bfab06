package domain

import "time"

// ItemKind classifies a drive entry
type ItemKind string

const (
	KindFolder ItemKind = "folder"
	KindImage  ItemKind = "image"
	KindVideo  ItemKind = "video"
	KindOther  ItemKind = "other"
)

// Item is a single entry of a drive folder listing
type Item struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Kind       ItemKind  `json:"kind"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modifiedAt"`
	WebURL     string    `json:"webUrl"`
	ChildCount int       `json:"childCount,omitempty"`
}

// IsMedia returns true for items the overlay can show
func (i Item) IsMedia() bool {
	return i.Kind == KindImage || i.Kind == KindVideo
}

// IsFolder returns true if the item can be drilled into
func (i Item) IsFolder() bool {
	return i.Kind == KindFolder
}

// Folder is a cached listing of a drive folder
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Items     []Item    `json:"items"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// MediaPayload is the metadata fetched for one show request.
// It is never cached; every request fetches a fresh payload.
type MediaPayload struct {
	ID           string
	Name         string
	ModifiedAt   time.Time
	Tags         []string
	WebURL       string
	IsVideo      bool
	StreamURL    string // pre-authenticated download URL, used for video playback
	ThumbnailURL string // large thumbnail
}
