package onedrive

// DriveItem is the Graph driveItem resource, trimmed to the fields we read
type DriveItem struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	Size                 int64          `json:"size,omitempty"`
	WebURL               string         `json:"webUrl,omitempty"`
	LastModifiedDateTime string         `json:"lastModifiedDateTime,omitempty"`
	DownloadURL          string         `json:"@microsoft.graph.downloadUrl,omitempty"`
	Folder               *FolderFacet   `json:"folder,omitempty"`
	File                 *FileFacet     `json:"file,omitempty"`
	Image                *ImageFacet    `json:"image,omitempty"`
	Photo                *PhotoFacet    `json:"photo,omitempty"`
	Video                *VideoFacet    `json:"video,omitempty"`
	Thumbnails           []ThumbnailSet `json:"thumbnails,omitempty"`
	Tags                 []Tag          `json:"tags,omitempty"`
}

// FolderFacet marks folders
type FolderFacet struct {
	ChildCount int `json:"childCount"`
}

// FileFacet marks files
type FileFacet struct {
	MimeType string `json:"mimeType,omitempty"`
}

// ImageFacet carries image dimensions
type ImageFacet struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// PhotoFacet carries camera metadata
type PhotoFacet struct {
	TakenDateTime string `json:"takenDateTime,omitempty"`
}

// VideoFacet marks videos
type VideoFacet struct {
	Duration int64 `json:"duration,omitempty"` // milliseconds
	Width    int   `json:"width,omitempty"`
	Height   int   `json:"height,omitempty"`
}

// ThumbnailSet holds the thumbnail renditions of an item
type ThumbnailSet struct {
	ID     string     `json:"id,omitempty"`
	Small  *Thumbnail `json:"small,omitempty"`
	Medium *Thumbnail `json:"medium,omitempty"`
	Large  *Thumbnail `json:"large,omitempty"`
}

// Thumbnail is a single rendition
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Tag is a user or auto-generated tag
type Tag struct {
	Name string `json:"name"`
}

// ChildrenPage is one page of a children listing
type ChildrenPage struct {
	Value    []DriveItem `json:"value"`
	NextLink string      `json:"@odata.nextLink,omitempty"`
}

// Drive is the Graph drive resource
type Drive struct {
	ID        string `json:"id"`
	DriveType string `json:"driveType"`
	Owner     struct {
		User struct {
			DisplayName string `json:"displayName"`
		} `json:"user"`
	} `json:"owner"`
}
