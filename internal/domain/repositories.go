package domain

import "context"

// MediaStore is the remote drive the browser reads from
type MediaStore interface {
	// GetItem fetches item metadata including thumbnails and tags
	GetItem(ctx context.Context, id string) (*MediaPayload, error)

	// ListChildren returns every entry of a folder ("root" for the drive root)
	ListChildren(ctx context.Context, folderID string) (*Folder, error)

	// Download fetches the bytes behind a (pre-authenticated) URL
	Download(ctx context.Context, url string) ([]byte, error)

	// ProbeStream checks that a stream URL answers with playable content
	ProbeStream(ctx context.Context, url string) error
}

// FolderStore caches folder listings locally (BoltDB + memory)
type FolderStore interface {
	GetFolder(folderID string) (*Folder, bool)
	SaveFolder(folder *Folder) error
	Invalidate(folderID string)
	InvalidateAll()
	Close() error
}
