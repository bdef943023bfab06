package tui

import "github.com/mmcdole/skylight/internal/domain"

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err      error
	Context  string
	FolderID string // set when a folder load failed
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// FolderLoadedMsg signals that a folder listing is ready
type FolderLoadedMsg struct {
	FolderID string
	Folder   *domain.Folder
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
