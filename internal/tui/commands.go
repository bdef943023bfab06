package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/skylight/internal/service"
)

// Command factories for async operations

// LoadFolderCmd loads a folder listing, bypassing the cache when refresh is set
func LoadFolderCmd(svc *service.FolderService, folderID string, refresh bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second) // 60s for large folders
		defer cancel()

		folder, err := svc.ListFolder(ctx, folderID, refresh)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading folder", FolderID: folderID}
		}
		return FolderLoadedMsg{FolderID: folderID, Folder: folder}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
