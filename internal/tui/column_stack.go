package tui

import (
	"github.com/mmcdole/skylight/internal/tui/components"
)

// ColumnStack manages the stack of folder columns.
//
//	Root:    [OneDrive]
//	Folder:  [OneDrive | Pictures]
//	Deeper:  [Pictures | 2024]
//
// The top of the stack is always focused; the one below it is shown as
// parent context.
type ColumnStack struct {
	columns     []*components.ListColumn
	cursorStack []int // Saved cursor positions for back navigation
}

// NewColumnStack creates a new empty column stack
func NewColumnStack() *ColumnStack {
	return &ColumnStack{
		columns:     make([]*components.ListColumn, 0),
		cursorStack: make([]int, 0),
	}
}

// Len returns the number of columns in the stack
func (cs *ColumnStack) Len() int {
	return len(cs.columns)
}

// Get returns the column at the given index (0 = bottom/oldest)
func (cs *ColumnStack) Get(idx int) *components.ListColumn {
	if idx < 0 || idx >= len(cs.columns) {
		return nil
	}
	return cs.columns[idx]
}

// Top returns the topmost (current/focused) column
func (cs *ColumnStack) Top() *components.ListColumn {
	if len(cs.columns) == 0 {
		return nil
	}
	return cs.columns[len(cs.columns)-1]
}

// Find returns the column listing folderID, searching from the top
func (cs *ColumnStack) Find(folderID string) *components.ListColumn {
	for i := len(cs.columns) - 1; i >= 0; i-- {
		if cs.columns[i].FolderID() == folderID {
			return cs.columns[i]
		}
	}
	return nil
}

// Push adds a new column to the stack, saving the current cursor position
func (cs *ColumnStack) Push(col *components.ListColumn, saveCursor int) {
	cs.cursorStack = append(cs.cursorStack, saveCursor)

	if top := cs.Top(); top != nil {
		top.SetFocused(false)
	}

	col.SetFocused(true)
	cs.columns = append(cs.columns, col)
}

// Pop removes and returns the top column, along with the saved cursor position.
// Returns nil if stack would become empty (must have at least 1 column).
func (cs *ColumnStack) Pop() (*components.ListColumn, int) {
	if len(cs.columns) <= 1 {
		return nil, 0
	}

	popped := cs.columns[len(cs.columns)-1]
	popped.SetFocused(false)
	cs.columns = cs.columns[:len(cs.columns)-1]

	savedCursor := 0
	if len(cs.cursorStack) > 0 {
		savedCursor = cs.cursorStack[len(cs.cursorStack)-1]
		cs.cursorStack = cs.cursorStack[:len(cs.cursorStack)-1]
	}

	if top := cs.Top(); top != nil {
		top.SetFocused(true)
	}

	return popped, savedCursor
}

// Reset resets the stack to a single column
func (cs *ColumnStack) Reset(col *components.ListColumn) {
	for _, c := range cs.columns {
		c.SetFocused(false)
	}
	col.SetFocused(true)
	cs.columns = []*components.ListColumn{col}
	cs.cursorStack = nil
}

// Parent returns the parent column (second from top), or nil if at root
func (cs *ColumnStack) Parent() *components.ListColumn {
	if len(cs.columns) < 2 {
		return nil
	}
	return cs.columns[len(cs.columns)-2]
}

// CanGoBack returns true if we can navigate back (not at root)
func (cs *ColumnStack) CanGoBack() bool {
	return len(cs.columns) > 1
}

// Titles returns the column titles from root to top
func (cs *ColumnStack) Titles() []string {
	titles := make([]string, len(cs.columns))
	for i, col := range cs.columns {
		titles[i] = col.Title()
	}
	return titles
}

// UpdateSpinnerFrame updates the spinner frame for all columns
func (cs *ColumnStack) UpdateSpinnerFrame(frame int) {
	for _, col := range cs.columns {
		col.SetSpinnerFrame(frame)
	}
}

// AnyLoading reports whether a column is waiting for its listing
func (cs *ColumnStack) AnyLoading() bool {
	for _, col := range cs.columns {
		if col.IsLoading() {
			return true
		}
	}
	return false
}
