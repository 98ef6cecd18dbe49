package ui

import (
	"slices"

	"github.com/pstuifzand/tui-templategen/internal/history"
)

// History is a bounded list of entered lines, newest last. The command line
// walks it with Up and Down; added property names feed completion from it.
type History struct {
	entries []string
	limit   int

	// pos is the entry shown while walking, -1 when not walking.
	// draft holds what was typed before the walk started.
	pos   int
	draft string

	manager  *history.Manager
	filename string
}

// NewHistory creates an in-memory History keeping at most limit entries
func NewHistory(limit int) *History {
	return &History{limit: limit, pos: -1}
}

// NewHistoryWithManager creates a History stored in filename. On a load
// error the History is still usable, just empty.
func NewHistoryWithManager(limit int, manager *history.Manager, filename string) (*History, error) {
	h := NewHistory(limit)
	h.manager = manager
	h.filename = filename

	entries, err := manager.Load(filename)
	if err != nil {
		return h, err
	}
	h.entries = entries
	h.keep()
	return h, nil
}

func (h *History) keep() {
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = slices.Delete(h.entries, 0, over)
	}
}

// Add appends entry unless it is empty or equal to the newest entry,
// and saves when a file backs the History
func (h *History) Add(entry string) error {
	h.Reset()
	if entry == "" || (len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry) {
		return nil
	}
	h.entries = append(h.entries, entry)
	h.keep()
	return h.Save()
}

// AddUnique is Add after dropping any older copy of entry
func (h *History) AddUnique(entry string) error {
	if i := slices.Index(h.entries, entry); i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}
	return h.Add(entry)
}

func (h *History) Save() error {
	if h.manager == nil || h.filename == "" {
		return nil
	}
	return h.manager.Save(h.filename, h.entries)
}

// Previous steps back one entry. current is kept as the draft when the walk
// starts, and Previous stays on the oldest entry.
func (h *History) Previous(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.pos < 0:
		h.draft = current
		h.pos = len(h.entries) - 1
	case h.pos > 0:
		h.pos--
	}
	return h.entries[h.pos], true
}

// Next steps forward one entry. Stepping past the newest entry ends the
// walk and returns the draft.
func (h *History) Next() (string, bool) {
	if h.pos < 0 {
		return "", false
	}
	h.pos++
	if h.pos < len(h.entries) {
		return h.entries[h.pos], true
	}
	draft := h.draft
	h.Reset()
	return draft, true
}

// Reset ends a walk
func (h *History) Reset() {
	h.pos = -1
	h.draft = ""
}

func (h *History) IsNavigating() bool { return h.pos >= 0 }

func (h *History) GetAll() []string { return slices.Clone(h.entries) }

func (h *History) Len() int { return len(h.entries) }
