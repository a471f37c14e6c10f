package tui

// History keeps the most recent inputs for Up/Down recall.
type History struct {
	entries []string
	max     int
	cursor  int // len(entries) when not navigating
}

// NewHistory creates a history holding at most max entries.
func NewHistory(max int) *History {
	return &History{max: max}
}

// Push records an input and stops navigation. Repeating the newest entry
// is not recorded twice.
func (h *History) Push(input string) {
	if n := len(h.entries); n == 0 || h.entries[n-1] != input {
		h.entries = append(h.entries, input)
		if len(h.entries) > h.max {
			h.entries = h.entries[len(h.entries)-h.max:]
		}
	}
	h.ResetCursor()
}

// Prev steps back to an older entry, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps forward. It reports false once it moves past the newest
// entry, which means the input line should be cleared.
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.entries) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		return "", false
	}
	return h.entries[h.cursor], true
}

// ResetCursor ends navigation.
func (h *History) ResetCursor() {
	h.cursor = len(h.entries)
}
