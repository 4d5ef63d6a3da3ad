package editor

// MaxHistory bounds the undo history. Oldest entries are dropped first.
const MaxHistory = 200

// History is a linear undo/redo stack of content snapshots with a
// movable cursor. Recording after an undo discards the redo tail.
type History struct {
	entries []string
	pos     int
}

// NewHistory returns a history holding only initial.
func NewHistory(initial string) *History {
	return &History{entries: []string{initial}}
}

// Reset discards everything and starts over from initial.
func (h *History) Reset(initial string) {
	h.entries = append(h.entries[:0], initial)
	h.pos = 0
}

// Record appends content as the newest snapshot. Recording the current
// snapshot again is a no-op.
func (h *History) Record(content string) {
	if h.entries[h.pos] == content {
		return
	}
	h.entries = append(h.entries[:h.pos+1], content)
	if len(h.entries) > MaxHistory {
		h.entries = append([]string{}, h.entries[len(h.entries)-MaxHistory:]...)
	}
	h.pos = len(h.entries) - 1
}

// Undo steps back one snapshot. ok is false at the oldest snapshot.
func (h *History) Undo() (content string, ok bool) {
	if h.pos == 0 {
		return h.entries[0], false
	}
	h.pos--
	return h.entries[h.pos], true
}

// Redo steps forward one snapshot. ok is false at the newest snapshot.
func (h *History) Redo() (content string, ok bool) {
	if h.pos == len(h.entries)-1 {
		return h.entries[h.pos], false
	}
	h.pos++
	return h.entries[h.pos], true
}

func (h *History) Current() string { return h.entries[h.pos] }
func (h *History) CanUndo() bool { return h.pos > 0 }
func (h *History) CanRedo() bool { return h.pos < len(h.entries)-1 }
func (h *History) Len() int { return len(h.entries) }
