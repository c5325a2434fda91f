package widget

import "weak"

// HistoryEntry represents a single entry in a ComponentContainer's
// navigation history. It stores the module that was shown, the arguments it
// was shown with, the state it reported when navigated away from, and the
// widget that had focus before it was shown.
type HistoryEntry struct {
	Module string
	Args   Args
	State  State

	previousFocus weak.Pointer[Button]
}

// PreviousFocus returns the button focussed before the entry's component
// was shown, or nil if there was none or it has since been released.
func (e HistoryEntry) PreviousFocus() *Button {
	return e.previousFocus.Value()
}

// HistoryStack manages navigation history for back navigation.
type HistoryStack struct {
	entries []HistoryEntry
}

// Push adds a new entry to the stack.
// Called when navigating forward with history enabled.
func (s *HistoryStack) Push(entry HistoryEntry) {
	s.entries = append(s.entries, entry)
}

// Pop removes and returns the top entry from the stack.
// Returns nil if the stack is empty.
func (s *HistoryStack) Pop() *HistoryEntry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Peek returns the top entry without removing it.
// Returns nil if the stack is empty.
func (s *HistoryStack) Peek() *HistoryEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

// Bottom returns the oldest entry without removing it.
// Returns nil if the stack is empty.
func (s *HistoryStack) Bottom() *HistoryEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[0]
}

// IsEmpty returns true if the stack has no entries.
func (s *HistoryStack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *HistoryStack) Len() int {
	return len(s.entries)
}

// Clear removes all entries from the stack.
func (s *HistoryStack) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
}

// Entries returns a copy of the stack, oldest first.
func (s *HistoryStack) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func weakButton(b *Button) weak.Pointer[Button] {
	if b == nil {
		return weak.Pointer[Button]{}
	}
	return weak.Make(b)
}
