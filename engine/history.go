package engine

import (
	"slices"

	"tracker/models"
)

// MaxHistory is the number of undo snapshots kept per session
const MaxHistory = 300

// PushSnapshot records the current session on its undo stack, evicting the oldest
// snapshot once the stack is full.
func PushSnapshot(s *models.Session) {
	s.History = append(s.History, s.Clone())
	if n := len(s.History); n > MaxHistory {
		s.History = slices.Clone(s.History[n-MaxHistory:])
	}
}

// Undo restores the newest snapshot. It reports false when there is nothing to undo.
func Undo(s *models.Session) bool {
	n := len(s.History)
	if n == 0 {
		return false
	}
	rest := s.History[:n-1]
	*s = s.History[n-1]
	s.History = rest
	return true
}
