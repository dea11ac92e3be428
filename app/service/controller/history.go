package controller

import (
	"iter"

	"replygen/app/model"
)

// FilteredHistory yields the history entries visible under the current
// filter, most recent first. Each call reads the state afresh.
func (s *Service) FilteredHistory() iter.Seq[model.HistoryEntry] {
	return func(yield func(model.HistoryEntry) bool) {
		s.mu.RLock()
		history, filter := s.history, s.filter
		s.mu.RUnlock()

		for _, entry := range history {
			if !filter.Matches(entry.Tone) {
				continue
			}
			if !yield(entry) {
				return
			}
		}
	}
}

// DeleteHistoryItem removes the index-th entry of the filtered view.
func (s *Service) DeleteHistoryItem(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := visiblePosition(s.history, s.filter, index)
	if pos < 0 {
		return false
	}

	// history slices are never modified in place, readers may still hold the old one
	updated := make([]model.HistoryEntry, 0, len(s.history)-1)
	updated = append(updated, s.history[:pos]...)
	updated = append(updated, s.history[pos+1:]...)
	s.history = updated

	return true
}

// visiblePosition maps an index of the filtered view to a position in
// history, or -1 when out of range.
func visiblePosition(history []model.HistoryEntry, filter model.Filter, index int) int {
	if index < 0 {
		return -1
	}

	seen := 0
	for i, entry := range history {
		if !filter.Matches(entry.Tone) {
			continue
		}
		if seen == index {
			return i
		}
		seen++
	}

	return -1
}
