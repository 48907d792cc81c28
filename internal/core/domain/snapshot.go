package domain

import "github.com/shopspring/decimal"

// SkippedEntry is a persisted entry that could not be loaded.
type SkippedEntry struct {
	Key    string
	Value  string
	Reason error
}

// Snapshot is an inventory read back from a repository. Items keep the
// persisted order; a repeated key keeps its first position and its last value.
type Snapshot struct {
	Items   []Item
	Skipped []SkippedEntry

	index map[string]int
}

// Accept records key with qty, or skips it when qty is not positive.
func (s *Snapshot) Accept(key string, qty decimal.Decimal) {
	if !qty.IsPositive() {
		s.Skip(key, qty.String(), ErrNonPositiveSnapshot)
		return
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[key]; ok {
		s.Items[i].Quantity = qty
		return
	}
	s.index[key] = len(s.Items)
	s.Items = append(s.Items, Item{Name: key, Quantity: qty})
}

// Skip records an unusable entry. An earlier accepted value for the same key
// is dropped.
func (s *Snapshot) Skip(key, value string, reason error) {
	if i, ok := s.index[key]; ok {
		s.Items = append(s.Items[:i], s.Items[i+1:]...)
		delete(s.index, key)
		for k, j := range s.index {
			if j > i {
				s.index[k] = j - 1
			}
		}
	}
	s.Skipped = append(s.Skipped, SkippedEntry{Key: key, Value: value, Reason: reason})
}
