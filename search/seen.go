package search

import (
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/derive/grammar"
)

// SeenSet records every sentential form admitted to a search tree.
// It grows monotonically for the duration of a query.
type SeenSet struct {
	set *hashset.Set
}

// NewSeenSet creates an empty set.
func NewSeenSet() *SeenSet {
	return &SeenSet{set: hashset.New()}
}

// Add inserts a form. It returns false if the form has been present already.
func (s *SeenSet) Add(form grammar.Sentence) bool {
	key := form.String()
	if s.set.Contains(key) {
		return false
	}
	s.set.Add(key)
	return true
}

// Contains is true if form has been added before.
func (s *SeenSet) Contains(form grammar.Sentence) bool {
	return s.set.Contains(form.String())
}

// Len returns the number of forms in the set.
func (s *SeenSet) Len() int {
	return s.set.Size()
}
