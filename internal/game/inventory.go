package game

import (
	"encoding/json"
	"strings"
)

// ItemSet is an ordered collection of item names with no duplicates.
// Names are compared case-insensitively but keep the spelling they were added with.
type ItemSet struct {
	items []string
}

// NewItemSet creates a set from names, dropping blanks and duplicates.
func NewItemSet(names ...string) ItemSet {
	var s ItemSet
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name if it is not already present. Returns false if it was.
func (s *ItemSet) Add(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || s.Contains(name) {
		return false
	}
	s.items = append(s.items, name)
	return true
}

// Remove deletes name from the set, returning the stored spelling.
func (s *ItemSet) Remove(name string) (string, bool) {
	i := s.indexOf(name)
	if i < 0 {
		return "", false
	}
	stored := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	return stored, true
}

// Find returns the stored spelling of name.
func (s *ItemSet) Find(name string) (string, bool) {
	i := s.indexOf(name)
	if i < 0 {
		return "", false
	}
	return s.items[i], true
}

func (s *ItemSet) Contains(name string) bool {
	return s.indexOf(name) >= 0
}

func (s *ItemSet) Len() int {
	return len(s.items)
}

// Names returns a copy of the item names in insertion order.
func (s *ItemSet) Names() []string {
	names := make([]string, len(s.items))
	copy(names, s.items)
	return names
}

func (s *ItemSet) Clone() ItemSet {
	return ItemSet{items: s.Names()}
}

func (s *ItemSet) indexOf(name string) int {
	name = strings.TrimSpace(name)
	for i, item := range s.items {
		if strings.EqualFold(item, name) {
			return i
		}
	}
	return -1
}

func (s ItemSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

// UnmarshalJSON collapses duplicate names found in the source.
func (s *ItemSet) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	*s = NewItemSet(names...)
	return nil
}
