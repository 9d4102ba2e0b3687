package session

import (
	"github.com/piwi3910/SortRoom/internal/model"
	"github.com/piwi3910/SortRoom/internal/objects"
)

// State is everything one undo step restores: the room outline and every
// object collection.
type State struct {
	Room    model.Room
	Objects objects.Collections
}

// Clone returns a copy of s that shares no slice storage with it.
func (s State) Clone() State {
	return State{
		Room:    s.Room,
		Objects: s.Objects.Clone(),
	}
}

// Equal reports whether s and other hold the same room and objects.
func (s State) Equal(other State) bool {
	if s.Room != other.Room {
		return false
	}
	for k := range s.Objects {
		a, b := s.Objects[k], other.Objects[k]
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}
