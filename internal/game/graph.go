package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Graph is an ordered collection of rooms with a lookup from room number to position.
// Room items are the only part expected to change once a graph is built.
type Graph struct {
	Intro string

	rooms []*Room
	index map[int]int
}

// NewGraph builds the room number index. It does not validate; call Validate for that.
func NewGraph(rooms []*Room) *Graph {
	g := &Graph{
		rooms: rooms,
		index: make(map[int]int, len(rooms)),
	}
	for i, r := range rooms {
		if r == nil {
			continue
		}
		if _, ok := g.index[r.Number]; !ok {
			g.index[r.Number] = i
		}
	}
	return g
}

// Validate checks the graph-wide rules and every room, reporting all problems found.
func (g *Graph) Validate() error {
	el := errors.NewErrorList()

	if len(g.rooms) == 0 {
		el.Add(fmt.Errorf("map has no rooms"))
	}

	ends := 0
	seen := make(map[int]bool, len(g.rooms))
	for i, r := range g.rooms {
		if r == nil {
			el.Add(fmt.Errorf("room at position %d is empty", i))
			continue
		}
		if r.End {
			ends++
		}
		if seen[r.Number] {
			el.Add(fmt.Errorf("room number %d is used more than once", r.Number))
		}
		seen[r.Number] = true

		if err := r.Validate(); err != nil {
			el.Add(fmt.Errorf("room %d (position %d): %w", r.Number, i, err))
		}
	}

	if ends != 1 {
		el.Add(fmt.Errorf("map must have exactly one end room, found %d", ends))
	}

	for _, r := range g.rooms {
		if r == nil {
			continue
		}
		for _, m := range r.Movements {
			if !seen[m.Room] {
				el.Add(fmt.Errorf("room %d: %s leads to unknown room %d", r.Number, m.Direction, m.Room))
			}
		}
	}

	return el.Err()
}

func (g *Graph) Len() int {
	return len(g.rooms)
}

// At returns the room at position i in load order.
func (g *Graph) At(i int) *Room {
	if i < 0 || i >= len(g.rooms) {
		return nil
	}
	return g.rooms[i]
}

// Index returns the load-order position of the room with the given number.
func (g *Graph) Index(number int) (int, bool) {
	i, ok := g.index[number]
	return i, ok
}

// Room returns the room with the given number, or nil.
func (g *Graph) Room(number int) *Room {
	i, ok := g.index[number]
	if !ok {
		return nil
	}
	return g.rooms[i]
}

// Rooms returns the rooms in load order.
func (g *Graph) Rooms() []*Room {
	return append([]*Room(nil), g.rooms...)
}

// EndRoom returns the first room flagged as the end of the game.
func (g *Graph) EndRoom() *Room {
	for _, r := range g.rooms {
		if r.End {
			return r
		}
	}
	return nil
}

// Clone returns a deep copy whose room items can be mutated independently.
func (g *Graph) Clone() *Graph {
	rooms := make([]*Room, len(g.rooms))
	for i, r := range g.rooms {
		rooms[i] = r.clone()
	}
	c := NewGraph(rooms)
	c.Intro = g.Intro
	return c
}
