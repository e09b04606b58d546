package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Movement is an outgoing edge from a room.
type Movement struct {
	Direction Direction `json:"direction"`
	Room      int       `json:"room"`
}

// Room is a single location in the map.
type Room struct {
	Number      int        `json:"number"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	End         bool       `json:"end"`
	Items       ItemSet    `json:"items"`
	Movements   []Movement `json:"movements"`
}

// Validate checks the rules that apply to a room on its own.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Number <= 0 {
		el.Add(fmt.Errorf("room number must be positive"))
	}
	if r.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if r.Description == "" {
		el.Add(fmt.Errorf("description is required"))
	}
	if len(r.Movements) == 0 {
		el.Add(fmt.Errorf("at least one movement is required"))
	}

	return el.Err()
}

// Exit returns the destination room number for direction d.
func (r *Room) Exit(d Direction) (int, bool) {
	for _, m := range r.Movements {
		if m.Direction == d {
			return m.Room, true
		}
	}
	return 0, false
}

// Directions lists the directions that lead out of the room, in map order.
func (r *Room) Directions() []Direction {
	dirs := make([]Direction, 0, len(r.Movements))
	for _, m := range r.Movements {
		dirs = append(dirs, m.Direction)
	}
	return dirs
}

func (r *Room) clone() *Room {
	c := *r
	c.Items = r.Items.Clone()
	c.Movements = append([]Movement(nil), r.Movements...)
	return &c
}
