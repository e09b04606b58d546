package commands

import "github.com/pixil98/go-adventure/internal/game"

// RoomData is the template data used to describe the player's surroundings.
type RoomData struct {
	Room       *game.Room
	Directions []string
	Items      []string
}

func newRoomData(r *game.Room) RoomData {
	dirs := make([]string, 0, len(r.Movements))
	for _, d := range r.Directions() {
		dirs = append(dirs, d.String())
	}
	return RoomData{
		Room:       r,
		Directions: dirs,
		Items:      r.Items.Names(),
	}
}

// SummaryData is the template data used for the end of game summary.
type SummaryData struct {
	Player  *game.Player
	Visited []string
}

// IntroData is the template data available to a map's intro text.
type IntroData struct {
	Player *game.Player
	Start  *game.Room
}
