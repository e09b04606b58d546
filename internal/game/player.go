package game

import (
	"math"
	"strings"
)

const (
	DefaultPlayerName = "Anonymous"

	// QuitScore replaces a player's score when they quit.
	// TODO: quitters sort to the bottom of the ascending leaderboard; confirm with product that this is intended.
	QuitScore = math.MaxInt32
)

// Player holds the state carried by the person playing a session.
type Player struct {
	Name      string
	Inventory ItemSet
	Score     int
}

func NewPlayer(name string) *Player {
	p := &Player{Name: DefaultPlayerName}
	p.Rename(name)
	return p
}

// Rename replaces the player's name unless name is blank.
func (p *Player) Rename(name string) {
	name = strings.TrimSpace(name)
	if name != "" {
		p.Name = name
	}
}

// Moved records a successful room transition.
func (p *Player) Moved() {
	p.Score++
}

func (p *Player) Quit() {
	p.Score = QuitScore
}
