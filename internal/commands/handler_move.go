package commands

import (
	"fmt"

	"github.com/pixil98/go-adventure/internal/game"
)

// move follows an exit from the current room. Reaching the end room only
// ends the game if the player holds the key.
func move(in *Interpreter, arg string) (string, error) {
	dir, err := game.ParseDirection(arg)
	if err != nil {
		return "", NewUserError("Please include a direction to move in. Try again:")
	}

	dest, ok := in.Room().Exit(dir)
	if !ok {
		return "", NewUserError(fmt.Sprintf("I can't go %s. Try again:", dir))
	}

	i, ok := in.graph.Index(dest)
	if !ok {
		return "", NewUserError(fmt.Sprintf("I can't go %s. Try again:", dir))
	}

	in.current = i
	in.history = append(in.history, i)
	in.player.Moved()

	room := in.Room()
	msg := fmt.Sprintf("You have moved to: %s.", room.Name)
	if !room.End {
		return msg, nil
	}

	if !in.player.Inventory.Contains(KeyItem) {
		return msg + "\nYou seem to be missing a key...", nil
	}

	in.ended = true
	in.won = true
	return msg + "\nCongrats! You escaped.", nil
}
