package commands

import "fmt"

// take moves an item from the room into the inventory. Taking something
// already held still removes it from the room.
func take(in *Interpreter, arg string) (string, error) {
	if arg == "" {
		return "", NewUserError("Please include an item to take. Try again:")
	}

	item, ok := in.Room().Items.Remove(arg)
	if !ok {
		return "", NewUserError(fmt.Sprintf("There is no %s in the room.", arg))
	}

	msg := fmt.Sprintf("You have picked up: %s.", item)
	if !in.player.Inventory.Add(item) {
		msg += fmt.Sprintf("\nYou already have %s!", item)
	}
	return msg, nil
}
