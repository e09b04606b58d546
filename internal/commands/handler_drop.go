package commands

import "fmt"

func drop(in *Interpreter, arg string) (string, error) {
	if arg == "" {
		return "", NewUserError("Please include an item to drop. Try again:")
	}

	item, ok := in.player.Inventory.Remove(arg)
	if !ok {
		return "", NewUserError(fmt.Sprintf("You don't have %s!", arg))
	}

	if !in.Room().Items.Add(item) {
		return fmt.Sprintf("The item %s is already in this room!", item), nil
	}
	return fmt.Sprintf("You've dropped: %s.", item), nil
}
