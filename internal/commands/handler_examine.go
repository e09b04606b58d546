package commands

// examine only acknowledges; the room description follows every response anyway.
func examine(_ *Interpreter, _ string) (string, error) {
	return "Examining this room...", nil
}
