package commands

func quit(in *Interpreter, _ string) (string, error) {
	in.ended = true
	in.player.Quit()
	return "Quitting game...", nil
}
