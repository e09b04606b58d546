package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pixil98/go-adventure/internal/game"
)

const (
	// KeyItem must be held when reaching the end room to win.
	KeyItem = "key"

	DefaultPrompt = "> "
	DefaultIntro  = "Welcome, {{ .Player.Name }}. Find a way out."

	gameOverMessage = "The game is over."
)

// CommandFunc carries out one canonical action with its argument.
// A *UserError return is rendered to the player as the response.
type CommandFunc func(in *Interpreter, arg string) (string, error)

var handlers = map[Action]CommandFunc{
	ActionQuit:    quit,
	ActionExamine: examine,
	ActionMove:    move,
	ActionTake:    take,
	ActionDrop:    drop,
}

// Interpreter is the state machine for a single play-through.
// It is not safe for concurrent use.
type Interpreter struct {
	graph   *game.Graph
	player  *game.Player
	current int
	history []int
	ended   bool
	won     bool
	prompt  string
}

type InterpreterOpt func(*Interpreter)

// WithPrompt sets the text shown after the "what next" question.
func WithPrompt(p string) InterpreterOpt {
	return func(in *Interpreter) {
		in.prompt = p
	}
}

// WithPlayerName sets the player's starting name.
func WithPlayerName(name string) InterpreterOpt {
	return func(in *Interpreter) {
		in.player.Rename(name)
	}
}

// NewInterpreter starts a game in the first room of g. The interpreter takes
// ownership of g and mutates its room items.
func NewInterpreter(g *game.Graph, opts ...InterpreterOpt) *Interpreter {
	in := &Interpreter{
		graph:  g,
		player: game.NewPlayer(""),
		prompt: DefaultPrompt,
	}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

// Exec normalizes and runs cmd, returning the text to show the player.
// Gameplay mistakes are reported in the text, never as errors.
func (in *Interpreter) Exec(cmd Command) string {
	if in.ended {
		return gameOverMessage + "\n" + in.Summary()
	}

	cmd = cmd.Normalize()
	in.player.Rename(cmd.PlayerName)

	msg := in.run(cmd)
	if in.ended {
		return msg + "\n" + in.Summary()
	}
	return msg + "\n\n" + in.Describe()
}

// ExecLine runs a line of free text.
func (in *Interpreter) ExecLine(line string) string {
	return in.Exec(ParseLine(line))
}

func (in *Interpreter) run(cmd Command) string {
	if cmd.Verb == "" {
		return "Please enter a command. Try again:"
	}

	fn, ok := handlers[LookupAction(cmd.Verb)]
	if !ok {
		return fmt.Sprintf("I don't understand %s. Try again:", cmd.Verb)
	}

	msg, err := fn(in, cmd.Argument)
	if err != nil {
		var userErr *UserError
		if errors.As(err, &userErr) {
			return userErr.Message
		}
		return err.Error()
	}
	return msg
}

// Intro is the opening text of a new game.
func (in *Interpreter) Intro() string {
	tmpl := in.graph.Intro
	if tmpl == "" {
		tmpl = DefaultIntro
	}

	intro, err := ExpandTemplate(tmpl, IntroData{Player: in.player, Start: in.graph.At(0)})
	if err != nil {
		intro = tmpl
	}
	return intro + "\n\n" + in.Describe()
}

// Describe renders the current room followed by the prompt.
func (in *Interpreter) Describe() string {
	desc, err := execute(roomTemplate, newRoomData(in.Room()))
	if err != nil {
		desc = "You are currently in: " + in.Room().Name
	}
	return desc + "\nWhat action would you like to take?\n" + in.prompt
}

// Summary lists every room visited, starting room first.
func (in *Interpreter) Summary() string {
	summary, err := execute(summaryTemplate, SummaryData{Player: in.player, Visited: in.Visited()})
	if err != nil {
		return strings.Join(in.Visited(), "\n")
	}
	return summary
}

// Visited returns the names of the rooms visited, starting room first.
func (in *Interpreter) Visited() []string {
	names := make([]string, 0, len(in.history)+1)
	names = append(names, in.graph.At(0).Name)
	for _, i := range in.history {
		names = append(names, in.graph.At(i).Name)
	}
	return names
}

// Room returns the room the player is in.
func (in *Interpreter) Room() *game.Room {
	return in.graph.At(in.current)
}

func (in *Interpreter) Player() *game.Player {
	return in.player
}

func (in *Interpreter) Ended() bool {
	return in.ended
}

// Won reports whether the game ended by escaping with the key.
func (in *Interpreter) Won() bool {
	return in.won
}
