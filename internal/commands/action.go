package commands

// Action is the canonical form a command verb resolves to.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionExamine
	ActionMove
	ActionTake
	ActionDrop
)

// verbs maps every accepted verb to its canonical action.
var verbs = map[string]Action{
	"quit":    ActionQuit,
	"exit":    ActionQuit,
	"examine": ActionExamine,
	"move":    ActionMove,
	"go":      ActionMove,
	"take":    ActionTake,
	"grab":    ActionTake,
	"snatch":  ActionTake,
	"drop":    ActionDrop,
	"leave":   ActionDrop,
	"put":     ActionDrop,
}

// LookupAction resolves a normalized verb. Unrecognized verbs resolve to ActionUnknown.
func LookupAction(verb string) Action {
	return verbs[verb]
}

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionExamine:
		return "examine"
	case ActionMove:
		return "go"
	case ActionTake:
		return "take"
	case ActionDrop:
		return "drop"
	default:
		return "unknown"
	}
}
