package commands

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Command is a single player instruction.
type Command struct {
	Verb       string `json:"verb"`
	Argument   string `json:"argument,omitempty"`
	PlayerName string `json:"player_name,omitempty"`
}

// ParseLine turns free text typed by a player into a normalized command.
func ParseLine(line string) Command {
	return Command{Verb: line}.Normalize()
}

// Normalize lowercases the verb and argument and collapses whitespace.
// A command without an argument is free text: its first word becomes the
// verb and the remaining words the argument, so {"go east", ""} and
// {"go", "East"} normalize the same way. A command that already has an
// argument keeps its fields as given. The player name is only trimmed.
func (c Command) Normalize() Command {
	n := Command{PlayerName: strings.TrimSpace(c.PlayerName)}

	if strings.TrimSpace(c.Argument) != "" {
		n.Verb = collapse(c.Verb)
		n.Argument = collapse(c.Argument)
		return n
	}

	words := strings.Fields(lowerCase(c.Verb))
	if len(words) > 0 {
		n.Verb = words[0]
		n.Argument = strings.Join(words[1:], " ")
	}
	return n
}

func lowerCase(s string) string {
	return cases.Lower(language.Und).String(s)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(lowerCase(s)), " ")
}
