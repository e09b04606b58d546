package commands

// Status is a snapshot of a game for transports to render.
type Status struct {
	Player     string              `json:"player"`
	Score      int                 `json:"score"`
	Room       string              `json:"room"`
	RoomNumber int                 `json:"room_number"`
	Inventory  []string            `json:"inventory"`
	Visited    []string            `json:"visited"`
	Ended      bool                `json:"ended"`
	Won        bool                `json:"won"`
	Options    map[string][]string `json:"options,omitempty"`
}

func (in *Interpreter) Status() Status {
	room := in.Room()
	return Status{
		Player:     in.player.Name,
		Score:      in.player.Score,
		Room:       room.Name,
		RoomNumber: room.Number,
		Inventory:  in.player.Inventory.Names(),
		Visited:    in.Visited(),
		Ended:      in.ended,
		Won:        in.won,
		Options:    in.Options(),
	}
}

// Options lists the arguments each action would currently accept, keyed by
// canonical verb. A finished game has no options.
func (in *Interpreter) Options() map[string][]string {
	if in.ended {
		return nil
	}

	room := in.Room()
	dirs := make([]string, 0, len(room.Movements))
	for _, d := range room.Directions() {
		dirs = append(dirs, d.String())
	}

	return map[string][]string{
		ActionMove.String():    dirs,
		ActionTake.String():    room.Items.Names(),
		ActionDrop.String():    in.player.Inventory.Names(),
		ActionExamine.String(): {"room"},
		ActionQuit.String():    {"game"},
	}
}
