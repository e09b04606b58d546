package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/leaderboard"
	"github.com/pixil98/go-adventure/internal/session"
)

const (
	ServerName    = "Text Adventure"
	ServerVersion = "1.0.0"
)

const instructions = `Text Adventure - MCP Interface

Each session is one player exploring a map of rooms until they reach the exit
room while holding the key, or quit.

AVAILABLE TOOLS:
- create_session: Start a new game and get its id and opening text
- session_status: Current room, inventory, score and valid command arguments
- execute_command: Run a command such as "go north", "take key", "drop key", "examine room" or "quit"
- destroy_session: Forget a session
- reset_sessions: Forget every live session
- leaderboard: Finished games ordered by score, lowest first`

// Sessions is the registry surface exposed as tools.
type Sessions interface {
	Create(ctx context.Context, playerName string) (*session.Session, error)
	Get(id string) (*session.Session, error)
	Destroy(ctx context.Context, id string) bool
	Reset(ctx context.Context) int
	Dispatch(ctx context.Context, id string, cmd commands.Command) (string, error)
	Leaderboard(ctx context.Context) ([]leaderboard.Entry, error)
}

// Tools serves the session registry as MCP tools.
type Tools struct {
	sessions Sessions
	server   *server.MCPServer
}

func NewTools(sessions Sessions) *Tools {
	t := &Tools{
		sessions: sessions,
		server: server.NewMCPServer(
			ServerName,
			ServerVersion,
			server.WithToolCapabilities(true),
			server.WithInstructions(instructions),
		),
	}

	t.registerTools()
	return t
}

// HandleMessage answers one JSON-RPC message.
func (t *Tools) HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage {
	return t.server.HandleMessage(ctx, message)
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID returned by create_session",
	}
}

func (t *Tools) registerTools() {
	t.server.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Start a new game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"player_name": map[string]interface{}{
					"type":        "string",
					"description": "Name recorded on the leaderboard (optional)",
				},
			},
		},
	}, t.handleCreateSession)

	t.server.AddTool(mcp.Tool{
		Name:        "session_status",
		Description: "Get the current state of a game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, t.handleSessionStatus)

	t.server.AddTool(mcp.Tool{
		Name:        "execute_command",
		Description: "Run a player command in a game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"command": map[string]interface{}{
					"type":        "string",
					"description": `Command text, e.g. "go north" or "take key"`,
				},
				"player_name": map[string]interface{}{
					"type":        "string",
					"description": "Renames the player when set (optional)",
				},
			},
			Required: []string{"session_id", "command"},
		},
	}, t.handleExecuteCommand)

	t.server.AddTool(mcp.Tool{
		Name:        "destroy_session",
		Description: "Forget a game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, t.handleDestroySession)

	t.server.AddTool(mcp.Tool{
		Name:        "reset_sessions",
		Description: "Forget every live game session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, t.handleResetSessions)

	t.server.AddTool(mcp.Tool{
		Name:        "leaderboard",
		Description: "List finished games ordered by score",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, t.handleLeaderboard)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return args
}

func (t *Tools) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	name, _ := args["player_name"].(string)

	s, err := t.sessions.Create(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\n\n%s", s.ID, s.Intro())
	return mcp.NewToolResultText(result), nil
}

func (t *Tools) handleSessionStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	id, _ := args["session_id"].(string)

	s, err := t.sessions.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatStatus(s.ID, s.Status())), nil
}

func (t *Tools) handleExecuteCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	id, _ := args["session_id"].(string)
	line, _ := args["command"].(string)
	name, _ := args["player_name"].(string)

	cmd := commands.ParseLine(line)
	cmd.PlayerName = name

	out, err := t.sessions.Dispatch(ctx, id, cmd)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(out), nil
}

func (t *Tools) handleDestroySession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	id, _ := args["session_id"].(string)

	if !t.sessions.Destroy(ctx, id) {
		return mcp.NewToolResultError(fmt.Sprintf("session %s not found", id)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Session %s destroyed", id)), nil
}

func (t *Tools) handleResetSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := t.sessions.Reset(ctx)
	return mcp.NewToolResultText(fmt.Sprintf("Reset %d sessions", n)), nil
}

func (t *Tools) handleLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := t.sessions.Leaderboard(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(entries) == 0 {
		return mcp.NewToolResultText("No finished games yet."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Leaderboard (%d):\n", len(entries))
	for i, e := range entries {
		fmt.Fprintf(&sb, "%d. %s - %d\n", i+1, e.Name, e.Score)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatStatus(id string, st commands.Status) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Session: %s\n", id)
	fmt.Fprintf(&sb, "Player: %s\n", st.Player)
	fmt.Fprintf(&sb, "Room: %s (%d)\n", st.Room, st.RoomNumber)
	fmt.Fprintf(&sb, "Score: %d\n", st.Score)
	fmt.Fprintf(&sb, "Inventory: %s\n", listOrNone(st.Inventory))
	fmt.Fprintf(&sb, "Visited: %s\n", strings.Join(st.Visited, " -> "))

	switch {
	case st.Won:
		sb.WriteString("Game over: escaped\n")
	case st.Ended:
		sb.WriteString("Game over: quit\n")
	default:
		sb.WriteString("Options:\n")
		for _, verb := range []string{"go", "take", "drop", "examine", "quit"} {
			fmt.Fprintf(&sb, "  %s: %s\n", verb, listOrNone(st.Options[verb]))
		}
	}

	return sb.String()
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
