package listener

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
)

// SessionRunner plays a game over a single connection until it ends.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

type ConnectionManager struct {
	runner SessionRunner
	active atomic.Int64
}

func NewConnectionManager(runner SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		runner: runner,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	n := m.active.Add(1)
	defer m.active.Add(-1)

	slog.DebugContext(ctx, "connection accepted", "active", n)

	if err := m.runner.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "player session", "error", err)
	}
}

// Active is the number of connections currently playing.
func (m *ConnectionManager) Active() int {
	return int(m.active.Load())
}
