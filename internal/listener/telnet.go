package listener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/iammegalith/telnet"
)

// TelnetListener serves games to plain telnet clients. Each accepted
// connection gets a numbered console and plays one session after another
// until the player leaves.
type TelnetListener struct {
	addr string
	cm   *ConnectionManager
}

func NewTelnetListener(addr string, cm *ConnectionManager) *TelnetListener {
	return &TelnetListener{
		addr: addr,
		cm:   cm,
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	consoles := newTelnetConsoles(l.cm)
	svr := telnet.NewServer(l.addr, consoles)

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			svr.Stop()
			consoles.closeAll()
		case <-done:
		}
	}()

	slog.InfoContext(ctx, "telnet console open", "addr", l.addr)

	err := svr.ListenAndServe()
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("telnet address %s is already in use (another adventure running?)", l.addr)
		}
		return fmt.Errorf("serving telnet on %s: %w", l.addr, err)
	}

	return nil
}

// telnetConsoles hands each telnet connection to the connection manager.
// Every console shares one context so shutdown ends them together.
type telnetConsoles struct {
	cm     *ConnectionManager
	wg     sync.WaitGroup
	nextID atomic.Uint64
	ctx    context.Context
	cancel context.CancelFunc
}

func newTelnetConsoles(cm *ConnectionManager) *telnetConsoles {
	ctx, cancel := context.WithCancel(context.Background())
	return &telnetConsoles{
		cm:     cm,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (c *telnetConsoles) HandleTelnet(conn *telnet.Connection) {
	c.play(conn)
}

func (c *telnetConsoles) play(conn io.ReadWriteCloser) {
	c.wg.Add(1)
	defer c.wg.Done()

	console := c.nextID.Add(1)
	started := time.Now()
	slog.InfoContext(c.ctx, "telnet player connected", "console", console)

	c.cm.AcceptConnection(c.ctx, conn)

	if err := conn.Close(); err != nil {
		slog.ErrorContext(c.ctx, "closing telnet console", "console", console, "error", err)
	}
	slog.InfoContext(c.ctx, "telnet player left",
		"console", console,
		"played", time.Since(started).Round(time.Second),
		"still_playing", c.cm.Active(),
	)
}

// closeAll cancels every console and waits for their sessions to finish.
func (c *telnetConsoles) closeAll() {
	c.cancel()
	c.wg.Wait()
}
