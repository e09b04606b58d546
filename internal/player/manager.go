package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pixil98/go-adventure/internal"
	"github.com/pixil98/go-adventure/internal/display"
	"github.com/pixil98/go-adventure/internal/session"
)

const maxNameLength = 32

// Sessions is the part of the session registry a console player needs.
type Sessions interface {
	Create(ctx context.Context, playerName string) (*session.Session, error)
	DispatchLine(ctx context.Context, id string, line string) (string, error)
	Destroy(ctx context.Context, id string) bool
}

// PlayerManager runs interactive games over line-based connections.
type PlayerManager struct {
	sessions Sessions
}

func NewPlayerManager(sessions Sessions) *PlayerManager {
	return &PlayerManager{sessions: sessions}
}

// RunSession asks for a name and plays games on conn until the player
// declines another round or the connection closes.
func (m *PlayerManager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	c := internal.NewConsole(conn)

	name, err := c.Prompt("What is your name? ", internal.WithValidator(validateName), internal.WithMaxTries(3))
	if err != nil {
		return ignoreEOF(err)
	}

	for {
		err = m.play(ctx, c, name)
		if err != nil {
			return ignoreEOF(err)
		}

		again, err := c.PromptYN("\nPlay again? (y/n) ")
		if err != nil {
			return ignoreEOF(err)
		}
		if !again {
			return c.Write("Goodbye!\n")
		}
	}
}

func (m *PlayerManager) play(ctx context.Context, c *internal.Console, name string) error {
	s, err := m.sessions.Create(ctx, name)
	if err != nil {
		_ = c.Write("The adventure could not be started. Please try again later.\n")
		return fmt.Errorf("creating session: %w", err)
	}
	defer m.sessions.Destroy(ctx, s.ID)

	slog.InfoContext(ctx, "console game started", "session", s.ID)

	err = c.Write(display.Wrap(s.Intro()))
	if err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := c.ReadLine()
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		out, err := m.sessions.DispatchLine(ctx, s.ID, line)
		if err != nil {
			return fmt.Errorf("dispatching command: %w", err)
		}

		err = c.Write(display.Wrap(out))
		if err != nil {
			return err
		}

		if s.Ended() {
			return nil
		}
	}
}

// validateName accepts a blank name, which plays anonymously.
func validateName(name string) (bool, string) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > maxNameLength {
		return false, fmt.Sprintf("Names can be at most %d characters.\n", maxNameLength)
	}
	return true, ""
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
