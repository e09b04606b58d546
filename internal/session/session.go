package session

import (
	"sync"
	"time"

	"github.com/pixil98/go-adventure/internal/commands"
)

// Session is one play-through owned by a Registry.
// Every access to the interpreter holds mu so commands never interleave.
type Session struct {
	ID      string
	Created time.Time

	mu     sync.Mutex
	interp *commands.Interpreter
}

func (s *Session) Status() commands.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interp.Status()
}

// Intro is the opening text for the session, including the current room.
func (s *Session) Intro() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interp.Intro()
}

func (s *Session) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interp.Ended()
}
