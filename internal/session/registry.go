package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/leaderboard"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/pixil98/go-adventure/internal/session"

var ErrSessionNotFound = fmt.Errorf("session %w", game.ErrNotFound)

// GraphSource supplies a graph that the caller may mutate freely.
type GraphSource interface {
	Graph() (*game.Graph, error)
}

// Registry owns the live sessions and records finished games on the leaderboard.
type Registry struct {
	source GraphSource
	board  leaderboard.Store
	events EventPublisher
	prompt string
	tracer trace.Tracer
	newID  func() string

	mu       sync.RWMutex
	sessions map[string]*Session
}

type RegistryOpt func(*Registry)

// WithPrompt sets the prompt string shown to players of new sessions.
func WithPrompt(p string) RegistryOpt {
	return func(r *Registry) {
		r.prompt = p
	}
}

// WithEventPublisher publishes session lifecycle events.
func WithEventPublisher(p EventPublisher) RegistryOpt {
	return func(r *Registry) {
		r.events = p
	}
}

// WithIDGenerator replaces the random session id scheme.
func WithIDGenerator(f func() string) RegistryOpt {
	return func(r *Registry) {
		r.newID = f
	}
}

func WithTracerProvider(tp trace.TracerProvider) RegistryOpt {
	return func(r *Registry) {
		r.tracer = tp.Tracer(tracerName)
	}
}

func NewRegistry(source GraphSource, board leaderboard.Store, opts ...RegistryOpt) *Registry {
	r := &Registry{
		source:   source,
		board:    board,
		prompt:   commands.DefaultPrompt,
		tracer:   otel.Tracer(tracerName),
		newID:    uuid.NewString,
		sessions: map[string]*Session{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Create loads a fresh graph and starts a session on it. A map that fails to
// load is returned as is and no session is created.
func (r *Registry) Create(ctx context.Context, playerName string) (*Session, error) {
	ctx, span := r.tracer.Start(ctx, "session.create")
	defer span.End()

	g, err := r.source.Graph()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "loading map")
		return nil, fmt.Errorf("loading map: %w", err)
	}

	s := &Session{
		Created: time.Now(),
		interp: commands.NewInterpreter(g,
			commands.WithPrompt(r.prompt),
			commands.WithPlayerName(playerName),
		),
	}

	r.mu.Lock()
	for {
		s.ID = r.newID()
		if _, exists := r.sessions[s.ID]; !exists {
			break
		}
	}
	r.sessions[s.ID] = s
	r.mu.Unlock()

	span.SetAttributes(attribute.String("session.id", s.ID))
	slog.InfoContext(ctx, "session created", "session", s.ID, "player", s.interp.Player().Name)
	r.publish(ctx, Event{Session: s.ID, Type: EventCreated, Player: s.interp.Player().Name})

	return s, nil
}

// Get returns the live session with the given id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Destroy forgets the session. Returns false if the id was not live.
func (r *Registry) Destroy(ctx context.Context, id string) bool {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		slog.InfoContext(ctx, "session destroyed", "session", id)
		r.publish(ctx, Event{Session: id, Type: EventDestroyed})
	}
	return ok
}

// Dispatch runs cmd on the session. When the command ends the game, the
// player's score is written to the leaderboard before the response is returned.
func (r *Registry) Dispatch(ctx context.Context, id string, cmd commands.Command) (string, error) {
	ctx, span := r.tracer.Start(ctx, "session.dispatch", trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.String("command.verb", cmd.Verb),
	))
	defer span.End()

	s, err := r.Get(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "session not found")
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wasEnded := s.interp.Ended()
	out := s.interp.Exec(cmd)
	if !wasEnded && s.interp.Ended() {
		span.AddEvent("game ended")
		r.record(ctx, s)
	}

	return out, nil
}

// DispatchLine runs a line of free text on the session.
func (r *Registry) DispatchLine(ctx context.Context, id string, line string) (string, error) {
	return r.Dispatch(ctx, id, commands.ParseLine(line))
}

// record writes a finished game to the leaderboard. Callers hold s.mu.
func (r *Registry) record(ctx context.Context, s *Session) {
	p := s.interp.Player()
	won := s.interp.Won()

	attrs := []any{"session", s.ID, "player", p.Name, "score", p.Score, "won", won}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		attrs = append(attrs, "trace_id", sc.TraceID().String())
	}
	slog.InfoContext(ctx, "session ended", attrs...)

	if r.board != nil {
		if err := r.board.Upsert(ctx, p.Name, p.Score); err != nil {
			slog.WarnContext(ctx, "recording leaderboard score", "session", s.ID, "player", p.Name, "error", err)
		}
	}

	r.publish(ctx, Event{Session: s.ID, Type: EventEnded, Player: p.Name, Score: p.Score, Won: won})
}

// Leaderboard reads every recorded score in leaderboard order.
func (r *Registry) Leaderboard(ctx context.Context) ([]leaderboard.Entry, error) {
	if r.board == nil {
		return []leaderboard.Entry{}, nil
	}
	return r.board.List(ctx)
}

// IDs lists the live session ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Reset forgets every live session and returns how many there were.
// Each forgotten session gets a destroyed event.
func (r *Registry) Reset(ctx context.Context) int {
	r.mu.Lock()
	old := r.sessions
	r.sessions = map[string]*Session{}
	r.mu.Unlock()

	slog.InfoContext(ctx, "sessions reset", "count", len(old))
	for id := range old {
		r.publish(ctx, Event{Session: id, Type: EventDestroyed})
	}
	return len(old)
}

// Tick reports the live session count. It satisfies driver.Manager.
func (r *Registry) Tick(ctx context.Context) error {
	n := r.Len()
	slog.DebugContext(ctx, "session registry tick", "sessions", n)

	if r.events != nil {
		err := r.events.PublishJSON(StatsSubject, Stats{Sessions: n, At: time.Now().UTC()})
		if err != nil {
			slog.WarnContext(ctx, "publishing registry stats", "error", err)
		}
	}
	return nil
}
