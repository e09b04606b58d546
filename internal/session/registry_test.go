package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/leaderboard"
	"github.com/pixil98/go-adventure/internal/storage"
	"github.com/pixil98/go-testutil"
)

const exampleMap = "../../configs/maps/kidnapped.json"

type mockPublisher struct {
	mu       sync.Mutex
	subjects []string
	values   []any
}

func (m *mockPublisher) PublishJSON(subject string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjects = append(m.subjects, subject)
	m.values = append(m.values, v)
	return nil
}

type countingStore struct {
	*leaderboard.MemoryStore
	mu      sync.Mutex
	upserts int
	err     error
}

func (s *countingStore) Upsert(ctx context.Context, name string, score int) error {
	s.mu.Lock()
	s.upserts++
	s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	return s.MemoryStore.Upsert(ctx, name, score)
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("s%d", n)
	}
}

func newTestRegistry(t *testing.T, opts ...RegistryOpt) (*Registry, *countingStore) {
	t.Helper()
	board := &countingStore{MemoryStore: leaderboard.NewMemoryStore()}
	opts = append([]RegistryOpt{WithIDGenerator(sequentialIDs())}, opts...)
	return NewRegistry(storage.NewCachedMap(exampleMap), board, opts...), board
}

func mustCreate(t *testing.T, r *Registry, name string) *Session {
	t.Helper()
	s, err := r.Create(context.Background(), name)
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	return s
}

func TestRegistry_Create(t *testing.T) {
	r, _ := newTestRegistry(t)

	a := mustCreate(t, r, "Ada")
	b := mustCreate(t, r, "")

	testutil.AssertEqual(t, "distinct ids", a.ID != b.ID, true)
	testutil.AssertEqual(t, "len", r.Len(), 2)
	testutil.AssertEqual(t, "named player", a.Status().Player, "Ada")
	testutil.AssertEqual(t, "default player", b.Status().Player, game.DefaultPlayerName)

	got, err := r.Get(a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "same session", got == a, true)

	if !strings.Contains(a.Intro(), "You are currently in: Bedroom") {
		t.Errorf("intro missing room description: %s", a.Intro())
	}
}

func TestRegistry_CreateRetriesIDCollision(t *testing.T) {
	ids := []string{"dup", "dup", "fresh"}
	i := 0
	r, _ := newTestRegistry(t, WithIDGenerator(func() string {
		id := ids[i]
		i++
		return id
	}))

	a := mustCreate(t, r, "")
	b := mustCreate(t, r, "")
	testutil.AssertEqual(t, "first", a.ID, "dup")
	testutil.AssertEqual(t, "second", b.ID, "fresh")
}

func TestRegistry_CreateMapFailure(t *testing.T) {
	r := NewRegistry(storage.NewFileMap(filepath.Join(t.TempDir(), "missing.json")), leaderboard.NewMemoryStore())

	s, err := r.Create(context.Background(), "Ada")
	if !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if s != nil {
		t.Errorf("expected no session")
	}
	testutil.AssertEqual(t, "len", r.Len(), 0)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.Get("nope")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("expected game.ErrNotFound, got %v", err)
	}
}

func TestRegistry_Destroy(t *testing.T) {
	r, _ := newTestRegistry(t)
	s := mustCreate(t, r, "")

	testutil.AssertEqual(t, "destroy live", r.Destroy(context.Background(), s.ID), true)
	testutil.AssertEqual(t, "destroy again", r.Destroy(context.Background(), s.ID), false)
	testutil.AssertEqual(t, "destroy unknown", r.Destroy(context.Background(), "nope"), false)
	testutil.AssertEqual(t, "len", r.Len(), 0)

	_, err := r.Get(s.ID)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRegistry_DispatchUnknownLeavesOthersAlone(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry(t)
	s := mustCreate(t, r, "")
	before := s.Status()

	_, err := r.Dispatch(ctx, "nope", commands.Command{Verb: "go", Argument: "east"})
	if !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	after := s.Status()
	testutil.AssertEqual(t, "room", after.RoomNumber, before.RoomNumber)
	testutil.AssertEqual(t, "score", after.Score, before.Score)
}

func TestRegistry_Dispatch(t *testing.T) {
	ctx := context.Background()
	r, board := newTestRegistry(t)
	s := mustCreate(t, r, "")

	out, err := r.Dispatch(ctx, s.ID, commands.Command{Verb: "go", Argument: "east"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "You have moved to: Hallway") {
		t.Errorf("unexpected output: %s", out)
	}
	testutil.AssertEqual(t, "room", s.Status().RoomNumber, 2)
	testutil.AssertEqual(t, "no leaderboard writes", board.upserts, 0)
}

func TestRegistry_DispatchRecordsFinishedGames(t *testing.T) {
	tests := map[string]struct {
		lines    []string
		name     string
		expScore int
	}{
		"quit": {
			lines:    []string{"go east", "quit"},
			name:     "Quitter",
			expScore: game.QuitScore,
		},
		"win": {
			lines:    []string{"go south", "take key", "go north", "go east", "go east", "go south", "go south"},
			name:     "Winner",
			expScore: 6,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r, board := newTestRegistry(t)
			s := mustCreate(t, r, "")

			for _, line := range tt.lines {
				_, err := r.Dispatch(ctx, s.ID, commands.Command{Verb: line, PlayerName: tt.name})
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			testutil.AssertEqual(t, "ended", s.Ended(), true)

			// Further commands are answered but not recorded again.
			out, err := r.DispatchLine(ctx, s.ID, "examine")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, "The game is over.") {
				t.Errorf("unexpected output: %s", out)
			}
			testutil.AssertEqual(t, "upserts", board.upserts, 1)

			entries, err := r.Leaderboard(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "entries", len(entries), 1)
			testutil.AssertEqual(t, "name", entries[0].Name, tt.name)
			testutil.AssertEqual(t, "score", entries[0].Score, tt.expScore)
		})
	}
}

func TestRegistry_LeaderboardFailureDoesNotFailDispatch(t *testing.T) {
	ctx := context.Background()
	r, board := newTestRegistry(t)
	board.err = errors.New("disk full")
	s := mustCreate(t, r, "")

	out, err := r.DispatchLine(ctx, s.ID, "quit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Quitting game...") {
		t.Errorf("unexpected output: %s", out)
	}
	testutil.AssertEqual(t, "upserts", board.upserts, 1)
}

func TestRegistry_SessionsDoNotShareItems(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry(t)
	a := mustCreate(t, r, "")
	b := mustCreate(t, r, "")

	if _, err := r.DispatchLine(ctx, a.ID, "take chair"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "a inventory", len(a.Status().Inventory), 1)
	testutil.AssertEqual(t, "b can still take", len(b.Status().Options["take"]), 1)
}

func TestRegistry_ConcurrentDispatchSameSession(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry(t)
	s := mustCreate(t, r, "")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			line := "take chair"
			if i%2 == 1 {
				line = "drop chair"
			}
			if _, err := r.DispatchLine(ctx, s.ID, line); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	st := s.Status()
	inRoom := len(st.Options["take"])
	held := len(st.Inventory)
	testutil.AssertEqual(t, "chair in exactly one place", inRoom+held, 1)
	testutil.AssertEqual(t, "score", st.Score, 0)
}

func TestRegistry_Events(t *testing.T) {
	ctx := context.Background()
	pub := &mockPublisher{}
	r, _ := newTestRegistry(t, WithEventPublisher(pub))

	s := mustCreate(t, r, "Ada")
	if _, err := r.DispatchLine(ctx, s.ID, "quit"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.Destroy(ctx, s.ID)
	if err := r.Tick(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exp := []string{
		Subject(s.ID, EventCreated),
		Subject(s.ID, EventEnded),
		Subject(s.ID, EventDestroyed),
		StatsSubject,
	}
	testutil.AssertEqual(t, "event count", len(pub.subjects), len(exp))
	for i := range exp {
		testutil.AssertEqual(t, fmt.Sprintf("subject %d", i), pub.subjects[i], exp[i])
	}

	ended, ok := pub.values[1].(Event)
	if !ok {
		t.Fatalf("expected Event, got %T", pub.values[1])
	}
	testutil.AssertEqual(t, "ended player", ended.Player, "Ada")
	testutil.AssertEqual(t, "ended score", ended.Score, game.QuitScore)

	stats, ok := pub.values[3].(Stats)
	if !ok {
		t.Fatalf("expected Stats, got %T", pub.values[3])
	}
	testutil.AssertEqual(t, "stats sessions", stats.Sessions, 0)
}

func TestRegistry_ResetAndIDs(t *testing.T) {
	r, _ := newTestRegistry(t)
	mustCreate(t, r, "")
	mustCreate(t, r, "")

	ids := r.IDs()
	testutil.AssertEqual(t, "ids", strings.Join(ids, ","), "s1,s2")

	n := r.Reset(context.Background())
	testutil.AssertEqual(t, "reset count", n, 2)
	testutil.AssertEqual(t, "len after reset", r.Len(), 0)
	testutil.AssertEqual(t, "ids after reset", len(r.IDs()), 0)

	_, err := r.Get("s1")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after reset, got %v", err)
	}
}
