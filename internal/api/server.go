package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/leaderboard"
	"github.com/pixil98/go-adventure/internal/session"
)

const (
	DefaultAddr         = ":8080"
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 15 * time.Second
)

// Sessions is the registry surface served over HTTP.
type Sessions interface {
	Create(ctx context.Context, playerName string) (*session.Session, error)
	Get(id string) (*session.Session, error)
	Destroy(ctx context.Context, id string) bool
	Dispatch(ctx context.Context, id string, cmd commands.Command) (string, error)
	IDs() []string
	Reset(ctx context.Context) int
	Leaderboard(ctx context.Context) ([]leaderboard.Entry, error)
}

// MessageHandler answers a single JSON-RPC message. A nil result means the
// message was a notification and has no reply.
type MessageHandler interface {
	HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage
}

// Subscriber delivers raw messages published on subject until the returned
// func is called.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// Server exposes the session registry over HTTP.
type Server struct {
	sessions Sessions
	mcp      MessageHandler
	events   Subscriber
	router   *mux.Router

	addr         string
	readTimeout  time.Duration
	writeTimeout time.Duration
	websocket    bool
}

func NewServer(sessions Sessions, opts ...ServerOpt) *Server {
	s := &Server{
		sessions:     sessions,
		router:       mux.NewRouter(),
		addr:         DefaultAddr,
		readTimeout:  DefaultReadTimeout,
		writeTimeout: DefaultWriteTimeout,
		websocket:    true,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/sessions", s.handleCreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions", s.handleListSessions).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/commands", s.handleCommand).Methods(http.MethodPost)
	api.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)
	api.HandleFunc("/leaderboard", s.handleLeaderboard).Methods(http.MethodGet)

	if s.websocket {
		s.router.HandleFunc("/ws", s.handleWebSocket)
	}
	if s.mcp != nil {
		s.router.HandleFunc("/mcp", s.handleMCP).Methods(http.MethodPost)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	svr := &http.Server{
		Addr:         s.addr,
		Handler:      s,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "http server listening", "addr", s.addr)
		errCh <- svr.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving http on %s: %w", s.addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := svr.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request")
		return
	}
	defer r.Body.Close()

	response := s.mcp.HandleMessage(r.Context(), body)
	if response == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	respondJSON(w, http.StatusOK, response)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Warn("encoding http response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
