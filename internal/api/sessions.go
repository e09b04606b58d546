package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/leaderboard"
	"github.com/pixil98/go-adventure/internal/session"
)

type sessionView struct {
	ID      string          `json:"id"`
	Created time.Time       `json:"created"`
	Status  commands.Status `json:"status"`
}

func newSessionView(s *session.Session) sessionView {
	return sessionView{ID: s.ID, Created: s.Created, Status: s.Status()}
}

type createSessionRequest struct {
	PlayerName string `json:"player_name"`
}

type createSessionResponse struct {
	sessionView
	Message string `json:"message"`
}

// commandRequest is either a structured command or a free text line.
type commandRequest struct {
	commands.Command
	Line string `json:"line,omitempty"`
}

type commandResponse struct {
	Message string          `json:"message"`
	Status  commands.Status `json:"status"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength != 0 {
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	sess, err := s.sessions.Create(r.Context(), req.PlayerName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, createSessionResponse{
		sessionView: newSessionView(sess),
		Message:     sess.Intro(),
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids := s.sessions.IDs()
	views := make([]sessionView, 0, len(ids))
	for _, id := range ids {
		sess, err := s.sessions.Get(id)
		if err != nil {
			// Destroyed since IDs was read.
			continue
		}
		views = append(views, newSessionView(sess))
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"count":    len(views),
		"sessions": views,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		respondLookupError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newSessionView(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if !s.sessions.Destroy(r.Context(), id) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("session %s not found", id))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", id),
	})
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req commandRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := req.Command
	if strings.TrimSpace(req.Line) != "" {
		cmd = commands.ParseLine(req.Line)
		cmd.PlayerName = req.PlayerName
	}

	out, err := s.sessions.Dispatch(r.Context(), id, cmd)
	if err != nil {
		respondLookupError(w, err)
		return
	}

	sess, err := s.sessions.Get(id)
	if err != nil {
		respondLookupError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, commandResponse{Message: out, Status: sess.Status()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	n := s.sessions.Reset(r.Context())

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "All sessions reset",
		"count":   n,
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.sessions.Leaderboard(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []leaderboard.Entry{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"count":   len(entries),
		"entries": entries,
	})
}

func respondLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, game.ErrNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}
