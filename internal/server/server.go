// Package server exposes the room registry over HTTP: a small JSON
// API for play and a websocket stream for state pushes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/cardhouse/holdem/internal/game"
	"github.com/cardhouse/holdem/internal/room"
)

// Server serves the room API.
type Server struct {
	addr     string
	registry *room.Registry
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// New creates a server for the given registry.
func New(addr string, registry *room.Registry, logger *log.Logger) *Server {
	return &Server{
		addr:     addr,
		registry: registry,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Room codes and player tokens gate access, not origins.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("server"),
	}
}

// Handler returns the full route table. Tests mount it on httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/rooms", s.handleCreateRoom)
	mux.HandleFunc("POST /api/join", s.handleJoin)
	mux.HandleFunc("POST /api/start", s.handleStart)
	mux.HandleFunc("POST /api/action", s.handleAction)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

type joinRequest struct {
	Room string `json:"room"`
	Name string `json:"name"`
}

type actionRequest struct {
	Room   string `json:"room"`
	Token  string `json:"token"`
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

type tokenRequest struct {
	Room  string `json:"room"`
	Token string `json:"token"`
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	rm := s.registry.Create()
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "room": rm.ID})
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("name is required"))
		return
	}
	rm, err := s.registry.Get(req.Room)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	token, seat, err := rm.Join(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "token": token, "seat": seat})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rm, err := s.registry.Get(req.Room)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err := rm.Start(req.Token); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	action, err := game.ParseAction(req.Action)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rm, err := s.registry.Get(req.Room)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	out, err := rm.Act(req.Token, action, req.Amount)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	resp := map[string]any{"ok": true, "outcome": out.Kind.String()}
	if len(out.Results) > 0 {
		resp["results"] = out.Results
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	rm, err := s.registry.Get(r.URL.Query().Get("room"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	snap := rm.State(r.URL.Query().Get("token"))
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "state": snap})
}

// handleWebSocket upgrades the connection and pushes a snapshot on
// every state change until either side goes away.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	rm, err := s.registry.Get(r.URL.Query().Get("room"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	token := r.URL.Query().Get("token")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	updates, cancel := rm.Watch(token)
	defer cancel()

	// Reader only notices the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer conn.Close()
	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				// Room was reaped.
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "room closed"))
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

// statusFor maps room and engine errors onto HTTP statuses. Engine
// rejections are client mistakes, not server failures.
func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrUnknownRoom):
		return http.StatusNotFound
	case errors.Is(err, room.ErrUnknownPlayer):
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"ok": false, "error": err.Error()})
}
