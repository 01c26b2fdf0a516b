// Package server exposes the chatbot over a small HTTP API.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/rs/cors"

	"github.com/rcliao/memchat/internal/chat"
)

// historyPageLimit bounds how many messages the history endpoint returns.
const historyPageLimit = 200

// Server handles the web API backed by one Bot instance.
type Server struct {
	bot    *chat.Bot
	logger *log.Logger
}

func New(bot *chat.Bot, logger *log.Logger) *Server {
	return &Server{bot: bot, logger: logger}
}

// Router builds the HTTP routes.
func (s *Server) Router() *chi.Mux {
	router := chi.NewRouter()
	router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"Content-Type", "Accept"},
	}).Handler)

	router.Get("/health", s.handleHealth)
	router.Post("/api/chat", s.handleChat)
	router.Get("/api/history", s.handleHistory)
	router.Post("/api/reset", s.handleReset)
	router.Get("/api/profile", s.handleProfile)
	return router
}

// Listen serves the API on addr until the listener fails.
func (s *Server) Listen(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return http.ListenAndServe(addr, s.Router())
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = chat.NewSessionID()
	}

	reply, err := s.bot.Chat(r.Context(), sessionID, req.Message)
	if err != nil {
		s.logger.Error("chat failed", "session", sessionID, "err", err)
		httpError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	writeJSON(w, chatResponse{Response: reply, SessionID: sessionID})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		httpError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	msgs, err := s.bot.History(r.Context(), sessionID, historyPageLimit)
	if err != nil {
		s.logger.Error("history failed", "session", sessionID, "err", err)
		httpError(w, http.StatusInternalServerError, "storage failure")
		return
	}

	out := make([]map[string]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, map[string]string{"role": m.Role, "content": m.Content})
	}
	writeJSON(w, map[string]interface{}{"messages": out})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		httpError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	if err := s.bot.ClearSession(r.Context(), sessionID); err != nil {
		s.logger.Error("reset failed", "session", sessionID, "err", err)
		httpError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.bot.Profile(r.Context())
	if err != nil {
		httpError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	notes, err := s.bot.Notes(r.Context())
	if err != nil {
		httpError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	if notes == nil {
		notes = []string{}
	}
	writeJSON(w, map[string]interface{}{"profile": profile, "notes": notes})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
