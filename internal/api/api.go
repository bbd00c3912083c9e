package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"recruiter-chat-backend/internal/chat"
	"recruiter-chat-backend/internal/database"
	"recruiter-chat-backend/pkg/api"
)

// chatRequestLimit bounds how many chat calls a single address can make per
// minute.
const chatRequestLimit = 30

type ChatService struct {
	store        *chat.Store
	orchestrator *chat.Orchestrator
}

func NewChatService(store *chat.Store, orchestrator *chat.Orchestrator) *ChatService {
	return &ChatService{store: store, orchestrator: orchestrator}
}

func (s *ChatService) AddRoutes(r chi.Router) {
	r.Get("/", RestHandler(s.Root))
	r.Route("/api", func(r chi.Router) {
		r.With(httprate.LimitByIP(chatRequestLimit, time.Minute)).
			Post("/chat", RestHandler(s.Chat))
		r.Get("/health", RestHandler(s.Health))
		r.Get("/sessions", RestHandler(s.GetSessions))
		r.Get("/sessions/{session_id}/history", RestHandler(s.GetHistory))
	})
}

func (s *ChatService) Root(r *http.Request) (any, error) {
	return api.RootResponse{Message: "Recruiter Chat API is running!"}, nil
}

func (s *ChatService) Chat(r *http.Request) (any, error) {
	req, err := ParseRequest[api.ChatRequest](r)
	if err != nil {
		return nil, err
	}

	if req.Message == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "missing required field: message")
	}

	// Callers normally supply their own opaque session id; mint one for those
	// that don't and hand it back in the response.
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply, err := s.orchestrator.Chat(r.Context(), sessionID, req.Message, req.RecruiterInfo)
	if err != nil {
		slog.Error("error processing chat", "session_id", sessionID, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error processing chat: %v", err)
	}

	return api.ChatResponse{Response: reply, SessionID: sessionID}, nil
}

func (s *ChatService) Health(r *http.Request) (any, error) {
	if err := s.store.Ping(r.Context()); err != nil {
		slog.Error("store ping failed", "error", err)
		return nil, CodedErrorf(http.StatusServiceUnavailable, "database connection failed: %v", err)
	}

	return api.HealthResponse{Status: "healthy", Timestamp: time.Now().UTC()}, nil
}

func (s *ChatService) GetSessions(r *http.Request) (any, error) {
	sessions, err := s.store.ListSessions(r.Context())
	if err != nil {
		slog.Error("error listing sessions", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error listing sessions")
	}

	resp := api.GetSessionsResponse{Sessions: make([]api.SessionSummary, 0, len(sessions))}
	for _, session := range sessions {
		resp.Sessions = append(resp.Sessions, sessionSummary(session))
	}

	return resp, nil
}

func (s *ChatService) GetHistory(r *http.Request) (any, error) {
	sessionID, err := URLParamString(r, "session_id")
	if err != nil {
		return nil, err
	}

	params, err := ParseRequestQueryParams[api.HistoryParams](r)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			return nil, CodedErrorf(http.StatusNotFound, "session not found")
		}
		slog.Error("error getting session", "session_id", sessionID, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error retrieving session")
	}

	var turns []database.ChatTurn
	if params.Limit > 0 {
		turns, err = s.store.RecentTurns(r.Context(), sessionID, params.Limit)
	} else {
		turns, err = s.store.Transcript(r.Context(), sessionID)
	}
	if err != nil {
		slog.Error("error fetching history", "session_id", sessionID, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error retrieving chat history")
	}

	resp := make([]api.TurnItem, 0, len(turns))
	for _, turn := range turns {
		resp = append(resp, api.TurnItem{
			Role:      turn.Role,
			Content:   turn.Content,
			Timestamp: turn.Timestamp.Format("2006-01-02 15:04:05"),
		})
	}

	return resp, nil
}

func sessionSummary(session database.ChatSession) api.SessionSummary {
	summary := api.SessionSummary{
		SessionID: session.SessionID,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}

	if len(session.RecruiterInfo) > 0 {
		var info api.RecruiterInfo
		if err := json.Unmarshal(session.RecruiterInfo, &info); err == nil {
			summary.RecruiterInfo = &info
		}
	}

	return summary
}
