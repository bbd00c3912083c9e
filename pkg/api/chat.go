package api

import "time"

// RecruiterInfo is optional caller-supplied metadata recorded when a session
// is first created. All fields are optional and unvalidated.
type RecruiterInfo struct {
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
}

type ChatRequest struct {
	Message       string         `json:"message"`
	SessionID     string         `json:"session_id"`
	RecruiterInfo *RecruiterInfo `json:"recruiter_info,omitempty"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type RootResponse struct {
	Message string `json:"message"`
}

type SessionSummary struct {
	SessionID     string         `json:"session_id"`
	RecruiterInfo *RecruiterInfo `json:"recruiter_info,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type GetSessionsResponse struct {
	Sessions []SessionSummary `json:"sessions"`
}

type HistoryParams struct {
	Limit int `schema:"limit"`
}

type TurnItem struct {
	Role      string `json:"role"` // 'user' or 'assistant'
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}
