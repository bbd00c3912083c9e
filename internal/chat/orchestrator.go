package chat

import (
	"context"
	"time"

	"recruiter-chat-backend/internal/database"
	"recruiter-chat-backend/internal/llm"
	"recruiter-chat-backend/pkg/api"
)

// ContextWindowTurns bounds how many stored turns are sent to the completion
// provider on each call. Keeps token cost and request latency bounded.
const ContextWindowTurns = 10

// Orchestrator runs one chat call end to end: resolve the session, rebuild
// the context window from storage, call the completion provider, persist the
// resulting turn pair. It holds no per-session state between calls, so any
// instance can serve any session.
type Orchestrator struct {
	store     *Store
	completer llm.Completer
}

func NewOrchestrator(store *Store, completer llm.Completer) *Orchestrator {
	return &Orchestrator{store: store, completer: completer}
}

func (o *Orchestrator) Chat(ctx context.Context, sessionID, message string, info *api.RecruiterInfo) (string, error) {
	if _, err := o.store.GetOrCreate(ctx, sessionID, info); err != nil {
		return "", err
	}

	recent, err := o.store.RecentTurns(ctx, sessionID, ContextWindowTurns)
	if err != nil {
		return "", err
	}

	history := make([]llm.Message, len(recent))
	for i, turn := range recent {
		history[i] = llm.Message{Role: turn.Role, Content: turn.Content}
	}

	reply, err := o.completer.Complete(ctx, history, message)
	if err != nil {
		return "", err
	}

	// The user turn is only persisted together with the assistant turn, so a
	// failed completion leaves the transcript untouched.
	now := time.Now().UTC()
	turns := []database.ChatTurn{
		{Role: database.RoleUser, Content: message, Timestamp: now},
		{Role: database.RoleAssistant, Content: reply, Timestamp: now},
	}
	if err := o.store.AppendTurns(ctx, sessionID, turns); err != nil {
		return "", err
	}

	return reply, nil
}
