package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"recruiter-chat-backend/internal/database"
	"recruiter-chat-backend/pkg/api"
)

var (
	// ErrStoreUnavailable wraps failures to reach the backing store.
	ErrStoreUnavailable = errors.New("conversation store unavailable")

	ErrSessionNotFound = errors.New("session not found")
)

// Store persists sessions and their turn sequences.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GetOrCreate looks a session up by id, creating it with an empty turn
// sequence if absent. Recruiter info only applies on the create path; values
// supplied for an existing session are ignored.
func (s *Store) GetOrCreate(ctx context.Context, sessionID string, info *api.RecruiterInfo) (database.ChatSession, error) {
	var infoJSON datatypes.JSON
	if info != nil {
		b, err := json.Marshal(info)
		if err != nil {
			return database.ChatSession{}, fmt.Errorf("could not marshal recruiter info: %w", err)
		}
		infoJSON = datatypes.JSON(b)
	}

	now := time.Now().UTC()

	var session database.ChatSession
	err := s.db.WithContext(ctx).
		Where(database.ChatSession{SessionID: sessionID}).
		Attrs(database.ChatSession{
			RecruiterInfo: infoJSON,
			CreatedAt:     now,
			UpdatedAt:     now,
		}).
		FirstOrCreate(&session).Error
	if err != nil {
		return database.ChatSession{}, storeError("error resolving session", err)
	}

	return session, nil
}

func (s *Store) GetSession(ctx context.Context, sessionID string) (database.ChatSession, error) {
	var session database.ChatSession
	err := s.db.WithContext(ctx).First(&session, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.ChatSession{}, ErrSessionNotFound
	}
	if err != nil {
		return database.ChatSession{}, storeError("error getting session", err)
	}
	return session, nil
}

func (s *Store) ListSessions(ctx context.Context) ([]database.ChatSession, error) {
	var sessions []database.ChatSession
	if err := s.db.WithContext(ctx).Order("updated_at DESC").Find(&sessions).Error; err != nil {
		return nil, storeError("error listing sessions", err)
	}
	return sessions, nil
}

// RecentTurns returns the last limit turns in chronological order, or all
// turns if fewer exist.
func (s *Store) RecentTurns(ctx context.Context, sessionID string, limit int) ([]database.ChatTurn, error) {
	var turns []database.ChatTurn
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id DESC").
		Limit(limit).
		Find(&turns).Error
	if err != nil {
		return nil, storeError("error fetching recent turns", err)
	}

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// Transcript returns every turn of a session in chronological order.
func (s *Store) Transcript(ctx context.Context, sessionID string) ([]database.ChatTurn, error) {
	var turns []database.ChatTurn
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&turns).Error
	if err != nil {
		return nil, storeError("error fetching transcript", err)
	}
	return turns, nil
}

// AppendTurns appends all given turns in order and bumps the session's
// updated_at, all inside one transaction so a user/assistant pair commits
// together or not at all.
func (s *Store) AppendTurns(ctx context.Context, sessionID string, turns []database.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		for i := range turns {
			turns[i].ID = 0
			turns[i].SessionID = sessionID
			if err := txn.Create(&turns[i]).Error; err != nil {
				return err
			}
		}

		return txn.Model(&database.ChatSession{SessionID: sessionID}).
			Update("updated_at", time.Now().UTC()).Error
	})
	if err != nil {
		return storeError("error appending turns", err)
	}
	return nil
}

// Ping reports whether the backing store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return storeError("error getting database handle", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return storeError("error pinging database", err)
	}
	return nil
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrStoreUnavailable, err))
}
