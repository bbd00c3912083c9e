package chat

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"recruiter-chat-backend/internal/database"
	"recruiter-chat-backend/pkg/api"
)

func createDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.GetMigrator(db).Migrate())

	return db
}

func TestGetOrCreateSession(t *testing.T) {
	store := NewStore(createDB(t))
	ctx := context.Background()

	session, err := store.GetOrCreate(ctx, "s1", &api.RecruiterInfo{Company: "Acme", Name: "Jordan"})
	require.NoError(t, err)
	assert.Equal(t, "s1", session.SessionID)
	assert.Contains(t, string(session.RecruiterInfo), "Acme")

	turns, err := store.Transcript(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, turns)

	// Recruiter info is recorded at creation only; later values are ignored.
	again, err := store.GetOrCreate(ctx, "s1", &api.RecruiterInfo{Company: "Globex"})
	require.NoError(t, err)
	assert.Contains(t, string(again.RecruiterInfo), "Acme")
	assert.NotContains(t, string(again.RecruiterInfo), "Globex")

	sessions, err := store.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestGetOrCreateWithoutRecruiterInfo(t *testing.T) {
	store := NewStore(createDB(t))

	session, err := store.GetOrCreate(context.Background(), "s1", nil)
	require.NoError(t, err)
	assert.Equal(t, "s1", session.SessionID)
	assert.Empty(t, session.RecruiterInfo)
}

func TestGetSessionNotFound(t *testing.T) {
	store := NewStore(createDB(t))

	_, err := store.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAppendTurns(t *testing.T) {
	store := NewStore(createDB(t))
	ctx := context.Background()

	created, err := store.GetOrCreate(ctx, "s1", nil)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	now := time.Now().UTC()
	err = store.AppendTurns(ctx, "s1", []database.ChatTurn{
		{Role: database.RoleUser, Content: "hello", Timestamp: now},
		{Role: database.RoleAssistant, Content: "hi there", Timestamp: now},
	})
	require.NoError(t, err)

	turns, err := store.Transcript(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, database.RoleUser, turns[0].Role)
	assert.Equal(t, "hello", turns[0].Content)
	assert.Equal(t, database.RoleAssistant, turns[1].Role)
	assert.Equal(t, "hi there", turns[1].Content)

	session, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, session.UpdatedAt.After(created.UpdatedAt))
}

func TestAppendTurnsRollsBackOnFailure(t *testing.T) {
	db := createDB(t)
	store := NewStore(db)
	ctx := context.Background()

	_, err := store.GetOrCreate(ctx, "s1", nil)
	require.NoError(t, err)

	// Make the updated_at bump, the last statement in the transaction, fail
	// after the turn rows were already inserted.
	require.NoError(t, db.Exec("DROP TABLE chat_sessions").Error)

	now := time.Now().UTC()
	err = store.AppendTurns(ctx, "s1", []database.ChatTurn{
		{Role: database.RoleUser, Content: "hello", Timestamp: now},
		{Role: database.RoleAssistant, Content: "hi there", Timestamp: now},
	})
	require.Error(t, err)

	// The whole pair rolls back; no half-applied turns remain.
	turns, err := store.Transcript(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestAppendTurnsEmptyIsNoop(t *testing.T) {
	store := NewStore(createDB(t))
	ctx := context.Background()

	_, err := store.GetOrCreate(ctx, "s1", nil)
	require.NoError(t, err)

	require.NoError(t, store.AppendTurns(ctx, "s1", nil))

	turns, err := store.Transcript(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestRecentTurns(t *testing.T) {
	store := NewStore(createDB(t))
	ctx := context.Background()

	_, err := store.GetOrCreate(ctx, "s1", nil)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		err := store.AppendTurns(ctx, "s1", []database.ChatTurn{
			{Role: database.RoleUser, Content: fmt.Sprintf("question %d", i), Timestamp: time.Now().UTC()},
			{Role: database.RoleAssistant, Content: fmt.Sprintf("answer %d", i), Timestamp: time.Now().UTC()},
		})
		require.NoError(t, err)
	}

	turns, err := store.RecentTurns(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 10)

	// Last 10 of 20 turns, still in chronological order.
	assert.Equal(t, "question 5", turns[0].Content)
	assert.Equal(t, "answer 9", turns[9].Content)
	for i := 0; i < 9; i++ {
		assert.Less(t, turns[i].ID, turns[i+1].ID)
	}

	all, err := store.RecentTurns(ctx, "s1", 100)
	require.NoError(t, err)
	assert.Len(t, all, 20)
}

func TestPing(t *testing.T) {
	store := NewStore(createDB(t))
	assert.NoError(t, store.Ping(context.Background()))
}
