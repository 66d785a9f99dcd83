package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"courier/internal/domain/conversation"
	"courier/internal/domain/message"
	"courier/internal/repository"
	courier_errors "courier/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedMessage(t *testing.T, db *gorm.DB, conv conversation.Conversation, from, to uuid.UUID, body string, at time.Time) message.Message {
	t.Helper()
	m := message.Message{
		ID:             uuid.New(),
		SenderID:       from,
		ReceiverID:     to,
		ConversationID: conv.ID,
		Body:           sql.NullString{String: body, Valid: true},
		CreatedAt:      at,
		UpdatedAt:      at,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func TestHasExchangedEitherDirection(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewMessageRepository(db)
	ctx := context.Background()

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	conv := conversation.New(a, b)
	require.NoError(t, db.Create(&conv).Error)
	seedMessage(t, db, conv, a, b, "hi", time.Now())

	got, err := repo.HasExchanged(ctx, b, a)
	require.NoError(t, err)
	assert.True(t, got, "receiver counts as a participant")

	got, err = repo.HasExchanged(ctx, c, b)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestGetLatestMessagePicksNewest(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewMessageRepository(db)
	ctx := context.Background()

	a, b := uuid.New(), uuid.New()
	conv := conversation.New(a, b)
	require.NoError(t, db.Create(&conv).Error)

	base := time.Now()
	seedMessage(t, db, conv, a, b, "old", base.Add(-time.Minute))
	newest := seedMessage(t, db, conv, b, a, "new", base)

	got, err := repo.GetLatestMessage(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, newest.ID, got.ID)
}

func TestGetLatestMessageEmptyConversation(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewMessageRepository(db)

	_, err := repo.GetLatestMessage(context.Background(), uuid.New())
	assert.ErrorIs(t, err, courier_errors.ErrNotFound)
}

func TestGetThreadScopedToPair(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewMessageRepository(db)
	ctx := context.Background()

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	convAB := conversation.New(a, b)
	convAC := conversation.New(a, c)
	require.NoError(t, db.Create(&convAB).Error)
	require.NoError(t, db.Create(&convAC).Error)

	base := time.Now()
	seedMessage(t, db, convAB, a, b, "first", base)
	seedMessage(t, db, convAB, b, a, "second", base.Add(time.Second))
	seedMessage(t, db, convAC, a, c, "other thread", base.Add(2*time.Second))

	got, total, err := repo.GetThread(ctx, a, b, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Body.String)
	assert.Equal(t, "second", got[1].Body.String)
}
