package repository

import (
	"context"
	"time"

	"courier/internal/domain/conversation"
	"courier/internal/domain/message"
	"courier/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]user.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type ConversationRepository interface {
	Create(ctx context.Context, c *conversation.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (conversation.Conversation, error)
	GetByPair(ctx context.Context, userA, userB uuid.UUID) (conversation.Conversation, error)
	GetUserConversations(ctx context.Context, userID uuid.UUID) ([]conversation.Conversation, error)
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
}

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	GetThread(ctx context.Context, userA, userB uuid.UUID, page, limit int) ([]message.Message, int64, error)
	HasExchanged(ctx context.Context, userA, userB uuid.UUID) (bool, error)
	GetLatestMessage(ctx context.Context, conversationID uuid.UUID) (message.Message, error)
}
