package repository

import (
	"context"
	"errors"
	"time"

	"courier/internal/domain/conversation"
	courier_errors "courier/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &PostgresConversationRepository{db: db}
}

func (r *PostgresConversationRepository) Create(ctx context.Context, c *conversation.Conversation) error {
	res := r.db.WithContext(ctx).Create(c)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return courier_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (conversation.Conversation, error) {
	var c conversation.Conversation
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return conversation.Conversation{}, courier_errors.ErrNotFound
		}
		return conversation.Conversation{}, err
	}
	return c, nil
}

// GetByPair looks up the conversation for an unordered pair of users. The
// pair_key column already encodes both orderings, so a single equality
// predicate covers (A,B) and (B,A).
func (r *PostgresConversationRepository) GetByPair(ctx context.Context, userA, userB uuid.UUID) (conversation.Conversation, error) {
	var c conversation.Conversation
	err := r.db.WithContext(ctx).
		Where("pair_key = ?", conversation.PairKey(userA, userB)).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return conversation.Conversation{}, courier_errors.ErrNotFound
		}
		return conversation.Conversation{}, err
	}
	return c, nil
}

func (r *PostgresConversationRepository) GetUserConversations(ctx context.Context, userID uuid.UUID) ([]conversation.Conversation, error) {
	var conversations []conversation.Conversation
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// Touch advances updated_at so the conversation list stays ordered by most
// recent activity rather than creation order.
func (r *PostgresConversationRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&conversation.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return courier_errors.ErrNotFound
	}
	return nil
}
