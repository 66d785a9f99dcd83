package services

import (
	"context"

	"courier/pkg/logger"

	"github.com/google/uuid"
)

type ctxKey string

const userIDKey ctxKey = "actor_user_id"

// WithUserContext threads the authenticated actor's id through the request
// context. The logger's user_id field is set alongside so request logs can
// be correlated.
func WithUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, logger.UserIdKey, userID.String())
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}
