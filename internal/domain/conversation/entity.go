package conversation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Conversation represents the conversations table. A row pairs the two users
// who have exchanged at least one message; User1ID holds the side that sent
// first. The pair is unordered: a conversation between A and B is the same
// row regardless of which column holds which id.
type Conversation struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	User1ID uuid.UUID `gorm:"type:uuid;not null"`
	User2ID uuid.UUID `gorm:"type:uuid;not null"`

	// PairKey is the canonical order-independent form of (User1ID, User2ID).
	// The unique index on it is what keeps concurrent first-contact sends
	// from creating two rows for the same pair.
	PairKey string `gorm:"uniqueIndex;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Conversation) TableName() string {
	return "conversations"
}

// PairKey returns the canonical "min:max" representation of two user ids.
func PairKey(a, b uuid.UUID) string {
	left, right := a.String(), b.String()
	if strings.Compare(left, right) > 0 {
		left, right = right, left
	}
	return left + ":" + right
}

// New builds a conversation initiated by user a towards user b.
func New(a, b uuid.UUID) Conversation {
	now := time.Now()
	return Conversation{
		ID:        uuid.New(),
		User1ID:   a,
		User2ID:   b,
		PairKey:   PairKey(a, b),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
