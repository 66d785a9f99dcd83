package message

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Message represents the messages table. Rows are immutable once inserted;
// there is no edit or delete path. Body and FilePath are both optional and
// may both be present or both absent.
type Message struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SenderID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_messages_pair"`
	ReceiverID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_messages_pair"`
	ConversationID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Body           sql.NullString `gorm:"column:message"`
	FilePath       sql.NullString
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
}

func (Message) TableName() string {
	return "messages"
}
