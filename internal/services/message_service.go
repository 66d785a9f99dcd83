package services

import (
	"context"
	"database/sql"
	"time"

	"courier/internal/domain/message"
	"courier/internal/events"
	"courier/internal/repository"
	courier_errors "courier/pkg/errors"
	"courier/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ThreadPageSize is the fixed page size for thread reads.
const ThreadPageSize = 20

type MessageService struct {
	db            *gorm.DB
	messageRepo   repository.MessageRepository
	userRepo      repository.UserRepository
	conversations *ConversationService
	uploads       *UploadService
	publisher     events.Publisher
	log           *logger.Logger
}

type SendInput struct {
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Body       string
	File       *FileUpload
}

type ThreadPage struct {
	Messages   []message.Message
	Page       int
	PerPage    int
	Total      int64
	TotalPages int64
}

func NewMessageService(db *gorm.DB, messageRepo repository.MessageRepository, userRepo repository.UserRepository, conversations *ConversationService, uploads *UploadService, publisher events.Publisher, log *logger.Logger) *MessageService {
	return &MessageService{
		db:            db,
		messageRepo:   messageRepo,
		userRepo:      userRepo,
		conversations: conversations,
		uploads:       uploads,
		publisher:     publisher,
		log:           log,
	}
}

// Send persists a message from sender to receiver, creating the pair's
// conversation on first contact. The message insert and the parent
// conversation's updated_at bump commit in one transaction, so a message is
// either fully linked or not persisted at all.
func (s *MessageService) Send(ctx context.Context, input SendInput) (message.Message, error) {
	if input.SenderID == input.ReceiverID {
		return message.Message{}, courier_errors.ErrSelfMessage
	}

	exists, err := s.userRepo.Exists(ctx, input.ReceiverID)
	if err != nil {
		return message.Message{}, err
	}
	if !exists {
		return message.Message{}, courier_errors.ErrInvalidInput
	}

	var filePath string
	if input.File != nil {
		filePath, err = s.uploads.Store(ctx, input.SenderID, *input.File)
		if err != nil {
			return message.Message{}, err
		}
	}

	conv, err := s.conversations.ResolveOrCreate(ctx, input.SenderID, input.ReceiverID)
	if err != nil {
		return message.Message{}, err
	}

	now := time.Now()
	msg := message.Message{
		ID:             uuid.New(),
		SenderID:       input.SenderID,
		ReceiverID:     input.ReceiverID,
		ConversationID: conv.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if input.Body != "" {
		msg.Body = sql.NullString{String: input.Body, Valid: true}
	}
	if filePath != "" {
		msg.FilePath = sql.NullString{String: filePath, Valid: true}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		msgRepo := repository.NewMessageRepository(tx)
		convRepo := repository.NewConversationRepository(tx)
		if err := msgRepo.Create(ctx, &msg); err != nil {
			return err
		}
		return convRepo.Touch(ctx, conv.ID, now)
	})
	if err != nil {
		return message.Message{}, err
	}

	s.notifySent(ctx, msg)
	return msg, nil
}

// notifySent publishes a MessageSent event to every participant except the
// sender. Failures are logged, never surfaced: delivery is fire-and-forget.
func (s *MessageService) notifySent(ctx context.Context, msg message.Message) {
	if s.publisher == nil {
		return
	}
	event := events.Event{
		Type:       events.EventMessageSent,
		Payload:    msg,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, event, msg.ReceiverID.String()); err != nil && s.log != nil {
		s.log.ErrorfCtx(ctx, "failed to publish %s event for message %s: %s", event.Type, msg.ID, err)
	}
}

// GetThread returns one page of the messages exchanged between the requester
// and the other user, oldest first. The requester must already be a party to
// the thread.
func (s *MessageService) GetThread(ctx context.Context, requesterID, otherID uuid.UUID, page int) (ThreadPage, error) {
	exchanged, err := s.messageRepo.HasExchanged(ctx, requesterID, otherID)
	if err != nil {
		return ThreadPage{}, err
	}
	if !exchanged {
		return ThreadPage{}, courier_errors.ErrUnauthorized
	}

	if page <= 0 {
		page = 1
	}
	messages, total, err := s.messageRepo.GetThread(ctx, requesterID, otherID, page, ThreadPageSize)
	if err != nil {
		return ThreadPage{}, err
	}

	return ThreadPage{
		Messages:   messages,
		Page:       page,
		PerPage:    ThreadPageSize,
		Total:      total,
		TotalPages: (total + ThreadPageSize - 1) / ThreadPageSize,
	}, nil
}
