package services

import (
	"context"
	"errors"

	"courier/internal/domain/conversation"
	"courier/internal/domain/message"
	"courier/internal/domain/user"
	"courier/internal/repository"
	courier_errors "courier/pkg/errors"

	"github.com/google/uuid"
)

type ConversationService struct {
	convRepo repository.ConversationRepository
	userRepo repository.UserRepository
	msgRepo  repository.MessageRepository
}

// ConversationSummary is a conversation stitched with its two participant
// users and its single most recent message, as returned by the list endpoint.
type ConversationSummary struct {
	Conversation  conversation.Conversation
	User1         user.User
	User2         user.User
	LatestMessage *message.Message
}

func NewConversationService(convRepo repository.ConversationRepository, userRepo repository.UserRepository, msgRepo repository.MessageRepository) *ConversationService {
	return &ConversationService{
		convRepo: convRepo,
		userRepo: userRepo,
		msgRepo:  msgRepo,
	}
}

// ResolveOrCreate returns the unique conversation for the unordered pair
// (userA, userB), creating it with userA as the initiating side when none
// exists. Callers must ensure userA != userB.
//
// The find-then-create window is closed by the unique pair_key index: when a
// concurrent first-contact send wins the insert, the duplicate-key failure
// here degrades into a fetch of the row the winner created.
func (s *ConversationService) ResolveOrCreate(ctx context.Context, userA, userB uuid.UUID) (conversation.Conversation, error) {
	c, err := s.convRepo.GetByPair(ctx, userA, userB)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, courier_errors.ErrNotFound) {
		return conversation.Conversation{}, err
	}

	created := conversation.New(userA, userB)
	err = s.convRepo.Create(ctx, &created)
	if err == nil {
		return created, nil
	}
	if errors.Is(err, courier_errors.ErrAlreadyExists) {
		return s.convRepo.GetByPair(ctx, userA, userB)
	}
	return conversation.Conversation{}, err
}

// ListConversations returns every conversation the user takes part in,
// most recently touched first. Participants and the latest message are
// stitched in explicitly rather than through relationship loading.
func (s *ConversationService) ListConversations(ctx context.Context, userID uuid.UUID) ([]ConversationSummary, error) {
	conversations, err := s.convRepo.GetUserConversations(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(conversations) == 0 {
		return []ConversationSummary{}, nil
	}

	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, c := range conversations {
		for _, id := range []uuid.UUID{c.User1ID, c.User2ID} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for _, c := range conversations {
		summary := ConversationSummary{
			Conversation: c,
			User1:        byID[c.User1ID],
			User2:        byID[c.User2ID],
		}
		latest, err := s.msgRepo.GetLatestMessage(ctx, c.ID)
		if err == nil {
			summary.LatestMessage = &latest
		} else if !errors.Is(err, courier_errors.ErrNotFound) {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
