package httpdto

import (
	"time"

	"courier/internal/services"
)

type ConversationResponse struct {
	ID            string           `json:"id"`
	User1         UserSummary      `json:"user1"`
	User2         UserSummary      `json:"user2"`
	LatestMessage *MessageResponse `json:"latest_message"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func NewConversationResponse(summary services.ConversationSummary) ConversationResponse {
	resp := ConversationResponse{
		ID:        summary.Conversation.ID.String(),
		User1:     NewUserSummary(summary.User1),
		User2:     NewUserSummary(summary.User2),
		CreatedAt: summary.Conversation.CreatedAt,
		UpdatedAt: summary.Conversation.UpdatedAt,
	}
	if summary.LatestMessage != nil {
		latest := NewMessageResponse(*summary.LatestMessage)
		resp.LatestMessage = &latest
	}
	return resp
}

func NewConversationListResponse(summaries []services.ConversationSummary) []ConversationResponse {
	out := make([]ConversationResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, NewConversationResponse(s))
	}
	return out
}
