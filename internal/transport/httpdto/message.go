package httpdto

import (
	"time"

	"courier/internal/domain/message"
	"courier/internal/services"
)

type SendMessageRequest struct {
	ReceiverID string `form:"receiver_id" json:"receiver_id" binding:"required"`
	Message    string `form:"message" json:"message"`
}

type MessageResponse struct {
	ID             string    `json:"id"`
	SenderID       string    `json:"sender_id"`
	ReceiverID     string    `json:"receiver_id"`
	ConversationID string    `json:"conversation_id"`
	Message        *string   `json:"message"`
	FilePath       *string   `json:"file_path"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ThreadResponse struct {
	Messages   []MessageResponse `json:"messages"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
	Total      int64             `json:"total"`
	TotalPages int64             `json:"total_pages"`
}

func NewMessageResponse(m message.Message) MessageResponse {
	resp := MessageResponse{
		ID:             m.ID.String(),
		SenderID:       m.SenderID.String(),
		ReceiverID:     m.ReceiverID.String(),
		ConversationID: m.ConversationID.String(),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Body.Valid {
		body := m.Body.String
		resp.Message = &body
	}
	if m.FilePath.Valid {
		filePath := m.FilePath.String
		resp.FilePath = &filePath
	}
	return resp
}

func NewThreadResponse(page services.ThreadPage) ThreadResponse {
	messages := make([]MessageResponse, 0, len(page.Messages))
	for _, m := range page.Messages {
		messages = append(messages, NewMessageResponse(m))
	}
	return ThreadResponse{
		Messages:   messages,
		Page:       page.Page,
		PerPage:    page.PerPage,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
}
