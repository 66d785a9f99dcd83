package handler

import (
	"net/http"
	"strconv"

	"courier/internal/services"
	"courier/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Send handles POST /v1/messages. The request is multipart form data when a
// file rides along, plain form or JSON otherwise.
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.SendMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, httpdto.NewErrorResponse("receiver_id is required", "VALIDATION_ERROR"))
		return
	}

	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, httpdto.NewErrorResponse("invalid receiver_id", "VALIDATION_ERROR"))
		return
	}

	input := services.SendInput{
		SenderID:   userID,
		ReceiverID: receiverID,
		Body:       req.Message,
	}

	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, httpdto.NewErrorResponse("could not read file", "VALIDATION_ERROR"))
			return
		}
		defer file.Close()
		input.File = &services.FileUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Reader:      file,
		}
	}

	msg, err := h.service.Send(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.NewMessageResponse(msg)))
}

// ListThread handles GET /v1/messages/:receiver_id?page=N.
func (h *MessageHandler) ListThread(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	otherID, err := uuid.Parse(c.Param("receiver_id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, httpdto.NewErrorResponse("invalid receiver_id", "VALIDATION_ERROR"))
		return
	}

	page, err := parsePage(c.Query("page"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, httpdto.NewErrorResponse("invalid page", "VALIDATION_ERROR"))
		return
	}

	thread, err := h.service.GetThread(c.Request.Context(), userID, otherID, page)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.NewThreadResponse(thread)))
}

func parsePage(value string) (int, error) {
	if value == "" {
		return 1, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}
