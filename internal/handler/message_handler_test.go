package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"courier/internal/domain/conversation"
	"courier/internal/domain/message"
	"courier/internal/domain/user"
	"courier/internal/events"
	"courier/internal/handler"
	"courier/internal/middleware"
	"courier/internal/repository"
	"courier/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type env struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *services.TokenService
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, events.Event, ...string) error { return nil }

type nopStore struct{}

func (nopStore) PutObject(_ context.Context, key, _ string, body io.Reader) (string, error) {
	_, err := io.Copy(io.Discard, body)
	return key, err
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&user.User{}, &conversation.Conversation{}, &message.Message{}))

	userRepo := repository.NewUserRepository(db)
	convRepo := repository.NewConversationRepository(db)
	msgRepo := repository.NewMessageRepository(db)

	tokens := services.NewTokenService("test-secret", 15)
	conversations := services.NewConversationService(convRepo, userRepo, msgRepo)
	uploads := services.NewUploadService(nopStore{}, 2*1024*1024)
	messages := services.NewMessageService(db, msgRepo, userRepo, conversations, uploads, nopPublisher{}, nil)

	router := gin.New()
	v1 := router.Group("/v1", middleware.AuthMiddleware(tokens))
	{
		v1.POST("/messages", handler.NewMessageHandler(messages).Send)
		v1.GET("/messages/:receiver_id", handler.NewMessageHandler(messages).ListThread)
		v1.GET("/conversations", handler.NewConversationHandler(conversations).List)
	}

	return &env{db: db, router: router, tokens: tokens}
}

func (e *env) createUser(t *testing.T, username string) user.User {
	t.Helper()
	u := user.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@courier.dev",
		PasswordHash: "x",
		DisplayName:  username,
		IsActive:     true,
	}
	require.NoError(t, e.db.Create(&u).Error)
	return u
}

func (e *env) do(t *testing.T, actor user.User, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	token, err := e.tokens.IssueAccessToken(actor.ID)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func form(values map[string]string) (io.Reader, string) {
	data := url.Values{}
	for k, v := range values {
		data.Set(k, v)
	}
	return strings.NewReader(data.Encode()), "application/x-www-form-urlencoded"
}

func TestSendMessageEndpoint(t *testing.T) {
	e := newEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")

	body, ct := form(map[string]string{"receiver_id": bob.ID.String(), "message": "hello bob"})
	w := e.do(t, alice, http.MethodPost, "/v1/messages", body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID             string  `json:"id"`
			SenderID       string  `json:"sender_id"`
			ReceiverID     string  `json:"receiver_id"`
			ConversationID string  `json:"conversation_id"`
			Message        *string `json:"message"`
			FilePath       *string `json:"file_path"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, alice.ID.String(), resp.Data.SenderID)
	assert.Equal(t, bob.ID.String(), resp.Data.ReceiverID)
	assert.NotEmpty(t, resp.Data.ConversationID)
	require.NotNil(t, resp.Data.Message)
	assert.Equal(t, "hello bob", *resp.Data.Message)
	assert.Nil(t, resp.Data.FilePath)
}

func TestSendMessageToSelfReturns403(t *testing.T) {
	e := newEnv(t)
	alice := e.createUser(t, "alice")

	body, ct := form(map[string]string{"receiver_id": alice.ID.String(), "message": "me"})
	w := e.do(t, alice, http.MethodPost, "/v1/messages", body, ct)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN_SELF_MESSAGE")
}

func TestSendMessageValidation(t *testing.T) {
	e := newEnv(t)
	alice := e.createUser(t, "alice")

	// Missing receiver_id.
	body, ct := form(map[string]string{"message": "no receiver"})
	w := e.do(t, alice, http.MethodPost, "/v1/messages", body, ct)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Receiver does not exist.
	body, ct = form(map[string]string{"receiver_id": uuid.New().String(), "message": "hi"})
	w = e.do(t, alice, http.MethodPost, "/v1/messages", body, ct)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSendMessageRequiresToken(t *testing.T) {
	e := newEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/messages", nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSendMessageWithFile(t *testing.T) {
	e := newEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("receiver_id", bob.ID.String()))
	part, err := mw.CreateFormFile("file", "note.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("attached"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := e.do(t, alice, http.MethodPost, "/v1/messages", &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			FilePath *string `json:"file_path"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.FilePath)
	assert.True(t, strings.HasSuffix(*resp.Data.FilePath, ".txt"))
}

func TestListThreadEndpoint(t *testing.T) {
	e := newEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	carol := e.createUser(t, "carol")

	for i := 0; i < 3; i++ {
		body, ct := form(map[string]string{"receiver_id": bob.ID.String(), "message": fmt.Sprintf("m%d", i)})
		w := e.do(t, alice, http.MethodPost, "/v1/messages", body, ct)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := e.do(t, alice, http.MethodGet, "/v1/messages/"+bob.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Messages []json.RawMessage `json:"messages"`
			Page     int               `json:"page"`
			PerPage  int               `json:"per_page"`
			Total    int64             `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Messages, 3)
	assert.Equal(t, 1, resp.Data.Page)
	assert.Equal(t, 20, resp.Data.PerPage)
	assert.EqualValues(t, 3, resp.Data.Total)

	// An outsider gets 403.
	w = e.do(t, carol, http.MethodGet, "/v1/messages/"+bob.ID.String(), nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListConversationsEndpoint(t *testing.T) {
	e := newEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")

	body, ct := form(map[string]string{"receiver_id": bob.ID.String(), "message": "hello"})
	w := e.do(t, alice, http.MethodPost, "/v1/messages", body, ct)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, bob, http.MethodGet, "/v1/conversations", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			User1 struct {
				Username string `json:"username"`
			} `json:"user1"`
			User2 struct {
				Username string `json:"username"`
			} `json:"user2"`
			LatestMessage *struct {
				Message *string `json:"message"`
			} `json:"latest_message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "alice", resp.Data[0].User1.Username)
	assert.Equal(t, "bob", resp.Data[0].User2.Username)
	require.NotNil(t, resp.Data[0].LatestMessage)
	require.NotNil(t, resp.Data[0].LatestMessage.Message)
	assert.Equal(t, "hello", *resp.Data[0].LatestMessage.Message)
}
