package services_test

import (
	"context"
	"io"
	"sync"
	"testing"

	"courier/internal/domain/conversation"
	"courier/internal/domain/message"
	"courier/internal/domain/user"
	"courier/internal/events"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A fresh :memory: database per connection; pin the pool to one so every
	// query sees the same schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&user.User{},
		&conversation.Conversation{},
		&message.Message{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) user.User {
	t.Helper()
	u := user.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@courier.dev",
		PasswordHash: "x",
		DisplayName:  username,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// capturePublisher records published events in place of the Redis publisher.
type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
	users  [][]string
}

func (p *capturePublisher) Publish(_ context.Context, event events.Event, userIDs ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	p.users = append(p.users, userIDs)
	return nil
}

// memoryStore stands in for the S3 client.
type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string][]byte)}
}

func (s *memoryStore) PutObject(_ context.Context, key, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return key, nil
}
