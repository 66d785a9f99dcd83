package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"courier/internal/domain/conversation"
	"courier/internal/domain/message"
	"courier/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const devSeedPassword = "Password@123"

// SeedResult holds what SeedDevelopment created.
type SeedResult struct {
	Users        []*user.User
	Conversation *conversation.Conversation
	Messages     []*message.Message
}

// SeedDevelopment creates a handful of test users and one seeded thread so
// the API can be exercised right after `migrate up`. Existing usernames are
// reused rather than duplicated.
func SeedDevelopment() (*SeedResult, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not connected")
	}

	result := &SeedResult{}

	hash, err := bcrypt.GenerateFromPassword([]byte(devSeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	for _, name := range []string{"alice", "bob", "carol"} {
		u := &user.User{}
		err := DB.Where("username = ?", name).First(u).Error
		if err == nil {
			result.Users = append(result.Users, u)
			continue
		}

		now := time.Now()
		u = &user.User{
			ID:           uuid.New(),
			Username:     name,
			Email:        name + "@courier.dev",
			PasswordHash: string(hash),
			DisplayName:  name,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := DB.Create(u).Error; err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", name, err)
		}
		log.Printf("Seeded user %s (%s)", name, u.ID)
		result.Users = append(result.Users, u)
	}

	if len(result.Users) < 2 {
		return result, nil
	}
	alice, bob := result.Users[0], result.Users[1]

	conv := conversation.New(alice.ID, bob.ID)
	err = DB.Where("pair_key = ?", conv.PairKey).First(&conversation.Conversation{}).Error
	if err == nil {
		// Thread already seeded on a previous run.
		return result, nil
	}
	if err := DB.Create(&conv).Error; err != nil {
		return nil, fmt.Errorf("failed to seed conversation: %w", err)
	}
	result.Conversation = &conv

	bodies := []struct {
		from, to *user.User
		text     string
	}{
		{alice, bob, "hey, is this thing on?"},
		{bob, alice, "loud and clear"},
	}
	for i, b := range bodies {
		now := time.Now().Add(time.Duration(i) * time.Millisecond)
		m := &message.Message{
			ID:             uuid.New(),
			SenderID:       b.from.ID,
			ReceiverID:     b.to.ID,
			ConversationID: conv.ID,
			Body:           sql.NullString{String: b.text, Valid: true},
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := DB.Create(m).Error; err != nil {
			return nil, fmt.Errorf("failed to seed message: %w", err)
		}
		result.Messages = append(result.Messages, m)
	}

	if err := DB.Model(&conversation.Conversation{}).
		Where("id = ?", conv.ID).
		Update("updated_at", time.Now()).Error; err != nil {
		return nil, fmt.Errorf("failed to touch seeded conversation: %w", err)
	}

	return result, nil
}
