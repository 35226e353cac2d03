package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Label is the name shown above a bubble.
func (r Role) Label() string {
	if r == RoleUser {
		return "You"
	}
	return "StreamBot"
}

// Message is one bubble in the transcript. Messages are never mutated.
type Message struct {
	ID        string
	Role      Role
	Text      string
	Timestamp time.Time
}

func NewMessage(role Role, text string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}
