package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
)

// MaxMessageLength bounds chat message text.
const MaxMessageLength = 2000

// Message is a chat message scoped to one event. Messages are immutable and
// append-only; their total order within an event is CreatedAt, then the
// store-assigned Seq for ties.
type Message struct {
	ID        uuid.UUID
	EventID   uuid.UUID
	SenderID  uuid.UUID
	Text      string
	CreatedAt time.Time
	Seq       int64
}

// NewMessage validates and builds a chat message. The store assigns
// CreatedAt and Seq at insert time.
func NewMessage(eventID, senderID uuid.UUID, text string) (*Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, apperrors.ErrMessageTextRequired
	}
	if len(trimmed) > MaxMessageLength {
		return nil, apperrors.ErrMessageTooLong
	}

	return &Message{
		ID:       uuid.New(),
		EventID:  eventID,
		SenderID: senderID,
		Text:     trimmed,
	}, nil
}
