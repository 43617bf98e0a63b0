package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
)

// UserRepository is the port for identity persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool, reason string) (*domain.User, error)
}

// ListEventsFilter narrows an event listing. Nil fields are ignored.
type ListEventsFilter struct {
	Category *domain.EventCategory
	Location *string
	Status   *domain.EventStatus
	Limit    int // 0 means no limit
	Offset   int
}

// EventRepository is the port for event persistence.
//
// AddParticipant and RemoveParticipant must be atomic single-document
// updates: the capacity and uniqueness checks are evaluated by the store
// against the current row, never against a snapshot read by the caller.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) (*domain.Event, error)
	// Delete removes the event together with its messages and reports.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListEventsFilter) ([]*domain.Event, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Event, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error)

	// AddParticipant appends userID to the participant set if and only if the
	// event is approved, the identity is not already present, and the set is
	// below capacity. Errors: ErrEventNotFound, ErrEventNotApproved,
	// ErrAlreadyRegistered, ErrEventFull.
	AddParticipant(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error)
	// RemoveParticipant removes userID from the participant set.
	// Errors: ErrEventNotFound, ErrNotRegistered.
	RemoveParticipant(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error)
	// IsParticipant re-derives membership from the store. Room joins and chat
	// sends must call this rather than trusting any cached claim.
	IsParticipant(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
}

// MessageRepository is the port for chat message persistence.
type MessageRepository interface {
	// Create persists the message, assigning CreatedAt and Seq.
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	// ListByEventID returns all messages for an event in creation order
	// (createdAt, then insertion sequence for ties).
	ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*domain.Message, error)
}

// ReportRepository is the port for report persistence.
type ReportRepository interface {
	// Create persists a report. A second report for the same (event, reporter)
	// pair fails with ErrAlreadyReported.
	Create(ctx context.Context, report *domain.Report) (*domain.Report, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	List(ctx context.Context, status *domain.ReportStatus) ([]*domain.Report, error)
	Update(ctx context.Context, report *domain.Report) (*domain.Report, error)
}
