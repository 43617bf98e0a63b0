package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
)

// AuthService defines the port for account registration and login.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
}

// CreateEventParams defines the input for proposing a new event.
type CreateEventParams struct {
	Title       string
	Description string
	Location    string
	Date        time.Time
	Category    domain.EventCategory
	Capacity    int
	CreatorID   uuid.UUID
}

// UpdateEventParams defines the input for a creator edit. Any edit resets the
// event to pending moderation.
type UpdateEventParams struct {
	EventID     uuid.UUID
	ActorID     uuid.UUID
	Title       string
	Description string
	Location    string
	Date        time.Time
	Category    domain.EventCategory
	Capacity    int
}

// ListEventsParams defines the input for listing events.
type ListEventsParams struct {
	ViewerID uuid.UUID
	Category *domain.EventCategory
	Location *string
	Status   *domain.EventStatus // honored for moderators only
	Limit    int                 // 0 means no limit
	Offset   int
}

// UserEvents groups an identity's dashboard: events it created and approved
// events it is registered to.
type UserEvents struct {
	Created    []*domain.Event
	Registered []*domain.Event
}

// EventService defines the core business operations for managing events.
type EventService interface {
	CreateEvent(ctx context.Context, params CreateEventParams) (*domain.Event, error)
	GetEvent(ctx context.Context, eventID, viewerID uuid.UUID) (*domain.Event, error)
	ListEvents(ctx context.Context, params ListEventsParams) ([]*domain.Event, error)
	UpdateEvent(ctx context.Context, params UpdateEventParams) (*domain.Event, error)
	DeleteEvent(ctx context.Context, eventID, actorID uuid.UUID) error
	GetUserEvents(ctx context.Context, userID uuid.UUID) (*UserEvents, error)
}

// ParticipationService enforces the capacity bound and fans out
// participation activity.
type ParticipationService interface {
	Register(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error)
	Unregister(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error)
}

// ModerationService drives the event moderation state machine.
type ModerationService interface {
	ApproveEvent(ctx context.Context, eventID, actorID uuid.UUID) (*domain.Event, error)
	RejectEvent(ctx context.Context, eventID, actorID uuid.UUID) (*domain.Event, error)
}

// SendMessageParams defines the input for sending a chat message.
type SendMessageParams struct {
	EventID  uuid.UUID
	SenderID uuid.UUID
	Text     string
}

// ChatService defines the message channel: room access validation, message
// persistence with room broadcast, and ordered history.
type ChatService interface {
	// JoinRoom re-checks current participation against the store and grants
	// or denies room access. Each join is independently validated.
	JoinRoom(ctx context.Context, eventID, userID uuid.UUID) error
	// SendMessage validates, persists, and broadcasts a chat message to the
	// event's room. Participation is re-validated at send time.
	SendMessage(ctx context.Context, params SendMessageParams) (*domain.Message, error)
	// History returns the event's messages in creation order. The requester
	// must be a current participant, the creator, or a moderator.
	History(ctx context.Context, eventID, requesterID uuid.UUID) ([]*domain.Message, error)
}

// CreateReportParams defines the input for reporting an event.
type CreateReportParams struct {
	EventID    uuid.UUID
	ReporterID uuid.UUID
	Reason     domain.ReportReason
	Details    string
}

// UpdateReportStatusParams defines the input for a moderator status change.
type UpdateReportStatusParams struct {
	ReportID uuid.UUID
	ActorID  uuid.UUID
	Status   domain.ReportStatus
}

// ReportService defines report creation and moderator handling.
type ReportService interface {
	CreateReport(ctx context.Context, params CreateReportParams) (*domain.Report, error)
	ListReports(ctx context.Context, actorID uuid.UUID, status *domain.ReportStatus) ([]*domain.Report, error)
	UpdateReportStatus(ctx context.Context, params UpdateReportStatusParams) (*domain.Report, error)
}

// AdminService defines the port for admin-only user management.
type AdminService interface {
	ListUsers(ctx context.Context, actorID uuid.UUID) ([]*domain.User, error)
	BlockUser(ctx context.Context, actorID, userID uuid.UUID, reason string) (*domain.User, error)
	UnblockUser(ctx context.Context, actorID, userID uuid.UUID) (*domain.User, error)
}

// Broadcaster is the port for best-effort, at-most-once fanout to connected
// sessions. Implementations must never block the triggering operation and
// never retry delivery.
type Broadcaster interface {
	// BroadcastToRoom delivers the signal to connections joined to the
	// signal's event room.
	BroadcastToRoom(signal domain.Signal) error
	// BroadcastGlobal delivers the signal to every connected session.
	BroadcastGlobal(signal domain.Signal) error
	// BroadcastToModerators delivers the signal to sessions bound to a
	// moderator identity, regardless of room membership.
	BroadcastToModerators(signal domain.Signal) error
}
