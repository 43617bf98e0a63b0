package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 5000
	MaxLocationLength    = 255
)

// EventStatus represents the moderation state of an event.
type EventStatus string

const (
	StatusPending  EventStatus = "pending"
	StatusApproved EventStatus = "approved"
	StatusRejected EventStatus = "rejected"
)

// EventCategory is the closed set of event categories.
type EventCategory string

const (
	CategoryConference EventCategory = "conference"
	CategoryWorkshop   EventCategory = "workshop"
	CategoryMeetup     EventCategory = "meetup"
	CategoryConcert    EventCategory = "concert"
	CategorySport      EventCategory = "sport"
	CategoryBirthday   EventCategory = "birthday"
	CategoryOther      EventCategory = "other"
)

// EventCategories lists every valid category.
var EventCategories = []EventCategory{
	CategoryConference,
	CategoryWorkshop,
	CategoryMeetup,
	CategoryConcert,
	CategorySport,
	CategoryBirthday,
	CategoryOther,
}

func isValidCategory(c EventCategory) bool {
	for _, valid := range EventCategories {
		if c == valid {
			return true
		}
	}
	return false
}

// Event is the core domain entity: a proposed gathering with a capacity
// bound, a moderation status, and a set of registered participants.
type Event struct {
	ID           uuid.UUID
	Title        string
	Description  string
	Location     string
	Date         time.Time
	Category     EventCategory
	Capacity     int
	Participants []uuid.UUID
	Status       EventStatus
	CreatorID    uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// EventParams holds the input for creating a new event.
type EventParams struct {
	Title       string
	Description string
	Location    string
	Date        time.Time
	Category    EventCategory
	Capacity    int
	CreatorID   uuid.UUID
}

func (p *EventParams) validate() error {
	switch {
	case p.Title == "":
		return apperrors.ErrTitleRequired
	case len(p.Title) > MaxTitleLength:
		return apperrors.ErrTitleTooLong
	case p.Description == "":
		return apperrors.ErrDescriptionRequired
	case len(p.Description) > MaxDescriptionLength:
		return apperrors.ErrDescriptionTooLong
	case p.Location == "":
		return apperrors.ErrLocationRequired
	case p.Date.IsZero():
		return apperrors.ErrDateRequired
	case p.Capacity < 1:
		return apperrors.ErrInvalidCapacity
	}
	if !isValidCategory(p.Category) {
		return apperrors.ErrInvalidCategory
	}
	return nil
}

// NewEvent is a factory function to create a valid new event.
// Every event starts its life pending moderation.
func NewEvent(params EventParams) (*Event, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	return &Event{
		ID:          uuid.New(),
		Title:       params.Title,
		Description: params.Description,
		Location:    params.Location,
		Date:        params.Date,
		Category:    params.Category,
		Capacity:    params.Capacity,
		Status:      StatusPending,
		CreatorID:   params.CreatorID,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// AvailableSpots returns the number of free seats. Computed, never stored.
func (e *Event) AvailableSpots() int {
	spots := e.Capacity - len(e.Participants)
	if spots < 0 {
		return 0
	}
	return spots
}

// IsFull reports whether the participant set has reached capacity.
func (e *Event) IsFull() bool {
	return len(e.Participants) >= e.Capacity
}

// HasParticipant reports whether the identity is in the participant set.
func (e *Event) HasParticipant(userID uuid.UUID) bool {
	for _, id := range e.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// IsCreatedBy reports whether the identity created this event.
func (e *Event) IsCreatedBy(userID uuid.UUID) bool {
	return e.CreatorID == userID
}

// VisibleTo implements the moderation visibility rule: a non-approved event
// is visible only to its creator and to moderators. Callers must re-evaluate
// this on every read; status can change between requests.
func (e *Event) VisibleTo(viewerID uuid.UUID, isModerator bool) bool {
	if e.Status == StatusApproved {
		return true
	}
	return isModerator || e.IsCreatedBy(viewerID)
}

// ApplyEdit replaces the event's content and resets its status to pending,
// regardless of the current status. Only the creator may edit; that check
// belongs to the service layer.
func (e *Event) ApplyEdit(params EventParams) error {
	params.CreatorID = e.CreatorID
	if err := params.validate(); err != nil {
		return err
	}
	// The participant set must never exceed capacity, so an edit cannot
	// shrink capacity below the seats already taken.
	if params.Capacity < len(e.Participants) {
		return apperrors.ErrCapacityTooSmall
	}

	e.Title = params.Title
	e.Description = params.Description
	e.Location = params.Location
	e.Date = params.Date
	e.Category = params.Category
	e.Capacity = params.Capacity
	e.Status = StatusPending
	now := time.Now().UTC()
	e.UpdatedAt = &now
	return nil
}

// Approve transitions pending|rejected -> approved.
func (e *Event) Approve() error {
	if e.Status == StatusApproved {
		return apperrors.ErrInvalidStatusTransition
	}
	e.Status = StatusApproved
	now := time.Now().UTC()
	e.UpdatedAt = &now
	return nil
}

// Reject transitions pending|approved -> rejected.
func (e *Event) Reject() error {
	if e.Status == StatusRejected {
		return apperrors.ErrInvalidStatusTransition
	}
	e.Status = StatusRejected
	now := time.Now().UTC()
	e.UpdatedAt = &now
	return nil
}
