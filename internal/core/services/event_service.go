package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
	"github.com/andreaG-student-its24/EventHub/internal/core/ports"
)

// EventService implements business logic for event lifecycle management.
type EventService struct {
	eventRepo ports.EventRepository
	userRepo  ports.UserRepository
}

var _ ports.EventService = (*EventService)(nil)

// NewEventService creates a new event service
func NewEventService(eventRepo ports.EventRepository, userRepo ports.UserRepository) ports.EventService {
	return &EventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

// CreateEvent handles the use case for proposing a new event.
// Blocked identities cannot create events.
func (s *EventService) CreateEvent(ctx context.Context, params ports.CreateEventParams) (*domain.Event, error) {
	creator, err := s.userRepo.GetByID(ctx, params.CreatorID)
	if err != nil {
		return nil, err
	}
	if creator.IsBlocked {
		return nil, apperrors.ErrUserBlocked
	}

	event, err := domain.NewEvent(domain.EventParams{
		Title:       params.Title,
		Description: params.Description,
		Location:    params.Location,
		Date:        params.Date,
		Category:    params.Category,
		Capacity:    params.Capacity,
		CreatorID:   params.CreatorID,
	})
	if err != nil {
		return nil, err // Validation errors are returned here
	}

	return s.eventRepo.Create(ctx, event)
}

// GetEvent retrieves a single event, re-evaluating the moderation visibility
// rule for the viewer on every call.
func (s *EventService) GetEvent(ctx context.Context, eventID, viewerID uuid.UUID) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	if !event.VisibleTo(viewerID, viewer.IsModerator()) {
		return nil, apperrors.ErrForbidden
	}

	return event, nil
}

// ListEvents lists events visible to the viewer. Non-moderators only ever
// see approved events; moderators may filter by any status.
func (s *EventService) ListEvents(ctx context.Context, params ports.ListEventsParams) ([]*domain.Event, error) {
	viewer, err := s.userRepo.GetByID(ctx, params.ViewerID)
	if err != nil {
		return nil, err
	}

	filter := ports.ListEventsFilter{
		Category: params.Category,
		Location: params.Location,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}

	if viewer.IsModerator() {
		filter.Status = params.Status
	} else {
		approved := domain.StatusApproved
		filter.Status = &approved
	}

	return s.eventRepo.List(ctx, filter)
}

// UpdateEvent applies a creator edit. Any edit resets the event to pending,
// regardless of its current moderation status.
func (s *EventService) UpdateEvent(ctx context.Context, params ports.UpdateEventParams) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, params.EventID)
	if err != nil {
		return nil, err
	}

	if !event.IsCreatedBy(params.ActorID) {
		return nil, apperrors.ErrForbidden
	}

	if err := event.ApplyEdit(domain.EventParams{
		Title:       params.Title,
		Description: params.Description,
		Location:    params.Location,
		Date:        params.Date,
		Category:    params.Category,
		Capacity:    params.Capacity,
	}); err != nil {
		return nil, err
	}

	return s.eventRepo.Update(ctx, event)
}

// DeleteEvent destroys an event along with its messages and reports.
// Permitted for the creator or a moderator.
func (s *EventService) DeleteEvent(ctx context.Context, eventID, actorID uuid.UUID) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}

	if !event.IsCreatedBy(actorID) && !actor.IsModerator() {
		return apperrors.ErrForbidden
	}

	return s.eventRepo.Delete(ctx, eventID)
}

// GetUserEvents returns the identity's dashboard: events it created and
// approved events it is registered to.
func (s *EventService) GetUserEvents(ctx context.Context, userID uuid.UUID) (*ports.UserEvents, error) {
	created, err := s.eventRepo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}

	registered, err := s.eventRepo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ports.UserEvents{
		Created:    created,
		Registered: registered,
	}, nil
}
