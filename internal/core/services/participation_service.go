package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
	"github.com/andreaG-student-its24/EventHub/internal/core/ports"
)

// ParticipationService enforces the capacity bound on event registration.
//
// The capacity and uniqueness checks live in the store's atomic conditional
// update (EventRepository.AddParticipant), not here: two concurrent
// registrations must never both pass a check taken against a stale snapshot.
type ParticipationService struct {
	eventRepo   ports.EventRepository
	userRepo    ports.UserRepository
	broadcaster ports.Broadcaster
}

var _ ports.ParticipationService = (*ParticipationService)(nil)

// NewParticipationService creates a new participation service
func NewParticipationService(
	eventRepo ports.EventRepository,
	userRepo ports.UserRepository,
	broadcaster ports.Broadcaster,
) ports.ParticipationService {
	return &ParticipationService{
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		broadcaster: broadcaster,
	}
}

// Register adds the identity to the event's participant set.
func (s *ParticipationService) Register(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, apperrors.ErrUserBlocked
	}

	event, err := s.eventRepo.AddParticipant(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	s.fanOutActivity(eventID, userID, domain.ActivityRegister)
	return event, nil
}

// Unregister removes the identity from the event's participant set.
func (s *ParticipationService) Unregister(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error) {
	event, err := s.eventRepo.RemoveParticipant(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	s.fanOutActivity(eventID, userID, domain.ActivityUnregister)
	return event, nil
}

// fanOutActivity emits the room-scoped and platform-wide participation
// signals. Fire-and-forget: delivery failures never fail the registration.
func (s *ParticipationService) fanOutActivity(eventID, userID uuid.UUID, activity string) {
	room := domain.NewRegistrationSignal(domain.SignalEventActivity, eventID, userID, activity)
	global := domain.NewRegistrationSignal(domain.SignalGlobalActivity, eventID, userID, activity)

	go func() {
		_ = s.broadcaster.BroadcastToRoom(room)
		_ = s.broadcaster.BroadcastGlobal(global)
	}()
}
