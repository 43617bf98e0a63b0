package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
	"github.com/andreaG-student-its24/EventHub/internal/core/ports"
)

// ModerationService drives the event moderation state machine.
type ModerationService struct {
	eventRepo ports.EventRepository
	userRepo  ports.UserRepository
}

var _ ports.ModerationService = (*ModerationService)(nil)

// NewModerationService creates a new moderation service
func NewModerationService(eventRepo ports.EventRepository, userRepo ports.UserRepository) ports.ModerationService {
	return &ModerationService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

// ApproveEvent transitions pending|rejected -> approved.
func (s *ModerationService) ApproveEvent(ctx context.Context, eventID, actorID uuid.UUID) (*domain.Event, error) {
	event, err := s.loadForModeration(ctx, eventID, actorID)
	if err != nil {
		return nil, err
	}

	if err := event.Approve(); err != nil {
		return nil, err
	}

	return s.eventRepo.Update(ctx, event)
}

// RejectEvent transitions pending|approved -> rejected.
func (s *ModerationService) RejectEvent(ctx context.Context, eventID, actorID uuid.UUID) (*domain.Event, error) {
	event, err := s.loadForModeration(ctx, eventID, actorID)
	if err != nil {
		return nil, err
	}

	if err := event.Reject(); err != nil {
		return nil, err
	}

	return s.eventRepo.Update(ctx, event)
}

func (s *ModerationService) loadForModeration(ctx context.Context, eventID, actorID uuid.UUID) (*domain.Event, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsModerator() {
		return nil, apperrors.ErrForbidden
	}

	return s.eventRepo.GetByID(ctx, eventID)
}
