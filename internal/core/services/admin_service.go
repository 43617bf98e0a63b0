package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
	"github.com/andreaG-student-its24/EventHub/internal/core/ports"
)

// AdminService covers the moderator-only account management surface.
type AdminService struct {
	userRepo ports.UserRepository
}

var _ ports.AdminService = (*AdminService)(nil)

// NewAdminService creates a new admin service
func NewAdminService(userRepo ports.UserRepository) ports.AdminService {
	return &AdminService{userRepo: userRepo}
}

// ListUsers returns all users. Moderators only.
func (s *AdminService) ListUsers(ctx context.Context, actorID uuid.UUID) ([]*domain.User, error) {
	if err := s.requireModerator(ctx, actorID); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

// BlockUser blocks an account. Admin accounts cannot be blocked.
func (s *AdminService) BlockUser(ctx context.Context, actorID, userID uuid.UUID, reason string) (*domain.User, error) {
	if err := s.requireModerator(ctx, actorID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsModerator() {
		return nil, apperrors.ErrCannotBlockAdmin
	}

	return s.userRepo.SetBlocked(ctx, userID, true, reason)
}

// UnblockUser lifts a block.
func (s *AdminService) UnblockUser(ctx context.Context, actorID, userID uuid.UUID) (*domain.User, error) {
	if err := s.requireModerator(ctx, actorID); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	return s.userRepo.SetBlocked(ctx, userID, false, "")
}

func (s *AdminService) requireModerator(ctx context.Context, actorID uuid.UUID) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsModerator() {
		return apperrors.ErrForbidden
	}
	return nil
}
