package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
	"github.com/andreaG-student-its24/EventHub/internal/core/ports"
)

// ChatService guards room membership and relays messages to the room.
// Membership is always re-checked against the store, never taken from
// a cached session claim.
type ChatService struct {
	eventRepo   ports.EventRepository
	userRepo    ports.UserRepository
	messageRepo ports.MessageRepository
	broadcaster ports.Broadcaster
}

var _ ports.ChatService = (*ChatService)(nil)

// NewChatService creates a new chat service
func NewChatService(
	eventRepo ports.EventRepository,
	userRepo ports.UserRepository,
	messageRepo ports.MessageRepository,
	broadcaster ports.Broadcaster,
) ports.ChatService {
	return &ChatService{
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		messageRepo: messageRepo,
		broadcaster: broadcaster,
	}
}

// JoinRoom verifies the user may enter the event's room. The check
// runs against the current store state so a user unregistered after
// connecting cannot join.
func (s *ChatService) JoinRoom(ctx context.Context, eventID, userID uuid.UUID) error {
	if _, err := s.activeUser(ctx, userID); err != nil {
		return err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Status != domain.StatusApproved {
		return apperrors.ErrEventNotApproved
	}

	return s.requireRoomAccess(ctx, event, userID)
}

// SendMessage validates, persists and broadcasts a chat message.
// Membership and blocked status are re-validated on every send.
func (s *ChatService) SendMessage(ctx context.Context, params ports.SendMessageParams) (*domain.Message, error) {
	sender, err := s.activeUser(ctx, params.SenderID)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, params.EventID)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.StatusApproved {
		return nil, apperrors.ErrEventNotApproved
	}
	if err := s.requireRoomAccess(ctx, event, sender.ID); err != nil {
		return nil, err
	}

	message, err := domain.NewMessage(params.EventID, sender.ID, params.Text)
	if err != nil {
		return nil, err
	}

	stored, err := s.messageRepo.Create(ctx, message)
	if err != nil {
		return nil, err
	}

	signal := domain.Signal{
		Type:    domain.SignalChatMessage,
		EventID: event.ID,
		Payload: domain.NewMessageSnapshot(stored, sender),
	}
	// Delivery is best effort. The message is already persisted.
	_ = s.broadcaster.BroadcastToRoom(signal)

	return stored, nil
}

// History returns the event's messages in send order. Access mirrors
// the room rules exactly: the event must be approved, and the reader
// must be a participant, the creator or a moderator.
func (s *ChatService) History(ctx context.Context, eventID, userID uuid.UUID) ([]*domain.Message, error) {
	if _, err := s.activeUser(ctx, userID); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.StatusApproved {
		return nil, apperrors.ErrEventNotApproved
	}
	if err := s.requireRoomAccess(ctx, event, userID); err != nil {
		return nil, err
	}

	return s.messageRepo.ListByEventID(ctx, eventID)
}

func (s *ChatService) activeUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, apperrors.ErrUserBlocked
	}
	return user, nil
}

func (s *ChatService) requireRoomAccess(ctx context.Context, event *domain.Event, userID uuid.UUID) error {
	if event.IsCreatedBy(userID) {
		return nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsModerator() {
		return nil
	}

	isParticipant, err := s.eventRepo.IsParticipant(ctx, event.ID, userID)
	if err != nil {
		return err
	}
	if !isParticipant {
		return apperrors.ErrNotRoomMember
	}
	return nil
}
