package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
	"github.com/andreaG-student-its24/EventHub/internal/core/mocks"
	"github.com/andreaG-student-its24/EventHub/internal/core/ports"
	"github.com/andreaG-student-its24/EventHub/internal/core/services"
)

func validCreateParams(creatorID uuid.UUID) ports.CreateEventParams {
	return ports.CreateEventParams{
		Title:       "Go Meetup",
		Description: "Monthly meetup",
		Location:    "Turin",
		Date:        time.Now().Add(48 * time.Hour),
		Category:    domain.CategoryMeetup,
		Capacity:    30,
		CreatorID:   creatorID,
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	creatorID := uuid.New()

	t.Run("success starts pending", func(t *testing.T) {
		mockEvents := mocks.NewMockEventRepository()
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewEventService(mockEvents, mockUsers)

		mockUsers.On("GetByID", ctx, creatorID).Return(&domain.User{ID: creatorID}, nil)

		var created *domain.Event
		mockEvents.On("Create", ctx, mock.AnythingOfType("*domain.Event")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Event) }).
			Return(&domain.Event{Status: domain.StatusPending}, nil)

		event, err := svc.CreateEvent(ctx, validCreateParams(creatorID))

		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, event.Status)
		require.NotNil(t, created)
		assert.Equal(t, domain.StatusPending, created.Status)
		assert.Equal(t, creatorID, created.CreatorID)
		mockEvents.AssertExpectations(t)
	})

	t.Run("blocked creator", func(t *testing.T) {
		mockEvents := mocks.NewMockEventRepository()
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewEventService(mockEvents, mockUsers)

		mockUsers.On("GetByID", ctx, creatorID).Return(&domain.User{ID: creatorID, IsBlocked: true}, nil)

		event, err := svc.CreateEvent(ctx, validCreateParams(creatorID))

		assert.Nil(t, event)
		assert.ErrorIs(t, err, apperrors.ErrUserBlocked)
		mockEvents.AssertNotCalled(t, "Create")
	})

	t.Run("invalid capacity", func(t *testing.T) {
		mockEvents := mocks.NewMockEventRepository()
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewEventService(mockEvents, mockUsers)

		mockUsers.On("GetByID", ctx, creatorID).Return(&domain.User{ID: creatorID}, nil)

		params := validCreateParams(creatorID)
		params.Capacity = 0

		event, err := svc.CreateEvent(ctx, params)

		assert.Nil(t, event)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCapacity)
		mockEvents.AssertNotCalled(t, "Create")
	})

	t.Run("unknown category", func(t *testing.T) {
		mockEvents := mocks.NewMockEventRepository()
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewEventService(mockEvents, mockUsers)

		mockUsers.On("GetByID", ctx, creatorID).Return(&domain.User{ID: creatorID}, nil)

		params := validCreateParams(creatorID)
		params.Category = "rave"

		event, err := svc.CreateEvent(ctx, params)

		assert.Nil(t, event)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCategory)
	})
}

func TestEventService_GetEvent(t *testing.T) {
	ctx := context.Background()
	creatorID := uuid.New()
	eventID := uuid.New()

	pendingEvent := func() *domain.Event {
		return &domain.Event{ID: eventID, Status: domain.StatusPending, CreatorID: creatorID}
	}

	t.Run("pending visible to creator", func(t *testing.T) {
		mockEvents := mocks.NewMockEventRepository()
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewEventService(mockEvents, mockUsers)

		mockEvents.On("GetByID", ctx, eventID).Return(pendingEvent(), nil)
		mockUsers.On("GetByID", ctx, creatorID).Return(&domain.User{ID: creatorID}, nil)

		event, err := svc.GetEvent(ctx, eventID, creatorID)

		require.NoError(t, err)
		assert.Equal(t, eventID, event.ID)
	})

	t.Run("pending hidden from stranger", func(t *testing.T) {
		strangerID := uuid.New()
		mockEvents := mocks.NewMockEventRepository()
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewEventService(mockEvents, mockUsers)

		mockEvents.On("GetByID", ctx, eventID).Return(pendingEvent(), nil)
		mockUsers.On("GetByID", ctx, strangerID).Return(&domain.User{ID: strangerID}, nil)

		event, err := svc.GetEvent(ctx, eventID, strangerID)

		assert.Nil(t, event)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("pending visible to moderator", func(t *testing.T) {
		modID := uuid.New()
		mockEvents := mocks.NewMockEventRepository()
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewEventService(mockEvents, mockUsers)

		mockEvents.On("GetByID", ctx, eventID).Return(pendingEvent(), nil)
		mockUsers.On("GetByID", ctx, modID).Return(&domain.User{ID: modID, Role: domain.RoleAdmin}, nil)

		event, err := svc.GetEvent(ctx, eventID, modID)

		require.NoError(t, err)
		assert.Equal(t, eventID, event.ID)
	})

	t.Run("approved visible to anyone", func(t *testing.T) {
		strangerID := uuid.New()
		mockEvents := mocks.NewMockEventRepository()
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewEventService(mockEvents, mockUsers)

		mockEvents.On("GetByID", ctx, eventID).
			Return(&domain.Event{ID: eventID, Status: domain.StatusApproved, CreatorID: creatorID}, nil)
		mockUsers.On("GetByID", ctx, strangerID).Return(&domain.User{ID: strangerID}, nil)

		event, err := svc.GetEvent(ctx, eventID, strangerID)

		require.NoError(t, err)
		assert.Equal(t, eventID, event.ID)
	})
}

func TestEventService_ListEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("non-moderator is pinned to approved", func(t *testing.T) {
		viewerID := uuid.New()
		mockEvents := mocks.NewMockEventRepository()
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewEventService(mockEvents, mockUsers)

		mockUsers.On("GetByID", ctx, viewerID).Return(&domain.User{ID: viewerID}, nil)

		var gotFilter ports.ListEventsFilter
		mockEvents.On("List", ctx, mock.AnythingOfType("ports.ListEventsFilter")).
			Run(func(args mock.Arguments) { gotFilter = args.Get(1).(ports.ListEventsFilter) }).
			Return([]*domain.Event{}, nil)

		pending := domain.StatusPending
		_, err := svc.ListEvents(ctx, ports.ListEventsParams{
			ViewerID: viewerID,
			Status:   &pending,
			Limit:    21,
			Offset:   40,
		})

		require.NoError(t, err)
		require.NotNil(t, gotFilter.Status)
		assert.Equal(t, domain.StatusApproved, *gotFilter.Status)
		assert.Equal(t, 21, gotFilter.Limit)
		assert.Equal(t, 40, gotFilter.Offset)
	})

	t.Run("moderator may filter by any status", func(t *testing.T) {
		modID := uuid.New()
		mockEvents := mocks.NewMockEventRepository()
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewEventService(mockEvents, mockUsers)

		mockUsers.On("GetByID", ctx, modID).Return(&domain.User{ID: modID, Role: domain.RoleAdmin}, nil)

		var gotFilter ports.ListEventsFilter
		mockEvents.On("List", ctx, mock.AnythingOfType("ports.ListEventsFilter")).
			Run(func(args mock.Arguments) { gotFilter = args.Get(1).(ports.ListEventsFilter) }).
			Return([]*domain.Event{}, nil)

		pending := domain.StatusPending
		_, err := svc.ListEvents(ctx, ports.ListEventsParams{ViewerID: modID, Status: &pending})

		require.NoError(t, err)
		require.NotNil(t, gotFilter.Status)
		assert.Equal(t, domain.StatusPending, *gotFilter.Status)
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	creatorID := uuid.New()
	eventID := uuid.New()

	approvedEvent := func() *domain.Event {
		return &domain.Event{
			ID:        eventID,
			Title:     "Old Title",
			Status:    domain.StatusApproved,
			CreatorID: creatorID,
		}
	}

	updateParams := func(actorID uuid.UUID) ports.UpdateEventParams {
		return ports.UpdateEventParams{
			EventID:     eventID,
			ActorID:     actorID,
			Title:       "New Title",
			Description: "New description",
			Location:    "Milan",
			Date:        time.Now().Add(72 * time.Hour),
			Category:    domain.CategoryWorkshop,
			Capacity:    10,
		}
	}

	t.Run("creator edit resets status to pending", func(t *testing.T) {
		mockEvents := mocks.NewMockEventRepository()
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewEventService(mockEvents, mockUsers)

		mockEvents.On("GetByID", ctx, eventID).Return(approvedEvent(), nil)

		var updated *domain.Event
		mockEvents.On("Update", ctx, mock.AnythingOfType("*domain.Event")).
			Run(func(args mock.Arguments) { updated = args.Get(1).(*domain.Event) }).
			Return(&domain.Event{ID: eventID, Status: domain.StatusPending}, nil)

		_, err := svc.UpdateEvent(ctx, updateParams(creatorID))

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, domain.StatusPending, updated.Status)
		assert.Equal(t, "New Title", updated.Title)
	})

	t.Run("non-creator forbidden", func(t *testing.T) {
		mockEvents := mocks.NewMockEventRepository()
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewEventService(mockEvents, mockUsers)

		mockEvents.On("GetByID", ctx, eventID).Return(approvedEvent(), nil)

		event, err := svc.UpdateEvent(ctx, updateParams(uuid.New()))

		assert.Nil(t, event)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockEvents.AssertNotCalled(t, "Update")
	})

	t.Run("capacity below registered count is rejected unstored", func(t *testing.T) {
		mockEvents := mocks.NewMockEventRepository()
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewEventService(mockEvents, mockUsers)

		crowded := approvedEvent()
		crowded.Capacity = 5
		crowded.Participants = []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
		mockEvents.On("GetByID", ctx, eventID).Return(crowded, nil)

		params := updateParams(creatorID)
		params.Capacity = 2
		event, err := svc.UpdateEvent(ctx, params)

		assert.Nil(t, event)
		assert.ErrorIs(t, err, apperrors.ErrCapacityTooSmall)
		mockEvents.AssertNotCalled(t, "Update")
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	creatorID := uuid.New()
	eventID := uuid.New()

	event := func() *domain.Event {
		return &domain.Event{ID: eventID, Status: domain.StatusApproved, CreatorID: creatorID}
	}

	t.Run("creator may delete", func(t *testing.T) {
		mockEvents := mocks.NewMockEventRepository()
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewEventService(mockEvents, mockUsers)

		mockEvents.On("GetByID", ctx, eventID).Return(event(), nil)
		mockUsers.On("GetByID", ctx, creatorID).Return(&domain.User{ID: creatorID}, nil)
		mockEvents.On("Delete", ctx, eventID).Return(nil)

		require.NoError(t, svc.DeleteEvent(ctx, eventID, creatorID))
		mockEvents.AssertExpectations(t)
	})

	t.Run("moderator may delete", func(t *testing.T) {
		modID := uuid.New()
		mockEvents := mocks.NewMockEventRepository()
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewEventService(mockEvents, mockUsers)

		mockEvents.On("GetByID", ctx, eventID).Return(event(), nil)
		mockUsers.On("GetByID", ctx, modID).Return(&domain.User{ID: modID, Role: domain.RoleAdmin}, nil)
		mockEvents.On("Delete", ctx, eventID).Return(nil)

		require.NoError(t, svc.DeleteEvent(ctx, eventID, modID))
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		strangerID := uuid.New()
		mockEvents := mocks.NewMockEventRepository()
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewEventService(mockEvents, mockUsers)

		mockEvents.On("GetByID", ctx, eventID).Return(event(), nil)
		mockUsers.On("GetByID", ctx, strangerID).Return(&domain.User{ID: strangerID}, nil)

		err := svc.DeleteEvent(ctx, eventID, strangerID)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockEvents.AssertNotCalled(t, "Delete")
	})
}

func TestEventService_GetUserEvents(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	mockEvents := mocks.NewMockEventRepository()
	mockUsers := mocks.NewMockUserRepository()
	svc := services.NewEventService(mockEvents, mockUsers)

	created := []*domain.Event{{ID: uuid.New(), CreatorID: userID}}
	registered := []*domain.Event{{ID: uuid.New(), Status: domain.StatusApproved}}

	mockEvents.On("ListByCreator", ctx, userID).Return(created, nil)
	mockEvents.On("ListByParticipant", ctx, userID).Return(registered, nil)

	dashboard, err := svc.GetUserEvents(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, created, dashboard.Created)
	assert.Equal(t, registered, dashboard.Registered)
}
