package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
)

func validEventParams(creatorID uuid.UUID) domain.EventParams {
	return domain.EventParams{
		Title:       "Go Meetup",
		Description: "Monthly Go meetup",
		Location:    "Turin",
		Date:        time.Now().Add(48 * time.Hour),
		Category:    domain.CategoryMeetup,
		Capacity:    30,
		CreatorID:   creatorID,
	}
}

func TestNewEvent(t *testing.T) {
	creatorID := uuid.New()

	tests := []struct {
		name    string
		mutate  func(*domain.EventParams)
		wantErr error
	}{
		{"valid params", func(p *domain.EventParams) {}, nil},
		{"empty title", func(p *domain.EventParams) { p.Title = "" }, apperrors.ErrTitleRequired},
		{"title too long", func(p *domain.EventParams) { p.Title = strings.Repeat("a", domain.MaxTitleLength+1) }, apperrors.ErrTitleTooLong},
		{"empty description", func(p *domain.EventParams) { p.Description = "" }, apperrors.ErrDescriptionRequired},
		{"empty location", func(p *domain.EventParams) { p.Location = "" }, apperrors.ErrLocationRequired},
		{"zero date", func(p *domain.EventParams) { p.Date = time.Time{} }, apperrors.ErrDateRequired},
		{"zero capacity", func(p *domain.EventParams) { p.Capacity = 0 }, apperrors.ErrInvalidCapacity},
		{"negative capacity", func(p *domain.EventParams) { p.Capacity = -5 }, apperrors.ErrInvalidCapacity},
		{"unknown category", func(p *domain.EventParams) { p.Category = "rave" }, apperrors.ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validEventParams(creatorID)
			tt.mutate(&params)

			event, err := domain.NewEvent(params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, event)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, event.ID)
			assert.Equal(t, domain.StatusPending, event.Status)
			assert.Equal(t, creatorID, event.CreatorID)
			assert.Empty(t, event.Participants)
		})
	}
}

func TestEvent_Capacity(t *testing.T) {
	event := &domain.Event{Capacity: 2}

	assert.Equal(t, 2, event.AvailableSpots())
	assert.False(t, event.IsFull())

	a, b := uuid.New(), uuid.New()
	event.Participants = []uuid.UUID{a}
	assert.Equal(t, 1, event.AvailableSpots())
	assert.True(t, event.HasParticipant(a))
	assert.False(t, event.HasParticipant(b))

	event.Participants = []uuid.UUID{a, b}
	assert.Equal(t, 0, event.AvailableSpots())
	assert.True(t, event.IsFull())
}

func TestEvent_VisibleTo(t *testing.T) {
	creatorID := uuid.New()
	strangerID := uuid.New()

	tests := []struct {
		name        string
		status      domain.EventStatus
		viewerID    uuid.UUID
		isModerator bool
		want        bool
	}{
		{"approved visible to stranger", domain.StatusApproved, strangerID, false, true},
		{"pending hidden from stranger", domain.StatusPending, strangerID, false, false},
		{"pending visible to creator", domain.StatusPending, creatorID, false, true},
		{"pending visible to moderator", domain.StatusPending, strangerID, true, true},
		{"rejected hidden from stranger", domain.StatusRejected, strangerID, false, false},
		{"rejected visible to creator", domain.StatusRejected, creatorID, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &domain.Event{Status: tt.status, CreatorID: creatorID}
			assert.Equal(t, tt.want, event.VisibleTo(tt.viewerID, tt.isModerator))
		})
	}
}

func TestEvent_ApplyEdit(t *testing.T) {
	creatorID := uuid.New()

	t.Run("edit resets approved to pending", func(t *testing.T) {
		event, err := domain.NewEvent(validEventParams(creatorID))
		require.NoError(t, err)
		require.NoError(t, event.Approve())
		require.Equal(t, domain.StatusApproved, event.Status)

		params := validEventParams(creatorID)
		params.Title = "Renamed Meetup"
		require.NoError(t, event.ApplyEdit(params))

		assert.Equal(t, "Renamed Meetup", event.Title)
		assert.Equal(t, domain.StatusPending, event.Status)
		assert.NotNil(t, event.UpdatedAt)
	})

	t.Run("capacity cannot drop below registered participants", func(t *testing.T) {
		event, err := domain.NewEvent(validEventParams(creatorID))
		require.NoError(t, err)
		require.NoError(t, event.Approve())
		event.Participants = []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

		params := validEventParams(creatorID)
		params.Capacity = 2
		assert.ErrorIs(t, event.ApplyEdit(params), apperrors.ErrCapacityTooSmall)

		assert.Equal(t, domain.StatusApproved, event.Status)
		assert.Equal(t, "Go Meetup", event.Title)
		assert.Len(t, event.Participants, 3)
	})

	t.Run("capacity may shrink to the registered count", func(t *testing.T) {
		event, err := domain.NewEvent(validEventParams(creatorID))
		require.NoError(t, err)
		event.Participants = []uuid.UUID{uuid.New(), uuid.New()}

		params := validEventParams(creatorID)
		params.Capacity = 2
		require.NoError(t, event.ApplyEdit(params))

		assert.Equal(t, 2, event.Capacity)
		assert.True(t, event.IsFull())
	})

	t.Run("invalid edit leaves the event untouched", func(t *testing.T) {
		event, err := domain.NewEvent(validEventParams(creatorID))
		require.NoError(t, err)
		require.NoError(t, event.Approve())

		params := validEventParams(creatorID)
		params.Capacity = 0
		assert.ErrorIs(t, event.ApplyEdit(params), apperrors.ErrInvalidCapacity)

		assert.Equal(t, domain.StatusApproved, event.Status)
		assert.Equal(t, "Go Meetup", event.Title)
	})
}

func TestEvent_ModerationTransitions(t *testing.T) {
	newEvent := func(t *testing.T) *domain.Event {
		t.Helper()
		event, err := domain.NewEvent(validEventParams(uuid.New()))
		require.NoError(t, err)
		return event
	}

	t.Run("pending to approved", func(t *testing.T) {
		event := newEvent(t)
		require.NoError(t, event.Approve())
		assert.Equal(t, domain.StatusApproved, event.Status)
	})

	t.Run("pending to rejected", func(t *testing.T) {
		event := newEvent(t)
		require.NoError(t, event.Reject())
		assert.Equal(t, domain.StatusRejected, event.Status)
	})

	t.Run("rejected to approved", func(t *testing.T) {
		event := newEvent(t)
		require.NoError(t, event.Reject())
		require.NoError(t, event.Approve())
		assert.Equal(t, domain.StatusApproved, event.Status)
	})

	t.Run("approved to rejected", func(t *testing.T) {
		event := newEvent(t)
		require.NoError(t, event.Approve())
		require.NoError(t, event.Reject())
		assert.Equal(t, domain.StatusRejected, event.Status)
	})

	t.Run("approve is not idempotent", func(t *testing.T) {
		event := newEvent(t)
		require.NoError(t, event.Approve())
		assert.ErrorIs(t, event.Approve(), apperrors.ErrInvalidStatusTransition)
	})

	t.Run("reject is not idempotent", func(t *testing.T) {
		event := newEvent(t)
		require.NoError(t, event.Reject())
		assert.ErrorIs(t, event.Reject(), apperrors.ErrInvalidStatusTransition)
	})
}
