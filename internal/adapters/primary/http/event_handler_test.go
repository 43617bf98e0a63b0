package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	mw "github.com/andreaG-student-its24/EventHub/internal/adapters/primary/http/middleware"
	"github.com/andreaG-student-its24/EventHub/internal/auth"
	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
	"github.com/andreaG-student-its24/EventHub/internal/core/mocks"
	"github.com/andreaG-student-its24/EventHub/internal/core/ports"
)

type eventHandlerFixture struct {
	eventService         *mocks.MockEventService
	participationService *mocks.MockParticipationService
	moderationService    *mocks.MockModerationService
	chatService          *mocks.MockChatService
	reportService        *mocks.MockReportService
	tokenManager         *auth.TokenManager
	router               chi.Router
}

func newEventHandlerFixture() *eventHandlerFixture {
	f := &eventHandlerFixture{
		eventService:         mocks.NewMockEventService(),
		participationService: mocks.NewMockParticipationService(),
		moderationService:    mocks.NewMockModerationService(),
		chatService:          mocks.NewMockChatService(),
		reportService:        mocks.NewMockReportService(),
		tokenManager:         auth.NewTokenManager("test-secret", time.Hour),
	}

	errorHandler := NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := NewEventHandler(
		f.eventService,
		f.participationService,
		f.moderationService,
		f.chatService,
		f.reportService,
		errorHandler,
	)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(mw.JWTMiddleware(f.tokenManager))
		r.Route("/events", handler.RegisterRoutes)
	})
	f.router = r
	return f
}

func (f *eventHandlerFixture) token(t *testing.T, userID uuid.UUID, role domain.Role) string {
	t.Helper()
	token, err := f.tokenManager.GenerateToken(userID, string(role))
	require.NoError(t, err)
	return token
}

func (f *eventHandlerFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

func TestEventHandler_Create(t *testing.T) {
	userID := uuid.New()

	body := EventRequest{
		Title:       "Go Meetup",
		Description: "Monthly meetup",
		Location:    "Turin",
		Date:        time.Now().Add(48 * time.Hour).UTC(),
		Category:    "meetup",
		Capacity:    30,
	}

	t.Run("created", func(t *testing.T) {
		f := newEventHandlerFixture()

		f.eventService.On("CreateEvent", mock.Anything, mock.MatchedBy(func(p ports.CreateEventParams) bool {
			return p.CreatorID == userID && p.Title == "Go Meetup"
		})).Return(&domain.Event{
			ID:        uuid.New(),
			Title:     "Go Meetup",
			Status:    domain.StatusPending,
			CreatorID: userID,
			Capacity:  30,
		}, nil)

		recorder := f.do(t, stdhttp.MethodPost, "/events", f.token(t, userID, domain.RoleUser), body)

		require.Equal(t, stdhttp.StatusCreated, recorder.Code)

		var resp EventResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "Go Meetup", resp.Title)
		assert.Equal(t, "pending", resp.Status)
	})

	t.Run("missing token", func(t *testing.T) {
		f := newEventHandlerFixture()

		recorder := f.do(t, stdhttp.MethodPost, "/events", "", body)

		require.Equal(t, stdhttp.StatusUnauthorized, recorder.Code)
		f.eventService.AssertNotCalled(t, "CreateEvent")
	})

	t.Run("validation error", func(t *testing.T) {
		f := newEventHandlerFixture()

		f.eventService.On("CreateEvent", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrInvalidCapacity)

		bad := body
		bad.Capacity = 0
		recorder := f.do(t, stdhttp.MethodPost, "/events", f.token(t, userID, domain.RoleUser), bad)

		require.Equal(t, stdhttp.StatusBadRequest, recorder.Code)
	})
}

func TestEventHandler_Register(t *testing.T) {
	userID := uuid.New()
	eventID := uuid.New()

	t.Run("seat taken", func(t *testing.T) {
		f := newEventHandlerFixture()

		f.participationService.On("Register", mock.Anything, eventID, userID).
			Return(&domain.Event{
				ID:           eventID,
				Status:       domain.StatusApproved,
				Capacity:     2,
				Participants: []uuid.UUID{userID},
			}, nil)

		recorder := f.do(t, stdhttp.MethodPost, "/events/"+eventID.String()+"/register", f.token(t, userID, domain.RoleUser), nil)

		require.Equal(t, stdhttp.StatusOK, recorder.Code)

		var resp EventResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, 1, resp.AvailableSpots)
		assert.Contains(t, resp.Participants, userID.String())
	})

	t.Run("full event maps to conflict", func(t *testing.T) {
		f := newEventHandlerFixture()

		f.participationService.On("Register", mock.Anything, eventID, userID).
			Return(nil, apperrors.ErrEventFull)

		recorder := f.do(t, stdhttp.MethodPost, "/events/"+eventID.String()+"/register", f.token(t, userID, domain.RoleUser), nil)

		require.Equal(t, stdhttp.StatusConflict, recorder.Code)
	})

	t.Run("malformed event id", func(t *testing.T) {
		f := newEventHandlerFixture()

		recorder := f.do(t, stdhttp.MethodPost, "/events/not-a-uuid/register", f.token(t, userID, domain.RoleUser), nil)

		require.Equal(t, stdhttp.StatusBadRequest, recorder.Code)
		f.participationService.AssertNotCalled(t, "Register")
	})
}

func TestEventHandler_Moderation(t *testing.T) {
	eventID := uuid.New()

	t.Run("admin approves", func(t *testing.T) {
		modID := uuid.New()
		f := newEventHandlerFixture()

		f.moderationService.On("ApproveEvent", mock.Anything, eventID, modID).
			Return(&domain.Event{ID: eventID, Status: domain.StatusApproved, Capacity: 10}, nil)

		recorder := f.do(t, stdhttp.MethodPut, "/events/"+eventID.String()+"/approve", f.token(t, modID, domain.RoleAdmin), nil)

		require.Equal(t, stdhttp.StatusOK, recorder.Code)

		var resp EventResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "approved", resp.Status)
	})

	t.Run("user token cannot reach approve", func(t *testing.T) {
		userID := uuid.New()
		f := newEventHandlerFixture()

		recorder := f.do(t, stdhttp.MethodPut, "/events/"+eventID.String()+"/approve", f.token(t, userID, domain.RoleUser), nil)

		require.Equal(t, stdhttp.StatusForbidden, recorder.Code)
		f.moderationService.AssertNotCalled(t, "ApproveEvent")
	})

	t.Run("double approve maps to conflict", func(t *testing.T) {
		modID := uuid.New()
		f := newEventHandlerFixture()

		f.moderationService.On("ApproveEvent", mock.Anything, eventID, modID).
			Return(nil, apperrors.ErrInvalidStatusTransition)

		recorder := f.do(t, stdhttp.MethodPut, "/events/"+eventID.String()+"/approve", f.token(t, modID, domain.RoleAdmin), nil)

		require.Equal(t, stdhttp.StatusConflict, recorder.Code)
	})
}

func TestEventHandler_Report(t *testing.T) {
	userID := uuid.New()
	eventID := uuid.New()

	t.Run("created", func(t *testing.T) {
		f := newEventHandlerFixture()

		f.reportService.On("CreateReport", mock.Anything, mock.MatchedBy(func(p ports.CreateReportParams) bool {
			return p.EventID == eventID && p.ReporterID == userID && p.Reason == domain.ReasonAbuse
		})).Return(&domain.Report{
			ID:         uuid.New(),
			EventID:    eventID,
			ReporterID: userID,
			Reason:     domain.ReasonAbuse,
			Status:     domain.ReportOpen,
		}, nil)

		recorder := f.do(t, stdhttp.MethodPost, "/events/"+eventID.String()+"/report",
			f.token(t, userID, domain.RoleUser), ReportRequest{Reason: "abuse", Details: "spam"})

		require.Equal(t, stdhttp.StatusCreated, recorder.Code)

		var resp ReportResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "open", resp.Status)
	})

	t.Run("duplicate maps to conflict", func(t *testing.T) {
		f := newEventHandlerFixture()

		f.reportService.On("CreateReport", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrAlreadyReported)

		recorder := f.do(t, stdhttp.MethodPost, "/events/"+eventID.String()+"/report",
			f.token(t, userID, domain.RoleUser), ReportRequest{Reason: "abuse"})

		require.Equal(t, stdhttp.StatusConflict, recorder.Code)
	})
}

func TestEventHandler_Messages(t *testing.T) {
	userID := uuid.New()
	eventID := uuid.New()

	t.Run("history in send order", func(t *testing.T) {
		f := newEventHandlerFixture()

		f.chatService.On("History", mock.Anything, eventID, userID).
			Return([]*domain.Message{
				{ID: uuid.New(), EventID: eventID, SenderID: userID, Text: "first", Seq: 1},
				{ID: uuid.New(), EventID: eventID, SenderID: userID, Text: "second", Seq: 2},
			}, nil)

		recorder := f.do(t, stdhttp.MethodGet, "/events/"+eventID.String()+"/messages", f.token(t, userID, domain.RoleUser), nil)

		require.Equal(t, stdhttp.StatusOK, recorder.Code)

		var resp struct {
			Data []MessageResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		require.Len(t, resp.Data, 2)
		assert.Equal(t, "first", resp.Data[0].Text)
		assert.Equal(t, "second", resp.Data[1].Text)
	})

	t.Run("non-member denied", func(t *testing.T) {
		f := newEventHandlerFixture()

		f.chatService.On("History", mock.Anything, eventID, userID).
			Return(nil, apperrors.ErrNotRoomMember)

		recorder := f.do(t, stdhttp.MethodGet, "/events/"+eventID.String()+"/messages", f.token(t, userID, domain.RoleUser), nil)

		require.Equal(t, stdhttp.StatusForbidden, recorder.Code)
	})
}

func TestEventHandler_List(t *testing.T) {
	userID := uuid.New()

	makeEvents := func(n int) []*domain.Event {
		events := make([]*domain.Event, 0, n)
		for i := 0; i < n; i++ {
			events = append(events, &domain.Event{
				ID:       uuid.New(),
				Title:    "Go Meetup",
				Status:   domain.StatusApproved,
				Capacity: 30,
			})
		}
		return events
	}

	t.Run("full page reports more results", func(t *testing.T) {
		f := newEventHandlerFixture()

		var gotParams ports.ListEventsParams
		f.eventService.On("ListEvents", mock.Anything, mock.AnythingOfType("ports.ListEventsParams")).
			Run(func(args mock.Arguments) { gotParams = args.Get(1).(ports.ListEventsParams) }).
			Return(makeEvents(3), nil)

		recorder := f.do(t, stdhttp.MethodGet, "/events?limit=2", f.token(t, userID, domain.RoleUser), nil)

		require.Equal(t, stdhttp.StatusOK, recorder.Code)
		// One row beyond the page is requested to detect further pages.
		assert.Equal(t, 3, gotParams.Limit)
		assert.Equal(t, 0, gotParams.Offset)

		var resp PaginatedResponse[EventResponse]
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Len(t, resp.Data, 2)
		assert.Equal(t, 2, resp.Pagination.Limit)
		assert.True(t, resp.Pagination.HasMore)
	})

	t.Run("short page is the last one", func(t *testing.T) {
		f := newEventHandlerFixture()

		f.eventService.On("ListEvents", mock.Anything, mock.AnythingOfType("ports.ListEventsParams")).
			Return(makeEvents(1), nil)

		recorder := f.do(t, stdhttp.MethodGet, "/events?limit=2&offset=2", f.token(t, userID, domain.RoleUser), nil)

		require.Equal(t, stdhttp.StatusOK, recorder.Code)

		var resp PaginatedResponse[EventResponse]
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Len(t, resp.Data, 1)
		assert.Equal(t, 2, resp.Pagination.Offset)
		assert.False(t, resp.Pagination.HasMore)
	})

	t.Run("oversized limit is capped", func(t *testing.T) {
		f := newEventHandlerFixture()

		var gotParams ports.ListEventsParams
		f.eventService.On("ListEvents", mock.Anything, mock.AnythingOfType("ports.ListEventsParams")).
			Run(func(args mock.Arguments) { gotParams = args.Get(1).(ports.ListEventsParams) }).
			Return(makeEvents(0), nil)

		recorder := f.do(t, stdhttp.MethodGet, "/events?limit=5000", f.token(t, userID, domain.RoleUser), nil)

		require.Equal(t, stdhttp.StatusOK, recorder.Code)
		assert.Equal(t, maxListLimit+1, gotParams.Limit)
	})
}
