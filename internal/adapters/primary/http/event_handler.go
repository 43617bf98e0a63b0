package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/andreaG-student-its24/EventHub/internal/adapters/primary/http/middleware"
	"github.com/andreaG-student-its24/EventHub/internal/adapters/primary/validation"
	"github.com/andreaG-student-its24/EventHub/internal/auth"
	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
	"github.com/andreaG-student-its24/EventHub/internal/core/ports"
)

// maxListLimit caps the page size of the event listing.
const maxListLimit = 100

// EventHandler handles the event lifecycle, participation and chat history.
type EventHandler struct {
	eventService         ports.EventService
	participationService ports.ParticipationService
	moderationService    ports.ModerationService
	chatService          ports.ChatService
	reportService        ports.ReportService
	errorHandler         *ErrorHandler
}

// NewEventHandler creates a new event handler
func NewEventHandler(
	eventService ports.EventService,
	participationService ports.ParticipationService,
	moderationService ports.ModerationService,
	chatService ports.ChatService,
	reportService ports.ReportService,
	errorHandler *ErrorHandler,
) *EventHandler {
	return &EventHandler{
		eventService:         eventService,
		participationService: participationService,
		moderationService:    moderationService,
		chatService:          chatService,
		reportService:        reportService,
		errorHandler:         errorHandler,
	}
}

// RegisterRoutes registers the event routes. All routes assume the JWT
// middleware already ran.
func (h *EventHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/my-events", h.HandleMyEvents)

	r.Route("/{eventID}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Put("/", h.HandleUpdate)
		r.Delete("/", h.HandleDelete)

		r.Post("/register", h.HandleRegister)
		r.Delete("/unregister", h.HandleUnregister)

		r.Get("/messages", h.HandleMessages)
		r.Post("/report", h.HandleReport)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Put("/approve", h.HandleApprove)
			r.Put("/reject", h.HandleReject)
		})
	})
}

// EventRequest is the DTO for creating or updating an event
type EventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Capacity    int       `json:"capacity"`
}

// EventResponse is the DTO for an event
type EventResponse struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	Date           string   `json:"date"`
	Category       string   `json:"category"`
	Capacity       int      `json:"capacity"`
	Participants   []string `json:"participants"`
	AvailableSpots int      `json:"availableSpots"`
	Status         string   `json:"status"`
	CreatorID      string   `json:"creatorId"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt,omitempty"`
}

// MessageResponse is the DTO for a chat message
type MessageResponse struct {
	ID        string `json:"id"`
	EventID   string `json:"eventId"`
	SenderID  string `json:"senderId"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// ReportRequest is the DTO for reporting an event
type ReportRequest struct {
	Reason  string `json:"reason"`
	Details string `json:"details"`
}

// ReportResponse is the DTO for a report
type ReportResponse struct {
	ID         string `json:"id"`
	EventID    string `json:"eventId"`
	ReporterID string `json:"reporterId"`
	Reason     string `json:"reason"`
	Details    string `json:"details,omitempty"`
	Status     string `json:"status"`
	HandledBy  string `json:"handledBy,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

// MyEventsResponse groups the caller's dashboard
type MyEventsResponse struct {
	Created    []EventResponse `json:"created"`
	Registered []EventResponse `json:"registered"`
}

func toEventResponse(event *domain.Event) EventResponse {
	participants := make([]string, 0, len(event.Participants))
	for _, id := range event.Participants {
		participants = append(participants, id.String())
	}

	resp := EventResponse{
		ID:             event.ID.String(),
		Title:          event.Title,
		Description:    event.Description,
		Location:       event.Location,
		Date:           event.Date.UTC().Format(time.RFC3339),
		Category:       string(event.Category),
		Capacity:       event.Capacity,
		Participants:   participants,
		AvailableSpots: event.AvailableSpots(),
		Status:         string(event.Status),
		CreatorID:      event.CreatorID.String(),
		CreatedAt:      event.CreatedAt.UTC().Format(time.RFC3339),
	}
	if event.UpdatedAt != nil {
		resp.UpdatedAt = event.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func toEventResponses(events []*domain.Event) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, toEventResponse(event))
	}
	return responses
}

func toMessageResponse(message *domain.Message) MessageResponse {
	return MessageResponse{
		ID:        message.ID.String(),
		EventID:   message.EventID.String(),
		SenderID:  message.SenderID.String(),
		Text:      message.Text,
		CreatedAt: message.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toReportResponse(report *domain.Report) ReportResponse {
	resp := ReportResponse{
		ID:         report.ID.String(),
		EventID:    report.EventID.String(),
		ReporterID: report.ReporterID.String(),
		Reason:     string(report.Reason),
		Details:    report.Details,
		Status:     string(report.Status),
		CreatedAt:  report.CreatedAt.UTC().Format(time.RFC3339),
	}
	if report.HandledBy != nil {
		resp.HandledBy = report.HandledBy.String()
	}
	return resp
}

// getClaims extracts the validated claims or fails the request.
func getClaims(w http.ResponseWriter, r *http.Request, eh *ErrorHandler) (*auth.Claims, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		eh.Handle(w, r, apperrors.ErrUnauthorized)
		return nil, false
	}
	return claims, true
}

// parseEventID extracts the eventID path parameter.
func parseEventID(w http.ResponseWriter, r *http.Request, eh *ErrorHandler) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		eh.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid event ID"))
		return uuid.Nil, false
	}
	return id, true
}

// HandleList returns events visible to the caller, with optional filters.
func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	page := validation.ParsePagination(r, maxListLimit)

	params := ports.ListEventsParams{
		ViewerID: claims.UserID,
		// Fetch one row beyond the page to detect whether more pages exist.
		Limit:  page.Limit + 1,
		Offset: page.Offset,
	}

	if category := validation.ParseStringQueryParam(r, "category"); category != nil {
		c := domain.EventCategory(*category)
		params.Category = &c
	}
	params.Location = validation.ParseStringQueryParam(r, "location")
	if status := validation.ParseStringQueryParam(r, "status"); status != nil {
		s := domain.EventStatus(*status)
		params.Status = &s
	}

	events, err := h.eventService.ListEvents(r.Context(), params)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	WritePaginated(w, toEventResponses(events), page.Limit, page.Offset)
}

// HandleCreate proposes a new event, which starts pending moderation.
func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[EventRequest](r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	event, err := h.eventService.CreateEvent(r.Context(), ports.CreateEventParams{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		Category:    domain.EventCategory(req.Category),
		Capacity:    req.Capacity,
		CreatorID:   claims.UserID,
	})
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	WriteCreated(w, toEventResponse(event))
}

// HandleMyEvents returns the caller's dashboard.
func (h *EventHandler) HandleMyEvents(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	userEvents, err := h.eventService.GetUserEvents(r.Context(), claims.UserID)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	WriteJSON(w, http.StatusOK, MyEventsResponse{
		Created:    toEventResponses(userEvents.Created),
		Registered: toEventResponses(userEvents.Registered),
	})
}

// HandleGet returns a single event if the caller may see it.
func (h *EventHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}
	eventID, ok := parseEventID(w, r, h.errorHandler)
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(r.Context(), eventID, claims.UserID)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	WriteJSON(w, http.StatusOK, toEventResponse(event))
}

// HandleUpdate applies a creator edit, resetting the event to pending.
func (h *EventHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}
	eventID, ok := parseEventID(w, r, h.errorHandler)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[EventRequest](r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	event, err := h.eventService.UpdateEvent(r.Context(), ports.UpdateEventParams{
		EventID:     eventID,
		ActorID:     claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		Category:    domain.EventCategory(req.Category),
		Capacity:    req.Capacity,
	})
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	WriteJSON(w, http.StatusOK, toEventResponse(event))
}

// HandleDelete removes an event with its messages and reports.
func (h *EventHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}
	eventID, ok := parseEventID(w, r, h.errorHandler)
	if !ok {
		return
	}

	if HandleError(w, r, h.eventService.DeleteEvent(r.Context(), eventID, claims.UserID), h.errorHandler) {
		return
	}

	WriteNoContent(w)
}

// HandleRegister takes a seat on the event.
func (h *EventHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}
	eventID, ok := parseEventID(w, r, h.errorHandler)
	if !ok {
		return
	}

	event, err := h.participationService.Register(r.Context(), eventID, claims.UserID)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	WriteJSON(w, http.StatusOK, toEventResponse(event))
}

// HandleUnregister frees the caller's seat.
func (h *EventHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}
	eventID, ok := parseEventID(w, r, h.errorHandler)
	if !ok {
		return
	}

	event, err := h.participationService.Unregister(r.Context(), eventID, claims.UserID)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	WriteJSON(w, http.StatusOK, toEventResponse(event))
}

// HandleApprove transitions the event to approved.
func (h *EventHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}
	eventID, ok := parseEventID(w, r, h.errorHandler)
	if !ok {
		return
	}

	event, err := h.moderationService.ApproveEvent(r.Context(), eventID, claims.UserID)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	WriteJSON(w, http.StatusOK, toEventResponse(event))
}

// HandleReject transitions the event to rejected.
func (h *EventHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}
	eventID, ok := parseEventID(w, r, h.errorHandler)
	if !ok {
		return
	}

	event, err := h.moderationService.RejectEvent(r.Context(), eventID, claims.UserID)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	WriteJSON(w, http.StatusOK, toEventResponse(event))
}

// HandleMessages returns the event's chat history in send order.
func (h *EventHandler) HandleMessages(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}
	eventID, ok := parseEventID(w, r, h.errorHandler)
	if !ok {
		return
	}

	messages, err := h.chatService.History(r.Context(), eventID, claims.UserID)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	responses := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, toMessageResponse(message))
	}
	WriteList(w, responses)
}

// HandleReport files a report against the event.
func (h *EventHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}
	eventID, ok := parseEventID(w, r, h.errorHandler)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[ReportRequest](r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	report, err := h.reportService.CreateReport(r.Context(), ports.CreateReportParams{
		EventID:    eventID,
		ReporterID: claims.UserID,
		Reason:     domain.ReportReason(req.Reason),
		Details:    req.Details,
	})
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	WriteCreated(w, toReportResponse(report))
}
