package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/andreaG-student-its24/EventHub/internal/adapters/primary/http/middleware"
	"github.com/andreaG-student-its24/EventHub/internal/adapters/primary/validation"
	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
	"github.com/andreaG-student-its24/EventHub/internal/core/ports"
)

// AdminHandler handles the moderator-only surface: user management and
// report triage.
type AdminHandler struct {
	adminService  ports.AdminService
	reportService ports.ReportService
	errorHandler  *ErrorHandler
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService ports.AdminService, reportService ports.ReportService, errorHandler *ErrorHandler) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		reportService: reportService,
		errorHandler:  errorHandler,
	}
}

// RegisterRoutes registers the admin routes. Callers must mount these behind
// both the JWT middleware and RequireAdmin.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.RequireAdmin)

	r.Get("/users", h.HandleListUsers)
	r.Put("/users/{userID}/block", h.HandleBlockUser)
	r.Put("/users/{userID}/unblock", h.HandleUnblockUser)

	r.Get("/reports", h.HandleListReports)
	r.Patch("/reports/{reportID}/status", h.HandleUpdateReportStatus)
}

// BlockUserRequest is the DTO for blocking a user
type BlockUserRequest struct {
	Reason string `json:"reason"`
}

// UpdateReportStatusRequest is the DTO for a report status change
type UpdateReportStatusRequest struct {
	Status string `json:"status"`
}

func parseUserID(w http.ResponseWriter, r *http.Request, eh *ErrorHandler) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		eh.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid user ID"))
		return uuid.Nil, false
	}
	return id, true
}

// HandleListUsers returns every account.
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	users, err := h.adminService.ListUsers(r.Context(), claims.UserID)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	WriteList(w, responses)
}

// HandleBlockUser blocks an account.
func (h *AdminHandler) HandleBlockUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}
	userID, ok := parseUserID(w, r, h.errorHandler)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[BlockUserRequest](r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	user, err := h.adminService.BlockUser(r.Context(), claims.UserID, userID, req.Reason)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleUnblockUser lifts a block.
func (h *AdminHandler) HandleUnblockUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}
	userID, ok := parseUserID(w, r, h.errorHandler)
	if !ok {
		return
	}

	user, err := h.adminService.UnblockUser(r.Context(), claims.UserID, userID)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleListReports returns reports, optionally filtered by status.
func (h *AdminHandler) HandleListReports(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	var status *domain.ReportStatus
	if s := validation.ParseStringQueryParam(r, "status"); s != nil {
		v := domain.ReportStatus(*s)
		status = &v
	}

	reports, err := h.reportService.ListReports(r.Context(), claims.UserID, status)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	responses := make([]ReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, toReportResponse(report))
	}
	WriteList(w, responses)
}

// HandleUpdateReportStatus moves a report through its triage lifecycle.
func (h *AdminHandler) HandleUpdateReportStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	reportID, err := uuid.Parse(chi.URLParam(r, "reportID"))
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid report ID"))
		return
	}

	req, err := validation.DecodeAndValidate[UpdateReportStatusRequest](r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	report, err := h.reportService.UpdateReportStatus(r.Context(), ports.UpdateReportStatusParams{
		ReportID: reportID,
		ActorID:  claims.UserID,
		Status:   domain.ReportStatus(req.Status),
	})
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	WriteJSON(w, http.StatusOK, toReportResponse(report))
}
