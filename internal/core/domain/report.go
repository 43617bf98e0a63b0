package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
)

// MaxReportDetailsLength bounds the free-text details of a report.
const MaxReportDetailsLength = 2000

// ReportReason is the closed set of reasons a user may report an event for.
type ReportReason string

const (
	ReasonAbuse          ReportReason = "abuse"
	ReasonViolence       ReportReason = "violence"
	ReasonDiscrimination ReportReason = "discrimination"
	ReasonOther          ReportReason = "other"
)

// ReportStatus represents the handling state of a report.
type ReportStatus string

const (
	ReportOpen     ReportStatus = "open"
	ReportInReview ReportStatus = "in_review"
	ReportResolved ReportStatus = "resolved"
)

// Report is a user complaint about an event. Reports are created by any
// identity and mutated only by moderators via status transitions.
type Report struct {
	ID         uuid.UUID
	EventID    uuid.UUID
	ReporterID uuid.UUID
	Reason     ReportReason
	Details    string
	Status     ReportStatus
	HandledBy  *uuid.UUID
	CreatedAt  time.Time
}

func isValidReason(r ReportReason) bool {
	switch r {
	case ReasonAbuse, ReasonViolence, ReasonDiscrimination, ReasonOther:
		return true
	}
	return false
}

// NewReport validates and builds a report in the open state.
func NewReport(eventID, reporterID uuid.UUID, reason ReportReason, details string) (*Report, error) {
	if !isValidReason(reason) {
		return nil, apperrors.ErrInvalidReportReason
	}
	if len(details) > MaxReportDetailsLength {
		return nil, apperrors.ErrDetailsTooLong
	}

	return &Report{
		ID:         uuid.New(),
		EventID:    eventID,
		ReporterID: reporterID,
		Reason:     reason,
		Details:    details,
		Status:     ReportOpen,
	}, nil
}

// Transition moves the report to a new handling status, recording the
// moderator who acted. Resolved reports stay resolved.
func (r *Report) Transition(newStatus ReportStatus, moderatorID uuid.UUID) error {
	validTransitions := map[ReportStatus][]ReportStatus{
		ReportOpen:     {ReportInReview, ReportResolved},
		ReportInReview: {ReportOpen, ReportResolved},
		ReportResolved: {},
	}

	allowed, ok := validTransitions[r.Status]
	if !ok {
		return apperrors.ErrInvalidStatusTransition
	}

	for _, s := range allowed {
		if s == newStatus {
			r.Status = newStatus
			r.HandledBy = &moderatorID
			return nil
		}
	}

	return apperrors.ErrInvalidStatusTransition
}
