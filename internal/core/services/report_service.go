package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
	"github.com/andreaG-student-its24/EventHub/internal/core/ports"
)

// ReportService handles user reports against events and alerts the
// moderator audience when a new report lands.
type ReportService struct {
	reportRepo  ports.ReportRepository
	eventRepo   ports.EventRepository
	userRepo    ports.UserRepository
	broadcaster ports.Broadcaster
}

var _ ports.ReportService = (*ReportService)(nil)

// NewReportService creates a new report service
func NewReportService(
	reportRepo ports.ReportRepository,
	eventRepo ports.EventRepository,
	userRepo ports.UserRepository,
	broadcaster ports.Broadcaster,
) ports.ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		broadcaster: broadcaster,
	}
}

// CreateReport files a report against an event. A reporter can report
// a given event at most once.
func (s *ReportService) CreateReport(ctx context.Context, params ports.CreateReportParams) (*domain.Report, error) {
	reporter, err := s.userRepo.GetByID(ctx, params.ReporterID)
	if err != nil {
		return nil, err
	}
	if reporter.IsBlocked {
		return nil, apperrors.ErrUserBlocked
	}

	event, err := s.eventRepo.GetByID(ctx, params.EventID)
	if err != nil {
		return nil, err
	}

	report, err := domain.NewReport(event.ID, reporter.ID, params.Reason, params.Details)
	if err != nil {
		return nil, err
	}

	stored, err := s.reportRepo.Create(ctx, report)
	if err != nil {
		return nil, err
	}

	// Moderator alert is best effort. The report itself is already
	// persisted, a dropped signal only delays triage.
	_ = s.broadcaster.BroadcastToModerators(domain.NewReportSignal(stored, event.Title, reporter.Name))

	return stored, nil
}

// ListReports returns reports, optionally filtered by status. Moderators only.
func (s *ReportService) ListReports(ctx context.Context, actorID uuid.UUID, status *domain.ReportStatus) ([]*domain.Report, error) {
	if err := s.requireModerator(ctx, actorID); err != nil {
		return nil, err
	}
	return s.reportRepo.List(ctx, status)
}

// UpdateReportStatus moves a report through its triage lifecycle.
func (s *ReportService) UpdateReportStatus(ctx context.Context, params ports.UpdateReportStatusParams) (*domain.Report, error) {
	if err := s.requireModerator(ctx, params.ActorID); err != nil {
		return nil, err
	}

	report, err := s.reportRepo.GetByID(ctx, params.ReportID)
	if err != nil {
		return nil, err
	}

	if err := report.Transition(params.Status, params.ActorID); err != nil {
		return nil, err
	}

	return s.reportRepo.Update(ctx, report)
}

func (s *ReportService) requireModerator(ctx context.Context, actorID uuid.UUID) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsModerator() {
		return apperrors.ErrForbidden
	}
	return nil
}
