package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
	"github.com/andreaG-student-its24/EventHub/internal/core/ports"
	"github.com/andreaG-student-its24/EventHub/internal/core/utils"
)

// ReportRepository persists user reports against events.
type ReportRepository struct {
	pool *pgxpool.Pool
}

var _ ports.ReportRepository = (*ReportRepository)(nil)

// NewReportRepository creates a new report repository.
func NewReportRepository(pool *pgxpool.Pool) ports.ReportRepository {
	return &ReportRepository{pool: pool}
}

const reportColumns = `id, event_id, reporter_id, reason, details, status, handled_by, created_at`

// Create inserts a report. The unique index on (event_id, reporter_id)
// rejects a second report from the same identity.
func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	query := `
		INSERT INTO reports (id, event_id, reporter_id, reason, details, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + reportColumns

	stored, err := scanReport(GetDBTX(ctx, r.pool).QueryRow(ctx, query,
		report.ID,
		report.EventID,
		report.ReporterID,
		string(report.Reason),
		report.Details,
		string(report.Status),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, apperrors.ErrAlreadyReported
			case "23503":
				return nil, apperrors.ErrEventNotFound
			}
		}
		return nil, err
	}
	return stored, nil
}

// GetByID fetches a single report.
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`

	report, err := scanReport(GetDBTX(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// List returns reports, optionally narrowed to one status, newest first.
func (r *ReportRepository) List(ctx context.Context, status *domain.ReportStatus) ([]*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports`
	args := []interface{}{}

	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := GetDBTX(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// Update persists a status transition.
func (r *ReportRepository) Update(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	query := `
		UPDATE reports
		SET status = $2, handled_by = $3
		WHERE id = $1
		RETURNING ` + reportColumns

	updated, err := scanReport(GetDBTX(ctx, r.pool).QueryRow(ctx, query,
		report.ID,
		string(report.Status),
		utils.ToNullUUID(report.HandledBy),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, err
	}
	return updated, nil
}

func scanReport(row pgx.Row) (*domain.Report, error) {
	var (
		report    domain.Report
		reason    string
		status    string
		handledBy pgtype.UUID
	)

	err := row.Scan(
		&report.ID,
		&report.EventID,
		&report.ReporterID,
		&reason,
		&report.Details,
		&status,
		&handledBy,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	report.Reason = domain.ReportReason(reason)
	report.Status = domain.ReportStatus(status)
	report.HandledBy = utils.FromNullUUID(handledBy)
	return &report, nil
}
