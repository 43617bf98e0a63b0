package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
)

func TestNewReport(t *testing.T) {
	eventID := uuid.New()
	reporterID := uuid.New()

	t.Run("valid report starts open", func(t *testing.T) {
		report, err := domain.NewReport(eventID, reporterID, domain.ReasonAbuse, "spam links")

		require.NoError(t, err)
		assert.Equal(t, domain.ReportOpen, report.Status)
		assert.Nil(t, report.HandledBy)
	})

	t.Run("every reason is accepted", func(t *testing.T) {
		for _, reason := range []domain.ReportReason{
			domain.ReasonAbuse,
			domain.ReasonViolence,
			domain.ReasonDiscrimination,
			domain.ReasonOther,
		} {
			_, err := domain.NewReport(eventID, reporterID, reason, "")
			assert.NoError(t, err, "reason %q", reason)
		}
	})

	t.Run("unknown reason", func(t *testing.T) {
		report, err := domain.NewReport(eventID, reporterID, "boring", "")
		assert.Nil(t, report)
		assert.ErrorIs(t, err, apperrors.ErrInvalidReportReason)
	})

	t.Run("details too long", func(t *testing.T) {
		details := strings.Repeat("a", domain.MaxReportDetailsLength+1)
		_, err := domain.NewReport(eventID, reporterID, domain.ReasonOther, details)
		assert.ErrorIs(t, err, apperrors.ErrDetailsTooLong)
	})
}

func TestReport_Transition(t *testing.T) {
	moderatorID := uuid.New()

	tests := []struct {
		name    string
		from    domain.ReportStatus
		to      domain.ReportStatus
		wantErr bool
	}{
		{"open to in_review", domain.ReportOpen, domain.ReportInReview, false},
		{"open to resolved", domain.ReportOpen, domain.ReportResolved, false},
		{"in_review to resolved", domain.ReportInReview, domain.ReportResolved, false},
		{"in_review back to open", domain.ReportInReview, domain.ReportOpen, false},
		{"resolved to open", domain.ReportResolved, domain.ReportOpen, true},
		{"resolved to in_review", domain.ReportResolved, domain.ReportInReview, true},
		{"open to open", domain.ReportOpen, domain.ReportOpen, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &domain.Report{Status: tt.from}
			err := report.Transition(tt.to, moderatorID)

			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)
				assert.Equal(t, tt.from, report.Status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, report.Status)
			require.NotNil(t, report.HandledBy)
			assert.Equal(t, moderatorID, *report.HandledBy)
		})
	}
}
