package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
)

func TestReportRepository_Create(t *testing.T) {
	ctx := context.Background()
	eventRepo, userRepo := newTestRepos(t)
	reportRepo := NewReportRepository(testPool)

	creator := createTestUser(t, ctx, userRepo)
	reporter := createTestUser(t, ctx, userRepo)
	event := createTestEvent(t, ctx, eventRepo, creator.ID, 5, domain.StatusApproved)

	report, err := domain.NewReport(event.ID, reporter.ID, domain.ReasonViolence, "details here")
	require.NoError(t, err)

	stored, err := reportRepo.Create(ctx, report)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportOpen, stored.Status)
	assert.Nil(t, stored.HandledBy)
	assert.False(t, stored.CreatedAt.IsZero())

	t.Run("second report from the same identity is rejected", func(t *testing.T) {
		dup, err := domain.NewReport(event.ID, reporter.ID, domain.ReasonOther, "")
		require.NoError(t, err)

		_, err = reportRepo.Create(ctx, dup)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyReported)
	})

	t.Run("a different identity may report the same event", func(t *testing.T) {
		other := createTestUser(t, ctx, userRepo)
		second, err := domain.NewReport(event.ID, other.ID, domain.ReasonAbuse, "")
		require.NoError(t, err)

		_, err = reportRepo.Create(ctx, second)
		assert.NoError(t, err)
	})
}

func TestReportRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	eventRepo, userRepo := newTestRepos(t)
	reportRepo := NewReportRepository(testPool)

	creator := createTestUser(t, ctx, userRepo)
	reporter := createTestUser(t, ctx, userRepo)
	moderator := createTestUser(t, ctx, userRepo)
	event := createTestEvent(t, ctx, eventRepo, creator.ID, 5, domain.StatusApproved)

	report, err := domain.NewReport(event.ID, reporter.ID, domain.ReasonDiscrimination, "")
	require.NoError(t, err)
	stored, err := reportRepo.Create(ctx, report)
	require.NoError(t, err)

	require.NoError(t, stored.Transition(domain.ReportInReview, moderator.ID))

	updated, err := reportRepo.Update(ctx, stored)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportInReview, updated.Status)
	require.NotNil(t, updated.HandledBy)
	assert.Equal(t, moderator.ID, *updated.HandledBy)
}

func TestReportRepository_ListByStatus(t *testing.T) {
	ctx := context.Background()
	eventRepo, userRepo := newTestRepos(t)
	reportRepo := NewReportRepository(testPool)

	creator := createTestUser(t, ctx, userRepo)
	reporter := createTestUser(t, ctx, userRepo)
	moderator := createTestUser(t, ctx, userRepo)
	event := createTestEvent(t, ctx, eventRepo, creator.ID, 5, domain.StatusApproved)

	report, err := domain.NewReport(event.ID, reporter.ID, domain.ReasonAbuse, "")
	require.NoError(t, err)
	stored, err := reportRepo.Create(ctx, report)
	require.NoError(t, err)

	require.NoError(t, stored.Transition(domain.ReportResolved, moderator.ID))
	_, err = reportRepo.Update(ctx, stored)
	require.NoError(t, err)

	resolved := domain.ReportResolved
	reports, err := reportRepo.List(ctx, &resolved)
	require.NoError(t, err)

	for _, r := range reports {
		assert.Equal(t, domain.ReportResolved, r.Status)
	}
}
