package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
)

func TestMessageRepository_CreateAssignsOrderFields(t *testing.T) {
	ctx := context.Background()
	eventRepo, userRepo := newTestRepos(t)
	messageRepo := NewMessageRepository(testPool)

	creator := createTestUser(t, ctx, userRepo)
	event := createTestEvent(t, ctx, eventRepo, creator.ID, 5, domain.StatusApproved)

	message, err := domain.NewMessage(event.ID, creator.ID, "  first message  ")
	require.NoError(t, err)
	assert.Equal(t, "first message", message.Text)

	stored, err := messageRepo.Create(ctx, message)
	require.NoError(t, err)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.NotZero(t, stored.Seq)
}

func TestMessageRepository_ListByEventID_Ordering(t *testing.T) {
	ctx := context.Background()
	eventRepo, userRepo := newTestRepos(t)
	messageRepo := NewMessageRepository(testPool)

	creator := createTestUser(t, ctx, userRepo)
	event := createTestEvent(t, ctx, eventRepo, creator.ID, 5, domain.StatusApproved)

	const count = 5
	for i := 0; i < count; i++ {
		message, err := domain.NewMessage(event.ID, creator.ID, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
		_, err = messageRepo.Create(ctx, message)
		require.NoError(t, err)
	}

	messages, err := messageRepo.ListByEventID(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, messages, count)

	for i, message := range messages {
		assert.Equal(t, fmt.Sprintf("message %d", i), message.Text)
		if i > 0 {
			prev, curr := messages[i-1], message
			ordered := prev.CreatedAt.Before(curr.CreatedAt) ||
				(prev.CreatedAt.Equal(curr.CreatedAt) && prev.Seq < curr.Seq)
			assert.True(t, ordered, "messages must come back in send order")
		}
	}
}

func TestMessageRepository_ListByEventID_ScopedToEvent(t *testing.T) {
	ctx := context.Background()
	eventRepo, userRepo := newTestRepos(t)
	messageRepo := NewMessageRepository(testPool)

	creator := createTestUser(t, ctx, userRepo)
	eventA := createTestEvent(t, ctx, eventRepo, creator.ID, 5, domain.StatusApproved)
	eventB := createTestEvent(t, ctx, eventRepo, creator.ID, 5, domain.StatusApproved)

	msgA, err := domain.NewMessage(eventA.ID, creator.ID, "room a")
	require.NoError(t, err)
	_, err = messageRepo.Create(ctx, msgA)
	require.NoError(t, err)

	msgB, err := domain.NewMessage(eventB.ID, creator.ID, "room b")
	require.NoError(t, err)
	_, err = messageRepo.Create(ctx, msgB)
	require.NoError(t, err)

	messages, err := messageRepo.ListByEventID(ctx, eventA.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "room a", messages[0].Text)
}
