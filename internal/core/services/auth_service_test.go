package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
	"github.com/andreaG-student-its24/EventHub/internal/core/mocks"
	"github.com/andreaG-student-its24/EventHub/internal/core/services"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo := mocks.NewMockUserRepository()
		svc := services.NewAuthService(mockRepo)

		var created *domain.User
		mockRepo.On("GetByEmail", ctx, "mario@example.com").Return(nil, apperrors.ErrUserNotFound)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*domain.User) }).
			Return(&domain.User{Name: "Mario", Role: domain.RoleUser}, nil)

		user, err := svc.Register(ctx, "Mario", "mario@example.com", "Password1")

		require.NoError(t, err)
		assert.Equal(t, "Mario", user.Name)
		assert.Equal(t, domain.RoleUser, user.Role)

		require.NotNil(t, created)
		assert.NotEqual(t, "Password1", created.PasswordHash)
		assert.True(t, created.CheckPassword("Password1"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo := mocks.NewMockUserRepository()
		svc := services.NewAuthService(mockRepo)

		mockRepo.On("GetByEmail", ctx, "mario@example.com").
			Return(&domain.User{Email: "mario@example.com"}, nil)

		user, err := svc.Register(ctx, "Mario", "mario@example.com", "Password1")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrUserExists)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("weak password", func(t *testing.T) {
		mockRepo := mocks.NewMockUserRepository()
		svc := services.NewAuthService(mockRepo)

		user, err := svc.Register(ctx, "Mario", "mario@example.com", "short")

		assert.Nil(t, user)
		var verrs *apperrors.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.Errors, "password")
		mockRepo.AssertNotCalled(t, "GetByEmail")
	})

	t.Run("invalid email", func(t *testing.T) {
		mockRepo := mocks.NewMockUserRepository()
		svc := services.NewAuthService(mockRepo)

		user, err := svc.Register(ctx, "Mario", "not-an-email", "Password1")

		assert.Nil(t, user)
		var verrs *apperrors.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.Errors, "email")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	newStoredUser := func(t *testing.T, email, password string) *domain.User {
		t.Helper()
		user, err := domain.NewUser(domain.UserRegistrationParams{
			Name:     "Mario",
			Email:    email,
			Password: password,
		})
		require.NoError(t, err)
		return user
	}

	t.Run("success", func(t *testing.T) {
		mockRepo := mocks.NewMockUserRepository()
		svc := services.NewAuthService(mockRepo)

		stored := newStoredUser(t, "mario@example.com", "Password1")
		mockRepo.On("GetByEmail", ctx, "mario@example.com").Return(stored, nil)

		user, err := svc.Login(ctx, "mario@example.com", "Password1")

		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := mocks.NewMockUserRepository()
		svc := services.NewAuthService(mockRepo)

		stored := newStoredUser(t, "mario@example.com", "Password1")
		mockRepo.On("GetByEmail", ctx, "mario@example.com").Return(stored, nil)

		user, err := svc.Login(ctx, "mario@example.com", "Wrong1Password")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		mockRepo := mocks.NewMockUserRepository()
		svc := services.NewAuthService(mockRepo)

		mockRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrUserNotFound)

		user, err := svc.Login(ctx, "nobody@example.com", "Password1")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		mockRepo := mocks.NewMockUserRepository()
		svc := services.NewAuthService(mockRepo)

		_, err := svc.Login(ctx, "", "Password1")
		assert.ErrorIs(t, err, apperrors.ErrEmailRequired)

		_, err = svc.Login(ctx, "mario@example.com", "")
		assert.ErrorIs(t, err, apperrors.ErrPasswordRequired)
	})
}
