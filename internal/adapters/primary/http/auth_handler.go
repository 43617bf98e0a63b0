package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/andreaG-student-its24/EventHub/internal/adapters/primary/validation"
	"github.com/andreaG-student-its24/EventHub/internal/auth"
	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	"github.com/andreaG-student-its24/EventHub/internal/core/ports"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	authService  ports.AuthService
	tokenManager *auth.TokenManager
	errorHandler *ErrorHandler
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, tokenManager *auth.TokenManager, errorHandler *ErrorHandler) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenManager: tokenManager,
		errorHandler: errorHandler,
	}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
}

// RegisterRequest is the DTO for account registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the DTO for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public DTO for a user
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsBlocked bool   `json:"isBlocked"`
	CreatedAt string `json:"createdAt"`
}

// TokenResponse is the DTO returned on successful authentication
type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		IsBlocked: user.IsBlocked,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// HandleRegister creates a new account and issues a token.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[RegisterRequest](r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	user, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	token, err := h.tokenManager.GenerateToken(user.ID, string(user.Role))
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	WriteCreated(w, TokenResponse{Token: token, User: toUserResponse(user)})
}

// HandleLogin authenticates an account and issues a token.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[LoginRequest](r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	token, err := h.tokenManager.GenerateToken(user.ID, string(user.Role))
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	WriteJSON(w, http.StatusOK, TokenResponse{Token: token, User: toUserResponse(user)})
}
