package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"schoolbook/internal/middleware"
	"schoolbook/internal/model"
	"schoolbook/internal/service"
	"schoolbook/internal/session"
)

// AuthHandler handles authentication and session-gate endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a self-registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=Teacher Student"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents a successful login.
type AuthResponse struct {
	Token string         `json:"token"`
	User  *model.Account `json:"user"`
}

// AuthorizeResponse represents a session-gate decision.
type AuthorizeResponse struct {
	Allow      bool   `json:"allow"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// Register godoc
// @Summary Register a teacher or student account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	account, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password, model.Role(req.Role))
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "registration successful, please log in",
		"user":    account,
	})
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	token, account, err := h.authService.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  account,
	})
}

// Logout godoc
// @Summary Log out and destroy the session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.BearerToken(c)); err != nil {
		// the local session is gone either way; surface the remote failure
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}

// Me godoc
// @Summary Current session snapshot
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Account
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.ActorFrom(c))
}

// Authorize godoc
// @Summary Session-gate decision for a view
// @Tags auth
// @Produce json
// @Param view query string true "View name" Enums(entry, admin, teacher, student)
// @Success 200 {object} AuthorizeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /authorize [get]
func (h *AuthHandler) Authorize(c echo.Context) error {
	view := session.View(c.QueryParam("view"))
	if !view.Valid() {
		return badRequest("unknown view", "INVALID_VIEW")
	}

	// best effort: an absent or expired token is an unauthenticated session
	sess, err := h.authService.ResolveSession(c.Request().Context(), middleware.BearerToken(c))
	if err != nil {
		return fail(err)
	}

	decision := session.Authorize(sess, view)
	return c.JSON(http.StatusOK, AuthorizeResponse{
		Allow:      decision.Allow,
		RedirectTo: string(decision.RedirectTo),
	})
}
