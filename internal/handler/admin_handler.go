package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"schoolbook/internal/errors"
	"schoolbook/internal/middleware"
	"schoolbook/internal/service"
)

// AdminHandler handles account administration endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// AddTeacherRequest represents a teacher onboarding request.
type AddTeacherRequest struct {
	Name       string `json:"name" validate:"required"`
	Department string `json:"department" validate:"required"`
	Subject    string `json:"subject" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
}

// UpdateTeacherRequest represents a teacher profile overwrite.
type UpdateTeacherRequest struct {
	Name       string `json:"name" validate:"required"`
	Department string `json:"department" validate:"required"`
	Subject    string `json:"subject" validate:"required"`
}

// ConfirmRequest carries the explicit confirmation for destructive actions.
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

// AddTeacher godoc
// @Summary Create a teacher account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddTeacherRequest true "Teacher data"
// @Success 201 {object} model.Account
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/teachers [post]
func (h *AdminHandler) AddTeacher(c echo.Context) error {
	var req AddTeacherRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	account, err := h.adminService.AddTeacher(c.Request().Context(), middleware.ActorFrom(c),
		req.Name, req.Department, req.Subject, req.Email, req.Password)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, account)
}

// UpdateTeacher godoc
// @Summary Overwrite a teacher's profile
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body UpdateTeacherRequest true "Profile data"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/teachers/{id} [put]
func (h *AdminHandler) UpdateTeacher(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid account id", "INVALID_UUID")
	}

	var req UpdateTeacherRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	if err := h.adminService.UpdateTeacherProfile(c.Request().Context(), middleware.ActorFrom(c),
		id, req.Name, req.Department, req.Subject); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "teacher updated"})
}

// DeleteAccount godoc
// @Summary Delete an account permanently
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/accounts/{id} [delete]
func (h *AdminHandler) DeleteAccount(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid account id", "INVALID_UUID")
	}
	if c.QueryParam("confirm") != "true" {
		return fail(errors.ErrConfirmationRequired)
	}

	if err := h.adminService.DeleteAccount(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "account deleted"})
}

// ListTeachers godoc
// @Summary List all teacher accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Account
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/teachers [get]
func (h *AdminHandler) ListTeachers(c echo.Context) error {
	teachers, err := h.adminService.ListTeachers(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, teachers)
}

// ListPendingStudents godoc
// @Summary List student registrations awaiting approval
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Account
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/students/pending [get]
func (h *AdminHandler) ListPendingStudents(c echo.Context) error {
	students, err := h.adminService.ListPendingStudents(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, students)
}

// ApproveStudent godoc
// @Summary Approve a pending student registration
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body ConfirmRequest true "Confirmation"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/students/{id}/approve [post]
func (h *AdminHandler) ApproveStudent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid account id", "INVALID_UUID")
	}

	var req ConfirmRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if !req.Confirm {
		return fail(errors.ErrConfirmationRequired)
	}

	if err := h.adminService.ApproveStudent(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "student approved"})
}

// RejectStudent godoc
// @Summary Reject and remove a pending student registration
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body ConfirmRequest true "Confirmation"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/students/{id}/reject [post]
func (h *AdminHandler) RejectStudent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid account id", "INVALID_UUID")
	}

	var req ConfirmRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if !req.Confirm {
		return fail(errors.ErrConfirmationRequired)
	}

	if err := h.adminService.RejectStudent(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "student registration rejected and removed"})
}
