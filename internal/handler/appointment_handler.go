package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"schoolbook/internal/errors"
	"schoolbook/internal/middleware"
	"schoolbook/internal/model"
	"schoolbook/internal/service"
)

// AppointmentHandler handles appointment endpoints.
type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler.
func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// RequestAppointmentRequest represents a booking request.
type RequestAppointmentRequest struct {
	TeacherEmail string `json:"teacher_email" validate:"required,email"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Reason       string `json:"reason" validate:"required"`
}

// SetStatusRequest represents an approve/reject decision.
type SetStatusRequest struct {
	Status  string `json:"status" validate:"required,oneof=Approved Rejected"`
	Confirm bool   `json:"confirm"`
}

// Request godoc
// @Summary Request an appointment with a teacher
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RequestAppointmentRequest true "Booking data"
// @Success 201 {object} model.Appointment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /appointments [post]
func (h *AppointmentHandler) Request(c echo.Context) error {
	var req RequestAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	appt, err := h.appointmentService.Request(c.Request().Context(), middleware.ActorFrom(c),
		req.TeacherEmail, req.Date, req.Time, req.Reason)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, appt)
}

// List godoc
// @Summary List the actor's visible appointments
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Appointment
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	appts, err := h.appointmentService.List(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, appts)
}

// ListPending godoc
// @Summary List the teacher's pending approval queue
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Appointment
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /appointments/pending [get]
func (h *AppointmentHandler) ListPending(c echo.Context) error {
	appts, err := h.appointmentService.ListPending(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, appts)
}

// SetStatus godoc
// @Summary Approve or reject a pending appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body SetStatusRequest true "Decision"
// @Success 200 {object} model.Appointment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /appointments/{id}/status [patch]
func (h *AppointmentHandler) SetStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid appointment id", "INVALID_UUID")
	}

	var req SetStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	if !req.Confirm {
		// irreversible: the transition happens at most once
		return fail(errors.ErrConfirmationRequired)
	}

	appt, err := h.appointmentService.SetStatus(c.Request().Context(), middleware.ActorFrom(c),
		id, model.AppointmentStatus(req.Status))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, appt)
}

// Cancel godoc
// @Summary Cancel (remove) an appointment
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid appointment id", "INVALID_UUID")
	}
	if c.QueryParam("confirm") != "true" {
		return fail(errors.ErrConfirmationRequired)
	}

	if err := h.appointmentService.Cancel(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "appointment removed"})
}

// Teachers godoc
// @Summary Teacher directory for the booking form
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Account
// @Failure 500 {object} errors.ErrorResponse
// @Router /teachers [get]
func (h *AppointmentHandler) Teachers(c echo.Context) error {
	teachers, err := h.appointmentService.Teachers(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, teachers)
}
