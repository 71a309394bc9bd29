package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"schoolbook/internal/middleware"
	"schoolbook/internal/service"
)

// MessageHandler handles student-teacher messaging endpoints.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessageRequest represents a new message to a teacher.
type SendMessageRequest struct {
	TeacherEmail string `json:"teacher_email" validate:"required,email"`
	Content      string `json:"content" validate:"required"`
}

// ReplyRequest represents a teacher's reply.
type ReplyRequest struct {
	Reply string `json:"reply" validate:"required"`
}

// Send godoc
// @Summary Send a message to a teacher
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SendMessageRequest true "Message data"
// @Success 201 {object} model.Message
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	msg, err := h.messageService.Send(c.Request().Context(), middleware.ActorFrom(c),
		req.TeacherEmail, req.Content)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, msg)
}

// Reply godoc
// @Summary Reply to a student message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Param request body ReplyRequest true "Reply text"
// @Success 200 {object} model.Message
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /messages/{id}/reply [post]
func (h *MessageHandler) Reply(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid message id", "INVALID_UUID")
	}

	var req ReplyRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	msg, err := h.messageService.Reply(c.Request().Context(), middleware.ActorFrom(c), id, req.Reply)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, msg)
}

// List godoc
// @Summary List the actor's message feed
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Message
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	msgs, err := h.messageService.ListForActor(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, msgs)
}
