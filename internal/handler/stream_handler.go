package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"schoolbook/internal/live"
	"schoolbook/internal/middleware"
	"schoolbook/internal/service"
)

// StreamHandler serves live-subscription endpoints over SSE. Each connection
// holds one standing query: the full result set is sent on connect and again
// after every matching change, until the client disconnects.
type StreamHandler struct {
	hub                *live.Hub
	appointmentService service.AppointmentService
	messageService     service.MessageService
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(hub *live.Hub, appointmentService service.AppointmentService, messageService service.MessageService) *StreamHandler {
	return &StreamHandler{
		hub:                hub,
		appointmentService: appointmentService,
		messageService:     messageService,
	}
}

// Appointments godoc
// @Summary Live appointment listing (SSE)
// @Tags appointments
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string "event stream of appointment snapshots"
// @Failure 403 {object} errors.ErrorResponse
// @Router /appointments/stream [get]
func (h *StreamHandler) Appointments(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	return h.stream(c, live.TopicAppointments, func(ctx context.Context) (interface{}, error) {
		return h.appointmentService.List(ctx, actor)
	})
}

// Messages godoc
// @Summary Live message feed (SSE)
// @Tags messages
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string "event stream of message snapshots"
// @Failure 403 {object} errors.ErrorResponse
// @Router /messages/stream [get]
func (h *StreamHandler) Messages(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	return h.stream(c, live.TopicMessages, func(ctx context.Context) (interface{}, error) {
		return h.messageService.ListForActor(ctx, actor)
	})
}

// stream pushes snapshots until the subscription ends. The request context
// cancels on client disconnect, which tears the subscription down exactly
// once.
func (h *StreamHandler) stream(c echo.Context, topic string, fetch live.FetchFunc) error {
	ctx := c.Request().Context()
	sub := h.hub.Subscribe(ctx, topic, fetch)
	defer sub.Cancel()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	for snapshot := range sub.Updates() {
		data, err := json.Marshal(snapshot)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(res, "data: %s\n\n", data); err != nil {
			return nil
		}
		res.Flush()
	}

	if err := sub.Err(); err != nil {
		// headers are already out; surface the failure as a terminal event
		fmt.Fprintf(res, "event: error\ndata: %q\n\n", err.Error())
		res.Flush()
	}
	return nil
}
