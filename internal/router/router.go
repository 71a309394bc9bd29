package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"schoolbook/internal/config"
	"schoolbook/internal/handler"
	"schoolbook/internal/middleware"
	"schoolbook/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	adminHandler *handler.AdminHandler,
	messageHandler *handler.MessageHandler,
	streamHandler *handler.StreamHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes. The credential endpoints carry a per-IP rate limit.
	loginLimiter := middleware.NewRateLimiter(1, 5)
	api.POST("/auth/register", authHandler.Register, middleware.RateLimit(loginLimiter))
	api.POST("/auth/login", authHandler.Login, middleware.RateLimit(loginLimiter))
	api.POST("/auth/logout", authHandler.Logout)
	// Works with or without a session: anonymous callers get the entry view.
	api.GET("/authorize", authHandler.Authorize)
	api.GET("/seed/accounts", seedHandler.SeedAccounts)

	// Secured routes (require JWT authentication and a live session snapshot)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}), middleware.ResolveSession(authService))

	secured.GET("/me", authHandler.Me)
	secured.GET("/teachers", appointmentHandler.Teachers)

	// Appointment routes
	secured.POST("/appointments", appointmentHandler.Request)
	secured.GET("/appointments", appointmentHandler.List)
	secured.GET("/appointments/pending", appointmentHandler.ListPending)
	secured.GET("/appointments/stream", streamHandler.Appointments)
	secured.PATCH("/appointments/:id/status", appointmentHandler.SetStatus)
	secured.DELETE("/appointments/:id", appointmentHandler.Cancel)

	// Message routes
	secured.POST("/messages", messageHandler.Send)
	secured.GET("/messages", messageHandler.List)
	secured.GET("/messages/stream", streamHandler.Messages)
	secured.POST("/messages/:id/reply", messageHandler.Reply)

	// Admin routes
	secured.POST("/admin/teachers", adminHandler.AddTeacher)
	secured.GET("/admin/teachers", adminHandler.ListTeachers)
	secured.PUT("/admin/teachers/:id", adminHandler.UpdateTeacher)
	secured.DELETE("/admin/accounts/:id", adminHandler.DeleteAccount)
	secured.GET("/admin/students/pending", adminHandler.ListPendingStudents)
	secured.POST("/admin/students/:id/approve", adminHandler.ApproveStudent)
	secured.POST("/admin/students/:id/reject", adminHandler.RejectStudent)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
