package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"schoolbook/internal/errors"
	"schoolbook/internal/model"
	"schoolbook/internal/service"
	"schoolbook/internal/session"
)

// sessionContextKey is where the resolved session lives on the echo context.
const sessionContextKey = "app-session"

// BearerToken extracts the raw bearer token from the request, or "".
func BearerToken(c echo.Context) string {
	raw := c.Request().Header.Get(echo.HeaderAuthorization)
	return strings.TrimPrefix(raw, "Bearer ")
}

// ResolveSession loads the session snapshot behind the bearer token and
// attaches it to the context. Runs after the JWT guard, so a missing
// snapshot here means the session was logged out or expired server-side.
func ResolveSession(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := authService.ResolveSession(c.Request().Context(), BearerToken(c))
			if err != nil {
				httpErr := errors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			if sess == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "session expired or logged out",
					Code:  "SESSION_GONE",
				})
			}
			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the resolved session attached by ResolveSession.
func SessionFrom(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionContextKey).(*session.Session)
	return sess
}

// ActorFrom returns the account behind the current session, or nil.
func ActorFrom(c echo.Context) *model.Account {
	return SessionFrom(c).Actor()
}
