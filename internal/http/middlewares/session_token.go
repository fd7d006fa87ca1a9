package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"taskboard.com/taskboard/internal/session"
)

const bearerPrefix = "Bearer "

// SessionToken puts the caller's session token on the request context. The
// token comes from "Authorization: Bearer <token>", or from the "token" query
// parameter for clients such as EventSource that cannot set headers.
func SessionToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				token = strings.TrimSpace(c.QueryParam("token"))
			}
			if token != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(session.WithToken(req.Context(), token)))
			}
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}
