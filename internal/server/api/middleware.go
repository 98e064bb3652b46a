package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kinshipapp/kinship/internal/server/auth"
)

// userIDKey is the echo context key the auth middleware stores the caller's
// user id under.
const userIDKey = "user_id"

// Auth validates the bearer token and injects the user id into context.
func Auth(jwtSecret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			userID, err := auth.GetUserIDFromToken(parts[1], jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// currentUserID returns the authenticated user id set by Auth.
func currentUserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
