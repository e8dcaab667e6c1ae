package middleware

import (
	"net/http"
	"strings"

	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const (
	// TokenHeader carries the session token issued by /log_in
	TokenHeader = "Authentication"

	userContextKey  = "user"
	tokenContextKey = "token"
)

// SessionAuthMiddleware resolves the session token to a user before the
// handler runs and stores both in the echo context
func SessionAuthMiddleware(auth *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c.Request())
			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(userContextKey, user)
			c.Set(tokenContextKey, token)
			return next(c)
		}
	}
}

// TokenFromRequest reads the token from the Authentication header, falling
// back to a bearer Authorization header
func TokenFromRequest(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(TokenHeader)); token != "" {
		return token
	}
	auth := strings.TrimSpace(r.Header.Get(echo.HeaderAuthorization))
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return auth
}

// CurrentUser returns the user resolved by SessionAuthMiddleware
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

// CurrentToken returns the session token resolved by SessionAuthMiddleware
func CurrentToken(c echo.Context) string {
	token, _ := c.Get(tokenContextKey).(string)
	return token
}
