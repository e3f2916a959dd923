package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartattend/internal/auth"
	"smartattend/internal/errors"
	"smartattend/internal/model"
	"smartattend/internal/service"
)

const (
	// ClaimsContextKey is where the JWT middleware stores validated *auth.Claims.
	ClaimsContextKey = "user"
	currentUserKey   = "current_user"
)

// RequireUser resolves the authenticated user from the token claims and makes
// it available through CurrentUser. It must run after the JWT middleware.
func RequireUser(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return Unauthorized()
			}
			user, err := authService.ResolveUser(c.Request().Context(), claims)
			if err != nil {
				return respondError(c, err)
			}
			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// ClaimsFromContext returns the claims stored by the JWT middleware.
func ClaimsFromContext(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// CurrentUser returns the user resolved by RequireUser.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(currentUserKey).(*model.User)
	return user, ok && user != nil
}

// Unauthorized is the single response for every authentication failure.
func Unauthorized() error {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: errors.ErrUnauthorized.Error(),
		Code:  "UNAUTHORIZED",
	})
}
