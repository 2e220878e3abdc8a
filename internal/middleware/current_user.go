package middleware

import (
	"log"
	"net/http"

	"github.com/chatwave/backend/internal/models"
	"github.com/chatwave/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LoadUser resolves the authenticated principal into a full user record,
// rejects banned accounts, and records activity. Runs after
// JWTAuthMiddleware on every protected route, which makes every
// authenticated request a presence heartbeat.
func LoadUser(userRepo repositories.UserRepository, presenceRepo repositories.PresenceRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
			}

			user, err := userRepo.GetUserByID(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Account no longer exists")
			}

			if user.Status == models.StatusBanned {
				return echo.NewHTTPError(http.StatusForbidden, "Account is banned")
			}

			c.Set(ContextUserKey, user)

			// Presence touch is best effort; a failed update must not fail
			// the request it rode in on.
			go func(id uint) {
				if err := presenceRepo.Touch(id); err != nil {
					log.Printf("presence touch failed for user %d: %v", id, err)
				}
			}(user.ID)

			return next(c)
		}
	}
}

// RequireAdmin gates a route group to admin users. Must run after LoadUser.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
			}
			if !user.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}
