package middleware

import (
	"net/http"
	"strings"

	"github.com/chatwave/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// Context keys set by the auth middleware chain.
const (
	ContextClaimsKey = "claims"
	ContextUserKey   = "currentUser"
)

// JWTAuthMiddleware checks for a valid JWT and extracts user claims. The
// signing secret is injected rather than read from ambient state.
func JWTAuthMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}
			tokenString := parts[1]

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})

			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(ContextClaimsKey, claims)

			return next(c)
		}
	}
}

// ClaimsFromContext returns the JWT claims stored by JWTAuthMiddleware.
func ClaimsFromContext(c echo.Context) (*models.JwtCustomClaims, bool) {
	claims, ok := c.Get(ContextClaimsKey).(*models.JwtCustomClaims)
	return claims, ok
}

// UserFromContext returns the full user record stored by LoadUser.
func UserFromContext(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(ContextUserKey).(*models.User)
	return user, ok
}
