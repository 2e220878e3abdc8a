package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/chatwave/backend/internal/middleware"
	"github.com/chatwave/backend/internal/models"
	"github.com/chatwave/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository     repositories.UserRepository
	presenceRepository repositories.PresenceRepository
	resetRepository    repositories.PasswordResetRepository
	jwtSecret          string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, presenceRepo repositories.PresenceRepository, resetRepo repositories.PasswordResetRepository, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository:     userRepo,
		presenceRepository: presenceRepo,
		resetRepository:    resetRepo,
		jwtSecret:          jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/check-username", h.CheckUsername)
	g.GET("/check-email", h.CheckEmail)
	g.POST("/password-reset/request", h.RequestPasswordReset)
	g.POST("/password-reset/confirm", h.ConfirmPasswordReset)
}

// RegisterProtectedRoutes registers auth routes that require a session
func (h *AuthHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.POST("/auth/logout", h.Logout)
}

// Register handles user registration with username, email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid registration details")
	}

	taken, err := h.userRepository.UsernameExists(req.Username)
	if err != nil {
		return failStore(c, err)
	}
	if taken {
		return fail(c, http.StatusConflict, "Username is already taken")
	}

	registered, err := h.userRepository.EmailExists(req.Email)
	if err != nil {
		return failStore(c, err)
	}
	if registered {
		return fail(c, http.StatusConflict, "Email is already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return failStore(c, err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Status:   models.StatusOffline,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return failStore(c, err)
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return failStore(c, err)
	}

	return respond(c, http.StatusCreated, echo.Map{"token": token, "user": user.Profile(time.Now())})
}

// Login handles authentication with username and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Username and password are required")
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, http.StatusUnauthorized, "Invalid username or password")
		}
		return failStore(c, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return fail(c, http.StatusUnauthorized, "Invalid username or password")
	}

	if user.Status == models.StatusBanned {
		return fail(c, http.StatusForbidden, "Account is banned")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return failStore(c, err)
	}

	if err := h.presenceRepository.Touch(user.ID); err != nil {
		c.Logger().Error(err)
	}

	return respond(c, http.StatusOK, echo.Map{"token": token, "user": user.Profile(time.Now())})
}

// Logout marks the user offline. The token itself stays valid until expiry.
func (h *AuthHandler) Logout(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}
	if err := h.presenceRepository.SetOffline(user.ID); err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{})
}

// CheckUsername reports whether a username is taken (open endpoint, used by
// the registration form).
func (h *AuthHandler) CheckUsername(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return fail(c, http.StatusBadRequest, "Username is required")
	}
	exists, err := h.userRepository.UsernameExists(username)
	if err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"exists": exists})
}

// CheckEmail reports whether an email is registered (open endpoint).
func (h *AuthHandler) CheckEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return fail(c, http.StatusBadRequest, "Email is required")
	}
	exists, err := h.userRepository.EmailExists(email)
	if err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"exists": exists})
}

// resetRequestedMessage is returned for every reset request, whether or not
// the email exists, so the endpoint cannot be used to enumerate accounts.
const resetRequestedMessage = "If your email is registered, you will receive password reset instructions shortly"

// RequestPasswordReset issues a single-use reset token for the given email.
// The response is identical for known and unknown addresses.
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req models.RequestPasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "A valid email is required")
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return respond(c, http.StatusOK, echo.Map{"message": resetRequestedMessage})
		}
		return failStore(c, err)
	}

	token, err := generateResetToken()
	if err != nil {
		return failStore(c, err)
	}

	reset := &models.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(models.ResetTokenTTL),
	}
	if err := h.resetRepository.Create(reset); err != nil {
		return failStore(c, err)
	}

	// No mailer is wired up; the token is logged so an operator can relay it.
	c.Logger().Infof("password reset token issued for user %d: %s", user.ID, token)

	return respond(c, http.StatusOK, echo.Map{"message": resetRequestedMessage})
}

// ConfirmPasswordReset sets a new password for the user owning a valid token
// and burns the token.
func (h *AuthHandler) ConfirmPasswordReset(c echo.Context) error {
	var req models.ConfirmPasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Token and a password of at least 8 characters are required")
	}

	reset, err := h.resetRepository.GetValid(req.Token, time.Now())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, http.StatusBadRequest, "Invalid or expired token")
		}
		return failStore(c, err)
	}

	user, err := h.userRepository.GetUserByID(reset.UserID)
	if err != nil {
		return failStore(c, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return failStore(c, err)
	}
	user.Password = string(hashedPassword)
	if err := h.userRepository.UpdateUser(user); err != nil {
		return failStore(c, err)
	}

	if err := h.resetRepository.MarkUsed(reset.ID); err != nil {
		return failStore(c, err)
	}

	return respond(c, http.StatusOK, echo.Map{"message": "Password has been reset"})
}

// generateResetToken produces a 64-character hex token from 32 random bytes.
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
