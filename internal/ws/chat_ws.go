package ws

import (
	"log"
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/chatwave/backend/internal/models"
	"github.com/chatwave/backend/internal/observability"
	"github.com/chatwave/backend/internal/repositories"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ChatWebSocketHandler upgrades authenticated clients onto the hub.
type ChatWebSocketHandler struct {
	hub       *Hub
	userRepo  repositories.UserRepository
	jwtSecret string
}

// NewChatWebSocketHandler creates a new ChatWebSocketHandler.
func NewChatWebSocketHandler(hub *Hub, userRepo repositories.UserRepository, jwtSecret string) *ChatWebSocketHandler {
	return &ChatWebSocketHandler{hub: hub, userRepo: userRepo, jwtSecret: jwtSecret}
}

// Handle authenticates via the token query parameter (browsers cannot set
// headers on websocket upgrades) and pumps the connection until it closes.
func (h *ChatWebSocketHandler) Handle(c echo.Context) error {
	tokenString := c.QueryParam("token")
	if tokenString == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	user, err := h.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Account no longer exists")
	}
	if user.Status == models.StatusBanned {
		return echo.NewHTTPError(http.StatusForbidden, "Account is banned")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.hub.AddClient(user.ID, conn)
	observability.IncWSConnections(1)
	defer func() {
		h.hub.RemoveClient(user.ID, conn)
		observability.IncWSConnections(-1)
		conn.Close()
	}()

	// Clients only listen; drain reads until the peer goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read error: %v", err)
			}
			return nil
		}
	}
}
