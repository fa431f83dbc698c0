// FILE: internal/handler/events_handler.go
package handler

import (
	"os"

	"eua-na-pratica-be/internal/pkg/logger"
	internalWS "eua-na-pratica-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// EventsHandler upgrades authenticated clients onto the websocket hub
// so the frontend receives booking and subscription events live.
type EventsHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewEventsHandler(hub *internalWS.Hub, log logger.ILogger) *EventsHandler {
	return &EventsHandler{hub: hub, logger: log}
}

func (h *EventsHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/events", h.Upgrade)
}

func (h *EventsHandler) Upgrade(c *fiber.Ctx) error {
	// Browsers cannot set headers on a websocket handshake, so the
	// token rides a query parameter.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("EVENTS", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	userIdStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("EVENTS", "WebSocket session started", map[string]interface{}{"user_id": userId.String()})
			internalWS.ServeWs(h.hub, conn, userId)
			h.logger.Info("EVENTS", "WebSocket session ended", map[string]interface{}{"user_id": userId.String()})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
