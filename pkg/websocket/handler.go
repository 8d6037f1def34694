package websocket

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler upgrades authenticated admin connections into the live event feed.
type Handler struct {
	hub *Hub
}

func NewHandler() *Handler {
	hub := NewHub()
	go hub.Run()

	return &Handler{
		hub: hub,
	}
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	role, exists := c.Get("user_role")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User role not found"})
		return
	}

	userObjectID, ok := userID.(primitive.ObjectID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	roleStr, ok := role.(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user role"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, userObjectID, roleStr)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// PublishBookingEvent pushes booking lifecycle changes to the dashboard.
func (h *Handler) PublishBookingEvent(eventType string, data map[string]interface{}) {
	h.hub.Publish(TopicBookings, eventType, data)
}

// PublishTM30Event pushes registration status changes to the dashboard.
func (h *Handler) PublishTM30Event(eventType string, data map[string]interface{}) {
	h.hub.Publish(TopicTM30, eventType, data)
}

// PublishAgentEvent pushes AI decision lifecycle changes to the dashboard.
func (h *Handler) PublishAgentEvent(eventType string, data map[string]interface{}) {
	h.hub.Publish(TopicAgent, eventType, data)
}

func (h *Handler) GetHub() *Hub {
	return h.hub
}
