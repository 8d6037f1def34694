package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Topics the admin dashboard can subscribe to. Every connected client gets
// the "admin" topic; the rest are opt-in via subscribe messages.
const (
	TopicAdmin    = "admin"
	TopicBookings = "bookings"
	TopicTM30     = "tm30"
	TopicAgent    = "agent"
)

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	topics     map[string]map[*Client]bool
	mutex      sync.RWMutex
}

type Message struct {
	Type      string                 `json:"type"`
	Topic     string                 `json:"topic,omitempty"`
	UserID    primitive.ObjectID     `json:"user_id,omitempty"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		topics:     make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true
	log.Printf("Dashboard client connected: %s", client.UserID.Hex())

	h.subscribe(client, TopicAdmin)

	welcomeMsg := Message{
		Type:      "welcome",
		UserID:    client.UserID,
		Timestamp: getCurrentTimestamp(),
		Data: map[string]interface{}{
			"message": "Connected successfully",
		},
	}

	h.sendToClient(client, welcomeMsg)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		for topic, subscribers := range h.topics {
			if _, exists := subscribers[client]; exists {
				delete(subscribers, client)
				if len(subscribers) == 0 {
					delete(h.topics, topic)
				}
			}
		}

		log.Printf("Dashboard client disconnected: %s", client.UserID.Hex())
	}
}

func (h *Hub) broadcastMessage(message []byte) {
	var msg Message
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		return
	}

	if msg.Topic != "" {
		h.sendToTopic(msg.Topic, msg)
	} else {
		h.sendToAll(msg)
	}
}

func (h *Hub) sendToAll(message Message) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	data, _ := json.Marshal(message)
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
}

func (h *Hub) sendToTopic(topic string, message Message) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	subscribers, exists := h.topics[topic]
	if !exists {
		return
	}

	data, _ := json.Marshal(message)
	for client := range subscribers {
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
			delete(subscribers, client)
		}
	}
}

func (h *Hub) sendToClient(client *Client, message Message) {
	data, _ := json.Marshal(message)
	select {
	case client.send <- data:
	default:
		close(client.send)
		delete(h.clients, client)
	}
}

// Publish pushes an event to everyone subscribed to the topic.
func (h *Hub) Publish(topic, eventType string, data map[string]interface{}) {
	message := Message{
		Type:      eventType,
		Topic:     topic,
		Timestamp: getCurrentTimestamp(),
		Data:      data,
	}

	h.sendToTopic(topic, message)
}

func (h *Hub) subscribe(client *Client, topic string) {
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]bool)
	}
	h.topics[topic][client] = true
	client.topics[topic] = true
}

func (h *Hub) Unsubscribe(client *Client, topic string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if subscribers, exists := h.topics[topic]; exists {
		delete(subscribers, client)
		delete(client.topics, topic)

		if len(subscribers) == 0 {
			delete(h.topics, topic)
		}
	}
}

func getCurrentTimestamp() int64 {
	return time.Now().Unix()
}
