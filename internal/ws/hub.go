package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

const redisPubSubChannel = "sortmyai:events"

var wsConnectionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "ws_connections_active",
		Help: "Number of active websocket connections",
	},
)

// Event types pushed to clients
const (
	EventSummary = "summary"
)

// Event is a real-time event sent via WebSocket
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub manages WebSocket clients and fans events out to them. Redis
// pub/sub carries events across instances when configured.
type Hub struct {
	// Registered clients grouped by creator uid
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// Events addressed to a specific creator
	send chan *targetedEvent

	mu          sync.RWMutex
	redisClient *redis.Client
	ctx         context.Context
	cancel      context.CancelFunc
}

type targetedEvent struct {
	UID   string
	Event *Event
}

// NewHub creates a new Hub
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[string]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		send:        make(chan *targetedEvent, 256),
		redisClient: redisClient,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	if h.redisClient != nil {
		go h.subscribeRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.uid] == nil {
				h.clients[client.uid] = make(map[*Client]bool)
			}
			h.clients[client.uid][client] = true
			h.mu.Unlock()
			wsConnectionsActive.Inc()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.uid]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.uid)
					}
					wsConnectionsActive.Dec()
				}
			}
			h.mu.Unlock()

		case msg := <-h.send:
			// Write lock: slow clients are evicted in this branch
			h.mu.Lock()
			if clients, ok := h.clients[msg.UID]; ok {
				data, err := json.Marshal(msg.Event)
				if err == nil {
					for client := range clients {
						select {
						case client.send <- data:
						default:
							close(client.send)
							delete(clients, client)
							wsConnectionsActive.Dec()
						}
					}
					if len(clients) == 0 {
						delete(h.clients, msg.UID)
					}
				}
			}
			h.mu.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

// SendToUser sends an event to a specific creator (local + Redis publish)
func (h *Hub) SendToUser(uid string, event *Event) {
	h.send <- &targetedEvent{UID: uid, Event: event}

	// Publish to Redis for multi-instance support
	if h.redisClient != nil {
		msg := &redisMessage{UID: uid, Event: event}
		data, err := json.Marshal(msg)
		if err == nil {
			h.redisClient.Publish(h.ctx, redisPubSubChannel, data) //nolint:errcheck
		}
	}
}

type redisMessage struct {
	UID   string `json:"uid"`
	Event *Event `json:"event"`
}

// subscribeRedis listens for events from other instances
func (h *Hub) subscribeRedis() {
	pubsub := h.redisClient.Subscribe(h.ctx, redisPubSubChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var rm redisMessage
			if err := json.Unmarshal([]byte(msg.Payload), &rm); err == nil {
				// Only local delivery (don't re-publish to Redis)
				h.send <- &targetedEvent{UID: rm.UID, Event: rm.Event}
			}
		case <-h.ctx.Done():
			return
		}
	}
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	h.cancel()
}
