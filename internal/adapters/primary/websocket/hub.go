package websocket

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	"github.com/andreaG-student-its24/EventHub/internal/core/ports"
)

// deliveryScope selects the audience of a queued signal.
type deliveryScope int

const (
	scopeRoom deliveryScope = iota
	scopeGlobal
	scopeModerators
)

// delivery pairs a signal with its audience.
type delivery struct {
	scope  deliveryScope
	signal domain.Signal
}

// Hub maintains the set of active Clients and fans signals out to them.
// Delivery is at most once: a signal queued while a client's buffer is full
// is dropped for that client, never retried.
type Hub struct {
	// clients maps user IDs to their active connections.
	// A single user can have multiple connections (multiple tabs/devices).
	clients map[uuid.UUID]map[*Client]bool

	// rooms maps event IDs to joined clients
	rooms map[uuid.UUID]map[*Client]bool

	// broadcast channel for outbound signals
	broadcast chan delivery

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// mu protects the clients and rooms maps
	mu sync.RWMutex

	logger *slog.Logger
}

// Ensure Hub implements the Broadcaster port.
var _ ports.Broadcaster = (*Hub)(nil)

// NewHub creates a new WebSocket hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		broadcast:  make(chan delivery, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		logger:     logger.With("component", "websocket_hub"),
	}
}

// BroadcastToRoom queues a signal for the clients joined to the signal's
// event room.
func (h *Hub) BroadcastToRoom(signal domain.Signal) error {
	h.enqueue(delivery{scope: scopeRoom, signal: signal})
	return nil
}

// BroadcastGlobal queues a signal for every connected client.
func (h *Hub) BroadcastGlobal(signal domain.Signal) error {
	h.enqueue(delivery{scope: scopeGlobal, signal: signal})
	return nil
}

// BroadcastToModerators queues a signal for clients bound to a moderator
// identity, regardless of room membership.
func (h *Hub) BroadcastToModerators(signal domain.Signal) error {
	h.enqueue(delivery{scope: scopeModerators, signal: signal})
	return nil
}

func (h *Hub) enqueue(d delivery) {
	select {
	case h.broadcast <- d:
	default:
		h.logger.Warn("broadcast channel full, dropping signal",
			"signal_type", d.signal.Type,
			"event_id", d.signal.EventID,
		)
	}
}

// Run starts the hub's event loop. This MUST be run as a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case d := <-h.broadcast:
			h.deliver(d)
		}
	}
}

// registerClient adds a client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.UserID] == nil {
		h.clients[client.UserID] = make(map[*Client]bool)
	}
	h.clients[client.UserID][client] = true

	h.logger.Info("client registered",
		"user_id", client.UserID,
		"total_connections", len(h.clients[client.UserID]),
	)
}

// unregisterClient removes a client from the hub and all rooms
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Get room memberships before removing from maps
	joined := client.GetRooms()

	// 1. Remove from the global user map
	if userClients, ok := h.clients[client.UserID]; ok {
		if _, exists := userClients[client]; exists {
			delete(userClients, client)
			if len(userClients) == 0 {
				delete(h.clients, client.UserID)
			}
		}
	}

	// 2. Remove from all joined rooms
	for _, eventID := range joined {
		if room, ok := h.rooms[eventID]; ok {
			delete(room, client)
			if len(room) == 0 {
				delete(h.rooms, eventID)
			}
		}
	}

	// 3. Safely close the send channel
	client.CloseSend()

	h.logger.Info("client unregistered",
		"user_id", client.UserID,
	)
}

// deliver resolves the audience and pushes the signal to each client.
func (h *Hub) deliver(d delivery) {
	clients := h.audience(d)
	if len(clients) == 0 {
		return
	}

	h.logger.Debug("broadcasting signal",
		"signal_type", d.signal.Type,
		"event_id", d.signal.EventID,
		"client_count", len(clients),
	)

	for _, client := range clients {
		select {
		case client.Send <- d.signal:
			// Successfully queued
		default:
			// Client's send buffer is full, unregister them. This runs on
			// the hub goroutine, which is the sole receiver of Unregister,
			// so it must drop the client directly rather than queue it.
			h.logger.Warn("client send buffer full, unregistering",
				"user_id", client.UserID,
			)
			h.unregisterClient(client)
		}
	}
}

// audience snapshots the clients the delivery targets. The copy lets the
// caller send without holding the lock.
func (h *Hub) audience(d delivery) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var clients []*Client
	switch d.scope {
	case scopeRoom:
		room, ok := h.rooms[d.signal.EventID]
		if !ok {
			return nil
		}
		clients = make([]*Client, 0, len(room))
		for client := range room {
			clients = append(clients, client)
		}

	case scopeGlobal:
		for _, userClients := range h.clients {
			for client := range userClients {
				clients = append(clients, client)
			}
		}

	case scopeModerators:
		for _, userClients := range h.clients {
			for client := range userClients {
				if client.IsModerator {
					clients = append(clients, client)
				}
			}
		}
	}
	return clients
}

// joinRoom adds a client to an event's room
func (h *Hub) joinRoom(client *Client, eventID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[eventID] == nil {
		h.rooms[eventID] = make(map[*Client]bool)
	}
	h.rooms[eventID][client] = true
	client.AddRoom(eventID)

	h.logger.Debug("client joined room",
		"user_id", client.UserID,
		"event_id", eventID,
	)
}

// leaveRoom removes a client from an event's room
func (h *Hub) leaveRoom(client *Client, eventID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[eventID]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, eventID)
		}
	}
	client.RemoveRoom(eventID)

	h.logger.Debug("client left room",
		"user_id", client.UserID,
		"event_id", eventID,
	)
}

// GetClientCount returns the total number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, userClients := range h.clients {
		count += len(userClients)
	}
	return count
}

// GetRoomCount returns the number of active rooms
func (h *Hub) GetRoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

// GetClientsInRoom returns the number of clients joined to an event's room
func (h *Hub) GetClientsInRoom(eventID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if room, ok := h.rooms[eventID]; ok {
		return len(room)
	}
	return 0
}

// IsUserConnected checks if a user has any active connections
func (h *Hub) IsUserConnected(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.clients[userID]
	return ok && len(clients) > 0
}
