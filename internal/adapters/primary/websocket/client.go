package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
	"github.com/andreaG-student-its24/EventHub/internal/core/ports"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Deadline for service calls triggered by client frames.
	handleTimeout = 10 * time.Second
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Buffered channel of outbound signals.
	Send chan domain.Signal

	// User ID for this client.
	UserID uuid.UUID

	// IsModerator tags the connection for moderator-only fanout. The flag
	// comes from the token at connect time; room access is still re-checked
	// against the store on every join and send.
	IsModerator bool

	// Rooms maps event IDs the client has joined to true.
	Rooms map[uuid.UUID]bool

	// chatService validates joins and handles chat messages.
	chatService ports.ChatService

	// closeOnce ensures the Send channel is only closed once
	closeOnce sync.Once

	// mu protects the Rooms map
	mu sync.RWMutex

	logger *slog.Logger
}

// NewClient creates a new WebSocket client
func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID, isModerator bool, chatService ports.ChatService, logger *slog.Logger) *Client {
	return &Client{
		Hub:         hub,
		Conn:        conn,
		Send:        make(chan domain.Signal, 256),
		UserID:      userID,
		IsModerator: isModerator,
		Rooms:       make(map[uuid.UUID]bool),
		chatService: chatService,
		logger:      logger.With("user_id", userID.String()),
	}
}

// CloseSend safely closes the Send channel exactly once
func (c *Client) CloseSend() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// AddRoom records that the client joined an event's room
func (c *Client) AddRoom(eventID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Rooms[eventID] = true
}

// RemoveRoom records that the client left an event's room
func (c *Client) RemoveRoom(eventID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.Rooms, eventID)
}

// InRoom checks if the client has joined an event's room
func (c *Client) InRoom(eventID uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Rooms[eventID]
}

// GetRooms returns a copy of the joined room IDs
func (c *Client) GetRooms() []uuid.UUID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rooms := make([]uuid.UUID, 0, len(c.Rooms))
	for eventID := range c.Rooms {
		rooms = append(rooms, eventID)
	}
	return rooms
}

// ReadPump pumps messages from the websocket connection to the hub.
// This method runs in its own goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error("failed to set read deadline", "error", err)
		return
	}

	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.logger.Error("failed to set read deadline in pong handler", "error", err)
		}
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", "error", err)
			}
			break
		}

		c.handleIncomingMessage(message)
	}
}

// WritePump pumps signals from the hub to the websocket connection.
// This method runs in its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case signal, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("failed to set write deadline", "error", err)
				return
			}

			if !ok {
				// The hub closed the channel. Send close message.
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug("failed to send close message", "error", err)
				}
				return
			}

			if err := c.writeJSON(signal); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("failed to set write deadline for ping", "error", err)
				return
			}

			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}

// writeJSON writes a JSON message to the websocket connection
func (c *Client) writeJSON(signal domain.Signal) error {
	w, err := c.Conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(w).Encode(signal); err != nil {
		_ = w.Close()
		return err
	}

	return w.Close()
}

// --- Incoming Message Handling ---

// ClientMessage is the structure for messages sent from the client.
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RoomPayload is the payload for join/leave messages
type RoomPayload struct {
	EventID uuid.UUID `json:"eventId"`
}

// ChatPayload is the payload for outgoing chat messages
type ChatPayload struct {
	EventID uuid.UUID `json:"eventId"`
	Text    string    `json:"text"`
}

// handleIncomingMessage processes messages received from the client
func (c *Client) handleIncomingMessage(message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		c.logger.Warn("failed to unmarshal client message", "error", err)
		c.sendError(uuid.Nil, "invalid message")
		return
	}

	switch msg.Type {
	case "join_event":
		c.handleJoin(msg.Payload)

	case "leave_event":
		c.handleLeave(msg.Payload)

	case "chat_message":
		c.handleChatMessage(msg.Payload)

	default:
		c.logger.Debug("received unknown message type", "type", msg.Type)
		c.sendError(uuid.Nil, "unknown message type")
	}
}

// handleJoin validates room access against the store before adding the
// client to the room. A stale connection cannot join a room it no longer
// belongs to.
func (c *Client) handleJoin(payload json.RawMessage) {
	var p RoomPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.EventID == uuid.Nil {
		c.sendError(uuid.Nil, "invalid join payload")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if err := c.chatService.JoinRoom(ctx, p.EventID, c.UserID); err != nil {
		c.logger.Debug("join rejected", "event_id", p.EventID, "error", err)
		c.sendError(p.EventID, joinErrorText(err))
		return
	}

	c.Hub.joinRoom(c, p.EventID)

	c.sendSignal(domain.Signal{
		Type:    domain.SignalJoinedEvent,
		EventID: p.EventID,
		Payload: domain.JoinAck{EventID: p.EventID.String()},
	})
}

func (c *Client) handleLeave(payload json.RawMessage) {
	var p RoomPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.EventID == uuid.Nil {
		c.sendError(uuid.Nil, "invalid leave payload")
		return
	}

	c.Hub.leaveRoom(c, p.EventID)
}

// handleChatMessage relays a chat message through the chat service, which
// re-validates membership and persists before broadcasting.
func (c *Client) handleChatMessage(payload json.RawMessage) {
	var p ChatPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.EventID == uuid.Nil {
		c.sendError(uuid.Nil, "invalid chat payload")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	_, err := c.chatService.SendMessage(ctx, ports.SendMessageParams{
		EventID:  p.EventID,
		SenderID: c.UserID,
		Text:     p.Text,
	})
	if err != nil {
		c.logger.Debug("chat message rejected", "event_id", p.EventID, "error", err)
		c.sendError(p.EventID, chatErrorText(err))
	}
}

// sendSignal queues a signal for this client only.
func (c *Client) sendSignal(signal domain.Signal) {
	select {
	case c.Send <- signal:
	default:
		// Buffer full, drop
	}
}

func (c *Client) sendError(eventID uuid.UUID, text string) {
	c.sendSignal(domain.Signal{
		Type:    domain.SignalError,
		EventID: eventID,
		Payload: domain.ErrorText{Text: text},
	})
}

func joinErrorText(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNotRoomMember):
		return "you are not registered to this event"
	case errors.Is(err, apperrors.ErrEventNotFound):
		return "event not found"
	case errors.Is(err, apperrors.ErrEventNotApproved):
		return "event is not approved"
	case errors.Is(err, apperrors.ErrUserBlocked):
		return "your account is blocked"
	default:
		return "could not join event"
	}
}

func chatErrorText(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrMessageTextRequired):
		return "message text is required"
	case errors.Is(err, apperrors.ErrMessageTooLong):
		return "message is too long"
	default:
		return joinErrorText(err)
	}
}
