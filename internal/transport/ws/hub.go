package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgQuestionServed   MessageType = "question_served"
	MsgAnswerGraded     MessageType = "answer_graded"
	MsgSessionCompleted MessageType = "session_completed"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans session events out to the WebSocket clients watching that session
type Hub struct {
	// sessionID -> connections
	conns map[string]map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	SessionID string
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to broadcast. Close drops every subscriber
// of the session after delivery.
type BroadcastMessage struct {
	SessionID string
	Message   *Message
	Close     bool
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.SessionID] == nil {
				h.conns[conn.SessionID] = make(map[*Connection]struct{})
			}
			h.conns[conn.SessionID][conn] = struct{}{}
			h.mu.Unlock()
			log.Printf("Subscriber connected to session %s", conn.SessionID)

		case conn := <-h.unregister:
			h.mu.Lock()
			h.remove(conn)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			if msg.Message != nil {
				data, _ := json.Marshal(msg.Message)
				for conn := range h.conns[msg.SessionID] {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			}
			if msg.Close {
				for conn := range h.conns[msg.SessionID] {
					h.remove(conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove closes conn once. Caller holds h.mu.
func (h *Hub) remove(conn *Connection) {
	subs, ok := h.conns[conn.SessionID]
	if !ok {
		return
	}
	if _, ok := subs[conn]; !ok {
		return
	}
	delete(subs, conn)
	close(conn.Send)
	if len(subs) == 0 {
		delete(h.conns, conn.SessionID)
	}
	log.Printf("Subscriber disconnected from session %s", conn.SessionID)
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Subscribers returns the number of connections watching a session
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[sessionID])
}

// BroadcastToSession sends a message to every subscriber (implements service.Broadcaster).
// It never blocks; the message is dropped when the hub is backed up.
func (h *Hub) BroadcastToSession(sessionID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	msg := &BroadcastMessage{
		SessionID: sessionID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
	select {
	case h.broadcast <- msg:
	default:
		log.Printf("Hub backed up, dropped %s for session %s", msgType, sessionID)
	}
}

// DisconnectSession closes all subscribers of a session (implements service.Broadcaster).
// It never blocks; a backed-up hub gets the close delivered asynchronously.
func (h *Hub) DisconnectSession(sessionID string) {
	msg := &BroadcastMessage{
		SessionID: sessionID,
		Close:     true,
	}
	select {
	case h.broadcast <- msg:
	default:
		go func() { h.broadcast <- msg }()
	}
}
