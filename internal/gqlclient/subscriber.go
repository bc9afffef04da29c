package gqlclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/noizee/storefront/pkg/logger"
)

// graphql-transport-ws message types.
const (
	msgConnectionInit = "connection_init"
	msgConnectionAck  = "connection_ack"
	msgPing           = "ping"
	msgPong           = "pong"
	msgSubscribe      = "subscribe"
	msgNext           = "next"
	msgError          = "error"
	msgComplete       = "complete"
)

const (
	handshakeTimeout  = 10 * time.Second
	ackTimeout        = 10 * time.Second
	heartbeatInterval = 30 * time.Second
)

// SubscriptionHandler receives the data payload of each subscription event.
type SubscriptionHandler func(data json.RawMessage)

type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Subscriber maintains a graphql-transport-ws connection and dispatches
// subscription events. It is used to push entity invalidations from the
// backend into the client cache while an admin session is open.
type Subscriber struct {
	mu       sync.Mutex
	url      string
	tokens   TokenSource
	log      *logger.Logger
	conn     *websocket.Conn
	handlers map[string]SubscriptionHandler
	done     chan struct{}
}

// NewSubscriber builds a subscriber for the backend's websocket endpoint.
// An http(s) endpoint URL is converted to its ws(s) equivalent.
func NewSubscriber(endpoint string, tokens TokenSource, log *logger.Logger) *Subscriber {
	if log == nil {
		log = logger.NewDefault("gqlsub")
	}
	wsURL := endpoint
	if strings.HasPrefix(wsURL, "https") {
		wsURL = "wss" + wsURL[len("https"):]
	} else if strings.HasPrefix(wsURL, "http") {
		wsURL = "ws" + wsURL[len("http"):]
	}
	return &Subscriber{
		url:      wsURL,
		tokens:   tokens,
		log:      log,
		handlers: make(map[string]SubscriptionHandler),
		done:     make(chan struct{}),
	}
}

// Connect dials the endpoint and completes the connection_init handshake.
func (s *Subscriber) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return nil // already connected
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
		Subprotocols:     []string{"graphql-transport-ws"},
	}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("gqlclient: websocket dial: %w", err)
	}

	initPayload := map[string]string{}
	if s.tokens != nil {
		if token := s.tokens.Token(); token != "" {
			initPayload["Authorization"] = "Bearer " + token
		}
	}
	payload, _ := json.Marshal(initPayload)
	if err := conn.WriteJSON(wsMessage{Type: msgConnectionInit, Payload: payload}); err != nil {
		conn.Close()
		return fmt.Errorf("gqlclient: connection_init: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(ackTimeout))
	var ack wsMessage
	if err := conn.ReadJSON(&ack); err != nil {
		conn.Close()
		return fmt.Errorf("gqlclient: read connection_ack: %w", err)
	}
	if ack.Type != msgConnectionAck {
		conn.Close()
		return fmt.Errorf("gqlclient: expected connection_ack, got %q", ack.Type)
	}
	conn.SetReadDeadline(time.Time{})

	s.conn = conn
	s.done = make(chan struct{})

	go s.readLoop(conn)
	go s.heartbeat(conn)

	return nil
}

// Subscribe starts a subscription and returns its id, used to stop it later.
func (s *Subscriber) Subscribe(query string, variables map[string]interface{}, handler SubscriptionHandler) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return "", fmt.Errorf("gqlclient: not connected")
	}

	id := uuid.NewString()
	payload, err := json.Marshal(Request{Query: query, Variables: variables})
	if err != nil {
		return "", fmt.Errorf("gqlclient: marshal subscribe: %w", err)
	}
	if err := s.conn.WriteJSON(wsMessage{ID: id, Type: msgSubscribe, Payload: payload}); err != nil {
		return "", fmt.Errorf("gqlclient: subscribe: %w", err)
	}
	s.handlers[id] = handler
	return id, nil
}

// Unsubscribe stops a subscription. Unknown ids are ignored.
func (s *Subscriber) Unsubscribe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.handlers[id]; !ok {
		return
	}
	delete(s.handlers, id)
	if s.conn != nil {
		s.conn.WriteJSON(wsMessage{ID: id, Type: msgComplete})
	}
}

// Close tears down the connection. Pending handlers become no-ops.
func (s *Subscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	close(s.done)

	s.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
	err := s.conn.Close()
	s.conn = nil
	s.handlers = make(map[string]SubscriptionHandler)
	return err
}

func (s *Subscriber) readLoop(conn *websocket.Conn) {
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			select {
			case <-s.done:
			default:
				s.log.WithError(err).Warn("subscription connection lost")
			}
			return
		}

		switch msg.Type {
		case msgNext:
			s.mu.Lock()
			handler := s.handlers[msg.ID]
			s.mu.Unlock()
			if handler != nil {
				data := gjsonData(msg.Payload)
				handler(data)
			}
		case msgError:
			s.log.WithField("id", msg.ID).Warnf("subscription error: %s", string(msg.Payload))
			s.mu.Lock()
			delete(s.handlers, msg.ID)
			s.mu.Unlock()
		case msgComplete:
			s.mu.Lock()
			delete(s.handlers, msg.ID)
			s.mu.Unlock()
		case msgPing:
			s.mu.Lock()
			if s.conn != nil {
				s.conn.WriteJSON(wsMessage{Type: msgPong})
			}
			s.mu.Unlock()
		}
	}
}

func (s *Subscriber) heartbeat(conn *websocket.Conn) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.conn != nil {
				s.conn.WriteJSON(wsMessage{Type: msgPing})
			}
			s.mu.Unlock()
		}
	}
}

// gjsonData extracts the data field of a next payload; the payload itself is
// returned when the field is absent.
func gjsonData(payload json.RawMessage) json.RawMessage {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &wrapper); err == nil && len(wrapper.Data) > 0 {
		return wrapper.Data
	}
	return payload
}
