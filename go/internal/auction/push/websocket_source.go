package push

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketConfig holds configuration for the push WebSocket connection
type WebSocketConfig struct {
	URL              string
	Header           http.Header
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
	ReadTimeout      time.Duration
	PingInterval     time.Duration
	MaxMessageSize   int64
	ReadBufferSize   int
	WriteBufferSize  int
}

// DefaultWebSocketConfig returns default WebSocket configuration
func DefaultWebSocketConfig(rawURL string) WebSocketConfig {
	return WebSocketConfig{
		URL:              rawURL,
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     10 * time.Second,
		ReadTimeout:      60 * time.Second,
		PingInterval:     30 * time.Second,
		MaxMessageSize:   64 * 1024, // rankings grow with the bidder count
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
	}
}

// WebSocketURL adds the auction id and user name to a push endpoint URL
func WebSocketURL(endpoint, auctionID, userName string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse push url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported push url scheme %q", u.Scheme)
	}

	q := u.Query()
	q.Set("auction_id", auctionID)
	if userName != "" {
		q.Set("user_name", userName)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// WebSocketSource reads auction events from a WebSocket endpoint
type WebSocketSource struct {
	config WebSocketConfig
	dialer *websocket.Dialer
}

// NewWebSocketSource creates a new WebSocket push source
func NewWebSocketSource(config WebSocketConfig) *WebSocketSource {
	return &WebSocketSource{
		config: config,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: config.HandshakeTimeout,
			ReadBufferSize:   config.ReadBufferSize,
			WriteBufferSize:  config.WriteBufferSize,
		},
	}
}

func (s *WebSocketSource) Name() string {
	return "websocket"
}

// Subscribe dials the endpoint and reads frames until ctx is done or the connection drops
func (s *WebSocketSource) Subscribe(ctx context.Context, onConnected func(), handle func(raw []byte)) error {
	conn, resp, err := s.dialer.DialContext(ctx, s.config.URL, s.config.Header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("failed to dial push websocket (status %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("failed to dial push websocket: %w", err)
	}

	c := &connection{
		ID:          uuid.New().String(),
		Conn:        conn,
		config:      s.config,
		ConnectedAt: time.Now(),
		LastPing:    time.Now(),
	}

	log.Info().
		Str("connection_id", c.ID).
		Str("url", s.config.URL).
		Msg("WebSocket connection established")

	onConnected()

	pumpCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if s.config.PingInterval > 0 {
		go c.pingPump(pumpCtx)
	}

	// Unblock ReadMessage on shutdown
	go func() {
		<-pumpCtx.Done()
		if ctx.Err() != nil {
			c.close()
		}
	}()

	err = c.readPump(handle)
	if ctx.Err() != nil {
		return nil
	}
	c.Conn.Close()
	return err
}

// connection is one live WebSocket connection to the push server
type connection struct {
	ID     string
	Conn   *websocket.Conn
	config WebSocketConfig

	// Connection metadata
	ConnectedAt time.Time
	LastPing    time.Time
}

// pingPump keeps the connection alive. WriteControl is safe to call
// concurrently with the read pump.
func (c *connection) pingPump(ctx context.Context) {
	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deadline := time.Now().Add(c.config.WriteTimeout)
			if err := c.Conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump handles reading messages from the WebSocket connection
func (c *connection) readPump(handle func(raw []byte)) error {
	c.Conn.SetReadLimit(c.config.MaxMessageSize)
	c.extendReadDeadline()
	c.Conn.SetPongHandler(func(string) error {
		c.extendReadDeadline()
		c.LastPing = time.Now()
		return nil
	})

	for {
		messageType, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("unexpected WebSocket close error")
			}
			return fmt.Errorf("read push frame: %w", err)
		}

		c.extendReadDeadline()
		if messageType != websocket.TextMessage {
			continue
		}
		handle(message)
	}
}

func (c *connection) extendReadDeadline() {
	if c.config.ReadTimeout > 0 {
		c.Conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
	}
}

func (c *connection) close() {
	deadline := time.Now().Add(c.config.WriteTimeout)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := c.Conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
		log.Debug().Err(err).Str("connection_id", c.ID).Msg("failed to send close frame")
	}
	c.Conn.Close()

	log.Info().
		Str("connection_id", c.ID).
		Dur("connected_for", time.Since(c.ConnectedAt)).
		Msg("WebSocket connection closed")
}
