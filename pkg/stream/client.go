// Package stream reads the public market data WebSocket channel: live book
// snapshots and price updates for a set of outcome tokens.
package stream

import (
	"context"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// BookMessage is one message from the market channel. EventType is "book"
// for full snapshots and "price_change" for incremental updates.
type BookMessage struct {
	EventType string `json:"event_type"`
	AssetID   string `json:"asset_id"`
	Market    string `json:"market"`
	Timestamp string `json:"timestamp"`
	Bids      []struct {
		Price string `json:"price"`
		Size  string `json:"size"`
	} `json:"bids,omitempty"`
	Asks []struct {
		Price string `json:"price"`
		Size  string `json:"size"`
	} `json:"asks,omitempty"`
	Price string `json:"price,omitempty"`
	Side  string `json:"side,omitempty"`
}

// Client holds a single market-channel WebSocket connection. It subscribes
// once at connect time; for a different token set, open a new client.
type Client struct {
	url      string
	tokenIDs []string
	logger   *zap.Logger

	conn     *websocket.Conn
	messages chan *BookMessage
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// Config holds stream client configuration.
type Config struct {
	URL          string
	TokenIDs     []string
	DialTimeout  time.Duration
	PingInterval time.Duration
	BufferSize   int
	Logger       *zap.Logger
}

// Connect dials the market channel and subscribes to the configured tokens.
func Connect(ctx context.Context, cfg *Config) (*Client, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 10 * time.Second
	}
	pingInterval := cfg.PingInterval
	if pingInterval == 0 {
		pingInterval = 10 * time.Second
	}
	bufferSize := cfg.BufferSize
	if bufferSize == 0 {
		bufferSize = 256
	}

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}

	conn, _, err := dialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.URL, err)
	}

	subscribe := map[string]interface{}{
		"assets_ids": cfg.TokenIDs,
		"type":       "market",
	}
	if err := conn.WriteJSON(subscribe); err != nil {
		conn.Close()
		return nil, fmt.Errorf("write subscribe message: %w", err)
	}

	cfg.Logger.Info("stream-connected",
		zap.String("url", cfg.URL),
		zap.Int("tokens", len(cfg.TokenIDs)))

	loopCtx, cancel := context.WithCancel(context.Background())

	c := &Client{
		url:      cfg.URL,
		tokenIDs: cfg.TokenIDs,
		logger:   cfg.Logger,
		conn:     conn,
		messages: make(chan *BookMessage, bufferSize),
		cancel:   cancel,
	}

	c.wg.Add(2)
	go c.readLoop(loopCtx)
	go c.pingLoop(loopCtx, pingInterval)

	return c, nil
}

// Messages returns the channel of parsed market messages. It is closed when
// the connection drops or the client is closed.
func (c *Client) Messages() <-chan *BookMessage {
	return c.messages
}

func (c *Client) readLoop(ctx context.Context) {
	defer c.wg.Done()
	defer close(c.messages)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				c.logger.Warn("stream-read-error", zap.Error(err))
			}
			return
		}

		// The channel sends arrays of messages; heartbeats arrive as an
		// empty array, control messages as a single object.
		var msgs []BookMessage
		if err := json.Unmarshal(raw, &msgs); err != nil {
			c.logger.Debug("stream-non-data-message", zap.Int("bytes", len(raw)))
			continue
		}

		for i := range msgs {
			MessagesReceivedTotal.WithLabelValues(msgs[i].EventType).Inc()

			select {
			case c.messages <- &msgs[i]:
			default:
				MessagesDroppedTotal.Inc()
				c.logger.Warn("stream-buffer-full", zap.String("event-type", msgs[i].EventType))
			}
		}
	}
}

func (c *Client) pingLoop(ctx context.Context, interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := c.conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(time.Second))
			if err != nil {
				c.logger.Warn("stream-ping-error", zap.Error(err))
			}
		}
	}
}

// Close tears down the connection and waits for the loops to exit.
func (c *Client) Close() error {
	c.cancel()
	err := c.conn.Close()
	c.wg.Wait()

	c.logger.Info("stream-closed")
	return err
}
