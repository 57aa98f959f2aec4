package feed

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ---------------------------------------------------------------------------
// Live Feed Subscription — websocket stream of migration events
// Optional; the poll loop remains the fallback when the stream is unavailable.
// ---------------------------------------------------------------------------

// SubscriberConfig configures the websocket feed subscriber.
type SubscriberConfig struct {
	WSEndpoint       string `yaml:"ws_endpoint"`
	ReconnectDelayMs int    `yaml:"reconnect_delay_ms"`
	MaxReconnects    int    `yaml:"max_reconnects"` // 0 = unlimited
}

// DefaultSubscriberConfig returns stream defaults.
func DefaultSubscriberConfig() SubscriberConfig {
	return SubscriberConfig{
		ReconnectDelayMs: 1000,
		MaxReconnects:    0,
	}
}

// Subscriber maintains a websocket subscription to the migration stream and
// emits tokens on a channel. Each stream message carries either a single
// token object or a batch array.
type Subscriber struct {
	config SubscriberConfig

	tokenChan chan Token
	closed    atomic.Bool

	// Stats.
	messagesRecv atomic.Int64
	reconnects   atomic.Int64
	connected    atomic.Bool
}

// NewSubscriber creates a websocket feed subscriber.
func NewSubscriber(config SubscriberConfig) *Subscriber {
	return &Subscriber{
		config:    config,
		tokenChan: make(chan Token, 256),
	}
}

// Start begins the subscription loop in the background and returns the token
// channel. The channel is closed when ctx is cancelled or reconnects are
// exhausted; the caller then falls back to polling.
func (s *Subscriber) Start(ctx context.Context) <-chan Token {
	go s.runLoop(ctx)
	return s.tokenChan
}

// Connected reports whether the subscription is currently live.
func (s *Subscriber) Connected() bool {
	return s.connected.Load()
}

func (s *Subscriber) runLoop(ctx context.Context) {
	defer func() {
		if s.closed.CompareAndSwap(false, true) {
			close(s.tokenChan)
		}
	}()

	reconnectDelay := time.Duration(s.config.ReconnectDelayMs) * time.Millisecond
	reconnectCount := 0

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if s.config.MaxReconnects > 0 && reconnectCount > s.config.MaxReconnects {
			log.Error().Int("max", s.config.MaxReconnects).
				Msg("feed ws: reconnect budget exhausted, handing off to poll loop")
			return
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.config.WSEndpoint, nil)
		if err != nil {
			log.Warn().Err(err).Str("endpoint", s.config.WSEndpoint).
				Msg("feed ws: dial failed")
			reconnectCount++
			s.reconnects.Add(1)
			select {
			case <-time.After(reconnectDelay):
				continue
			case <-ctx.Done():
				return
			}
		}

		s.connected.Store(true)
		log.Info().Str("endpoint", s.config.WSEndpoint).Msg("feed ws: subscription active")

		s.readLoop(ctx, conn)

		s.connected.Store(false)
		conn.Close()
		reconnectCount++
		s.reconnects.Add(1)
	}
}

func (s *Subscriber) readLoop(ctx context.Context, conn *websocket.Conn) {
	// Unblock ReadMessage on shutdown.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				log.Warn().Err(err).Msg("feed ws: read failed, reconnecting")
			}
			return
		}

		s.messagesRecv.Add(1)

		for _, token := range decodeStreamMessage(data) {
			select {
			case s.tokenChan <- token:
			case <-ctx.Done():
				return
			}
		}
	}
}

// decodeStreamMessage accepts either a single token object or a batch array.
func decodeStreamMessage(data []byte) []Token {
	var batch []Token
	if err := json.Unmarshal(data, &batch); err == nil {
		return batch
	}

	var single Token
	if err := json.Unmarshal(data, &single); err == nil && single.ContractAddress != "" {
		return []Token{single}
	}

	log.Debug().Str("payload", string(data)).Msg("feed ws: unrecognized message, dropped")
	return nil
}

// SubscriberStats returns subscription statistics.
type SubscriberStats struct {
	MessagesRecv int64 `json:"messages_recv"`
	Reconnects   int64 `json:"reconnects"`
	Connected    bool  `json:"connected"`
}

func (s *Subscriber) Stats() SubscriberStats {
	return SubscriberStats{
		MessagesRecv: s.messagesRecv.Load(),
		Reconnects:   s.reconnects.Load(),
		Connected:    s.connected.Load(),
	}
}
