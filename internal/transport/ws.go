package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/google/uuid"
)

// frame is the wire envelope carrying one event: the topic or destination
// name plus the opaque JSON event body.
type frame struct {
	Destination string          `json:"destination"`
	Body        json.RawMessage `json:"body"`
}

// WSTransport is the WebSocket-backed Transport. A single receive goroutine
// reads frames and dispatches them to subscribed handlers, so handlers for
// one topic always run in arrival order.
type WSTransport struct {
	url    string
	logger *slog.Logger

	mu       sync.RWMutex
	rw       io.ReadWriter
	conn     io.Closer
	handlers map[string][]HandlerFunc

	writeMu sync.Mutex
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewWSTransport creates a WebSocket transport for the given relay URL.
// A nil logger falls back to slog.Default(). Log lines carry a short
// connection id so interleaved transports can be told apart.
func NewWSTransport(url string, logger *slog.Logger) *WSTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &WSTransport{
		url:      url,
		logger:   logger.With("conn", uuid.NewString()[:8]),
		handlers: make(map[string][]HandlerFunc),
		done:     make(chan struct{}),
	}
}

// Connect dials the relay and starts the receive loop.
func (t *WSTransport) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		return errors.New("transport already connected")
	}

	conn, br, _, err := ws.Dial(ctx, t.url)
	if err != nil {
		return fmt.Errorf("failed to connect to relay: %w", err)
	}

	// The dialer may leave pre-read frames in br; reads must drain it
	// before touching the connection again.
	t.conn = conn
	t.done = make(chan struct{})
	if br != nil {
		t.rw = struct {
			io.Reader
			io.Writer
		}{io.MultiReader(br, conn), conn}
	} else {
		t.rw = conn
	}

	t.wg.Add(1)
	go t.receive()

	return nil
}

// Subscribe registers a handler for a topic. Multiple handlers per topic are
// allowed; they fire in subscription order.
func (t *WSTransport) Subscribe(topic string, fn HandlerFunc) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return errors.New("not connected to relay")
	}
	t.handlers[topic] = append(t.handlers[topic], fn)
	return nil
}

// Publish sends an event body to a destination.
func (t *WSTransport) Publish(destination string, body []byte) error {
	t.mu.RLock()
	rw := t.rw
	t.mu.RUnlock()

	if rw == nil {
		return errors.New("not connected to relay")
	}

	data, err := json.Marshal(frame{Destination: destination, Body: body})
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if err := wsutil.WriteClientText(rw, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", destination, err)
	}
	return nil
}

// Close sends a close frame and tears the connection down.
func (t *WSTransport) Close() error {
	t.mu.Lock()
	conn := t.conn
	rw := t.rw
	t.conn = nil
	t.rw = nil
	// Drop subscriptions so a later Connect starts clean instead of
	// stacking duplicate handlers.
	t.handlers = make(map[string][]HandlerFunc)
	t.mu.Unlock()

	if conn == nil {
		return nil
	}

	close(t.done)
	t.writeMu.Lock()
	_ = wsutil.WriteClientMessage(rw, ws.OpClose, nil)
	t.writeMu.Unlock()
	err := conn.Close()
	t.wg.Wait()
	return err
}

func (t *WSTransport) receive() {
	defer t.wg.Done()

	for {
		t.mu.RLock()
		rw := t.rw
		t.mu.RUnlock()
		if rw == nil {
			return
		}

		data, err := wsutil.ReadServerText(rw)
		if err != nil {
			select {
			case <-t.done:
			default:
				t.logger.Warn("relay connection lost", "error", err)
			}
			return
		}

		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			t.logger.Warn("dropping undecodable frame", "error", err)
			continue
		}
		t.dispatch(f)
	}
}

func (t *WSTransport) dispatch(f frame) {
	t.mu.RLock()
	handlers := t.handlers[f.Destination]
	t.mu.RUnlock()

	for _, fn := range handlers {
		fn(f.Body)
	}
}
