package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/thiagoazevedo/hotchat/internal/chat"
	"github.com/thiagoazevedo/hotchat/internal/session"
	"github.com/thiagoazevedo/hotchat/internal/transport"
	"github.com/thiagoazevedo/hotchat/pkg/protocol"
)

// newBoundRouter binds the five inbound topics the way the application
// wiring does, with no-op handlers unless overridden afterwards.
func newBoundRouter(email string) *chat.Router {
	r := chat.NewRouter(nil)
	r.BindMessage(protocol.UserTopic(email), func(protocol.Message) {})
	r.BindContacts(protocol.ContactsTopic, func([]protocol.User) {})
	r.BindMessageBatch(protocol.OfflineTopic(email), func([]protocol.Message) {})
	r.BindBlockResult(protocol.BlockTopic(email), func(protocol.BlockResult) {})
	r.BindBlockResult(protocol.CheckBlockTopic(email), func(protocol.BlockResult) {})
	return r
}

func TestSession_ConnectSubscribesAndAnnounces(t *testing.T) {
	broker := transport.NewMemoryBroker()

	// The test side plays the relay: capture the presence announce.
	var announced []protocol.Presence
	_ = broker.Subscribe(protocol.DestAddUser, func(body []byte) {
		var got protocol.Presence
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad presence payload: %v", err)
			return
		}
		announced = append(announced, got)
	})

	var received []string
	router := chat.NewRouter(nil)
	router.BindMessage(protocol.UserTopic("a@x"), func(m protocol.Message) {
		received = append(received, m.Content)
	})

	s := session.New("a@x", broker, router, nil)
	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if got := s.State(); got != session.StateConnected {
		t.Fatalf("State() = %v, want %v", got, session.StateConnected)
	}
	if len(announced) != 1 || announced[0].UserEmailFrom != "a@x" {
		t.Fatalf("presence announces = %v, want one for a@x", announced)
	}

	// Inbound events on the subscribed topic reach the router.
	_ = broker.Publish(protocol.UserTopic("a@x"), []byte(`{"content":"hi"}`))
	if len(received) != 1 || received[0] != "hi" {
		t.Errorf("routed messages = %v, want [hi]", received)
	}
}

func TestSession_DoubleConnectIsNoOp(t *testing.T) {
	broker := transport.NewMemoryBroker()

	announces := 0
	_ = broker.Subscribe(protocol.DestAddUser, func([]byte) { announces++ })

	s := session.New("a@x", broker, newBoundRouter("a@x"), nil)
	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("second Connect() error = %v", err)
	}

	if announces != 1 {
		t.Errorf("presence announced %d times, want 1 (no duplicate subscriptions or announces)", announces)
	}
}

func TestSession_ConnectFailure(t *testing.T) {
	s := session.New("a@x", &failingTransport{}, newBoundRouter("a@x"), nil)

	err := s.Connect(context.Background())
	if err == nil {
		t.Fatal("Connect() expected error")
	}
	if got := s.State(); got != session.StateFailed {
		t.Errorf("State() = %v, want %v", got, session.StateFailed)
	}
}

func TestSession_PublishRequiresConnection(t *testing.T) {
	s := session.New("a@x", transport.NewMemoryBroker(), newBoundRouter("a@x"), nil)

	if err := s.Publish(protocol.DestSendMessage, []byte(`{}`)); err == nil {
		t.Error("Publish() before Connect() expected error")
	}
}

func TestSession_Disconnect(t *testing.T) {
	broker := transport.NewMemoryBroker()
	s := session.New("a@x", broker, newBoundRouter("a@x"), nil)

	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	s.Disconnect()

	if got := s.State(); got != session.StateDisconnected {
		t.Errorf("State() = %v, want %v", got, session.StateDisconnected)
	}
	if err := s.Publish(protocol.DestSendMessage, []byte(`{}`)); err == nil {
		t.Error("Publish() after Disconnect() expected error")
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state session.State
		want  string
	}{
		{session.StateDisconnected, "DISCONNECTED"},
		{session.StateConnecting, "CONNECTING"},
		{session.StateConnected, "CONNECTED"},
		{session.StateFailed, "FAILED"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

// failingTransport always refuses to connect.
type failingTransport struct{}

func (f *failingTransport) Connect(context.Context) error { return errors.New("relay unreachable") }
func (f *failingTransport) Subscribe(string, transport.HandlerFunc) error {
	return errors.New("not connected")
}
func (f *failingTransport) Publish(string, []byte) error { return errors.New("not connected") }
func (f *failingTransport) Close() error                 { return nil }
