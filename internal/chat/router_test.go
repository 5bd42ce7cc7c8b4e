package chat_test

import (
	"testing"

	"github.com/thiagoazevedo/hotchat/internal/chat"
	"github.com/thiagoazevedo/hotchat/pkg/protocol"
)

func TestRouter_DispatchesByTopic(t *testing.T) {
	router := chat.NewRouter(nil)

	var gotMsg protocol.Message
	var gotUsers []protocol.User
	router.BindMessage("user/a@x", func(m protocol.Message) { gotMsg = m })
	router.BindContacts("listContacts", func(us []protocol.User) { gotUsers = us })

	router.Handle("user/a@x", []byte(`{"idUserFrom":7,"content":"hi"}`))
	router.Handle("listContacts", []byte(`[{"id":1,"email":"a@x"}]`))

	if gotMsg.IDUserFrom != 7 || gotMsg.Content != "hi" {
		t.Errorf("message handler saw %+v, want id 7 content hi", gotMsg)
	}
	if len(gotUsers) != 1 {
		t.Errorf("roster handler saw %d users, want 1", len(gotUsers))
	}
}

func TestRouter_UnknownTopicIgnored(t *testing.T) {
	router := chat.NewRouter(nil)

	fired := false
	router.BindMessage("user/a@x", func(protocol.Message) { fired = true })

	// Must not panic and must not reach any handler.
	router.Handle("somethingElse", []byte(`{}`))

	if fired {
		t.Error("handler fired for an unbound topic")
	}
}

func TestRouter_MalformedBodyDropped(t *testing.T) {
	router := chat.NewRouter(nil)

	fired := false
	router.BindMessage("user/a@x", func(protocol.Message) { fired = true })

	router.Handle("user/a@x", []byte(`{broken`))

	if fired {
		t.Error("handler fired for a malformed body")
	}

	// The session must survive: a well-formed event still routes.
	router.Handle("user/a@x", []byte(`{"content":"ok"}`))
	if !fired {
		t.Error("handler did not fire after an earlier malformed body")
	}
}

func TestRouter_BlockResultAndBatch(t *testing.T) {
	router := chat.NewRouter(nil)

	var gotBlock protocol.BlockResult
	var gotBatch []protocol.Message
	router.BindBlockResult("userBlock/a@x", func(r protocol.BlockResult) { gotBlock = r })
	router.BindMessageBatch("messagesOffline/a@x", func(ms []protocol.Message) { gotBatch = ms })

	router.Handle("userBlock/a@x", []byte(`{"userBlocked":true,"message":"blocked"}`))
	router.Handle("messagesOffline/a@x", []byte(`[{"content":"one"},{"content":"two"}]`))

	if !gotBlock.UserBlocked {
		t.Error("block handler saw UserBlocked = false, want true")
	}
	if len(gotBatch) != 2 {
		t.Errorf("batch handler saw %d messages, want 2", len(gotBatch))
	}
}

func TestRouter_Topics(t *testing.T) {
	router := chat.NewRouter(nil)
	router.BindMessage("user/a@x", func(protocol.Message) {})
	router.BindContacts("listContacts", func([]protocol.User) {})

	if got := len(router.Topics()); got != 2 {
		t.Errorf("len(Topics()) = %d, want 2", got)
	}
}
