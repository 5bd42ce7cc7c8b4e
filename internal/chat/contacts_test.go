package chat_test

import (
	"testing"

	"github.com/thiagoazevedo/hotchat/internal/chat"
	"github.com/thiagoazevedo/hotchat/pkg/protocol"
)

func TestContactList_ReplaceExcludesSelf(t *testing.T) {
	list := chat.NewContactList()

	list.Replace([]protocol.User{
		{ID: 1, Email: "a@x", Online: true},
		{ID: 2, Email: "b@x", Online: false},
	}, "a@x")

	contacts := list.Contacts()
	if len(contacts) != 1 {
		t.Fatalf("len(contacts) = %d, want 1", len(contacts))
	}
	if contacts[0].Email != "b@x" || contacts[0].Online {
		t.Errorf("contacts[0] = %+v, want b@x offline", contacts[0])
	}
}

func TestContactList_ReplaceIsFullReplacement(t *testing.T) {
	list := chat.NewContactList()

	list.Replace([]protocol.User{
		{ID: 2, Email: "b@x", Online: true},
		{ID: 3, Email: "c@x", Online: true},
	}, "a@x")
	list.Replace([]protocol.User{
		{ID: 2, Email: "b@x", Online: false},
	}, "a@x")

	contacts := list.Contacts()
	if len(contacts) != 1 {
		t.Fatalf("len(contacts) = %d, want 1 (old roster must not be merged)", len(contacts))
	}
	if contacts[0].Online {
		t.Error("contacts[0].Online = true, want false (last broadcast wins)")
	}
}

func TestContactList_Lookups(t *testing.T) {
	list := chat.NewContactList()
	list.Replace([]protocol.User{{ID: 2, Name: "Bob", Email: "b@x"}}, "a@x")

	if u, ok := list.ByID(2); !ok || u.Name != "Bob" {
		t.Errorf("ByID(2) = %+v, %v, want Bob, true", u, ok)
	}
	if u, ok := list.ByEmail("b@x"); !ok || u.ID != 2 {
		t.Errorf("ByEmail(b@x) = %+v, %v, want id 2, true", u, ok)
	}
	if _, ok := list.ByID(99); ok {
		t.Error("ByID(99) = true, want false")
	}
}
