package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thiagoazevedo/hotchat/internal/api"
	"github.com/thiagoazevedo/hotchat/pkg/protocol"
)

func newClient(t *testing.T, baseURL string) *api.Client {
	t.Helper()
	c, err := api.NewClient(api.ClientConfig{BaseURL: baseURL})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	if _, err := api.NewClient(api.ClientConfig{}); err == nil {
		t.Error("NewClient() without BaseURL expected error")
	}
}

func TestCreateAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/create" {
			t.Errorf("path = %q, want /user/create", r.URL.Path)
		}
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if payload["email"] != "a@x" {
			t.Errorf("email = %q, want a@x", payload["email"])
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)
	if err := c.CreateAccount(context.Background(), "Alice", "a@x", "secret1"); err != nil {
		t.Errorf("CreateAccount() error = %v", err)
	}
}

func TestCreateAccount_ValidationErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("email already registered"))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)
	err := c.CreateAccount(context.Background(), "Alice", "a@x", "secret1")
	if err == nil {
		t.Fatal("CreateAccount() expected error")
	}

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *api.APIError", err)
	}
	if apiErr.Body != "email already registered" {
		t.Errorf("Body = %q, want server validation text", apiErr.Body)
	}
}

func TestLoadCurrentUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/user/load" {
			t.Errorf("path = %q, want /user/user/load", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(protocol.User{ID: 1, Name: "Alice", Email: "a@x"})
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)
	user, err := c.LoadCurrentUser(context.Background())
	if err != nil {
		t.Fatalf("LoadCurrentUser() error = %v", err)
	}
	if user.ID != 1 || user.Email != "a@x" {
		t.Errorf("user = %+v, want id 1 email a@x", user)
	}
}

func TestFetchHistory_PeriodGuard(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)
	_, err := c.FetchHistory(context.Background(), api.HistoryQuery{
		UserEmailFrom: "a@x",
		UserEmailTo:   "b@x",
		Start:         "01/01/2024",
		End:           "",
	})

	if !errors.Is(err, api.ErrPeriodRequired) {
		t.Fatalf("FetchHistory() error = %v, want %v", err, api.ErrPeriodRequired)
	}
	if requests != 0 {
		t.Errorf("server saw %d requests, want 0 (guard fires before the network)", requests)
	}
}

func TestFetchHistory_InvalidDateRejected(t *testing.T) {
	c := newClient(t, "http://localhost:1")
	_, err := c.FetchHistory(context.Background(), api.HistoryQuery{
		Start: "2024-01-01",
		End:   "31/01/2024",
	})
	if err == nil {
		t.Error("FetchHistory() with non-DD/MM/YYYY start expected error")
	}
}

func TestFetchHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages/history" {
			t.Errorf("path = %q, want /messages/history", r.URL.Path)
		}
		var q api.HistoryQuery
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			t.Errorf("bad query body: %v", err)
		}
		if q.Start != "01/01/2024" || q.End != "31/01/2024" {
			t.Errorf("period = %q..%q, want 01/01/2024..31/01/2024", q.Start, q.End)
		}
		_ = json.NewEncoder(w).Encode([]protocol.Message{
			{Content: "older"}, {Content: "newer"},
		})
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)
	messages, err := c.FetchHistory(context.Background(), api.HistoryQuery{
		UserEmailFrom: "a@x",
		UserEmailTo:   "b@x",
		Start:         "01/01/2024",
		End:           "31/01/2024",
	})
	if err != nil {
		t.Fatalf("FetchHistory() error = %v", err)
	}
	if len(messages) != 2 || messages[0].Content != "older" {
		t.Errorf("messages = %v, want ordered [older newer]", messages)
	}
}
