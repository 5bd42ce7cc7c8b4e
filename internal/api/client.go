// Package api talks to the chat backend's request/response endpoints:
// account creation, logged-in user load, and message history queries.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/thiagoazevedo/hotchat/pkg/protocol"
)

// ErrPeriodRequired is returned when a history query is missing either end
// of its date range. No request is issued.
var ErrPeriodRequired = errors.New("period required")

// APIError is a non-2xx response. Body carries the server's error text,
// which for account creation is validation text meant for the user.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Body)
}

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the backend's base URL (e.g., "http://localhost:8080").
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Client issues the backend's JSON request/response calls. Failures are
// returned for alert-level display; nothing is retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a backend client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.New("api: BaseURL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// CreateAccount registers a new user. A validation failure surfaces the
// server's error text through *APIError.
func (c *Client) CreateAccount(ctx context.Context, name, email, password string) error {
	payload := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	if err := c.doPost(ctx, "/user/create", payload, nil); err != nil {
		return fmt.Errorf("create account failed: %w", err)
	}
	return nil
}

// LoadCurrentUser returns the logged-in user. The session cookie identifies
// the account; no parameters are sent.
func (c *Client) LoadCurrentUser(ctx context.Context) (protocol.User, error) {
	var user protocol.User
	if err := c.doPost(ctx, "/user/user/load", nil, &user); err != nil {
		return protocol.User{}, fmt.Errorf("load current user failed: %w", err)
	}
	return user, nil
}

// HistoryQuery selects the messages exchanged between two users inside a
// calendar-date range. Start and End travel as DD/MM/YYYY strings.
type HistoryQuery struct {
	UserEmailFrom string `json:"userEmailFrom"`
	UserEmailTo   string `json:"userEmailTo"`
	Start         string `json:"start"`
	End           string `json:"end"`
}

// Validate rejects an incomplete or unparsable date range before any
// request is made.
func (q HistoryQuery) Validate() error {
	if q.Start == "" || q.End == "" {
		return ErrPeriodRequired
	}
	if _, err := time.Parse(protocol.DateLayout, q.Start); err != nil {
		return fmt.Errorf("invalid start date %q: %w", q.Start, err)
	}
	if _, err := time.Parse(protocol.DateLayout, q.End); err != nil {
		return fmt.Errorf("invalid end date %q: %w", q.End, err)
	}
	return nil
}

// FetchHistory returns the ordered messages matching the query.
func (c *Client) FetchHistory(ctx context.Context, q HistoryQuery) ([]protocol.Message, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var messages []protocol.Message
	if err := c.doPost(ctx, "/messages/history", q, &messages); err != nil {
		return nil, fmt.Errorf("fetch history failed: %w", err)
	}
	return messages, nil
}

func (c *Client) doPost(ctx context.Context, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("backend request failed", "path", path, "status", resp.StatusCode)
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
