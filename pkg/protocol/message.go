// Package protocol defines the event payloads exchanged with the chat
// relay and the display formats for their date fields.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// Wire and display layouts for date fields. History queries carry calendar
// dates as DD/MM/YYYY strings; message timestamps are full instants rendered
// as DD/MM/YYYY HH:mm.
const (
	DateLayout      = "02/01/2006"
	TimestampLayout = "02/01/2006 15:04"
)

// User is a roster entry. Email is the identity key on the wire; ID scopes
// per-contact UI state. Only Online changes after the user is loaded.
type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Online bool   `json:"online"`
}

// Message is a single chat message. Messages are immutable once created;
// corrections are new messages, never edits.
type Message struct {
	UserEmailFrom string    `json:"userEmailFrom"`
	UserEmailTo   string    `json:"userEmailTo"`
	IDUserFrom    int       `json:"idUserFrom"`
	Content       string    `json:"content"`
	Date          time.Time `json:"date"`
}

// ChatMessage is the outbound send payload. The relay stamps the delivery
// date and the sender's numeric id before fanning the message out.
type ChatMessage struct {
	UserEmailFrom string `json:"userEmailFrom"`
	UserEmailTo   string `json:"userEmailTo"`
	Content       string `json:"content"`
}

// UserRef identifies a user by email inside block payloads.
type UserRef struct {
	Email string `json:"email"`
}

// UserBlock is the outbound payload for both the block toggle and the
// block-status check. The check omits Block.
type UserBlock struct {
	UserFrom UserRef `json:"userFrom"`
	UserTo   UserRef `json:"userTo"`
	Block    bool    `json:"block,omitempty"`
}

// BlockResult is the server's answer to a block toggle or a block-status
// check. UserBlocked is authoritative; Message is display text for the
// toggle confirmation.
type BlockResult struct {
	UserBlocked bool   `json:"userBlocked"`
	Message     string `json:"message,omitempty"`
}

// Presence announces the sending user as online after connecting.
type Presence struct {
	UserEmailFrom string `json:"userEmailFrom"`
}

// Encode encodes an event payload as a JSON event body.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event payload: %w", err)
	}
	return data, nil
}

// DecodeMessage decodes a direct-message event body.
func DecodeMessage(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("failed to decode message payload: %w", err)
	}
	return m, nil
}

// DecodeMessages decodes an offline-batch or history event body.
func DecodeMessages(data []byte) ([]Message, error) {
	var ms []Message
	if err := json.Unmarshal(data, &ms); err != nil {
		return nil, fmt.Errorf("failed to decode message batch payload: %w", err)
	}
	return ms, nil
}

// DecodeUsers decodes a contact-roster broadcast body.
func DecodeUsers(data []byte) ([]User, error) {
	var us []User
	if err := json.Unmarshal(data, &us); err != nil {
		return nil, fmt.Errorf("failed to decode roster payload: %w", err)
	}
	return us, nil
}

// DecodeBlockResult decodes a block confirmation or check response body.
func DecodeBlockResult(data []byte) (BlockResult, error) {
	var r BlockResult
	if err := json.Unmarshal(data, &r); err != nil {
		return BlockResult{}, fmt.Errorf("failed to decode block result payload: %w", err)
	}
	return r, nil
}

// FormatTimestamp renders a message instant for display.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
