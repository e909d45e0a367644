// Package event describes the frames exchanged with connected clients.
package event

import (
	"encoding/json"
)

type Name string

// Client to server.
const (
	LoadChat    Name = "load chat"
	ChatMessage Name = "chat message"
)

// Server to client.
const (
	AllMessages Name = "allMessages"
	Message     Name = "message"
	Error       Name = "error"
)

// Event is an outbound frame. Data is encoded as-is, so a nil Data is sent as null.
type Event struct {
	Name Name `json:"event"`
	Data any  `json:"data"`
}

// Inbound is a frame read from a client before its payload is decoded.
type Inbound struct {
	Name Name            `json:"event"`
	Data json.RawMessage `json:"data"`
}

type LoadChatPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type ChatMessagePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewError(code, message string) Event {
	return Event{Name: Error, Data: ErrorPayload{Code: code, Message: message}}
}
