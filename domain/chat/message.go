package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable once persisted. ID and SentAt are assigned by the store.
type Message struct {
	ID     uuid.UUID `json:"id"`
	From   Identity  `json:"from"`
	To     Identity  `json:"to"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"date"`
}

// Room returns the key of the conversation the message belongs to.
func (m Message) Room() RoomKey {
	return NewRoomKey(m.From, m.To)
}
