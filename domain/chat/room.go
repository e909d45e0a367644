package chat

import "strings"

// RoomSeparator joins the two participants of a room key. Valid identities
// never contain separatorChar, so the key splits back unambiguously.
const (
	RoomSeparator = "&&&&"
	separatorChar = "&"
)

// RoomKey identifies the ephemeral routing group of a two-party conversation.
type RoomKey string

// NewRoomKey is symmetric: NewRoomKey(a, b) == NewRoomKey(b, a).
// Ordering is byte-wise so that every node computes the same key.
func NewRoomKey(a, b Identity) RoomKey {
	first, second := string(a), string(b)
	if strings.Compare(first, second) > 0 {
		first, second = second, first
	}
	return RoomKey(first + RoomSeparator + second)
}

// Participants splits the key back into its two sorted identities.
func (k RoomKey) Participants() (Identity, Identity) {
	first, second, _ := strings.Cut(string(k), RoomSeparator)
	return Identity(first), Identity(second)
}

func (k RoomKey) String() string {
	return string(k)
}
