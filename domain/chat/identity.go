// Package chat holds the direct-messaging concepts shared by the runtime and the storage:
// identities, room keys and persisted messages.
package chat

import (
	"chat-relay/errors"
	"fmt"
	"strings"
)

// Identity is the verified subject of a bearer credential.
type Identity string

func (i Identity) String() string {
	return string(i)
}

// Validate rejects empty identities and identities holding the separator
// character. Rejecting the whole separator only is not enough: "&x&" with
// "x&" and "&x&" with "&x" would share a room key.
func (i Identity) Validate() error {
	if strings.TrimSpace(string(i)) == "" {
		return fmt.Errorf("%w: empty identity", errors.ErrInvalidIdentity)
	}
	if strings.Contains(string(i), separatorChar) {
		return fmt.Errorf("%w: %q contains the room separator character %q", errors.ErrInvalidIdentity, string(i), separatorChar)
	}
	return nil
}
