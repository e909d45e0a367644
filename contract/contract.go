//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-relay/domain/chat"
	"chat-relay/domain/event"
	"context"
	"reflect"
)

// EventSink is the outbound side of one connection.
// Consume must not block on a slow peer.
type EventSink interface {
	Consume(ctx context.Context, e event.Event) error
}

// IIdentityVerifier turns a raw handshake credential into a verified identity.
type IIdentityVerifier interface {
	Verify(ctx context.Context, credential string) (chat.Identity, error)
}

// IFollowPolicy answers whether follower currently follows followed.
// No caching: every call reflects the current social graph.
type IFollowPolicy interface {
	IsFollowing(ctx context.Context, follower, followed chat.Identity) (bool, error)
}

type IMessageRepository interface {
	Append(ctx context.Context, from, to chat.Identity, body string) (chat.Message, error)
	GetMessages(ctx context.Context, a, b chat.Identity) ([]chat.Message, error)
}

type IFollowRepository interface {
	IFollowPolicy
	Follow(ctx context.Context, follower, followed chat.Identity) error
	Unfollow(ctx context.Context, follower, followed chat.Identity) error
}

type IRoomRouter interface {
	Attach(sessionID string, sink EventSink)
	EnsureJoined(sessionID string, key chat.RoomKey) (bool, error)
	Broadcast(ctx context.Context, key chat.RoomKey, e event.Event) int
	Announce(ctx context.Context, e event.Event) int
	LeaveAll(sessionID string)
	Detach(sessionID string)
}

// Worker is a long-running loop started by the supervisor.
// Returning nil means the loop is done and must not be restarted.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName returns the type name of the worker for logs.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
