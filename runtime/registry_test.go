package runtime

import (
	"chat-relay/domain/chat"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Sink records every consumed event.
type Sink struct {
	mu     sync.Mutex
	events []event.Event
	err    error
}

func (s *Sink) Consume(_ context.Context, e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, e)
	return nil
}

func (s *Sink) Events() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]event.Event(nil), s.events...)
}

func TestRegistry_EnsureJoined_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default(), nil)
	sessionID := uuid.NewString()
	key := chat.NewRoomKey("alice", "bob")
	registry.Attach(sessionID, &Sink{})

	// When the session joins the same room twice
	joined, err := registry.EnsureJoined(sessionID, key)
	req.NoError(err)
	req.True(joined)
	joined, err = registry.EnsureJoined(sessionID, key)
	req.NoError(err)
	req.False(joined)

	// Then it is a member once
	req.Equal([]string{sessionID}, registry.Members(key))
	req.Equal([]chat.RoomKey{key}, registry.Rooms(sessionID))
	req.Equal(1, registry.RoomCount())
}

func TestRegistry_EnsureJoined_Unknown_Session(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default(), nil)

	_, err := registry.EnsureJoined("ghost", chat.NewRoomKey("alice", "bob"))

	req.ErrorIs(err, errors.ErrUnknownSession)
	req.Zero(registry.RoomCount())
}

func TestRegistry_Broadcast_Reaches_Every_Member_Sender_Included(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default(), nil)
	key := chat.NewRoomKey("alice", "bob")
	alice, bob, carol := &Sink{}, &Sink{}, &Sink{}
	registry.Attach("alice-session", alice)
	registry.Attach("bob-session", bob)
	registry.Attach("carol-session", carol)

	// Given alice and bob in their room, carol elsewhere
	_, err := registry.EnsureJoined("alice-session", key)
	req.NoError(err)
	_, err = registry.EnsureJoined("bob-session", key)
	req.NoError(err)
	_, err = registry.EnsureJoined("carol-session", chat.NewRoomKey("carol", "dave"))
	req.NoError(err)

	// When alice broadcasts
	e := event.Event{Name: event.Message, Data: "hi"}
	delivered := registry.Broadcast(context.Background(), key, e)

	// Then both members get it, carol does not
	req.Equal(2, delivered)
	req.Equal([]event.Event{e}, alice.Events())
	req.Equal([]event.Event{e}, bob.Events())
	req.Empty(carol.Events())
}

func TestRegistry_Broadcast_Unknown_Room(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default(), nil)

	delivered := registry.Broadcast(context.Background(), chat.NewRoomKey("a", "b"), event.Event{Name: event.Message})

	req.Zero(delivered)
}

func TestRegistry_Broadcast_Skips_Failing_Sink(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default(), nil)
	key := chat.NewRoomKey("alice", "bob")
	healthy, broken := &Sink{}, &Sink{err: errors.ErrBufferFull}
	registry.Attach("healthy", healthy)
	registry.Attach("broken", broken)
	_, err := registry.EnsureJoined("healthy", key)
	req.NoError(err)
	_, err = registry.EnsureJoined("broken", key)
	req.NoError(err)

	delivered := registry.Broadcast(context.Background(), key, event.Event{Name: event.Message})

	req.Equal(1, delivered)
	req.Len(healthy.Events(), 1)
}

func TestRegistry_LeaveAll(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default(), nil)
	registry.Attach("alice-session", &Sink{})
	registry.Attach("bob-session", &Sink{})
	shared := chat.NewRoomKey("alice", "bob")

	// Given alice in three rooms, one shared with bob
	for _, key := range []chat.RoomKey{shared, chat.NewRoomKey("alice", "carol"), chat.NewRoomKey("alice", "dave")} {
		_, err := registry.EnsureJoined("alice-session", key)
		req.NoError(err)
	}
	_, err := registry.EnsureJoined("bob-session", shared)
	req.NoError(err)

	// When alice leaves everything
	registry.LeaveAll("alice-session")

	// Then she is in no room, empty rooms are gone and bob stays
	req.Empty(registry.Rooms("alice-session"))
	req.Equal(1, registry.RoomCount())
	req.Equal([]string{"bob-session"}, registry.Members(shared))

	// And leaving again is harmless
	registry.LeaveAll("alice-session")
	registry.LeaveAll("never-attached")
}

func TestRegistry_Detach_Forgets_The_Session(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default(), nil)
	registry.Attach("alice-session", &Sink{})
	_, err := registry.EnsureJoined("alice-session", chat.NewRoomKey("alice", "bob"))
	req.NoError(err)

	registry.Detach("alice-session")

	req.Zero(registry.SessionCount())
	req.Zero(registry.RoomCount())
	_, err = registry.EnsureJoined("alice-session", chat.NewRoomKey("alice", "bob"))
	req.ErrorIs(err, errors.ErrUnknownSession)
}

func TestRegistry_Announce_Reaches_Every_Session(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default(), nil)
	first, second := &Sink{}, &Sink{}
	registry.Attach("first", first)
	registry.Attach("second", second)

	delivered := registry.Announce(context.Background(), event.NewError("INVALID_TOKEN", "nope"))

	req.Equal(2, delivered)
	req.Len(first.Events(), 1)
	req.Len(second.Events(), 1)
}

func TestRegistry_Concurrent_Join_And_Leave(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default(), nil)
	key := chat.NewRoomKey("alice", "bob")
	const sessions = 50

	for i := 0; i < sessions; i++ {
		registry.Attach(fmt.Sprintf("s-%d", i), &Sink{})
	}

	// When sessions join, broadcast and leave concurrently
	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := registry.EnsureJoined(id, key)
				req.NoError(err)
				registry.Broadcast(context.Background(), key, event.Event{Name: event.Message})
				registry.LeaveAll(id)
			}
		}(fmt.Sprintf("s-%d", i))
	}
	wg.Wait()

	// Then no membership and no room is left behind
	req.Zero(registry.RoomCount())
	req.Nil(registry.Members(key))

	// And a final join still works on a fresh room
	joined, err := registry.EnsureJoined("s-0", key)
	req.NoError(err)
	req.True(joined)
	req.Equal([]string{"s-0"}, registry.Members(key))
}

func TestRegistry_Concurrent_Joins_Of_One_Session(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default(), nil)
	key := chat.NewRoomKey("alice", "bob")
	registry.Attach("s-0", &Sink{})
	const goroutines = 64

	// When the same session joins the same room from many goroutines
	var wg sync.WaitGroup
	var mu sync.Mutex
	newJoins := 0
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			joined, err := registry.EnsureJoined("s-0", key)
			req.NoError(err)
			if joined {
				mu.Lock()
				newJoins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Then exactly one join took effect
	req.Equal(1, newJoins)
	req.Equal([]string{"s-0"}, registry.Members(key))
	req.Len(registry.Rooms("s-0"), 1)
	req.Equal(1, registry.RoomCount())
}
