package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain/chat"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/observability"
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/lo"
)

type Set map[string]struct{}

// room is one entry of the arena. A closed room has been removed from the
// arena and must not accept members anymore.
type room struct {
	mu      sync.Mutex
	members Set
	closed  bool
}

type member struct {
	sink  contract.EventSink
	mu    sync.Mutex
	rooms map[chat.RoomKey]struct{}
}

// Registry routes events to the sessions joined to a room.
// Rooms hold session ids only; sinks are resolved through the session directory.
// Lock order: rooms, then a single room, then sessions.
type Registry struct {
	log     *slog.Logger
	metrics *observability.Metrics

	roomsMu sync.RWMutex
	rooms   map[chat.RoomKey]*room // map room to members

	sessionsMu sync.RWMutex
	sessions   map[string]*member // map session -> Sink
}

func NewRegistry(log *slog.Logger, metrics *observability.Metrics) *Registry {
	return &Registry{
		log:      log,
		metrics:  metrics,
		rooms:    make(map[chat.RoomKey]*room),
		sessions: make(map[string]*member),
	}
}

// Attach registers the outbound side of an authenticated session.
func (r *Registry) Attach(sessionID string, sink contract.EventSink) {
	r.sessionsMu.Lock()
	defer r.sessionsMu.Unlock()
	r.sessions[sessionID] = &member{sink: sink, rooms: make(map[chat.RoomKey]struct{})}
}

// EnsureJoined adds the session to the room, creating the room on first use.
// It reports whether the session was newly added.
func (r *Registry) EnsureJoined(sessionID string, key chat.RoomKey) (bool, error) {
	m, ok := r.member(sessionID)
	if !ok {
		return false, errors.ErrUnknownSession
	}

	for {
		rm := r.room(key)
		rm.mu.Lock()
		if rm.closed {
			// Emptied and removed between lookup and lock, take the new one.
			rm.mu.Unlock()
			continue
		}
		_, already := rm.members[sessionID]
		rm.members[sessionID] = struct{}{}
		rm.mu.Unlock()

		m.mu.Lock()
		m.rooms[key] = struct{}{}
		m.mu.Unlock()

		if !already {
			r.log.Debug("Session joined room", "session", sessionID, "room", key)
		}
		return !already, nil
	}
}

// Broadcast delivers e to every member of the room, the sender included.
// Sinks never block, so the room stays locked for the whole delivery and
// concurrent joins or leaves see it either before or after.
// It returns the number of sessions that accepted the event.
func (r *Registry) Broadcast(ctx context.Context, key chat.RoomKey, e event.Event) int {
	r.roomsMu.RLock()
	rm, ok := r.rooms[key]
	r.roomsMu.RUnlock()
	if !ok {
		return 0
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()
	delivered := 0
	for sessionID := range rm.members {
		m, ok := r.member(sessionID)
		if !ok {
			continue
		}
		if err := m.sink.Consume(ctx, e); err != nil {
			r.log.Warn("Delivery failed", "session", sessionID, "room", key, "event", e.Name, "error", err)
			r.metrics.RecordDrop()
			continue
		}
		delivered++
	}
	return delivered
}

// Announce delivers e to every attached session, whatever its rooms.
func (r *Registry) Announce(ctx context.Context, e event.Event) int {
	r.sessionsMu.RLock()
	sinks := lo.MapToSlice(r.sessions, func(_ string, m *member) contract.EventSink { return m.sink })
	r.sessionsMu.RUnlock()

	delivered := 0
	for _, sink := range sinks {
		if err := sink.Consume(ctx, e); err != nil {
			r.metrics.RecordDrop()
			continue
		}
		delivered++
	}
	return delivered
}

// LeaveAll removes the session from every room it joined. Empty rooms are dropped.
func (r *Registry) LeaveAll(sessionID string) {
	m, ok := r.member(sessionID)
	if !ok {
		return
	}

	m.mu.Lock()
	keys := lo.Keys(m.rooms)
	m.rooms = make(map[chat.RoomKey]struct{})
	m.mu.Unlock()

	for _, key := range keys {
		r.leave(sessionID, key)
	}
}

// Detach leaves every room and forgets the session.
func (r *Registry) Detach(sessionID string) {
	r.LeaveAll(sessionID)
	r.sessionsMu.Lock()
	defer r.sessionsMu.Unlock()
	delete(r.sessions, sessionID)
}

// Rooms lists the rooms joined by a session, sorted.
func (r *Registry) Rooms(sessionID string) []chat.RoomKey {
	m, ok := r.member(sessionID)
	if !ok {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := lo.Keys(m.rooms)
	slices.Sort(keys)
	return keys
}

// Members lists the sessions joined to a room, sorted.
func (r *Registry) Members(key chat.RoomKey) []string {
	r.roomsMu.RLock()
	rm, ok := r.rooms[key]
	r.roomsMu.RUnlock()
	if !ok {
		return nil
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	ids := lo.Keys(rm.members)
	slices.Sort(ids)
	return ids
}

func (r *Registry) SessionCount() int {
	r.sessionsMu.RLock()
	defer r.sessionsMu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) RoomCount() int {
	r.roomsMu.RLock()
	defer r.roomsMu.RUnlock()
	return len(r.rooms)
}

func (r *Registry) member(sessionID string) (*member, bool) {
	r.sessionsMu.RLock()
	defer r.sessionsMu.RUnlock()
	m, ok := r.sessions[sessionID]
	return m, ok
}

func (r *Registry) room(key chat.RoomKey) *room {
	r.roomsMu.RLock()
	rm, ok := r.rooms[key]
	r.roomsMu.RUnlock()
	if ok {
		return rm
	}

	r.roomsMu.Lock()
	defer r.roomsMu.Unlock()
	if rm, ok = r.rooms[key]; !ok {
		rm = &room{members: make(Set)}
		r.rooms[key] = rm
	}
	return rm
}

func (r *Registry) leave(sessionID string, key chat.RoomKey) {
	r.roomsMu.Lock()
	defer r.roomsMu.Unlock()

	rm, ok := r.rooms[key]
	if !ok {
		return
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	delete(rm.members, sessionID)

	// If no one is left in the room, remove the room entry entirely
	if len(rm.members) == 0 {
		rm.closed = true
		delete(r.rooms, key)
	}
}
