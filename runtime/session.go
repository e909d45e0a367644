package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain/chat"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/observability"
	"chat-relay/services"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type State int

const (
	StateConnecting State = iota
	StateAuthenticated
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAuthenticated:
		return "authenticated"
	case StateDisconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Gateway holds what every session shares and opens new sessions.
type Gateway struct {
	log      *slog.Logger
	verifier contract.IIdentityVerifier
	router   contract.IRoomRouter
	chats    services.IChatService
	metrics  *observability.Metrics
	timeout  time.Duration
}

func NewGateway(
	log *slog.Logger,
	verifier contract.IIdentityVerifier,
	router contract.IRoomRouter,
	chats services.IChatService,
	metrics *observability.Metrics,
	timeout time.Duration,
) *Gateway {
	return &Gateway{
		log:      log,
		verifier: verifier,
		router:   router,
		chats:    chats,
		metrics:  metrics,
		timeout:  timeout,
	}
}

// Open returns a session in the connecting state writing to sink.
func (g *Gateway) Open(sink contract.EventSink) *Session {
	id := uuid.NewString()
	return &Session{
		ID:    id,
		g:     g,
		sink:  sink,
		log:   g.log.With("session", id),
		state: StateConnecting,
	}
}

// Session is the server side of one connection. Its events are handled one
// at a time, in arrival order.
type Session struct {
	ID   string
	g    *Gateway
	sink contract.EventSink

	mu       sync.Mutex
	log      *slog.Logger
	state    State
	identity chat.Identity
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Identity() chat.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Authenticate verifies the handshake credential. On failure the error event
// is announced to every connected session and to this one, and the session
// ends up disconnected: the caller must close the transport.
func (s *Session) Authenticate(ctx context.Context, credential string) (chat.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConnecting {
		return "", fmt.Errorf("%w: session is %s", errors.ErrUnauthenticated, s.state)
	}

	identity, err := s.g.verifier.Verify(ctx, credential)
	if err != nil {
		s.state = StateDisconnected
		code := authErrorCode(err)
		s.log.Warn("Authentication failed", "code", code, "kind", errors.Kind(err), "error", err)
		s.g.metrics.RecordAuthFailure(code)

		e := authErrorEvent(err)
		s.g.router.Announce(ctx, e)
		if err := s.sink.Consume(ctx, e); err != nil {
			s.log.Debug("Error event not delivered", "error", err)
		}
		s.g.router.LeaveAll(s.ID)
		return "", err
	}

	s.identity = identity
	s.state = StateAuthenticated
	s.log = s.log.With("identity", identity)
	s.g.router.Attach(s.ID, s.sink)
	s.g.metrics.IncSession()
	s.log.Info("Session authenticated")
	return identity, nil
}

// Handle runs one client event under the per-event timeout. Handler failures
// are turned into the event's failure payload; the only error returned is
// ErrUnauthenticated, which means the transport let an event through too early.
func (s *Session) Handle(ctx context.Context, in event.Inbound) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		s.log.Error("Event received outside an authenticated session", "event", in.Name, "state", s.state)
		return errors.ErrUnauthenticated
	}

	ctx, cancel := context.WithTimeout(ctx, s.g.timeout)
	defer cancel()
	start := time.Now()

	switch in.Name {
	case event.LoadChat:
		var payload event.LoadChatPayload
		if err := decode(in.Data, &payload); err != nil {
			s.reply(ctx, in.Name, allMessagesEvent(nil, err), err)
			break
		}
		s.loadChat(ctx, payload)
	case event.ChatMessage:
		var payload event.ChatMessagePayload
		if err := decode(in.Data, &payload); err != nil {
			s.reply(ctx, in.Name, messageEvent(chat.Message{}, err), err)
			break
		}
		s.chatMessage(ctx, payload)
	default:
		s.log.Debug("Unknown event ignored", "event", in.Name)
		return nil
	}

	s.g.metrics.ObserveLatency(string(in.Name), time.Since(start))
	return nil
}

// Disconnect leaves every room and detaches the session. Safe to call more than once.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.state
	s.state = StateDisconnected
	s.g.router.LeaveAll(s.ID)
	s.g.router.Detach(s.ID)
	if previous == StateAuthenticated {
		s.log.Info("Session disconnected")
	}
}

func (s *Session) loadChat(ctx context.Context, payload event.LoadChatPayload) {
	cmd := chat.LoadChatCommand{From: chat.Identity(payload.From), To: chat.Identity(payload.To)}
	if err := s.bind(cmd.From, cmd.To); err != nil {
		s.reply(ctx, event.LoadChat, allMessagesEvent(nil, err), err)
		return
	}

	key := cmd.RoomKey()
	if _, err := s.g.router.EnsureJoined(s.ID, key); err != nil {
		s.reply(ctx, event.LoadChat, allMessagesEvent(nil, err), err)
		return
	}

	messages, err := s.g.chats.LoadChat(ctx, cmd)
	s.failed(event.LoadChat, err)
	s.broadcast(ctx, key, allMessagesEvent(messages, err))
}

func (s *Session) chatMessage(ctx context.Context, payload event.ChatMessagePayload) {
	cmd := chat.SendMessageCommand{
		From: chat.Identity(payload.From),
		To:   chat.Identity(payload.To),
		Body: payload.Body,
	}
	if err := s.bind(cmd.From, cmd.To); err != nil {
		s.reply(ctx, event.ChatMessage, messageEvent(chat.Message{}, err), err)
		return
	}

	// The sender always observes the outcome of its own message.
	key := cmd.RoomKey()
	if _, err := s.g.router.EnsureJoined(s.ID, key); err != nil {
		s.reply(ctx, event.ChatMessage, messageEvent(chat.Message{}, err), err)
		return
	}

	message, err := s.g.chats.SendMessage(ctx, cmd)
	s.failed(event.ChatMessage, err)
	s.broadcast(ctx, key, messageEvent(message, err))
}

// bind requires the sender of an event to be the verified identity of the session.
func (s *Session) bind(from, to chat.Identity) error {
	if from != s.identity {
		return fmt.Errorf("%w: sender %q is not the session identity", errors.ErrInvalidRequest, from)
	}
	if err := to.Validate(); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	return nil
}

func (s *Session) broadcast(ctx context.Context, key chat.RoomKey, e event.Event) {
	delivered := s.g.router.Broadcast(ctx, key, e)
	s.g.metrics.RecordBroadcast(string(e.Name))
	s.log.Debug("Event broadcast", "room", key, "event", e.Name, "delivered", delivered)
}

// reply sends a failure payload to this session only.
func (s *Session) reply(ctx context.Context, name event.Name, e event.Event, err error) {
	s.failed(name, err)
	if err := s.sink.Consume(ctx, e); err != nil {
		s.log.Debug("Reply not delivered", "event", e.Name, "error", err)
	}
}

func (s *Session) failed(name event.Name, err error) {
	if err == nil {
		return
	}
	kind := errors.Kind(err)
	s.g.metrics.RecordError(string(name), kind)
	switch kind {
	case "store_error", "timeout", "internal":
		s.log.Error("Event failed", "event", name, "kind", kind, "error", err)
	default:
		s.log.Warn("Event rejected", "event", name, "kind", kind, "error", err)
	}
}

func decode(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: missing payload", errors.ErrInvalidRequest)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	return nil
}
