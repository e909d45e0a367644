package runtime

import (
	"chat-relay/domain/chat"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/mocks"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	registry *Registry
	verifier *mocks.MockIIdentityVerifier
	chats    *mocks.MockIChatService
	gateway  *Gateway
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry(log, nil)
	verifier := mocks.NewMockIIdentityVerifier(ctrl)
	chats := mocks.NewMockIChatService(ctrl)
	return fixture{
		registry: registry,
		verifier: verifier,
		chats:    chats,
		gateway:  NewGateway(log, verifier, registry, chats, nil, time.Second),
	}
}

// connect opens an authenticated session for identity.
func (f fixture) connect(t *testing.T, identity chat.Identity) (*Session, *Sink) {
	credential := "Bearer " + uuid.NewString()
	f.verifier.EXPECT().Verify(gomock.Any(), credential).Return(identity, nil)
	sink := &Sink{}
	session := f.gateway.Open(sink)
	_, err := session.Authenticate(context.Background(), credential)
	require.NoError(t, err)
	return session, sink
}

func inbound(t *testing.T, name event.Name, payload any) event.Inbound {
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return event.Inbound{Name: name, Data: data}
}

func TestSession_Authenticate(t *testing.T) {
	t.Run("should attach a verified identity", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		session, _ := f.connect(t, "alice")

		req.Equal(StateAuthenticated, session.State())
		req.Equal(chat.Identity("alice"), session.Identity())
		req.Equal(1, f.registry.SessionCount())
	})

	t.Run("should announce the failure and end disconnected", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		_, bystander := f.connect(t, "bob")
		f.verifier.EXPECT().Verify(gomock.Any(), "token-without-scheme").Return(chat.Identity(""), errors.ErrInvalidToken)
		sink := &Sink{}
		session := f.gateway.Open(sink)

		// When the credential is rejected
		_, err := session.Authenticate(context.Background(), "token-without-scheme")

		// Then the connection is over and no room state was touched
		req.ErrorIs(err, errors.ErrInvalidToken)
		req.Equal(StateDisconnected, session.State())
		req.Equal(1, f.registry.SessionCount())
		req.Zero(f.registry.RoomCount())

		// And the error event reached the failing connection and the connected ones
		expected := event.NewError("INVALID_TOKEN", unauthorizedMessage)
		req.Equal([]event.Event{expected}, sink.Events())
		req.Equal([]event.Event{expected}, bystander.Events())
	})

	t.Run("should map a missing credential to MISSING_TOKEN", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.verifier.EXPECT().Verify(gomock.Any(), "").Return(chat.Identity(""), errors.ErrMissingToken)
		sink := &Sink{}

		_, err := f.gateway.Open(sink).Authenticate(context.Background(), "")

		req.ErrorIs(err, errors.ErrMissingToken)
		req.Equal("MISSING_TOKEN", sink.Events()[0].Data.(event.ErrorPayload).Code)
	})

	t.Run("should refuse a second handshake", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		session, _ := f.connect(t, "alice")

		_, err := session.Authenticate(context.Background(), "Bearer again")

		req.ErrorIs(err, errors.ErrUnauthenticated)
		req.Equal(StateAuthenticated, session.State())
	})
}

func TestSession_Handle_Before_Authentication(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.chats.EXPECT().LoadChat(gomock.Any(), gomock.Any()).Times(0)
	session := f.gateway.Open(&Sink{})

	err := session.Handle(context.Background(), inbound(t, event.LoadChat, event.LoadChatPayload{From: "alice", To: "bob"}))

	req.ErrorIs(err, errors.ErrUnauthenticated)
	req.Zero(f.registry.RoomCount())
}

func TestSession_LoadChat(t *testing.T) {
	ctx := context.Background()

	t.Run("should join the room and broadcast the history", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		alice, aliceSink := f.connect(t, "alice")
		bob, bobSink := f.connect(t, "bob")
		history := []chat.Message{{ID: uuid.New(), From: "alice", To: "bob", Body: "hi", SentAt: time.Now().UTC()}}
		f.chats.EXPECT().LoadChat(gomock.Any(), chat.LoadChatCommand{From: "alice", To: "bob"}).Return(history, nil)
		f.chats.EXPECT().LoadChat(gomock.Any(), chat.LoadChatCommand{From: "bob", To: "alice"}).Return(history, nil)

		// When alice then bob load their chat
		req.NoError(alice.Handle(ctx, inbound(t, event.LoadChat, event.LoadChatPayload{From: "alice", To: "bob"})))
		req.NoError(bob.Handle(ctx, inbound(t, event.LoadChat, event.LoadChatPayload{From: "bob", To: "alice"})))

		// Then both are in the same room and alice saw both loads
		key := chat.NewRoomKey("alice", "bob")
		req.ElementsMatch([]string{alice.ID, bob.ID}, f.registry.Members(key))
		expected := event.Event{Name: event.AllMessages, Data: history}
		req.Equal([]event.Event{expected, expected}, aliceSink.Events())
		req.Equal([]event.Event{expected}, bobSink.Events())
	})

	t.Run("should broadcast an empty array on failure", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		alice, aliceSink := f.connect(t, "alice")
		f.chats.EXPECT().LoadChat(gomock.Any(), gomock.Any()).Return(nil, errors.ErrChatNotFound)

		req.NoError(alice.Handle(ctx, inbound(t, event.LoadChat, event.LoadChatPayload{From: "alice", To: "bob"})))

		events := aliceSink.Events()
		req.Len(events, 1)
		req.Equal(event.AllMessages, events[0].Name)
		req.NotNil(events[0].Data)
		req.Empty(events[0].Data)
	})

	t.Run("should answer a spoofed sender privately without joining", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		_, bobSink := f.connect(t, "bob")
		mallory, mallorySink := f.connect(t, "mallory")
		f.chats.EXPECT().LoadChat(gomock.Any(), gomock.Any()).Times(0)

		req.NoError(mallory.Handle(ctx, inbound(t, event.LoadChat, event.LoadChatPayload{From: "alice", To: "bob"})))

		req.Empty(f.registry.Rooms(mallory.ID))
		req.Len(mallorySink.Events(), 1)
		req.Empty(bobSink.Events())
	})

	t.Run("should reject a malformed payload", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		alice, aliceSink := f.connect(t, "alice")

		req.NoError(alice.Handle(ctx, event.Inbound{Name: event.LoadChat, Data: json.RawMessage(`"oops"`)}))
		req.NoError(alice.Handle(ctx, event.Inbound{Name: event.LoadChat}))

		req.Equal([]event.Event{allMessagesEvent(nil, nil), allMessagesEvent(nil, nil)}, aliceSink.Events())
	})
}

func TestSession_ChatMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("should deliver the persisted message to every session in the room", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		alice, aliceSink := f.connect(t, "alice")
		bob, bobSink := f.connect(t, "bob")
		_, strangerSink := f.connect(t, "carol")
		f.chats.EXPECT().LoadChat(gomock.Any(), gomock.Any()).Return([]chat.Message{}, nil)
		stored := chat.Message{ID: uuid.New(), From: "alice", To: "bob", Body: "hi", SentAt: time.Now().UTC()}
		f.chats.EXPECT().SendMessage(gomock.Any(), chat.SendMessageCommand{From: "alice", To: "bob", Body: "hi"}).Return(stored, nil)

		// Given bob opened the chat
		req.NoError(bob.Handle(ctx, inbound(t, event.LoadChat, event.LoadChatPayload{From: "bob", To: "alice"})))

		// When alice sends without loading first
		req.NoError(alice.Handle(ctx, inbound(t, event.ChatMessage, event.ChatMessagePayload{From: "alice", To: "bob", Body: "hi"})))

		// Then both receive it, carol does not
		expected := event.Event{Name: event.Message, Data: stored}
		req.Equal([]event.Event{expected}, aliceSink.Events())
		req.Equal(expected, bobSink.Events()[1])
		req.Empty(strangerSink.Events())
	})

	t.Run("should broadcast null when forbidden", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		alice, aliceSink := f.connect(t, "alice")
		f.chats.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Return(chat.Message{}, errors.ErrForbidden)

		req.NoError(alice.Handle(ctx, inbound(t, event.ChatMessage, event.ChatMessagePayload{From: "alice", To: "bob", Body: "hi"})))

		req.Equal([]event.Event{{Name: event.Message, Data: nil}}, aliceSink.Events())
	})

	t.Run("should deliver to every connection of the same identity", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		first, firstSink := f.connect(t, "alice")
		second, secondSink := f.connect(t, "alice")
		bob, _ := f.connect(t, "bob")
		f.chats.EXPECT().LoadChat(gomock.Any(), gomock.Any()).Return([]chat.Message{}, nil).Times(2)
		stored := chat.Message{ID: uuid.New(), From: "bob", To: "alice", Body: "hey", SentAt: time.Now().UTC()}
		f.chats.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Return(stored, nil)

		req.NoError(first.Handle(ctx, inbound(t, event.LoadChat, event.LoadChatPayload{From: "alice", To: "bob"})))
		req.NoError(second.Handle(ctx, inbound(t, event.LoadChat, event.LoadChatPayload{From: "alice", To: "bob"})))
		req.NoError(bob.Handle(ctx, inbound(t, event.ChatMessage, event.ChatMessagePayload{From: "bob", To: "alice", Body: "hey"})))

		expected := event.Event{Name: event.Message, Data: stored}
		req.Contains(firstSink.Events(), expected)
		req.Contains(secondSink.Events(), expected)
	})
}

func TestSession_Disconnect_Leaves_Every_Room(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	alice, _ := f.connect(t, "alice")
	f.chats.EXPECT().LoadChat(gomock.Any(), gomock.Any()).Return([]chat.Message{}, nil).Times(2)
	req.NoError(alice.Handle(ctx, inbound(t, event.LoadChat, event.LoadChatPayload{From: "alice", To: "bob"})))
	req.NoError(alice.Handle(ctx, inbound(t, event.LoadChat, event.LoadChatPayload{From: "alice", To: "carol"})))
	req.Len(f.registry.Rooms(alice.ID), 2)

	alice.Disconnect()
	alice.Disconnect()

	req.Equal(StateDisconnected, alice.State())
	req.Zero(f.registry.RoomCount())
	req.Zero(f.registry.SessionCount())
	req.ErrorIs(alice.Handle(ctx, inbound(t, event.LoadChat, event.LoadChatPayload{From: "alice", To: "bob"})), errors.ErrUnauthenticated)
}

func TestSession_Handler_Runs_Under_Timeout(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	alice, _ := f.connect(t, "alice")
	f.chats.EXPECT().LoadChat(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ chat.LoadChatCommand) ([]chat.Message, error) {
			deadline, ok := ctx.Deadline()
			req.True(ok)
			req.WithinDuration(time.Now().Add(time.Second), deadline, time.Second)
			return []chat.Message{}, nil
		})

	req.NoError(alice.Handle(context.Background(), inbound(t, event.LoadChat, event.LoadChatPayload{From: "alice", To: "bob"})))
}
