package runtime

import (
	"chat-relay/domain/chat"
	"chat-relay/domain/event"
	"chat-relay/errors"
)

const unauthorizedMessage = "Unauthorized. You are not allowed to perform this action"

// allMessagesEvent is the only place deciding the payload of "allMessages".
// Any failure becomes an empty history.
func allMessagesEvent(messages []chat.Message, err error) event.Event {
	if err != nil || messages == nil {
		messages = []chat.Message{}
	}
	return event.Event{Name: event.AllMessages, Data: messages}
}

// messageEvent is the only place deciding the payload of "message".
// Any failure becomes null.
func messageEvent(message chat.Message, err error) event.Event {
	if err != nil {
		return event.Event{Name: event.Message, Data: nil}
	}
	return event.Event{Name: event.Message, Data: message}
}

func authErrorEvent(err error) event.Event {
	return event.NewError(authErrorCode(err), unauthorizedMessage)
}

func authErrorCode(err error) string {
	if errors.Is(err, errors.ErrMissingToken) {
		return "MISSING_TOKEN"
	}
	return "INVALID_TOKEN"
}
