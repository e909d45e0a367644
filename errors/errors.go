package errors

import (
	"context"
	stderrors "errors"
	"fmt"
)

var (
	ErrMissingToken     = fmt.Errorf("missing token")
	ErrInvalidToken     = fmt.Errorf("invalid token")
	ErrUnauthenticated  = fmt.Errorf("session is not authenticated")
	ErrInvalidRequest   = fmt.Errorf("parameters are undefined")
	ErrInvalidIdentity  = fmt.Errorf("invalid identity")
	ErrChatNotFound     = fmt.Errorf("chat not found")
	ErrForbidden        = fmt.Errorf("forbidden")
	ErrStore            = fmt.Errorf("store failure")
	ErrUnknownSession   = fmt.Errorf("unknown session")
	ErrConnectionClosed = fmt.Errorf("connection closed")
	ErrBufferFull       = fmt.Errorf("connection buffer exceeded")
	ErrAlreadyFollowing = fmt.Errorf("already following user")
	ErrNotFollowing     = fmt.Errorf("already not following")
	ErrCorruptedRecord  = fmt.Errorf("corrupted record")
	ErrWorkerPanic      = fmt.Errorf("worker panic")
)

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// Kind returns the label used in logs and metrics for a handler failure.
// Clients never see it: failures collapse into the event's empty payload.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case Is(err, context.DeadlineExceeded):
		return "timeout"
	case Is(err, ErrMissingToken), Is(err, ErrInvalidToken):
		return "auth"
	case Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case Is(err, ErrInvalidRequest), Is(err, ErrInvalidIdentity):
		return "invalid_request"
	case Is(err, ErrChatNotFound):
		return "chat_not_found"
	case Is(err, ErrForbidden):
		return "forbidden"
	case Is(err, ErrStore):
		return "store_error"
	default:
		return "internal"
	}
}
