package repositories

import (
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the persisted records, as declared in records.proto.
// Never reuse a retired number.
const (
	messageIDField     protowire.Number = 1
	messageFromField   protowire.Number = 2
	messageToField     protowire.Number = 3
	messageBodyField   protowire.Number = 4
	messageSentAtField protowire.Number = 5

	followCreatedAtField protowire.Number = 1
	followDeletedAtField protowire.Number = 2
)

// FollowRecord is the stored edge of the social graph.
// A zero DeletedAt means the follow is active.
type FollowRecord struct {
	CreatedAt time.Time
	DeletedAt time.Time
}

func (f FollowRecord) Active() bool {
	return f.DeletedAt.IsZero()
}

func EncodeMessage(m chat.Message) []byte {
	var b []byte
	b = protowire.AppendTag(b, messageIDField, protowire.BytesType)
	b = protowire.AppendBytes(b, m.ID[:])
	b = protowire.AppendTag(b, messageFromField, protowire.BytesType)
	b = protowire.AppendString(b, m.From.String())
	b = protowire.AppendTag(b, messageToField, protowire.BytesType)
	b = protowire.AppendString(b, m.To.String())
	b = protowire.AppendTag(b, messageBodyField, protowire.BytesType)
	b = protowire.AppendString(b, m.Body)
	b = protowire.AppendTag(b, messageSentAtField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.SentAt.UnixNano()))
	return b
}

func DecodeMessage(b []byte) (chat.Message, error) {
	var m chat.Message
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == messageIDField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			id, err := uuid.FromBytes(v)
			if err != nil {
				return 0, err
			}
			m.ID = id
			return n, nil
		case num == messageFromField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.From = chat.Identity(v)
			return n, nil
		case num == messageToField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.To = chat.Identity(v)
			return n, nil
		case num == messageBodyField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.Body = v
			return n, nil
		case num == messageSentAtField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.SentAt = time.Unix(0, int64(v)).UTC()
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	if err != nil {
		return chat.Message{}, err
	}
	if m.ID == uuid.Nil {
		return chat.Message{}, fmt.Errorf("%w: message without id", errors.ErrCorruptedRecord)
	}
	return m, nil
}

func EncodeFollow(f FollowRecord) []byte {
	var b []byte
	b = protowire.AppendTag(b, followCreatedAtField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(f.CreatedAt.UnixNano()))
	if !f.Active() {
		b = protowire.AppendTag(b, followDeletedAtField, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(f.DeletedAt.UnixNano()))
	}
	return b
}

func DecodeFollow(b []byte) (FollowRecord, error) {
	var f FollowRecord
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ == protowire.VarintType && (num == followCreatedAtField || num == followDeletedAtField) {
			v, n := protowire.ConsumeVarint(b)
			at := time.Unix(0, int64(v)).UTC()
			if num == followCreatedAtField {
				f.CreatedAt = at
			} else {
				f.DeletedAt = at
			}
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return f, err
}

// consumeFields walks a wire-encoded record. fn returns the number of bytes
// of the field value it consumed, negative on a malformed value.
func consumeFields(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", errors.ErrCorruptedRecord, protowire.ParseError(n))
		}
		b = b[n:]
		n, err := fn(num, typ, b)
		if err != nil {
			return fmt.Errorf("%w: %v", errors.ErrCorruptedRecord, err)
		}
		if n < 0 {
			return fmt.Errorf("%w: %v", errors.ErrCorruptedRecord, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}
