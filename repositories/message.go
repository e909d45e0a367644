package repositories

import (
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const MessagePrefix = "msg:"

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
	now func() time.Time
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) *MessageRepository {
	return &MessageRepository{db: db, log: log, now: time.Now}
}

// Append persists a message and returns it with its assigned id and timestamp.
// The key is formatted as "msg:{hex(room)}:{timestamp_padded}:{uuid}" so that:
//  1. a prefix scan on the room yields the whole conversation of both directions,
//  2. the 19-digit zero padding keeps lexicographical order chronological,
//  3. the uuid breaks ties between messages of the same nanosecond.
func (r *MessageRepository) Append(ctx context.Context, from, to chat.Identity, body string) (chat.Message, error) {
	if err := ctx.Err(); err != nil {
		return chat.Message{}, storeErr(err)
	}
	message := chat.Message{
		ID:     uuid.New(),
		From:   from,
		To:     to,
		Body:   body,
		SentAt: r.now().UTC(),
	}
	key := messageKey(message.Room(), message.SentAt, message.ID)
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, EncodeMessage(message))
	})
	if err != nil {
		return chat.Message{}, storeErr(err)
	}
	r.log.Debug("Message stored", "room", message.Room(), "id", message.ID)
	return message, nil
}

// GetMessages returns the full history between a and b, oldest first.
// The order of the arguments does not matter.
func (r *MessageRepository) GetMessages(ctx context.Context, a, b chat.Identity) ([]chat.Message, error) {
	prefix := roomPrefix(chat.NewRoomKey(a, b))
	messages := make([]chat.Message, 0)
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				message, err := DecodeMessage(val)
				if err != nil {
					return err
				}
				messages = append(messages, message)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return messages, nil
}

func roomPrefix(room chat.RoomKey) []byte {
	return []byte(MessagePrefix + hex.EncodeToString([]byte(room)) + ":")
}

func messageKey(room chat.RoomKey, at time.Time, id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("%s%s:%019d:%s", MessagePrefix, hex.EncodeToString([]byte(room)), at.UnixNano(), id))
}

// storeErr classifies every storage failure, timeouts included, as a store error.
func storeErr(err error) error {
	if errors.Is(err, errors.ErrStore) {
		return err
	}
	return fmt.Errorf("%w: %w", errors.ErrStore, err)
}
