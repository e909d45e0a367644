package repositories

import (
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"context"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const FollowPrefix = "follow:"

// FollowRepository stores directed follow edges. Unfollowing keeps the edge
// with a deletion date and following again reactivates it.
type FollowRepository struct {
	db  *badger.DB
	log *slog.Logger
	now func() time.Time
}

func NewFollowRepository(db *badger.DB, log *slog.Logger) *FollowRepository {
	return &FollowRepository{db: db, log: log, now: time.Now}
}

func (r *FollowRepository) Follow(ctx context.Context, follower, followed chat.Identity) error {
	if err := ctx.Err(); err != nil {
		return storeErr(err)
	}
	key := followKey(follower, followed)
	err := r.db.Update(func(txn *badger.Txn) error {
		record, found, err := getFollow(txn, key)
		if err != nil {
			return err
		}
		now := r.now().UTC()
		switch {
		case !found:
			record = FollowRecord{CreatedAt: now}
		case record.Active():
			return errors.ErrAlreadyFollowing
		default:
			record.DeletedAt = time.Time{}
		}
		return txn.Set(key, EncodeFollow(record))
	})
	if errors.Is(err, errors.ErrAlreadyFollowing) {
		return err
	}
	if err != nil {
		return storeErr(err)
	}
	r.log.Debug("Follow recorded", "follower", follower, "followed", followed)
	return nil
}

func (r *FollowRepository) Unfollow(ctx context.Context, follower, followed chat.Identity) error {
	if err := ctx.Err(); err != nil {
		return storeErr(err)
	}
	key := followKey(follower, followed)
	err := r.db.Update(func(txn *badger.Txn) error {
		record, found, err := getFollow(txn, key)
		if err != nil {
			return err
		}
		if !found || !record.Active() {
			return errors.ErrNotFollowing
		}
		record.DeletedAt = r.now().UTC()
		return txn.Set(key, EncodeFollow(record))
	})
	if errors.Is(err, errors.ErrNotFollowing) {
		return err
	}
	if err != nil {
		return storeErr(err)
	}
	r.log.Debug("Follow removed", "follower", follower, "followed", followed)
	return nil
}

// IsFollowing reads the edge on every call.
func (r *FollowRepository) IsFollowing(ctx context.Context, follower, followed chat.Identity) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, storeErr(err)
	}
	var following bool
	err := r.db.View(func(txn *badger.Txn) error {
		record, found, err := getFollow(txn, followKey(follower, followed))
		if err != nil {
			return err
		}
		following = found && record.Active()
		return nil
	})
	if err != nil {
		return false, storeErr(err)
	}
	return following, nil
}

func getFollow(txn *badger.Txn, key []byte) (FollowRecord, bool, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return FollowRecord{}, false, nil
	}
	if err != nil {
		return FollowRecord{}, false, err
	}
	var record FollowRecord
	err = item.Value(func(val []byte) error {
		record, err = DecodeFollow(val)
		return err
	})
	return record, true, err
}

func followKey(follower, followed chat.Identity) []byte {
	return []byte(FollowPrefix + hex.EncodeToString([]byte(follower)) + ":" + hex.EncodeToString([]byte(followed)))
}
