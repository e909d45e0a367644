package main

import (
	"chat-relay/repositories"
	"fmt"
	"strings"

	"github.com/mama165/sdk-go/database"
)

// RelayMapper renders messages and follows in the badger inspector.
func RelayMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)

	switch {
	case strings.HasPrefix(key, repositories.MessagePrefix):
		m, err := repositories.DecodeMessage(val)
		if err != nil {
			row.Detail = "Error: decode failed"
			return row
		}
		row.Type = "MESSAGE"
		row.Detail = fmt.Sprintf("%s → %s: %s", m.From, m.To, m.Body)
	case strings.HasPrefix(key, repositories.FollowPrefix):
		f, err := repositories.DecodeFollow(val)
		if err != nil {
			row.Detail = "Error: decode failed"
			return row
		}
		row.Type = "FOLLOW"
		row.Detail = "active since " + f.CreatedAt.Format("2006-01-02 15:04:05")
		if !f.Active() {
			row.Type = "UNFOLLOW"
			row.Detail = "removed at " + f.DeletedAt.Format("2006-01-02 15:04:05")
		}
	}
	return row
}
