package services

import (
	"chat-relay/contract"
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"context"
	"fmt"
	"log/slog"
)

type IFollowService interface {
	Follow(ctx context.Context, follower, followed chat.Identity) error
	Unfollow(ctx context.Context, follower, followed chat.Identity) error
	IsFollowing(ctx context.Context, follower, followed chat.Identity) (bool, error)
}

// FollowService is the write side of the social graph read by the AccessGate.
type FollowService struct {
	log     *slog.Logger
	follows contract.IFollowRepository
}

func NewFollowService(log *slog.Logger, follows contract.IFollowRepository) *FollowService {
	return &FollowService{log: log, follows: follows}
}

func (s *FollowService) Follow(ctx context.Context, follower, followed chat.Identity) error {
	if err := validatePair(follower, followed); err != nil {
		return err
	}
	if err := s.follows.Follow(ctx, follower, followed); err != nil {
		return err
	}
	s.log.Info("User followed", "follower", follower, "followed", followed)
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, follower, followed chat.Identity) error {
	if err := validatePair(follower, followed); err != nil {
		return err
	}
	if err := s.follows.Unfollow(ctx, follower, followed); err != nil {
		return err
	}
	s.log.Info("User unfollowed", "follower", follower, "followed", followed)
	return nil
}

// IsFollowing is the FollowPolicy consumed by the AccessGate.
func (s *FollowService) IsFollowing(ctx context.Context, follower, followed chat.Identity) (bool, error) {
	if err := validatePair(follower, followed); err != nil {
		return false, err
	}
	return s.follows.IsFollowing(ctx, follower, followed)
}

func validatePair(follower, followed chat.Identity) error {
	if err := follower.Validate(); err != nil {
		return fmt.Errorf("%w: follower: %v", errors.ErrInvalidRequest, err)
	}
	if err := followed.Validate(); err != nil {
		return fmt.Errorf("%w: followed: %v", errors.ErrInvalidRequest, err)
	}
	return nil
}
