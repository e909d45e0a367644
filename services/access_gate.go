package services

import (
	"chat-relay/contract"
	"chat-relay/domain/chat"
	"context"
)

type IAccessGate interface {
	CanExchange(ctx context.Context, a, b chat.Identity) (bool, error)
}

// AccessGate allows a conversation only between users following each other.
type AccessGate struct {
	policy contract.IFollowPolicy
}

func NewAccessGate(policy contract.IFollowPolicy) *AccessGate {
	return &AccessGate{policy: policy}
}

// CanExchange evaluates both directions on every call. A lookup failure is
// returned as an error, never as an allowed exchange.
func (g *AccessGate) CanExchange(ctx context.Context, a, b chat.Identity) (bool, error) {
	forward, err := g.policy.IsFollowing(ctx, a, b)
	if err != nil {
		return false, storeErr(err)
	}
	if !forward {
		return false, nil
	}
	backward, err := g.policy.IsFollowing(ctx, b, a)
	if err != nil {
		return false, storeErr(err)
	}
	return backward, nil
}
