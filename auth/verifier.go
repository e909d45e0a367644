package auth

import (
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"context"
	"fmt"
)

// JWTVerifier turns the credential of a connection handshake into a verified identity.
type JWTVerifier struct {
	tokens *TokenService
}

func NewJWTVerifier(tokens *TokenService) *JWTVerifier {
	return &JWTVerifier{tokens: tokens}
}

// Verify has no side effect: attaching the identity to a session is up to the caller.
func (v *JWTVerifier) Verify(_ context.Context, credential string) (chat.Identity, error) {
	raw, err := ParseBearer(credential)
	if err != nil {
		return "", err
	}

	claims, err := v.tokens.ValidateToken(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}

	identity := chat.Identity(claims.UserID)
	if err := identity.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}
	return identity, nil
}
