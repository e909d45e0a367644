package auth

import (
	"chat-relay/errors"
	"strings"
)

const bearerScheme = "Bearer"

// ParseBearer extracts the token of a "Bearer <token>" credential.
// The scheme keyword is case-sensitive and exactly two parts are expected.
func ParseBearer(credential string) (string, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return "", errors.ErrMissingToken
	}
	parts := strings.Split(credential, " ")
	if len(parts) != 2 || parts[0] != bearerScheme || parts[1] == "" {
		return "", errors.ErrInvalidToken
	}
	return parts[1], nil
}
