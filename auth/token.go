package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService signs and validates HS256 tokens with a shared secret.
// Issuing tokens belongs to the account service; GenerateToken exists for tooling and tests.
type TokenService struct {
	key    []byte
	issuer string
}

func NewTokenService(secret, issuer string) *TokenService {
	return &TokenService{key: []byte(secret), issuer: issuer}
}

// GenerateToken creates a signed JWT for a specific user.
func (s *TokenService) GenerateToken(userID string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// ValidateToken parses and validates the signature and expiration of a JWT string.
func (s *TokenService) ValidateToken(tokenString string) (*CustomClaims, error) {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		options = append(options, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
