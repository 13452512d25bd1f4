package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"seed_ledger/core/common"
)

// TokenClaims is the access token payload: the subject id plus an
// expiry in Unix milliseconds.
type TokenClaims struct {
	ID           string `json:"id"`
	TokenExpires int64  `json:"token_expires"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access tokens.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenService creates a TokenService with the given HMAC secret
// and token lifetime.
func NewTokenService(secret string, lifetime time.Duration) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

// Issue creates a signed token for the given subject id.
func (s *TokenService) Issue(subjectID string) (string, error) {
	claims := TokenClaims{
		ID:           subjectID,
		TokenExpires: time.Now().Add(s.lifetime).UnixMilli(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Failed to sign token", common.StatusInternalServerError, err)
	}
	return signed, nil
}

// Verify parses and validates a token string. It distinguishes a
// malformed or badly-signed credential (ErrTokenInvalid) from one
// whose embedded expiry has passed (ErrTokenExpired).
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", common.ErrTokenInvalid
	}

	if claims.ID == "" {
		return "", common.ErrTokenInvalid
	}

	if claims.TokenExpires <= time.Now().UnixMilli() {
		return "", common.ErrTokenExpired
	}

	return claims.ID, nil
}
