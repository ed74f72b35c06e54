// internal/auth/service.go
// Token verification only. Session issuance, signup and password flows are
// owned by the identity service; this core just validates what it is handed.

package auth

import (
	"context"
	"errors"

	"github.com/sparkd-app/sparkd-backend/internal/common/utils"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Service validates access tokens
type Service interface {
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)
}

type service struct {
	jwtSecret string
}

// NewService creates a token validation service
func NewService(jwtSecret string) Service {
	return &service{jwtSecret: jwtSecret}
}

func (s *service) ValidateToken(_ context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateJWT(token, s.jwtSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
