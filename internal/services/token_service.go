package services

import (
	"time"

	courier_errors "courier/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService is the boundary to the identity collaborator: it only mints
// and verifies access tokens carrying a user id. Registration, login and
// session management live elsewhere.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

type AccessClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, expiryMin int) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		expiry: time.Duration(expiryMin) * time.Minute,
	}
}

func (s *TokenService) IssueAccessToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, courier_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, courier_errors.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return AccessClaims{}, courier_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok {
		return AccessClaims{}, courier_errors.ErrUnauthorized
	}
	return *claims, nil
}
