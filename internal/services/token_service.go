package services

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/itracol/collections-backend/internal/config"
	"github.com/itracol/collections-backend/internal/models"
	"github.com/itracol/collections-backend/internal/types"
)

// Claim is the verified identity extracted from a caller's token.
type Claim struct {
	UserID  uint64
	IsAdmin bool
}

type tokenClaims struct {
	ID      uint64 `json:"id"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// IssueToken signs a token embedding the subject user id and admin flag,
// expiring after the configured lifetime (1 hour by default).
func IssueToken(cfg *config.Config, user *models.User) (string, error) {
	now := jwt.TimeFunc()
	claims := tokenClaims{
		ID:      user.ID,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWTExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// VerifyToken parses and verifies a token string. Any failure (missing,
// malformed, expired, wrong signature) collapses to the single InvalidToken
// error surfaced before ownership logic runs.
func VerifyToken(cfg *config.Config, tokenString string) (Claim, error) {
	if tokenString == "" {
		return Claim{}, types.NewInvalidTokenError()
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, types.NewInvalidTokenError()
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return Claim{}, types.NewInvalidTokenError()
	}

	return Claim{UserID: claims.ID, IsAdmin: claims.IsAdmin}, nil
}
