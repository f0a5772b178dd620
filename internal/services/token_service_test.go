package services

import (
	"errors"
	"testing"
	"time"

	"github.com/itracol/collections-backend/internal/config"
	"github.com/itracol/collections-backend/internal/models"
	"github.com/itracol/collections-backend/internal/types"
)

func tokenConfig() *config.Config {
	return &config.Config{JWTSecret: "token-test-secret", JWTExpiry: time.Hour}
}

// TestIssueAndVerifyToken tests the sign/verify round trip
func TestIssueAndVerifyToken(t *testing.T) {
	cfg := tokenConfig()
	user := &models.User{ID: 42, Name: "alice", IsAdmin: true}

	token, err := IssueToken(cfg, user)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	claim, err := VerifyToken(cfg, token)
	if err != nil {
		t.Fatalf("Failed to verify token: %v", err)
	}
	if claim.UserID != 42 {
		t.Errorf("Expected user id 42, got %d", claim.UserID)
	}
	if !claim.IsAdmin {
		t.Error("Expected the admin flag to survive the round trip")
	}
}

// TestVerifyTokenFailures tests that all failure modes collapse to the same
// error
func TestVerifyTokenFailures(t *testing.T) {
	cfg := tokenConfig()
	user := &models.User{ID: 1, Name: "alice"}

	valid, err := IssueToken(cfg, user)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	otherSecret := &config.Config{JWTSecret: "a-different-secret", JWTExpiry: time.Hour}
	foreign, err := IssueToken(otherSecret, user)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	expiredCfg := &config.Config{JWTSecret: cfg.JWTSecret, JWTExpiry: -time.Minute}
	expired, err := IssueToken(expiredCfg, user)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	cases := []struct {
		label string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not.a.token"},
		{"wrong signature", foreign},
		{"expired token", expired},
		{"truncated token", valid[:len(valid)-5]},
	}

	for _, tc := range cases {
		_, err := VerifyToken(cfg, tc.token)
		if err == nil {
			t.Errorf("%s: expected an error", tc.label)
			continue
		}
		var customErr *types.CustomError
		if !errors.As(err, &customErr) {
			t.Errorf("%s: expected the invalid-token error, got %v", tc.label, err)
			continue
		}
		if customErr.Code != 401 || customErr.Message != "Invalid token was sent" {
			t.Errorf("%s: expected the single vague 401, got %v", tc.label, customErr)
		}
	}
}
