package helpers

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func randInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// GeneratePassword generates a 10 character password with a capital and
// special char. Every character is inside the accepted password range.
func GeneratePassword() string {
	const (
		lower   = "abcdefghijklmnopqrstuvwxyz"
		upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		special = "!@#$%^&*"
		numbers = "0123456789"
		all     = lower + upper + special + numbers
	)

	password := make([]byte, 10)
	password[0] = upper[randInt(len(upper))]
	password[1] = special[randInt(len(special))]
	password[2] = numbers[randInt(len(numbers))]

	for i := 3; i < 10; i++ {
		password[i] = all[randInt(len(all))]
	}

	for i := range password {
		j := randInt(len(password))
		password[i], password[j] = password[j], password[i]
	}

	return string(password)
}

// UniqueUserName returns a random name that satisfies the user name rules.
func UniqueUserName() string {
	return "u" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// DoJSON marshals body and executes the request against the app.
func DoJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute %s %s: %v", method, target, err)
	}
	return resp
}

// Mutation wraps a payload in the token envelope mutating routes expect.
func Mutation(token string, payload interface{}) map[string]interface{} {
	return map[string]interface{}{
		"token":   token,
		"payload": payload,
	}
}

// AcquireAccount signs a fresh user up and returns its token and id.
func AcquireAccount(t *testing.T, app *fiber.App, name, password string) (string, uint64) {
	t.Helper()

	payload, _ := json.Marshal(map[string]string{
		"name":     name,
		"password": password,
	})
	req := httptest.NewRequest("POST", "/api/account/signup", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute signup request: %v", err)
	}
	AssertStatus(t, resp, 200)

	body := ParseEnvelope(t, resp, true)

	token, ok := body["token"].(string)
	if !ok || token == "" {
		t.Fatalf("Signup returned no token: %v", body)
	}

	user, ok := body["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("Signup returned no user: %v", body)
	}
	id, ok := user["id"].(float64)
	if !ok {
		t.Fatalf("Signup returned no user id: %v", body)
	}

	return token, uint64(id)
}
