package helpers

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

// AssertStatus verifies the HTTP status code
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("Expected status %d, got %d", expected, resp.StatusCode)
	}
}

// ParseJSON decodes the response body into the target
func ParseJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	defer resp.Body.Close()

	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("Failed to decode JSON: %v. Body: %s", err, string(body))
	}
}

// ParseEnvelope decodes the standard response envelope and verifies the
// success flag.
func ParseEnvelope(t *testing.T, resp *http.Response, wantSuccess bool) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	ParseJSON(t, resp, &body)

	success, ok := body["success"].(bool)
	if !ok {
		t.Fatalf("Response has no boolean success flag: %v", body)
	}
	if success != wantSuccess {
		t.Errorf("Expected success=%v, got %v. Body: %v", wantSuccess, success, body)
	}
	return body
}

// AssertMessage verifies the message field of a parsed envelope.
func AssertMessage(t *testing.T, body map[string]interface{}, expected string) {
	t.Helper()
	if body["message"] != expected {
		t.Errorf("Expected message %q, got %q", expected, body["message"])
	}
}
