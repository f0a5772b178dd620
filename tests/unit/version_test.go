package unit

import (
	"net/http/httptest"
	"testing"

	"github.com/itracol/collections-backend/tests/helpers"
)

// TestVersionNegotiation tests the X-Api-Version header handling
func TestVersionNegotiation(t *testing.T) {
	app, _, _ := helpers.NewTestApp(t)

	cases := []struct {
		version string
		status  int
	}{
		{"", 200},
		{"1", 200},
		{"1.0", 200},
		{"1.0.0", 200},
		{"1.2.3", 200},
		{"2.0.0", 400},
		{"0.9", 400},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/api/users", nil)
		if tc.version != "" {
			req.Header.Set("X-Api-Version", tc.version)
		}

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to execute request: %v", err)
		}
		if resp.StatusCode != tc.status {
			t.Errorf("Version %q: expected status %d, got %d", tc.version, tc.status, resp.StatusCode)
		}
	}
}
