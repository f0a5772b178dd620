package unit

import (
	"testing"

	"github.com/itracol/collections-backend/tests/helpers"
)

// TestSignup tests POST /api/account/signup
func TestSignup(t *testing.T) {
	app, _, _ := helpers.NewTestApp(t)

	name := helpers.UniqueUserName()
	resp := helpers.DoJSON(t, app, "POST", "/api/account/signup", map[string]string{
		"name":     name,
		"password": helpers.GeneratePassword(),
	})

	helpers.AssertStatus(t, resp, 200)
	body := helpers.ParseEnvelope(t, resp, true)
	helpers.AssertMessage(t, body, "New user was created successfully!")

	if token, ok := body["token"].(string); !ok || token == "" {
		t.Error("Expected a token in the signup response")
	}

	user, ok := body["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected a user in the signup response, got %v", body)
	}
	if user["name"] != name {
		t.Errorf("Expected user name %q, got %q", name, user["name"])
	}
	// The password field is present but always null
	if v, present := user["password"]; !present || v != nil {
		t.Errorf("Expected a null password field, got %v (present=%v)", v, present)
	}
	if user["isAdmin"] != false {
		t.Errorf("Expected isAdmin=false for a fresh user, got %v", user["isAdmin"])
	}
}

// TestSignupDuplicateName tests the unique name constraint surfacing
func TestSignupDuplicateName(t *testing.T) {
	app, _, _ := helpers.NewTestApp(t)

	name := helpers.UniqueUserName()
	password := helpers.GeneratePassword()

	resp := helpers.DoJSON(t, app, "POST", "/api/account/signup", map[string]string{
		"name":     name,
		"password": password,
	})
	helpers.AssertStatus(t, resp, 200)
	helpers.ParseEnvelope(t, resp, true)

	resp = helpers.DoJSON(t, app, "POST", "/api/account/signup", map[string]string{
		"name":     name,
		"password": helpers.GeneratePassword(),
	})
	helpers.AssertStatus(t, resp, 400)
	body := helpers.ParseEnvelope(t, resp, false)
	helpers.AssertMessage(t, body, "Sorry, a user with the same name already exists!")
}

// TestSignupRejectsBadPayloads tests the signup field rules
func TestSignupRejectsBadPayloads(t *testing.T) {
	app, _, _ := helpers.NewTestApp(t)

	cases := []struct {
		label    string
		name     string
		password string
	}{
		{"upper case name", "Alice", "Passw0rd!"},
		{"empty name", "", "Passw0rd!"},
		{"short password", helpers.UniqueUserName(), "short"},
		{"password above range", helpers.UniqueUserName(), "Passw0rd{}"},
	}

	for _, tc := range cases {
		resp := helpers.DoJSON(t, app, "POST", "/api/account/signup", map[string]string{
			"name":     tc.name,
			"password": tc.password,
		})
		if resp.StatusCode != 400 {
			t.Errorf("%s: expected status 400, got %d", tc.label, resp.StatusCode)
		}
	}
}

// TestAuthenticate tests POST /api/account
func TestAuthenticate(t *testing.T) {
	app, _, _ := helpers.NewTestApp(t)

	name := helpers.UniqueUserName()
	password := helpers.GeneratePassword()
	helpers.AcquireAccount(t, app, name, password)

	resp := helpers.DoJSON(t, app, "POST", "/api/account", map[string]string{
		"name":     name,
		"password": password,
	})
	helpers.AssertStatus(t, resp, 200)
	body := helpers.ParseEnvelope(t, resp, true)
	helpers.AssertMessage(t, body, "User authenticated successfully!")
	if token, ok := body["token"].(string); !ok || token == "" {
		t.Error("Expected a token in the login response")
	}
}

// TestAuthenticateFailureIsVague tests that wrong name and wrong password are
// indistinguishable to the caller
func TestAuthenticateFailureIsVague(t *testing.T) {
	app, _, _ := helpers.NewTestApp(t)

	name := helpers.UniqueUserName()
	password := helpers.GeneratePassword()
	helpers.AcquireAccount(t, app, name, password)

	wrongPassword := helpers.DoJSON(t, app, "POST", "/api/account", map[string]string{
		"name":     name,
		"password": "Wr0ngPass!",
	})
	helpers.AssertStatus(t, wrongPassword, 400)
	bodyA := helpers.ParseEnvelope(t, wrongPassword, false)

	wrongName := helpers.DoJSON(t, app, "POST", "/api/account", map[string]string{
		"name":     helpers.UniqueUserName(),
		"password": password,
	})
	helpers.AssertStatus(t, wrongName, 400)
	bodyB := helpers.ParseEnvelope(t, wrongName, false)

	helpers.AssertMessage(t, bodyA, "Wrong name or password!")
	if bodyA["message"] != bodyB["message"] {
		t.Errorf("Expected identical failure messages, got %q and %q", bodyA["message"], bodyB["message"])
	}
}

// TestListUsers tests GET /api/users
func TestListUsers(t *testing.T) {
	app, _, _ := helpers.NewTestApp(t)

	helpers.AcquireAccount(t, app, helpers.UniqueUserName(), helpers.GeneratePassword())
	helpers.AcquireAccount(t, app, helpers.UniqueUserName(), helpers.GeneratePassword())

	resp := helpers.DoJSON(t, app, "GET", "/api/users", nil)
	helpers.AssertStatus(t, resp, 200)
	body := helpers.ParseEnvelope(t, resp, true)

	users, ok := body["users"].([]interface{})
	if !ok {
		t.Fatalf("Expected a users list, got %v", body)
	}
	if len(users) != 2 {
		t.Errorf("Expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		user := u.(map[string]interface{})
		if v, present := user["password"]; !present || v != nil {
			t.Errorf("Expected a null password field in listing, got %v", v)
		}
	}
}
