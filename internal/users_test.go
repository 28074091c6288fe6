package internal

import (
	"net/http"
	"testing"

	"labtrack-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	s, db := newTestServer(t)
	userID, _ := seedToken(t, s, db, "user@example.com", false)

	w := doRequest(t, s, "POST", "/auth/login", "", models.LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[models.LoginResponse](t, w)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, userID, resp.User.ID)
	assert.Empty(t, resp.User.PasswordHash) // never serialized

	// The issued token works against protected routes.
	w = doRequest(t, s, "GET", "/auth/profile", resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decodeBody[models.User](t, w)
	assert.Equal(t, userID, profile.ID)
}

func TestLogin_BadCredentials(t *testing.T) {
	s, db := newTestServer(t)
	seedToken(t, s, db, "user@example.com", false)

	w := doRequest(t, s, "POST", "/auth/login", "", models.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown emails get the same answer as bad passwords.
	w = doRequest(t, s, "POST", "/auth/login", "", models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePassword(t *testing.T) {
	s, db := newTestServer(t)
	_, token := seedToken(t, s, db, "user@example.com", false)

	w := doRequest(t, s, "PUT", "/auth/change-password", token, models.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword456",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s, "PUT", "/auth/change-password", token, models.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "newpassword456",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Old password stops working, new one logs in.
	w = doRequest(t, s, "POST", "/auth/login", "", models.LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, s, "POST", "/auth/login", "", models.LoginRequest{
		Email:    "user@example.com",
		Password: "newpassword456",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateUser_SuperuserOnly(t *testing.T) {
	s, db := newTestServer(t)
	_, userToken := seedToken(t, s, db, "user@example.com", false)
	_, adminToken := seedToken(t, s, db, "admin@example.com", true)

	body := models.CreateUserRequest{
		Email:    "newhire@example.com",
		Password: "welcome123",
	}

	w := doRequest(t, s, "POST", "/users", userToken, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s, "POST", "/users", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody[models.User](t, w)
	assert.Equal(t, "newhire@example.com", created.Email)
	assert.True(t, created.IsActive)
	assert.False(t, created.IsSuperuser)

	// Duplicate email conflicts.
	w = doRequest(t, s, "POST", "/users", adminToken, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody[ErrorResponse](t, w)
	assert.Equal(t, "CONFLICT", resp.Code)

	// The new account can log in right away.
	w = doRequest(t, s, "POST", "/auth/login", "", models.LoginRequest{
		Email:    "newhire@example.com",
		Password: "welcome123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = doRequest(t, s, "GET", "/dbping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "db: ok", w.Body.String())
}
