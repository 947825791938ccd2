package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	s, store, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/auth/register", "", RegisterRequest{
		Email:    "dev@example.com",
		Password: "correct horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dev@example.com", resp.Email)
	assert.NotEmpty(t, resp.Token)

	// Password must be stored hashed.
	user := store.users["dev@example.com"]
	require.NotNil(t, user)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s, _, _ := newTestServer(t)

	req := RegisterRequest{Email: "dev@example.com", Password: "correct horse"}
	rec := doJSON(t, s, http.MethodPost, "/auth/register", "", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/auth/register", "", req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_Validation(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/auth/register", "", RegisterRequest{
		Email:    "not-an-email",
		Password: "correct horse",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/auth/register", "", RegisterRequest{
		Email:    "dev@example.com",
		Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	s, _, _ := newTestServer(t)
	registerAndLogin(t, s)

	rec := doJSON(t, s, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    "dev@example.com",
		Password: "correct horse",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	// The issued token must open protected routes.
	profileRec := doJSON(t, s, http.MethodGet, "/profile", resp.Token, nil)
	assert.Equal(t, http.StatusOK, profileRec.Code)
}

func TestLogin_WrongPasswordAndUnknownEmailLookTheSame(t *testing.T) {
	s, _, _ := newTestServer(t)
	registerAndLogin(t, s)

	wrongPW := doJSON(t, s, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    "dev@example.com",
		Password: "wrong password",
	})
	unknown := doJSON(t, s, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever works",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPW.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.JSONEq(t, wrongPW.Body.String(), unknown.Body.String())
}
