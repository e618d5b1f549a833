package server

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"testing"
	"time"

	"vibehub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup_CreatesUnverifiedAccountWithoutTokens(t *testing.T) {
	s, app := newTestServer(t, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/signup", fiber.Map{
		"username":  "newvibes",
		"email":     "NewVibes@Example.com",
		"password":  testPassword,
		"full_name": "New Vibes",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body, "user")
	assert.Equal(t, "Verification email sent", body["message"])
	// No session until the mailed link is used.
	assert.NotContains(t, body, "token")
	assert.NotContains(t, body, "refresh_token")

	var user models.User
	require.NoError(t, s.db.Where("username = ?", "newvibes").First(&user).Error)
	assert.Equal(t, "newvibes@example.com", user.Email)
	assert.False(t, user.IsVerified)
	assert.NotEmpty(t, user.VerifyTokenHash)
	require.NotNil(t, user.VerifyExpiry)
}

func TestSignup_RejectsWeakPassword(t *testing.T) {
	_, app := newTestServer(t, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/signup", fiber.Map{
		"username": "newvibes",
		"email":    "newvibes@example.com",
		"password": "short",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, models.CodeValidation, body["code"])
}

func TestVerifyEmail_MailedLinkArrivesAsGet(t *testing.T) {
	s, app := newTestServer(t, nil)

	plain := "known-token"
	digest := sha256.Sum256([]byte(plain))
	expiry := time.Now().Add(2 * time.Minute)
	require.NoError(t, s.db.Create(&models.User{
		Username:        "pending",
		Email:           "pending@example.com",
		Password:        "irrelevant",
		VerifyTokenHash: hex.EncodeToString(digest[:]),
		VerifyExpiry:    &expiry,
	}).Error)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/auth/verify-email?token="+plain, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, s.db.Where("username = ?", "pending").First(&user).Error)
	assert.True(t, user.IsVerified)
	assert.Empty(t, user.VerifyTokenHash)
	assert.Nil(t, user.VerifyExpiry)
}

func TestVerifyEmail_MissingTokenIsBadRequest(t *testing.T) {
	_, app := newTestServer(t, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/verify-email", fiber.Map{}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	s, app := newTestServer(t, nil)
	createVerifiedUser(t, s, "vibe", false)
	require.NoError(t, s.db.Model(&models.User{}).
		Where("username = ?", "vibe").Update("is_verified", false).Error)

	for name, creds := range map[string]fiber.Map{
		"unknown email":  {"email": "ghost@example.com", "password": testPassword},
		"wrong password": {"email": "vibe@example.com", "password": "Wr0ngPassword!!"},
		"unverified":     {"email": "vibe@example.com", "password": testPassword},
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", creds))
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, "Invalid credentials", body["error"])
		})
	}
}

func TestLogin_IssuesWorkingTokenPair(t *testing.T) {
	s, app := newTestServer(t, nil)
	createVerifiedUser(t, s, "vibe", false)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "Vibe@Example.com", // normalized before lookup
		"password": testPassword,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	access, _ := body["token"].(string)
	refresh, _ := body["refresh_token"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	resp, err = app.Test(authedRequest(t, http.MethodGet, "/api/users/me", nil, access))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody(t, resp)
	assert.Equal(t, "vibe", me["username"])
}

func TestAuthRequired_RejectsRefreshTokenAsBearer(t *testing.T) {
	s, app := newTestServer(t, nil)
	user := createVerifiedUser(t, s, "vibe", false)

	refresh, err := s.generateToken(user.ID, user.Username, "refresh", time.Hour)
	require.NoError(t, err)

	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/users/me", nil, refresh))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRefresh_RotationRevokesTheOldToken(t *testing.T) {
	s, app := newTestServer(t, newTestRedis(t))
	user := createVerifiedUser(t, s, "vibe", false)

	oldRefresh, err := s.generateToken(user.ID, user.Username, "refresh", time.Hour)
	require.NoError(t, err)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/refresh", fiber.Map{
		"refresh_token": oldRefresh,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.NotEmpty(t, body["token"])
	require.NotEmpty(t, body["refresh_token"])
	assert.NotEqual(t, oldRefresh, body["refresh_token"])

	// Replaying the spent refresh token must fail.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/refresh", fiber.Map{
		"refresh_token": oldRefresh,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	replay := decodeBody(t, resp)
	assert.Equal(t, "Token has been revoked", replay["error"])
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	s, app := newTestServer(t, nil)
	user := createVerifiedUser(t, s, "vibe", false)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/refresh", fiber.Map{
		"refresh_token": accessTokenFor(t, s, user),
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogout_RevokesTheAccessToken(t *testing.T) {
	s, app := newTestServer(t, newTestRedis(t))
	user := createVerifiedUser(t, s, "vibe", false)
	access := accessTokenFor(t, s, user)

	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/users/me", nil, access))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(authedRequest(t, http.MethodPost, "/api/auth/logout", nil, access))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(authedRequest(t, http.MethodGet, "/api/users/me", nil, access))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
