// file: internals/features/users/auth/controller/auth_controller_test.go
package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studypulse_backend/internals/testutil"
)

func TestRegisterLoginLogoutFlow(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)

	// register
	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"user_name": "Sam",
		"email":     "Sam@Example.com",
		"password":  "password123",
		"role":      "student",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := testutil.DecodeBody(t, resp)
	assert.Equal(t, "sam@example.com", body["data"].(map[string]any)["email"])

	// duplicate email conflicts, regardless of casing
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"user_name": "Sam Again",
		"email":     "sam@example.com",
		"password":  "password123",
		"role":      "student",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// wrong password
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "sam@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// login
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "sam@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = testutil.DecodeBody(t, resp)
	data := body["data"].(map[string]any)
	access := data["access_token"].(string)
	refresh := data["refresh_token"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	// the token works
	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/u/users/me", access, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// logout blacklists it
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/logout", access, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/u/users/me", access, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// and the refresh family is gone with it
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/refresh", "", map[string]any{
		"refresh_token": refresh,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"user_name": "Mallory",
		"email":     "mallory@example.com",
		"password":  "password123",
		"role":      "admin",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRefreshRotatesToken(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"user_name": "Sam",
		"email":     "sam@example.com",
		"password":  "password123",
		"role":      "teacher",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "sam@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := testutil.DecodeBody(t, resp)["data"].(map[string]any)["refresh_token"].(string)

	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/refresh", "", map[string]any{
		"refresh_token": first,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := testutil.DecodeBody(t, resp)["data"].(map[string]any)
	second := data["refresh_token"].(string)
	require.NotEmpty(t, data["access_token"].(string))

	// the consumed token is dead; the rotated one still works
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/refresh", "", map[string]any{
		"refresh_token": first,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/refresh", "", map[string]any{
		"refresh_token": second,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
