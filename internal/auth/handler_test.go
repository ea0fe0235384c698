package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/full-stack-rbac/full-stack-rbac/internal/rbac"
)

func mountedRouter(t *testing.T) (chi.Router, *loginFixture) {
	t.Helper()
	fx := newLoginFixture(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gate := rbac.NewGate(fx.codec, rbac.NewResolver(fx.store))

	r := chi.NewRouter()
	NewHandler(logger, fx.service, gate).MountRoutes(r)
	return r, fx
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestLoginEndpointReturnsTokenAndPermissions(t *testing.T) {
	router, _ := mountedRouter(t)

	rr := postJSON(t, router, "/login", `{"email":"admin@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var body struct {
		Permissions []string `json:"permissions"`
		Token       string   `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, []string{rbac.PermSettingRead}, body.Permissions)
	assert.Len(t, strings.Split(body.Token, "."), 3)
}

func TestLoginEndpointRejectsBadCredentials(t *testing.T) {
	router, _ := mountedRouter(t)

	for _, payload := range []string{
		`{"email":"admin@example.com","password":"wrong"}`,
		`{"email":"nobody@example.com","password":"s3cret"}`,
	} {
		rr := postJSON(t, router, "/login", payload)
		require.Equal(t, http.StatusBadRequest, rr.Code, payload)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "Incorrect email or password", body["message"])
	}
}

func TestLoginEndpointValidatesBody(t *testing.T) {
	router, _ := mountedRouter(t)

	for _, payload := range []string{
		`{"email":"not-an-email","password":"s3cret"}`,
		`{"email":"admin@example.com"}`,
		`{`,
	} {
		rr := postJSON(t, router, "/login", payload)
		assert.Equal(t, http.StatusBadRequest, rr.Code, payload)
	}
}

func TestCheckEndpointSuccess(t *testing.T) {
	router, _ := mountedRouter(t)

	login := postJSON(t, router, "/login", `{"email":"admin@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusCreated, login.Code)
	var loginBody struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &loginBody))

	payload, err := json.Marshal(map[string]any{
		"permissions": []string{rbac.PermSettingRead},
		"token":       loginBody.Token,
	})
	require.NoError(t, err)

	rr := postJSON(t, router, "/", string(payload))
	require.Equal(t, http.StatusCreated, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "success", body["message"])
}

func TestCheckEndpointMissingPermission(t *testing.T) {
	router, _ := mountedRouter(t)

	login := postJSON(t, router, "/login", `{"email":"admin@example.com","password":"s3cret"}`)
	var loginBody struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &loginBody))

	payload, err := json.Marshal(map[string]any{
		"permissions": []string{rbac.PermSettingDelete},
		"token":       loginBody.Token,
	})
	require.NoError(t, err)

	rr := postJSON(t, router, "/", string(payload))
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "user does not have permission", body["message"])
	_, hasDetail := body["error"]
	assert.False(t, hasDetail)
}

func TestCheckEndpointBadToken(t *testing.T) {
	router, _ := mountedRouter(t)

	rr := postJSON(t, router, "/", `{"permissions":[],"token":"not.a.token"}`)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "user is not authorized", body["message"])
	assert.NotEmpty(t, body["error"])
}
