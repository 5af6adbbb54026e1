package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sevahub/database/docstore"
	"sevahub/database/sessioncache"
	"sevahub/handlers"
	"sevahub/middleware"
	"sevahub/routes"
	"sevahub/services/catalog"
	"sevahub/services/credential"
	"sevahub/services/directory"
	"sevahub/services/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	store := docstore.NewSeededMemoryStore()
	cache := sessioncache.NewMemoryCache()
	backend := credential.NewLocalBackend()
	dir := directory.NewDirectoryService(ctx, cache)

	hb := &routes.HandlerBundle{
		Session:  handlers.NewSessionHandler(session.NewManager(backend, store, cache, dir)),
		Provider: handlers.NewProviderHandler(dir),
		Catalog:  handlers.NewCatalogHandler(catalog.NewCatalogService(store)),
	}

	router := gin.New()
	routes.RegisterRoutes(router, hb)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(middleware.SessionIDHeader, sessionID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestLoginRequiresSessionID(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@b.com", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "client-1", gin.H{"email": "a@b.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid login request", decode(t, w)["message"])
}

func TestLoginMeLogoutFlow(t *testing.T) {
	router := newTestRouter(t)
	const sid = "client-1"

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", sid, gin.H{"email": "a@b.com", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "a@b.com", user["email"])

	w = doJSON(t, router, http.MethodGet, "/api/auth/me", sid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, session.StateAuthenticated, body["state"])
	require.NotNil(t, body["user"])

	w = doJSON(t, router, http.MethodPost, "/api/auth/logout", sid, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/auth/me", sid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Nil(t, body["user"])
	assert.Equal(t, session.StateAnonymous, body["state"])
}

func TestSessionsAreIsolated(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "client-a", gin.H{"email": "a@b.com", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/auth/me", "client-b", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["user"], "another client session must stay anonymous")
}

func TestProviderSignupAppearsInDirectory(t *testing.T) {
	router := newTestRouter(t)
	const sid = "client-1"

	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", sid, gin.H{
		"email":        "fix@example.com",
		"password":     "Str0ng!pass",
		"accountType":  "provider",
		"businessName": "FixIt Repairs",
		"category":     "plumbing",
		"city":         "Pune",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	user := body["user"].(map[string]any)
	assert.Equal(t, "PROVIDER", user["role"])

	w = doJSON(t, router, http.MethodGet, "/api/providers?category=plumbing", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	providers := decode(t, w)["providers"].([]any)

	var found bool
	for _, raw := range providers {
		if raw.(map[string]any)["businessName"] == "FixIt Repairs" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBookingLifecycle(t *testing.T) {
	router := newTestRouter(t)
	const sid = "client-1"

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", sid, gin.H{"email": "a@b.com", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/bookings", sid, gin.H{
		"serviceId":  "service1",
		"providerId": "provider1",
		"date":       "2026-09-01",
		"time":       "10:00 AM",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	bookings := decode(t, w)["bookings"].([]any)
	require.Len(t, bookings, 1)
	booking := bookings[0].(map[string]any)
	assert.Equal(t, "CONFIRMED", booking["status"])
	id := booking["id"].(string)

	w = doJSON(t, router, http.MethodDelete, "/api/bookings/"+id, sid, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/bookings", sid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["bookings"])
}

func TestBookingRequiresLogin(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/bookings", "anon-client", gin.H{"serviceId": "service1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCatalogServices(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/services", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["services"])

	w = doJSON(t, router, http.MethodGet, "/api/services/no-such-service", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserBookingsRequireToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/users/user1/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
