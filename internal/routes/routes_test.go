package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"agency-tracker-api/internal/auth"
	"agency-tracker-api/internal/database"
	"agency-tracker-api/internal/models"
	"agency-tracker-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db
	return SetupRoutes()
}

func TestHealthEndpoint(t *testing.T) {
	r := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setup(t)

	for _, path := range []string{"/api/tasks", "/api/dashboard"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestAdminRoutesForbiddenForEmployees(t *testing.T) {
	r := setup(t)
	token, err := auth.GenerateToken("user-1", "emp@example.com", models.RoleEmployee)
	require.NoError(t, err)

	for _, path := range []string{"/api/clients", "/api/users", "/api/reports/summary"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := setup(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
