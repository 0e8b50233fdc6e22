package integration

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	stack := setupStack(t, testDB)

	t.Run("CORS headers are present on API responses", func(t *testing.T) {
		testDB.TruncateTables(t)

		req := httptest.NewRequest(http.MethodGet, "/webhook-configs", nil)
		w := httptest.NewRecorder()
		stack.router.ServeHTTP(w, req)

		// Verify CORS headers are present
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, PUT, PATCH, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("CORS preflight OPTIONS request returns 204 No Content", func(t *testing.T) {
		testDB.TruncateTables(t)

		req := httptest.NewRequest(http.MethodOptions, "/webhook-events", nil)
		req.Header.Set("Origin", "http://example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		w := httptest.NewRecorder()
		stack.router.ServeHTTP(w, req)

		// Verify preflight response
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, PUT, PATCH, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("CORS headers are present on event creation", func(t *testing.T) {
		testDB.TruncateTables(t)

		body := `{"event_type":"custom.ping","payload":{}}`
		req := httptest.NewRequest(http.MethodPost, "/webhook-events?action=create", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		stack.router.ServeHTTP(w, req)

		// Verify CORS headers are present
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestLoggingMiddleware_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	stack := setupStack(t, testDB)

	t.Run("Logger middleware logs requests to the events API", func(t *testing.T) {
		testDB.TruncateTables(t)

		// Logging happens in the background, so we just verify the request worked
		req := httptest.NewRequest(http.MethodGet, "/webhook-events?action=list", nil)
		w := httptest.NewRecorder()
		stack.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Logger middleware logs error status codes", func(t *testing.T) {
		testDB.TruncateTables(t)

		body := `{"payload":{}}`
		req := httptest.NewRequest(http.MethodPost, "/webhook-events?action=create", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		stack.router.ServeHTTP(w, req)

		// Verify error was logged (status 400)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
