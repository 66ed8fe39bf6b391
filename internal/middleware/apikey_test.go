package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taskflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func setupAuthRouter(key string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.APIKeyAuth(key))
	router.GET("/tasks", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []string{}})
	})
	return router
}

func TestAPIKeyAuthDisabledWhenUnconfigured(t *testing.T) {
	router := setupAuthRouter("")

	req, _ := http.NewRequest("GET", "/tasks", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestAPIKeyAuthRejectsMissingKey(t *testing.T) {
	router := setupAuthRouter("sekrit")

	req, _ := http.NewRequest("GET", "/tasks", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
	if w.Body.String() != `{"error":"Unauthorized"}` {
		t.Errorf("Unexpected body: %s", w.Body.String())
	}
}

func TestAPIKeyAuthRejectsWrongKey(t *testing.T) {
	router := setupAuthRouter("sekrit")

	req, _ := http.NewRequest("GET", "/tasks", nil)
	req.Header.Set("x-api-key", "guess")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAPIKeyAuthAcceptsExactKey(t *testing.T) {
	router := setupAuthRouter("sekrit")

	req, _ := http.NewRequest("GET", "/tasks", nil)
	req.Header.Set("x-api-key", "sekrit")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
}
