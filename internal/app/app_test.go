package app_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"taskflow/internal/app"
	"taskflow/internal/config"
	"taskflow/internal/models"
)

func testConfig(t *testing.T, apiKey string) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Host:        "localhost",
			Port:        "0",
			Environment: "development",
		},
		Database: config.DatabaseConfig{
			Path: filepath.Join(t.TempDir(), "test.db"),
		},
		Auth: config.AuthConfig{APIKey: apiKey},
		RateLimit: config.RateLimitConfig{
			Enabled:         true,
			RequestsPerMin:  6000,
			BurstSize:       100,
			CleanupInterval: time.Minute,
		},
	}
}

func newTestApp(t *testing.T, apiKey string) *app.App {
	t.Helper()
	a, err := app.New(testConfig(t, apiKey))
	if err != nil {
		t.Fatalf("Failed to build app: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func request(a *app.App, method, path, body, apiKey string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)
	return w
}

type taskEnvelope struct {
	Data  models.Task `json:"data"`
	Error string      `json:"error"`
}

func TestTaskLifecycleScenario(t *testing.T) {
	a := newTestApp(t, "")

	// Create.
	w := request(a, "POST", "/tasks", `{"title":"Write tests"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /tasks: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	var created taskEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode create response: %v", err)
	}
	task := created.Data
	if task.ID == 0 || task.Title != "Write tests" || task.Description != "" ||
		task.Status != models.StatusTodo || task.Assignee != nil {
		t.Fatalf("Unexpected created task: %+v", task)
	}
	if task.UpdatedAt.Before(task.CreatedAt) {
		t.Error("updated_at is behind created_at")
	}

	idPath := "/tasks/" + strconv.FormatInt(task.ID, 10)

	// Cycle to in_progress.
	w = request(a, "PATCH", idPath, `{"status":"in_progress"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("PATCH: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var patched taskEnvelope
	json.Unmarshal(w.Body.Bytes(), &patched)
	if patched.Data.Status != models.StatusInProgress {
		t.Errorf("Expected in_progress, got %q", patched.Data.Status)
	}
	if patched.Data.Title != "Write tests" {
		t.Errorf("Patch touched title: %q", patched.Data.Title)
	}

	// List contains it.
	w = request(a, "GET", "/tasks", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /tasks: expected 200, got %d", w.Code)
	}
	var list struct {
		Data []models.Task `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list.Data) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(list.Data))
	}

	// Delete.
	w = request(a, "DELETE", idPath, "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE: expected 200, got %d", w.Code)
	}
	if w.Body.String() != `{"data":null}` {
		t.Errorf("Expected {\"data\":null}, got %s", w.Body.String())
	}

	// Gone.
	w = request(a, "GET", idPath, "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("GET after delete: expected 404, got %d", w.Code)
	}
	w = request(a, "DELETE", idPath, "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Second delete: expected 404, got %d", w.Code)
	}
}

func TestCreateValidation(t *testing.T) {
	a := newTestApp(t, "")

	w := request(a, "POST", "/tasks", `{"title":"   "}`, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"Title is required"}` {
		t.Errorf("Unexpected body: %s", w.Body.String())
	}
}

func TestAPIKeyGuardsTaskRoutes(t *testing.T) {
	a := newTestApp(t, "sekrit")

	w := request(a, "GET", "/tasks", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without key, got %d", w.Code)
	}

	w = request(a, "GET", "/tasks", "", "sekrit")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with key, got %d", w.Code)
	}

	// Liveness stays open.
	w = request(a, "GET", "/health", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected /health open, got %d", w.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	a := newTestApp(t, "")

	w := request(a, "GET", "/health", "", "")
	if w.Code != http.StatusOK || w.Body.String() != `{"status":"ok"}` {
		t.Errorf("Unexpected health response: %d %s", w.Code, w.Body.String())
	}

	w = request(a, "GET", "/metrics", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected /metrics to be served, got %d", w.Code)
	}
}
