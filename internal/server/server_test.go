package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/splycehq/splyce-backend/internal/config"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := NewServer(&config.Config{
		Port:         8080,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}, slog.Default())

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != `{"ok":true}` {
		t.Errorf("body = %s, want {\"ok\":true}", got)
	}
}
