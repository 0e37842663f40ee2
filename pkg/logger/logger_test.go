package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewWithWriter_LevelOverride(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "production", "debug")
	l.Debug("hello")
	if buf.Len() == 0 {
		t.Fatalf("expected debug line with override")
	}

	buf.Reset()
	l = NewWithWriter(&buf, "production", "")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug suppressed in production")
	}
}

func TestMiddleware_PropagatesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	r := gin.New()
	r.Use(Middleware(NewWithWriter(&buf, "production", "")))

	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = RequestID(c.Request.Context())
		From(c.Request.Context()).Info("inside")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "rid-1")
	r.ServeHTTP(w, req)

	if seen != "rid-1" {
		t.Fatalf("expected request id in context, got %q", seen)
	}
	if w.Header().Get("X-Request-Id") != "rid-1" {
		t.Fatalf("expected request id echoed")
	}

	dec := json.NewDecoder(&buf)
	lines := 0
	for dec.More() {
		var m map[string]any
		if err := dec.Decode(&m); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if m["request_id"] != "rid-1" {
			t.Fatalf("expected request_id on every line, got %v", m)
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("expected 2 log lines, got %d", lines)
	}
}

func TestFrom_FallsBackToDefault(t *testing.T) {
	if From(context.Background()) == nil {
		t.Fatalf("expected default logger")
	}
	if RequestID(context.Background()) != "" {
		t.Fatalf("expected empty request id")
	}
}
