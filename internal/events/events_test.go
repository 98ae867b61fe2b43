package events

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"collegeconnect/internal/observability/middleware"
)

func TestEmitWritesEventWithRequestIDs(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	var ctx context.Context
	h := middleware.WithRequestAndTrace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx = r.Context()
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	buf.Reset()

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	Emit(ctx, RegistrationDecided{RegistrationID: "r1", Status: "Rejected", Reason: "blurry scan", At: at})

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if rec["event"] != "registration.decided" || rec["request_id"] != "req-1" {
		t.Fatalf("unexpected record: %v", rec)
	}
	payload, _ := rec["payload"].(map[string]any)
	if payload["status"] != "Rejected" || payload["reason"] != "blurry scan" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}
