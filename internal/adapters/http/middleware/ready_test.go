package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/jsamuelsen11/boardstate/internal/adapters/http/middleware"
)

func TestRequireReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		ready      bool
		wantStatus int
		wantCalled bool
	}{
		{name: "get before ready", method: http.MethodGet, ready: false, wantStatus: http.StatusOK, wantCalled: true},
		{name: "head before ready", method: http.MethodHead, ready: false, wantStatus: http.StatusOK, wantCalled: true},
		{name: "post before ready", method: http.MethodPost, ready: false, wantStatus: http.StatusServiceUnavailable},
		{name: "patch before ready", method: http.MethodPatch, ready: false, wantStatus: http.StatusServiceUnavailable},
		{name: "delete before ready", method: http.MethodDelete, ready: false, wantStatus: http.StatusServiceUnavailable},
		{name: "post after ready", method: http.MethodPost, ready: true, wantStatus: http.StatusOK, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			handler := middleware.RequireReady(func() bool { return tt.ready })(
				http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					called = true
					w.WriteHeader(http.StatusOK)
				}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, "/api/v1/tasks", http.NoBody))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
			if tt.wantStatus == http.StatusServiceUnavailable {
				if got := rec.Header().Get("Retry-After"); got == "" {
					t.Error("missing Retry-After header")
				}
				if got := rec.Header().Get("Content-Type"); got != "application/problem+json" {
					t.Errorf("Content-Type = %q, want application/problem+json", got)
				}
			}
		})
	}
}

func TestRequireReady_OpensOnceReady(t *testing.T) {
	t.Parallel()

	var ready atomic.Bool
	handler := middleware.RequireReady(ready.Load)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/tasks", http.NoBody))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	ready.Store(true)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/tasks", http.NoBody))
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
}
