package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/boardstate/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/boardstate/internal/app"
	"github.com/jsamuelsen11/boardstate/internal/platform/idgen"
)

func stringPtr(s string) *string { return &s }

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// newStores builds the three stores over in-memory storage with
// deterministic ids: t-1, u-1, p-1 and so on.
func newStores(t *testing.T) (*app.TaskStore, *app.UserStore, *app.ProductStore) {
	t.Helper()
	storage := memory.New()
	return app.NewTaskStore(storage, app.WithIDGenerator(idgen.Sequence("t"))),
		app.NewUserStore(storage, app.WithIDGenerator(idgen.Sequence("u"))),
		app.NewProductStore(storage, app.WithIDGenerator(idgen.Sequence("p")))
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
