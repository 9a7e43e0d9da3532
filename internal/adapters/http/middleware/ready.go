package middleware

import (
	"fmt"
	"net/http"

	"github.com/jsamuelsen11/boardstate/internal/adapters/http/dto"
	"github.com/jsamuelsen11/boardstate/internal/domain"
)

// retryAfterSeconds is sent with 503 responses while the stores are loading.
const retryAfterSeconds = "1"

// RequireReady rejects state-changing requests with a 503 until ready reports
// true. Reads pass through and see the default state. Until the stores have
// loaded, a write would be mirrored over the stored session before it is read.
func RequireReady(ready func() bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isReadOnly(r.Method) || ready() {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Retry-After", retryAfterSeconds)
			dto.WriteErrorResponse(w, r, fmt.Errorf("stores are still loading: %w", domain.ErrUnavailable))
		})
	}
}

func isReadOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
