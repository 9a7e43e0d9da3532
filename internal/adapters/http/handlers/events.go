package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/boardstate/internal/platform/logging"
	"github.com/jsamuelsen11/boardstate/internal/ports"
)

// streamState serves src as a server-sent event stream. The first event
// carries the state at connect time; every later event carries the state
// after a change. Changes that land while an event is being written are
// coalesced into the next event. The stream ends when the client goes away.
func streamState[S, R any](w http.ResponseWriter, r *http.Request, src ports.Observable[S], render func(S) R) {
	logger := logging.FromContext(r.Context())
	rc := http.NewResponseController(w)

	// The server write timeout would otherwise cut long-lived streams.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		logger.WarnContext(r.Context(), "failed to clear write deadline", slog.Any("error", err))
	}

	changed := make(chan struct{}, 1)
	unsubscribe := src.Subscribe(func(_, _ S) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	for {
		if err := writeEvent(w, render(src.State())); err != nil {
			logger.DebugContext(ctx, "event stream closed", slog.Any("error", err))
			return
		}
		if err := rc.Flush(); err != nil {
			logger.DebugContext(ctx, "event stream closed", slog.Any("error", err))
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-changed:
		}
	}
}

func writeEvent(w http.ResponseWriter, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}
