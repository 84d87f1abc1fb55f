package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Availability decides once per process whether the post store is reachable
// and fails data routes fast afterwards. The verdict is terminal: recovering
// from an outage requires a restart. That trade-off is deliberate, it avoids
// hammering a dead database with reconnect attempts on every request.
type Availability struct {
	dsn          string
	probe        func(ctx context.Context) error
	probeTimeout time.Duration
	logger       *slog.Logger

	done      chan struct{}
	start     chan struct{}
	available bool
	code      string
	message   string
}

func NewAvailability(dsn string, probe func(ctx context.Context) error, logger *slog.Logger) *Availability {
	a := &Availability{
		dsn:          dsn,
		probe:        probe,
		probeTimeout: 10 * time.Second,
		logger:       logger,
		done:         make(chan struct{}),
		start:        make(chan struct{}, 1),
	}
	a.start <- struct{}{}
	return a
}

// Handler gates next behind the store verdict. Concurrent first requests wait
// for the single in-flight probe instead of racing their own.
func (a *Availability) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-a.start:
			a.decide(r.Context())
		case <-a.done:
		}

		if !a.available {
			writeUnavailable(w, r, a.code, a.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// decide runs exactly once; the start token is never returned to the channel.
// Fields are written before close(done) and only read after it, so readers
// observe a consistent terminal state.
func (a *Availability) decide(ctx context.Context) {
	defer close(a.done)

	if a.dsn == "" || strings.Contains(a.dsn, "placeholder") {
		a.logger.Warn("database not configured; data routes disabled")
		a.code = "DATABASE_NOT_CONFIGURED"
		a.message = "Database configuration is missing. Please contact the administrator."
		return
	}

	probeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.probeTimeout)
	defer cancel()

	a.logger.Info("probing database availability")
	if err := a.probe(probeCtx); err != nil {
		a.logger.Error("database probe failed; data routes disabled until restart", "error", err)
		a.code = "SERVICE_UNAVAILABLE"
		a.message = "Database is currently unavailable. Please try again later."
		return
	}

	a.logger.Info("database available")
	a.available = true
}

func writeUnavailable(w http.ResponseWriter, r *http.Request, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":      code,
		"message":    message,
		"request_id": GetRequestID(r.Context()),
	})
}
