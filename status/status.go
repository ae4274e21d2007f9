// Package status serves the resolved configuration and API-key readiness over HTTP.
package status

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cotacao/ratepipe/listener/middleware"
	"github.com/cotacao/ratepipe/settings"
)

// Default rate limit for the /settings routes.
const (
	DefaultRequestsPerSecond = 5
	DefaultBurst             = 10
)

// ListenerName is the listener module name and DI tag for the status handler.
const ListenerName = "status"

// APIKeysReport is the body of GET /settings/api-keys.
type APIKeysReport struct {
	Ready   bool     `json:"ready"`
	Missing []string `json:"missing,omitempty"`
}

// NewHandler builds the status routes behind request-id, logging and recovery
// middleware. The /settings routes are rate limited; /healthz is not, so liveness
// probes keep answering while settings are polled heavily.
func NewHandler(resolver *settings.Resolver, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	settingsMux := http.NewServeMux()

	settingsMux.HandleFunc("GET /settings", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, logger, http.StatusOK, resolver.Summary())
	})

	settingsMux.HandleFunc("GET /settings/api-keys", func(w http.ResponseWriter, _ *http.Request) {
		err := resolver.ValidateAPIKeys()
		if err == nil {
			writeJSON(w, logger, http.StatusOK, APIKeysReport{Ready: true})

			return
		}

		report := APIKeysReport{Ready: false}

		var keysErr *settings.MissingAPIKeysError
		if errors.As(err, &keysErr) {
			report.Missing = keysErr.Names
		}

		writeJSON(w, logger, http.StatusServiceUnavailable, report)
	})

	limited := middleware.RateLimit(DefaultRequestsPerSecond, DefaultBurst)(settingsMux)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/settings", limited)
	mux.Handle("/settings/", limited)

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recovery(logger),
	)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}
