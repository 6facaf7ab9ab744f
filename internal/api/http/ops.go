package http

import (
	"context"
	"net/http"
	"time"

	"github.com/rutsatz/algamoney-api/pkg/authsdk"
	"github.com/rutsatz/algamoney-api/pkg/httpx"

	_ "github.com/rutsatz/algamoney-api/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger is anything /readyz can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewOpsMux builds the operational listener: probes, metrics and API docs.
// It is served on its own port and carries no auth.
func NewOpsMux(startTime time.Time, version string, db, replayStore Pinger, metrics *Metrics) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /livez", LivezHandler(startTime, version))
	mux.Handle("GET /readyz", ReadyzHandler(startTime, version, db, replayStore))
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}
	mux.Handle("/swagger/", httpSwagger.Handler())
	return mux
}

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Always 200 while the process is running.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get]
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the database and, when it is external, the replay store.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Router			/readyz [get]
func ReadyzHandler(startTime time.Time, version string, db, replayStore Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{Database: "ok", ReplayStore: "ok"}
		status := "ok"
		code := http.StatusOK

		if err := db.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
		}

		if replayStore != nil {
			if err := replayStore.Ping(r.Context()); err != nil {
				checks.ReplayStore = "error: " + err.Error()
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}

		httpx.WriteJSON(w, code, authsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
