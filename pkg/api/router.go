package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmsproject/dms/internal/logger"
	"github.com/dmsproject/dms/internal/telemetry"
	"github.com/dmsproject/dms/pkg/api/handlers"
	"github.com/dmsproject/dms/pkg/master"
	"github.com/dmsproject/dms/pkg/metadata"
	"github.com/dmsproject/dms/pkg/metrics"
)

// NewRouter creates and configures the chi router with all middleware and
// routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//
// Routes:
//   - POST   /sync                    - submit a sync request
//   - GET    /sync                    - list progress of all requests
//   - GET    /sync/{id}               - progress of one request
//   - GET    /sync/{id}/results       - per-file results of one request
//   - DELETE /sync/{id}               - forget a request
//   - POST   /sync/{id}/reassign      - requeue a request onto one worker
//   - POST   /workers/heartbeat       - worker registration / keepalive
//   - POST   /workers/{id}/assignment - poll for the next assignment
//   - POST   /workers/result          - report a transfer result
//   - GET    /workers                 - registered workers
//   - GET    /workers/{id}/requests   - requests active on one worker
//   - GET    /health                  - health incl. metadata store probe
//   - GET    /metrics                 - Prometheus exposition (when enabled)
func NewRouter(m *master.Master, store metadata.Store) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(traceRequests)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	syncHandler := handlers.NewSyncHandler(m)
	workerHandler := handlers.NewWorkerHandler(m)
	healthHandler := handlers.NewHealthHandler(store)

	r.Route("/sync", func(r chi.Router) {
		r.Post("/", syncHandler.Submit)
		r.Get("/", syncHandler.List)
		r.Get("/{id}", syncHandler.Get)
		r.Delete("/{id}", syncHandler.Delete)
		r.Get("/{id}/results", syncHandler.Results)
		r.Post("/{id}/reassign", syncHandler.Reassign)
	})

	r.Route("/workers", func(r chi.Router) {
		r.Post("/heartbeat", workerHandler.Heartbeat)
		r.Post("/{id}/assignment", workerHandler.NextAssignment)
		r.Post("/result", workerHandler.Result)
		r.Get("/", workerHandler.List)
		r.Get("/{id}/requests", workerHandler.Requests)
	})

	r.Get("/health", healthHandler.Health)

	// Serves 404 until metrics collection is enabled, so it can be mounted
	// unconditionally.
	r.Handle("/metrics", metrics.Handler())

	return r
}

// traceRequests opens the root span for each request and records the
// response status on it. With tracing disabled the spans are no-ops.
func traceRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := telemetry.StartHTTPSpan(r.Context(), r.Method, r.URL.Path,
			telemetry.ClientAddr(r.RemoteAddr))
		defer span.End()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		span.SetAttributes(telemetry.HTTPStatus(ww.Status()))
	})
}

// requestLogger is a custom middleware that logs requests using the internal
// logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("http request started",
			"request_id", requestID,
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.ClientIP(r.RemoteAddr),
		)

		// Wrap response writer to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger.Info("http request completed",
			"request_id", requestID,
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.Status(ww.Status()),
			"bytes", ww.BytesWritten(),
			logger.DurationMs(logger.Duration(start)),
		)
	})
}
