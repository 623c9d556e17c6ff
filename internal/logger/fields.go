package logger

import "log/slog"

// Shared field keys. Log statements use these so aggregated logs stay
// queryable across the master, the API surface, and the CLI.
const (
	KeyTraceID = "trace_id"

	KeyRequestID = "request_id"
	KeyWorkerID  = "worker_id"
	KeyEndpoint  = "endpoint" // worker_id::address
	KeyState     = "state"
	KeyPolicy    = "policy"

	KeySourcePath      = "source_path"
	KeyDestinationPath = "destination_path"

	KeyMethod   = "method"
	KeyPath     = "path"
	KeyStatus   = "status"
	KeyClientIP = "client_ip"

	KeyDurationMs = "duration_ms"
	KeyError      = "error"
)

// Typed attr constructors for the shared keys.

func RequestID(id string) slog.Attr { return slog.String(KeyRequestID, id) }

func WorkerID(id string) slog.Attr { return slog.String(KeyWorkerID, id) }

func Endpoint(key string) slog.Attr { return slog.String(KeyEndpoint, key) }

func State(state string) slog.Attr { return slog.String(KeyState, state) }

func Policy(name string) slog.Attr { return slog.String(KeyPolicy, name) }

func SourcePath(p string) slog.Attr { return slog.String(KeySourcePath, p) }

func DestinationPath(p string) slog.Attr { return slog.String(KeyDestinationPath, p) }

func Method(m string) slog.Attr { return slog.String(KeyMethod, m) }

func Path(p string) slog.Attr { return slog.String(KeyPath, p) }

func Status(code int) slog.Attr { return slog.Int(KeyStatus, code) }

func ClientIP(addr string) slog.Attr { return slog.String(KeyClientIP, addr) }

func DurationMs(ms float64) slog.Attr { return slog.Float64(KeyDurationMs, ms) }

// Err is safe to call with nil; the empty attr is skipped by the text
// handler and rendered as an empty group by the JSON handler.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
