package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys. HTTP keys follow OpenTelemetry semantic conventions;
// control-plane keys carry the "dms." prefix.
const (
	AttrClientAddr = "client.address"
	AttrHTTPMethod = "http.method"
	AttrHTTPRoute  = "http.route"
	AttrHTTPStatus = "http.status_code"

	AttrRequestID       = "dms.request_id"
	AttrWorkerID        = "dms.worker_id"
	AttrEndpoint        = "dms.endpoint"
	AttrPolicy          = "dms.policy"
	AttrSourcePath      = "dms.source_path"
	AttrDestinationPath = "dms.destination_path"
	AttrFiles           = "dms.files"
	AttrSuccess         = "dms.success"
)

// Span names, one per orchestrator operation plus the HTTP root span.
const (
	SpanHTTPRequest = "http.request"

	SpanSubmit         = "master.submit_request"
	SpanHeartbeat      = "master.heartbeat"
	SpanNextAssignment = "master.next_assignment"
	SpanReportResult   = "master.report_result"
	SpanReassign       = "master.reassign_request"
	SpanForget         = "master.forget_request"
	SpanSchedulePass   = "master.schedule_pass"
)

func ClientAddr(addr string) attribute.KeyValue {
	return attribute.String(AttrClientAddr, addr)
}

func HTTPMethod(method string) attribute.KeyValue {
	return attribute.String(AttrHTTPMethod, method)
}

func HTTPRoute(route string) attribute.KeyValue {
	return attribute.String(AttrHTTPRoute, route)
}

func HTTPStatus(code int) attribute.KeyValue {
	return attribute.Int(AttrHTTPStatus, code)
}

func RequestID(id string) attribute.KeyValue {
	return attribute.String(AttrRequestID, id)
}

func WorkerID(id string) attribute.KeyValue {
	return attribute.String(AttrWorkerID, id)
}

// Endpoint records an endpoint key, worker id and data-plane address
// joined by "::".
func Endpoint(key string) attribute.KeyValue {
	return attribute.String(AttrEndpoint, key)
}

func Policy(name string) attribute.KeyValue {
	return attribute.String(AttrPolicy, name)
}

func SourcePath(path string) attribute.KeyValue {
	return attribute.String(AttrSourcePath, path)
}

func DestinationPath(path string) attribute.KeyValue {
	return attribute.String(AttrDestinationPath, path)
}

func Files(n int) attribute.KeyValue {
	return attribute.Int(AttrFiles, n)
}

func Success(ok bool) attribute.KeyValue {
	return attribute.Bool(AttrSuccess, ok)
}

// StartMasterSpan opens a span for one orchestrator operation.
func StartMasterSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, name, trace.WithAttributes(attrs...))
}

// StartHTTPSpan opens the root span for an incoming HTTP request.
func StartHTTPSpan(ctx context.Context, method, route string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	base := append([]attribute.KeyValue{HTTPMethod(method), HTTPRoute(route)}, attrs...)
	return StartSpan(ctx, SpanHTTPRequest, trace.WithAttributes(base...))
}
