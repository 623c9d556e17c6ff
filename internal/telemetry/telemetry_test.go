package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitDisabled(t *testing.T) {
	ctx := context.Background()

	shutdown, err := Init(ctx, Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(ctx))

	assert.False(t, IsEnabled())
}

func TestTracerWithoutInit(t *testing.T) {
	tracer = nil
	enabled = false

	require.NotNil(t, Tracer())

	ctx, span := StartSpan(context.Background(), "test.operation")
	require.NotNil(t, ctx)
	require.NotNil(t, span)
	span.End()
}

func TestSamplerFor(t *testing.T) {
	cases := map[float64]sdktrace.Sampler{
		1.0:  sdktrace.AlwaysSample(),
		1.5:  sdktrace.AlwaysSample(),
		0.0:  sdktrace.NeverSample(),
		-0.5: sdktrace.NeverSample(),
		0.25: sdktrace.TraceIDRatioBased(0.25),
	}
	for rate, want := range cases {
		got := samplerFor(rate)
		assert.Equal(t, want.Description(), got.Description(), "rate %v", rate)
	}
}

func TestSpanHelpersWithoutActiveSpan(t *testing.T) {
	ctx := context.Background()

	require.NotPanics(t, func() {
		RecordError(ctx, nil)
		RecordError(ctx, errors.New("store unreachable"))
		SetAttributes(ctx, RequestID("r-1"))
	})

	assert.Equal(t, "", TraceID(ctx))
}

func TestAttributeHelpers(t *testing.T) {
	stringAttrs := map[string]struct {
		key  string
		want string
	}{
		"ClientAddr":      {string(ClientAddr("10.0.0.1:55000").Key), AttrClientAddr},
		"HTTPMethod":      {string(HTTPMethod("POST").Key), AttrHTTPMethod},
		"HTTPRoute":       {string(HTTPRoute("/sync").Key), AttrHTTPRoute},
		"RequestID":       {string(RequestID("r-1").Key), AttrRequestID},
		"WorkerID":        {string(WorkerID("worker-1").Key), AttrWorkerID},
		"Endpoint":        {string(Endpoint("worker-1::192.168.1.10").Key), AttrEndpoint},
		"Policy":          {string(Policy("round_robin").Key), AttrPolicy},
		"SourcePath":      {string(SourcePath("/data/src").Key), AttrSourcePath},
		"DestinationPath": {string(DestinationPath("/backup/dst").Key), AttrDestinationPath},
	}
	for name, c := range stringAttrs {
		assert.Equal(t, c.want, c.key, name)
	}

	assert.Equal(t, "r-1", RequestID("r-1").Value.AsString())
	assert.Equal(t, "worker-1::192.168.1.10", Endpoint("worker-1::192.168.1.10").Value.AsString())
	assert.Equal(t, int64(202), HTTPStatus(202).Value.AsInt64())
	assert.Equal(t, int64(3), Files(3).Value.AsInt64())
	assert.True(t, Success(true).Value.AsBool())
}

func TestStartMasterSpan(t *testing.T) {
	ctx, span := StartMasterSpan(context.Background(), SpanSubmit, RequestID("r-1"))
	require.NotNil(t, ctx)
	require.NotNil(t, span)
	span.End()
}

func TestStartHTTPSpan(t *testing.T) {
	ctx, span := StartHTTPSpan(context.Background(), "POST", "/sync", ClientAddr("10.0.0.1:55000"))
	require.NotNil(t, ctx)
	require.NotNil(t, span)
	span.End()
}
