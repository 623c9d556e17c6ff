package telemetry

// Config selects the trace exporter target and sampling behavior.
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string

	// Endpoint is the OTLP gRPC target, host:port without a scheme.
	Endpoint string

	// Insecure disables TLS on the exporter connection.
	Insecure bool

	// SampleRate is the fraction of traces to keep, clamped to [0, 1].
	SampleRate float64
}
