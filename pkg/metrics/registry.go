// Package metrics owns the process-wide Prometheus registry and the
// metrics interfaces consumed by the rest of the control plane.
//
// Collection is opt-in: components accept a metrics interface and treat a
// nil value as "disabled" with zero overhead. Call InitRegistry once at
// startup to enable collection; constructors called before that return nil.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registryMu sync.RWMutex
	registry   *prometheus.Registry
)

// InitRegistry creates the process registry and registers the standard Go
// runtime and process collectors. Calling it more than once is a no-op.
func InitRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()

	if registry != nil {
		return
	}

	registry = prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return registry != nil
}

// GetRegistry returns the process registry, or nil when metrics are
// disabled.
func GetRegistry() *prometheus.Registry {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return registry
}

// Handler returns the HTTP handler serving the registry in the Prometheus
// exposition format. Returns http.NotFoundHandler when metrics are
// disabled so it can be mounted unconditionally.
func Handler() http.Handler {
	reg := GetRegistry()
	if reg == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// resetRegistry discards the process registry. Tests only.
func resetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry = nil
}
