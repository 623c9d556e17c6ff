package scheduler

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dmsproject/dms/pkg/model"
)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]func() Policy)
)

// Register makes a policy available under name. It is intended to be called
// from init functions; registering the same name twice panics.
func Register(name string, factory func() Policy) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("scheduler: Register called with nil factory")
	}
	if _, dup := factories[name]; dup {
		panic(fmt.Sprintf("scheduler: policy %q already registered", name))
	}
	factories[name] = factory
}

// New creates a fresh instance of the named policy. Each orchestrator must
// own its own instance since policies carry state.
func New(name string) (Policy, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %s)",
			model.ErrUnknownPolicy, name, strings.Join(Names(), ", "))
	}
	return factory(), nil
}

// Names returns the registered policy names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
