// Package scheduler provides the pluggable worker-endpoint selection
// policies of the master.
//
// A policy receives the candidate endpoints that survived eligibility and
// busy-set filtering and returns the ordered subset to assign. Policies are
// stateful and owned exclusively by one orchestrator instance; they are
// created through the named registry so deployments can select a strategy
// by configuration.
package scheduler

import (
	"cmp"
	"slices"

	"github.com/dmsproject/dms/pkg/model"
)

// Endpoint is one selectable worker data-plane address.
type Endpoint struct {
	WorkerID string
	Address  string
}

// Key returns the globally unique endpoint key.
func (e Endpoint) Key() string {
	return model.EndpointKey(e.WorkerID, e.Address)
}

// Policy selects worker endpoints for pending work.
//
// SelectWorkers returns at most required endpoints, in the order they
// should receive assignments. Implementations may keep state between calls
// but must not retain the candidates slice.
type Policy interface {
	Name() string
	SelectWorkers(candidates []Endpoint, required int) []Endpoint
}

// sortedCandidates returns the candidates ordered by worker id, ties broken
// by address. Every policy works on this deterministic sequence so results
// do not depend on registry iteration order.
func sortedCandidates(candidates []Endpoint) []Endpoint {
	sorted := make([]Endpoint, len(candidates))
	copy(sorted, candidates)
	slices.SortFunc(sorted, func(a, b Endpoint) int {
		if c := cmp.Compare(a.WorkerID, b.WorkerID); c != 0 {
			return c
		}
		return cmp.Compare(a.Address, b.Address)
	})
	return sorted
}
