package scheduler

// PolicyFirstFit is the name of the deterministic head-of-list policy.
const PolicyFirstFit = "first_fit"

func init() {
	Register(PolicyFirstFit, func() Policy { return firstFit{} })
}

// firstFit always picks the first candidates of the sorted sequence. No
// rotation, no state: the same candidate set yields the same selection on
// every call, which makes scheduling decisions reproducible in drills and
// tests.
type firstFit struct{}

func (firstFit) Name() string { return PolicyFirstFit }

func (firstFit) SelectWorkers(candidates []Endpoint, required int) []Endpoint {
	if len(candidates) == 0 || required <= 0 {
		return nil
	}

	sorted := sortedCandidates(candidates)
	return sorted[:min(required, len(sorted))]
}
