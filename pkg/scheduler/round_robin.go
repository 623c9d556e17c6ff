package scheduler

// PolicyRoundRobin is the name of the default rotation policy.
const PolicyRoundRobin = "round_robin"

func init() {
	Register(PolicyRoundRobin, func() Policy { return &roundRobin{} })
}

// roundRobin rotates assignments across the candidate set.
//
// Membership changes between calls are common: workers come and go between
// heartbeats, so a positional cursor into a previous slice would be unsafe.
// The policy instead remembers the key of the last endpoint it assigned,
// finds that key in the current sorted sequence, and resumes one past it.
// When the key has churned away the rotation restarts at the beginning.
type roundRobin struct {
	lastKey string
}

func (p *roundRobin) Name() string { return PolicyRoundRobin }

func (p *roundRobin) SelectWorkers(candidates []Endpoint, required int) []Endpoint {
	if len(candidates) == 0 || required <= 0 {
		return nil
	}

	sorted := sortedCandidates(candidates)

	start := 0
	if p.lastKey != "" {
		for i, e := range sorted {
			if e.Key() == p.lastKey {
				start = i + 1
				break
			}
		}
	}

	count := min(required, len(sorted))
	selected := make([]Endpoint, 0, count)
	for i := 0; i < count; i++ {
		selected = append(selected, sorted[(start+i)%len(sorted)])
	}

	p.lastKey = selected[len(selected)-1].Key()
	return selected
}
