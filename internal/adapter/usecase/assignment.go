package usecase

import (
	"math/rand"
	"sync"

	"mesa-campaigns/internal/core/domain"
)

// MaxVariants is the number of labels available for an experiment.
const MaxVariants = 3

// AssignmentEngine splits an audience into labeled experiment groups. The
// random source is injected so runs can be replayed with a fixed seed.
type AssignmentEngine struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewAssignmentEngine creates an engine drawing from rnd.
func NewAssignmentEngine(rnd *rand.Rand) *AssignmentEngine {
	return &AssignmentEngine{rnd: rnd}
}

// Assign shuffles a copy of recipients once and cuts it into n contiguous
// groups of len/n recipients; the last group takes the remainder. n is
// clamped to [1, MaxVariants]. Every one of the n labels is present in the
// result, even when its group is empty.
func (e *AssignmentEngine) Assign(recipients []domain.Recipient, n int) map[domain.Label][]domain.Recipient {
	n = ClampVariants(n)

	shuffled := make([]domain.Recipient, len(recipients))
	copy(shuffled, recipients)

	e.mu.Lock()
	e.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	e.mu.Unlock()

	size := len(shuffled) / n
	groups := make(map[domain.Label][]domain.Recipient, n)
	for i, label := range domain.Labels[:n] {
		start := i * size
		end := start + size
		if i == n-1 {
			end = len(shuffled)
		}
		group := make([]domain.Recipient, end-start)
		copy(group, shuffled[start:end])
		groups[label] = group
	}
	return groups
}

// ClampVariants bounds a requested variant count to the supported range.
func ClampVariants(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxVariants:
		return MaxVariants
	default:
		return n
	}
}
