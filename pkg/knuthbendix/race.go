package knuthbendix

import (
	"context"

	"github.com/gitrdm/gorewrite/internal/parallel"
)

// Race runs each candidate engine on its own goroutine and returns the
// first one whose run reaches a confluent system, cancelling the rest.
// Candidates are typically copies of one engine with different overlap
// policies or caps:
//
//	winner, err := knuthbendix.Race(ctx,
//		kb.Copy().OverlapPolicy(knuthbendix.ABC),
//		kb.Copy().OverlapPolicy(knuthbendix.MaxABBC),
//	)
//
// Each candidate must be owned exclusively by the race: a single engine
// must never be shared between goroutines (use Copy).
func Race(ctx context.Context, candidates ...*KnuthBendix) (*KnuthBendix, error) {
	tasks := make([]parallel.Task, len(candidates))
	for i, kb := range candidates {
		tasks[i] = func(ctx context.Context) error {
			if err := kb.Run(ctx); err != nil {
				return err
			}
			if !kb.Confluent() {
				return ErrNotConfluent
			}
			return nil
		}
	}
	idx, err := parallel.NewPool(len(candidates)).FirstSuccess(ctx, tasks)
	if err != nil {
		return nil, err
	}
	return candidates[idx], nil
}
