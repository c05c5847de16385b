package knuthbendix

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Run drives the completion loop until the system is confluent, the context
// is cancelled, or the active rule cap is reached. It returns nil on
// success, ctx.Err() on cancellation and ErrRuleCapReached on the cap; in
// the latter two cases every already-committed rule stays valid and active
// and the run resumes from where it stopped when Run is called again.
// Once the system is confluent Run is idempotent.
//
// Completion is not guaranteed to terminate for arbitrary presentations;
// bound the run with a context, RunFor, MaxRules or MaxOverlap when the
// input is not known to complete.
func (kb *KnuthBendix) Run(ctx context.Context) error {
	return kb.run(ctx, nil)
}

// RunFor runs the completion loop for at most d.
func (kb *KnuthBendix) RunFor(d time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return kb.run(ctx, nil)
}

// RunUntil runs the completion loop until pred first holds at a checkpoint.
// pred is polled at loop-iteration granularity, never in the middle of a
// single rewrite or overlap extraction.
func (kb *KnuthBendix) RunUntil(pred func() bool) error {
	return kb.run(context.Background(), pred)
}

// RunByOverlapLength runs completion repeatedly with MaxOverlap growing from
// 1, which processes small overlaps first. Settings are restored afterwards.
func (kb *KnuthBendix) RunByOverlapLength(ctx context.Context) error {
	savedOverlap := kb.settings.maxOverlap
	savedInterval := kb.settings.checkConfluenceInterval
	defer func() {
		kb.settings.maxOverlap = savedOverlap
		kb.settings.checkConfluenceInterval = savedInterval
	}()
	kb.settings.maxOverlap = 1
	kb.settings.checkConfluenceInterval = Unbounded
	for !kb.Confluent() {
		if err := kb.run(ctx, nil); err != nil && !errors.Is(err, ErrRuleCapReached) {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		kb.settings.maxOverlap++
	}
	return nil
}

// stopRequested is the cooperative cancellation checkpoint, polled at
// loop-iteration granularity by the drain, overlap and confluence loops.
// Outside a run it is always false.
func (kb *KnuthBendix) stopRequested() bool {
	return kb.stop != nil && kb.stop()
}

func (kb *KnuthBendix) run(ctx context.Context, pred func() bool) error {
	kb.stop = func() bool {
		return ctx.Err() != nil || (pred != nil && pred())
	}
	defer func() { kb.stop = nil }()

	start := time.Now()
	if len(kb.stack) == 0 && kb.isConfluent() && !kb.stopRequested() {
		kb.logger.Debug("system is already confluent")
		return nil
	}
	if uint64(len(kb.activeRules)) >= kb.settings.maxRules {
		kb.logger.Debug("rule cap already reached",
			slog.Int("active_rules", len(kb.activeRules)))
		return ErrRuleCapReached
	}

	// Externally added relations wait on the pending stack until a run.
	kb.drainStack()

	// Reseed: copy every active rule through the stack, so that a system
	// seeded with rules that are not mutually reduced gets reduced before
	// overlap generation begins.
	for kb.cursor1 = 0; kb.cursor1 < len(kb.activeRules) && !kb.stopRequested() &&
		uint64(len(kb.activeRules)) < kb.settings.maxRules; kb.cursor1++ {
		kb.pushStack(kb.copyRule(kb.activeRules[kb.cursor1]))
	}

	// Overlap every pair of active rules. cursor1 walks forward; for each
	// rule it reaches, cursor2 walks back over the earlier rules so the
	// pair is processed in both orders. Draining relocates both cursors
	// when it removes rules, so the schedule survives mutation.
	kb.cursor1 = 0
	var resolved uint64
	for kb.cursor1 < len(kb.activeRules) &&
		uint64(len(kb.activeRules)) < kb.settings.maxRules && !kb.stopRequested() {
		rule1 := kb.activeRules[kb.cursor1]
		kb.cursor2 = kb.cursor1
		kb.cursor1++
		kb.overlap(rule1, rule1)
		for kb.cursor2 > 0 && rule1.active {
			kb.cursor2--
			rule2 := kb.activeRules[kb.cursor2]
			kb.overlap(rule1, rule2)
			resolved++
			if rule1.active && rule2.active {
				resolved++
				kb.overlap(rule2, rule1)
			}
		}
		if resolved > kb.settings.checkConfluenceInterval {
			if kb.isConfluent() {
				break
			}
			resolved = 0
		}
		if kb.cursor1 == len(kb.activeRules) {
			kb.drainStack()
		}
	}

	// With no caps and no cancellation the loop only exits once no overlap
	// produces a surviving rule, which makes the system confluent without a
	// further check, provided the pending stack really is empty.
	if len(kb.stack) == 0 && kb.settings.maxOverlap == Unbounded &&
		kb.settings.maxRules == Unbounded && !kb.stopRequested() {
		kb.confluent = true
		kb.confluenceKnown = true
		kb.inactive = nil
	}

	kb.logger.Info("stopping",
		slog.Int("active_rules", len(kb.activeRules)),
		slog.Int("inactive_rules", len(kb.inactive)),
		slog.Uint64("rules_defined", kb.totalRules),
		slog.Duration("elapsed", time.Since(start)))

	if err := ctx.Err(); err != nil {
		return err
	}
	if uint64(len(kb.activeRules)) >= kb.settings.maxRules &&
		!(kb.confluenceKnown && kb.confluent) {
		return ErrRuleCapReached
	}
	return nil
}
