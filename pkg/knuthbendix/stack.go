package knuthbendix

import (
	"bytes"
	"log/slog"
)

// pushStack queues a candidate rule for reduction and, unless a drain is
// already in progress, drains the pending stack to a fixed point. Trivial
// candidates go straight back to the pool.
func (kb *KnuthBendix) pushStack(r *rule) {
	if bytes.Equal(r.lhs, r.rhs) {
		kb.inactive = append(kb.inactive, r)
		return
	}
	kb.stack = append(kb.stack, r)
	if !kb.draining {
		kb.drainStack()
	}
}

// drainStack processes the pending stack: TEST_2 from Sims p76. Each popped
// rule is fully rewritten and reoriented; trivial results are pooled, and
// otherwise every active rule whose lhs contains the new lhs is deactivated
// and re-pushed, every active rule whose rhs contains the new lhs has that
// rhs rewritten in place, and only then is the new rule activated, so the
// index never sees two rules with the same lhs.
//
// This is the single driving loop: re-pushes from inside it only append, so
// the call depth stays constant no matter how deep the cascade. It stops at
// item granularity on cancellation or on the active rule cap, leaving the
// remaining pending rules for a resumed run.
func (kb *KnuthBendix) drainStack() {
	kb.draining = true
	defer func() { kb.draining = false }()

	for len(kb.stack) > 0 && !kb.stopRequested() &&
		uint64(len(kb.activeRules)) < kb.settings.maxRules {
		r := kb.stack[len(kb.stack)-1]
		kb.stack = kb.stack[:len(kb.stack)-1]
		kb.rewriteRule(r)
		if bytes.Equal(r.lhs, r.rhs) {
			kb.inactive = append(kb.inactive, r)
			continue
		}
		for j := 0; j < len(kb.activeRules); {
			r2 := kb.activeRules[j]
			if bytes.Contains(r2.lhs, r.lhs) {
				kb.removeRuleAt(j)
				kb.stack = append(kb.stack, r2)
				continue // j now names the next survivor
			}
			if bytes.Contains(r2.rhs, r.lhs) {
				r2.rhs = kb.rewrite(r2.rhs)
			}
			j++
		}
		kb.addRule(r)
		if kb.totalRules%4096 == 0 {
			kb.logger.Debug("completion progress",
				slog.Int("active_rules", len(kb.activeRules)),
				slog.Int("inactive_rules", len(kb.inactive)),
				slog.Uint64("rules_defined", kb.totalRules))
		}
	}
}

// addRule activates r and inserts it into the active list and the index.
func (kb *KnuthBendix) addRule(r *rule) {
	r.active = true
	kb.index.insert(r)
	kb.activeRules = append(kb.activeRules, r)
	kb.confluenceKnown = false
	if len(r.lhs) < kb.minLHSLen {
		kb.minLHSLen = len(r.lhs)
	}
}

// removeRuleAt deactivates the rule at index j, erases its index entry and
// relocates the overlap cursors: a cursor past j moves back one place, and a
// cursor at j now names the next surviving rule.
func (kb *KnuthBendix) removeRuleAt(j int) {
	r := kb.activeRules[j]
	r.active = false
	kb.index.erase(r)
	kb.activeRules = append(kb.activeRules[:j], kb.activeRules[j+1:]...)
	if j < kb.cursor1 {
		kb.cursor1--
	}
	if j < kb.cursor2 {
		kb.cursor2--
	}
}
