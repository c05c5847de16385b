package knuthbendix

import (
	"bytes"
	"fmt"
)

// OverlapPolicy selects the size measure compared against MaxOverlap when
// deciding whether an overlap between two rules is worth processing. With
// rules u = AB -> Q1 and v = BC -> Q2 the measures are:
//
//	ABC      |A| + |BC|
//	ABBC     |AB| + |BC|
//	MaxABBC  max(|AB|, |BC|)
//
// The policy affects performance only, never the completed system.
type OverlapPolicy int

const (
	ABC OverlapPolicy = iota
	ABBC
	MaxABBC
)

// String returns the policy name as spelled by ParseOverlapPolicy.
func (p OverlapPolicy) String() string {
	switch p {
	case ABBC:
		return "ab_bc"
	case MaxABBC:
		return "max_ab_bc"
	default:
		return "abc"
	}
}

// ParseOverlapPolicy converts a policy name ("abc", "ab_bc", "max_ab_bc")
// into an OverlapPolicy.
func ParseOverlapPolicy(s string) (OverlapPolicy, error) {
	switch s {
	case "abc":
		return ABC, nil
	case "ab_bc":
		return ABBC, nil
	case "max_ab_bc":
		return MaxABBC, nil
	}
	return ABC, fmt.Errorf("unknown overlap policy %q", s)
}

// measure evaluates the policy for the overlap of u and v splitting u.lhs
// at index i, so A = u.lhs[:i] and B = u.lhs[i:].
func (p OverlapPolicy) measure(u, v *rule, i int) uint64 {
	switch p {
	case ABBC:
		return uint64(len(u.lhs) + len(v.lhs))
	case MaxABBC:
		return uint64(max(len(u.lhs), len(v.lhs)))
	default:
		return uint64(i + len(v.lhs))
	}
}

// overlap enumerates the critical-pair overlaps of two active rules and
// pushes a candidate rule for each one. This is OVERLAP_2 from Sims p77:
// every proper suffix B of u.lhs, scanned from the end and shorter than both
// left sides, that is also a prefix of v.lhs gives u = AB -> Q1 and
// v = BC -> Q2, from which the candidate A·Q2 -> Q1·C is derived.
//
// Pushing a candidate drains the pending stack, which can deactivate or
// rewrite u or v mid-scan, so their activity and identity are re-checked at
// every step and the scan stops early if either changed. Overlaps missed
// that way are not lost: a rewritten rule is re-activated at the end of the
// active list and scanned again against every other rule.
func (kb *KnuthBendix) overlap(u, v *rule) {
	limit := len(u.lhs) - min(len(u.lhs), len(v.lhs))
	uID, vID := u.id, v.id
	for i := len(u.lhs) - 1; i > limit; i-- {
		if !u.active || u.id != uID || !v.active || v.id != vID || kb.stopRequested() {
			return
		}
		if kb.settings.maxOverlap != Unbounded &&
			kb.settings.overlapPolicy.measure(u, v, i) > kb.settings.maxOverlap {
			return
		}
		if bytes.HasPrefix(v.lhs, u.lhs[i:]) {
			r := kb.newRule()
			r.lhs = append(append(r.lhs, u.lhs[:i]...), v.rhs...)
			r.rhs = append(append(r.rhs, u.rhs...), v.lhs[len(u.lhs)-i:]...)
			// The candidate is oriented during rewriting when the stack
			// is drained.
			kb.pushStack(r)
		}
	}
}
