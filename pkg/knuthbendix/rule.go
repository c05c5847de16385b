package knuthbendix

// rule is a rewriting rule lhs -> rhs over internal letters. While a rule is
// active its left side is strictly greater than its right side under
// shortlex, so every application of the rule shortens or lexicographically
// lowers the word it is applied to.
//
// id records creation order and is reassigned whenever a rule object is
// recycled from the inactive pool; together with the active flag it lets the
// overlap scan detect that a rule it holds was deactivated or replaced by a
// pending-stack cascade.
type rule struct {
	lhs, rhs []byte
	id       uint64
	active   bool
}

// shortlexLess reports whether a < b in shortlex order: shorter words first,
// ties broken lexicographically.
func shortlexLess(a, b []byte) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// newRule returns an empty inactive rule with a fresh id, reusing an object
// from the inactive pool when one is available.
func (kb *KnuthBendix) newRule() *rule {
	kb.totalRules++
	if n := len(kb.inactive); n > 0 {
		r := kb.inactive[n-1]
		kb.inactive = kb.inactive[:n-1]
		r.lhs = r.lhs[:0]
		r.rhs = r.rhs[:0]
		r.id = kb.totalRules
		r.active = false
		return r
	}
	return &rule{id: kb.totalRules}
}

// newRuleFromSides builds a rule from two words, placing the shortlex-larger
// word on the left.
func (kb *KnuthBendix) newRuleFromSides(u, v []byte) *rule {
	if shortlexLess(u, v) {
		u, v = v, u
	}
	r := kb.newRule()
	r.lhs = append(r.lhs, u...)
	r.rhs = append(r.rhs, v...)
	return r
}

// copyRule duplicates a rule's sides into a fresh inactive rule without
// reordering them.
func (kb *KnuthBendix) copyRule(src *rule) *rule {
	r := kb.newRule()
	r.lhs = append(r.lhs, src.lhs...)
	r.rhs = append(r.rhs, src.rhs...)
	return r
}

// rewriteRule reduces both sides of an inactive rule with respect to the
// active rules and restores the shortlex orientation.
func (kb *KnuthBendix) rewriteRule(r *rule) {
	r.lhs = kb.rewrite(r.lhs)
	r.rhs = kb.rewrite(r.rhs)
	if shortlexLess(r.lhs, r.rhs) {
		r.lhs, r.rhs = r.rhs, r.lhs
	}
}
