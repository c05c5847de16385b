package knuthbendix

import "bytes"

// Confluent reports whether the active rules form a confluent rewriting
// system. The answer is memoized until the rule set next changes; while the
// pending stack is non-empty the active rules do not yet define the system,
// so the answer is false and nothing is memoized.
//
// The check is cooperatively cancellable at every loop level. If it is
// cancelled mid-check the result stays unknown (ConfluentKnown reports
// false), never falsely negative.
func (kb *KnuthBendix) Confluent() bool {
	return kb.isConfluent()
}

// ConfluentKnown reports whether confluence of the current rule set has
// been decided either way.
func (kb *KnuthBendix) ConfluentKnown() bool {
	return kb.confluenceKnown
}

func (kb *KnuthBendix) isConfluent() bool {
	if len(kb.stack) > 0 {
		return false
	}
	if kb.confluenceKnown {
		return kb.confluent
	}
	if kb.stopRequested() {
		return false
	}
	confluent := true
scan:
	for i1 := 0; i1 < len(kb.activeRules) && !kb.stopRequested(); i1++ {
		rule1 := kb.activeRules[i1]
		// Measurably faster in reverse.
		for i2 := len(kb.activeRules) - 1; i2 >= 0 && !kb.stopRequested(); i2-- {
			if !kb.resolveCriticalPairs(rule1, kb.activeRules[i2]) {
				confluent = false
				break scan
			}
		}
	}
	if kb.stopRequested() {
		return false // cancelled mid-check: confluence stays unknown
	}
	kb.confluent = confluent
	kb.confluenceKnown = true
	return confluent
}

// resolveCriticalPairs reports whether every critical pair of the ordered
// rule pair (rule1, rule2) resolves to a common word. For each suffix split
// rule1.lhs = A·B, the maximal common prefix of B and rule2.lhs is taken;
// whenever either side is fully consumed a critical pair forms, whose two
// resolutions A·S·D (rewriting with rule2 first) and Q·E (rewriting with
// rule1 first) are fully reduced and compared. The first mismatch
// short-circuits.
func (kb *KnuthBendix) resolveCriticalPairs(rule1, rule2 *rule) bool {
	for i := len(rule1.lhs) - 1; i >= 0 && !kb.stopRequested(); i-- {
		b := rule1.lhs[i:]
		k := commonPrefixLen(b, rule2.lhs)
		if k != len(b) && k != len(rule2.lhs) {
			continue
		}
		kb.word1 = append(kb.word1[:0], rule1.lhs[:i]...) // A
		kb.word1 = append(kb.word1, rule2.rhs...)         // S
		kb.word1 = append(kb.word1, b[k:]...)             // D
		kb.word2 = append(kb.word2[:0], rule1.rhs...)     // Q
		kb.word2 = append(kb.word2, rule2.lhs[k:]...)     // E
		if !bytes.Equal(kb.word1, kb.word2) {
			kb.word1 = kb.rewrite(kb.word1)
			kb.word2 = kb.rewrite(kb.word2)
			if !bytes.Equal(kb.word1, kb.word2) {
				return false
			}
		}
	}
	return true
}

func commonPrefixLen(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
