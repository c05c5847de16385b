package knuthbendix

// rewrite reduces u to its normal form with respect to the active rules,
// in place, and returns the (possibly shorter) slice. This is
// REWRITE_FROM_LEFT from Sims p67.
//
// The buffer is split into a verified-reduced prefix u[:vEnd] and an unread
// suffix u[wBegin:], with vEnd <= wBegin at all times. One symbol is moved
// across the boundary per step; whenever the longest active lhs that is a
// suffix of the prefix exists, that suffix is replaced by the rule's rhs in
// place. The replacement cannot overrun the unread region because active
// rules are shortlex-oriented, so |rhs| <= |lhs|; a non-length-reducing
// order would break this.
//
// Windows shorter than the minimum active lhs length cannot match, so the
// first minLHSLen-1 symbols are admitted without a lookup.
func (kb *KnuthBendix) rewrite(u []byte) []byte {
	if len(u) < kb.minLHSLen {
		return u
	}
	vEnd := kb.minLHSLen - 1
	wBegin := vEnd
	for wBegin < len(u) {
		u[vEnd] = u[wBegin]
		vEnd++
		wBegin++
		if r := kb.index.longestSuffix(u[:vEnd]); r != nil {
			vEnd -= len(r.lhs)
			wBegin -= len(r.rhs)
			copy(u[wBegin:], r.rhs)
		}
		for wBegin < len(u) && vEnd < kb.minLHSLen-1 {
			u[vEnd] = u[wBegin]
			vEnd++
			wBegin++
		}
	}
	return u[:vEnd]
}
