package knuthbendix

import "math"

// Unbounded disables a limit setting. It is also the value returned by Size
// for infinite structures, under the name Infinite.
const Unbounded = uint64(math.MaxUint64)

// Settings holds the tunables of the completion loop. Zero instances are
// not meaningful; engines start from defaultSettings.
type Settings struct {
	checkConfluenceInterval uint64
	maxOverlap              uint64
	maxRules                uint64
	overlapPolicy           OverlapPolicy
}

func defaultSettings() Settings {
	return Settings{
		checkConfluenceInterval: 4096,
		maxOverlap:              Unbounded,
		maxRules:                Unbounded,
		overlapPolicy:           ABC,
	}
}

// CheckConfluenceInterval sets how many overlap resolutions pass between
// periodic confluence checks during a run. Returns the engine for chaining.
func (kb *KnuthBendix) CheckConfluenceInterval(n uint64) *KnuthBendix {
	kb.settings.checkConfluenceInterval = n
	return kb
}

// MaxOverlap caps the overlap measure (see OverlapPolicy) above which
// overlaps are not processed. Unbounded disables the cap.
func (kb *KnuthBendix) MaxOverlap(n uint64) *KnuthBendix {
	kb.settings.maxOverlap = n
	return kb
}

// MaxRules caps the number of active rules; a run that reaches the cap
// stops with ErrRuleCapReached and can be resumed after raising it.
func (kb *KnuthBendix) MaxRules(n uint64) *KnuthBendix {
	kb.settings.maxRules = n
	return kb
}

// OverlapPolicy selects the overlap size measure.
func (kb *KnuthBendix) OverlapPolicy(p OverlapPolicy) *KnuthBendix {
	kb.settings.overlapPolicy = p
	return kb
}
