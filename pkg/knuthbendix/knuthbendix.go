// Package knuthbendix implements the Knuth-Bendix completion procedure for
// finitely presented semigroups and monoids. Given an alphabet and a set of
// relation word pairs, completion searches for a confluent, terminating
// string-rewriting system equivalent to the presentation. When it succeeds
// the rule set decides the word problem: two words are equal under the
// relations exactly when they reduce to the same normal form.
//
// The engine follows Sims, "Computation with finitely presented groups":
// REWRITE_FROM_LEFT for reduction, OVERLAP_2 for critical-pair generation
// and TEST_2 for maintaining a reduced rule set, with shortlex as the
// reduction order.
//
// An engine instance is single-threaded: it must not be used from more than
// one goroutine at a time. Long-running operations take a context and stop
// cooperatively at loop-iteration checkpoints, keeping all committed rules
// valid so a stopped run can simply be resumed. Copy yields a fully
// decoupled instance that is safe to run on another goroutine, which is how
// Race executes several completion strategies in parallel.
//
// Typical usage:
//
//	p, _ := knuthbendix.NewPresentation("ab")
//	kb := knuthbendix.New(p)
//	kb.AddRule("aa", "a")
//	kb.AddRule("ab", "a")
//	kb.AddRule("ba", "a")
//	if err := kb.Run(ctx); err != nil {
//		// cancelled or rule cap reached; resumable
//	}
//	nf, _ := kb.NormalForm(ctx, "aab") // "a"
package knuthbendix

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"log/slog"
	"math"
	"slices"
)

// KnuthBendix is a Knuth-Bendix completion engine over one presentation.
// The zero value is not usable; construct with New.
type KnuthBendix struct {
	p        *Presentation
	settings Settings
	logger   *slog.Logger

	activeRules []*rule   // activation order; iterated by the two cursors
	index       ruleTrie  // suffix lookup over active left sides
	stack       []*rule   // pending rules, LIFO
	inactive    []*rule   // pool of deactivated rule objects for reuse

	cursor1, cursor2 int
	totalRules       uint64
	minLHSLen        int

	confluent       bool
	confluenceKnown bool

	relations [][2]string // as added, for the obvious-infiniteness check
	gilman    *WordGraph  // built once, cached

	stop     func() bool // cancellation checkpoint; nil outside runs
	draining bool

	word1, word2 []byte // scratch for critical-pair resolutions
}

// New creates an engine for the given presentation with default settings.
func New(p *Presentation) *KnuthBendix {
	return &KnuthBendix{
		p:         p,
		settings:  defaultSettings(),
		logger:    slog.New(slog.DiscardHandler),
		minLHSLen: math.MaxInt,
	}
}

// SetLogger installs a structured logger for progress reporting. A nil
// logger restores the default of discarding everything.
func (kb *KnuthBendix) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	kb.logger = l
}

// Presentation returns the presentation the engine was built from.
func (kb *KnuthBendix) Presentation() *Presentation {
	return kb.p
}

// AddRule records the relation u = v. Both words are validated against the
// alphabet before any state changes; equal words are a no-op. The rule is
// only enqueued here; it is reduced and activated by the next run.
func (kb *KnuthBendix) AddRule(u, v string) error {
	uu, err := kb.p.toInternal(u)
	if err != nil {
		return err
	}
	vv, err := kb.p.toInternal(v)
	if err != nil {
		return err
	}
	if u == v {
		return nil
	}
	kb.relations = append(kb.relations, [2]string{u, v})
	kb.stack = append(kb.stack, kb.newRuleFromSides(uu, vv))
	kb.confluenceKnown = false
	kb.gilman = nil
	return nil
}

// NormalForm runs completion and returns the normal form of w. If the run
// stops at the rule cap the word is still reduced with respect to the rules
// found so far, which is sound but need not be canonical.
func (kb *KnuthBendix) NormalForm(ctx context.Context, w string) (string, error) {
	ww, err := kb.p.toInternal(w)
	if err != nil {
		return "", err
	}
	if err := kb.Run(ctx); err != nil && !errors.Is(err, ErrRuleCapReached) {
		return "", err
	}
	return kb.p.toExternal(kb.rewrite(ww)), nil
}

// EqualTo reports whether u and v represent the same element. Textually
// equal words, and words equal after a single reduction pass, are decided
// without running; otherwise completion is run and the reduced words are
// compared. Within completion limits the answer agrees with comparing
// normal forms.
func (kb *KnuthBendix) EqualTo(ctx context.Context, u, v string) (bool, error) {
	uu, err := kb.p.toInternal(u)
	if err != nil {
		return false, err
	}
	vv, err := kb.p.toInternal(v)
	if err != nil {
		return false, err
	}
	if u == v {
		return true, nil
	}
	uu = kb.rewrite(uu)
	vv = kb.rewrite(vv)
	if bytes.Equal(uu, vv) {
		return true, nil
	}
	if err := kb.Run(ctx); err != nil && !errors.Is(err, ErrRuleCapReached) {
		return false, err
	}
	return bytes.Equal(kb.rewrite(uu), kb.rewrite(vv)), nil
}

// ActiveRules returns the active rules as (lhs, rhs) word pairs in
// activation order. The sequence is lazy and restartable; the engine must
// not be mutated while it is being consumed.
func (kb *KnuthBendix) ActiveRules() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, r := range kb.activeRules {
			if !yield(kb.p.toExternal(r.lhs), kb.p.toExternal(r.rhs)) {
				return
			}
		}
	}
}

// NumberOfActiveRules returns the current active rule count.
func (kb *KnuthBendix) NumberOfActiveRules() int {
	return len(kb.activeRules)
}

// TotalRulesDefined returns how many rules have ever been created,
// including candidates that reduced to triviality.
func (kb *KnuthBendix) TotalRulesDefined() uint64 {
	return kb.totalRules
}

// Copy returns an independent deep copy of the engine: same presentation,
// settings, active rules and pending stack, sharing no mutable state with
// the original. The copy is safe to run on another goroutine. The inactive
// pool is not copied.
func (kb *KnuthBendix) Copy() *KnuthBendix {
	p := *kb.p
	c := New(&p)
	c.settings = kb.settings
	c.logger = kb.logger
	c.totalRules = kb.totalRules
	c.confluent = kb.confluent
	c.confluenceKnown = kb.confluenceKnown
	c.relations = slices.Clone(kb.relations)
	c.gilman = kb.gilman // immutable once built
	for _, r := range kb.activeRules {
		rc := &rule{
			lhs:    slices.Clone(r.lhs),
			rhs:    slices.Clone(r.rhs),
			id:     r.id,
			active: true,
		}
		c.activeRules = append(c.activeRules, rc)
		c.index.insert(rc)
		if len(rc.lhs) < c.minLHSLen {
			c.minLHSLen = len(rc.lhs)
		}
	}
	for _, r := range kb.stack {
		c.stack = append(c.stack, &rule{
			lhs: slices.Clone(r.lhs),
			rhs: slices.Clone(r.rhs),
			id:  r.id,
		})
	}
	return c
}
