package knuthbendix

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"
)

// newEngine builds an engine over alphabet and enqueues the given relations.
func newEngine(t *testing.T, alphabet string, rels [][2]string) *KnuthBendix {
	t.Helper()
	p, err := NewPresentation(alphabet)
	if err != nil {
		t.Fatalf("NewPresentation(%q) error = %v", alphabet, err)
	}
	kb := New(p)
	for _, rel := range rels {
		if err := kb.AddRule(rel[0], rel[1]); err != nil {
			t.Fatalf("AddRule(%q, %q) error = %v", rel[0], rel[1], err)
		}
	}
	return kb
}

func activePairs(kb *KnuthBendix) [][2]string {
	var out [][2]string
	for lhs, rhs := range kb.ActiveRules() {
		out = append(out, [2]string{lhs, rhs})
	}
	return out
}

func leftZero(t *testing.T) *KnuthBendix {
	return newEngine(t, "ab", [][2]string{{"aa", "a"}, {"ab", "a"}, {"ba", "a"}})
}

func semilattice(t *testing.T) *KnuthBendix {
	return newEngine(t, "ab", [][2]string{{"aa", "a"}, {"bb", "b"}, {"ba", "ab"}})
}

func TestLeftZeroCompletion(t *testing.T) {
	kb := leftZero(t)
	if err := kb.Run(context.Background()); err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if !kb.Confluent() {
		t.Error("Confluent() = false, want true")
	}
	want := [][2]string{{"ba", "a"}, {"ab", "a"}, {"aa", "a"}}
	if got := activePairs(kb); !slices.Equal(got, want) {
		t.Errorf("active rules = %v, want %v", got, want)
	}

	nf, err := kb.NormalForm(context.Background(), "aab")
	if err != nil {
		t.Fatalf("NormalForm error = %v", err)
	}
	if nf != "a" {
		t.Errorf("NormalForm(%q) = %q, want %q", "aab", nf, "a")
	}

	eq, err := kb.EqualTo(context.Background(), "aab", "ba")
	if err != nil {
		t.Fatalf("EqualTo error = %v", err)
	}
	if !eq {
		t.Errorf("EqualTo(%q, %q) = false, want true", "aab", "ba")
	}
	eq, err = kb.EqualTo(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("EqualTo error = %v", err)
	}
	if eq {
		t.Errorf("EqualTo(%q, %q) = true, want false", "a", "b")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	kb := semilattice(t)
	if err := kb.Run(context.Background()); err != nil {
		t.Fatalf("first Run error = %v", err)
	}
	rules := activePairs(kb)
	defined := kb.TotalRulesDefined()

	if err := kb.Run(context.Background()); err != nil {
		t.Fatalf("second Run error = %v", err)
	}
	if got := activePairs(kb); !slices.Equal(got, rules) {
		t.Errorf("second run changed rules: %v, want %v", got, rules)
	}
	if kb.TotalRulesDefined() != defined {
		t.Errorf("second run defined new rules: %d, want %d", kb.TotalRulesDefined(), defined)
	}
}

func TestDeterministicCompletion(t *testing.T) {
	first := semilattice(t)
	second := semilattice(t)
	if err := first.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := second.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := [][2]string{{"ba", "ab"}, {"bb", "b"}, {"aa", "a"}}
	if got := activePairs(first); !slices.Equal(got, want) {
		t.Errorf("active rules = %v, want %v", got, want)
	}
	if !slices.Equal(activePairs(first), activePairs(second)) {
		t.Errorf("runs disagree: %v vs %v", activePairs(first), activePairs(second))
	}
}

func TestMaxRulesStopsAndResumes(t *testing.T) {
	kb := leftZero(t)
	kb.MaxRules(1)

	err := kb.Run(context.Background())
	if !errors.Is(err, ErrRuleCapReached) {
		t.Fatalf("Run error = %v, want ErrRuleCapReached", err)
	}
	if kb.NumberOfActiveRules() != 1 {
		t.Fatalf("NumberOfActiveRules() = %d, want 1", kb.NumberOfActiveRules())
	}
	if kb.ConfluentKnown() {
		t.Error("ConfluentKnown() = true after a capped stop, want false")
	}
	if got, want := activePairs(kb), [][2]string{{"ba", "a"}}; !slices.Equal(got, want) {
		t.Errorf("active rules = %v, want %v", got, want)
	}

	// Raising the cap resumes from the committed state and lands on the
	// same system an unbounded run produces.
	kb.MaxRules(Unbounded)
	if err := kb.Run(context.Background()); err != nil {
		t.Fatalf("resumed Run error = %v", err)
	}
	if !kb.Confluent() {
		t.Error("Confluent() = false after resume, want true")
	}

	fresh := leftZero(t)
	if err := fresh.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(activePairs(kb), activePairs(fresh)) {
		t.Errorf("resumed state %v differs from fresh run %v", activePairs(kb), activePairs(fresh))
	}
}

func TestCancelledContext(t *testing.T) {
	kb := leftZero(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := kb.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if kb.Confluent() {
		t.Error("Confluent() = true after cancelled run")
	}

	// Cancellation is not fatal: a fresh context resumes the run.
	if err := kb.Run(context.Background()); err != nil {
		t.Fatalf("resumed Run error = %v", err)
	}
	if !kb.Confluent() || kb.NumberOfActiveRules() != 3 {
		t.Errorf("resume gave %d rules, confluent %t", kb.NumberOfActiveRules(), kb.Confluent())
	}
}

func TestRunUntil(t *testing.T) {
	kb := leftZero(t)
	if err := kb.RunUntil(func() bool { return true }); err != nil {
		t.Fatalf("RunUntil error = %v", err)
	}
	if kb.ConfluentKnown() {
		t.Error("ConfluentKnown() = true after an immediate stop")
	}
	if err := kb.Run(context.Background()); err != nil {
		t.Fatalf("resumed Run error = %v", err)
	}
	if !kb.Confluent() {
		t.Error("Confluent() = false after resume, want true")
	}
}

func TestRunFor(t *testing.T) {
	kb := semilattice(t)
	if err := kb.RunFor(time.Minute); err != nil {
		t.Fatalf("RunFor error = %v", err)
	}
	if !kb.Confluent() {
		t.Error("Confluent() = false, want true")
	}
}

func TestRunByOverlapLength(t *testing.T) {
	kb := semilattice(t)
	if err := kb.RunByOverlapLength(context.Background()); err != nil {
		t.Fatalf("RunByOverlapLength error = %v", err)
	}
	if !kb.Confluent() {
		t.Error("Confluent() = false, want true")
	}
	want := [][2]string{{"ba", "ab"}, {"bb", "b"}, {"aa", "a"}}
	if got := activePairs(kb); !slices.Equal(got, want) {
		t.Errorf("active rules = %v, want %v", got, want)
	}
}

func TestDerivedRules(t *testing.T) {
	kb := newEngine(t, "ab", [][2]string{{"aba", "b"}})
	if err := kb.Run(context.Background()); err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if !kb.Confluent() {
		t.Error("Confluent() = false, want true")
	}
	// Overlapping aba with itself derives abb = bba, oriented by shortlex.
	want := [][2]string{{"aba", "b"}, {"bba", "abb"}}
	if got := activePairs(kb); !slices.Equal(got, want) {
		t.Errorf("active rules = %v, want %v", got, want)
	}
}

// naiveReduce applies the rules anywhere in the word until none applies,
// ignoring match order. On a confluent system it must agree with the
// engine's leftmost-longest rewriting.
func naiveReduce(rules [][2]string, w string) string {
	for {
		reduced := false
		for _, r := range rules {
			if i := strings.Index(w, r[0]); i >= 0 {
				w = w[:i] + r[1] + w[i+len(r[0]):]
				reduced = true
			}
		}
		if !reduced {
			return w
		}
	}
}

func wordsUpTo(alphabet string, maxLen int) []string {
	words := []string{""}
	frontier := []string{""}
	for range maxLen {
		var next []string
		for _, w := range frontier {
			for _, c := range alphabet {
				next = append(next, w+string(c))
			}
		}
		words = append(words, next...)
		frontier = next
	}
	return words
}

func TestNormalFormAgreesWithNaiveReduction(t *testing.T) {
	kb := newEngine(t, "ab", [][2]string{{"aba", "a"}, {"bab", "b"}})
	if err := kb.Run(context.Background()); err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if !kb.Confluent() {
		t.Fatal("Confluent() = false, want true")
	}
	if kb.NumberOfActiveRules() != 2 {
		t.Fatalf("NumberOfActiveRules() = %d, want 2", kb.NumberOfActiveRules())
	}

	rules := activePairs(kb)
	for _, w := range wordsUpTo("ab", 6) {
		nf, err := kb.NormalForm(context.Background(), w)
		if err != nil {
			t.Fatalf("NormalForm(%q) error = %v", w, err)
		}
		if want := naiveReduce(rules, w); nf != want {
			t.Errorf("NormalForm(%q) = %q, naive reduction gives %q", w, nf, want)
		}
	}
}
