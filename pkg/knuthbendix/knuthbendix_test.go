package knuthbendix

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func TestCopyIsIndependent(t *testing.T) {
	kb := leftZero(t)
	if err := kb.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	c := kb.Copy()
	if !slices.Equal(activePairs(c), activePairs(kb)) {
		t.Fatalf("copy rules = %v, want %v", activePairs(c), activePairs(kb))
	}
	if !c.Confluent() {
		t.Error("copy lost confluence")
	}

	// Mutating the copy must not leak into the original.
	if err := c.AddRule("bb", "b"); err != nil {
		t.Fatal(err)
	}
	if err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if kb.NumberOfActiveRules() != 3 {
		t.Errorf("original grew to %d rules after mutating the copy", kb.NumberOfActiveRules())
	}
	if !kb.ConfluentKnown() {
		t.Error("original lost its confluence result after mutating the copy")
	}
}

func TestCopyBeforeRun(t *testing.T) {
	kb := semilattice(t)
	c := kb.Copy()
	if err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if kb.NumberOfActiveRules() != 0 {
		t.Errorf("running the copy activated %d rules on the original", kb.NumberOfActiveRules())
	}
	if err := kb.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(activePairs(c), activePairs(kb)) {
		t.Errorf("copy and original completed differently: %v vs %v",
			activePairs(c), activePairs(kb))
	}
}

func TestSetLogger(t *testing.T) {
	kb := semilattice(t)
	var buf bytes.Buffer
	kb.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	if err := kb.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "stopping") {
		t.Errorf("run log missing the stop record:\n%s", buf.String())
	}
}

func TestTotalRulesDefined(t *testing.T) {
	kb := leftZero(t)
	if kb.TotalRulesDefined() != 3 {
		t.Fatalf("TotalRulesDefined() = %d before running, want 3", kb.TotalRulesDefined())
	}
	if err := kb.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	// Completion defines candidates beyond the survivors.
	if kb.TotalRulesDefined() < uint64(kb.NumberOfActiveRules()) {
		t.Errorf("TotalRulesDefined() = %d < %d active rules",
			kb.TotalRulesDefined(), kb.NumberOfActiveRules())
	}
}
