package knuthbendix

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestRace(t *testing.T) {
	base := semilattice(t)
	winner, err := Race(context.Background(),
		base.Copy().OverlapPolicy(ABC),
		base.Copy().OverlapPolicy(ABBC),
		base.Copy().OverlapPolicy(MaxABBC),
	)
	if err != nil {
		t.Fatalf("Race error = %v", err)
	}
	if !winner.Confluent() {
		t.Error("winner is not confluent")
	}
	want := [][2]string{{"ba", "ab"}, {"bb", "b"}, {"aa", "a"}}
	if got := activePairs(winner); !slices.Equal(got, want) {
		t.Errorf("winner rules = %v, want %v", got, want)
	}
	if base.NumberOfActiveRules() != 0 {
		t.Errorf("racing copies mutated the base engine: %d rules", base.NumberOfActiveRules())
	}
}

func TestRaceAllCandidatesFail(t *testing.T) {
	base := leftZero(t)
	winner, err := Race(context.Background(),
		base.Copy().MaxRules(1),
		base.Copy().MaxRules(1),
	)
	if !errors.Is(err, ErrRuleCapReached) {
		t.Fatalf("Race error = %v, want ErrRuleCapReached", err)
	}
	if winner != nil {
		t.Error("Race returned a winner despite every candidate failing")
	}
}

func TestRaceNoCandidates(t *testing.T) {
	if _, err := Race(context.Background()); err == nil {
		t.Error("Race with no candidates returned nil error")
	}
}
