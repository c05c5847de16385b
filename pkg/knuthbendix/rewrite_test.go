package knuthbendix

import (
	"context"
	"errors"
	"testing"
)

func TestNormalForm(t *testing.T) {
	kb := leftZero(t)
	if err := kb.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a", "a"},
		{"b", "b"},
		{"aab", "a"},
		{"bab", "a"},
		{"aaaa", "a"},
		{"bbb", "bbb"},
		{"bbab", "a"},
	}
	for _, tt := range tests {
		got, err := kb.NormalForm(context.Background(), tt.in)
		if err != nil {
			t.Fatalf("NormalForm(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("NormalForm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalFormValidatesLetters(t *testing.T) {
	kb := leftZero(t)
	if _, err := kb.NormalForm(context.Background(), "abc"); !errors.Is(err, ErrLetterNotInAlphabet) {
		t.Errorf("NormalForm(%q) error = %v, want ErrLetterNotInAlphabet", "abc", err)
	}
}

func TestNormalFormRunsCompletion(t *testing.T) {
	// NormalForm on a fresh engine triggers the completion run itself.
	kb := semilattice(t)
	got, err := kb.NormalForm(context.Background(), "bba")
	if err != nil {
		t.Fatalf("NormalForm error = %v", err)
	}
	if got != "ab" {
		t.Errorf("NormalForm(%q) = %q, want %q", "bba", got, "ab")
	}
	if !kb.Confluent() {
		t.Error("Confluent() = false after NormalForm, want true")
	}
}

func TestNormalFormIdempotent(t *testing.T) {
	kb := semilattice(t)
	for _, w := range []string{"", "a", "ba", "abba", "bbaabb"} {
		nf, err := kb.NormalForm(context.Background(), w)
		if err != nil {
			t.Fatal(err)
		}
		again, err := kb.NormalForm(context.Background(), nf)
		if err != nil {
			t.Fatal(err)
		}
		if again != nf {
			t.Errorf("NormalForm(NormalForm(%q)) = %q, want %q", w, again, nf)
		}
	}
}
