package knuthbendix

import "errors"

var (
	// ErrLetterNotInAlphabet is returned when a word contains a letter
	// outside the presentation's alphabet. The word is rejected before any
	// engine state is touched.
	ErrLetterNotInAlphabet = errors.New("letter not in alphabet")

	// ErrDuplicateLetter is returned when an alphabet repeats a letter.
	ErrDuplicateLetter = errors.New("duplicate letter in alphabet")

	// ErrAlphabetTooLarge is returned by FromAlphabetSize for sizes that
	// cannot be written with the letters a..z.
	ErrAlphabetTooLarge = errors.New("alphabet size exceeds 26")

	// ErrRuleCapReached reports that a run stopped because the active rule
	// count reached MaxRules. This is not a failure: all progress is
	// retained and the run can be resumed after raising the cap.
	ErrRuleCapReached = errors.New("active rule cap reached")

	// ErrNotConfluent is returned by operations that require a confluent
	// system (such as building the Gilman digraph) when completion stopped
	// without reaching one.
	ErrNotConfluent = errors.New("rewriting system is not confluent")
)
