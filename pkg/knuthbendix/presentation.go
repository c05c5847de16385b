package knuthbendix

import "fmt"

// Presentation describes a finitely presented semigroup or monoid: an
// alphabet of generators together with relation word pairs. The relations
// themselves are added to an engine with KnuthBendix.AddRule; the
// presentation carries only the alphabet and whether the empty word belongs
// to the presented structure (monoid vs semigroup), which affects counting.
//
// Words are Go strings over the alphabet's letters. Internally the engine
// works on 0-based letter indices; the conversion is total for words that
// pass validation.
type Presentation struct {
	// ContainsEmptyWord is true when the presented structure is a monoid,
	// so the empty word is counted among the normal forms.
	ContainsEmptyWord bool

	alphabet string
	index    [256]int16
}

// NewPresentation builds a presentation over the given alphabet. Every byte
// of the alphabet is one generator; letters must be distinct.
func NewPresentation(alphabet string) (*Presentation, error) {
	p := &Presentation{alphabet: alphabet}
	for i := range p.index {
		p.index[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if p.index[c] >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLetter, c)
		}
		p.index[c] = int16(i)
	}
	return p, nil
}

// FromAlphabetSize builds a presentation over the first n lowercase letters.
func FromAlphabetSize(n int) (*Presentation, error) {
	if n < 0 || n > 26 {
		return nil, fmt.Errorf("%w: %d", ErrAlphabetTooLarge, n)
	}
	letters := make([]byte, n)
	for i := range letters {
		letters[i] = byte('a' + i)
	}
	return NewPresentation(string(letters))
}

// Alphabet returns the alphabet string. Letter i of the alphabet is the
// external spelling of internal letter i.
func (p *Presentation) Alphabet() string {
	return p.alphabet
}

// toInternal validates w and converts it to internal letter indices.
func (p *Presentation) toInternal(w string) ([]byte, error) {
	out := make([]byte, len(w))
	for i := 0; i < len(w); i++ {
		j := p.index[w[i]]
		if j < 0 {
			return nil, fmt.Errorf("%w: %q in %q", ErrLetterNotInAlphabet, w[i], w)
		}
		out[i] = byte(j)
	}
	return out, nil
}

// toExternal converts an internal word back to its external spelling.
func (p *Presentation) toExternal(w []byte) string {
	out := make([]byte, len(w))
	for i, c := range w {
		out[i] = p.alphabet[c]
	}
	return string(out)
}
