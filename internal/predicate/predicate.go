// internal/predicate/predicate.go
//
// Evidence predicate for narrowing a word list during a Wordle-style game.
//
// Three independent, optional pieces of evidence are compiled once:
//   - Correct: a template such as "vi___" where '_' leaves an index open and
//     any other rune pins that index.
//   - Wrong:   letters known to be in the word at some other index, with
//     multiplicity ("ll" means at least two l's).
//   - Invalid: letters known not to be in the word at all.
//
// A nil field means the evidence was not supplied and the matching check is
// vacuously true. Indices are rune indices, not byte offsets.
//
// Notes:
//   • Wrong letters are only counted; the index they were guessed at is not
//     excluded. Callers wanting that must filter further.
//   • A *Predicate is never mutated after New and may be shared freely
//     between goroutines.

package predicate

// Placeholder marks an unconstrained index in a correct-positions template.
const Placeholder = '_'

// Evidence is the raw, uncompiled evidence for one query.
type Evidence struct {
	Correct *string `json:"correct,omitempty"` // e.g. "a__le"
	Wrong   *string `json:"wrong,omitempty"`   // e.g. "ll"
	Invalid *string `json:"invalid,omitempty"` // e.g. "xyz"
}

// Some returns a pointer to s, for building Evidence literals.
func Some(s string) *string { return &s }

// IsZero reports whether no evidence at all was supplied.
func (e Evidence) IsZero() bool {
	return e.Correct == nil && e.Wrong == nil && e.Invalid == nil
}

// Predicate is compiled Evidence.
type Predicate struct {
	correct map[int]rune      // rune index -> required rune
	wrong   map[rune]int      // rune -> minimum occurrences
	invalid map[rune]struct{} // runes that must not occur
}

// New compiles ev. It never fails: malformed or empty evidence simply
// constrains less.
func New(ev Evidence) *Predicate {
	return &Predicate{
		correct: positionMap(ev.Correct),
		wrong:   frequencyMap(ev.Wrong),
		invalid: letterSet(ev.Invalid),
	}
}

// positionMap maps each non-placeholder rune of the template to its index.
// A later rune at the same index would overwrite an earlier one, which can
// only happen for hand-built inputs.
func positionMap(template *string) map[int]rune {
	if template == nil {
		return nil
	}
	m := make(map[int]rune, len(*template))
	i := 0
	for _, r := range *template {
		if r != Placeholder {
			m[i] = r
		}
		i++
	}
	return m
}

// frequencyMap counts each rune of s.
func frequencyMap(s *string) map[rune]int {
	if s == nil {
		return nil
	}
	m := make(map[rune]int, len(*s))
	for _, r := range *s {
		m[r]++
	}
	return m
}

func letterSet(s *string) map[rune]struct{} {
	if s == nil {
		return nil
	}
	m := make(map[rune]struct{}, len(*s))
	for _, r := range *s {
		m[r] = struct{}{}
	}
	return m
}

// Matches reports whether word is consistent with every piece of evidence.
//
// The word's own (index, rune) pairs drive the positional check, so a
// template longer than the word only constrains the indices the word has.
func (p *Predicate) Matches(word string) bool {
	var seen map[rune]int
	if len(p.wrong) > 0 {
		seen = make(map[rune]int, len(p.wrong))
	}

	i := 0
	for _, r := range word {
		if p.invalid != nil {
			if _, bad := p.invalid[r]; bad {
				return false
			}
		}
		if p.correct != nil {
			if want, ok := p.correct[i]; ok && want != r {
				return false
			}
		}
		if seen != nil {
			if _, tracked := p.wrong[r]; tracked {
				seen[r]++
			}
		}
		i++
	}

	for r, need := range p.wrong {
		if seen[r] < need {
			return false
		}
	}
	return true
}

// Constrained reports whether any supplied evidence can reject a word.
func (p *Predicate) Constrained() bool {
	return len(p.correct) > 0 || len(p.wrong) > 0 || len(p.invalid) > 0
}
