package conjugator

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ojala-app/ojala/internal/grammar"
)

// accentStripper removes combining marks after NFD decomposition, turning
// "habláramos" into "hablaramos".
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalize prepares a learner's submission for comparison: trim, lowercase,
// NFC, and collapse internal whitespace. Diacritics are preserved.
func normalize(s string) string {
	s = norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
	return strings.Join(strings.Fields(s), " ")
}

// foldAccents strips diacritics from an already-normalized string.
func foldAccents(s string) string {
	folded, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return folded
}

// foldedAlternate returns the diacritic-stripped spelling as a one-element
// slice when it differs from the form, else nil.
func foldedAlternate(form string) []string {
	if folded := foldAccents(form); folded != form {
		return []string{folded}
	}
	return nil
}

// matchesResult reports whether the normalized submission equals the
// result's form or any of its alternates.
func matchesResult(submitted string, r Result) bool {
	if submitted == normalize(r.Form) {
		return true
	}
	for _, alt := range r.Alternates {
		if submitted == normalize(alt) {
			return true
		}
	}
	return false
}

// matchesForm reports whether the normalized submission equals the form or
// its diacritic-stripped spelling.
func matchesForm(submitted, form string) bool {
	form = normalize(form)
	return submitted == form || submitted == foldAccents(form)
}

// Validate checks a learner's submitted form against the correct
// conjugation and, when wrong, classifies the mistake. A wrong answer is an
// expected outcome, never an error; errors are reserved for invalid
// verb/tense/person arguments.
func (e *Engine) Validate(infinitive string, t grammar.Tense, p grammar.Person, submitted string) (Validation, error) {
	expected, err := e.Conjugate(infinitive, t, p)
	if err != nil {
		return Validation{}, err
	}

	accepted := make([]string, 0, 1+len(expected.Alternates))
	accepted = append(accepted, expected.Form)
	accepted = append(accepted, expected.Alternates...)

	val := Validation{
		Verb:      infinitive,
		Tense:     t,
		Person:    p,
		Expected:  expected.Form,
		Submitted: submitted,
		Accepted:  accepted,
	}

	normSubmitted := normalize(submitted)
	if matchesResult(normSubmitted, expected) {
		val.Correct = true
		return val, nil
	}

	v, _ := e.tables.Verb(infinitive)
	val.Kind = e.classify(v, t, p, normSubmitted, expected)
	return val, nil
}
