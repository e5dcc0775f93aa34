package conjugator

import (
	"strings"

	"github.com/ojala-app/ojala/internal/grammar"
)

// maxTypoDistance is the edit-distance ceiling for the spelling_error kind.
const maxTypoDistance = 2

// classify diagnoses an incorrect submission. The checks run in a fixed
// priority order and the first match wins; several heuristics can hold at
// once, so the order is a deliberate tie-break policy.
func (e *Engine) classify(v grammar.Verb, t grammar.Tense, p grammar.Person, submitted string, expected Result) ErrorKind {
	if e.isMoodConfusion(v, t, submitted) {
		return KindMoodConfusion
	}
	if e.isWrongPerson(v, t, p, submitted) {
		return KindWrongPerson
	}
	if e.isWrongTense(v, t, p, submitted) {
		return KindWrongTense
	}
	if e.isStemChangeError(v, t, p, submitted) {
		return KindStemChangeError
	}
	if e.isSpellingChangeError(v, t, p, submitted) {
		return KindSpellingChangeError
	}
	if isWrongEnding(submitted, expected) {
		return KindWrongEnding
	}
	if levenshtein(submitted, normalize(expected.Form)) <= maxTypoDistance ||
		levenshtein(submitted, foldAccents(normalize(expected.Form))) <= maxTypoDistance {
		return KindSpellingError
	}
	return KindUnrecognized
}

// isMoodConfusion reports whether the submission is an indicative form of
// the verb. Any person counts: a learner who answers "es" for (ser, yo) has
// reached for the wrong mood, whatever person they landed on.
func (e *Engine) isMoodConfusion(v grammar.Verb, t grammar.Tense, submitted string) bool {
	for _, p := range grammar.Persons {
		if form := e.indicativeCounterpart(v, t, p); form != "" && matchesForm(submitted, form) {
			return true
		}
	}
	return false
}

// isWrongPerson reports whether the submission is the requested tense
// conjugated for a different person.
func (e *Engine) isWrongPerson(v grammar.Verb, t grammar.Tense, p grammar.Person, submitted string) bool {
	for _, other := range grammar.Persons {
		if other == p {
			continue
		}
		r, err := e.Conjugate(v.Infinitive, t, other)
		if err == nil && matchesResult(submitted, r) {
			return true
		}
	}
	return false
}

// isWrongTense reports whether the submission is a different subjunctive
// tense of the same verb and person.
func (e *Engine) isWrongTense(v grammar.Verb, t grammar.Tense, p grammar.Person, submitted string) bool {
	for _, other := range grammar.Tenses {
		if other == t {
			continue
		}
		r, err := e.Conjugate(v.Infinitive, other, p)
		if err == nil && matchesResult(submitted, r) {
			return true
		}
	}
	return false
}

// isStemChangeError reports whether the submission would be correct had the
// stem change been applied (or, for the excluded nosotros/vosotros persons,
// not applied).
func (e *Engine) isStemChangeError(v grammar.Verb, t grammar.Tense, p grammar.Person, submitted string) bool {
	if v.StemChange == grammar.StemNone {
		return false
	}

	switch t {
	case grammar.PresentSubjunctive:
		if stemChangeApplies(v, p) {
			// Omitted change: "pense" for "piense".
			form, _, _ := e.presentSubjForm(v, p, false, true)
			if matchesForm(submitted, form) {
				return true
			}
		} else {
			// Misapplied change: "piensemos" for "pensemos".
			stem := applyStemChange(presentStem(v), v.StemChange)
			if spellingChangeApplies(v, t) {
				stem = applySpellingChange(stem, v.SpellingChange)
			}
			endings := presentSubjEndings(v.Class)
			if matchesForm(submitted, stem+endings[p.Index()]) {
				return true
			}
		}

	case grammar.ImperfectSubjunctiveRA, grammar.ImperfectSubjunctiveSE:
		// e>i verbs change in the preterite stem too: "pediera" for "pidiera".
		if v.StemChange != grammar.StemEI || v.Class != grammar.ClassIR {
			return false
		}
		endings := imperfectRAEndings
		if t == grammar.ImperfectSubjunctiveSE {
			endings = imperfectSEEndings
		}
		plain := v.Stem() + "ie"
		return matchesForm(submitted, imperfectForm(plain, endings, p))
	}
	return false
}

// isSpellingChangeError reports whether the submission would be correct had
// the orthographic adjustment been applied: "busce" for "busque".
func (e *Engine) isSpellingChangeError(v grammar.Verb, t grammar.Tense, p grammar.Person, submitted string) bool {
	if !spellingChangeApplies(v, t) {
		return false
	}
	form, _, _ := e.presentSubjForm(v, p, true, false)
	return matchesForm(submitted, form)
}

// isWrongEnding reports whether the submission keeps the correct derivation
// stem but attaches an ending that none of the other checks recognized.
func isWrongEnding(submitted string, expected Result) bool {
	stem := normalize(expected.stem)
	if stem == "" {
		return false
	}
	if !strings.HasPrefix(submitted, stem) && !strings.HasPrefix(foldAccents(submitted), foldAccents(stem)) {
		return false
	}
	return submitted != normalize(expected.Form)
}

// levenshtein computes the edit distance between two strings, by rune.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
