// Package conjugator derives Spanish subjunctive forms from the grammar
// tables and diagnoses learner answers against them.
package conjugator

import (
	"fmt"
	"unicode/utf8"

	"github.com/ojala-app/ojala/internal/grammar"
)

// Engine conjugates verbs and validates submitted answers. It holds no
// mutable state: a single Engine is safe for concurrent use.
type Engine struct {
	tables *grammar.Tables
	rules  []rule
}

// rule pairs an applicability predicate with a handler. Rules are tried in
// order; the first applicable rule produces the form.
type rule struct {
	name    string
	applies func(e *Engine, v grammar.Verb, t grammar.Tense) bool
	handle  func(e *Engine, v grammar.Verb, t grammar.Tense, p grammar.Person) (Result, error)
}

// New creates an Engine over the given tables.
func New(tables *grammar.Tables) *Engine {
	return &Engine{
		tables: tables,
		rules: []rule{
			{
				name: "irregular-lookup",
				applies: func(e *Engine, v grammar.Verb, t grammar.Tense) bool {
					_, ok := e.tables.Lookup(v.Infinitive)
					return ok && t == grammar.PresentSubjunctive
				},
				handle: (*Engine).conjugateLookup,
			},
			{
				name: "compound",
				applies: func(e *Engine, v grammar.Verb, t grammar.Tense) bool {
					return t.IsCompound()
				},
				handle: (*Engine).conjugateCompound,
			},
			{
				name: "present-subjunctive",
				applies: func(e *Engine, v grammar.Verb, t grammar.Tense) bool {
					return t == grammar.PresentSubjunctive
				},
				handle: (*Engine).conjugatePresent,
			},
			{
				name: "imperfect-subjunctive",
				applies: func(e *Engine, v grammar.Verb, t grammar.Tense) bool {
					return t == grammar.ImperfectSubjunctiveRA || t == grammar.ImperfectSubjunctiveSE
				},
				handle: (*Engine).conjugateImperfect,
			},
		},
	}
}

// Tables exposes the grammar dataset the engine was built over.
func (e *Engine) Tables() *grammar.Tables {
	return e.tables
}

// Conjugate produces the correct form of (verb, tense, person).
func (e *Engine) Conjugate(infinitive string, t grammar.Tense, p grammar.Person) (Result, error) {
	if !t.IsValid() {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidTense, int(t))
	}
	if !p.IsValid() {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidPerson, int(p))
	}
	v, ok := e.tables.Verb(infinitive)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownVerb, infinitive)
	}
	for _, r := range e.rules {
		if r.applies(e, v, t) {
			return r.handle(e, v, t, p)
		}
	}
	// Unreachable while the rule chain covers every valid tense.
	return Result{}, fmt.Errorf("%w: %s", ErrInvalidTense, t)
}

// Table conjugates all six persons of (verb, tense).
func (e *Engine) Table(infinitive string, t grammar.Tense) (map[grammar.Person]Result, error) {
	out := make(map[grammar.Person]Result, len(grammar.Persons))
	for _, p := range grammar.Persons {
		r, err := e.Conjugate(infinitive, t, p)
		if err != nil {
			return nil, err
		}
		out[p] = r
	}
	return out, nil
}

// PastParticiple returns the verb's past participle: an irregular lookup if
// one exists, otherwise the regular -ado/-ido suffix (with -ído after a
// stem-final strong vowel).
func (e *Engine) PastParticiple(infinitive string) (string, error) {
	v, ok := e.tables.Verb(infinitive)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVerb, infinitive)
	}
	return e.pastParticiple(v), nil
}

func (e *Engine) pastParticiple(v grammar.Verb) string {
	if p, ok := e.tables.Participle(v.Infinitive); ok {
		return p
	}
	stem := v.Stem()
	if v.Class == grammar.ClassAR {
		return stem + "ado"
	}
	if endsInStrongVowel(stem) {
		return stem + "ído"
	}
	return stem + "ido"
}

func (e *Engine) conjugateLookup(v grammar.Verb, t grammar.Tense, p grammar.Person) (Result, error) {
	forms, _ := e.tables.Lookup(v.Infinitive)

	// Suppletive paradigms like dar (dé, des, den) share only a single
	// letter; that is no stem/ending boundary, so ending diagnosis is
	// disabled for them.
	stem := commonPrefix(forms.PresentSubjunctive[:])
	if utf8.RuneCountInString(stem) < 2 {
		stem = ""
	}

	return Result{
		Verb:       v.Infinitive,
		Tense:      t,
		Person:     p,
		Form:       forms.PresentSubjunctive[p.Index()],
		Provenance: ProvenanceIrregular,
		Alternates: foldedAlternate(forms.PresentSubjunctive[p.Index()]),
		stem:       stem,
	}, nil
}

func (e *Engine) conjugateCompound(v grammar.Verb, t grammar.Tense, p grammar.Person) (Result, error) {
	auxForms, ok := e.tables.Lookup("haber")
	if !ok {
		return Result{}, fmt.Errorf("%w: %q (auxiliary)", ErrUnknownVerb, "haber")
	}

	participle := e.pastParticiple(v)

	var aux string
	var alternates []string
	switch t {
	case grammar.PresentPerfectSubjunctive:
		aux = auxForms.PresentSubjunctive[p.Index()]
	case grammar.PluperfectSubjunctive:
		stem := preteriteStemOf(auxForms.PreteriteThirdPlural)
		aux = imperfectForm(stem, imperfectRAEndings, p)
		alternates = append(alternates, imperfectForm(stem, imperfectSEEndings, p)+" "+participle)
	}

	form := aux + " " + participle
	alternates = append(alternates, foldedAlternate(form)...)
	for _, alt := range alternates[:len(alternates)] {
		alternates = append(alternates, foldedAlternate(alt)...)
	}

	return Result{
		Verb:       v.Infinitive,
		Tense:      t,
		Person:     p,
		Form:       form,
		Provenance: ProvenanceCompound,
		Alternates: dedupe(alternates, form),
		stem:       commonPrefix([]string{aux, form}),
	}, nil
}

func (e *Engine) conjugatePresent(v grammar.Verb, t grammar.Tense, p grammar.Person) (Result, error) {
	form, stem, prov := e.presentSubjForm(v, p, true, true)
	return Result{
		Verb:       v.Infinitive,
		Tense:      t,
		Person:     p,
		Form:       form,
		Provenance: prov,
		Alternates: foldedAlternate(form),
		stem:       stem,
	}, nil
}

// presentSubjForm builds the present-subjunctive form, optionally skipping
// the stem- or spelling-change step. The classifier uses the skipped
// variants to recognize omitted-rule answers.
func (e *Engine) presentSubjForm(v grammar.Verb, p grammar.Person, withStem, withSpelling bool) (form, stem string, prov Provenance) {
	stem = presentStem(v)
	prov = ProvenanceRegular

	if withStem && stemChangeApplies(v, p) {
		stem = applyStemChange(stem, v.StemChange)
		prov = ProvenanceStemChanged
	}
	if withSpelling && spellingChangeApplies(v, grammar.PresentSubjunctive) {
		adjusted := applySpellingChange(stem, v.SpellingChange)
		if adjusted != stem {
			stem = adjusted
			if prov == ProvenanceRegular {
				prov = ProvenanceSpellingChanged
			}
		}
	}

	endings := presentSubjEndings(v.Class)
	return stem + endings[p.Index()], stem, prov
}

func (e *Engine) conjugateImperfect(v grammar.Verb, t grammar.Tense, p grammar.Person) (Result, error) {
	stem, prov := e.preteriteStem(v)

	endings, siblingEndings := imperfectRAEndings, imperfectSEEndings
	if t == grammar.ImperfectSubjunctiveSE {
		endings, siblingEndings = imperfectSEEndings, imperfectRAEndings
	}

	form := imperfectForm(stem, endings, p)
	sibling := imperfectForm(stem, siblingEndings, p)

	alternates := []string{sibling}
	alternates = append(alternates, foldedAlternate(form)...)
	alternates = append(alternates, foldedAlternate(sibling)...)

	return Result{
		Verb:       v.Infinitive,
		Tense:      t,
		Person:     p,
		Form:       form,
		Provenance: prov,
		Alternates: dedupe(alternates, form),
		stem:       stem,
	}, nil
}

// preteriteStem returns the imperfect-subjunctive stem (third-person-plural
// preterite minus -ron) and the provenance of its derivation.
func (e *Engine) preteriteStem(v grammar.Verb) (string, Provenance) {
	if forms, ok := e.tables.Lookup(v.Infinitive); ok {
		return preteriteStemOf(forms.PreteriteThirdPlural), ProvenanceIrregular
	}
	if v.PreteriteThirdPlural != "" {
		return preteriteStemOf(v.PreteriteThirdPlural), ProvenanceIrregular
	}
	stem := v.Stem()
	prov := ProvenanceRegular
	if v.StemChange == grammar.StemEI && v.Class == grammar.ClassIR {
		stem = applyStemChange(stem, v.StemChange)
		prov = ProvenanceStemChanged
	}
	if v.Class == grammar.ClassAR {
		return stem + "a", prov
	}
	return stem + "ie", prov
}

func preteriteStemOf(thirdPlural string) string {
	if len(thirdPlural) > 3 && thirdPlural[len(thirdPlural)-3:] == "ron" {
		return thirdPlural[:len(thirdPlural)-3]
	}
	return thirdPlural
}

// imperfectForm appends the person ending, accenting the final stem vowel in
// the nosotros form (habla + ramos → habláramos).
func imperfectForm(stem string, endings [6]string, p grammar.Person) string {
	if p == grammar.Nosotros {
		stem = accentFinalVowel(stem)
	}
	return stem + endings[p.Index()]
}

// dedupe removes duplicates and the canonical form itself from alternates.
func dedupe(alternates []string, form string) []string {
	seen := map[string]bool{form: true}
	out := alternates[:0]
	for _, a := range alternates {
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
