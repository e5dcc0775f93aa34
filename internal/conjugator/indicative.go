package conjugator

import (
	"github.com/ojala-app/ojala/internal/grammar"
)

// Indicative endings, person-indexed.
var (
	presentIndEndingsAR = [6]string{"o", "as", "a", "amos", "áis", "an"}
	presentIndEndingsER = [6]string{"o", "es", "e", "emos", "éis", "en"}
	presentIndEndingsIR = [6]string{"o", "es", "e", "imos", "ís", "en"}

	imperfectIndEndingsAR = [6]string{"aba", "abas", "aba", "ábamos", "abais", "aban"}
	imperfectIndEndingsER = [6]string{"ía", "ías", "ía", "íamos", "íais", "ían"}
)

// indicativeCounterpart returns the indicative form a learner most likely
// reached for instead of the requested subjunctive tense: present indicative
// for the present, imperfect indicative for the imperfect, and the
// corresponding compound indicative for the perfect tenses.
func (e *Engine) indicativeCounterpart(v grammar.Verb, t grammar.Tense, p grammar.Person) string {
	switch t {
	case grammar.PresentSubjunctive:
		return e.presentIndicative(v, p)
	case grammar.ImperfectSubjunctiveRA, grammar.ImperfectSubjunctiveSE:
		return e.imperfectIndicative(v, p)
	case grammar.PresentPerfectSubjunctive:
		if aux, ok := e.tables.Lookup("haber"); ok {
			return aux.PresentIndicative[p.Index()] + " " + e.pastParticiple(v)
		}
	case grammar.PluperfectSubjunctive:
		if haber, ok := e.tables.Verb("haber"); ok {
			return e.imperfectIndicative(haber, p) + " " + e.pastParticiple(v)
		}
	}
	return ""
}

// presentIndicative derives the present indicative. Stem changes occupy the
// boot pattern only (never nosotros/vosotros), including e>i.
func (e *Engine) presentIndicative(v grammar.Verb, p grammar.Person) string {
	if forms, ok := e.tables.Lookup(v.Infinitive); ok {
		return forms.PresentIndicative[p.Index()]
	}
	if p == grammar.Yo && v.PresentYo != "" {
		return v.PresentYo
	}

	stem := v.Stem()
	if v.StemChange != grammar.StemNone && p != grammar.Nosotros && p != grammar.Vosotros {
		stem = applyStemChange(stem, v.StemChange)
	}

	var endings [6]string
	switch v.Class {
	case grammar.ClassAR:
		endings = presentIndEndingsAR
	case grammar.ClassER:
		endings = presentIndEndingsER
	default:
		endings = presentIndEndingsIR
	}
	return stem + endings[p.Index()]
}

// imperfectIndicative derives the imperfect indicative; only ser, ir and ver
// are irregular here and carry overrides in the lookup table.
func (e *Engine) imperfectIndicative(v grammar.Verb, p grammar.Person) string {
	if forms, ok := e.tables.Lookup(v.Infinitive); ok && forms.ImperfectIndicative != [6]string{} {
		return forms.ImperfectIndicative[p.Index()]
	}
	stem := v.Stem()
	if v.Class == grammar.ClassAR {
		return stem + imperfectIndEndingsAR[p.Index()]
	}
	return stem + imperfectIndEndingsER[p.Index()]
}
