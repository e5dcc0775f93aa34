package conjugator_test

import (
	"testing"

	"github.com/ojala-app/ojala/internal/conjugator"
	"github.com/ojala-app/ojala/internal/grammar"
)

func TestEngine_Validate_AcceptsVariants(t *testing.T) {
	tests := []struct {
		name      string
		verb      string
		tense     grammar.Tense
		person    grammar.Person
		submitted string
	}{
		{"canonical form", "hablar", grammar.PresentSubjunctive, grammar.Yo, "hable"},
		{"leading and trailing space", "hablar", grammar.PresentSubjunctive, grammar.Yo, "  hable  "},
		{"uppercase", "ser", grammar.PresentSubjunctive, grammar.El, "SEA"},
		{"stripped accents", "hablar", grammar.ImperfectSubjunctiveRA, grammar.Nosotros, "hablaramos"},
		{"se form for ra prompt", "ser", grammar.ImperfectSubjunctiveRA, grammar.Yo, "fuese"},
		{"ra form for se prompt", "ser", grammar.ImperfectSubjunctiveSE, grammar.Yo, "fuera"},
		{"compound extra whitespace", "hacer", grammar.PresentPerfectSubjunctive, grammar.Nosotros, "hayamos   hecho"},
		{"pluperfect se variant", "decir", grammar.PluperfectSubjunctive, grammar.Ellos, "hubiesen dicho"},
	}

	e := newEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, err := e.Validate(tt.verb, tt.tense, tt.person, tt.submitted)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if !val.Correct {
				t.Errorf("Validate(%q) = incorrect (%s), want correct", tt.submitted, val.Kind)
			}
		})
	}
}

func TestEngine_Validate_ClassifiesErrors(t *testing.T) {
	tests := []struct {
		name      string
		verb      string
		tense     grammar.Tense
		person    grammar.Person
		submitted string
		want      conjugator.ErrorKind
	}{
		{
			// "es" is 3sg present indicative; any indicative person counts.
			name: "indicative answer", verb: "ser",
			tense: grammar.PresentSubjunctive, person: grammar.Yo,
			submitted: "es", want: conjugator.KindMoodConfusion,
		},
		{
			name: "indicative of regular verb", verb: "hablar",
			tense: grammar.PresentSubjunctive, person: grammar.Yo,
			submitted: "habla", want: conjugator.KindMoodConfusion,
		},
		{
			name: "right tense wrong person", verb: "hablar",
			tense: grammar.PresentSubjunctive, person: grammar.Yo,
			submitted: "hables", want: conjugator.KindWrongPerson,
		},
		{
			name: "right person wrong tense", verb: "hablar",
			tense: grammar.PresentSubjunctive, person: grammar.Yo,
			submitted: "hablara", want: conjugator.KindWrongTense,
		},
		{
			name: "omitted stem change", verb: "pensar",
			tense: grammar.PresentSubjunctive, person: grammar.Yo,
			submitted: "pense", want: conjugator.KindStemChangeError,
		},
		{
			name: "stem change applied to nosotros", verb: "pensar",
			tense: grammar.PresentSubjunctive, person: grammar.Nosotros,
			submitted: "piensemos", want: conjugator.KindStemChangeError,
		},
		{
			name: "unraised preterite stem", verb: "pedir",
			tense: grammar.ImperfectSubjunctiveRA, person: grammar.El,
			submitted: "pediera", want: conjugator.KindStemChangeError,
		},
		{
			name: "omitted spelling change", verb: "buscar",
			tense: grammar.PresentSubjunctive, person: grammar.Yo,
			submitted: "busce", want: conjugator.KindSpellingChangeError,
		},
		{
			name: "omitted g to gu", verb: "llegar",
			tense: grammar.PresentSubjunctive, person: grammar.Tu,
			submitted: "lleges", want: conjugator.KindSpellingChangeError,
		},
		{
			name: "correct stem invented ending", verb: "hablar",
			tense: grammar.PresentSubjunctive, person: grammar.Yo,
			submitted: "habli", want: conjugator.KindWrongEnding,
		},
		{
			// dar's forms (dé, des, den) share only "d"; a d-initial guess
			// must not be read as a bad ending on that one-letter stem.
			name: "no ending diagnosis on suppletive stem", verb: "dar",
			tense: grammar.PresentSubjunctive, person: grammar.Yo,
			submitted: "digo", want: conjugator.KindUnrecognized,
		},
		{
			name: "close misspelling", verb: "hablar",
			tense: grammar.PresentSubjunctive, person: grammar.Yo,
			submitted: "jable", want: conjugator.KindSpellingError,
		},
		{
			name: "nothing recognizable", verb: "hablar",
			tense: grammar.PresentSubjunctive, person: grammar.Yo,
			submitted: "zzzqqq", want: conjugator.KindUnrecognized,
		},
	}

	e := newEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, err := e.Validate(tt.verb, tt.tense, tt.person, tt.submitted)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if val.Correct {
				t.Fatalf("Validate(%q) = correct, want %s", tt.submitted, tt.want)
			}
			if val.Kind != tt.want {
				t.Errorf("Validate(%q) kind = %s, want %s", tt.submitted, val.Kind, tt.want)
			}
		})
	}
}

func TestEngine_Validate_PopulatesAccepted(t *testing.T) {
	e := newEngine(t)

	val, err := e.Validate("hablar", grammar.ImperfectSubjunctiveRA, grammar.Yo, "wrong")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if val.Expected != "hablara" {
		t.Errorf("Expected = %q, want %q", val.Expected, "hablara")
	}
	found := false
	for _, a := range val.Accepted {
		if a == "hablase" {
			found = true
		}
	}
	if !found {
		t.Errorf("Accepted = %v, want to contain %q", val.Accepted, "hablase")
	}
}

func TestEngine_Validate_UnknownVerb(t *testing.T) {
	e := newEngine(t)

	if _, err := e.Validate("flurgar", grammar.PresentSubjunctive, grammar.Yo, "flurge"); err == nil {
		t.Error("Validate() with unknown verb succeeded, want error")
	}
}
