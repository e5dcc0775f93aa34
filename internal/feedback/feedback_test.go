package feedback

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ojala-app/ojala/internal/conjugator"
	"github.com/ojala-app/ojala/internal/grammar"
	"github.com/ojala-app/ojala/internal/review"
)

func incorrectValidation(kind conjugator.ErrorKind) conjugator.Validation {
	return conjugator.Validation{
		Correct:   false,
		Verb:      "hablar",
		Tense:     grammar.PresentSubjunctive,
		Person:    grammar.Yo,
		Expected:  "hable",
		Submitted: "hablo",
		Kind:      kind,
	}
}

func TestGenerateDeterministic(t *testing.T) {
	v := incorrectValidation(conjugator.KindMoodConfusion)
	ctx := Context{Category: grammar.Wishes, Trigger: "Quiero que"}

	first := Generate(v, ctx)
	second := Generate(v, ctx)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("feedback not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestGenerateCorrect(t *testing.T) {
	fb := Generate(conjugator.Validation{
		Correct:  true,
		Verb:     "hablar",
		Tense:    grammar.PresentSubjunctive,
		Person:   grammar.Yo,
		Expected: "hable",
	}, Context{})
	if fb.Message != "¡Correcto!" {
		t.Errorf("message = %q", fb.Message)
	}
	if len(fb.Suggestions) != 0 {
		t.Errorf("correct answers should carry no suggestions, got %v", fb.Suggestions)
	}
}

func TestGenerateMoodConfusionNamesTrigger(t *testing.T) {
	fb := Generate(incorrectValidation(conjugator.KindMoodConfusion),
		Context{Category: grammar.Ojala, Trigger: "Ojalá"})

	if !strings.Contains(fb.Explanation, "Ojalá") {
		t.Errorf("explanation does not mention the trigger: %q", fb.Explanation)
	}
	if !strings.Contains(fb.Explanation, "ojalá always takes the subjunctive") {
		t.Errorf("explanation does not state the category rule: %q", fb.Explanation)
	}
}

func TestGenerateStemChangeNamesRule(t *testing.T) {
	v := conjugator.Validation{
		Verb:      "pensar",
		Tense:     grammar.PresentSubjunctive,
		Person:    grammar.Tu,
		Expected:  "pienses",
		Submitted: "penses",
		Kind:      conjugator.KindStemChangeError,
	}
	verb := grammar.Verb{Infinitive: "pensar", Class: grammar.ClassAR, StemChange: grammar.StemEIE}

	fb := Generate(v, Context{Verb: verb})
	if !strings.Contains(fb.Explanation, "e changes to ie") {
		t.Errorf("explanation does not name the stem rule: %q", fb.Explanation)
	}
}

func TestGenerateSpellingChangeNamesRule(t *testing.T) {
	v := conjugator.Validation{
		Verb:      "buscar",
		Tense:     grammar.PresentSubjunctive,
		Person:    grammar.Yo,
		Expected:  "busque",
		Submitted: "busce",
		Kind:      conjugator.KindSpellingChangeError,
	}
	verb := grammar.Verb{Infinitive: "buscar", Class: grammar.ClassAR, SpellingChange: grammar.SpellCQU}

	fb := Generate(v, Context{Verb: verb})
	if !strings.Contains(fb.Explanation, "c becomes qu") {
		t.Errorf("explanation does not name the spelling rule: %q", fb.Explanation)
	}
}

func TestGenerateCoversEveryErrorKind(t *testing.T) {
	kinds := []conjugator.ErrorKind{
		conjugator.KindMoodConfusion,
		conjugator.KindWrongPerson,
		conjugator.KindWrongTense,
		conjugator.KindStemChangeError,
		conjugator.KindSpellingChangeError,
		conjugator.KindWrongEnding,
		conjugator.KindSpellingError,
		conjugator.KindUnrecognized,
	}
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			fb := Generate(incorrectValidation(kind), Context{Category: grammar.Wishes})
			if fb.Message == "" || fb.Explanation == "" {
				t.Errorf("empty feedback for %s: %+v", kind, fb)
			}
			if !strings.Contains(fb.Message, "hable") {
				t.Errorf("message does not show the expected form: %q", fb.Message)
			}
		})
	}
}

func attempt(verb string, kind conjugator.ErrorKind) review.Attempt {
	return review.Attempt{
		Key:     review.Key{Verb: verb, Tense: grammar.PresentSubjunctive, Person: grammar.Yo},
		Correct: kind == "",
		Kind:    kind,
		At:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestDetectPatterns(t *testing.T) {
	tables := grammar.Builtin()

	history := []review.Attempt{
		attempt("hablar", conjugator.KindWrongEnding),
		attempt("estudiar", conjugator.KindWrongEnding),
		attempt("trabajar", conjugator.KindWrongEnding),
		attempt("comer", conjugator.KindWrongPerson),
		attempt("hablar", ""),
		attempt("vivir", conjugator.KindWrongPerson),
	}

	patterns := DetectPatterns(tables, history, 3)
	if len(patterns) != 1 {
		t.Fatalf("len(patterns) = %d, want 1", len(patterns))
	}
	p := patterns[0]
	if p.Class != grammar.ClassAR || p.Kind != conjugator.KindWrongEnding || p.Count != 3 {
		t.Errorf("pattern = %+v", p)
	}
	wantVerbs := []string{"estudiar", "hablar", "trabajar"}
	if !reflect.DeepEqual(p.Verbs, wantVerbs) {
		t.Errorf("verbs = %v, want %v", p.Verbs, wantVerbs)
	}

	// Lowering the threshold surfaces the smaller clusters, most frequent
	// first.
	patterns = DetectPatterns(tables, history, 1)
	if len(patterns) != 3 {
		t.Fatalf("len(patterns) = %d, want 3", len(patterns))
	}
	if patterns[0].Count < patterns[1].Count {
		t.Errorf("patterns not ordered by count: %+v", patterns)
	}
}

func TestDetectPatternsIgnoresUnknownVerbs(t *testing.T) {
	tables := grammar.Builtin()
	history := []review.Attempt{
		attempt("flurgar", conjugator.KindWrongEnding),
		attempt("flurgar", conjugator.KindWrongEnding),
	}
	if got := DetectPatterns(tables, history, 1); len(got) != 0 {
		t.Errorf("expected no patterns for unknown verbs, got %+v", got)
	}
}

func TestWeakClasses(t *testing.T) {
	patterns := []Pattern{
		{Class: grammar.ClassAR, Kind: conjugator.KindWrongEnding, Count: 5},
		{Class: grammar.ClassAR, Kind: conjugator.KindStemChangeError, Count: 3},
		{Class: grammar.ClassIR, Kind: conjugator.KindWrongPerson, Count: 2},
	}
	got := WeakClasses(patterns)
	want := []grammar.Class{grammar.ClassAR, grammar.ClassIR}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WeakClasses() = %v, want %v", got, want)
	}
}
