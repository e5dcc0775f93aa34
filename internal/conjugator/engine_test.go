package conjugator_test

import (
	"errors"
	"testing"

	"github.com/ojala-app/ojala/internal/conjugator"
	"github.com/ojala-app/ojala/internal/grammar"
)

func newEngine(t *testing.T) *conjugator.Engine {
	t.Helper()
	return conjugator.New(grammar.Builtin())
}

func TestEngine_Conjugate_Forms(t *testing.T) {
	tests := []struct {
		verb   string
		tense  grammar.Tense
		person grammar.Person
		want   string
	}{
		// Regular present subjunctive.
		{"hablar", grammar.PresentSubjunctive, grammar.Yo, "hable"},
		{"hablar", grammar.PresentSubjunctive, grammar.Nosotros, "hablemos"},
		{"comer", grammar.PresentSubjunctive, grammar.Tu, "comas"},
		{"vivir", grammar.PresentSubjunctive, grammar.Ellos, "vivan"},

		// Irregular lookups.
		{"ser", grammar.PresentSubjunctive, grammar.El, "sea"},
		{"ir", grammar.PresentSubjunctive, grammar.Yo, "vaya"},
		{"saber", grammar.PresentSubjunctive, grammar.Nosotros, "sepamos"},
		{"estar", grammar.PresentSubjunctive, grammar.Tu, "estés"},

		// Irregular yo form carries into the subjunctive stem.
		{"tener", grammar.PresentSubjunctive, grammar.Yo, "tenga"},
		{"hacer", grammar.PresentSubjunctive, grammar.Ellos, "hagan"},

		// Stem changes skip nosotros/vosotros for e>ie and o>ue.
		{"pensar", grammar.PresentSubjunctive, grammar.Yo, "piense"},
		{"pensar", grammar.PresentSubjunctive, grammar.Nosotros, "pensemos"},
		{"pensar", grammar.PresentSubjunctive, grammar.Vosotros, "penséis"},
		{"volver", grammar.PresentSubjunctive, grammar.El, "vuelva"},
		{"volver", grammar.PresentSubjunctive, grammar.Nosotros, "volvamos"},

		// e>i in -ir verbs changes every person.
		{"pedir", grammar.PresentSubjunctive, grammar.Yo, "pida"},
		{"pedir", grammar.PresentSubjunctive, grammar.Nosotros, "pidamos"},

		// Orthographic adjustments before the -ar subjunctive e.
		{"buscar", grammar.PresentSubjunctive, grammar.Yo, "busque"},
		{"llegar", grammar.PresentSubjunctive, grammar.Tu, "llegues"},
		{"pagar", grammar.PresentSubjunctive, grammar.Nosotros, "paguemos"},

		// Imperfect subjunctive from the third-plural preterite stem.
		{"hablar", grammar.ImperfectSubjunctiveRA, grammar.Yo, "hablara"},
		{"hablar", grammar.ImperfectSubjunctiveRA, grammar.Nosotros, "habláramos"},
		{"hablar", grammar.ImperfectSubjunctiveSE, grammar.Tu, "hablases"},
		{"comer", grammar.ImperfectSubjunctiveRA, grammar.Ellos, "comieran"},
		{"ser", grammar.ImperfectSubjunctiveRA, grammar.Yo, "fuera"},
		{"decir", grammar.ImperfectSubjunctiveSE, grammar.El, "dijese"},
		{"pedir", grammar.ImperfectSubjunctiveRA, grammar.El, "pidiera"},

		// Compound tenses.
		{"hacer", grammar.PresentPerfectSubjunctive, grammar.Nosotros, "hayamos hecho"},
		{"hablar", grammar.PresentPerfectSubjunctive, grammar.Yo, "haya hablado"},
		{"decir", grammar.PluperfectSubjunctive, grammar.Ellos, "hubieran dicho"},
		{"vivir", grammar.PluperfectSubjunctive, grammar.Tu, "hubieras vivido"},
	}

	e := newEngine(t)
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := e.Conjugate(tt.verb, tt.tense, tt.person)
			if err != nil {
				t.Fatalf("Conjugate(%s, %s, %s) error = %v", tt.verb, tt.tense, tt.person, err)
			}
			if got.Form != tt.want {
				t.Errorf("Conjugate(%s, %s, %s) = %q, want %q", tt.verb, tt.tense, tt.person, got.Form, tt.want)
			}
		})
	}
}

func TestEngine_Conjugate_ImperfectSibling(t *testing.T) {
	e := newEngine(t)

	got, err := e.Conjugate("ser", grammar.ImperfectSubjunctiveRA, grammar.Yo)
	if err != nil {
		t.Fatalf("Conjugate() error = %v", err)
	}
	found := false
	for _, alt := range got.Alternates {
		if alt == "fuese" {
			found = true
		}
	}
	if !found {
		t.Errorf("Alternates = %v, want to contain %q", got.Alternates, "fuese")
	}
}

func TestEngine_Conjugate_Errors(t *testing.T) {
	e := newEngine(t)

	_, err := e.Conjugate("flurgar", grammar.PresentSubjunctive, grammar.Yo)
	if !errors.Is(err, conjugator.ErrUnknownVerb) {
		t.Errorf("unknown verb error = %v, want ErrUnknownVerb", err)
	}
	_, err = e.Conjugate("hablar", grammar.Tense(99), grammar.Yo)
	if !errors.Is(err, conjugator.ErrInvalidTense) {
		t.Errorf("invalid tense error = %v, want ErrInvalidTense", err)
	}
	_, err = e.Conjugate("hablar", grammar.PresentSubjunctive, grammar.Person(0))
	if !errors.Is(err, conjugator.ErrInvalidPerson) {
		t.Errorf("invalid person error = %v, want ErrInvalidPerson", err)
	}
}

func TestEngine_Table(t *testing.T) {
	e := newEngine(t)

	table, err := e.Table("ser", grammar.PresentSubjunctive)
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	if len(table) != 6 {
		t.Fatalf("len(Table()) = %d, want 6", len(table))
	}
	want := map[grammar.Person]string{
		grammar.Yo:       "sea",
		grammar.Tu:       "seas",
		grammar.El:       "sea",
		grammar.Nosotros: "seamos",
		grammar.Vosotros: "seáis",
		grammar.Ellos:    "sean",
	}
	for p, form := range want {
		if table[p].Form != form {
			t.Errorf("Table()[%s] = %q, want %q", p, table[p].Form, form)
		}
	}
}

func TestEngine_PastParticiple(t *testing.T) {
	tests := []struct {
		verb string
		want string
	}{
		{"hablar", "hablado"},
		{"comer", "comido"},
		{"vivir", "vivido"},
		{"caer", "caído"},
		{"hacer", "hecho"},
		{"decir", "dicho"},
		{"ver", "visto"},
		{"escribir", "escrito"},
		{"abrir", "abierto"},
	}

	e := newEngine(t)
	for _, tt := range tests {
		got, err := e.PastParticiple(tt.verb)
		if err != nil {
			t.Fatalf("PastParticiple(%s) error = %v", tt.verb, err)
		}
		if got != tt.want {
			t.Errorf("PastParticiple(%s) = %q, want %q", tt.verb, got, tt.want)
		}
	}
}

// Every builtin verb round-trips: conjugating and resubmitting the
// canonical form validates as correct, for all tenses and persons.
func TestEngine_Conjugate_RoundTrip(t *testing.T) {
	e := newEngine(t)

	for _, v := range e.Tables().Verbs() {
		for _, tense := range grammar.Tenses {
			for _, person := range grammar.Persons {
				r, err := e.Conjugate(v.Infinitive, tense, person)
				if err != nil {
					t.Fatalf("Conjugate(%s, %s, %s) error = %v", v.Infinitive, tense, person, err)
				}
				val, err := e.Validate(v.Infinitive, tense, person, r.Form)
				if err != nil {
					t.Fatalf("Validate(%s, %s, %s) error = %v", v.Infinitive, tense, person, err)
				}
				if !val.Correct {
					t.Errorf("round trip failed for (%s, %s, %s): %q classified as %s",
						v.Infinitive, tense, person, r.Form, val.Kind)
				}
			}
		}
	}
}
