package exercise_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/ojala-app/ojala/internal/conjugator"
	"github.com/ojala-app/ojala/internal/exercise"
	"github.com/ojala-app/ojala/internal/grammar"
)

func newGenerator(t *testing.T) *exercise.Generator {
	t.Helper()
	engine := conjugator.New(grammar.Builtin())
	return exercise.NewGenerator(engine, exercise.WithRand(rand.New(rand.NewSource(1))))
}

func TestGenerator_Generate(t *testing.T) {
	g := newGenerator(t)

	item, err := g.Generate(grammar.Beginner)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if item.ID == "" {
		t.Error("Generate() item has no ID")
	}
	if !strings.Contains(item.Prompt, "___") {
		t.Errorf("prompt %q has no blank", item.Prompt)
	}
	if !strings.Contains(item.Prompt, item.Verb) {
		t.Errorf("prompt %q does not cue the verb %q", item.Prompt, item.Verb)
	}
	if item.Trigger == "" {
		t.Error("Generate() item has no trigger phrase")
	}
	if item.Answer == "" {
		t.Error("Generate() item has no answer")
	}

	// The answer is the engine's canonical form.
	engine := conjugator.New(grammar.Builtin())
	want, err := engine.Conjugate(item.Verb, item.Tense, item.Person)
	if err != nil {
		t.Fatalf("Conjugate() error = %v", err)
	}
	if item.Answer != want.Form {
		t.Errorf("Answer = %q, want %q", item.Answer, want.Form)
	}
}

func TestGenerator_Generate_BeginnerConstraints(t *testing.T) {
	g := newGenerator(t)
	engine := conjugator.New(grammar.Builtin())

	for i := 0; i < 100; i++ {
		item, err := g.Generate(grammar.Beginner)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if item.Tense != grammar.PresentSubjunctive {
			t.Errorf("beginner item tense = %s, want present_subjunctive", item.Tense)
		}
		v, ok := engine.Tables().Verb(item.Verb)
		if !ok {
			t.Fatalf("generated unknown verb %q", item.Verb)
		}
		if v.Irregular || v.StemChange != grammar.StemNone || v.SpellingChange != grammar.SpellNone {
			t.Errorf("beginner item drew non-regular verb %q", item.Verb)
		}
	}
}

func TestGenerator_Generate_CategoryFilter(t *testing.T) {
	g := newGenerator(t)

	for i := 0; i < 20; i++ {
		item, err := g.Generate(grammar.Intermediate, grammar.Ojala)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if item.Category != grammar.Ojala {
			t.Errorf("Category = %s, want ojala", item.Category)
		}
		if !strings.Contains(strings.ToLower(item.Prompt), "ojalá") {
			t.Errorf("prompt %q does not carry the ojalá trigger", item.Prompt)
		}
	}
}

func TestGenerator_Generate_InvalidDifficulty(t *testing.T) {
	g := newGenerator(t)

	if _, err := g.Generate(grammar.Difficulty(99)); err == nil {
		t.Error("Generate() with invalid difficulty succeeded, want error")
	}
}

func TestGenerator_GenerateSet_NoDuplicates(t *testing.T) {
	g := newGenerator(t)

	items, err := g.GenerateSet(15, grammar.Advanced)
	if err != nil {
		t.Fatalf("GenerateSet() error = %v", err)
	}
	if len(items) == 0 {
		t.Fatal("GenerateSet() returned no items")
	}
	type combo struct {
		verb   string
		tense  grammar.Tense
		person grammar.Person
	}
	seen := make(map[combo]bool)
	for _, item := range items {
		c := combo{item.Verb, item.Tense, item.Person}
		if seen[c] {
			t.Errorf("duplicate combination %+v in set", c)
		}
		seen[c] = true
	}
}

func TestGenerator_GenerateSet_ShortWhenPoolExhausted(t *testing.T) {
	engine := conjugator.New(grammar.Builtin())
	// A single template pins person and category, so distinct items are
	// bounded by the beginner verb pool.
	tpl := exercise.Template{
		Category: grammar.Wishes,
		Prompt:   "Quiero que tú ___ ({verb}).",
		Person:   grammar.Tu,
		Trigger:  "quiero que",
		MinTier:  grammar.Beginner,
	}
	g := exercise.NewGenerator(engine,
		exercise.WithRand(rand.New(rand.NewSource(1))),
		exercise.WithTemplates([]exercise.Template{tpl}),
	)

	items, err := g.GenerateSet(500, grammar.Beginner, grammar.Wishes)
	if err != nil {
		t.Fatalf("GenerateSet() error = %v", err)
	}
	if len(items) >= 500 {
		t.Fatalf("GenerateSet() = %d items, want fewer than requested", len(items))
	}
}

func TestGenerator_BiasTowards(t *testing.T) {
	g := newGenerator(t)
	g.BiasTowards([]grammar.Class{grammar.ClassAR})

	arCount := 0
	const n = 300
	for i := 0; i < n; i++ {
		item, err := g.Generate(grammar.Beginner)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if strings.HasSuffix(item.Verb, "ar") {
			arCount++
		}
	}
	// 9 of 22 regular beginner verbs are -ar; double weighting pushes the
	// expected share well past one half.
	if arCount <= n/2 {
		t.Errorf("biased -ar share = %d/%d, want majority", arCount, n)
	}

	g.BiasTowards(nil)
}

func TestTemplate_Validate(t *testing.T) {
	valid := exercise.Template{
		Category: grammar.Wishes,
		Prompt:   "Quiero que tú ___ ({verb}).",
		Person:   grammar.Tu,
		Trigger:  "quiero que",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*exercise.Template)
	}{
		{"missing blank", func(t *exercise.Template) { t.Prompt = "Quiero que tú ({verb})." }},
		{"invalid category", func(t *exercise.Template) { t.Category = grammar.Category(99) }},
		{"invalid person", func(t *exercise.Template) { t.Person = grammar.Person(0) }},
		{"missing trigger", func(t *exercise.Template) { t.Trigger = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := valid
			tt.mutate(&tpl)
			if err := tpl.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestBuiltinTemplates(t *testing.T) {
	templates := exercise.BuiltinTemplates()

	perCategory := make(map[grammar.Category]int)
	for _, tpl := range templates {
		if err := tpl.Validate(); err != nil {
			t.Errorf("builtin template %q invalid: %v", tpl.Prompt, err)
		}
		perCategory[tpl.Category]++
	}
	for _, c := range grammar.Categories {
		if perCategory[c] == 0 {
			t.Errorf("no builtin template for category %s", c)
		}
	}
}
