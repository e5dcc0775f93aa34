// Package exercise builds fill-in-the-blank subjunctive drills from the
// grammar tables, sentence templates and the conjugation engine.
package exercise

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/ojala-app/ojala/internal/conjugator"
	"github.com/ojala-app/ojala/internal/grammar"
)

// ErrNoVerbsAvailable is returned when the verb pool filtered by the
// requested constraints is empty.
var ErrNoVerbsAvailable = errors.New("exercise: no verbs available for constraints")

// Item is a single generated exercise. Items are created fresh per request
// and hold no state; the answer is computed by the engine at generation
// time so the engine stays the single source of truth.
type Item struct {
	ID         string             `json:"id"`
	Prompt     string             `json:"prompt"`
	Verb       string             `json:"verb"`
	Tense      grammar.Tense      `json:"tense"`
	Person     grammar.Person     `json:"person"`
	Category   grammar.Category   `json:"category"`
	Difficulty grammar.Difficulty `json:"difficulty"`
	Trigger    string             `json:"trigger"`
	Answer     string             `json:"answer"`
	Alternates []string           `json:"alternates,omitempty"`
	Hint       string             `json:"hint,omitempty"`
}

// key identifies an item for duplicate suppression within a set.
type key struct {
	verb   string
	tense  grammar.Tense
	person grammar.Person
}

// Generator produces exercise items. It is not safe for concurrent use; the
// embedded rand source is unsynchronized.
type Generator struct {
	engine    *conjugator.Engine
	templates []Template
	rng       *rand.Rand

	// weakClasses biases verb selection toward classes with recurring
	// errors; see BiasTowards.
	weakClasses map[grammar.Class]bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source, for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithTemplates replaces the builtin template set.
func WithTemplates(templates []Template) Option {
	return func(g *Generator) { g.templates = templates }
}

// NewGenerator creates a Generator over the engine's tables.
func NewGenerator(engine *conjugator.Engine, opts ...Option) *Generator {
	g := &Generator{
		engine:    engine,
		templates: BuiltinTemplates(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BiasTowards doubles the selection weight of the given verb classes,
// typically those surfaced by feedback pattern detection. Passing an empty
// slice clears the bias.
func (g *Generator) BiasTowards(classes []grammar.Class) {
	if len(classes) == 0 {
		g.weakClasses = nil
		return
	}
	g.weakClasses = make(map[grammar.Class]bool, len(classes))
	for _, c := range classes {
		g.weakClasses[c] = true
	}
}

// Generate builds one exercise item at the given difficulty. When categories
// are supplied, the WEIRDO category is drawn from that subset; otherwise
// from all six.
func (g *Generator) Generate(difficulty grammar.Difficulty, categories ...grammar.Category) (Item, error) {
	if !difficulty.IsValid() {
		return Item{}, fmt.Errorf("exercise: invalid difficulty: %d", int(difficulty))
	}
	allowed := categories
	if len(allowed) == 0 {
		allowed = grammar.Categories[:]
	}
	category := allowed[g.rng.Intn(len(allowed))]

	tense := g.pickTense(difficulty)

	tpl, ok := g.pickTemplate(category, difficulty, tense)
	if !ok {
		return Item{}, fmt.Errorf("%w: category %s at %s", ErrNoVerbsAvailable, category, difficulty)
	}

	verbs := g.verbPool(difficulty)
	if len(verbs) == 0 {
		return Item{}, fmt.Errorf("%w: %s", ErrNoVerbsAvailable, difficulty)
	}
	verb := verbs[g.rng.Intn(len(verbs))]

	res, err := g.engine.Conjugate(verb.Infinitive, tense, tpl.Person)
	if err != nil {
		return Item{}, fmt.Errorf("conjugating %s: %w", verb.Infinitive, err)
	}

	return Item{
		ID:         ksuid.New().String(),
		Prompt:     tpl.Fill(verb.Infinitive),
		Verb:       verb.Infinitive,
		Tense:      tense,
		Person:     tpl.Person,
		Category:   category,
		Difficulty: difficulty,
		Trigger:    tpl.Trigger,
		Answer:     res.Form,
		Alternates: res.Alternates,
		Hint:       tpl.Hint,
	}, nil
}

// GenerateSet builds up to n items without repeating a (verb, tense, person)
// combination within the set. Each call reshuffles; sets are finite and not
// restartable. When the pool cannot supply n distinct items the set is
// returned short rather than padded with duplicates.
func (g *Generator) GenerateSet(n int, difficulty grammar.Difficulty, categories ...grammar.Category) ([]Item, error) {
	seen := make(map[key]bool, n)
	items := make([]Item, 0, n)

	// The retry budget bounds the walk when constraints leave few distinct
	// combinations.
	for attempts := 0; len(items) < n && attempts < n*20; attempts++ {
		item, err := g.Generate(difficulty, categories...)
		if err != nil {
			if errors.Is(err, ErrNoVerbsAvailable) && len(items) > 0 {
				break
			}
			return nil, err
		}
		k := key{verb: item.Verb, tense: item.Tense, person: item.Person}
		if seen[k] {
			continue
		}
		seen[k] = true
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoVerbsAvailable, difficulty)
	}
	return items, nil
}

// verbPool filters the dataset by difficulty: beginners drill regular verbs
// only; intermediate adds the irregular lookups and stem-changers; advanced
// opens the full pool including spelling-changers.
func (g *Generator) verbPool(difficulty grammar.Difficulty) []grammar.Verb {
	var pool []grammar.Verb
	for _, v := range g.engine.Tables().Verbs() {
		if v.Tier > difficulty {
			continue
		}
		if difficulty == grammar.Beginner && (v.Irregular || v.StemChange != grammar.StemNone || v.SpellingChange != grammar.SpellNone) {
			continue
		}
		pool = append(pool, v)
		if g.weakClasses[v.Class] {
			pool = append(pool, v)
		}
	}
	return pool
}

// pickTense selects a tense consistent with the difficulty: the compound
// tenses unlock at advanced, the imperfect at intermediate.
func (g *Generator) pickTense(difficulty grammar.Difficulty) grammar.Tense {
	var tenses []grammar.Tense
	switch difficulty {
	case grammar.Beginner:
		tenses = []grammar.Tense{grammar.PresentSubjunctive}
	case grammar.Intermediate:
		tenses = []grammar.Tense{
			grammar.PresentSubjunctive,
			grammar.ImperfectSubjunctiveRA,
			grammar.ImperfectSubjunctiveSE,
		}
	default:
		tenses = grammar.Tenses[:]
	}
	return tenses[g.rng.Intn(len(tenses))]
}

// pickTemplate draws a template for the category compatible with the
// difficulty and tense.
func (g *Generator) pickTemplate(category grammar.Category, difficulty grammar.Difficulty, tense grammar.Tense) (Template, bool) {
	var candidates []Template
	for _, tpl := range g.templates {
		if tpl.Category != category {
			continue
		}
		if tpl.MinTier > difficulty {
			continue
		}
		if !tpl.allowsTense(tense) {
			continue
		}
		candidates = append(candidates, tpl)
	}
	if len(candidates) == 0 {
		return Template{}, false
	}
	return candidates[g.rng.Intn(len(candidates))], true
}
