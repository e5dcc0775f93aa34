package grammar

import (
	"encoding"
	"encoding/json"
	"fmt"
	"strings"
)

// Class is the conjugation class of a verb, determined by its infinitive
// ending (-ar, -er, -ir).
type Class int

const (
	ClassAR Class = iota + 1
	ClassER
	ClassIR
)

var (
	classNames  = [...]string{ClassAR: "-ar", ClassER: "-er", ClassIR: "-ir"}
	classByName = map[string]Class{"-ar": ClassAR, "-er": ClassER, "-ir": ClassIR}
)

// IsValid reports whether c is one of the three conjugation classes.
func (c Class) IsValid() bool {
	return c >= ClassAR && c <= ClassIR
}

// String returns "-ar", "-er" or "-ir". For invalid values it returns "Class(n)".
func (c Class) String() string {
	if c.IsValid() {
		return classNames[c]
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Class) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("grammar: invalid class: %d", int(c))
	}
	return []byte(classNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Class) UnmarshalText(text []byte) error {
	v, ok := classByName[string(text)]
	if !ok {
		return fmt.Errorf("grammar: invalid class: %q", text)
	}
	*c = v
	return nil
}

// ClassOf returns the conjugation class implied by an infinitive, or false
// if the string does not end in -ar/-er/-ir. Infinitives with an accented
// ending (oír, freír, reír) belong to the -ir class.
func ClassOf(infinitive string) (Class, bool) {
	switch {
	case strings.HasSuffix(infinitive, "ar"):
		return ClassAR, true
	case strings.HasSuffix(infinitive, "er"):
		return ClassER, true
	case strings.HasSuffix(infinitive, "ir"), strings.HasSuffix(infinitive, "ír"):
		return ClassIR, true
	}
	return 0, false
}

// Person is one of the six grammatical persons.
type Person int

const (
	Yo Person = iota + 1
	Tu
	El       // él/ella/usted
	Nosotros // nosotros/nosotras
	Vosotros // vosotros/vosotras
	Ellos    // ellos/ellas/ustedes
)

// Persons lists the six persons in canonical order.
var Persons = [6]Person{Yo, Tu, El, Nosotros, Vosotros, Ellos}

var (
	personNames = [...]string{
		Yo:       "yo",
		Tu:       "tú",
		El:       "él/ella/usted",
		Nosotros: "nosotros/nosotras",
		Vosotros: "vosotros/vosotras",
		Ellos:    "ellos/ellas/ustedes",
	}
	personByName = map[string]Person{
		"yo":                  Yo,
		"tú":                  Tu,
		"él/ella/usted":       El,
		"nosotros/nosotras":   Nosotros,
		"vosotros/vosotras":   Vosotros,
		"ellos/ellas/ustedes": Ellos,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Person(0)
	_ json.Marshaler           = Person(0)
	_ json.Unmarshaler         = (*Person)(nil)
	_ encoding.TextMarshaler   = Person(0)
	_ encoding.TextUnmarshaler = (*Person)(nil)
)

// IsValid reports whether p is a valid person (Yo through Ellos).
func (p Person) IsValid() bool {
	return p >= Yo && p <= Ellos
}

// Index returns the zero-based table index for the person.
func (p Person) Index() int {
	return int(p) - 1
}

// String returns the person identifier ("yo", "tú", ...).
// For invalid values it returns "Person(n)".
func (p Person) String() string {
	if p.IsValid() {
		return personNames[p]
	}
	return fmt.Sprintf("Person(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Person) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("grammar: invalid person: %d", int(p))
	}
	return []byte(personNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Person) UnmarshalText(text []byte) error {
	v, ok := personByName[string(text)]
	if !ok {
		return fmt.Errorf("grammar: invalid person: %q", text)
	}
	*p = v
	return nil
}

// MarshalJSON implements json.Marshaler. Person serializes as a JSON string.
func (p Person) MarshalJSON() ([]byte, error) {
	text, err := p.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (p *Person) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("grammar: invalid person: %s", data)
	}
	return p.UnmarshalText([]byte(s))
}

// Tense is one of the five supported subjunctive tenses.
type Tense int

const (
	PresentSubjunctive Tense = iota + 1
	ImperfectSubjunctiveRA
	ImperfectSubjunctiveSE
	PresentPerfectSubjunctive
	PluperfectSubjunctive
)

// Tenses lists the supported tenses in canonical order.
var Tenses = [5]Tense{
	PresentSubjunctive,
	ImperfectSubjunctiveRA,
	ImperfectSubjunctiveSE,
	PresentPerfectSubjunctive,
	PluperfectSubjunctive,
}

var (
	tenseNames = [...]string{
		PresentSubjunctive:        "present_subjunctive",
		ImperfectSubjunctiveRA:    "imperfect_subjunctive_ra",
		ImperfectSubjunctiveSE:    "imperfect_subjunctive_se",
		PresentPerfectSubjunctive: "present_perfect_subjunctive",
		PluperfectSubjunctive:     "pluperfect_subjunctive",
	}
	tenseByName = map[string]Tense{
		"present_subjunctive":         PresentSubjunctive,
		"imperfect_subjunctive_ra":    ImperfectSubjunctiveRA,
		"imperfect_subjunctive_se":    ImperfectSubjunctiveSE,
		"present_perfect_subjunctive": PresentPerfectSubjunctive,
		"pluperfect_subjunctive":      PluperfectSubjunctive,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Tense(0)
	_ json.Marshaler           = Tense(0)
	_ json.Unmarshaler         = (*Tense)(nil)
	_ encoding.TextMarshaler   = Tense(0)
	_ encoding.TextUnmarshaler = (*Tense)(nil)
)

// IsValid reports whether t is a supported tense.
func (t Tense) IsValid() bool {
	return t >= PresentSubjunctive && t <= PluperfectSubjunctive
}

// IsCompound reports whether t is formed with the auxiliary haber.
func (t Tense) IsCompound() bool {
	return t == PresentPerfectSubjunctive || t == PluperfectSubjunctive
}

// String returns the tense identifier ("present_subjunctive", ...).
// For invalid values it returns "Tense(n)".
func (t Tense) String() string {
	if t.IsValid() {
		return tenseNames[t]
	}
	return fmt.Sprintf("Tense(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t Tense) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("grammar: invalid tense: %d", int(t))
	}
	return []byte(tenseNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tense) UnmarshalText(text []byte) error {
	v, ok := tenseByName[string(text)]
	if !ok {
		return fmt.Errorf("grammar: invalid tense: %q", text)
	}
	*t = v
	return nil
}

// MarshalJSON implements json.Marshaler. Tense serializes as a JSON string.
func (t Tense) MarshalJSON() ([]byte, error) {
	text, err := t.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (t *Tense) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("grammar: invalid tense: %s", data)
	}
	return t.UnmarshalText([]byte(s))
}

// Difficulty is a learner difficulty tier.
type Difficulty int

const (
	Beginner Difficulty = iota + 1
	Intermediate
	Advanced
)

var (
	difficultyNames = [...]string{
		Beginner:     "beginner",
		Intermediate: "intermediate",
		Advanced:     "advanced",
	}
	difficultyByName = map[string]Difficulty{
		"beginner":     Beginner,
		"intermediate": Intermediate,
		"advanced":     Advanced,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Difficulty(0)
	_ json.Marshaler           = Difficulty(0)
	_ json.Unmarshaler         = (*Difficulty)(nil)
	_ encoding.TextMarshaler   = Difficulty(0)
	_ encoding.TextUnmarshaler = (*Difficulty)(nil)
)

// IsValid reports whether d is a valid difficulty tier.
func (d Difficulty) IsValid() bool {
	return d >= Beginner && d <= Advanced
}

// String returns the tier identifier ("beginner", ...).
// For invalid values it returns "Difficulty(n)".
func (d Difficulty) String() string {
	if d.IsValid() {
		return difficultyNames[d]
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("grammar: invalid difficulty: %d", int(d))
	}
	return []byte(difficultyNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	v, ok := difficultyByName[string(text)]
	if !ok {
		return fmt.Errorf("grammar: invalid difficulty: %q", text)
	}
	*d = v
	return nil
}

// MarshalJSON implements json.Marshaler. Difficulty serializes as a JSON string.
func (d Difficulty) MarshalJSON() ([]byte, error) {
	text, err := d.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("grammar: invalid difficulty: %s", data)
	}
	return d.UnmarshalText([]byte(s))
}

// Category is a WEIRDO semantic category that triggers the subjunctive.
type Category int

const (
	Wishes Category = iota + 1
	Emotions
	ImpersonalExpressions
	Recommendations
	DoubtDenial
	Ojala
)

// Categories lists the six WEIRDO categories in mnemonic order.
var Categories = [6]Category{
	Wishes, Emotions, ImpersonalExpressions, Recommendations, DoubtDenial, Ojala,
}

var (
	categoryNames = [...]string{
		Wishes:                "Wishes",
		Emotions:              "Emotions",
		ImpersonalExpressions: "Impersonal_Expressions",
		Recommendations:       "Recommendations",
		DoubtDenial:           "Doubt_Denial",
		Ojala:                 "Ojalá",
	}
	categoryByName = map[string]Category{
		"Wishes":                 Wishes,
		"Emotions":               Emotions,
		"Impersonal_Expressions": ImpersonalExpressions,
		"Recommendations":        Recommendations,
		"Doubt_Denial":           DoubtDenial,
		"Ojalá":                  Ojala,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Category(0)
	_ json.Marshaler           = Category(0)
	_ json.Unmarshaler         = (*Category)(nil)
	_ encoding.TextMarshaler   = Category(0)
	_ encoding.TextUnmarshaler = (*Category)(nil)
)

// IsValid reports whether c is a valid WEIRDO category.
func (c Category) IsValid() bool {
	return c >= Wishes && c <= Ojala
}

// String returns the category identifier ("Wishes", ...).
// For invalid values it returns "Category(n)".
func (c Category) String() string {
	if c.IsValid() {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("grammar: invalid category: %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	v, ok := categoryByName[string(text)]
	if !ok {
		return fmt.Errorf("grammar: invalid category: %q", text)
	}
	*c = v
	return nil
}

// MarshalJSON implements json.Marshaler. Category serializes as a JSON string.
func (c Category) MarshalJSON() ([]byte, error) {
	text, err := c.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("grammar: invalid category: %s", data)
	}
	return c.UnmarshalText([]byte(s))
}

// StemChange is a vowel alternation pattern in the verb stem.
type StemChange int

const (
	StemNone StemChange = iota
	StemEIE             // e→ie (pensar → piense)
	StemOUE             // o→ue (contar → cuente)
	StemEI              // e→i  (pedir → pida)
)

var (
	stemChangeNames = [...]string{
		StemNone: "none",
		StemEIE:  "e>ie",
		StemOUE:  "o>ue",
		StemEI:   "e>i",
	}
	stemChangeByName = map[string]StemChange{
		"none": StemNone, "": StemNone,
		"e>ie": StemEIE,
		"o>ue": StemOUE,
		"e>i":  StemEI,
	}
)

// String returns the pattern identifier ("none", "e>ie", "o>ue", "e>i").
func (s StemChange) String() string {
	if s >= StemNone && s <= StemEI {
		return stemChangeNames[s]
	}
	return fmt.Sprintf("StemChange(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s StemChange) MarshalText() ([]byte, error) {
	if s < StemNone || s > StemEI {
		return nil, fmt.Errorf("grammar: invalid stem change: %d", int(s))
	}
	return []byte(stemChangeNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *StemChange) UnmarshalText(text []byte) error {
	v, ok := stemChangeByName[string(text)]
	if !ok {
		return fmt.Errorf("grammar: invalid stem change: %q", text)
	}
	*s = v
	return nil
}

// SpellingChange is an orthographic consonant adjustment pattern.
type SpellingChange int

const (
	SpellNone SpellingChange = iota
	SpellGGU                 // g→gu (llegar → llegue)
	SpellCQU                 // c→qu (buscar → busque)
	SpellZC                  // z→c  (cruzar → cruce)
)

var (
	spellingChangeNames = [...]string{
		SpellNone: "none",
		SpellGGU:  "g>gu",
		SpellCQU:  "c>qu",
		SpellZC:   "z>c",
	}
	spellingChangeByName = map[string]SpellingChange{
		"none": SpellNone, "": SpellNone,
		"g>gu": SpellGGU,
		"c>qu": SpellCQU,
		"z>c":  SpellZC,
	}
)

// String returns the pattern identifier ("none", "g>gu", "c>qu", "z>c").
func (s SpellingChange) String() string {
	if s >= SpellNone && s <= SpellZC {
		return spellingChangeNames[s]
	}
	return fmt.Sprintf("SpellingChange(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s SpellingChange) MarshalText() ([]byte, error) {
	if s < SpellNone || s > SpellZC {
		return nil, fmt.Errorf("grammar: invalid spelling change: %d", int(s))
	}
	return []byte(spellingChangeNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SpellingChange) UnmarshalText(text []byte) error {
	v, ok := spellingChangeByName[string(text)]
	if !ok {
		return fmt.Errorf("grammar: invalid spelling change: %q", text)
	}
	*s = v
	return nil
}
