package conjugator

import (
	"encoding"
	"encoding/json"
	"fmt"

	"github.com/ojala-app/ojala/internal/grammar"
)

// Provenance records which rule produced a conjugated form.
type Provenance int

const (
	ProvenanceIrregular Provenance = iota + 1 // full irregular lookup
	ProvenanceCompound                        // haber auxiliary + participle
	ProvenanceRegular                         // regular endings, no adjustment
	ProvenanceStemChanged
	ProvenanceSpellingChanged
)

var (
	provenanceNames = [...]string{
		ProvenanceIrregular:       "irregular-lookup",
		ProvenanceCompound:        "compound",
		ProvenanceRegular:         "regular-rule",
		ProvenanceStemChanged:     "stem-changed",
		ProvenanceSpellingChanged: "spelling-changed",
	}
	provenanceByName = map[string]Provenance{
		"irregular-lookup": ProvenanceIrregular,
		"compound":         ProvenanceCompound,
		"regular-rule":     ProvenanceRegular,
		"stem-changed":     ProvenanceStemChanged,
		"spelling-changed": ProvenanceSpellingChanged,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Provenance(0)
	_ encoding.TextMarshaler   = Provenance(0)
	_ encoding.TextUnmarshaler = (*Provenance)(nil)
)

// IsValid reports whether p is a known provenance tag.
func (p Provenance) IsValid() bool {
	return p >= ProvenanceIrregular && p <= ProvenanceSpellingChanged
}

// String returns the provenance tag ("irregular-lookup", ...).
// For invalid values it returns "Provenance(n)".
func (p Provenance) String() string {
	if p.IsValid() {
		return provenanceNames[p]
	}
	return fmt.Sprintf("Provenance(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Provenance) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("conjugator: invalid provenance: %d", int(p))
	}
	return []byte(provenanceNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Provenance) UnmarshalText(text []byte) error {
	v, ok := provenanceByName[string(text)]
	if !ok {
		return fmt.Errorf("conjugator: invalid provenance: %q", text)
	}
	*p = v
	return nil
}

// MarshalJSON implements json.Marshaler. Provenance serializes as a JSON string.
func (p Provenance) MarshalJSON() ([]byte, error) {
	text, err := p.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (p *Provenance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("conjugator: invalid provenance: %s", data)
	}
	return p.UnmarshalText([]byte(s))
}

// Result is a single conjugated form. Results are pure values: repeated
// calls with the same arguments yield identical results.
type Result struct {
	Verb       string         `json:"verb"`
	Tense      grammar.Tense  `json:"tense"`
	Person     grammar.Person `json:"person"`
	Form       string         `json:"form"`
	Provenance Provenance     `json:"provenance"`

	// Alternates are equally acceptable surface forms: the sibling -ra/-se
	// variant for the imperfect and pluperfect tenses, and the
	// diacritic-stripped spelling when it differs from Form.
	Alternates []string `json:"alternates,omitempty"`

	// stem is the derivation stem the form was built from, used by the
	// error classifier to recognize correct-stem/wrong-ending answers.
	stem string
}

// ErrorKind classifies why a submitted answer is wrong.
type ErrorKind string

const (
	KindMoodConfusion       ErrorKind = "mood_confusion"
	KindWrongPerson         ErrorKind = "wrong_person"
	KindWrongTense          ErrorKind = "wrong_tense"
	KindStemChangeError     ErrorKind = "stem_change_error"
	KindSpellingChangeError ErrorKind = "spelling_change_error"
	KindWrongEnding         ErrorKind = "wrong_ending"
	KindSpellingError       ErrorKind = "spelling_error"
	KindUnrecognized        ErrorKind = "unrecognized"
)

// Validation is the outcome of checking a learner's submitted form.
type Validation struct {
	Correct   bool           `json:"correct"`
	Verb      string         `json:"verb"`
	Tense     grammar.Tense  `json:"tense"`
	Person    grammar.Person `json:"person"`
	Expected  string         `json:"expected"`
	Submitted string         `json:"submitted"`

	// Accepted lists every form counted as correct: the canonical form, its
	// alternates, and diacritic-stripped spellings.
	Accepted []string `json:"accepted"`

	// Kind is set only when Correct is false.
	Kind ErrorKind `json:"error_kind,omitempty"`
}
