package grammar

import (
	"fmt"
	"strings"
)

// Verb describes a single verb in the dataset. Verbs are immutable once the
// tables are built.
type Verb struct {
	Infinitive     string         `json:"infinitive" yaml:"infinitive"`
	Class          Class          `json:"class" yaml:"class"`
	Irregular      bool           `json:"irregular,omitempty" yaml:"irregular,omitempty"`
	StemChange     StemChange     `json:"stem_change,omitempty" yaml:"stem_change,omitempty"`
	SpellingChange SpellingChange `json:"spelling_change,omitempty" yaml:"spelling_change,omitempty"`
	Gloss          string         `json:"gloss,omitempty" yaml:"gloss,omitempty"`
	Tier           Difficulty     `json:"tier" yaml:"tier"`

	// PresentYo overrides the first-person-singular present indicative for
	// verbs with an irregular yo form that are otherwise regular in the
	// subjunctive derivation (conocer → conozco).
	PresentYo string `json:"present_yo,omitempty" yaml:"present_yo,omitempty"`

	// PreteriteThirdPlural overrides the third-person-plural preterite used
	// as the imperfect-subjunctive stem source (traducir → tradujeron).
	PreteriteThirdPlural string `json:"preterite_third_plural,omitempty" yaml:"preterite_third_plural,omitempty"`
}

// Stem returns the infinitive minus its class ending. The accented -ír
// ending (freír → fre) is two runes but three bytes, so the ending is
// trimmed by suffix rather than a fixed byte count.
func (v Verb) Stem() string {
	for _, ending := range [...]string{"ar", "er", "ir", "ír"} {
		if strings.HasSuffix(v.Infinitive, ending) {
			return strings.TrimSuffix(v.Infinitive, ending)
		}
	}
	return v.Infinitive
}

// Validate checks structural integrity of a verb record.
func (v Verb) Validate() error {
	if v.Infinitive == "" {
		return fmt.Errorf("grammar: verb missing infinitive")
	}
	cls, ok := ClassOf(v.Infinitive)
	if !ok {
		return fmt.Errorf("grammar: verb %q does not end in -ar/-er/-ir", v.Infinitive)
	}
	if v.Class != 0 && v.Class != cls {
		return fmt.Errorf("grammar: verb %q declares class %s, infinitive implies %s", v.Infinitive, v.Class, cls)
	}
	if !v.Tier.IsValid() {
		return fmt.Errorf("grammar: verb %q has invalid tier", v.Infinitive)
	}
	return nil
}

// IrregularForms holds the full lookup entry for one of the fully irregular
// verbs. Forms are indexed by Person.Index().
type IrregularForms struct {
	PresentSubjunctive   [6]string `yaml:"present_subjunctive"`
	PresentIndicative    [6]string `yaml:"present_indicative"`
	PreteriteThirdPlural string    `yaml:"preterite_third_plural"`

	// ImperfectIndicative is only set for the three verbs irregular in that
	// tense (ser, ir, ver); the zero value means "derive regularly".
	ImperfectIndicative [6]string `yaml:"imperfect_indicative,omitempty"`
}
