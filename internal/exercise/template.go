package exercise

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ojala-app/ojala/internal/grammar"
)

// Template is a fill-in-the-blank sentence frame. The prompt contains a
// "___" blank and a "{verb}" placeholder that receives the infinitive cue.
type Template struct {
	Category grammar.Category   `yaml:"category"`
	Prompt   string             `yaml:"prompt"`
	Person   grammar.Person     `yaml:"person"`
	Trigger  string             `yaml:"trigger"`
	Hint     string             `yaml:"hint,omitempty"`
	MinTier  grammar.Difficulty `yaml:"min_tier,omitempty"`

	// Tenses restricts the template to specific tenses; empty means any
	// tense allowed at the requested difficulty.
	Tenses []grammar.Tense `yaml:"tenses,omitempty"`
}

// Fill renders the prompt for a verb.
func (t Template) Fill(infinitive string) string {
	return strings.ReplaceAll(t.Prompt, "{verb}", infinitive)
}

// allowsTense reports whether the template accepts the tense.
func (t Template) allowsTense(tense grammar.Tense) bool {
	if len(t.Tenses) == 0 {
		return true
	}
	for _, allowed := range t.Tenses {
		if allowed == tense {
			return true
		}
	}
	return false
}

// Validate checks structural integrity of a template record.
func (t Template) Validate() error {
	if !t.Category.IsValid() {
		return fmt.Errorf("exercise: template %q has invalid category", t.Prompt)
	}
	if !strings.Contains(t.Prompt, "___") {
		return fmt.Errorf("exercise: template %q has no blank", t.Prompt)
	}
	if !t.Person.IsValid() {
		return fmt.Errorf("exercise: template %q has invalid person", t.Prompt)
	}
	if t.Trigger == "" {
		return fmt.Errorf("exercise: template %q has no trigger phrase", t.Prompt)
	}
	return nil
}

// templateFile is the on-disk shape of a template dataset YAML file.
type templateFile struct {
	Templates []Template `yaml:"templates"`
}

// LoadTemplatesDir reads extra templates from every *.yaml/*.yml file under
// rootDir, appended to the given base set.
func LoadTemplatesDir(base []Template, rootDir string) ([]Template, error) {
	out := append([]Template(nil), base...)

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var file templateFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			slog.Warn("skipping invalid template YAML", "path", path, "error", err)
			return nil
		}
		for _, tpl := range file.Templates {
			if tpl.MinTier == 0 {
				tpl.MinTier = grammar.Beginner
			}
			if err := tpl.Validate(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			out = append(out, tpl)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	slog.Info("exercise templates loaded", "dir", rootDir, "templates", len(out))
	return out, nil
}

// BuiltinTemplates returns the embedded sentence frames, several per WEIRDO
// category across persons and tiers.
func BuiltinTemplates() []Template {
	return []Template{
		// Wishes.
		{Category: grammar.Wishes, Prompt: "Quiero que tú ___ ({verb}) conmigo.", Person: grammar.Tu, Trigger: "quiero que", MinTier: grammar.Beginner, Hint: "Wanting someone else to act calls for the subjunctive."},
		{Category: grammar.Wishes, Prompt: "Espero que ellos ___ ({verb}) pronto.", Person: grammar.Ellos, Trigger: "espero que", MinTier: grammar.Beginner},
		{Category: grammar.Wishes, Prompt: "Deseamos que usted ___ ({verb}) con nosotros.", Person: grammar.El, Trigger: "deseamos que", MinTier: grammar.Intermediate},
		{Category: grammar.Wishes, Prompt: "Mi madre prefiere que yo ___ ({verb}) temprano.", Person: grammar.Yo, Trigger: "prefiere que", MinTier: grammar.Beginner},

		// Emotions.
		{Category: grammar.Emotions, Prompt: "Me alegra que vosotros ___ ({verb}) aquí.", Person: grammar.Vosotros, Trigger: "me alegra que", MinTier: grammar.Intermediate},
		{Category: grammar.Emotions, Prompt: "Siento que ella ___ ({verb}) tan lejos.", Person: grammar.El, Trigger: "siento que", MinTier: grammar.Beginner},
		{Category: grammar.Emotions, Prompt: "Nos sorprende que tú ___ ({verb}) eso.", Person: grammar.Tu, Trigger: "nos sorprende que", MinTier: grammar.Intermediate},
		{Category: grammar.Emotions, Prompt: "Temo que nosotros ___ ({verb}) el tren.", Person: grammar.Nosotros, Trigger: "temo que", MinTier: grammar.Beginner},

		// Impersonal expressions.
		{Category: grammar.ImpersonalExpressions, Prompt: "Es importante que yo ___ ({verb}) cada día.", Person: grammar.Yo, Trigger: "es importante que", MinTier: grammar.Beginner},
		{Category: grammar.ImpersonalExpressions, Prompt: "Es necesario que ellos ___ ({verb}) la verdad.", Person: grammar.Ellos, Trigger: "es necesario que", MinTier: grammar.Beginner},
		{Category: grammar.ImpersonalExpressions, Prompt: "Es posible que él ___ ({verb}) mañana.", Person: grammar.El, Trigger: "es posible que", MinTier: grammar.Intermediate},
		{Category: grammar.ImpersonalExpressions, Prompt: "Era una lástima que tú ___ ({verb}) tan tarde.", Person: grammar.Tu, Trigger: "era una lástima que", MinTier: grammar.Intermediate, Tenses: []grammar.Tense{grammar.ImperfectSubjunctiveRA, grammar.ImperfectSubjunctiveSE, grammar.PluperfectSubjunctive}},

		// Recommendations.
		{Category: grammar.Recommendations, Prompt: "Te recomiendo que ___ ({verb}) más agua.", Person: grammar.Tu, Trigger: "te recomiendo que", MinTier: grammar.Beginner},
		{Category: grammar.Recommendations, Prompt: "El médico sugiere que nosotros ___ ({verb}) despacio.", Person: grammar.Nosotros, Trigger: "sugiere que", MinTier: grammar.Beginner},
		{Category: grammar.Recommendations, Prompt: "Aconsejan que usted ___ ({verb}) antes de firmar.", Person: grammar.El, Trigger: "aconsejan que", MinTier: grammar.Intermediate},

		// Doubt / denial.
		{Category: grammar.DoubtDenial, Prompt: "Dudo que ellos ___ ({verb}) a tiempo.", Person: grammar.Ellos, Trigger: "dudo que", MinTier: grammar.Beginner},
		{Category: grammar.DoubtDenial, Prompt: "No creo que tú ___ ({verb}) eso en serio.", Person: grammar.Tu, Trigger: "no creo que", MinTier: grammar.Beginner},
		{Category: grammar.DoubtDenial, Prompt: "Niegan que yo ___ ({verb}) el documento.", Person: grammar.Yo, Trigger: "niegan que", MinTier: grammar.Intermediate},
		{Category: grammar.DoubtDenial, Prompt: "No era cierto que nosotros ___ ({verb}) la respuesta.", Person: grammar.Nosotros, Trigger: "no era cierto que", MinTier: grammar.Advanced, Tenses: []grammar.Tense{grammar.ImperfectSubjunctiveRA, grammar.ImperfectSubjunctiveSE, grammar.PluperfectSubjunctive}},

		// Ojalá.
		{Category: grammar.Ojala, Prompt: "Ojalá que tú ___ ({verb}) la beca.", Person: grammar.Tu, Trigger: "ojalá", MinTier: grammar.Beginner},
		{Category: grammar.Ojala, Prompt: "Ojalá ellos ___ ({verb}) sin problemas.", Person: grammar.Ellos, Trigger: "ojalá", MinTier: grammar.Beginner},
		{Category: grammar.Ojala, Prompt: "Ojalá que nosotros ___ ({verb}) más tiempo.", Person: grammar.Nosotros, Trigger: "ojalá", MinTier: grammar.Intermediate},
	}
}
