// Package feedback turns validation results into learner-facing
// explanations and mines the attempt history for recurring weaknesses.
package feedback

import (
	"fmt"
	"strings"

	"github.com/ojala-app/ojala/internal/conjugator"
	"github.com/ojala-app/ojala/internal/grammar"
)

// Context carries the exercise surroundings of an attempt: the trigger
// phrase that demanded the subjunctive and its WEIRDO category.
type Context struct {
	Category grammar.Category
	Trigger  string
	Verb     grammar.Verb
}

// Feedback is the remediation record for one incorrect (or correct)
// attempt. The same validation and context always produce the same text.
type Feedback struct {
	Message     string   `json:"message"`
	Explanation string   `json:"explanation"`
	Suggestions []string `json:"suggestions,omitempty"`
	NextSteps   []string `json:"next_steps,omitempty"`
}

// categoryExplanations names the subjunctive trigger behind each WEIRDO
// category.
var categoryExplanations = map[grammar.Category]string{
	grammar.Wishes:                "expressions of wishing or wanting (querer que, desear que) take the subjunctive in the subordinate clause",
	grammar.Emotions:              "expressions of emotion (alegrarse de que, temer que) take the subjunctive in the subordinate clause",
	grammar.ImpersonalExpressions: "impersonal expressions of judgment (es importante que, es necesario que) take the subjunctive",
	grammar.Recommendations:       "verbs of recommendation and request (recomendar que, sugerir que) take the subjunctive",
	grammar.DoubtDenial:           "expressions of doubt or denial (dudar que, no creer que) take the subjunctive",
	grammar.Ojala:                 "ojalá always takes the subjunctive, whatever follows it",
}

var stemChangeRules = map[grammar.StemChange]string{
	grammar.StemEIE: "e changes to ie in the stressed stem (all persons except nosotros and vosotros)",
	grammar.StemOUE: "o changes to ue in the stressed stem (all persons except nosotros and vosotros)",
	grammar.StemEI:  "e changes to i in the stem, in every person",
}

var spellingChangeRules = map[grammar.SpellingChange]string{
	grammar.SpellGGU: "g becomes gu before e to keep the hard g sound",
	grammar.SpellCQU: "c becomes qu before e to keep the hard c sound",
	grammar.SpellZC:  "z becomes c before e",
}

// Generate builds the feedback for one validated attempt. Correct answers
// get a short confirmation; each error kind maps to a fixed explanation
// template filled with the attempt's verb, person and expected form.
func Generate(v conjugator.Validation, ctx Context) Feedback {
	if v.Correct {
		return Feedback{
			Message:     "¡Correcto!",
			Explanation: fmt.Sprintf("%q is the %s form of %s in the %s.", v.Expected, v.Person, v.Verb, tenseLabel(v.Tense)),
		}
	}

	fb := Feedback{
		Message: fmt.Sprintf("Not quite. The correct form is %q.", v.Expected),
	}

	switch v.Kind {
	case conjugator.KindMoodConfusion:
		reason, ok := categoryExplanations[ctx.Category]
		if !ok {
			reason = "the trigger in this sentence requires the subjunctive mood"
		}
		fb.Explanation = fmt.Sprintf("You used the indicative, but %s.", reason)
		if ctx.Trigger != "" {
			fb.Explanation = fmt.Sprintf("You used the indicative, but %q signals that %s.", ctx.Trigger, reason)
		}
		fb.Suggestions = []string{
			"Look for the trigger phrase before the que clause.",
			fmt.Sprintf("Here the subjunctive form is %q, not the indicative %q.", v.Expected, v.Submitted),
		}
		fb.NextSteps = []string{"Review the WEIRDO trigger categories."}

	case conjugator.KindWrongPerson:
		fb.Explanation = fmt.Sprintf("%q is a form of %s, but not the one for %s.", v.Submitted, v.Verb, v.Person)
		fb.Suggestions = []string{fmt.Sprintf("Match the verb ending to the subject: %s → %q.", v.Person, v.Expected)}

	case conjugator.KindWrongTense:
		fb.Explanation = fmt.Sprintf("%q is subjunctive, but in the wrong tense. This sentence needs the %s.", v.Submitted, tenseLabel(v.Tense))
		fb.NextSteps = []string{fmt.Sprintf("Practice the %s of %s across all persons.", tenseLabel(v.Tense), v.Verb)}

	case conjugator.KindStemChangeError:
		rule := stemChangeRules[ctx.Verb.StemChange]
		if rule == "" {
			rule = "this verb changes its stem vowel in the subjunctive"
		}
		fb.Explanation = fmt.Sprintf("%s is a stem-changing verb: %s.", v.Verb, rule)
		fb.Suggestions = []string{fmt.Sprintf("Apply the %s change: %q.", ctx.Verb.StemChange, v.Expected)}

	case conjugator.KindSpellingChangeError:
		rule := spellingChangeRules[ctx.Verb.SpellingChange]
		if rule == "" {
			rule = "this verb adjusts its spelling before the subjunctive ending"
		}
		fb.Explanation = fmt.Sprintf("%s needs a spelling change here: %s.", v.Verb, rule)
		fb.Suggestions = []string{fmt.Sprintf("Write %q, not %q.", v.Expected, v.Submitted)}

	case conjugator.KindWrongEnding:
		fb.Explanation = fmt.Sprintf("The stem is right but the ending is not. %s verbs take %s endings in the %s.", classLabel(ctx.Verb.Class), oppositeEndings(ctx.Verb.Class), tenseLabel(v.Tense))
		fb.Suggestions = []string{fmt.Sprintf("For %s the ending gives %q.", v.Person, v.Expected)}

	case conjugator.KindSpellingError:
		fb.Explanation = fmt.Sprintf("Almost: %q is one or two letters away from %q. Check the accents and vowels.", v.Submitted, v.Expected)

	default:
		fb.Explanation = fmt.Sprintf("The expected form of %s for %s in the %s is %q.", v.Verb, v.Person, tenseLabel(v.Tense), v.Expected)
		fb.NextSteps = []string{fmt.Sprintf("Review the full conjugation table of %s.", v.Verb)}
	}

	return fb
}

// tenseLabel renders a tense for prose, "present subjunctive" rather than
// the wire name.
func tenseLabel(t grammar.Tense) string {
	s := strings.ReplaceAll(t.String(), "_", " ")
	s = strings.TrimSuffix(s, " ra")
	s = strings.TrimSuffix(s, " se")
	return s
}

func classLabel(c grammar.Class) string {
	if !c.IsValid() {
		return "regular"
	}
	return c.String()
}

// oppositeEndings describes the vowel-swap rule for regular subjunctive
// endings.
func oppositeEndings(c grammar.Class) string {
	if c == grammar.ClassAR {
		return "-e"
	}
	return "-a"
}
