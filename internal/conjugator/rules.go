package conjugator

import (
	"strings"

	"github.com/ojala-app/ojala/internal/grammar"
)

// Person-indexed endings. Order: yo, tú, él, nosotros, vosotros, ellos.
var (
	presentSubjEndingsAR = [6]string{"e", "es", "e", "emos", "éis", "en"}
	presentSubjEndingsER = [6]string{"a", "as", "a", "amos", "áis", "an"}

	imperfectRAEndings = [6]string{"ra", "ras", "ra", "ramos", "rais", "ran"}
	imperfectSEEndings = [6]string{"se", "ses", "se", "semos", "seis", "sen"}
)

var accentedVowel = map[rune]rune{'a': 'á', 'e': 'é', 'i': 'í', 'o': 'ó', 'u': 'ú'}

// presentStem derives the present-subjunctive stem: the first-person-singular
// present indicative with its final vowel stripped. For verbs without an
// irregular yo form this equals the infinitive stem.
func presentStem(v grammar.Verb) string {
	if v.PresentYo != "" {
		r := []rune(v.PresentYo)
		return string(r[:len(r)-1])
	}
	return v.Stem()
}

// stemChangeApplies reports whether the verb's stem-change pattern applies to
// the given person in the present subjunctive. e>ie and o>ue skip the
// nosotros/vosotros forms; e>i in -ir verbs applies throughout.
func stemChangeApplies(v grammar.Verb, p grammar.Person) bool {
	if v.StemChange == grammar.StemNone {
		return false
	}
	if v.StemChange == grammar.StemEI && v.Class == grammar.ClassIR {
		return true
	}
	return p != grammar.Nosotros && p != grammar.Vosotros
}

// applyStemChange rewrites the last occurrence of the pattern's source vowel.
func applyStemChange(stem string, sc grammar.StemChange) string {
	var from, to string
	switch sc {
	case grammar.StemEIE:
		from, to = "e", "ie"
	case grammar.StemOUE:
		from, to = "o", "ue"
	case grammar.StemEI:
		from, to = "e", "i"
	default:
		return stem
	}
	i := strings.LastIndex(stem, from)
	if i < 0 {
		return stem
	}
	return stem[:i] + to + stem[i+len(from):]
}

// applySpellingChange adjusts a stem-final consonant so pronunciation
// survives a following e: g→gu, c→qu, z→c.
func applySpellingChange(stem string, sc grammar.SpellingChange) string {
	switch sc {
	case grammar.SpellGGU:
		if strings.HasSuffix(stem, "g") {
			return stem + "u"
		}
	case grammar.SpellCQU:
		if strings.HasSuffix(stem, "c") {
			return stem[:len(stem)-1] + "qu"
		}
	case grammar.SpellZC:
		if strings.HasSuffix(stem, "z") {
			return stem[:len(stem)-1] + "c"
		}
	}
	return stem
}

// spellingChangeApplies reports whether the orthographic adjustment is
// needed: only -ar verbs take a subjunctive ending beginning with e.
func spellingChangeApplies(v grammar.Verb, t grammar.Tense) bool {
	return v.SpellingChange != grammar.SpellNone &&
		v.Class == grammar.ClassAR &&
		t == grammar.PresentSubjunctive
}

// accentFinalVowel puts an acute accent on the last plain vowel of the stem,
// as required by the nosotros imperfect-subjunctive forms (habláramos).
func accentFinalVowel(stem string) string {
	runes := []rune(stem)
	for i := len(runes) - 1; i >= 0; i-- {
		if acc, ok := accentedVowel[runes[i]]; ok {
			runes[i] = acc
			return string(runes)
		}
	}
	return stem
}

// presentSubjEndings returns the person-indexed present-subjunctive endings
// for a class.
func presentSubjEndings(c grammar.Class) [6]string {
	if c == grammar.ClassAR {
		return presentSubjEndingsAR
	}
	return presentSubjEndingsER
}

// endsInStrongVowel reports whether s ends in a, e or o, which forces the
// accented -ído participle ending (caer → caído).
func endsInStrongVowel(s string) bool {
	return strings.HasSuffix(s, "a") || strings.HasSuffix(s, "e") || strings.HasSuffix(s, "o")
}

// commonPrefix returns the longest common prefix of the given strings.
func commonPrefix(forms []string) string {
	if len(forms) == 0 {
		return ""
	}
	prefix := forms[0]
	for _, f := range forms[1:] {
		for !strings.HasPrefix(f, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}
