package grammar

import (
	"sort"
)

// Tables is the immutable grammar dataset consulted by the conjugation
// engine. Build it once at process start (Builtin, optionally extended with
// LoadDir) and share it freely: it is never mutated after construction.
type Tables struct {
	verbs       map[string]Verb
	lookup      map[string]IrregularForms
	participles map[string]string
}

// Verb returns the verb record for an infinitive.
func (t *Tables) Verb(infinitive string) (Verb, bool) {
	v, ok := t.verbs[infinitive]
	return v, ok
}

// Lookup returns the full irregular entry for an infinitive, if the verb is
// one of the fully irregular lookup verbs.
func (t *Tables) Lookup(infinitive string) (IrregularForms, bool) {
	f, ok := t.lookup[infinitive]
	return f, ok
}

// Participle returns the irregular past participle for an infinitive, if one
// exists. Regular participles are derived by the engine.
func (t *Tables) Participle(infinitive string) (string, bool) {
	p, ok := t.participles[infinitive]
	return p, ok
}

// Verbs returns all verbs sorted by infinitive.
func (t *Tables) Verbs() []Verb {
	out := make([]Verb, 0, len(t.verbs))
	for _, v := range t.verbs {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Infinitive < out[j].Infinitive })
	return out
}

// Len returns the number of verbs in the dataset.
func (t *Tables) Len() int {
	return len(t.verbs)
}

// Builtin returns the embedded seed dataset: the seventeen fully irregular
// lookup verbs, the irregular participles, and a starter pool of regular,
// stem-changing and spelling-changing verbs across all three tiers.
func Builtin() *Tables {
	t := &Tables{
		verbs:       make(map[string]Verb, len(seedVerbs)),
		lookup:      make(map[string]IrregularForms, len(irregularLookup)),
		participles: make(map[string]string, len(irregularParticiples)),
	}
	for _, v := range seedVerbs {
		t.verbs[v.Infinitive] = v
	}
	for inf, forms := range irregularLookup {
		t.lookup[inf] = forms
	}
	for inf, part := range irregularParticiples {
		t.participles[inf] = part
	}
	return t
}

// irregularParticiples maps infinitives to their irregular past participles.
var irregularParticiples = map[string]string{
	"hacer":    "hecho",
	"decir":    "dicho",
	"escribir": "escrito",
	"ver":      "visto",
	"poner":    "puesto",
	"volver":   "vuelto",
	"abrir":    "abierto",
	"morir":    "muerto",
	"romper":   "roto",
	"cubrir":   "cubierto",
	"resolver": "resuelto",
	"devolver": "devuelto",
	"freír":    "frito",
	"imprimir": "impreso",
}

// irregularLookup holds the full conjugation entries for the seventeen fully
// irregular verbs. Person order: yo, tú, él, nosotros, vosotros, ellos.
var irregularLookup = map[string]IrregularForms{
	"ser": {
		PresentSubjunctive:   [6]string{"sea", "seas", "sea", "seamos", "seáis", "sean"},
		PresentIndicative:    [6]string{"soy", "eres", "es", "somos", "sois", "son"},
		PreteriteThirdPlural: "fueron",
		ImperfectIndicative:  [6]string{"era", "eras", "era", "éramos", "erais", "eran"},
	},
	"estar": {
		PresentSubjunctive:   [6]string{"esté", "estés", "esté", "estemos", "estéis", "estén"},
		PresentIndicative:    [6]string{"estoy", "estás", "está", "estamos", "estáis", "están"},
		PreteriteThirdPlural: "estuvieron",
	},
	"ir": {
		PresentSubjunctive:   [6]string{"vaya", "vayas", "vaya", "vayamos", "vayáis", "vayan"},
		PresentIndicative:    [6]string{"voy", "vas", "va", "vamos", "vais", "van"},
		PreteriteThirdPlural: "fueron",
		ImperfectIndicative:  [6]string{"iba", "ibas", "iba", "íbamos", "ibais", "iban"},
	},
	"haber": {
		PresentSubjunctive:   [6]string{"haya", "hayas", "haya", "hayamos", "hayáis", "hayan"},
		PresentIndicative:    [6]string{"he", "has", "ha", "hemos", "habéis", "han"},
		PreteriteThirdPlural: "hubieron",
	},
	"dar": {
		PresentSubjunctive:   [6]string{"dé", "des", "dé", "demos", "deis", "den"},
		PresentIndicative:    [6]string{"doy", "das", "da", "damos", "dais", "dan"},
		PreteriteThirdPlural: "dieron",
	},
	"saber": {
		PresentSubjunctive:   [6]string{"sepa", "sepas", "sepa", "sepamos", "sepáis", "sepan"},
		PresentIndicative:    [6]string{"sé", "sabes", "sabe", "sabemos", "sabéis", "saben"},
		PreteriteThirdPlural: "supieron",
	},
	"ver": {
		PresentSubjunctive:   [6]string{"vea", "veas", "vea", "veamos", "veáis", "vean"},
		PresentIndicative:    [6]string{"veo", "ves", "ve", "vemos", "veis", "ven"},
		PreteriteThirdPlural: "vieron",
		ImperfectIndicative:  [6]string{"veía", "veías", "veía", "veíamos", "veíais", "veían"},
	},
	"hacer": {
		PresentSubjunctive:   [6]string{"haga", "hagas", "haga", "hagamos", "hagáis", "hagan"},
		PresentIndicative:    [6]string{"hago", "haces", "hace", "hacemos", "hacéis", "hacen"},
		PreteriteThirdPlural: "hicieron",
	},
	"decir": {
		PresentSubjunctive:   [6]string{"diga", "digas", "diga", "digamos", "digáis", "digan"},
		PresentIndicative:    [6]string{"digo", "dices", "dice", "decimos", "decís", "dicen"},
		PreteriteThirdPlural: "dijeron",
	},
	"tener": {
		PresentSubjunctive:   [6]string{"tenga", "tengas", "tenga", "tengamos", "tengáis", "tengan"},
		PresentIndicative:    [6]string{"tengo", "tienes", "tiene", "tenemos", "tenéis", "tienen"},
		PreteriteThirdPlural: "tuvieron",
	},
	"poner": {
		PresentSubjunctive:   [6]string{"ponga", "pongas", "ponga", "pongamos", "pongáis", "pongan"},
		PresentIndicative:    [6]string{"pongo", "pones", "pone", "ponemos", "ponéis", "ponen"},
		PreteriteThirdPlural: "pusieron",
	},
	"poder": {
		PresentSubjunctive:   [6]string{"pueda", "puedas", "pueda", "podamos", "podáis", "puedan"},
		PresentIndicative:    [6]string{"puedo", "puedes", "puede", "podemos", "podéis", "pueden"},
		PreteriteThirdPlural: "pudieron",
	},
	"querer": {
		PresentSubjunctive:   [6]string{"quiera", "quieras", "quiera", "queramos", "queráis", "quieran"},
		PresentIndicative:    [6]string{"quiero", "quieres", "quiere", "queremos", "queréis", "quieren"},
		PreteriteThirdPlural: "quisieron",
	},
	"venir": {
		PresentSubjunctive:   [6]string{"venga", "vengas", "venga", "vengamos", "vengáis", "vengan"},
		PresentIndicative:    [6]string{"vengo", "vienes", "viene", "venimos", "venís", "vienen"},
		PreteriteThirdPlural: "vinieron",
	},
	"salir": {
		PresentSubjunctive:   [6]string{"salga", "salgas", "salga", "salgamos", "salgáis", "salgan"},
		PresentIndicative:    [6]string{"salgo", "sales", "sale", "salimos", "salís", "salen"},
		PreteriteThirdPlural: "salieron",
	},
	"traer": {
		PresentSubjunctive:   [6]string{"traiga", "traigas", "traiga", "traigamos", "traigáis", "traigan"},
		PresentIndicative:    [6]string{"traigo", "traes", "trae", "traemos", "traéis", "traen"},
		PreteriteThirdPlural: "trajeron",
	},
	"caer": {
		PresentSubjunctive:   [6]string{"caiga", "caigas", "caiga", "caigamos", "caigáis", "caigan"},
		PresentIndicative:    [6]string{"caigo", "caes", "cae", "caemos", "caéis", "caen"},
		PreteriteThirdPlural: "cayeron",
	},
}

// seedVerbs is the starter verb pool. Lookup verbs are listed with
// Irregular=true; their forms live in irregularLookup. The -ir verbs with
// e>ie / o>ue patterns (sentir, dormir) are deliberately absent: their
// nosotros/vosotros vowel raise is outside the modeled rule set.
var seedVerbs = []Verb{
	// Fully irregular (intermediate tier).
	{Infinitive: "ser", Class: ClassER, Irregular: true, Gloss: "to be", Tier: Intermediate},
	{Infinitive: "estar", Class: ClassAR, Irregular: true, Gloss: "to be (state)", Tier: Intermediate},
	{Infinitive: "ir", Class: ClassIR, Irregular: true, Gloss: "to go", Tier: Intermediate},
	{Infinitive: "haber", Class: ClassER, Irregular: true, Gloss: "to have (aux.)", Tier: Intermediate},
	{Infinitive: "dar", Class: ClassAR, Irregular: true, Gloss: "to give", Tier: Intermediate},
	{Infinitive: "saber", Class: ClassER, Irregular: true, Gloss: "to know", Tier: Intermediate},
	{Infinitive: "ver", Class: ClassER, Irregular: true, Gloss: "to see", Tier: Intermediate},
	{Infinitive: "hacer", Class: ClassER, Irregular: true, Gloss: "to do, to make", Tier: Intermediate},
	{Infinitive: "decir", Class: ClassIR, Irregular: true, Gloss: "to say", Tier: Intermediate},
	{Infinitive: "tener", Class: ClassER, Irregular: true, Gloss: "to have", Tier: Intermediate},
	{Infinitive: "poner", Class: ClassER, Irregular: true, Gloss: "to put", Tier: Intermediate},
	{Infinitive: "poder", Class: ClassER, Irregular: true, Gloss: "to be able", Tier: Intermediate},
	{Infinitive: "querer", Class: ClassER, Irregular: true, Gloss: "to want", Tier: Intermediate},
	{Infinitive: "venir", Class: ClassIR, Irregular: true, Gloss: "to come", Tier: Intermediate},
	{Infinitive: "salir", Class: ClassIR, Irregular: true, Gloss: "to leave", Tier: Intermediate},
	{Infinitive: "traer", Class: ClassER, Irregular: true, Gloss: "to bring", Tier: Intermediate},
	{Infinitive: "caer", Class: ClassER, Irregular: true, Gloss: "to fall", Tier: Intermediate},

	// Regular -ar (beginner tier).
	{Infinitive: "hablar", Class: ClassAR, Gloss: "to speak", Tier: Beginner},
	{Infinitive: "estudiar", Class: ClassAR, Gloss: "to study", Tier: Beginner},
	{Infinitive: "trabajar", Class: ClassAR, Gloss: "to work", Tier: Beginner},
	{Infinitive: "escuchar", Class: ClassAR, Gloss: "to listen", Tier: Beginner},
	{Infinitive: "comprar", Class: ClassAR, Gloss: "to buy", Tier: Beginner},
	{Infinitive: "ayudar", Class: ClassAR, Gloss: "to help", Tier: Beginner},
	{Infinitive: "llamar", Class: ClassAR, Gloss: "to call", Tier: Beginner},
	{Infinitive: "viajar", Class: ClassAR, Gloss: "to travel", Tier: Beginner},
	{Infinitive: "cocinar", Class: ClassAR, Gloss: "to cook", Tier: Beginner},

	// Regular -er (beginner tier).
	{Infinitive: "comer", Class: ClassER, Gloss: "to eat", Tier: Beginner},
	{Infinitive: "beber", Class: ClassER, Gloss: "to drink", Tier: Beginner},
	{Infinitive: "aprender", Class: ClassER, Gloss: "to learn", Tier: Beginner},
	{Infinitive: "correr", Class: ClassER, Gloss: "to run", Tier: Beginner},
	{Infinitive: "vender", Class: ClassER, Gloss: "to sell", Tier: Beginner},
	{Infinitive: "comprender", Class: ClassER, Gloss: "to understand", Tier: Beginner},
	{Infinitive: "romper", Class: ClassER, Gloss: "to break", Tier: Beginner},

	// Regular -ir (beginner tier). escribir/abrir have irregular participles.
	{Infinitive: "vivir", Class: ClassIR, Gloss: "to live", Tier: Beginner},
	{Infinitive: "escribir", Class: ClassIR, Gloss: "to write", Tier: Beginner},
	{Infinitive: "abrir", Class: ClassIR, Gloss: "to open", Tier: Beginner},
	{Infinitive: "recibir", Class: ClassIR, Gloss: "to receive", Tier: Beginner},
	{Infinitive: "decidir", Class: ClassIR, Gloss: "to decide", Tier: Beginner},
	{Infinitive: "compartir", Class: ClassIR, Gloss: "to share", Tier: Beginner},

	// Stem-changing e>ie (intermediate tier).
	{Infinitive: "pensar", Class: ClassAR, StemChange: StemEIE, Gloss: "to think", Tier: Intermediate},
	{Infinitive: "cerrar", Class: ClassAR, StemChange: StemEIE, Gloss: "to close", Tier: Intermediate},
	{Infinitive: "despertar", Class: ClassAR, StemChange: StemEIE, Gloss: "to wake", Tier: Intermediate},
	{Infinitive: "entender", Class: ClassER, StemChange: StemEIE, Gloss: "to understand", Tier: Intermediate},
	{Infinitive: "perder", Class: ClassER, StemChange: StemEIE, Gloss: "to lose", Tier: Intermediate},

	// Stem-changing o>ue (intermediate tier). volver/devolver/resolver have
	// irregular participles.
	{Infinitive: "contar", Class: ClassAR, StemChange: StemOUE, Gloss: "to count, to tell", Tier: Intermediate},
	{Infinitive: "encontrar", Class: ClassAR, StemChange: StemOUE, Gloss: "to find", Tier: Intermediate},
	{Infinitive: "recordar", Class: ClassAR, StemChange: StemOUE, Gloss: "to remember", Tier: Intermediate},
	{Infinitive: "mostrar", Class: ClassAR, StemChange: StemOUE, Gloss: "to show", Tier: Intermediate},
	{Infinitive: "volver", Class: ClassER, StemChange: StemOUE, Gloss: "to return", Tier: Intermediate},
	{Infinitive: "devolver", Class: ClassER, StemChange: StemOUE, Gloss: "to give back", Tier: Intermediate},
	{Infinitive: "resolver", Class: ClassER, StemChange: StemOUE, Gloss: "to solve", Tier: Intermediate},

	// Stem-changing e>i, -ir only (intermediate tier).
	{Infinitive: "pedir", Class: ClassIR, StemChange: StemEI, Gloss: "to ask for", Tier: Intermediate},
	{Infinitive: "servir", Class: ClassIR, StemChange: StemEI, Gloss: "to serve", Tier: Intermediate},
	{Infinitive: "repetir", Class: ClassIR, StemChange: StemEI, Gloss: "to repeat", Tier: Intermediate},
	{Infinitive: "vestir", Class: ClassIR, StemChange: StemEI, Gloss: "to dress", Tier: Intermediate},

	// Spelling-changing (advanced tier).
	{Infinitive: "buscar", Class: ClassAR, SpellingChange: SpellCQU, Gloss: "to look for", Tier: Advanced},
	{Infinitive: "sacar", Class: ClassAR, SpellingChange: SpellCQU, Gloss: "to take out", Tier: Advanced},
	{Infinitive: "tocar", Class: ClassAR, SpellingChange: SpellCQU, Gloss: "to touch, to play", Tier: Advanced},
	{Infinitive: "practicar", Class: ClassAR, SpellingChange: SpellCQU, Gloss: "to practice", Tier: Advanced},
	{Infinitive: "explicar", Class: ClassAR, SpellingChange: SpellCQU, Gloss: "to explain", Tier: Advanced},
	{Infinitive: "llegar", Class: ClassAR, SpellingChange: SpellGGU, Gloss: "to arrive", Tier: Advanced},
	{Infinitive: "pagar", Class: ClassAR, SpellingChange: SpellGGU, Gloss: "to pay", Tier: Advanced},
	{Infinitive: "entregar", Class: ClassAR, SpellingChange: SpellGGU, Gloss: "to hand in", Tier: Advanced},
	{Infinitive: "apagar", Class: ClassAR, SpellingChange: SpellGGU, Gloss: "to turn off", Tier: Advanced},
	{Infinitive: "cruzar", Class: ClassAR, SpellingChange: SpellZC, Gloss: "to cross", Tier: Advanced},
	{Infinitive: "organizar", Class: ClassAR, SpellingChange: SpellZC, Gloss: "to organize", Tier: Advanced},
	{Infinitive: "alcanzar", Class: ClassAR, SpellingChange: SpellZC, Gloss: "to reach", Tier: Advanced},

	// Stem + spelling change combined (advanced tier).
	{Infinitive: "empezar", Class: ClassAR, StemChange: StemEIE, SpellingChange: SpellZC, Gloss: "to begin", Tier: Advanced},
	{Infinitive: "almorzar", Class: ClassAR, StemChange: StemOUE, SpellingChange: SpellZC, Gloss: "to have lunch", Tier: Advanced},

	// Irregular yo form, regular subjunctive derivation (advanced tier).
	{Infinitive: "conocer", Class: ClassER, PresentYo: "conozco", Gloss: "to know (people)", Tier: Advanced},
	{Infinitive: "traducir", Class: ClassIR, PresentYo: "traduzco", PreteriteThirdPlural: "tradujeron", Gloss: "to translate", Tier: Advanced},
	{Infinitive: "ofrecer", Class: ClassER, PresentYo: "ofrezco", Gloss: "to offer", Tier: Advanced},
}
