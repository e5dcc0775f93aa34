package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/xeipuuv/gojsonschema"

	"github.com/ojala-app/ojala/internal/grammar"
)

// verbSchema guards the merged output: whatever the inputs contained, every
// record written to the dataset satisfies this shape.
const verbSchema = `{
  "type": "object",
  "required": ["infinitive", "class", "tier"],
  "properties": {
    "infinitive": {"type": "string", "pattern": "^[a-záéíóúüñ]+r$"},
    "class": {"enum": ["-ar", "-er", "-ir"]},
    "tier": {"enum": ["beginner", "intermediate", "advanced"]},
    "irregular": {"type": "boolean"},
    "stem_change": {"enum": ["e>ie", "o>ue", "e>i"]},
    "spelling_change": {"enum": ["g>gu", "c>qu", "z>c"]},
    "gloss": {"type": "string"},
    "present_yo": {"type": "string"},
    "preterite_third_plural": {"type": "string"}
  }
}`

// mergeAndValidate dedupes records by infinitive (last input wins), fills
// derivable fields, and checks each survivor against the verb schema.
func mergeAndValidate(records []record) ([]grammar.Verb, []reject) {
	var rejects []reject

	// Reverse so that lo.UniqBy keeps the latest occurrence of each verb.
	reversed := lo.Reverse(append([]record(nil), records...))
	unique := lo.UniqBy(reversed, func(r record) string { return r.Verb.Infinitive })

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(verbSchema))
	if err != nil {
		// The schema is a compile-time constant; failing to parse it is a bug.
		panic(fmt.Sprintf("verb schema: %v", err))
	}

	var out []grammar.Verb
	for _, r := range unique {
		v := r.Verb
		if v.Class == 0 {
			cls, ok := grammar.ClassOf(v.Infinitive)
			if !ok {
				rejects = append(rejects, reject{Source: r.Source, Reason: fmt.Sprintf("%q does not end in -ar/-er/-ir", v.Infinitive)})
				continue
			}
			v.Class = cls
		}
		if v.Tier == 0 {
			v.Tier = grammar.Beginner
		}
		if err := v.Validate(); err != nil {
			rejects = append(rejects, reject{Source: r.Source, Reason: err.Error()})
			continue
		}

		doc, err := json.Marshal(v)
		if err != nil {
			rejects = append(rejects, reject{Source: r.Source, Reason: "marshal: " + err.Error()})
			continue
		}
		res, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
		if err != nil {
			rejects = append(rejects, reject{Source: r.Source, Reason: "schema: " + err.Error()})
			continue
		}
		if !res.Valid() {
			rejects = append(rejects, reject{Source: r.Source, Reason: schemaErrors(res)})
			continue
		}
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Infinitive < out[j].Infinitive })
	return out, rejects
}

func schemaErrors(res *gojsonschema.Result) string {
	msgs := lo.Map(res.Errors(), func(e gojsonschema.ResultError, _ int) string {
		return e.String()
	})
	return fmt.Sprintf("schema: %v", msgs)
}
