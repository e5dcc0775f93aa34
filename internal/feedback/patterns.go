package feedback

import (
	"sort"

	"github.com/ojala-app/ojala/internal/conjugator"
	"github.com/ojala-app/ojala/internal/grammar"
	"github.com/ojala-app/ojala/internal/review"
)

// Pattern is a recurring error cluster: one error kind concentrated in one
// verb class.
type Pattern struct {
	Class grammar.Class        `json:"class"`
	Kind  conjugator.ErrorKind `json:"error_kind"`
	Count int                  `json:"count"`
	Verbs []string             `json:"verbs"`
}

// DetectPatterns scans an attempt history for error kinds that recur within
// a verb class at least minFrequency times. It is a pure function over the
// supplied history; the caller owns persistence. Results are ordered most
// frequent first, ties broken by class then kind for stable output.
func DetectPatterns(tables *grammar.Tables, history []review.Attempt, minFrequency int) []Pattern {
	if minFrequency < 1 {
		minFrequency = 1
	}

	type cluster struct {
		class grammar.Class
		kind  conjugator.ErrorKind
	}
	counts := make(map[cluster]int)
	verbs := make(map[cluster]map[string]struct{})

	for _, a := range history {
		if a.Correct || a.Kind == "" {
			continue
		}
		verb, ok := tables.Verb(a.Key.Verb)
		if !ok {
			continue
		}
		c := cluster{class: verb.Class, kind: a.Kind}
		counts[c]++
		if verbs[c] == nil {
			verbs[c] = make(map[string]struct{})
		}
		verbs[c][a.Key.Verb] = struct{}{}
	}

	var out []Pattern
	for c, n := range counts {
		if n < minFrequency {
			continue
		}
		names := make([]string, 0, len(verbs[c]))
		for v := range verbs[c] {
			names = append(names, v)
		}
		sort.Strings(names)
		out = append(out, Pattern{Class: c.class, Kind: c.kind, Count: n, Verbs: names})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Class != out[j].Class {
			return out[i].Class < out[j].Class
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// WeakClasses reduces detected patterns to the verb classes worth extra
// drilling, in pattern order. The exercise generator biases its verb pool
// toward these.
func WeakClasses(patterns []Pattern) []grammar.Class {
	seen := make(map[grammar.Class]bool)
	var out []grammar.Class
	for _, p := range patterns {
		if !seen[p.Class] {
			seen[p.Class] = true
			out = append(out, p.Class)
		}
	}
	return out
}
