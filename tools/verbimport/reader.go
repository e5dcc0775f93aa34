package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"

	"github.com/ojala-app/ojala/internal/grammar"
)

// record is one verb row before merging, tagged with its origin for
// reject reporting.
type record struct {
	Verb   grammar.Verb
	Source string
}

// readInputs walks the given files and directories and reads every .xlsx
// and .json verb list found. Unreadable files become rejects rather than
// aborting the run.
func readInputs(paths []string, sheet string) ([]record, []reject, error) {
	var records []record
	var rejects []reject

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			recs, rej := readFile(root, sheet)
			records = append(records, recs...)
			rejects = append(rejects, rej...)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil || d.IsDir() {
				return walkErr
			}
			recs, rej := readFile(path, sheet)
			records = append(records, recs...)
			rejects = append(rejects, rej...)
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
	}
	return records, rejects, nil
}

func readFile(path, sheet string) ([]record, []reject) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readExcel(path, sheet)
	case ".json":
		return readJSON(path)
	default:
		return nil, nil
	}
}

// Column layout for xlsx inputs, one verb per row:
// A infinitive, B gloss, C tier, D irregular, E stem_change,
// F spelling_change, G present_yo, H preterite_third_plural.
const (
	colInfinitive = iota
	colGloss
	colTier
	colIrregular
	colStemChange
	colSpellingChange
	colPresentYo
	colPreterite3Pl
)

func readExcel(path, sheet string) ([]record, []reject) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, []reject{{Source: path, Reason: "open: " + err.Error()}}
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, []reject{{Source: path, Reason: "sheet: " + err.Error()}}
	}

	var records []record
	var rejects []reject
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		source := fmt.Sprintf("%s row %d", path, i+1)
		verb, err := rowToVerb(row)
		if err != nil {
			rejects = append(rejects, reject{Source: source, Reason: err.Error()})
			continue
		}
		records = append(records, record{Verb: verb, Source: source})
	}
	return records, rejects
}

func rowToVerb(row []string) (grammar.Verb, error) {
	v := grammar.Verb{
		Infinitive: cell(row, colInfinitive),
		Gloss:      cell(row, colGloss),
		Irregular:  isTruthy(cell(row, colIrregular)),
		PresentYo:  cell(row, colPresentYo),

		PreteriteThirdPlural: cell(row, colPreterite3Pl),
	}
	if v.Infinitive == "" {
		return grammar.Verb{}, fmt.Errorf("missing infinitive")
	}
	v.Infinitive = strings.ToLower(strings.TrimSpace(v.Infinitive))

	if tier := cell(row, colTier); tier != "" {
		if err := v.Tier.UnmarshalText([]byte(tier)); err != nil {
			return grammar.Verb{}, fmt.Errorf("tier %q: %w", tier, err)
		}
	}
	if sc := cell(row, colStemChange); sc != "" {
		if err := v.StemChange.UnmarshalText([]byte(sc)); err != nil {
			return grammar.Verb{}, fmt.Errorf("stem_change %q: %w", sc, err)
		}
	}
	if sp := cell(row, colSpellingChange); sp != "" {
		if err := v.SpellingChange.UnmarshalText([]byte(sp)); err != nil {
			return grammar.Verb{}, fmt.Errorf("spelling_change %q: %w", sp, err)
		}
	}
	return v, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "1", "y":
		return true
	}
	return false
}

// readJSON reads a JSON verb list: either a bare array or an object with a
// "verbs" array. gjson tolerates surrounding metadata other exporters add.
func readJSON(path string) ([]record, []reject) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []reject{{Source: path, Reason: "read: " + err.Error()}}
	}
	if !gjson.ValidBytes(data) {
		return nil, []reject{{Source: path, Reason: "invalid JSON"}}
	}

	root := gjson.ParseBytes(data)
	list := root
	if !root.IsArray() {
		list = root.Get("verbs")
	}
	if !list.IsArray() {
		return nil, []reject{{Source: path, Reason: "no verb array found"}}
	}

	var records []record
	var rejects []reject
	for i, item := range list.Array() {
		source := fmt.Sprintf("%s #%d", path, i)
		verb, err := jsonToVerb(item)
		if err != nil {
			rejects = append(rejects, reject{Source: source, Reason: err.Error()})
			continue
		}
		records = append(records, record{Verb: verb, Source: source})
	}
	return records, rejects
}

func jsonToVerb(item gjson.Result) (grammar.Verb, error) {
	v := grammar.Verb{
		Infinitive: strings.ToLower(strings.TrimSpace(item.Get("infinitive").String())),
		Gloss:      item.Get("gloss").String(),
		Irregular:  item.Get("irregular").Bool(),
		PresentYo:  item.Get("present_yo").String(),

		PreteriteThirdPlural: item.Get("preterite_third_plural").String(),
	}
	if v.Infinitive == "" {
		return grammar.Verb{}, fmt.Errorf("missing infinitive")
	}
	if tier := item.Get("tier").String(); tier != "" {
		if err := v.Tier.UnmarshalText([]byte(tier)); err != nil {
			return grammar.Verb{}, fmt.Errorf("tier %q: %w", tier, err)
		}
	}
	if sc := item.Get("stem_change").String(); sc != "" {
		if err := v.StemChange.UnmarshalText([]byte(sc)); err != nil {
			return grammar.Verb{}, fmt.Errorf("stem_change %q: %w", sc, err)
		}
	}
	if sp := item.Get("spelling_change").String(); sp != "" {
		if err := v.SpellingChange.UnmarshalText([]byte(sp)); err != nil {
			return grammar.Verb{}, fmt.Errorf("spelling_change %q: %w", sp, err)
		}
	}
	return v, nil
}
