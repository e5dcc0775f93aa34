package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/ojala-app/ojala/internal/grammar"
)

func rec(infinitive, source string) record {
	return record{
		Verb:   grammar.Verb{Infinitive: infinitive, Tier: grammar.Beginner},
		Source: source,
	}
}

func TestMergeAndValidateDedupesLastWins(t *testing.T) {
	records := []record{
		{Verb: grammar.Verb{Infinitive: "hablar", Gloss: "old", Tier: grammar.Beginner}, Source: "a.json"},
		rec("comer", "a.json"),
		{Verb: grammar.Verb{Infinitive: "hablar", Gloss: "new", Tier: grammar.Beginner}, Source: "b.json"},
	}

	merged, rejects := mergeAndValidate(records)
	if len(rejects) != 0 {
		t.Fatalf("rejects = %v", rejects)
	}
	if len(merged) != 2 {
		t.Fatalf("len(merged) = %d, want 2", len(merged))
	}
	// Output is sorted by infinitive.
	if merged[1].Infinitive != "hablar" || merged[1].Gloss != "new" {
		t.Errorf("merged[1] = %+v, want later hablar record", merged[1])
	}
}

func TestMergeAndValidateFillsClassAndTier(t *testing.T) {
	merged, rejects := mergeAndValidate([]record{
		{Verb: grammar.Verb{Infinitive: "vivir"}, Source: "a.json"},
	})
	if len(rejects) != 0 {
		t.Fatalf("rejects = %v", rejects)
	}
	if merged[0].Class != grammar.ClassIR {
		t.Errorf("class = %v, want -ir", merged[0].Class)
	}
	if merged[0].Tier != grammar.Beginner {
		t.Errorf("tier = %v, want beginner", merged[0].Tier)
	}
}

func TestMergeAndValidateRejectsBadInfinitive(t *testing.T) {
	merged, rejects := mergeAndValidate([]record{
		rec("hablar", "ok.json"),
		{Verb: grammar.Verb{Infinitive: "hablando", Tier: grammar.Beginner}, Source: "bad.json"},
	})
	if len(merged) != 1 {
		t.Errorf("len(merged) = %d, want 1", len(merged))
	}
	if len(rejects) != 1 || rejects[0].Source != "bad.json" {
		t.Errorf("rejects = %v, want one from bad.json", rejects)
	}
}

func TestRowToVerb(t *testing.T) {
	verb, err := rowToVerb([]string{"Pensar", "to think", "intermediate", "", "e>ie", "", "", ""})
	if err != nil {
		t.Fatalf("rowToVerb: %v", err)
	}
	if verb.Infinitive != "pensar" {
		t.Errorf("infinitive = %q, want pensar (lowercased)", verb.Infinitive)
	}
	if verb.Tier != grammar.Intermediate {
		t.Errorf("tier = %v, want intermediate", verb.Tier)
	}
	if verb.StemChange != grammar.StemEIE {
		t.Errorf("stem change = %v, want e>ie", verb.StemChange)
	}

	if _, err := rowToVerb([]string{"", "empty"}); err == nil {
		t.Error("empty infinitive should be rejected")
	}
	if _, err := rowToVerb([]string{"pensar", "", "impossible"}); err == nil {
		t.Error("bad tier should be rejected")
	}
}

func TestReadJSONShapes(t *testing.T) {
	dir := t.TempDir()

	bare := filepath.Join(dir, "bare.json")
	os.WriteFile(bare, []byte(`[{"infinitive":"hablar","tier":"beginner"}]`), 0o644)

	wrapped := filepath.Join(dir, "wrapped.json")
	os.WriteFile(wrapped, []byte(`{"exported_at":"2025-06-01","verbs":[{"infinitive":"comer"},{"infinitive":""}]}`), 0o644)

	records, rejects := readJSON(bare)
	if len(records) != 1 || records[0].Verb.Infinitive != "hablar" {
		t.Errorf("bare array: records = %v", records)
	}
	if len(rejects) != 0 {
		t.Errorf("bare array: rejects = %v", rejects)
	}

	records, rejects = readJSON(wrapped)
	if len(records) != 1 || records[0].Verb.Infinitive != "comer" {
		t.Errorf("wrapped object: records = %v", records)
	}
	if len(rejects) != 1 {
		t.Errorf("wrapped object: rejects = %v, want the empty infinitive", rejects)
	}

	broken := filepath.Join(dir, "broken.json")
	os.WriteFile(broken, []byte(`{nope`), 0o644)
	records, rejects = readJSON(broken)
	if len(records) != 0 || len(rejects) != 1 {
		t.Errorf("broken JSON: records = %v rejects = %v", records, rejects)
	}
}

func TestExcelRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "verbs.xlsx")

	f := excelize.NewFile()
	rows := [][]any{
		{"infinitive", "gloss", "tier", "irregular", "stem_change", "spelling_change", "present_yo", "preterite_third_plural"},
		{"buscar", "to look for", "advanced", "", "", "c>qu", "", ""},
		{"conocer", "to know", "advanced", "", "", "", "conozco", ""},
		{"", "junk row", "", "", "", "", "", ""},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cellRef, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}

	records, rejects := readExcel(path, "Sheet1")
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2 (rejects %v)", len(records), rejects)
	}
	if records[0].Verb.SpellingChange != grammar.SpellCQU {
		t.Errorf("buscar spelling change = %v, want c>qu", records[0].Verb.SpellingChange)
	}
	if records[1].Verb.PresentYo != "conozco" {
		t.Errorf("conocer present_yo = %q, want conozco", records[1].Verb.PresentYo)
	}
	if len(rejects) != 1 {
		t.Errorf("rejects = %v, want the empty row", rejects)
	}
}

func TestWriteDatasetLoadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	verbs := []grammar.Verb{
		{Infinitive: "buscar", Class: grammar.ClassAR, SpellingChange: grammar.SpellCQU, Tier: grammar.Advanced},
	}
	if err := writeDataset(path, verbs); err != nil {
		t.Fatalf("writeDataset: %v", err)
	}

	// The written YAML must use the wire spellings, not enum integers.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var parsed struct {
		Verbs []grammar.Verb `yaml:"verbs"`
	}
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(parsed.Verbs) != 1 || parsed.Verbs[0].SpellingChange != grammar.SpellCQU {
		t.Errorf("parsed = %+v", parsed.Verbs)
	}

	// And the grammar loader must take the file.
	tables, err := grammar.Builtin().LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if _, ok := tables.Verb("buscar"); !ok {
		t.Error("loaded tables missing buscar")
	}
}
