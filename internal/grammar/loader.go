// Package grammar holds the static linguistic dataset: verb records,
// irregular conjugation lookups, stem- and spelling-change patterns and the
// grammatical enumerations shared by the rest of the system.
package grammar

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// datasetFile is the on-disk shape of a grammar dataset YAML file.
type datasetFile struct {
	Verbs       []Verb                    `yaml:"verbs"`
	Lookup      map[string]IrregularForms `yaml:"lookup"`
	Participles map[string]string         `yaml:"participles"`
}

// LoadDir extends the tables with every *.yaml/*.yml dataset file under
// rootDir. Later files override earlier entries; loaded verbs override
// builtin ones with the same infinitive. The receiver is not modified: a
// new Tables is returned, so an already-published Tables stays immutable.
func (t *Tables) LoadDir(rootDir string) (*Tables, error) {
	out := &Tables{
		verbs:       make(map[string]Verb, len(t.verbs)),
		lookup:      make(map[string]IrregularForms, len(t.lookup)),
		participles: make(map[string]string, len(t.participles)),
	}
	for k, v := range t.verbs {
		out.verbs[k] = v
	}
	for k, v := range t.lookup {
		out.lookup[k] = v
	}
	for k, v := range t.participles {
		out.participles[k] = v
	}

	loaded := 0
	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}
		n, err := out.loadFile(path)
		if err != nil {
			return err
		}
		loaded += n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading grammar dataset: %w", err)
	}

	slog.Info("grammar dataset loaded", "dir", rootDir, "verbs", out.Len(), "added", loaded)
	return out, nil
}

func (t *Tables) loadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var file datasetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		slog.Warn("skipping invalid grammar YAML", "path", path, "error", err)
		return 0, nil
	}

	added := 0
	for _, v := range file.Verbs {
		if v.Class == 0 {
			if cls, ok := ClassOf(v.Infinitive); ok {
				v.Class = cls
			}
		}
		if v.Tier == 0 {
			v.Tier = Beginner
		}
		if err := v.Validate(); err != nil {
			return added, fmt.Errorf("%s: %w", path, err)
		}
		t.verbs[v.Infinitive] = v
		added++
	}
	for inf, forms := range file.Lookup {
		t.lookup[inf] = forms
	}
	for inf, part := range file.Participles {
		t.participles[inf] = part
	}
	return added, nil
}
