package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ojala-app/ojala/internal/grammar"
)

// dataset mirrors the YAML shape the grammar loader reads.
type dataset struct {
	Verbs []grammar.Verb `yaml:"verbs"`
}

func writeDataset(path string, verbs []grammar.Verb) error {
	data, err := yaml.Marshal(dataset{Verbs: verbs})
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
