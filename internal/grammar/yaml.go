package grammar

import "gopkg.in/yaml.v3"

// YAML adapters for the enum types: datasets on disk spell enums the same
// way the JSON wire format does.

func (c Class) MarshalYAML() (any, error) { return c.String(), nil }

func (c *Class) UnmarshalYAML(node *yaml.Node) error {
	return c.UnmarshalText([]byte(node.Value))
}

func (p Person) MarshalYAML() (any, error) { return p.String(), nil }

func (p *Person) UnmarshalYAML(node *yaml.Node) error {
	return p.UnmarshalText([]byte(node.Value))
}

func (t Tense) MarshalYAML() (any, error) { return t.String(), nil }

func (t *Tense) UnmarshalYAML(node *yaml.Node) error {
	return t.UnmarshalText([]byte(node.Value))
}

func (d Difficulty) MarshalYAML() (any, error) { return d.String(), nil }

func (d *Difficulty) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

func (c Category) MarshalYAML() (any, error) { return c.String(), nil }

func (c *Category) UnmarshalYAML(node *yaml.Node) error {
	return c.UnmarshalText([]byte(node.Value))
}

func (s StemChange) MarshalYAML() (any, error) { return s.String(), nil }

func (s *StemChange) UnmarshalYAML(node *yaml.Node) error {
	return s.UnmarshalText([]byte(node.Value))
}

func (s SpellingChange) MarshalYAML() (any, error) { return s.String(), nil }

func (s *SpellingChange) UnmarshalYAML(node *yaml.Node) error {
	return s.UnmarshalText([]byte(node.Value))
}
