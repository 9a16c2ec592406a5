package catalog

import (
	"fmt"
	"io/fs"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/choicekit/internal/choices"
	"github.com/zjrosen/choicekit/internal/log"
)

// File is the root structure of a catalog YAML file.
type File struct {
	Sets []SetDef `yaml:"sets"`
}

// SetDef defines one choice set in YAML.
type SetDef struct {
	Name    string     `yaml:"name"`
	Kind    string     `yaml:"kind"`  // "text" (default) or "integer"
	Empty   *string    `yaml:"empty"` // label for "no value", optional
	Entries []EntryDef `yaml:"entries"`
}

// EntryDef defines one entry. A missing value defaults to the name for
// text sets and to the 1-based position for integer sets.
type EntryDef struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
	Label string `yaml:"label"`
}

// LoadYAML reads and parses a catalog file from fsys.
func LoadYAML(fsys fs.FS, path string) ([]choices.Describer, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	sets, err := ParseYAML(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	log.Info(log.CatCatalog, "Loaded catalog file", "path", path, "sets", len(sets))
	return sets, nil
}

// ParseYAML builds choice sets from catalog YAML. Any set that violates the
// uniqueness rules fails the whole file.
func ParseYAML(content []byte) ([]choices.Describer, error) {
	var file File
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, err
	}

	sets := make([]choices.Describer, 0, len(file.Sets))
	for _, def := range file.Sets {
		set, err := buildSetFromDef(def)
		if err != nil {
			return nil, fmt.Errorf("set %q: %w", def.Name, err)
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func buildSetFromDef(def SetDef) (choices.Describer, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("set name cannot be empty")
	}

	switch def.Kind {
	case "", string(choices.KindText):
		b := choices.NewBuilder[string](def.Name)
		for _, e := range def.Entries {
			value := e.Name
			if e.Value != nil {
				value = fmt.Sprint(e.Value)
			}
			b.Add(e.Name, value, e.Label)
		}
		if def.Empty != nil {
			b.Empty(*def.Empty)
		}
		return b.Build()

	case string(choices.KindInteger):
		b := choices.NewBuilder[int](def.Name)
		for i, e := range def.Entries {
			value := i + 1
			if e.Value != nil {
				v, err := strconv.Atoi(fmt.Sprint(e.Value))
				if err != nil {
					return nil, fmt.Errorf("entry %s: value %v is not an integer", e.Name, e.Value)
				}
				value = v
			}
			b.Add(e.Name, value, e.Label)
		}
		if def.Empty != nil {
			b.Empty(*def.Empty)
		}
		return b.Build()

	default:
		return nil, fmt.Errorf("unsupported kind %q (want text or integer)", def.Kind)
	}
}

// Merge adds every set to the catalog, stopping at the first failure.
func (c *Catalog) Merge(sets ...choices.Describer) error {
	for _, s := range sets {
		if err := c.Add(s); err != nil {
			if s != nil {
				return fmt.Errorf("add %s: %w", s.Describe().Name, err)
			}
			return err
		}
	}
	return nil
}
