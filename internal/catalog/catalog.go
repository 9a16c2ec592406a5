// Package catalog holds the named choice sets known to the process.
//
// The catalog is filled once at startup (built-in sets plus any YAML catalog
// files) and is read-only afterwards. Sets are stored through the
// choices.Describer view so that sets with different value types live side
// by side.
package catalog

import (
	"errors"
	"sort"

	"github.com/zjrosen/choicekit/internal/choices"
)

// Catalog errors
var (
	ErrSetNotFound  = errors.New("choice set not found")
	ErrDuplicateSet = errors.New("duplicate choice set name")
	ErrNilSet       = errors.New("choice set cannot be nil")
)

// Provider defines read-only access to a catalog.
type Provider interface {
	// List returns every set in insertion order.
	List() []choices.Descriptor

	// Get returns the set with the given name.
	// Returns ErrSetNotFound if no set matches.
	Get(name string) (choices.Descriptor, error)

	// GetByKind returns the sets whose values have the given kind.
	GetByKind(kind choices.Kind) []choices.Descriptor

	// Names returns all set names, sorted alphabetically.
	Names() []string
}

// Compile-time check that Catalog implements Provider.
var _ Provider = (*Catalog)(nil)

// Catalog holds choice set descriptors.
type Catalog struct {
	sets   []choices.Descriptor
	byName map[string]int
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		sets:   make([]choices.Descriptor, 0),
		byName: make(map[string]int),
	}
}

// Add registers a set. Set names are unique within a catalog.
func (c *Catalog) Add(set choices.Describer) error {
	if set == nil {
		return ErrNilSet
	}
	d := set.Describe()
	if _, exists := c.byName[d.Name]; exists {
		return ErrDuplicateSet
	}
	c.byName[d.Name] = len(c.sets)
	c.sets = append(c.sets, d)
	return nil
}

// List returns every set in insertion order.
func (c *Catalog) List() []choices.Descriptor {
	return c.sets
}

// Get returns the set with the given name.
func (c *Catalog) Get(name string) (choices.Descriptor, error) {
	i, ok := c.byName[name]
	if !ok {
		return choices.Descriptor{}, ErrSetNotFound
	}
	return c.sets[i], nil
}

// GetByKind returns the sets of the given kind in insertion order.
func (c *Catalog) GetByKind(kind choices.Kind) []choices.Descriptor {
	result := make([]choices.Descriptor, 0)
	for _, d := range c.sets {
		if d.Kind == kind {
			result = append(result, d)
		}
	}
	return result
}

// Names returns all set names, sorted alphabetically.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.sets))
	for _, d := range c.sets {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}
