package choices

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Builder provides a fluent API for defining a set.
type Builder[V comparable] struct {
	name       string
	entries    []Entry[V]
	emptyLabel *string
}

// NewBuilder creates a builder for a set with the given name.
func NewBuilder[V comparable](name string) *Builder[V] {
	return &Builder[V]{name: name}
}

// Add appends an entry. An empty label is derived from the name.
func (b *Builder[V]) Add(name string, value V, label string) *Builder[V] {
	b.entries = append(b.entries, Entry[V]{Name: name, Value: value, Label: label})
	return b
}

// Empty sets the label offered for "no value".
func (b *Builder[V]) Empty(label string) *Builder[V] {
	b.emptyLabel = &label
	return b
}

// Build creates the set, checking name and value uniqueness.
func (b *Builder[V]) Build() (*Set[V], error) {
	return newSet(b.name, b.entries, b.emptyLabel)
}

// MustBuild is like Build but panics on error.
func (b *Builder[V]) MustBuild() *Set[V] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// TextChoices defines a set whose values equal the entry names.
// Each argument may hold several whitespace-separated names.
//
//	medals, _ := TextChoices("MedalType", "GOLD SILVER BRONZE")
func TextChoices(name string, names ...string) (*Set[string], error) {
	b := NewBuilder[string](name)
	for _, n := range splitNames(names) {
		b.Add(n, n, "")
	}
	return b.Build()
}

// IntegerChoices defines a set whose values count up from 1.
func IntegerChoices(name string, names ...string) (*Set[int], error) {
	b := NewBuilder[int](name)
	for i, n := range splitNames(names) {
		b.Add(n, i+1, "")
	}
	return b.Build()
}

func splitNames(names []string) []string {
	var out []string
	for _, n := range names {
		out = append(out, strings.Fields(n)...)
	}
	return out
}

// LabelFromName derives a display label from a symbolic name:
// underscores become spaces and each word is title-cased.
//
//	LabelFromName("IN_PROGRESS") // "In Progress"
func LabelFromName(name string) string {
	// Casers keep state, so one is made per call.
	return cases.Title(language.Und).String(strings.ReplaceAll(name, "_", " "))
}
