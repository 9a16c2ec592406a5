package choices

import (
	"fmt"
	"iter"
	"slices"
)

// Entry is one member of a choice set.
type Entry[V comparable] struct {
	Name  string
	Value V
	Label string
}

// String renders the entry as "NAME value - label".
func (e Entry[V]) String() string {
	return fmt.Sprintf("%s %v - %s", e.Name, e.Value, e.Label)
}

// Choice is a (value, label) pair as offered to a form or a column.
// Blank marks the leading pair added for a set with an empty label.
type Choice[V comparable] struct {
	Value V
	Label string
	Blank bool
}

// NamedChoice is a (name, label) pair.
type NamedChoice struct {
	Name  string
	Label string
}

// Set is an immutable, ordered enumeration of entries.
type Set[V comparable] struct {
	name       string
	entries    []Entry[V]
	byName     map[string]int
	byValue    map[V]int
	emptyLabel *string
}

// Define builds a set from entries in the order given. An entry with an
// empty label gets one derived from its name (see LabelFromName).
func Define[V comparable](name string, entries ...Entry[V]) (*Set[V], error) {
	return newSet(name, entries, nil)
}

// MustDefine is like Define but panics on error. Use it for sets declared
// at package level, where a bad definition must stop the program.
func MustDefine[V comparable](name string, entries ...Entry[V]) *Set[V] {
	s, err := Define(name, entries...)
	if err != nil {
		panic(err)
	}
	return s
}

func newSet[V comparable](name string, entries []Entry[V], emptyLabel *string) (*Set[V], error) {
	s := &Set[V]{
		name:       name,
		entries:    make([]Entry[V], 0, len(entries)),
		byName:     make(map[string]int, len(entries)),
		byValue:    make(map[V]int, len(entries)),
		emptyLabel: emptyLabel,
	}

	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("choice set %s: %w", name, ErrEmptyName)
		}
		if _, exists := s.byName[e.Name]; exists {
			return nil, &DuplicateNameError{Set: name, Name: e.Name}
		}
		if i, exists := s.byValue[e.Value]; exists {
			return nil, &DuplicateValueError{Set: name, Value: e.Value, First: s.entries[i].Name, Second: e.Name}
		}
		if e.Label == "" {
			e.Label = LabelFromName(e.Name)
		}

		s.byName[e.Name] = len(s.entries)
		s.byValue[e.Value] = len(s.entries)
		s.entries = append(s.entries, e)
	}

	return s, nil
}

// Name returns the set name.
func (s *Set[V]) Name() string {
	return s.name
}

// Len returns the number of entries.
func (s *Set[V]) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries in definition order.
func (s *Set[V]) Entries() []Entry[V] {
	return slices.Clone(s.entries)
}

// All yields every entry in definition order. Each call starts over.
func (s *Set[V]) All() iter.Seq[Entry[V]] {
	return func(yield func(Entry[V]) bool) {
		for _, e := range s.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// ValueOf returns the entry whose value equals v.
// Returns a *NotFoundError if no entry matches.
func (s *Set[V]) ValueOf(v V) (Entry[V], error) {
	if i, ok := s.byValue[v]; ok {
		return s.entries[i], nil
	}
	return Entry[V]{}, &NotFoundError{Set: s.name, By: "value", Value: v}
}

// LabelOf returns the first entry, in definition order, with the given label.
// Returns a *NotFoundError if no entry matches.
func (s *Set[V]) LabelOf(label string) (Entry[V], error) {
	for _, e := range s.entries {
		if e.Label == label {
			return e, nil
		}
	}
	return Entry[V]{}, &NotFoundError{Set: s.name, By: "label", Value: label}
}

// NameOf returns the entry with the given name. The boolean is false when
// the name is absent; that is not treated as an error.
func (s *Set[V]) NameOf(name string) (Entry[V], bool) {
	if i, ok := s.byName[name]; ok {
		return s.entries[i], true
	}
	return Entry[V]{}, false
}

// Contains reports whether v is the value of an entry.
func (s *Set[V]) Contains(v V) bool {
	_, ok := s.byValue[v]
	return ok
}

// Validate returns nil if v is a member value, or a *NotFoundError.
func (s *Set[V]) Validate(v V) error {
	_, err := s.ValueOf(v)
	return err
}

// Display returns the label of e.
func (s *Set[V]) Display(e Entry[V]) string {
	return e.Label
}

// DisplayValue renders a stored value. Values outside the set are rendered
// as-is so that legacy rows still show something.
func (s *Set[V]) DisplayValue(v V) string {
	if e, err := s.ValueOf(v); err == nil {
		return e.Label
	}
	return fmt.Sprint(v)
}

// EmptyLabel returns the label offered for "no value", if the set has one.
func (s *Set[V]) EmptyLabel() (string, bool) {
	if s.emptyLabel == nil {
		return "", false
	}
	return *s.emptyLabel, true
}

// Names returns entry names in definition order.
func (s *Set[V]) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}

// Values returns entry values in definition order.
func (s *Set[V]) Values() []V {
	values := make([]V, len(s.entries))
	for i, e := range s.entries {
		values[i] = e.Value
	}
	return values
}

// Labels returns entry labels in definition order.
func (s *Set[V]) Labels() []string {
	labels := make([]string, len(s.entries))
	for i, e := range s.entries {
		labels[i] = e.Label
	}
	return labels
}

// Choices returns (value, label) pairs. A set with an empty label starts
// with a blank pair carrying the zero value.
func (s *Set[V]) Choices() []Choice[V] {
	out := make([]Choice[V], 0, len(s.entries)+1)
	if label, ok := s.EmptyLabel(); ok {
		out = append(out, Choice[V]{Label: label, Blank: true})
	}
	for _, e := range s.entries {
		out = append(out, Choice[V]{Value: e.Value, Label: e.Label})
	}
	return out
}

// ChoicesByName returns (name, label) pairs in definition order.
func (s *Set[V]) ChoicesByName() []NamedChoice {
	out := make([]NamedChoice, len(s.entries))
	for i, e := range s.entries {
		out[i] = NamedChoice{Name: e.Name, Label: e.Label}
	}
	return out
}

// Dict maps entry names to labels.
func (s *Set[V]) Dict() map[string]string {
	out := make(map[string]string, len(s.entries))
	for _, e := range s.entries {
		out[e.Name] = e.Label
	}
	return out
}
