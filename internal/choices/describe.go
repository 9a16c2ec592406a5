package choices

import (
	"fmt"
	"reflect"
)

// Kind classifies the value type of a set.
type Kind string

const (
	KindText      Kind = "text"
	KindInteger   Kind = "integer"
	KindComposite Kind = "composite"
)

// Lookup selects how raw text is matched against a set.
type Lookup string

const (
	ByAny   Lookup = ""      // value, then name, then label
	ByValue Lookup = "value" // text form of the value
	ByName  Lookup = "name"
	ByLabel Lookup = "label"
)

// ParseLookup converts a flag value into a Lookup. "" and "any" mean ByAny.
func ParseLookup(s string) (Lookup, error) {
	switch s {
	case "", "any":
		return ByAny, nil
	case "value":
		return ByValue, nil
	case "name":
		return ByName, nil
	case "label":
		return ByLabel, nil
	default:
		return ByAny, fmt.Errorf("unknown lookup %q (want value, name, label or any)", s)
	}
}

// Describer is implemented by every *Set and lets callers that do not know
// the value type inspect a set.
type Describer interface {
	Describe() Descriptor
}

var _ Describer = (*Set[string])(nil)

// Descriptor is a type-erased, read-only view of a set.
type Descriptor struct {
	Name       string
	Kind       Kind
	EmptyLabel string
	HasEmpty   bool
	Entries    []DescribedEntry
}

// DescribedEntry is an entry whose value is held as any, plus its text form.
type DescribedEntry struct {
	Name      string
	Value     any
	ValueText string
	Label     string
}

// Describe returns the type-erased view of the set.
func (s *Set[V]) Describe() Descriptor {
	d := Descriptor{
		Name:    s.name,
		Kind:    kindOf[V](),
		Entries: make([]DescribedEntry, len(s.entries)),
	}
	d.EmptyLabel, d.HasEmpty = s.EmptyLabel()
	for i, e := range s.entries {
		d.Entries[i] = DescribedEntry{
			Name:      e.Name,
			Value:     e.Value,
			ValueText: fmt.Sprint(e.Value),
			Label:     e.Label,
		}
	}
	return d
}

func kindOf[V comparable]() Kind {
	switch reflect.TypeFor[V]().Kind() {
	case reflect.String:
		return KindText
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInteger
	default:
		return KindComposite
	}
}

// Resolve finds the entry matching raw using the given strategy.
// ByAny tries the value text first, then the name, then the label.
func (d Descriptor) Resolve(raw string, by Lookup) (DescribedEntry, error) {
	match := func(pick func(DescribedEntry) string) (DescribedEntry, bool) {
		for _, e := range d.Entries {
			if pick(e) == raw {
				return e, true
			}
		}
		return DescribedEntry{}, false
	}
	byValue := func(e DescribedEntry) string { return e.ValueText }
	byName := func(e DescribedEntry) string { return e.Name }
	byLabel := func(e DescribedEntry) string { return e.Label }

	var picks []func(DescribedEntry) string
	switch by {
	case ByAny:
		picks = append(picks, byValue, byName, byLabel)
	case ByValue:
		picks = append(picks, byValue)
	case ByName:
		picks = append(picks, byName)
	case ByLabel:
		picks = append(picks, byLabel)
	default:
		return DescribedEntry{}, fmt.Errorf("unknown lookup %q", by)
	}

	for _, pick := range picks {
		if e, ok := match(pick); ok {
			return e, nil
		}
	}

	kind := string(by)
	if by == ByAny {
		kind = "value, name or label"
	}
	return DescribedEntry{}, &NotFoundError{Set: d.Name, By: kind, Value: raw}
}
