package presentation

import (
	"github.com/zjrosen/choicekit/internal/choices"
	"github.com/zjrosen/choicekit/internal/profile"
)

// ChoiceSetDTO represents a choice set for presentation
type ChoiceSetDTO struct {
	Name       string     `json:"name" yaml:"name"`
	Kind       string     `json:"kind" yaml:"kind"`
	EmptyLabel *string    `json:"empty_label,omitempty" yaml:"empty_label,omitempty"`
	Entries    []EntryDTO `json:"entries" yaml:"entries"`
}

// EntryDTO is one entry of a set. Composite values are shown in text form.
type EntryDTO struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// FieldDTO is one field of a profile: the stored value and its label.
// Value is nil for NULL.
type FieldDTO struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// ProfileDTO represents a profile for presentation
type ProfileDTO struct {
	GUID      string     `json:"guid" yaml:"guid"`
	Fields    []FieldDTO `json:"fields" yaml:"fields"`
	CreatedAt string     `json:"created_at" yaml:"created_at"`
	UpdatedAt string     `json:"updated_at" yaml:"updated_at"`
}

const timeLayout = "2006-01-02 15:04:05"

// FromDescribedEntry converts a described entry to a DTO.
func FromDescribedEntry(e choices.DescribedEntry, kind choices.Kind) EntryDTO {
	value := e.Value
	if kind == choices.KindComposite {
		value = e.ValueText
	}
	return EntryDTO{Name: e.Name, Value: value, Label: e.Label}
}

// FromDescriptor converts a set descriptor to a DTO.
func FromDescriptor(d choices.Descriptor) ChoiceSetDTO {
	dto := ChoiceSetDTO{
		Name:    d.Name,
		Kind:    string(d.Kind),
		Entries: make([]EntryDTO, len(d.Entries)),
	}
	if d.HasEmpty {
		label := d.EmptyLabel
		dto.EmptyLabel = &label
	}
	for i, e := range d.Entries {
		dto.Entries[i] = FromDescribedEntry(e, d.Kind)
	}
	return dto
}

// FromDescriptors converts a slice of descriptors to DTOs
func FromDescriptors(ds []choices.Descriptor) []ChoiceSetDTO {
	dtos := make([]ChoiceSetDTO, len(ds))
	for i, d := range ds {
		dtos[i] = FromDescriptor(d)
	}
	return dtos
}

// FromProfile converts a domain profile to a DTO, with fields in column order.
func FromProfile(p *profile.Profile) ProfileDTO {
	fields := profile.Fields()
	dto := ProfileDTO{
		GUID:      p.GUID(),
		Fields:    make([]FieldDTO, len(fields)),
		CreatedAt: p.CreatedAt().Format(timeLayout),
		UpdatedAt: p.UpdatedAt().Format(timeLayout),
	}
	for i, name := range fields {
		dto.Fields[i] = FieldDTO{
			Name:  name,
			Value: p.Value(name),
			Label: p.Display(name),
		}
	}
	return dto
}

// FromProfiles converts a slice of domain profiles to DTOs
func FromProfiles(ps []*profile.Profile) []ProfileDTO {
	dtos := make([]ProfileDTO, len(ps))
	for i, p := range ps {
		dtos[i] = FromProfile(p)
	}
	return dtos
}

// Field returns the named field, if present.
func (p ProfileDTO) Field(name string) (FieldDTO, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDTO{}, false
}
