package profile

import (
	"strconv"

	"github.com/zjrosen/choicekit/internal/catalog"
	"github.com/zjrosen/choicekit/internal/choices"
)

// Field names, which double as column names.
const (
	FieldPriority     = "priority"
	FieldLanguage     = "language"
	FieldGender       = "gender"
	FieldCategoryType = "category_type"
	FieldLevel        = "level"
	FieldRegion       = "region"
	FieldAnswer       = "answer"
	FieldSuit         = "suit"
	FieldFruit        = "fruit"
	FieldMedalType    = "medal_type"
	FieldPlace        = "place"
)

var (
	PriorityField     = choices.Field[string]{Name: FieldPriority, Set: catalog.Priority, Default: ptr("L")}
	LanguageField     = choices.Field[string]{Name: FieldLanguage, Set: catalog.Language, Default: ptr("CN")}
	GenderField       = choices.Field[string]{Name: FieldGender, Set: catalog.Gender, Default: ptr("M")}
	CategoryTypeField = choices.Field[string]{Name: FieldCategoryType, Set: catalog.CategoryType, Default: ptr("K")}
	LevelField        = choices.Field[string]{Name: FieldLevel, Set: catalog.Level, Nullable: true}
	RegionField       = choices.Field[string]{Name: FieldRegion, Set: catalog.Region, Default: ptr("华北")}
	AnswerField       = choices.Field[int]{Name: FieldAnswer, Set: catalog.Answer, Default: ptr(0)}
	SuitField         = choices.Field[int]{Name: FieldSuit, Set: catalog.Suit, Default: ptr(4)}
	FruitField        = choices.Field[int]{Name: FieldFruit, Set: catalog.Fruit, Default: ptr(1)}
	MedalTypeField    = choices.Field[string]{Name: FieldMedalType, Set: catalog.MedalType, Default: ptr("BRONZE")}
	PlaceField        = choices.Field[int]{Name: FieldPlace, Set: catalog.Place, Default: ptr(3)}
)

// bindings ties each field definition to its slot on Profile, in column order.
var bindings = []fieldBinding{
	binding[string]{PriorityField, func(p *Profile) **string { return &p.priority }, parseText},
	binding[string]{LanguageField, func(p *Profile) **string { return &p.language }, parseText},
	binding[string]{GenderField, func(p *Profile) **string { return &p.gender }, parseText},
	binding[string]{CategoryTypeField, func(p *Profile) **string { return &p.categoryType }, parseText},
	binding[string]{LevelField, func(p *Profile) **string { return &p.level }, parseText},
	binding[string]{RegionField, func(p *Profile) **string { return &p.region }, parseText},
	binding[int]{AnswerField, func(p *Profile) **int { return &p.answer }, strconv.Atoi},
	binding[int]{SuitField, func(p *Profile) **int { return &p.suit }, strconv.Atoi},
	binding[int]{FruitField, func(p *Profile) **int { return &p.fruit }, strconv.Atoi},
	binding[string]{MedalTypeField, func(p *Profile) **string { return &p.medalType }, parseText},
	binding[int]{PlaceField, func(p *Profile) **int { return &p.place }, strconv.Atoi},
}

// fieldBinding is the type-erased view of a binding.
type fieldBinding interface {
	name() string
	nullable() bool
	describe() choices.Descriptor
	reset(p *Profile)
	assign(p *Profile, raw string) error
	clean(p *Profile) error
	display(p *Profile) string
	value(p *Profile) any
}

type binding[V comparable] struct {
	field choices.Field[V]
	slot  func(*Profile) **V
	parse func(string) (V, error)
}

func (b binding[V]) name() string                 { return b.field.Name }
func (b binding[V]) nullable() bool               { return b.field.Nullable }
func (b binding[V]) describe() choices.Descriptor { return b.field.Set.Describe() }

func (b binding[V]) reset(p *Profile) {
	if d, ok := b.field.DefaultValue(); ok {
		*b.slot(p) = &d
		return
	}
	*b.slot(p) = nil
}

func (b binding[V]) assign(p *Profile, raw string) error {
	if raw == "" && b.field.Nullable {
		*b.slot(p) = nil
		return nil
	}
	v, err := b.parse(raw)
	if err != nil {
		return &choices.ValidationError{Field: b.field.Name, Value: raw, Err: err}
	}
	*b.slot(p) = &v
	return nil
}

func (b binding[V]) clean(p *Profile) error {
	return b.field.Clean(*b.slot(p))
}

func (b binding[V]) display(p *Profile) string {
	return b.field.DisplayOf(*b.slot(p))
}

func (b binding[V]) value(p *Profile) any {
	v := *b.slot(p)
	if v == nil {
		return nil
	}
	return *v
}

func lookup(field string) (fieldBinding, error) {
	for _, b := range bindings {
		if b.name() == field {
			return b, nil
		}
	}
	return nil, &UnknownFieldError{Field: field}
}

func parseText(raw string) (string, error) { return raw, nil }

func ptr[V any](v V) *V { return &v }
