package profile

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/choicekit/internal/choices"
)

func TestNewProfile_Defaults(t *testing.T) {
	before := time.Now()
	p := NewProfile()

	require.Equal(t, int64(0), p.ID(), "ID should be 0 for new profiles")
	_, err := uuid.Parse(p.GUID())
	require.NoError(t, err, "GUID should be a UUID")
	require.False(t, p.CreatedAt().Before(before))
	require.Equal(t, p.CreatedAt(), p.UpdatedAt())

	s := p.Snapshot()
	require.Equal(t, "L", s.Priority)
	require.Equal(t, "CN", s.Language)
	require.Equal(t, "M", s.Gender)
	require.Equal(t, "K", s.CategoryType)
	require.Nil(t, s.Level, "level has no default")
	require.Equal(t, "华北", s.Region)
	require.Equal(t, 0, s.Answer)
	require.Equal(t, 4, s.Suit)
	require.Equal(t, 1, s.Fruit)
	require.Equal(t, "BRONZE", s.MedalType)
	require.Equal(t, 3, s.Place)

	require.NoError(t, p.Validate(), "defaults are valid")
}

func TestNewProfile_UniqueGUIDs(t *testing.T) {
	require.NotEqual(t, NewProfile().GUID(), NewProfile().GUID())
}

func TestProfile_Display(t *testing.T) {
	p := NewProfile()

	tests := []struct {
		field string
		want  string
	}{
		{FieldPriority, "Low"},
		{FieldLanguage, "Chinese"},
		{FieldGender, "Male"},
		{FieldCategoryType, "科普"},
		{FieldLevel, ""},
		{FieldRegion, "Hb"},
		{FieldAnswer, "No"},
		{FieldSuit, "Club"},
		{FieldFruit, "苹果"},
		{FieldMedalType, "Bronze"},
		{FieldPlace, "Third"},
		{"nope", ""},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			require.Equal(t, tt.want, p.Display(tt.field))
		})
	}
}

func TestProfile_Set(t *testing.T) {
	p := NewProfile()

	require.NoError(t, p.Set(FieldPriority, "H"))
	require.NoError(t, p.Set(FieldSuit, "2"))
	require.NoError(t, p.Set(FieldLevel, "SR"))

	require.Equal(t, "H", p.Value(FieldPriority))
	require.Equal(t, 2, p.Value(FieldSuit))
	require.Equal(t, "高级", p.Display(FieldLevel))
	require.Equal(t, "Spade", p.Display(FieldSuit))
	require.NoError(t, p.Validate())
}

func TestProfile_Set_EmptyClearsNullable(t *testing.T) {
	p := NewProfile()
	require.NoError(t, p.Set(FieldLevel, "FR"))
	require.NoError(t, p.Set(FieldLevel, ""))
	require.Nil(t, p.Value(FieldLevel))
	require.Nil(t, p.Snapshot().Level)
}

func TestProfile_Set_IntegerParse(t *testing.T) {
	p := NewProfile()
	err := p.Set(FieldFruit, "peach")

	var verr *choices.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, FieldFruit, verr.Field)
	require.Equal(t, 1, p.Value(FieldFruit), "failed parse leaves the value unchanged")
}

func TestProfile_Set_UnknownField(t *testing.T) {
	err := NewProfile().Set("colour", "red")
	require.ErrorIs(t, err, ErrUnknownField)
	require.Contains(t, err.Error(), "colour")
}

func TestProfile_Set_DoesNotValidate(t *testing.T) {
	p := NewProfile()
	require.NoError(t, p.Set(FieldPriority, "X"), "assignment stores out-of-set values")
	require.Equal(t, "X", p.Value(FieldPriority))
	require.Equal(t, "X", p.Display(FieldPriority), "unknown values display as text")
}

func TestProfile_Validate_JoinsFailures(t *testing.T) {
	p := NewProfile()
	require.NoError(t, p.Set(FieldPriority, "X"))
	require.NoError(t, p.Set(FieldSuit, "9"))
	require.NoError(t, p.Set(FieldRegion, ""), "region is not nullable, empty is just text")

	err := p.Validate()
	require.Error(t, err)
	require.ErrorIs(t, err, choices.ErrNotFound)

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok, "Validate should join errors")
	require.Len(t, joined.Unwrap(), 3)

	var fields []string
	for _, e := range joined.Unwrap() {
		var verr *choices.ValidationError
		require.True(t, errors.As(e, &verr))
		fields = append(fields, verr.Field)
	}
	require.Equal(t, []string{FieldPriority, FieldRegion, FieldSuit}, fields)
}

func TestReconstitute_RoundTrip(t *testing.T) {
	level := "GR"
	created := time.Unix(1000, 0)
	s := Snapshot{
		ID: 7, GUID: "g-1",
		Priority: "M", Language: "EN", Gender: "F", CategoryType: "X",
		Level: &level, Region: "华中",
		Answer: 1, Suit: 3, Fruit: 2, MedalType: "GOLD", Place: 1,
		CreatedAt: created, UpdatedAt: created,
	}

	p := Reconstitute(s)
	require.Equal(t, int64(7), p.ID())
	require.Equal(t, "g-1", p.GUID())
	require.Equal(t, s, p.Snapshot())
	require.Equal(t, "Hz", p.Display(FieldRegion))
	require.Equal(t, "Yes", p.Display(FieldAnswer))
	require.NoError(t, p.Validate())
}

func TestFields(t *testing.T) {
	require.Equal(t, []string{
		"priority", "language", "gender", "category_type", "level", "region",
		"answer", "suit", "fruit", "medal_type", "place",
	}, Fields())

	require.True(t, IsField("medal_type"))
	require.False(t, IsField("id"))
	require.True(t, Nullable(FieldLevel))
	require.False(t, Nullable(FieldAnswer))
}

func TestSetFor(t *testing.T) {
	d, err := SetFor(FieldAnswer)
	require.NoError(t, err)
	require.Equal(t, "Answer", d.Name)
	require.Equal(t, choices.KindInteger, d.Kind)

	_, err = SetFor("nope")
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{GUID: "abc"}
	require.ErrorIs(t, err, ErrProfileNotFound)
	require.Equal(t, "profile abc not found", err.Error())
}
