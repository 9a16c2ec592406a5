package choices

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	s, err := NewBuilder[string]("Level").
		Add("FRESHMAN", "FR", "大一新生").
		Add("SOPHOMORE", "SO", "大二").
		Build()

	require.NoError(t, err)
	require.Equal(t, "Level", s.Name())
	require.Equal(t, []string{"FR", "SO"}, s.Values())
	require.Equal(t, []string{"大一新生", "大二"}, s.Labels())
	_, hasEmpty := s.EmptyLabel()
	require.False(t, hasEmpty)
}

func TestBuilder_Build_DuplicateValue(t *testing.T) {
	_, err := NewBuilder[int]("Fruit").
		Add("APPLE", 1, "苹果").
		Add("PEACH", 1, "桃子").
		Build()

	require.ErrorIs(t, err, ErrDuplicateValue)
}

func TestBuilder_BuildIsRepeatable(t *testing.T) {
	b := NewBuilder[int]("Place").Add("FIRST", 1, "")

	first, err := b.Build()
	require.NoError(t, err)
	b.Add("SECOND", 2, "")
	second, err := b.Build()
	require.NoError(t, err)

	require.Equal(t, 1, first.Len(), "earlier sets are not affected by later Adds")
	require.Equal(t, 2, second.Len())
}

func TestBuilder_MustBuild_Panics(t *testing.T) {
	require.Panics(t, func() {
		NewBuilder[int]("Bad").Add("A", 1, "").Add("A", 2, "").MustBuild()
	})
}

func TestTextChoices(t *testing.T) {
	s, err := TextChoices("MedalType", "GOLD SILVER BRONZE")
	require.NoError(t, err)

	require.Equal(t, []string{"GOLD", "SILVER", "BRONZE"}, s.Names())
	require.Equal(t, []string{"GOLD", "SILVER", "BRONZE"}, s.Values())
	require.Equal(t, []string{"Gold", "Silver", "Bronze"}, s.Labels())
}

func TestTextChoices_Duplicate(t *testing.T) {
	_, err := TextChoices("Dup", "A", "B A")
	require.ErrorIs(t, err, ErrDuplicateName)
}

func TestIntegerChoices(t *testing.T) {
	s, err := IntegerChoices("Place", "FIRST", "SECOND THIRD")
	require.NoError(t, err)

	require.Equal(t, []int{1, 2, 3}, s.Values())
	require.Equal(t, []string{"First", "Second", "Third"}, s.Labels())

	third, err := s.ValueOf(3)
	require.NoError(t, err)
	require.Equal(t, "THIRD", third.Name)
}

func TestLabelFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"LOW", "Low"},
		{"IN_PROGRESS", "In Progress"},
		{"HB", "Hb"},
		{"apollo_11", "Apollo 11"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, LabelFromName(tt.name))
		})
	}
}
