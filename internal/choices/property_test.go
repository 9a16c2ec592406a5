package choices

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// drawEntries draws entries with distinct names and distinct values.
func drawEntries(t *rapid.T) []Entry[int] {
	names := rapid.SliceOfNDistinct(rapid.StringMatching(`[A-Z][A-Z_]{0,7}`), 0, 20, rapid.ID[string]).Draw(t, "names")
	values := rapid.SliceOfNDistinct(rapid.IntRange(-1000, 1000), len(names), len(names), rapid.ID[int]).Draw(t, "values")
	labels := rapid.SliceOfN(rapid.StringN(1, 12, -1), len(names), len(names)).Draw(t, "labels")

	entries := make([]Entry[int], len(names))
	for i := range names {
		entries[i] = Entry[int]{Name: names[i], Value: values[i], Label: labels[i]}
	}
	return entries
}

func TestProperty_DefinePreservesOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		entries := drawEntries(t)

		s, err := Define("Generated", entries...)
		require.NoError(t, err)

		require.True(t, slices.Equal(entries, slices.Collect(s.All())))
		require.True(t, slices.Equal(entries, s.Entries()))
		require.Equal(t, len(entries), s.Len())
	})
}

func TestProperty_LookupsRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s, err := Define("Generated", drawEntries(t)...)
		require.NoError(t, err)

		for e := range s.All() {
			byValue, err := s.ValueOf(e.Value)
			require.NoError(t, err)
			require.Equal(t, e, byValue)

			byName, ok := s.NameOf(e.Name)
			require.True(t, ok)
			require.Equal(t, e, byName)

			byLabel, err := s.LabelOf(e.Label)
			require.NoError(t, err)
			require.Equal(t, e.Label, byLabel.Label)

			require.Equal(t, e.Label, s.Display(e))
		}
	})
}

func TestProperty_AbsentKeys(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s, err := Define("Generated", drawEntries(t)...)
		require.NoError(t, err)

		missing := rapid.IntRange(-2000, 2000).Filter(func(v int) bool { return !s.Contains(v) }).Draw(t, "missing")
		_, err = s.ValueOf(missing)
		require.ErrorIs(t, err, ErrNotFound)

		// Generated names never contain lowercase letters.
		_, ok := s.NameOf("absent")
		require.False(t, ok)
	})
}

func TestProperty_DuplicatesRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		entries := drawEntries(t)
		if len(entries) == 0 {
			t.Skip("need at least one entry to duplicate")
		}
		i := rapid.IntRange(0, len(entries)-1).Draw(t, "index")

		dupName := append(slices.Clone(entries), Entry[int]{Name: entries[i].Name, Value: 5000})
		_, err := Define("Generated", dupName...)
		require.ErrorIs(t, err, ErrDuplicateName)

		dupValue := append(slices.Clone(entries), Entry[int]{Name: "lower_case_name", Value: entries[i].Value})
		_, err = Define("Generated", dupValue...)
		require.ErrorIs(t, err, ErrDuplicateValue)
	})
}
