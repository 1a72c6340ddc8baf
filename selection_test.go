package typeahead_test

import (
	"testing"

	"github.com/fwojciec/typeahead"
	"github.com/stretchr/testify/assert"
)

func TestSelectionSet(t *testing.T) {
	t.Parallel()

	t.Run("preserves insertion order", func(t *testing.T) {
		t.Parallel()

		var s typeahead.SelectionSet
		s.Add("c")
		s.Add("a")
		s.Add("b")

		assert.Equal(t, []string{"c", "a", "b"}, s.IDs())
	})

	t.Run("ignores duplicates", func(t *testing.T) {
		t.Parallel()

		var s typeahead.SelectionSet
		assert.True(t, s.Add("a"))
		assert.False(t, s.Add("a"))

		assert.Equal(t, 1, s.Len())
	})

	t.Run("ignores empty id", func(t *testing.T) {
		t.Parallel()

		var s typeahead.SelectionSet
		assert.False(t, s.Add(""))
		assert.Zero(t, s.Len())
	})

	t.Run("removes by id keeping order", func(t *testing.T) {
		t.Parallel()

		var s typeahead.SelectionSet
		s.Add("a")
		s.Add("b")
		s.Add("c")

		assert.True(t, s.Remove("b"))
		assert.False(t, s.Remove("b"))
		assert.Equal(t, []string{"a", "c"}, s.IDs())
		assert.False(t, s.Contains("b"))
	})

	t.Run("IDs returns a copy", func(t *testing.T) {
		t.Parallel()

		var s typeahead.SelectionSet
		s.Add("a")

		got := s.IDs()
		got[0] = "mutated"

		assert.Equal(t, []string{"a"}, s.IDs())
	})
}
