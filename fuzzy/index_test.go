package fuzzy_test

import (
	"testing"

	"github.com/fwojciec/typeahead"
	"github.com/fwojciec/typeahead/fuzzy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *typeahead.Catalog {
	return &typeahead.Catalog{
		Kind: typeahead.KindCity,
		Groups: []typeahead.CatalogGroup{
			{Key: "Colombia", Names: []string{"Bogotá", "Medellín", "Cali", "Barranquilla", "Cartagena"}},
			{Key: "México", Names: []string{"Ciudad de México", "Guadalajara", "Monterrey", "Mexicali"}},
			{Key: "Brasil", Names: []string{"São Paulo", "Rio de Janeiro"}},
			{Key: "Costa Rica", Names: []string{"San José"}},
			{Key: "Puerto Rico", Names: []string{"San Juan"}},
			{Key: "Perú", Names: []string{"Lima"}},
		},
	}
}

func names(records []typeahead.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.DisplayName
	}
	return out
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	idx := fuzzy.NewIndex(testCatalog().Records())

	t.Run("finds accented name from unaccented prefix", func(t *testing.T) {
		t.Parallel()

		results := idx.Search("Bogot")

		require.NotEmpty(t, results)
		assert.Equal(t, "Bogotá", results[0].DisplayName)
	})

	t.Run("diacritics do not change results", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, idx.Search("mexico"), idx.Search("méxico"))
		assert.Equal(t, idx.Search("MEXICO"), idx.Search("México"))
	})

	t.Run("exact prefix match ranks first", func(t *testing.T) {
		t.Parallel()

		results := idx.Search("mex")

		require.NotEmpty(t, results)
		assert.Equal(t, "Mexicali", results[0].DisplayName)
		assert.Contains(t, names(results), "Ciudad de México")
	})

	t.Run("exact name outranks containing name", func(t *testing.T) {
		t.Parallel()

		results := idx.Search("cali")

		require.NotEmpty(t, results)
		assert.Equal(t, "Cali", results[0].DisplayName)
		assert.Contains(t, names(results), "Mexicali")
	})

	t.Run("tolerates a missing letter", func(t *testing.T) {
		t.Parallel()

		results := idx.Search("Medelin")

		require.NotEmpty(t, results)
		assert.Equal(t, "Medellín", results[0].DisplayName)
	})

	t.Run("tolerates a swapped letter", func(t *testing.T) {
		t.Parallel()

		results := idx.Search("Guadalajrea")

		require.NotEmpty(t, results)
		assert.Equal(t, "Guadalajara", results[0].DisplayName)
	})

	t.Run("tolerates reordered words", func(t *testing.T) {
		t.Parallel()

		results := idx.Search("paulo sao")

		require.NotEmpty(t, results)
		assert.Equal(t, "São Paulo", results[0].DisplayName)
	})

	t.Run("matches on group below name matches", func(t *testing.T) {
		t.Parallel()

		results := idx.Search("colombia")

		assert.ElementsMatch(t, []string{"Bogotá", "Medellín", "Cali", "Barranquilla", "Cartagena"}, names(results))
	})

	t.Run("name match outranks group match", func(t *testing.T) {
		t.Parallel()

		idx := fuzzy.NewIndex([]typeahead.Record{
			{ID: "1", DisplayName: "Havana", GroupKey: "Lima"},
			{ID: "2", DisplayName: "Lima", GroupKey: "Perú"},
		})

		results := idx.Search("lima")

		require.Len(t, results, 2)
		assert.Equal(t, "2", results[0].ID)
	})

	t.Run("breaks ties alphabetically", func(t *testing.T) {
		t.Parallel()

		results := idx.Search("san")

		require.GreaterOrEqual(t, len(results), 2)
		assert.Equal(t, []string{"San José", "San Juan"}, names(results[:2]))
	})

	t.Run("returns empty for unknown query", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, idx.Search("xyzzynotreal"))
	})

	t.Run("returns empty for blank query", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, idx.Search("   "))
	})

	t.Run("assigns ranks in output order", func(t *testing.T) {
		t.Parallel()

		results := idx.Search("colombia")

		for i, r := range results {
			assert.Equal(t, i, r.Rank)
			assert.Equal(t, typeahead.OriginLocal, r.Origin)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, idx.Search("ca"), idx.Search("ca"))
	})
}

func TestIndex_WithLimit(t *testing.T) {
	t.Parallel()

	idx := fuzzy.NewIndex(testCatalog().Records(), fuzzy.WithLimit(2))

	assert.Len(t, idx.Search("colombia"), 2)
}

func TestIndex_DefaultLimit(t *testing.T) {
	t.Parallel()

	var records []typeahead.Record
	for _, name := range []string{"Santa Ana", "Santa Clara", "Santa Cruz", "Santa Fe", "Santa Marta", "Santa Rosa", "Santander", "Santiago", "Santo Domingo", "Santos"} {
		records = append(records, typeahead.Record{ID: name, DisplayName: name})
	}
	idx := fuzzy.NewIndex(records)

	assert.Len(t, idx.Search("san"), fuzzy.DefaultLimit)
	assert.Equal(t, len(records), idx.Len())
}
