package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test tree:
//
//	1 country (1..20)
//	  2 region (2..19)
//	    3 city (3..10)
//	      4 district (4..5)
//	    6 village (11..12)
func testGeos() []Geo {
	return []Geo{
		{ID: 1, NameUK: "Україна", Type: GeoTypeCountry, Lft: 1, Rgt: 20, Lvl: 0},
		{ID: 2, NameUK: "Київська область", Type: GeoTypeRegion, ParentID: 1, Lft: 2, Rgt: 19, Lvl: 1},
		{ID: 3, NameUK: "Київ", Type: GeoTypeCity, ParentID: 2, Lft: 3, Rgt: 10, Lvl: 2},
		{ID: 4, NameUK: "Подільський район", Type: GeoTypeDistrict, ParentID: 3, Lft: 4, Rgt: 5, Lvl: 3},
		{ID: 6, NameUK: "Гатне", Type: GeoTypeVillage, ParentID: 2, Lft: 11, Rgt: 12, Lvl: 2},
	}
}

func TestHierarchy(t *testing.T) {
	h := NewHierarchy(testGeos())

	t.Run("city of district is the city", func(t *testing.T) {
		assert.Equal(t, int64(3), h.CityOf(4))
	})
	t.Run("city of itself", func(t *testing.T) {
		assert.Equal(t, int64(3), h.CityOf(3))
	})
	t.Run("village counts as city level", func(t *testing.T) {
		assert.Equal(t, int64(6), h.CityOf(6))
	})
	t.Run("region resolution", func(t *testing.T) {
		assert.Equal(t, int64(2), h.RegionOf(4))
		assert.Equal(t, int64(2), h.RegionOf(3))
		assert.Equal(t, int64(2), h.RegionOf(6))
	})
	t.Run("region of region has no city", func(t *testing.T) {
		assert.Equal(t, int64(0), h.CityOf(2))
	})
	t.Run("unknown geo", func(t *testing.T) {
		assert.Equal(t, int64(0), h.CityOf(99))
		assert.Equal(t, int64(0), h.RegionOf(99))
	})
	t.Run("nested set containment", func(t *testing.T) {
		assert.True(t, h.Contains(2, 4))
		assert.True(t, h.Contains(3, 4))
		assert.False(t, h.Contains(4, 3))
		assert.False(t, h.Contains(3, 6))
		assert.False(t, h.Contains(3, 3))
	})
}

func TestBuildStreetIndex(t *testing.T) {
	h := NewHierarchy(testGeos())
	streets := []Street{
		{ID: 10, NameUK: "вулиця Богдана Хмельницького", GeoID: 3},
		{ID: 11, NameUK: "вулиця Озерна", NameRU: "улица Озёрная", GeoID: 4},
		{ID: 12, NameUK: "вулиця Шевченка", GeoID: 999}, // unresolvable region
	}
	idx := BuildStreetIndex(h, streets)

	t.Run("exact lookup by full variant", func(t *testing.T) {
		hits := idx.Exact(2, "богдана хмельницького")
		require.Len(t, hits, 1)
		assert.Equal(t, int64(10), hits[0].Street.ID)
		assert.Equal(t, int64(3), hits[0].CityID)
		assert.Equal(t, int64(2), hits[0].RegionID)
	})

	t.Run("exact lookup by bare surname variant", func(t *testing.T) {
		hits := idx.Exact(2, "хмельницького")
		require.Len(t, hits, 1)
		assert.Equal(t, int64(10), hits[0].Street.ID)
	})

	t.Run("both language names indexed", func(t *testing.T) {
		assert.NotEmpty(t, idx.Exact(2, "озерна"))
		assert.NotEmpty(t, idx.Exact(2, "озерная"))
	})

	t.Run("unknown region yields nothing", func(t *testing.T) {
		assert.Empty(t, idx.Exact(7, "шевченка"))
		assert.Empty(t, idx.Region(7))
	})

	t.Run("street without resolvable region skipped", func(t *testing.T) {
		for _, e := range idx.Region(2) {
			assert.NotEqual(t, int64(12), e.Street.ID)
		}
	})

	t.Run("region list deterministic and sorted by id", func(t *testing.T) {
		entries := idx.Region(2)
		require.Len(t, entries, 2)
		assert.Equal(t, int64(10), entries[0].Street.ID)
		assert.Equal(t, int64(11), entries[1].Street.ID)
	})
}
