package reconcile

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estato/geomatch/internal/catalog"
	"github.com/estato/geomatch/internal/match"
	"github.com/estato/geomatch/internal/renames"
)

// Fixture tree: one region with two cities and a village; city 7 contains
// district 8.
func fixtureHierarchy() *catalog.Hierarchy {
	return catalog.NewHierarchy([]catalog.Geo{
		{ID: 1, NameUK: "Україна", Type: catalog.GeoTypeCountry, Lft: 1, Rgt: 40, Lvl: 0},
		{ID: 2, NameUK: "Київська область", Type: catalog.GeoTypeRegion, ParentID: 1, Lft: 2, Rgt: 39, Lvl: 1},
		{ID: 3, NameUK: "Київ", Type: catalog.GeoTypeCity, ParentID: 2, Lft: 3, Rgt: 10, Lvl: 2},
		{ID: 6, NameUK: "Гатне", Type: catalog.GeoTypeVillage, ParentID: 2, Lft: 11, Rgt: 12, Lvl: 2},
		{ID: 7, NameUK: "Бровари", Type: catalog.GeoTypeCity, ParentID: 2, Lft: 13, Rgt: 20, Lvl: 2},
		{ID: 8, NameUK: "Центральний район", Type: catalog.GeoTypeDistrict, ParentID: 7, Lft: 14, Rgt: 15, Lvl: 3},
	})
}

func fixtureStreets() []catalog.Street {
	return []catalog.Street{
		{ID: 100, NameUK: "вулиця Богдана Хмельницького", GeoID: 3},
		{ID: 101, NameUK: "вулиця Симона Петлюри", GeoID: 3},
		{ID: 102, NameUK: "вулиця Володимирська", GeoID: 3},
		{ID: 103, NameUK: "вулиця Зелена", GeoID: 3},
		{ID: 104, NameUK: "вулиця Зелена", GeoID: 7},
		{ID: 105, NameUK: "вулиця Озерна", GeoID: 8},
	}
}

// geo mapping: external geo 50 -> Київ, 51 -> Бровари, 52 -> district 8.
func fixtureGeoMapping() map[int64]int64 {
	return map[int64]int64{50: 3, 51: 7, 52: 8}
}

func newFixtureReconciler(t *testing.T) *Reconciler {
	t.Helper()
	h := fixtureHierarchy()
	idx := catalog.BuildStreetIndex(h, fixtureStreets())
	rt := renames.New([]renames.Entry{
		{Old: "вулиця Леніна", New: "вулиця Симона Петлюри"},
	})
	return New(h, idx, rt, fixtureGeoMapping(), zerolog.Nop())
}

func TestReconcilerExactTier(t *testing.T) {
	r := newFixtureReconciler(t)

	t.Run("abbreviated rank resolves in geo with full confidence", func(t *testing.T) {
		out := r.Run([]Record{{ID: 1, Names: []string{"Б. Хмельницького"}, SourceGeoID: 50, UsageCount: 3}})
		require.Len(t, out.Matches, 1)
		m := out.Matches[0]
		assert.Equal(t, int64(100), m.StreetID)
		assert.Equal(t, match.MethodExactName, m.Method)
		assert.Equal(t, 1.0, m.Confidence)
	})

	t.Run("exact match outside the city keeps lower confidence", func(t *testing.T) {
		out := r.Run([]Record{{ID: 2, Names: []string{"вулиця Озерна"}, SourceGeoID: 50, UsageCount: 1}})
		require.Len(t, out.Matches, 1)
		m := out.Matches[0]
		assert.Equal(t, int64(105), m.StreetID)
		assert.Equal(t, match.MethodExactName, m.Method)
		assert.Equal(t, 0.90, m.Confidence)
	})

	t.Run("district record matches its city streets at priority two", func(t *testing.T) {
		out := r.Run([]Record{{ID: 3, Names: []string{"вулиця Зелена"}, SourceGeoID: 52, UsageCount: 1}})
		require.Len(t, out.Matches, 1)
		m := out.Matches[0]
		assert.Equal(t, int64(104), m.StreetID)
		assert.Equal(t, 1.0, m.Confidence)
	})
}

func TestReconcilerGeoPriorityTieBreak(t *testing.T) {
	r := newFixtureReconciler(t)
	// "Зелена" exists both in the record's own city and in another city of
	// the region; the closer locality must win.
	out := r.Run([]Record{{ID: 4, Names: []string{"вулиця Зелена"}, SourceGeoID: 50, UsageCount: 1}})
	require.Len(t, out.Matches, 1)
	assert.Equal(t, int64(103), out.Matches[0].StreetID)
	assert.Equal(t, 1.0, out.Matches[0].Confidence)
}

func TestReconcilerRenameTier(t *testing.T) {
	r := newFixtureReconciler(t)
	out := r.Run([]Record{{ID: 5, Names: []string{"вулиця Леніна"}, SourceGeoID: 50, UsageCount: 7}})
	require.Len(t, out.Matches, 1)
	m := out.Matches[0]
	assert.Equal(t, int64(101), m.StreetID)
	assert.Equal(t, match.MethodRenamed, m.Method)
	assert.Equal(t, 0.95, m.Confidence)
}

func TestReconcilerFuzzyCityTier(t *testing.T) {
	r := newFixtureReconciler(t)
	// One letter dropped from the canonical in-city name.
	out := r.Run([]Record{{ID: 6, Names: []string{"вулиця Володимиська"}, SourceGeoID: 50, UsageCount: 2}})
	require.Len(t, out.Matches, 1)
	m := out.Matches[0]
	assert.Equal(t, int64(102), m.StreetID)
	assert.Equal(t, match.MethodFuzzyCity, m.Method)
	assert.GreaterOrEqual(t, m.Confidence, 0.90)
}

func TestReconcilerTierShortCircuit(t *testing.T) {
	r := newFixtureReconciler(t)
	// The record satisfies tier 1 exactly, so the fuzzy tiers that would
	// also accept it must never run: exact confidence, exact method.
	out := r.Run([]Record{{ID: 7, Names: []string{"вулиця Володимирська"}, SourceGeoID: 50, UsageCount: 1}})
	require.Len(t, out.Matches, 1)
	assert.Equal(t, match.MethodExactName, out.Matches[0].Method)
	assert.Equal(t, 1.0, out.Matches[0].Confidence)
}

func TestReconcilerSkippedAndUnmatched(t *testing.T) {
	r := newFixtureReconciler(t)

	t.Run("unmapped source geo is parked, never guessed", func(t *testing.T) {
		out := r.Run([]Record{{ID: 8, Names: []string{"вулиця Зелена"}, SourceGeoID: 999, UsageCount: 5}})
		assert.Empty(t, out.Matches)
		require.Len(t, out.Skipped, 1)
		assert.Equal(t, 1, out.Counters.Skipped)
	})

	t.Run("no candidate in any tier is an explicit unmatched", func(t *testing.T) {
		out := r.Run([]Record{{ID: 9, Names: []string{"вулиця Неіснуюча"}, SourceGeoID: 50, UsageCount: 4}})
		assert.Empty(t, out.Matches)
		require.Len(t, out.Unmatched, 1)
		assert.Equal(t, 1, out.Counters.Unmatched)
	})

	t.Run("empty name degrades to unmatched without error", func(t *testing.T) {
		out := r.Run([]Record{{ID: 10, Names: nil, SourceGeoID: 50}})
		assert.Empty(t, out.Matches)
		assert.Len(t, out.Unmatched, 1)
	})
}

func TestReconcilerIdempotent(t *testing.T) {
	r := newFixtureReconciler(t)
	records := []Record{
		{ID: 1, Names: []string{"Б. Хмельницького"}, SourceGeoID: 50, UsageCount: 3},
		{ID: 2, Names: []string{"вулиця Леніна"}, SourceGeoID: 50, UsageCount: 7},
		{ID: 3, Names: []string{"вулиця Невідома"}, SourceGeoID: 50, UsageCount: 2},
		{ID: 4, Names: []string{"вулиця Зелена"}, SourceGeoID: 51, UsageCount: 1},
	}

	first := r.Run(records)
	second := r.Run(records)
	assert.Equal(t, first.Matches, second.Matches)
	assert.Equal(t, first.Mappings("lun"), second.Mappings("lun"))

	var a, b bytes.Buffer
	require.NoError(t, WriteReviewArtifact(&a, first.Unmatched))
	require.NoError(t, WriteReviewArtifact(&b, second.Unmatched))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestWriteReviewArtifact(t *testing.T) {
	unmatched := []Record{
		{ID: 21, Names: []string{"вулиця Перша"}, UsageCount: 2},
		{ID: 22, Names: []string{"вулиця Друга"}, UsageCount: 0},
		{ID: 23, Names: []string{"вулиця Третя"}, UsageCount: 9},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteReviewArtifact(&buf, unmatched))
	got := buf.String()

	assert.NotContains(t, got, "22", "zero-usage record must be excluded")
	// Sorted by usage descending: 23 before 21.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("23")), bytes.Index(buf.Bytes(), []byte("21")))
	assert.Contains(t, got, "source_id,names,usage_count")
}

func TestCountersSummary(t *testing.T) {
	r := newFixtureReconciler(t)
	out := r.Run([]Record{
		{ID: 1, Names: []string{"Б. Хмельницького"}, SourceGeoID: 50, UsageCount: 3},
		{ID: 2, Names: []string{"вулиця Леніна"}, SourceGeoID: 50, UsageCount: 7},
	})
	assert.Equal(t, 1, out.Counters.ByMethod[match.MethodExactName])
	assert.Equal(t, 1, out.Counters.ByMethod[match.MethodRenamed])
	assert.Equal(t, 2, out.Counters.ByPriority[match.PrioritySameGeo])
	assert.InDelta(t, 1.0, out.Counters.MeanConfidence(match.MethodExactName), 1e-9)
	assert.Contains(t, out.Counters.Summary(), "matched=2")
	assert.Contains(t, out.Counters.Summary(), "tier1=2")
}
