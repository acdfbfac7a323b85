package resolver

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estato/geomatch/internal/catalog"
	"github.com/estato/geomatch/internal/complexes"
	"github.com/estato/geomatch/internal/match"
	"github.com/estato/geomatch/internal/spatial"
)

// fakeStore serves canned proximity hits and records the geo scope of every
// query it receives.
type fakeStore struct {
	scoped   map[int64][]spatial.StreetHit
	unscoped []spatial.StreetHit
	calls    []int64
}

func (f *fakeStore) NearestStreets(_ context.Context, _, _ float64, geoID int64, _ int, _ float64) ([]spatial.StreetHit, error) {
	f.calls = append(f.calls, geoID)
	if geoID != 0 {
		return f.scoped[geoID], nil
	}
	return f.unscoped, nil
}

func (f *fakeStore) GeoContaining(context.Context, float64, float64) (int64, error) {
	return 0, nil
}

func testNames() *NameCache {
	c := NewNameCache()
	c.Reload([]catalog.Street{
		{ID: 103, NameUK: "Зелена", NameRU: "Зеленая", GeoID: 3},
		{ID: 105, NameUK: "Озерна", NameRU: "Озерная", GeoID: 8},
	})
	return c
}

func TestResolveTextParsed(t *testing.T) {
	store := &fakeStore{unscoped: []spatial.StreetHit{
		{StreetID: 103, GeoID: 3, DistanceMeters: 40},
		{StreetID: 105, GeoID: 8, DistanceMeters: 120},
	}}
	r := New(store, testNames(), zerolog.Nop())

	res, ok, err := r.Resolve(context.Background(), Request{
		Lng:  30.52,
		Lat:  50.45,
		Text: "Продам квартиру, вулиця Озерна 5, гарний стан",
	})
	require.NoError(t, err)
	require.True(t, ok)
	// The mention names the farther street; text outranks proximity here.
	assert.Equal(t, int64(105), res.StreetID)
	assert.Equal(t, match.MethodTextParsed, res.Method)
	assert.Equal(t, 1.0, res.Confidence)
}

func TestResolveTextFoundDistanceBuckets(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		expected float64
	}{
		{name: "within 50m", distance: 40, expected: 0.9 + 0.03},
		{name: "within 200m", distance: 120, expected: 0.5 + 0.03},
		{name: "beyond 350m", distance: 420, expected: 0.1 + 0.03},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{unscoped: []spatial.StreetHit{
				{StreetID: 105, GeoID: 8, DistanceMeters: tt.distance},
			}}
			r := New(store, testNames(), zerolog.Nop())

			// No street-type keyword, so extraction finds nothing and the
			// substring scan carries the match.
			res, ok, err := r.Resolve(context.Background(), Request{
				Lng:  30.52,
				Lat:  50.45,
				Text: "Затишна квартира біля озера, Озерна, гарний краєвид",
			})
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, int64(105), res.StreetID)
			assert.Equal(t, match.MethodTextFound, res.Method)
			assert.InDelta(t, tt.expected, res.Confidence, 1e-9)
		})
	}
}

func TestResolveNearestFallback(t *testing.T) {
	store := &fakeStore{unscoped: []spatial.StreetHit{
		{StreetID: 103, GeoID: 3, DistanceMeters: 40},
		{StreetID: 105, GeoID: 8, DistanceMeters: 120},
	}}
	r := New(store, testNames(), zerolog.Nop())

	res, ok, err := r.Resolve(context.Background(), Request{Lng: 30.52, Lat: 50.45})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(103), res.StreetID)
	assert.Equal(t, match.MethodNearest, res.Method)
	assert.InDelta(t, 0.9, res.Confidence, 1e-9)
}

func TestResolveScopedThenUnscoped(t *testing.T) {
	store := &fakeStore{
		scoped: map[int64][]spatial.StreetHit{},
		unscoped: []spatial.StreetHit{
			{StreetID: 105, GeoID: 8, DistanceMeters: 30},
		},
	}
	r := New(store, testNames(), zerolog.Nop())

	res, ok, err := r.Resolve(context.Background(), Request{Lng: 30.52, Lat: 50.45, GeoIDHint: 8})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(105), res.StreetID)
	assert.Equal(t, []int64{8, 0}, store.calls)
}

func TestResolveScopedHitSkipsUnscoped(t *testing.T) {
	store := &fakeStore{
		scoped: map[int64][]spatial.StreetHit{
			8: {{StreetID: 105, GeoID: 8, DistanceMeters: 30}},
		},
	}
	r := New(store, testNames(), zerolog.Nop())

	_, ok, err := r.Resolve(context.Background(), Request{Lng: 30.52, Lat: 50.45, GeoIDHint: 8})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int64{8}, store.calls)
}

func TestResolveNoCandidates(t *testing.T) {
	store := &fakeStore{}
	r := New(store, testNames(), zerolog.Nop())

	_, ok, err := r.Resolve(context.Background(), Request{Lng: 30.52, Lat: 50.45})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveMemoizesTextFreeRequests(t *testing.T) {
	store := &fakeStore{unscoped: []spatial.StreetHit{
		{StreetID: 103, GeoID: 3, DistanceMeters: 40},
	}}
	memo := NewCoordCache()
	r := New(store, testNames(), zerolog.Nop(), WithMemo(memo))

	first, ok, err := r.Resolve(context.Background(), Request{Lng: 30.52, Lat: 50.45})
	require.NoError(t, err)
	require.True(t, ok)
	queriesAfterFirst := len(store.calls)

	second, ok, err := r.Resolve(context.Background(), Request{Lng: 30.52, Lat: 50.45})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, second)
	assert.Equal(t, queriesAfterFirst, len(store.calls))

	// Text-bearing requests bypass the memo.
	_, _, err = r.Resolve(context.Background(), Request{Lng: 30.52, Lat: 50.45, Text: "деякий опис"})
	require.NoError(t, err)
	assert.Greater(t, len(store.calls), queriesAfterFirst)

	memo.Clear()
	assert.Equal(t, 0, memo.Len())
}

func TestResolveTrustTextPolicy(t *testing.T) {
	store := &fakeStore{unscoped: []spatial.StreetHit{
		{StreetID: 103, GeoID: 3, DistanceMeters: 40},
	}}
	policy := NewSourcePolicy([]string{"lun"})
	r := New(store, testNames(), zerolog.Nop(), WithPolicy(policy))

	// The text names no candidate street. A trusted-text source gets no
	// nearest fallback; any other source does.
	req := Request{Lng: 30.52, Lat: 50.45, Text: "Гарна квартира в центрі міста"}

	req.Source = "lun"
	_, ok, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, ok)

	req.Source = "dim"
	res, ok, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, match.MethodNearest, res.Method)
}

func TestResolveComplexAnchorShortCircuits(t *testing.T) {
	store := &fakeStore{unscoped: []spatial.StreetHit{
		{StreetID: 103, GeoID: 3, DistanceMeters: 40},
	}}
	devs := complexes.New([]complexes.Development{{
		ID:       7,
		Names:    []string{"ЖК Комфорт Таун"},
		StreetID: 200,
		GeoID:    3,
		Polygon: []complexes.Point{
			{Lng: 30.51, Lat: 50.44},
			{Lng: 30.53, Lat: 50.44},
			{Lng: 30.53, Lat: 50.46},
			{Lng: 30.51, Lat: 50.46},
		},
	}})
	r := New(store, testNames(), zerolog.Nop(), WithComplexes(devs))

	res, ok, err := r.Resolve(context.Background(), Request{Lng: 30.52, Lat: 50.45})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(200), res.StreetID)
	assert.Equal(t, match.MethodCoordinates, res.Method)
	assert.Empty(t, store.calls)
}
