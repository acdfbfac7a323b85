package complexes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estato/geomatch/internal/match"
)

func testMatcher() *Matcher {
	return New([]Development{
		{
			ID:       1,
			Names:    []string{"ЖК Комфорт Таун"},
			StreetID: 100,
			GeoID:    3,
			Center:   &Point{Lng: 30.600, Lat: 50.440},
			Polygon: []Point{
				{Lng: 30.590, Lat: 50.430},
				{Lng: 30.610, Lat: 50.430},
				{Lng: 30.610, Lat: 50.450},
				{Lng: 30.590, Lat: 50.450},
			},
		},
		{
			ID:       2,
			Names:    []string{"ЖК Патріотика (Patriotika)"},
			StreetID: 101,
			GeoID:    3,
			Center:   &Point{Lng: 30.7001, Lat: 50.440},
		},
		{
			ID:       3,
			Names:    []string{"ЖК Комфорт Лайф Парк"},
			StreetID: 0,
			GeoID:    3,
		},
	})
}

func TestCleanNames(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "type prefix stripped",
			raw:      "ЖК Комфорт Таун",
			expected: []string{"комфорт таун"},
		},
		{
			name:     "parenthetical becomes its own variant",
			raw:      "ЖК Патріотика (Patriotika)",
			expected: []string{"patriotika", "патриотика"},
		},
		{
			name:     "building suffix stripped",
			raw:      "ЖК Патріотика, буд 7",
			expected: []string{"патриотика"},
		},
		{
			name:     "russian prefix and trailing number",
			raw:      "Жилой комплекс Соломенский 2",
			expected: []string{"соломенскии"},
		},
		{
			name:     "nothing left",
			raw:      "ЖК",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanNames(tt.raw))
		})
	}
}

func TestMatchTextTypePrefixed(t *testing.T) {
	m := testMatcher()

	got, ok := m.MatchText("Продам 2к квартиру в ЖК Комфорт Таун, вул. Регенераторна", AuthoritativeMinScore)
	require.True(t, ok)
	assert.Equal(t, int64(1), got.Development.ID)
	assert.Equal(t, match.MethodTextFound, got.Method)
	// Full span, early in text, keyword-prefixed: capped at 1.
	assert.InDelta(t, 1.0, got.Score, 1e-9)
}

func TestMatchTextBareNameCrossLanguage(t *testing.T) {
	m := testMatcher()

	// Russian spelling of the name, no development-type keyword.
	got, ok := m.MatchText("Уютная квартира, Патриотика, рядом озеро", BatchMinScore)
	require.True(t, ok)
	assert.Equal(t, int64(2), got.Development.ID)
	// Full span + early text, no keyword bonus.
	assert.InDelta(t, 0.8, got.Score, 1e-9)
}

func TestMatchTextWordPairPartial(t *testing.T) {
	m := testMatcher()

	// Only two of the three name words appear; span bonus is partial.
	got, ok := m.MatchText("здається квартира, лайф парк поруч", BatchMinScore)
	require.True(t, ok)
	assert.Equal(t, int64(3), got.Development.ID)
	// "лаиф парк" is 9 of 17 runes of "комфорт лаиф парк", plus early bonus.
	assert.InDelta(t, 0.6*9.0/17+0.2, got.Score, 1e-9)
}

func TestMatchTextBelowThreshold(t *testing.T) {
	m := testMatcher()

	_, ok := m.MatchText("здається квартира, лайф парк поруч", AuthoritativeMinScore)
	assert.False(t, ok)

	_, ok = m.MatchText("Продам гараж біля ринку", BatchMinScore)
	assert.False(t, ok)
}

func TestMatchPoint(t *testing.T) {
	m := testMatcher()

	t.Run("inside polygon", func(t *testing.T) {
		got, ok := m.MatchPoint(30.600, 50.440)
		require.True(t, ok)
		assert.Equal(t, int64(1), got.Development.ID)
		assert.Equal(t, match.MethodCoordinates, got.Method)
		assert.Equal(t, 1.0, got.Score)
	})

	t.Run("near center", func(t *testing.T) {
		got, ok := m.MatchPoint(30.700, 50.440)
		require.True(t, ok)
		assert.Equal(t, int64(2), got.Development.ID)
		assert.Less(t, got.DistanceMeters, maxCenterDistance)
	})

	t.Run("too far", func(t *testing.T) {
		_, ok := m.MatchPoint(31.500, 50.440)
		assert.False(t, ok)
	})
}

func TestMatchPrefersCoordinatesOverText(t *testing.T) {
	m := testMatcher()

	// Point inside development 1 while the text names development 2.
	got, ok := m.Match(30.600, 50.440, true, "квартира в ЖК Патріотика", AuthoritativeMinScore)
	require.True(t, ok)
	assert.Equal(t, int64(1), got.Development.ID)
	assert.Equal(t, match.MethodCoordinates, got.Method)

	// Without coordinates the text wins.
	got, ok = m.Match(0, 0, false, "квартира в ЖК Патріотика", AuthoritativeMinScore)
	require.True(t, ok)
	assert.Equal(t, int64(2), got.Development.ID)
}
