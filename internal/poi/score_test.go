package poi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Kata Beach area, Phuket.
const (
	propLat = 7.8203
	propLng = 98.2980
)

func TestDistanceKnownPair(t *testing.T) {
	// Phuket Town to Patong is roughly 10.7 km as the crow flies.
	d := Distance(7.8804, 98.3923, 7.8966, 98.2966)
	assert.InDelta(t, 10.7, d, 0.5)

	// Zero distance to itself.
	assert.InDelta(t, 0, Distance(propLat, propLng, propLat, propLng), 1e-9)
}

func TestDistanceIsSymmetric(t *testing.T) {
	a := Distance(7.88, 98.39, 7.89, 98.29)
	b := Distance(7.89, 98.29, 7.88, 98.39)
	assert.InDelta(t, a, b, 1e-9)
}

func TestIsWithinRadius(t *testing.T) {
	assert.True(t, IsWithinRadius(propLat, propLng, propLat+0.001, propLng, 1))
	assert.False(t, IsWithinRadius(propLat, propLng, propLat+0.1, propLng, 1))
}

// offsetKM shifts latitude by roughly the given number of kilometers.
func offsetKM(km float64) float64 {
	return km / 111.0
}

func TestSummarizeBucketsAndSorts(t *testing.T) {
	places := []Place{
		{Name: "Far Beach", Category: CategoryBeach, Latitude: propLat + offsetKM(3), Longitude: propLng},
		{Name: "Near Beach", Category: CategoryBeach, Latitude: propLat + offsetKM(0.5), Longitude: propLng},
		{Name: "School", Category: CategorySchool, Latitude: propLat + offsetKM(1), Longitude: propLng},
		{Name: "Distant Mall", Category: CategoryShopping, Latitude: propLat + offsetKM(20), Longitude: propLng},
	}

	summaries := Summarize(propLat, propLng, places, 5)
	require.Len(t, summaries, 2)

	assert.Equal(t, CategoryBeach, summaries[0].Category)
	assert.Equal(t, 2, summaries[0].Count)
	assert.Equal(t, "Near Beach", summaries[0].NearestName)
	assert.InDelta(t, 0.5, summaries[0].NearestKM, 0.05)

	assert.Equal(t, CategorySchool, summaries[1].Category)
	assert.Equal(t, 1, summaries[1].Count)
}

func TestScoreBeachfront(t *testing.T) {
	places := []Place{
		{Name: "Beach", Category: CategoryBeach, Latitude: propLat, Longitude: propLng},
	}

	s := Score(propLat, propLng, places)
	assert.Equal(t, 100.0, s.Beach)
	// No nightlife anywhere means perfectly quiet.
	assert.Equal(t, 100.0, s.Quietness)
	assert.Equal(t, 0.0, s.Family)
	assert.Equal(t, 0.0, s.Convenience)
}

func TestScoreNoPlaces(t *testing.T) {
	s := Score(propLat, propLng, nil)
	assert.Equal(t, 0.0, s.Beach)
	assert.Equal(t, 0.0, s.Family)
	assert.Equal(t, 0.0, s.Convenience)
	assert.Equal(t, 100.0, s.Quietness)
	assert.Equal(t, 25.0, s.Overall)
}

func TestScoreNightlifePenalty(t *testing.T) {
	quietSpot := Score(propLat, propLng, []Place{
		{Category: CategoryNightlife, Latitude: propLat + offsetKM(3), Longitude: propLng},
	})
	loudSpot := Score(propLat, propLng, []Place{
		{Category: CategoryNightlife, Latitude: propLat + offsetKM(0.2), Longitude: propLng},
	})

	// Nightlife beyond walking distance does not hurt quietness.
	assert.Equal(t, 100.0, quietSpot.Quietness)
	assert.Less(t, loudSpot.Quietness, 20.0)
}

func TestScoreConvenienceDensity(t *testing.T) {
	var places []Place
	for i := 0; i < 25; i++ {
		places = append(places, Place{Category: CategoryRestaurant, Latitude: propLat + offsetKM(0.3), Longitude: propLng})
	}

	s := Score(propLat, propLng, places)
	// Capped at 100 no matter how dense the neighborhood gets.
	assert.Equal(t, 100.0, s.Convenience)
}

func TestScoreIsDeterministic(t *testing.T) {
	places := []Place{
		{Category: CategoryBeach, Latitude: propLat + offsetKM(1), Longitude: propLng},
		{Category: CategorySchool, Latitude: propLat + offsetKM(2), Longitude: propLng},
		{Category: CategoryNightlife, Latitude: propLat + offsetKM(1), Longitude: propLng},
	}
	assert.Equal(t, Score(propLat, propLng, places), Score(propLat, propLng, places))
}
