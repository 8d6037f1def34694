package poi

import (
	"math"
	"sort"
)

type Category string

const (
	CategoryBeach      Category = "beach"
	CategoryRestaurant Category = "restaurant"
	CategorySchool     Category = "school"
	CategoryHospital   Category = "hospital"
	CategoryShopping   Category = "shopping"
	CategoryNightlife  Category = "nightlife"
	CategoryTransport  Category = "transport"
)

// Place is a point of interest with its coordinates. DistanceKM is filled in
// relative to the property being scored.
type Place struct {
	Name       string   `json:"name"`
	Category   Category `json:"category"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	DistanceKM float64  `json:"distance_km"`
}

type CategorySummary struct {
	Category    Category `json:"category"`
	Count       int      `json:"count"`
	NearestName string   `json:"nearest_name"`
	NearestKM   float64  `json:"nearest_km"`
}

// Scores are 0-100 composite ratings derived from nearby places.
type Scores struct {
	Beach       float64 `json:"beach" bson:"beach"`
	Family      float64 `json:"family" bson:"family"`
	Convenience float64 `json:"convenience" bson:"convenience"`
	Quietness   float64 `json:"quietness" bson:"quietness"`
	Overall     float64 `json:"overall" bson:"overall"`
}

const (
	// Proximity contributions fade to zero at this distance.
	proximityCutoffKM = 5.0
	// Density counting and nightlife penalties only look this far.
	walkableRadiusKM = 2.0
)

// Summarize buckets places within radiusKM of the property by category,
// sorted nearest-first inside each bucket.
func Summarize(lat, lng float64, places []Place, radiusKM float64) []CategorySummary {
	nearby := map[Category][]Place{}
	for _, p := range places {
		d := Distance(lat, lng, p.Latitude, p.Longitude)
		if d > radiusKM {
			continue
		}
		p.DistanceKM = d
		nearby[p.Category] = append(nearby[p.Category], p)
	}

	summaries := make([]CategorySummary, 0, len(nearby))
	for cat, members := range nearby {
		sort.Slice(members, func(i, j int) bool { return members[i].DistanceKM < members[j].DistanceKM })
		summaries = append(summaries, CategorySummary{
			Category:    cat,
			Count:       len(members),
			NearestName: members[0].Name,
			NearestKM:   round2(members[0].DistanceKM),
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Category < summaries[j].Category })
	return summaries
}

// Score derives the composite ratings for a property from its surroundings.
// Pure arithmetic over the supplied places; identical input gives identical
// output.
func Score(lat, lng float64, places []Place) Scores {
	var nearest = map[Category]float64{}
	var walkable = map[Category]int{}

	for _, p := range places {
		d := Distance(lat, lng, p.Latitude, p.Longitude)
		if cur, ok := nearest[p.Category]; !ok || d < cur {
			nearest[p.Category] = d
		}
		if d <= walkableRadiusKM {
			walkable[p.Category]++
		}
	}

	beach := proximityScore(nearest, CategoryBeach)

	// Schools and hospitals each carry half of the family score.
	family := (proximityScore(nearest, CategorySchool) + proximityScore(nearest, CategoryHospital)) / 2

	// Convenience rewards walkable density, five points per place.
	count := walkable[CategoryShopping] + walkable[CategoryRestaurant] + walkable[CategoryTransport]
	convenience := math.Min(100, float64(count)*5)

	// Quietness starts at 100 and drops the closer nightlife gets.
	quietness := 100.0
	if d, ok := nearest[CategoryNightlife]; ok && d < walkableRadiusKM {
		quietness = 100 * (d / walkableRadiusKM)
	}

	s := Scores{
		Beach:       round1(beach),
		Family:      round1(family),
		Convenience: round1(convenience),
		Quietness:   round1(quietness),
	}
	s.Overall = round1((s.Beach + s.Family + s.Convenience + s.Quietness) / 4)
	return s
}

// proximityScore maps the nearest distance in a category to 0-100, linearly
// fading out at the cutoff. Missing category scores zero.
func proximityScore(nearest map[Category]float64, cat Category) float64 {
	d, ok := nearest[cat]
	if !ok || d >= proximityCutoffKM {
		return 0
	}
	return 100 * (1 - d/proximityCutoffKM)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
