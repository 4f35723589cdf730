package osm

import (
	"fmt"
	"strings"

	"places_gateway_backend/internal/places/provider"
)

// geometryKinds are the Overpass element kinds that contribute candidates.
var geometryKinds = [3]string{"node", "way", "relation"}

// Tag filters per category. Medical matches the enumerated amenity values OR
// any record carrying a healthcare tag (two separate selectors unioned by
// the enclosing group).
const (
	restaurantsAmenityFilter = `["amenity"~"^(restaurant|cafe|fast_food|pub|bar|food_court|kebab|pizza|burger|chinese|indian|thai|mexican|japanese|sushi|barbecue|ice_cream|bakery|coffee|tea|wine_bar)$"]`
	medicalAmenityFilter     = `["amenity"~"^(hospital|clinic|doctors|pharmacy|dentist|optician|veterinary|nursing_home)$"]`
	healthcarePresentFilter  = `["healthcare"]`
)

func categoryFilters(category provider.Category) []string {
	if category == provider.CategoryRestaurants {
		return []string{restaurantsAmenityFilter}
	}
	return []string{medicalAmenityFilter, healthcarePresentFilter}
}

// buildNearbyQuery renders the Overpass QL for one nearby search. Every
// filter expands across the three geometry kinds inside one union group, so
// a single upstream call covers the whole radius.
func buildNearbyQuery(query provider.NearbyQuery, timeoutSecs int) string {
	around := fmt.Sprintf("(around:%d,%v,%v)", query.RadiusMeters, query.Lat, query.Lng)

	var selectors []string
	for _, filter := range categoryFilters(query.Category) {
		for _, kind := range geometryKinds {
			selectors = append(selectors, fmt.Sprintf("%s%s%s;", kind, filter, around))
		}
	}

	return fmt.Sprintf("[out:json][timeout:%d];\n(\n%s\n);\nout body center;",
		timeoutSecs, strings.Join(selectors, "\n"))
}

// buildDetailsQuery renders the Overpass QL for a single element lookup.
func buildDetailsQuery(kind string, id int64, timeoutSecs int) string {
	return fmt.Sprintf("[out:json][timeout:%d];\n%s(%d);\nout tags center;", timeoutSecs, kind, id)
}
