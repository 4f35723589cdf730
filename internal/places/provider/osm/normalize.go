package osm

import (
	"fmt"
	"strings"

	"places_gateway_backend/internal/geo"
	"places_gateway_backend/internal/places/provider"
)

// categoryTagKeys are the tag keys projected into the canonical types list,
// each as a "key:value" string.
var categoryTagKeys = [7]string{"amenity", "healthcare", "shop", "tourism", "leisure", "office", "cuisine"}

// primaryCategoryKeys is the lookup order for the name fallback derived from
// a record's primary category.
var primaryCategoryKeys = [6]string{"amenity", "healthcare", "shop", "tourism", "leisure", "office"}

// normalizeElement converts one raw geodata element into the canonical
// shape. Elements without resolvable coordinates return nil.
func normalizeElement(el overpassElement, centerLat, centerLng float64) *provider.NormalizedPlace {
	lat, lng, ok := elementCoords(el)
	if !ok {
		return nil
	}

	return &provider.NormalizedPlace{
		PlaceID:        fmt.Sprintf("%s:%d", el.Type, el.ID),
		Name:           resolveName(el.Tags),
		Lat:            lat,
		Lng:            lng,
		Address:        resolveAddress(el.Tags),
		Types:          resolveTypes(el.Tags),
		DistanceMeters: geo.DistanceMeters(centerLat, centerLng, lat, lng),
	}
}

func elementCoords(el overpassElement) (float64, float64, bool) {
	if el.Lat != nil && el.Lon != nil {
		return *el.Lat, *el.Lon, true
	}
	if el.Center != nil {
		return el.Center.Lat, el.Center.Lon, true
	}
	return 0, 0, false
}

// resolveName picks the display name: explicit name tag, localized name,
// brand, then a human-readable form of the primary category.
func resolveName(tags map[string]string) string {
	for _, key := range []string{"name", "name:en", "brand"} {
		if value := tags[key]; value != "" {
			return value
		}
	}

	for _, key := range primaryCategoryKeys {
		if value := tags[key]; value != "" {
			return humanizeTag(value)
		}
	}

	return ""
}

// humanizeTag turns a tag value like "fast_food" into "Fast Food".
func humanizeTag(value string) string {
	tokens := strings.FieldsFunc(value, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, token := range tokens {
		tokens[i] = strings.ToUpper(token[:1]) + token[1:]
	}
	return strings.Join(tokens, " ")
}

// resolveAddress prefers a full-address tag, otherwise assembles the parts
// that are present, joined with ", ".
func resolveAddress(tags map[string]string) string {
	if full := tags["addr:full"]; full != "" {
		return full
	}

	var parts []string
	street := tags["addr:street"]
	if houseNumber := tags["addr:housenumber"]; houseNumber != "" && street != "" {
		parts = append(parts, houseNumber+" "+street)
	} else if street != "" {
		parts = append(parts, street)
	}
	for _, key := range []string{"addr:city", "addr:state", "addr:postcode", "addr:country"} {
		if value := tags[key]; value != "" {
			parts = append(parts, value)
		}
	}

	return strings.Join(parts, ", ")
}

func resolveTypes(tags map[string]string) []string {
	var types []string
	for _, key := range categoryTagKeys {
		if value := tags[key]; value != "" {
			types = append(types, key+":"+value)
		}
	}
	return types
}
