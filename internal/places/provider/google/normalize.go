package google

import (
	"places_gateway_backend/internal/geo"
	"places_gateway_backend/internal/places/provider"
)

// normalizePlace converts one raw Places record into the canonical shape.
// Records without geometry coordinates are unusable and return nil.
func normalizePlace(raw rawPlace, centerLat, centerLng float64) *provider.NormalizedPlace {
	if raw.Geometry == nil || raw.Geometry.Location == nil {
		return nil
	}
	loc := raw.Geometry.Location

	address := raw.Vicinity
	if address == "" {
		address = raw.FormattedAddress
	}

	place := &provider.NormalizedPlace{
		PlaceID:          raw.PlaceID,
		Name:             raw.Name,
		Lat:              loc.Lat,
		Lng:              loc.Lng,
		Address:          address,
		Rating:           raw.Rating,
		UserRatingsTotal: raw.UserRatingsTotal,
		Types:            raw.Types,
		DistanceMeters:   geo.DistanceMeters(centerLat, centerLng, loc.Lat, loc.Lng),
	}
	if raw.OpeningHours != nil {
		place.OpenNow = raw.OpeningHours.OpenNow
	}

	return place
}
