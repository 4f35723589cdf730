// Package transport defines the request shapes of the places API.
package transport

// GeocodeRequest resolves a free-text address to coordinates.
type GeocodeRequest struct {
	Query string `json:"query" validate:"required,min=3"`
}

// NearbySearchRequest searches for places around a center point.
// Lat/Lng are pointers so that 0 remains a valid coordinate.
type NearbySearchRequest struct {
	Lat          *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng          *float64 `json:"lng" validate:"required,min=-180,max=180"`
	RadiusMeters int      `json:"radiusMeters" validate:"required,min=100,max=10000"`
	Category     string   `json:"category" validate:"required,oneof=restaurants medical"`
	PageToken    string   `json:"pageToken,omitempty"`
}

// PlaceDetailsRequest expands a single place.
type PlaceDetailsRequest struct {
	PlaceID string `json:"placeId" validate:"required,min=2"`
}
