// Package provider defines the capability contract shared by the upstream
// place-data backends and the canonical record shapes they all produce.
package provider

// Category is the logical search category exposed by the gateway.
type Category string

const (
	CategoryRestaurants Category = "restaurants"
	CategoryMedical     Category = "medical"
)

// GeocodeResult is a resolved free-text address.
type GeocodeResult struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formattedAddress"`
}

// NormalizedPlace is the canonical place record, derived from exactly one
// upstream record plus the query center. Immutable once produced.
type NormalizedPlace struct {
	// PlaceID is namespaced by the producing provider and unique within it.
	PlaceID          string   `json:"placeId"`
	Name             string   `json:"name"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
	Address          string   `json:"address"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"userRatingsTotal,omitempty"`
	OpenNow          *bool    `json:"openNow,omitempty"`
	Types            []string `json:"types,omitempty"`
	// DistanceMeters is always recomputed against the request's center,
	// never carried over from another query.
	DistanceMeters float64 `json:"distanceMeters"`
}

// PlaceDetails holds the lazily fetched extended fields of a single place.
type PlaceDetails struct {
	Phone        string   `json:"phone,omitempty"`
	Website      string   `json:"website,omitempty"`
	OpeningHours []string `json:"openingHours,omitempty"`
}

// NearbyResult is one page of nearby-search results, deduplicated by PlaceID.
type NearbyResult struct {
	Results       []NormalizedPlace `json:"results"`
	NextPageToken string            `json:"nextPageToken,omitempty"`
}

// NearbyQuery is a nearby-search request as seen by an adapter.
type NearbyQuery struct {
	Lat          float64
	Lng          float64
	RadiusMeters int
	Category     Category
	// PageToken is an opaque continuation value. Adapters without native
	// pagination ignore it; the gateway slices their full result set.
	PageToken string
}
