package provider

import (
	"context"
	"fmt"
)

// Provider is the capability set every upstream backend implements. Absent
// results are reported as (nil, nil): a geocode query matching nothing, or a
// place carrying no detail fields worth surfacing. Failed upstream calls
// return an *UpstreamError.
type Provider interface {
	// Name identifies the backend ("google", "osm") for logs and health.
	Name() string
	// PagesNatively reports whether NearbySearch honors PageToken itself.
	// When false, NearbySearch returns the exhaustive result set for the
	// radius and the gateway serves pages by offset slicing.
	PagesNatively() bool
	Geocode(ctx context.Context, query string) (*GeocodeResult, error)
	NearbySearch(ctx context.Context, query NearbyQuery) (*NearbyResult, error)
	PlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error)
}

// UpstreamError reports a transport failure or unexpected upstream status.
// A "no results" upstream status is never an UpstreamError.
type UpstreamError struct {
	Provider string
	Op       string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps err as an upstream failure of the given operation.
func NewUpstreamError(provider, op string, err error) *UpstreamError {
	return &UpstreamError{Provider: provider, Op: op, Err: err}
}
