// Package google provides the commercial Places/Geocoding API adapter.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"places_gateway_backend/internal/places/provider"
	"places_gateway_backend/platform/config"
	"places_gateway_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

const providerName = "google"

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

const typeRestaurant = "restaurant"

// medicalSubQueries lists the upstream query types the medical category fans
// out to. Order matters: the merge is last-writer-wins per place_id.
var medicalSubQueries = [3]string{"hospital", "doctor", "pharmacy"}

// Client is the HTTP client for the Google Maps APIs.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *logger.Logger
}

// NewClient creates a new Google adapter.
func NewClient(cfg config.GoogleConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.GetGoogleBaseURL(),
		apiKey:     cfg.GetGoogleMapsServerKey(),
		log:        log,
	}
}

// Name identifies the backend.
func (c *Client) Name() string {
	return providerName
}

// PagesNatively reports that this backend honors continuation tokens itself.
func (c *Client) PagesNatively() bool {
	return true
}

// Geocode resolves a free-text address through the Geocoding API.
func (c *Client) Geocode(ctx context.Context, query string) (*provider.GeocodeResult, error) {
	params := url.Values{}
	params.Set("address", query)
	params.Set("key", c.apiKey)

	var data geocodeResponse
	if err := c.getJSON(ctx, "geocode", "/geocode/json?"+params.Encode(), &data); err != nil {
		return nil, err
	}

	if data.Status != statusOK && data.Status != statusZeroResults {
		return nil, provider.NewUpstreamError(providerName, "geocode", fmt.Errorf("unexpected status %s", data.Status))
	}
	if data.Status == statusZeroResults || len(data.Results) == 0 {
		return nil, nil
	}

	first := data.Results[0]
	if first.Geometry == nil || first.Geometry.Location == nil {
		return nil, nil
	}

	return &provider.GeocodeResult{
		Lat:              first.Geometry.Location.Lat,
		Lng:              first.Geometry.Location.Lng,
		FormattedAddress: first.FormattedAddress,
	}, nil
}

// NearbySearch runs a nearby search. The restaurants category maps to one
// upstream query type and passes the continuation token straight through;
// medical fans out to three query types issued concurrently and joined
// before merging — a failed sub-query fails the whole call.
func (c *Client) NearbySearch(ctx context.Context, query provider.NearbyQuery) (*provider.NearbyResult, error) {
	if query.Category == provider.CategoryRestaurants {
		data, err := c.nearbyRequest(ctx, query, typeRestaurant, query.PageToken)
		if err != nil {
			return nil, err
		}

		results := make([]provider.NormalizedPlace, 0, len(data.Results))
		for _, raw := range data.Results {
			if place := normalizePlace(raw, query.Lat, query.Lng); place != nil {
				results = append(results, *place)
			}
		}
		return &provider.NearbyResult{Results: results, NextPageToken: data.NextPageToken}, nil
	}

	subTokens := decodeCompoundToken(query.PageToken)

	var responses [3]*nearbyResponse
	g, gctx := errgroup.WithContext(ctx)
	for i, subType := range medicalSubQueries {
		i, subType := i, subType
		g.Go(func() error {
			data, err := c.nearbyRequest(gctx, query, subType, subTokens[subType])
			if err != nil {
				return err
			}
			responses[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in fixed sub-query order; a later record for an already seen
	// place_id replaces the earlier one in place.
	var results []provider.NormalizedPlace
	seen := make(map[string]int)
	for _, data := range responses {
		for _, raw := range data.Results {
			place := normalizePlace(raw, query.Lat, query.Lng)
			if place == nil {
				continue
			}
			if idx, ok := seen[place.PlaceID]; ok {
				results[idx] = *place
			} else {
				seen[place.PlaceID] = len(results)
				results = append(results, *place)
			}
		}
	}

	next := encodeCompoundToken(map[string]string{
		medicalSubQueries[0]: responses[0].NextPageToken,
		medicalSubQueries[1]: responses[1].NextPageToken,
		medicalSubQueries[2]: responses[2].NextPageToken,
	})

	return &provider.NearbyResult{Results: results, NextPageToken: next}, nil
}

// PlaceDetails fetches the extended fields of one place. A non-OK status or
// missing result means the place has nothing to surface, not a failure.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*provider.PlaceDetails, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "formatted_phone_number,website,opening_hours")
	params.Set("key", c.apiKey)

	var data detailsResponse
	if err := c.getJSON(ctx, "place details", "/place/details/json?"+params.Encode(), &data); err != nil {
		return nil, err
	}

	if data.Status != statusOK || data.Result == nil {
		return nil, nil
	}

	details := &provider.PlaceDetails{
		Phone:   data.Result.FormattedPhoneNumber,
		Website: data.Result.Website,
	}
	if data.Result.OpeningHours != nil {
		details.OpeningHours = data.Result.OpeningHours.WeekdayText
	}
	return details, nil
}

func (c *Client) nearbyRequest(ctx context.Context, query provider.NearbyQuery, placeType, pageToken string) (*nearbyResponse, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%v,%v", query.Lat, query.Lng))
	params.Set("radius", strconv.Itoa(query.RadiusMeters))
	params.Set("type", placeType)
	params.Set("key", c.apiKey)
	if pageToken != "" {
		params.Set("pagetoken", pageToken)
	}

	var data nearbyResponse
	if err := c.getJSON(ctx, "nearby search", "/place/nearbysearch/json?"+params.Encode(), &data); err != nil {
		return nil, err
	}

	if data.Status != statusOK && data.Status != statusZeroResults {
		return nil, provider.NewUpstreamError(providerName, "nearby search", fmt.Errorf("unexpected status %s", data.Status))
	}

	return &data, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return provider.NewUpstreamError(providerName, op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamCallFailed(providerName, op, err)
		return provider.NewUpstreamError(providerName, op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("status %d", resp.StatusCode)
		c.log.UpstreamCallFailed(providerName, op, err)
		return provider.NewUpstreamError(providerName, op, err)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.UpstreamCallFailed(providerName, op, err)
		return provider.NewUpstreamError(providerName, op, err)
	}

	return nil
}

var _ provider.Provider = (*Client)(nil)
