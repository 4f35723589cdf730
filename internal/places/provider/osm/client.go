// Package osm provides the open-geodata adapter backed by the Nominatim
// search API and the Overpass interpreter.
package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"places_gateway_backend/internal/places/provider"
	"places_gateway_backend/platform/config"
	"places_gateway_backend/platform/logger"
)

const providerName = "osm"

// Client talks to Nominatim (geocoding) and Overpass (spatial queries).
type Client struct {
	httpClient       *http.Client
	nominatimBaseURL string
	overpassEndpoint string
	queryTimeout     time.Duration
	userAgent        string
	email            string
	log              *logger.Logger
}

// NewClient creates a new OSM adapter. The configured query timeout bounds
// the HTTP client and is also advertised to Overpass in the QL header.
func NewClient(cfg config.OSMConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient:       &http.Client{Timeout: cfg.GetOverpassTimeout()},
		nominatimBaseURL: strings.TrimRight(cfg.GetNominatimBaseURL(), "/"),
		overpassEndpoint: cfg.GetOverpassEndpoint(),
		queryTimeout:     cfg.GetOverpassTimeout(),
		userAgent:        cfg.GetOSMUserAgent(),
		email:            cfg.GetNominatimEmail(),
		log:              log,
	}
}

// Name identifies the backend.
func (c *Client) Name() string {
	return providerName
}

// PagesNatively reports that this backend has no upstream pagination; the
// gateway slices pages out of the exhaustive result set instead.
func (c *Client) PagesNatively() bool {
	return false
}

// Geocode resolves a free-text address through Nominatim.
func (c *Client) Geocode(ctx context.Context, query string) (*provider.GeocodeResult, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", "1")
	params.Set("addressdetails", "1")
	if c.email != "" {
		params.Set("email", c.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.nominatimBaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, provider.NewUpstreamError(providerName, "geocode", err)
	}

	var results []nominatimResult
	if err := c.doJSON(req, "geocode", &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		return nil, provider.NewUpstreamError(providerName, "geocode",
			fmt.Errorf("unparseable coordinates %q,%q", results[0].Lat, results[0].Lon))
	}

	return &provider.GeocodeResult{
		Lat:              lat,
		Lng:              lng,
		FormattedAddress: results[0].DisplayName,
	}, nil
}

// NearbySearch runs one structured query across all three geometry kinds and
// returns the full deduplicated result set sorted by distance from the
// center. The page token is ignored here; paging is the gateway's job.
func (c *Client) NearbySearch(ctx context.Context, query provider.NearbyQuery) (*provider.NearbyResult, error) {
	data, err := c.overpassRequest(ctx, "nearby search", buildNearbyQuery(query, c.timeoutSecs()))
	if err != nil {
		return nil, err
	}

	results := make([]provider.NormalizedPlace, 0, len(data.Elements))
	seen := make(map[string]int)
	for _, el := range data.Elements {
		place := normalizeElement(el, query.Lat, query.Lng)
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

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})

	return &provider.NearbyResult{Results: results}, nil
}

// PlaceDetails parses the composite id back into geometry kind and numeric
// id and fetches the element's tags. An unrecognized id, a missing element,
// or an element with none of the detail tags all mean "nothing to surface".
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*provider.PlaceDetails, error) {
	kind, id, ok := parsePlaceID(placeID)
	if !ok {
		return nil, nil
	}

	data, err := c.overpassRequest(ctx, "place details", buildDetailsQuery(kind, id, c.timeoutSecs()))
	if err != nil {
		return nil, err
	}
	if len(data.Elements) == 0 {
		return nil, nil
	}

	tags := data.Elements[0].Tags
	if tags == nil {
		return nil, nil
	}

	details := &provider.PlaceDetails{
		Phone:        firstTag(tags, "phone", "contact:phone", "contact:mobile"),
		Website:      firstTag(tags, "website", "contact:website", "url"),
		OpeningHours: splitOpeningHours(tags["opening_hours"]),
	}
	if details.Phone == "" && details.Website == "" && len(details.OpeningHours) == 0 {
		return nil, nil
	}
	return details, nil
}

func parsePlaceID(placeID string) (string, int64, bool) {
	kind, rawID, found := strings.Cut(placeID, ":")
	if !found {
		return "", 0, false
	}

	recognized := false
	for _, known := range geometryKinds {
		if kind == known {
			recognized = true
			break
		}
	}
	if !recognized {
		return "", 0, false
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return "", 0, false
	}
	return kind, id, true
}

func firstTag(tags map[string]string, keys ...string) string {
	for _, key := range keys {
		if value := tags[key]; value != "" {
			return value
		}
	}
	return ""
}

func splitOpeningHours(value string) []string {
	if value == "" {
		return nil
	}
	var hours []string
	for _, part := range strings.Split(value, ";") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			hours = append(hours, trimmed)
		}
	}
	return hours
}

func (c *Client) timeoutSecs() int {
	secs := int(c.queryTimeout / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

func (c *Client) overpassRequest(ctx context.Context, op, query string) (*overpassResponse, error) {
	body := url.Values{"data": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.overpassEndpoint, strings.NewReader(body.Encode()))
	if err != nil {
		return nil, provider.NewUpstreamError(providerName, op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var data overpassResponse
	if err := c.doJSON(req, op, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) doJSON(req *http.Request, op string, out any) error {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.email != "" {
		req.Header.Set("From", c.email)
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
