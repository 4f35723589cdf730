package osm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"places_gateway_backend/internal/places/provider"
	"places_gateway_backend/platform/logger"
)

type testConfig struct {
	baseURL string
}

func (c testConfig) GetNominatimBaseURL() string       { return c.baseURL }
func (c testConfig) GetOverpassEndpoint() string       { return c.baseURL + "/api/interpreter" }
func (c testConfig) GetOverpassTimeout() time.Duration { return 25 * time.Second }
func (c testConfig) GetOSMUserAgent() string           { return "AreaPlaceFinder/test" }
func (c testConfig) GetNominatimEmail() string         { return "ops@example.com" }

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(testConfig{baseURL: server.URL}, logger.New("production"))
}

func TestGeocode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "Dam Square, Amsterdam" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("limit = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "AreaPlaceFinder/test" {
			t.Errorf("user agent = %q", got)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{{
			"lat":          "52.3731",
			"lon":          "4.8926",
			"display_name": "Dam, Amsterdam, Netherlands",
		}})
	})

	result, err := client.Geocode(context.Background(), "Dam Square, Amsterdam")
	if err != nil {
		t.Fatalf("Geocode failed: %v", err)
	}
	if result.Lat != 52.3731 || result.Lng != 4.8926 {
		t.Errorf("coordinates = %v,%v", result.Lat, result.Lng)
	}
	if result.FormattedAddress != "Dam, Amsterdam, Netherlands" {
		t.Errorf("formatted address = %q", result.FormattedAddress)
	}
}

func TestGeocodeNoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]any{})
	})

	result, err := client.Geocode(context.Background(), "nowhere at all")
	if err != nil {
		t.Fatalf("Geocode failed: %v", err)
	}
	if result != nil {
		t.Fatalf("expected absent result, got %+v", result)
	}
}

func TestGeocodeUnparseableCoordinates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{{"lat": "not-a-number", "lon": "4.9"}})
	})

	_, err := client.Geocode(context.Background(), "somewhere")
	var upstreamErr *provider.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestNearbySearch(t *testing.T) {
	var query string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/interpreter" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		query = r.PostForm.Get("data")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"elements": []map[string]any{
				{
					"type": "node", "id": 11, "lat": 52.380, "lon": 4.89,
					"tags": map[string]string{"name": "Far Cafe", "amenity": "cafe"},
				},
				{
					"type": "way", "id": 22,
					"center": map[string]any{"lat": 52.371, "lon": 4.89},
					"tags":   map[string]string{"name": "Near Restaurant", "amenity": "restaurant"},
				},
				// Same element delivered twice; the later record wins.
				{
					"type": "node", "id": 11, "lat": 52.380, "lon": 4.89,
					"tags": map[string]string{"name": "Far Cafe Renamed", "amenity": "cafe"},
				},
				// No coordinates, dropped.
				{"type": "relation", "id": 33, "tags": map[string]string{"name": "Ghost"}},
			},
		})
	})

	result, err := client.NearbySearch(context.Background(), provider.NearbyQuery{
		Lat:          52.370,
		Lng:          4.890,
		RadiusMeters: 1500,
		Category:     provider.CategoryRestaurants,
	})
	if err != nil {
		t.Fatalf("NearbySearch failed: %v", err)
	}

	if !strings.Contains(query, "around:1500,52.37,4.89") {
		t.Errorf("query missing radius clause:\n%s", query)
	}
	if !strings.Contains(query, `node["amenity"~`) || !strings.Contains(query, `relation["amenity"~`) {
		t.Errorf("query missing geometry kinds:\n%s", query)
	}

	if len(result.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(result.Results))
	}
	// Sorted by distance from center: the way's center is closest.
	if result.Results[0].PlaceID != "way:22" {
		t.Errorf("closest = %q", result.Results[0].PlaceID)
	}
	if result.Results[1].PlaceID != "node:11" || result.Results[1].Name != "Far Cafe Renamed" {
		t.Errorf("duplicate merge produced %+v", result.Results[1])
	}
	if result.NextPageToken != "" {
		t.Errorf("unexpected next page token %q", result.NextPageToken)
	}
}

func TestNearbySearchMedicalFilters(t *testing.T) {
	var query string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		query = r.PostForm.Get("data")
		_ = json.NewEncoder(w).Encode(map[string]any{"elements": []any{}})
	})

	_, err := client.NearbySearch(context.Background(), provider.NearbyQuery{
		Lat:          52.37,
		Lng:          4.89,
		RadiusMeters: 2000,
		Category:     provider.CategoryMedical,
	})
	if err != nil {
		t.Fatalf("NearbySearch failed: %v", err)
	}

	if !strings.Contains(query, `["healthcare"]`) {
		t.Errorf("query missing healthcare selector:\n%s", query)
	}
	if !strings.Contains(query, "hospital|clinic|doctors|pharmacy") {
		t.Errorf("query missing medical amenity filter:\n%s", query)
	}
}

func TestPlaceDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if query := r.PostForm.Get("data"); !strings.Contains(query, "node(123)") {
			t.Errorf("query missing element selector:\n%s", query)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"elements": []map[string]any{{
				"type": "node", "id": 123,
				"tags": map[string]string{
					"contact:phone": "+31 20 123 4567",
					"website":       "https://cafe.example",
					"opening_hours": "Mo-Fr 09:00-17:00; Sa 10:00-14:00",
				},
			}},
		})
	})

	details, err := client.PlaceDetails(context.Background(), "node:123")
	if err != nil {
		t.Fatalf("PlaceDetails failed: %v", err)
	}
	if details.Phone != "+31 20 123 4567" {
		t.Errorf("phone = %q", details.Phone)
	}
	if details.Website != "https://cafe.example" {
		t.Errorf("website = %q", details.Website)
	}
	if len(details.OpeningHours) != 2 || details.OpeningHours[0] != "Mo-Fr 09:00-17:00" {
		t.Errorf("opening hours = %v", details.OpeningHours)
	}
}

func TestPlaceDetailsAbsent(t *testing.T) {
	t.Run("unrecognized id skips the upstream call", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected upstream call")
		})

		for _, placeID := range []string{"bogus", "street:42", "node:notanumber", ""} {
			details, err := client.PlaceDetails(context.Background(), placeID)
			if err != nil || details != nil {
				t.Errorf("%q: got %+v, %v", placeID, details, err)
			}
		}
	})

	t.Run("missing element", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"elements": []any{}})
		})

		details, err := client.PlaceDetails(context.Background(), "node:999")
		if err != nil || details != nil {
			t.Errorf("got %+v, %v", details, err)
		}
	})

	t.Run("no detail tags", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"elements": []map[string]any{{
					"type": "node", "id": 7,
					"tags": map[string]string{"name": "Quiet Place"},
				}},
			})
		})

		details, err := client.PlaceDetails(context.Background(), "node:7")
		if err != nil || details != nil {
			t.Errorf("got %+v, %v", details, err)
		}
	})
}

func TestUpstreamHTTPFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "interpreter overloaded", http.StatusTooManyRequests)
	})

	_, err := client.NearbySearch(context.Background(), provider.NearbyQuery{
		Lat:          52.37,
		Lng:          4.89,
		RadiusMeters: 1000,
		Category:     provider.CategoryRestaurants,
	})
	var upstreamErr *provider.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstreamErr.Provider != "osm" {
		t.Errorf("provider = %q", upstreamErr.Provider)
	}
}
