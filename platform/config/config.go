// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider identifiers accepted in PLACES_PROVIDER.
const (
	ProviderGoogle = "google"
	ProviderOSM    = "osm"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// GoogleConfig provides settings for the Google Places/Geocoding client.
type GoogleConfig interface {
	GetGoogleBaseURL() string
	GetGoogleMapsServerKey() string
}

// OSMConfig provides settings for the Nominatim/Overpass client.
type OSMConfig interface {
	GetNominatimBaseURL() string
	GetOverpassEndpoint() string
	GetOverpassTimeout() time.Duration
	GetOSMUserAgent() string
	GetNominatimEmail() string
}

// CacheConfig provides sizing and TTLs for the response caches.
type CacheConfig interface {
	GetGeocodeCacheSize() int
	GetGeocodeCacheTTL() time.Duration
	GetNearbyCacheSize() int
	GetNearbyCacheTTL() time.Duration
	GetDetailsCacheSize() int
	GetDetailsCacheTTL() time.Duration
}

// RateLimitConfig provides settings for the per-client fixed-window limiter.
type RateLimitConfig interface {
	GetRateLimit() int
	GetRateWindow() time.Duration
}

// PlacesConfig combines everything the places module needs.
type PlacesConfig interface {
	GoogleConfig
	OSMConfig
	CacheConfig
	RateLimitConfig
	GetPlacesProvider() string
	GetNearbyPageSize() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	CORSAllowAll        bool
	CORSOrigins         []string
	CORSAllowCreds      bool
	PlacesProvider      string
	GoogleBaseURL       string
	GoogleMapsServerKey string
	NominatimBaseURL    string
	OverpassEndpoint    string
	OverpassTimeout     time.Duration
	OSMUserAgent        string
	NominatimEmail      string
	GeocodeCacheSize    int
	GeocodeCacheTTL     time.Duration
	NearbyCacheSize     int
	NearbyCacheTTL      time.Duration
	DetailsCacheSize    int
	DetailsCacheTTL     time.Duration
	RateLimit           int
	RateWindow          time.Duration
	NearbyPageSize      int
	BurstPerSecond      float64
	Burst               int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// GoogleConfig implementation
func (c *Config) GetGoogleBaseURL() string       { return c.GoogleBaseURL }
func (c *Config) GetGoogleMapsServerKey() string { return c.GoogleMapsServerKey }

// OSMConfig implementation
func (c *Config) GetNominatimBaseURL() string       { return c.NominatimBaseURL }
func (c *Config) GetOverpassEndpoint() string       { return c.OverpassEndpoint }
func (c *Config) GetOverpassTimeout() time.Duration { return c.OverpassTimeout }
func (c *Config) GetOSMUserAgent() string           { return c.OSMUserAgent }
func (c *Config) GetNominatimEmail() string         { return c.NominatimEmail }

// CacheConfig implementation
func (c *Config) GetGeocodeCacheSize() int          { return c.GeocodeCacheSize }
func (c *Config) GetGeocodeCacheTTL() time.Duration { return c.GeocodeCacheTTL }
func (c *Config) GetNearbyCacheSize() int           { return c.NearbyCacheSize }
func (c *Config) GetNearbyCacheTTL() time.Duration  { return c.NearbyCacheTTL }
func (c *Config) GetDetailsCacheSize() int          { return c.DetailsCacheSize }
func (c *Config) GetDetailsCacheTTL() time.Duration { return c.DetailsCacheTTL }

// RateLimitConfig implementation
func (c *Config) GetRateLimit() int            { return c.RateLimit }
func (c *Config) GetRateWindow() time.Duration { return c.RateWindow }

// PlacesConfig implementation
func (c *Config) GetPlacesProvider() string { return c.PlacesProvider }
func (c *Config) GetNearbyPageSize() int    { return c.NearbyPageSize }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		CORSAllowCreds:      strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		PlacesProvider:      strings.ToLower(getEnv("PLACES_PROVIDER", ProviderOSM)),
		GoogleBaseURL:       getEnv("GOOGLE_BASE_URL", "https://maps.googleapis.com/maps/api"),
		GoogleMapsServerKey: getEnv("GOOGLE_MAPS_SERVER_KEY", ""),
		NominatimBaseURL:    getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		OverpassEndpoint:    getEnv("OVERPASS_ENDPOINT", "https://overpass-api.de/api/interpreter"),
		OverpassTimeout:     mustDuration(getEnv("OVERPASS_TIMEOUT", "25s")),
		OSMUserAgent:        getEnv("OSM_USER_AGENT", "AreaPlaceFinder/1.0 (contact not set)"),
		NominatimEmail:      getEnv("OSM_NOMINATIM_EMAIL", ""),
		GeocodeCacheSize:    mustInt(getEnv("GEOCODE_CACHE_SIZE", "200")),
		GeocodeCacheTTL:     mustDuration(getEnv("GEOCODE_CACHE_TTL", "24h")),
		NearbyCacheSize:     mustInt(getEnv("NEARBY_CACHE_SIZE", "300")),
		NearbyCacheTTL:      mustDuration(getEnv("NEARBY_CACHE_TTL", "10m")),
		DetailsCacheSize:    mustInt(getEnv("DETAILS_CACHE_SIZE", "300")),
		DetailsCacheTTL:     mustDuration(getEnv("DETAILS_CACHE_TTL", "24h")),
		RateLimit:           mustInt(getEnv("RATE_LIMIT", "30")),
		RateWindow:          mustDuration(getEnv("RATE_WINDOW", "60s")),
		NearbyPageSize:      mustInt(getEnv("NEARBY_PAGE_SIZE", "30")),
		BurstPerSecond:      mustFloat(getEnv("BURST_PER_SECOND", "10")),
		Burst:               mustInt(getEnv("BURST", "20")),
	}

	if cfg.PlacesProvider != ProviderGoogle && cfg.PlacesProvider != ProviderOSM {
		return nil, fmt.Errorf("PLACES_PROVIDER must be %q or %q, got %q", ProviderGoogle, ProviderOSM, cfg.PlacesProvider)
	}
	if cfg.PlacesProvider == ProviderGoogle && cfg.GoogleMapsServerKey == "" {
		return nil, fmt.Errorf("GOOGLE_MAPS_SERVER_KEY is required when PLACES_PROVIDER is %q", ProviderGoogle)
	}
	if cfg.RateLimit < 1 {
		return nil, fmt.Errorf("RATE_LIMIT must be at least 1")
	}
	if cfg.NearbyPageSize < 1 {
		return nil, fmt.Errorf("NEARBY_PAGE_SIZE must be at least 1")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
