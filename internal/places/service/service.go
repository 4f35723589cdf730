// Package service implements the places gateway: rate check, cache lookup,
// provider dispatch, cache store and response shaping.
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"places_gateway_backend/internal/places/provider"
	"places_gateway_backend/platform/apperr"
	"places_gateway_backend/platform/cache"
	"places_gateway_backend/platform/logger"
	"places_gateway_backend/platform/ratelimit"
)

// Service orchestrates one provider behind the response caches and the
// per-client limiter. Every operation checks the limiter first; a rejection
// short-circuits before any cache or upstream access.
type Service struct {
	prov         provider.Provider
	geocodeCache *cache.Cache[provider.GeocodeResult]
	nearbyCache  *cache.Cache[provider.NearbyResult]
	detailsCache *cache.Cache[provider.PlaceDetails]
	limiter      *ratelimit.Limiter
	pageSize     int
	log          *logger.Logger
}

// New creates the gateway service around the given provider.
func New(
	prov provider.Provider,
	geocodeCache *cache.Cache[provider.GeocodeResult],
	nearbyCache *cache.Cache[provider.NearbyResult],
	detailsCache *cache.Cache[provider.PlaceDetails],
	limiter *ratelimit.Limiter,
	pageSize int,
	log *logger.Logger,
) *Service {
	return &Service{
		prov:         prov,
		geocodeCache: geocodeCache,
		nearbyCache:  nearbyCache,
		detailsCache: detailsCache,
		limiter:      limiter,
		pageSize:     pageSize,
		log:          log,
	}
}

// ProviderName reports which backend is active.
func (s *Service) ProviderName() string {
	return s.prov.Name()
}

// Geocode resolves a free-text address, serving repeats from the geocode
// cache keyed by the normalized query string.
func (s *Service) Geocode(ctx context.Context, clientID, query string) (*provider.GeocodeResult, error) {
	if err := s.checkRate(clientID, "geocode"); err != nil {
		return nil, err
	}

	key := strings.ToLower(strings.TrimSpace(query))
	if cached, ok := s.geocodeCache.Get(key); ok {
		return &cached, nil
	}

	result, err := s.prov.Geocode(ctx, query)
	if err != nil {
		return nil, s.upstream("geocode", err)
	}
	if result == nil {
		return nil, apperr.NotFound("No matching address found.")
	}

	s.geocodeCache.Set(key, *result)
	return result, nil
}

// NearbySearch returns one page of places around the center. Backends with
// native pagination get each page fetched and cached under its own token;
// for exhaustive backends the full radius result set is fetched once, cached
// whole, and pages are sliced out at the client-supplied offset.
func (s *Service) NearbySearch(ctx context.Context, clientID string, query provider.NearbyQuery) (*provider.NearbyResult, error) {
	if err := s.checkRate(clientID, "nearby"); err != nil {
		return nil, err
	}

	baseKey := fmt.Sprintf("%.4f,%.4f:%d:%s", query.Lat, query.Lng, query.RadiusMeters, query.Category)

	if s.prov.PagesNatively() {
		key := baseKey + ":" + query.PageToken
		if cached, ok := s.nearbyCache.Get(key); ok {
			return &cached, nil
		}

		result, err := s.prov.NearbySearch(ctx, query)
		if err != nil {
			return nil, s.upstream("nearby search", err)
		}

		s.nearbyCache.Set(key, *result)
		return result, nil
	}

	full, ok := s.nearbyCache.Get(baseKey)
	if !ok {
		exhaustive := query
		exhaustive.PageToken = ""
		result, err := s.prov.NearbySearch(ctx, exhaustive)
		if err != nil {
			return nil, s.upstream("nearby search", err)
		}
		full = *result
		s.nearbyCache.Set(baseKey, full)
	}

	return slicePage(full.Results, parseOffset(query.PageToken), s.pageSize), nil
}

// PlaceDetails expands a single place. An absent provider result is a valid
// empty answer, not an error, and is not cached.
func (s *Service) PlaceDetails(ctx context.Context, clientID, placeID string) (*provider.PlaceDetails, error) {
	if err := s.checkRate(clientID, "details"); err != nil {
		return nil, err
	}

	if cached, ok := s.detailsCache.Get(placeID); ok {
		return &cached, nil
	}

	result, err := s.prov.PlaceDetails(ctx, placeID)
	if err != nil {
		return nil, s.upstream("place details", err)
	}
	if result == nil {
		return &provider.PlaceDetails{}, nil
	}

	s.detailsCache.Set(placeID, *result)
	return result, nil
}

func (s *Service) checkRate(clientID, op string) error {
	if res := s.limiter.Allow(clientID); !res.Allowed {
		s.log.RateLimitExceeded(clientID, op)
		return apperr.RateLimited("Too many requests. Please slow down.")
	}
	return nil
}

func (s *Service) upstream(op string, err error) error {
	return apperr.Upstream("Place data service unavailable.", err).WithOp(op)
}

// parseOffset decodes the offset-style page token. Malformed or negative
// tokens mean "first page"; pagination corruption is never surfaced.
func parseOffset(token string) int {
	if token == "" {
		return 0
	}
	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

func slicePage(results []provider.NormalizedPlace, offset, pageSize int) *provider.NearbyResult {
	total := len(results)
	if offset > total {
		offset = total
	}
	end := offset + pageSize
	if end > total {
		end = total
	}

	page := &provider.NearbyResult{Results: results[offset:end]}
	if end < total {
		page.NextPageToken = strconv.Itoa(end)
	}
	return page
}
