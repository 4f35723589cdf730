// Package places wires the places gateway module: provider selection,
// response caches, the per-client limiter, service and HTTP handler.
package places

import (
	"fmt"

	apphttp "places_gateway_backend/internal/http"
	"places_gateway_backend/internal/places/handler"
	"places_gateway_backend/internal/places/provider"
	"places_gateway_backend/internal/places/provider/google"
	"places_gateway_backend/internal/places/provider/osm"
	"places_gateway_backend/internal/places/service"
	"places_gateway_backend/platform/cache"
	"places_gateway_backend/platform/config"
	"places_gateway_backend/platform/logger"
	"places_gateway_backend/platform/ratelimit"
	"places_gateway_backend/platform/validator"
)

// Module bundles the places gateway behind the HTTP app.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule builds the whole module from configuration. The active provider
// is chosen here; everything downstream sees only the provider interface.
func NewModule(cfg config.PlacesConfig, val *validator.Validator, log *logger.Logger) (*Module, error) {
	var prov provider.Provider
	switch cfg.GetPlacesProvider() {
	case config.ProviderGoogle:
		prov = google.NewClient(cfg, log)
	case config.ProviderOSM:
		prov = osm.NewClient(cfg, log)
	default:
		return nil, fmt.Errorf("unknown places provider %q", cfg.GetPlacesProvider())
	}

	geocodeCache := cache.New[provider.GeocodeResult](cache.Config{
		MaxEntries: cfg.GetGeocodeCacheSize(),
		TTL:        cfg.GetGeocodeCacheTTL(),
		Label:      "geocode",
	}, log)
	nearbyCache := cache.New[provider.NearbyResult](cache.Config{
		MaxEntries: cfg.GetNearbyCacheSize(),
		TTL:        cfg.GetNearbyCacheTTL(),
		Label:      "nearby",
	}, log)
	detailsCache := cache.New[provider.PlaceDetails](cache.Config{
		MaxEntries: cfg.GetDetailsCacheSize(),
		TTL:        cfg.GetDetailsCacheTTL(),
		Label:      "details",
	}, log)

	limiter := ratelimit.New(ratelimit.Config{
		Limit:  cfg.GetRateLimit(),
		Window: cfg.GetRateWindow(),
	})

	svc := service.New(prov, geocodeCache, nearbyCache, detailsCache, limiter, cfg.GetNearbyPageSize(), log)

	return &Module{
		handler: handler.New(svc, val, log),
		service: svc,
	}, nil
}

// Name identifies the module in startup logs.
func (m *Module) Name() string {
	return "places"
}

// ProviderName reports the active backend.
func (m *Module) ProviderName() string {
	return m.service.ProviderName()
}

// RegisterRoutes mounts the module's endpoints on the versioned API group.
func (m *Module) RegisterRoutes(rc *apphttp.RouterContext) {
	group := rc.V1.Group("/places")
	group.POST("/geocode", m.handler.Geocode)
	group.POST("/nearby", m.handler.NearbySearch)
	group.POST("/details", m.handler.PlaceDetails)
}
