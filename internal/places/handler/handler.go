// Package handler exposes the places gateway over HTTP.
package handler

import (
	"net/http"

	"places_gateway_backend/internal/places/provider"
	"places_gateway_backend/internal/places/service"
	"places_gateway_backend/internal/places/transport"
	"places_gateway_backend/platform/httpkit"
	"places_gateway_backend/platform/logger"
	"places_gateway_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles the places endpoints.
type Handler struct {
	service   *service.Service
	validator *validator.Validator
	log       *logger.Logger
}

// New creates a new places handler.
func New(svc *service.Service, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{
		service:   svc,
		validator: val,
		log:       log,
	}
}

// Geocode handles POST /geocode.
func (h *Handler) Geocode(c *gin.Context) {
	var req transport.GeocodeRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.service.Geocode(c.Request.Context(), httpkit.ClientKey(c), req.Query)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// NearbySearch handles POST /nearby.
func (h *Handler) NearbySearch(c *gin.Context) {
	var req transport.NearbySearchRequest
	if !h.bind(c, &req) {
		return
	}

	query := provider.NearbyQuery{
		Lat:          *req.Lat,
		Lng:          *req.Lng,
		RadiusMeters: req.RadiusMeters,
		Category:     provider.Category(req.Category),
		PageToken:    req.PageToken,
	}

	result, err := h.service.NearbySearch(c.Request.Context(), httpkit.ClientKey(c), query)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// PlaceDetails handles POST /details.
func (h *Handler) PlaceDetails(c *gin.Context) {
	var req transport.PlaceDetailsRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.service.PlaceDetails(c.Request.Context(), httpkit.ClientKey(c), req.PlaceID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// bind decodes and validates the request body. On failure it writes the
// 400 envelope and reports false.
func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body.")
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request parameters.")
		return false
	}
	return true
}
