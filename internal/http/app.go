// Package http defines the application-level HTTP composition: the app
// container handed to the router and the module contract every feature
// module implements to get its routes mounted.
package http

import (
	"places_gateway_backend/platform/config"
	"places_gateway_backend/platform/httpkit"
	"places_gateway_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Module is implemented by every feature module that mounts routes.
type Module interface {
	Name() string
	RegisterRoutes(rc *RouterContext)
}

// RouterContext carries the route groups a module can attach to.
type RouterContext struct {
	Engine *gin.Engine
	V1     *gin.RouterGroup
}

// App is the composition root's view of the HTTP layer: shared config,
// logging, the outer burst limiter and the modules to mount.
type App struct {
	Config  config.HTTPConfig
	Logger  *logger.Logger
	Burst   *httpkit.IPRateLimiter
	Modules []Module
}
