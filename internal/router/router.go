package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing
	"github.com/redis/go-redis/v9"

	"github.com/railbook/railbook/internal/config"
	"github.com/railbook/railbook/internal/handler"
	"github.com/railbook/railbook/internal/middleware"
)

// RegisterRoutes registers routes that need no dependencies on the
// provided Echo instance.  Currently that is only the health check, which
// load balancers and monitoring use to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterSearch registers the read-only timetable endpoints under /v1.
// Search responses are cached in Redis and all endpoints share the
// request rate limiter; both middlewares degrade to no-ops when rdb is
// nil.
func RegisterSearch(e *echo.Echo, s *handler.SearchHandler, rdb *redis.Client) {
	cache := middleware.NewSearchCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb)

	g := e.Group("/v1", limit)
	g.GET("/stations", s.ListStations)
	g.GET("/routes", s.ListRoutes, cache)
	g.GET("/connections", s.FindConnections, cache)
}

// RegisterBooking registers the booking and client endpoints under /v1.
// Bookings are rate limited but never cached: every POST must reach the
// booking service.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, rdb *redis.Client) {
	limit := middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb)

	g := e.Group("/v1", limit)
	g.POST("/trips", b.BookTrip)
	g.GET("/clients/:lastName/:id", b.GetClient)
}
