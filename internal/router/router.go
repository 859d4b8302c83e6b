// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/airdeskhq/airdesk/internal/config"
	"github.com/airdeskhq/airdesk/internal/handler"
	"github.com/airdeskhq/airdesk/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints. Unauthenticated operations
// live under /v1/auth, protected ones under /v1 behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterTickets registers the booking endpoints. The list/cancel routes
// require a valid access token; the search/status routes are public but sit
// behind the Redis response cache and rate limiter, both of which degrade
// to pass-through when rdb is nil.
func RegisterTickets(e *echo.Echo, t *handler.TicketHandler, jwtSecret string, rdb *redis.Client) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/tickets", t.MyTickets)
	auth.POST("/tickets/cancel", t.Cancel)

	pub := e.Group("/v1")
	pub.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	pub.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	pub.GET("/search", t.Search)
	pub.GET("/status", t.Status)
}
