// Package router wires HTTP routes to their handlers and guards.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/rantai-skena/booking-api/internal/config"
	"github.com/rantai-skena/booking-api/internal/handler"
	"github.com/rantai-skena/booking-api/internal/middleware"
	"github.com/rantai-skena/booking-api/internal/model"
)

// Deps carries everything route registration needs.
type Deps struct {
	JWTSecret string
	Accounts  middleware.AccountSource
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig

	Auth     *handler.AuthHandler
	Events   *handler.EventHandler
	Apps     *handler.ApplicationHandler
	Profiles *handler.ProfileHandler
	Media    *handler.MediaHandler
}

// Register attaches all routes to e. Guards compose as: Auth resolves the
// token subject, RequireRole loads the account and enforces the allow-set.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	// Published events are readable without a session and sit behind the
	// response cache.
	e.GET("/api/events/public", d.Events.ListPublicEvents, middleware.ResponseCache(d.Cache, d.Redis))

	// Auth runs first so the rate-limit key can include the caller.
	api := e.Group("/api")
	api.Use(middleware.Auth(d.JWTSecret))
	api.Use(middleware.RateLimit(d.RateLimit, d.Redis))

	anyRole := middleware.RequireRole(d.Accounts, model.RoleArtist, model.RoleAgent)
	artistOnly := middleware.RequireRole(d.Accounts, model.RoleArtist)
	agentOnly := middleware.RequireRole(d.Accounts, model.RoleAgent)

	// Role selection runs before a role exists, so it is guarded by Auth only.
	api.PUT("/auth/role", d.Auth.SetRole)
	api.GET("/auth/role", d.Auth.GetRole)

	events := api.Group("/events")
	events.GET("", d.Events.ListEvents, anyRole)
	events.GET("/:id", d.Events.GetEvent, anyRole)
	events.POST("", d.Events.CreateEvent, agentOnly)
	events.PUT("/:id", d.Events.UpdateEvent, agentOnly)
	events.DELETE("/:id", d.Events.DeleteEvent, agentOnly)
	events.GET("/:id/applications", d.Apps.ListForEvent, agentOnly)

	apps := api.Group("/applications")
	apps.POST("", d.Apps.Apply, artistOnly)
	apps.GET("/my", d.Apps.ListMine, artistOnly)
	apps.PATCH("/:id/status", d.Apps.SetStatus, agentOnly)

	artist := api.Group("/artist")
	artist.GET("/profile", d.Profiles.GetArtistProfile, artistOnly)
	artist.PUT("/profile", d.Profiles.PutArtistProfile, artistOnly)
	artist.GET("/public", d.Profiles.ListPublicArtists, anyRole)
	artist.GET("/public/:id", d.Profiles.GetPublicArtist, anyRole)

	agent := api.Group("/agent")
	agent.GET("/events", d.Events.ListAgentEvents, agentOnly)
	agent.GET("/profile", d.Profiles.GetAgentProfile, agentOnly)
	agent.PUT("/profile", d.Profiles.PutAgentProfile, agentOnly)
	agent.GET("/public/:id", d.Profiles.GetPublicAgent, anyRole)

	music := api.Group("/music")
	music.GET("", d.Media.ListMusic, artistOnly)
	music.POST("", d.Media.CreateMusic, artistOnly)
	music.DELETE("/:id", d.Media.DeleteMusic, artistOnly)

	gallery := api.Group("/gallery")
	gallery.GET("", d.Media.ListGallery, artistOnly)
	gallery.POST("", d.Media.CreateGalleryImage, artistOnly)
	gallery.DELETE("/:id", d.Media.DeleteGalleryImage, artistOnly)
}
