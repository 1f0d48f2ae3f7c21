package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/kitworks/kittrack/internal/dbpool"
	"github.com/kitworks/kittrack/internal/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log           *logrus.Logger
	Pool          *dbpool.Pool
	Kits          KitRepository
	Temporal      TemporalRepository
	History       HistoryRepository
	Changes       ChangeFeedRepository
	Users         UserRepository
	CORSOrigins   []string
	Version       string
	SchemaVersion int
}

// Router-level limits.
const (
	maxBodySize = 1 << 20 // 1 MB
	rateLimit   = 100     // requests per second per IP
	rateBurst   = 200     // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, log, deps.Version, deps.SchemaVersion)
	kits := NewKitHandler(deps.Kits, deps.Temporal, log)
	history := NewHistoryHandler(deps.History, log)
	changes := NewChangeFeedHandler(deps.Changes, log)
	users := NewUserHandler(deps.Users, log)

	// Health and readiness.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// Kits.
	api.GET("/kits", kits.List)
	api.POST("/kits", kits.Create)
	api.GET("/kits/:id", kits.Get)
	api.PUT("/kits/:id", kits.Update)
	api.DELETE("/kits/:id", kits.Delete)
	api.GET("/kits/:id/history", history.GetHistory)
	api.GET("/kits/:id/version", history.LatestVersion)

	// Change feed.
	api.GET("/changes", changes.Query)

	// Users.
	api.GET("/users", users.List)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(r.Group("/api/v1"), deps)

	return r
}
