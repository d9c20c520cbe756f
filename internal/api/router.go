package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"gym-admin-backend/config"
	"gym-admin-backend/internal/mw"
	"gym-admin-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mw.RequestLogger())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	handler := NewHandler(cfg, s, webpushOptions)

	rateLimit := rate.Limit(cfg.Server.RateLimitPerSec)
	if rateLimit <= 0 {
		rateLimit = rate.Limit(10)
	}
	rateLimiter := mw.RateLimiter(rateLimit, 5)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// The branch catalog is static config, safe to cache.
		api.GET("/branches", caching, handler.GetBranches)

		api.GET("/branches/:branch_id/clients", handler.GetClients)
		api.POST("/branches/:branch_id/clients", handler.CreateClient)
		api.PATCH("/clients/:client_id", handler.UpdateClient)
		api.POST("/clients/:client_id/renew", handler.RenewClient)

		api.POST("/branches/:branch_id/checkins", handler.CreateCheckin)
		api.GET("/branches/:branch_id/checkins", handler.GetCheckins)
		api.GET("/branches/:branch_id/report", handler.GetReport)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
