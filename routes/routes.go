package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"psmestate/internal/config"
	handlers "psmestate/internal/handlers/shared"
	"psmestate/internal/middleware"
	"psmestate/pkg/cache"
	"psmestate/pkg/logger"
	"psmestate/pkg/websocket"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Property  *handlers.PropertyHandler
	Booking   *handlers.BookingHandler
	Blog      *handlers.BlogHandler
	POI       *handlers.POIHandler
	TM30      *handlers.TM30Handler
	Agent     *handlers.AgentHandler
	Marketing *handlers.MarketingHandler
	Dashboard *handlers.DashboardHandler
	Upload    *handlers.UploadHandler
	WebSocket *websocket.Handler
}

func Setup(router *gin.Engine, cfg *config.Config, redis *cache.RedisCache, log *logger.Logger, h *Handlers) {
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	setupPublicRoutes(api, cfg, redis, h)
	setupWebhookRoutes(api, h)
	setupImportRoutes(api, cfg, h)
	setupAdminRoutes(api, cfg, h)
}

// setupPublicRoutes wires the visitor-facing website API. Everything here is
// rate limited per client IP.
func setupPublicRoutes(r *gin.RouterGroup, cfg *config.Config, redis *cache.RedisCache, h *Handlers) {
	public := r.Group("")
	public.Use(middleware.RateLimit(redis, int64(cfg.Security.RateLimitPerMinute), time.Minute))
	{
		properties := public.Group("/properties")
		{
			properties.GET("", h.Property.Search)
			properties.GET("/featured", h.Property.GetFeatured)
			properties.GET("/:slug", h.Property.GetBySlug)
		}

		bookings := public.Group("/bookings")
		{
			bookings.POST("/quote", h.Booking.Quote)
			bookings.POST("", h.Booking.Create)
			bookings.GET("/:number", h.Booking.GetByNumber)
		}

		blog := public.Group("/blog")
		{
			blog.GET("", h.Blog.ListPublished)
			blog.GET("/:slug", h.Blog.GetBySlug)
		}

		pois := public.Group("/pois")
		{
			pois.GET("/property/:id", h.POI.GetByProperty)
			pois.GET("/property/:id/summary", h.POI.Summarize)
		}

		marketing := public.Group("/marketing")
		{
			marketing.POST("/subscribe", h.Marketing.Subscribe)
			marketing.GET("/unsubscribe", h.Marketing.Unsubscribe)
			marketing.POST("/price-alerts", h.Marketing.CreatePriceAlert)
			marketing.POST("/visits", h.Marketing.TrackVisit)
			marketing.POST("/inquiries", h.Marketing.CreateInquiry)
		}

		auth := public.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
			auth.POST("/accept-invite", h.Auth.AcceptInvite)
		}
	}
}

// setupWebhookRoutes wires callbacks from external automations. These carry
// their own HMAC authentication, so no session middleware.
func setupWebhookRoutes(r *gin.RouterGroup, h *Handlers) {
	webhooks := r.Group("/webhooks")
	{
		webhooks.POST("/tm30", h.TM30.Callback)
	}
}

// setupImportRoutes wires the listing importer feed, authenticated by API key.
func setupImportRoutes(r *gin.RouterGroup, cfg *config.Config, h *Handlers) {
	importGroup := r.Group("/import")
	importGroup.Use(middleware.APIKeyRequired(cfg.Security.ImportAPIKey))
	{
		importGroup.POST("/properties", h.Property.Import)
	}
}

func setupAdminRoutes(r *gin.RouterGroup, cfg *config.Config, h *Handlers) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(cfg.Security.JWTSecret))

	admin.GET("/ws", h.WebSocket.HandleWebSocket)
	admin.GET("/me", h.Auth.Me)
	admin.GET("/dashboard/stats", h.Dashboard.Stats)

	// Editors manage content; admins additionally manage users, invites,
	// imports and destructive operations.
	editor := admin.Group("")
	editor.Use(middleware.EditorRequired())
	{
		properties := editor.Group("/properties")
		{
			properties.GET("", h.Property.ListAll)
			properties.POST("", h.Property.Create)
			properties.GET("/:id", h.Property.GetByID)
			properties.PUT("/:id", h.Property.Update)
			properties.PUT("/:id/publish", h.Property.Publish)
			properties.PUT("/:id/archive", h.Property.Archive)
			properties.POST("/:id/pois/sync", h.POI.Sync)
			properties.POST("/:id/pois/rescore", h.POI.Rescore)
		}

		bookings := editor.Group("/bookings")
		{
			bookings.GET("", h.Booking.List)
			bookings.GET("/:id", h.Booking.GetByID)
			bookings.PUT("/:id/status", h.Booking.UpdateStatus)
		}

		blog := editor.Group("/blog")
		{
			blog.GET("", h.Blog.ListAll)
			blog.POST("", h.Blog.Create)
			blog.GET("/:id", h.Blog.GetByID)
			blog.PUT("/:id", h.Blog.Update)
			blog.PUT("/:id/publish", h.Blog.Publish)
			blog.PUT("/:id/archive", h.Blog.Archive)
		}

		tm30 := editor.Group("/tm30")
		{
			tm30.GET("", h.TM30.List)
			tm30.POST("", h.TM30.Create)
			tm30.GET("/:id", h.TM30.GetByID)
			tm30.POST("/:id/dispatch", h.TM30.Dispatch)
			tm30.GET("/booking/:id", h.TM30.GetByBooking)
		}

		agent := editor.Group("/agent/decisions")
		{
			agent.GET("", h.Agent.List)
			agent.POST("", h.Agent.Propose)
			agent.GET("/:id", h.Agent.GetByID)
			agent.PUT("/:id/review", h.Agent.Review)
			agent.POST("/:id/execute", h.Agent.Execute)
			agent.POST("/:id/rollback", h.Agent.Rollback)
		}

		marketing := editor.Group("/marketing")
		{
			marketing.GET("/subscribers", h.Marketing.ListSubscribers)
			marketing.GET("/campaigns", h.Marketing.CampaignStats)
			marketing.GET("/inquiries", h.Marketing.ListInquiries)
			marketing.PUT("/inquiries/:id/status", h.Marketing.UpdateInquiryStatus)
			marketing.DELETE("/price-alerts/:id", h.Marketing.DeactivatePriceAlert)
		}

		uploads := editor.Group("/uploads")
		{
			uploads.POST("", h.Upload.UploadImage)
			uploads.DELETE("", h.Upload.DeleteFile)
		}
	}

	adminOnly := admin.Group("")
	adminOnly.Use(middleware.AdminRequired())
	{
		adminOnly.DELETE("/properties/:id", h.Property.Delete)
		adminOnly.DELETE("/blog/:id", h.Blog.Delete)
		adminOnly.POST("/pois/sync-all", h.POI.SyncAll)

		users := adminOnly.Group("/users")
		{
			users.GET("", h.Auth.ListUsers)
			users.PUT("/:id/active", h.Auth.SetUserActive)
		}

		invites := adminOnly.Group("/invites")
		{
			invites.GET("", h.Auth.ListInvites)
			invites.POST("", h.Auth.CreateInvite)
		}
	}
}
