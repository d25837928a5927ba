package handlers

import (
	"time"

	"heroacademy/pkg/authpb"
	"heroacademy/pkg/userpb"
	"heroacademy/services/api-gateway/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type RouterConfig struct {
	AllowedOrigins []string
	SecureCookies  bool
}

type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Game    *GameHandler
	Parent  *ParentHandler
	Session *SessionHandler
}

func NewRouter(cfg RouterConfig, h Handlers, authClient authpb.AuthServiceClient, userClient userpb.UserServiceClient, limiter *middleware.RateLimiter, rdb *redis.Client, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	config := cors.DefaultConfig()
	config.AllowOrigins = cfg.AllowedOrigins
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	api.Use(middleware.Device(cfg.SecureCookies))
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", limiter.Limit("register", 5, time.Minute), h.Auth.Register)
			auth.POST("/login", limiter.Limit("login", 5, time.Minute), h.Auth.Login)
			auth.POST("/google", limiter.Limit("google", 10, time.Minute), h.Auth.GoogleSignIn)
			auth.POST("/google/callback", limiter.Limit("google", 10, time.Minute), h.Auth.GoogleCallback)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/methods", limiter.Limit("methods", 20, time.Minute), h.Auth.Methods)
		}

		api.GET("/session/stream", h.Session.Stream)
		api.GET("/route", h.Session.Route)
		api.GET("/shop/items", h.Game.ShopItems)

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(authClient))
		{
			authed.GET("/user/profile", h.User.GetProfile)
			authed.PUT("/user/hero", h.User.UpdateHero)
			authed.POST("/user/photo", h.User.UploadPhoto)
			authed.POST("/license/activate",
				limiter.Limit("license", 10, time.Minute),
				middleware.InFlight(rdb, log, "license", 10*time.Second),
				h.User.ActivateLicense)
			authed.GET("/missions", h.Game.ListMissions)
			authed.GET("/leaderboard", h.User.Leaderboard)

			parent := authed.Group("/parent")
			{
				parent.POST("/pin", h.Parent.SetPin)
				parent.POST("/verify", limiter.Limit("parent_pin", 10, time.Minute), h.Parent.VerifyPin)
				parent.PUT("/settings", h.Parent.UpdateSettings)
				parent.POST("/rewards/:track/deliver", h.Parent.MarkDelivered)
			}

			play := authed.Group("")
			play.Use(middleware.RequireEntitlement(userClient))
			{
				play.POST("/missions/:track/complete", h.Game.CompleteMission)
				play.POST("/shop/purchase", h.Game.Purchase)
				play.POST("/shop/equip", h.Game.Equip)
			}
		}
	}

	return r
}
