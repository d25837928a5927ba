package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"heroacademy/pkg/logger"
	"heroacademy/services/api-gateway/internal/client"
	"heroacademy/services/api-gateway/internal/config"
	"heroacademy/services/api-gateway/internal/middleware"
	handlers "heroacademy/services/api-gateway/internal/transport/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		boot := logger.New("api-gateway", "production")
		boot.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New("api-gateway", cfg.AppEnv)
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("connected to Redis")

	authClient, err := client.NewAuthClient(cfg.AuthSvcUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to auth service")
	}
	defer authClient.Close()

	userClient, err := client.NewUserClient(cfg.UserSvcUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to user service")
	}
	defer userClient.Close()

	h := handlers.Handlers{
		Auth: handlers.NewAuthHandler(authClient.Client, handlers.CookieConfig{
			Domain: cfg.CookieDomain,
			Secure: cfg.CookieSecure,
		}, cfg.FrontendURL),
		User:    handlers.NewUserHandler(userClient.Client),
		Game:    handlers.NewGameHandler(userClient.Client),
		Parent:  handlers.NewParentHandler(userClient.Client),
		Session: handlers.NewSessionHandler(authClient.Client, userClient.Client, log),
	}
	router := handlers.NewRouter(
		handlers.RouterConfig{AllowedOrigins: cfg.Origins(), SecureCookies: cfg.CookieSecure},
		h,
		authClient.Client,
		userClient.Client,
		middleware.NewRateLimiter(rdb, log),
		rdb,
		log,
	)

	// Session streams end when this context is cancelled at shutdown.
	baseCtx, stopStreams := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:        cfg.Port,
		Handler:     router,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}
	go func() {
		log.Info().Str("addr", cfg.Port).Msg("api gateway running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to run server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info().Msg("shutting down")
	stopStreams()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
