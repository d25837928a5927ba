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
	"heroacademy/pkg/rpc"
	"heroacademy/pkg/userpb"
	"heroacademy/services/user-service/config"
	"heroacademy/services/user-service/internal/application/usecase"
	"heroacademy/services/user-service/internal/domain"
	"heroacademy/services/user-service/internal/infrastructure/cache"
	"heroacademy/services/user-service/internal/infrastructure/email"
	"heroacademy/services/user-service/internal/infrastructure/repository"
	"heroacademy/services/user-service/internal/infrastructure/security"
	"heroacademy/services/user-service/internal/infrastructure/storage"
	grpc_server "heroacademy/services/user-service/internal/transport/grpc"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		boot := logger.New("user-service", "production")
		boot.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New("user-service", cfg.AppEnv)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}
	log.Info().Msg("running migrations")
	if err := db.AutoMigrate(&repository.ProfileGorm{}, &domain.License{}, &domain.CompletionEvent{}, &domain.Mission{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate DB")
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	photos, err := storage.NewFileStore(cfg.MediaDir, cfg.MediaPublicURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare media store")
	}

	profileRepo := repository.NewProfileRepository(db)
	licenseRepo := repository.NewLicenseRepository(db)
	progressRepo := repository.NewProgressionRepository(db)
	missionRepo := repository.NewMissionRepository(db, rdb, log)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := missionRepo.Seed(seedCtx, repository.DefaultMissions()); err != nil {
		log.Error().Err(err).Msg("failed to seed missions")
	}
	if err := licenseRepo.Seed(seedCtx, cfg.LicenseCodes()); err != nil {
		log.Error().Err(err).Msg("failed to seed licenses")
	}
	cancelSeed()

	mailer := email.NewRewardMailer(cfg.SendGridAPIKey, cfg.MailFrom)
	if !mailer.Enabled() {
		log.Warn().Msg("SENDGRID_API_KEY not set, reward emails disabled")
	}

	profileUseCase := usecase.NewProfileUseCase(
		profileRepo,
		licenseRepo,
		progressRepo,
		missionRepo,
		cache.NewProfileFeed(rdb, log),
		photos,
		mailer,
		security.NewPinHasher(),
		log,
	)
	userServer := grpc_server.NewUserServer(profileUseCase, log)

	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.GRPCPort).Msg("failed to listen")
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(rpc.UnaryLogger(log)),
		grpc.ChainStreamInterceptor(rpc.StreamLogger(log)),
	)
	userpb.RegisterUserServiceServer(grpcServer, userServer)

	go func() {
		log.Info().Str("addr", cfg.GRPCPort).Msg("user service running")
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("failed to serve")
		}
	}()

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	media := gin.New()
	media.Use(gin.Recovery())
	media.Static("/media", photos.BasePath())
	mediaSrv := &http.Server{Addr: cfg.MediaPort, Handler: media}
	go func() {
		log.Info().Str("addr", cfg.MediaPort).Msg("media server running")
		if err := mediaSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("media server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = mediaSrv.Shutdown(ctx)
	grpcServer.GracefulStop()
}
