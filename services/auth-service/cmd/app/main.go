package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"heroacademy/pkg/authpb"
	"heroacademy/pkg/logger"
	"heroacademy/pkg/rpc"
	"heroacademy/pkg/userpb"
	"heroacademy/services/auth-service/config"
	"heroacademy/services/auth-service/internal/application/usecase"
	"heroacademy/services/auth-service/internal/domain"
	"heroacademy/services/auth-service/internal/infrastructure/cache"
	"heroacademy/services/auth-service/internal/infrastructure/repository"
	"heroacademy/services/auth-service/internal/infrastructure/security"
	grpc_server "heroacademy/services/auth-service/internal/transport/grpc"

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
		boot := logger.New("auth-service", "production")
		boot.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New("auth-service", cfg.AppEnv)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}
	if err := db.AutoMigrate(&repository.UserGorm{}, &domain.Device{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate DB")
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	userConn, err := rpc.Dial(cfg.UserServiceAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.UserServiceAddr).Msg("failed to dial user service")
	}
	defer userConn.Close()

	if cfg.GoogleClientID == "" {
		log.Warn().Msg("GOOGLE_CLIENT_ID not set, google sign-in will reject every token")
	}

	authUseCase := usecase.NewAuthUseCase(
		repository.NewUserRepository(db),
		repository.NewDeviceRepository(db),
		cache.NewTokenCache(rdb),
		cache.NewAuthStateFeed(rdb),
		security.NewPasswordHasher(),
		security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret),
		security.NewGoogleVerifier(cfg.GoogleClientID, cfg.GoogleCertsURL),
		userpb.NewUserServiceClient(userConn),
		log,
	)
	authServer := grpc_server.NewAuthServer(authUseCase, log)

	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.GRPCPort).Msg("failed to listen")
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(rpc.UnaryLogger(log)),
		grpc.ChainStreamInterceptor(rpc.StreamLogger(log)),
	)
	authpb.RegisterAuthServiceServer(grpcServer, authServer)

	go func() {
		log.Info().Str("addr", cfg.GRPCPort).Msg("auth service running")
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("failed to serve")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info().Msg("shutting down")
	grpcServer.GracefulStop()
}
