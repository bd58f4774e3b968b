package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/progression-api/internal/config"
	"github.com/KirkDiggler/progression-api/internal/engine"
	"github.com/KirkDiggler/progression-api/internal/errors"
	"github.com/KirkDiggler/progression-api/internal/handlers/progression/v1alpha1"
	"github.com/KirkDiggler/progression-api/internal/orchestrators/progression"
	"github.com/KirkDiggler/progression-api/internal/pkg/clock"
	"github.com/KirkDiggler/progression-api/internal/pkg/idgen"
	"github.com/KirkDiggler/progression-api/internal/redis"
	"github.com/KirkDiggler/progression-api/internal/repositories/achievement"
	"github.com/KirkDiggler/progression-api/internal/repositories/player"
)

var (
	grpcPort  int
	redisAddr string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long: `Start the Progression API gRPC server backed by Redis.

Settings are read from PROGRESSION_* environment variables; flags override them.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (default $PROGRESSION_GRPC_PORT or 50051)")
	serverCmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address (default $PROGRESSION_REDIS_ADDR or localhost:6379)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.GRPCPort = grpcPort
	}
	if cmd.Flags().Changed("redis") {
		cfg.RedisAddr = redisAddr
		cfg.RedisClusterAddrs = nil
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisClusterAddrs, &redis.Options{
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
		UseTLS:   cfg.RedisTLS,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		_ = redisClient.Close() // nolint:errcheck // nothing to do on shutdown
	}()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", redisTarget(cfg), err)
	}

	handler, err := buildHandler(cfg, redisClient)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandlerContext(recoverPanic)),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(grpc_recovery.WithRecoveryHandlerContext(recoverPanic)),
		),
	)

	v1alpha1.RegisterProgressionServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("gRPC server starting on port %d (redis %s)...", cfg.GRPCPort, redisTarget(cfg))
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down gRPC server...")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			log.Println("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			log.Println("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// buildHandler wires engine, repositories, and orchestrator behind the gRPC handler
// redisTarget describes the configured Redis deployment for log lines
func redisTarget(cfg *config.Config) string {
	if len(cfg.RedisClusterAddrs) > 0 {
		return "cluster " + strings.Join(cfg.RedisClusterAddrs, ",")
	}
	return cfg.RedisAddr
}

func buildHandler(cfg *config.Config, redisClient redis.Client) (*v1alpha1.Handler, error) {
	eng, err := engine.New(&engine.Config{
		BaseXP:       cfg.BaseXP,
		XPMultiplier: cfg.XPMultiplier,
		MaxLevel:     cfg.MaxLevel,
		Logger:       slog.Default(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	systemClock := clock.New()

	playerRepo, err := player.NewRedis(&player.RedisConfig{
		Client: redisClient,
		Clock:  systemClock,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create player repository: %w", err)
	}

	achievementRepo, err := achievement.NewRedis(&achievement.RedisConfig{
		Client: redisClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create achievement repository: %w", err)
	}

	service, err := progression.NewOrchestrator(&progression.Config{
		Engine:                 eng,
		PlayerRepo:             playerRepo,
		AchievementRepo:        achievementRepo,
		Clock:                  systemClock,
		PlayerIDGenerator:      idgen.NewUUID("player"),
		AchievementIDGenerator: idgen.NewUUID("ach"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create progression orchestrator: %w", err)
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{ProgressionService: service})
	if err != nil {
		return nil, fmt.Errorf("failed to create progression handler: %w", err)
	}

	return handler, nil
}

// logFunc routes middleware logs into slog; the middleware levels share slog's values
func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}

func recoverPanic(ctx context.Context, p any) error {
	slog.ErrorContext(ctx, "Recovered from panic in handler", "panic", p)
	return errors.ToGRPCError(errors.Internalf("internal error: %v", p))
}
