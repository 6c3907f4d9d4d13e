package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	_ "github.com/threatlens/threatlens-api/docs" // Swagger docs (generated)
	"github.com/threatlens/threatlens-api/internal/analysis"
	"github.com/threatlens/threatlens-api/internal/auth"
	"github.com/threatlens/threatlens-api/internal/broadcast"
	"github.com/threatlens/threatlens-api/internal/config"
	"github.com/threatlens/threatlens-api/internal/database"
	httpServer "github.com/threatlens/threatlens-api/internal/http"
	"github.com/threatlens/threatlens-api/internal/logging"
	"github.com/threatlens/threatlens-api/internal/threat"
	"github.com/threatlens/threatlens-api/internal/user"
)

// @title           threatlens API
// @version         1.0
// @description     Threat dashboard backend: authentication, threat queries and live threat classification.

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
		"token_format", cfg.Auth.TokenFormat,
		"password_hasher", cfg.Auth.PasswordHasher,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Repositories
	userRepo := user.NewRepository(db)
	threatRepo := threat.NewRepository(db)

	// Auth
	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}
	hasher, err := auth.NewPasswordHasher(cfg.Auth.PasswordHasher, cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to initialize password hasher: %w", err)
	}
	authService, err := auth.NewService(userRepo, tokenService, hasher, logger, cfg.Auth.AccessTokenDuration)
	if err != nil {
		return fmt.Errorf("failed to initialize auth service: %w", err)
	}
	authMiddleware := auth.NewMiddleware(tokenService)

	// Broadcast
	var subscribeAuth broadcast.Authenticator
	if cfg.Broadcast.RequireAuth {
		subscribeAuth = authMiddleware
	}
	hub := broadcast.NewHub(logger, cfg.Broadcast.SendBuffer, subscribeAuth)
	defer hub.Close()

	var broadcaster broadcast.Broadcaster = hub
	var relay *broadcast.RedisBroadcaster
	if cfg.Redis.Enabled() {
		redisClient, err := initRedis(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to initialize Redis: %w", err)
		}
		defer redisClient.Close()

		relay = broadcast.NewRedisBroadcaster(redisClient, cfg.Broadcast.RedisChannel, hub, logger)
		broadcaster = relay
	}

	// Analysis
	predictor := analysis.NewPooledPredictor(
		analysis.NewProcessPredictor(cfg.Predictor),
		cfg.Predictor.MaxConcurrency,
		cfg.Predictor.QueueTimeout,
	)
	analysisService := analysis.NewService(predictor, broadcaster, logger)

	router := httpServer.NewRouter(cfg, httpServer.Handlers{
		Auth:      auth.NewHandler(authService),
		Threats:   threat.NewHandler(threat.NewService(threatRepo)),
		Analysis:  analysis.NewHandler(analysisService),
		Subscribe: hub,
	}, authMiddleware, logger)

	server := httpServer.NewServer(
		":"+cfg.Server.Port,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Start()
	})

	if relay != nil {
		g.Go(func() error {
			if err := relay.Run(gctx); err != nil {
				return fmt.Errorf("broadcast relay: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			logger.Info("shutdown signal received")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		hub.Close()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
