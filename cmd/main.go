package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerconnect-api/config"
	"github.com/oksasatya/careerconnect-api/internal/container"
	"github.com/oksasatya/careerconnect-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/careerconnect-api/internal/infrastructure/postgres"
	"github.com/oksasatya/careerconnect-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/careerconnect-api/internal/interface/http"
	"github.com/oksasatya/careerconnect-api/internal/router"
	"github.com/oksasatya/careerconnect-api/pkg/helpers"
	"github.com/oksasatya/careerconnect-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()
	container.SetConfig(cfg)
	container.SetLogger(logger)

	// Store
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to postgres")
		}
		defer pool.Close()
		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			logger.WithError(err).Fatal("migration failed")
		}
		container.SetPGPool(pool)
		container.SetRepositories(container.Repositories{
			Profiles:     pginfra.NewProfileRepository(pool),
			Internships:  pginfra.NewInternshipRepository(pool),
			Applications: pginfra.NewApplicationRepository(pool),
		})
	case "memory":
		logger.Warn("using in-memory store; data is lost on restart")
		store := memory.NewStore()
		container.SetRepositories(container.Repositories{
			Profiles:     store.Profiles(),
			Internships:  store.Internships(),
			Applications: store.Applications(),
		})
	}

	// Identity provider
	verifier, err := helpers.NewTokenVerifier(cfg.IdPJWTSecret, cfg.IdPPublicKeyFile, cfg.IdPIssuer, cfg.IdPAudience)
	if err != nil {
		logger.WithError(err).Fatal("failed to init token verifier")
	}
	container.SetVerifier(verifier)

	// Redis (rate limiting); the limiter fails open, so a down server is not fatal
	if cfg.RateLimitEnabled {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			logger.WithError(err).Warn("redis unavailable; rate limits fail open")
		}
		container.SetRedis(rdb)
	}

	// GCS (resume uploads)
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Fatal("failed to init GCS client")
		}
		defer func() { _ = gcsClient.Close() }()
		container.SetGCS(gcsClient)
	} else {
		logger.Warn("GCS_BUCKET not set; resume uploads disabled")
	}

	// Elasticsearch (posting search)
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Fatal("failed to init elasticsearch client")
		}
		if err := search.NewInternshipIndex(es, cfg.ESInternshipsIndex).EnsureIndex(ctx); err != nil {
			logger.WithError(err).Warn("could not ensure search index")
		}
		container.SetES(es)
	}

	// RabbitMQ (status change emails)
	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to rabbitmq")
		}
		defer pub.Close()
		container.SetRabbitPub(pub)
	}

	deps := router.DepsFromContainer()
	addHealthChecks(deps.Health)
	r := router.NewEngine(deps)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "store": cfg.StoreDriver}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}
	logger.Info("server exited properly")
}

func addHealthChecks(checks map[string]handlers.Pinger) {
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return helpers.PingRedis(ctx, rdb) }
	}
	if es := container.GetES(); es != nil {
		checks["elasticsearch"] = func(ctx context.Context) error { return helpers.PingES(ctx, es) }
	}
}
