package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/royalestate/realty-platform/internal/api"
	"github.com/royalestate/realty-platform/internal/core/config"
	"github.com/royalestate/realty-platform/internal/core/domain"
	"github.com/royalestate/realty-platform/internal/core/ports"
	"github.com/royalestate/realty-platform/internal/core/service"
	"github.com/royalestate/realty-platform/internal/infrastructure/auth"
	"github.com/royalestate/realty-platform/internal/infrastructure/db/mongo"
	"github.com/royalestate/realty-platform/internal/infrastructure/db/redis"
	"github.com/royalestate/realty-platform/internal/infrastructure/storage"
	"github.com/royalestate/realty-platform/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Backend connections (all optional: absence selects simulated mode) ---
	var (
		db        *gomongo.Database
		dbClient  *gomongo.Client
		rdb       *goredis.Client
		listStore ports.ListingStore
		objects   ports.ObjectStore
		provider  ports.AuthProvider
		profiles  ports.ProfileStore
	)

	if cfg.HasBackend() {
		dbClient, db, err = mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = dbClient.Disconnect(context.Background()) }()

		listings := mongo.NewListingStore(db)
		if err := listings.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("listing index creation failed")
		}
		users := mongo.NewUserStore(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("user index creation failed")
		}
		profileStore := mongo.NewProfileStore(db)

		listStore = listings
		profiles = profileStore

		var registry auth.SessionRegistry
		if cfg.Redis.Addr != "" {
			rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
			if err != nil {
				log.Fatal().Err(err).Msg("redis connection failed")
			}
			defer func() { _ = rdb.Close() }()
			registry = redis.NewSessionRegistry(rdb)
		}

		authProvider := auth.NewProvider(users, profileStore, profileStore, registry, cfg.JWTSecret, 24*time.Hour, log)
		provider = authProvider

		if registry != nil {
			go func() {
				if err := authProvider.ListenRemoteChanges(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Warn().Err(err).Msg("session change listener stopped")
				}
			}()
		}
	} else {
		log.Info().Msg("no backend configured, serving simulated data")
	}

	if cfg.GCS.Bucket != "" {
		gcs, err := storage.NewGCSStore(ctx, cfg.GCS.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("gcs client failed")
		}
		defer func() { _ = gcs.Close() }()
		objects = gcs
	}

	// --- Core services ---
	sessions := service.NewSessionStore(provider, profiles, log)
	sessions.EstablishSession(ctx)
	defer sessions.Close()

	listingService := service.NewListingService(listStore, objects, cfg.GCS.Bucket, log)
	log.Info().Str("mode", string(listingService.Mode())).Msg("listing service ready")

	sections := service.NewViewRouter(domain.DefaultNavigation, listingService)

	// --- HTTP surface ---
	e := api.NewRouter(api.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		Log:       log,
		DB:        db,
		RDB:       rdb,
		Provider:  provider,
		Sessions:  sessions,
		Listings:  listingService,
		Sections:  sections,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
