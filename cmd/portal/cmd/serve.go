package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/intranet-portal/portal-api/internal/api"
	"github.com/intranet-portal/portal-api/internal/core/ports"
	"github.com/intranet-portal/portal-api/internal/core/service"
	"github.com/intranet-portal/portal-api/internal/infrastructure/db/mongo"
	"github.com/intranet-portal/portal-api/internal/infrastructure/db/redis"
	"github.com/intranet-portal/portal-api/internal/infrastructure/db/relational"
	"github.com/intranet-portal/portal-api/internal/infrastructure/http/handlers"
	"github.com/intranet-portal/portal-api/internal/infrastructure/storage"
	"github.com/intranet-portal/portal-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer closeDB(db)

	if cfg.Database.AutoMigrate {
		group, err := relational.Migrate(ctx, db)
		if err != nil {
			return err
		}
		if group.ID != 0 {
			log.Info().Int64("group", group.ID).Msg("applied migrations")
		}
	}

	dir, err := newDirectory()
	if err != nil {
		return err
	}

	checks := []handlers.Check{handlers.SQLCheck("database", db.DB)}

	// Optional token revocation list.
	var revocations ports.RevocationStore
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		revocations = redis.NewRevocationStore(rdb)
		checks = append(checks, handlers.RedisCheck(rdb))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("token revocation enabled")
	}

	// Optional login audit trail.
	var audit ports.AuditRepository
	if cfg.Mongo.URI != "" {
		client, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: serviceName})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		auditRepo := mongo.NewAuditRepository(mdb)
		if err := auditRepo.EnsureIndexes(ctx, cfg.Mongo.AuditRetentionDays); err != nil {
			return err
		}
		audit = auditRepo
		checks = append(checks, handlers.MongoCheck(mdb))
		log.Info().Str("database", cfg.Mongo.Database).Msg("login audit enabled")
	}

	users := relational.NewUserRepository(db)
	tokens := service.NewTokenService(cfg.JWTSecret, revocations)
	images, err := storage.NewLocalImageStore(cfg.Uploads.Dir, "/uploads", cfg.Uploads.MaxBytes)
	if err != nil {
		return err
	}
	birthdays, err := service.NewBirthdayService(users, cfg.Portal.BirthdayTimeZone)
	if err != nil {
		return err
	}
	resources, err := service.NewResourceService(cfg.Portal.ResourcesFile)
	if err != nil {
		return err
	}

	svcLog := logger.Component("auth")
	e := api.NewRouter(api.Deps{
		Config:    cfg,
		Log:       log,
		Auth:      service.NewAuthService(service.NewIdentityResolver(dir, users, svcLog), tokens, tokens, users, audit, svcLog),
		Tokens:    tokens,
		Carousel:  service.NewCarouselService(relational.NewCarouselRepository(db), images, logger.Component("carousel")),
		Birthdays: birthdays,
		Resources: resources,
		Users:     users,
		Checks:    checks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.Env).
			Str("directory", cfg.Directory.Mode).
			Bool("revocation", tokens.RevocationEnabled()).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
