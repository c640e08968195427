package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"github.com/anonto42/socialgraph/backend/internal/router"
	"github.com/anonto42/socialgraph/backend/internal/services"
	"github.com/anonto42/socialgraph/backend/pkg/config"
	"github.com/anonto42/socialgraph/backend/pkg/firebase"
	"github.com/anonto42/socialgraph/backend/pkg/logger"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := cli.NewApp()
	app.Name = "socialgraph"
	app.Usage = "Social graph and book catalog API"
	app.Action = serve
	app.Commands = []*cli.Command{
		{
			Action:      serve,
			Name:        "serve",
			Usage:       "Start the HTTP API",
			Category:    "Api",
			Description: `Runs migrations and serves the social and catalog APIs until interrupted.`,
		},
		{
			Action:      migrate,
			Name:        "migrate",
			Usage:       "Create or update the relational schema",
			Category:    "Database",
			Description: `Runs gorm AutoMigrate for every model and exits.`,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration, the logger and the database connections.
func setup() (*config.Config, *zap.Logger, *config.DB, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	db, err := config.InitDB(cfg, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize databases: %w", err)
	}
	return cfg, log, db, nil
}

func migrate(_ *cli.Context) error {
	_, log, db, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck
	defer db.CloseDB()

	if err := models.AutoMigrate(db.Postgres); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	log.Info("PostgreSQL auto-migrations completed for all models.")
	return nil
}

func serve(cctx *cli.Context) error {
	cfg, log, db, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck
	defer db.CloseDB()

	if err := models.AutoMigrate(db.Postgres); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}

	repos := services.NewGormRepositories(db.Postgres)
	if cfg.CatalogStore == config.CatalogStoreMongo {
		repos.Catalog = repositories.NewMongoCatalogRepository(db.Mongo.Database(cfg.MongoDatabase))
		log.Info("Book catalog served from MongoDB", zap.String("database", cfg.MongoDatabase))
	}

	tokens := services.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	deps := router.Deps{
		Services: services.New(repos, services.Options{
			Tokens:       tokens,
			FeedMaxLimit: cfg.FeedMaxLimit,
			Logger:       log,
		}),
		Tokens: tokens,
		Logger: log,
	}

	ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.FirebaseCredentialsPath != "" {
		fb, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, log)
		if err != nil {
			return fmt.Errorf("failed to initialize Firebase: %w", err)
		}
		deps.Firebase = fb.AuthClient
	}

	e := router.New(deps)

	errc := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
