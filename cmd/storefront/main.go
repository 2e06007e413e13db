// cmd/storefront/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"storefront/internal/platform/config"
	"storefront/internal/platform/di"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	app := &cli.App{
		Name:  "storefront",
		Usage: "cart and checkout service",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP server",
				Action: func(c *cli.Context) error {
					return runServe(log)
				},
			},
			{
				Name:  "migrate",
				Usage: "apply pending database migrations",
				Action: func(c *cli.Context) error {
					return runMigrate(log)
				},
			},
			{
				Name:  "seed",
				Usage: "insert a sample catalog when the products table is empty",
				Action: func(c *cli.Context) error {
					return runSeed(c.Context, log)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

func setup(log *logrus.Logger) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	return cfg, nil
}

func runServe(log *logrus.Logger) error {
	cfg, err := setup(log)
	if err != nil {
		return err
	}

	// Best effort: a failed migration should not keep a healthy schema from
	// serving.
	if err := migrateUp(cfg.MigrationsDir, cfg.DatabaseURL, log); err != nil {
		log.WithError(err).Warn("startup migration failed")
	}

	cont, err := di.NewContainer(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cont.Close(); cerr != nil {
			log.WithError(cerr).Warn("container close error")
		}
	}()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      cont.Router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c
		log.WithField("signal", sig.String()).Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("server shutdown error")
		}
		close(idleConnsClosed)
	}()

	log.WithField("port", cfg.Port).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return pkgerrors.Wrap(err, "server error")
	}

	<-idleConnsClosed
	log.Info("server stopped")
	return nil
}

func runMigrate(log *logrus.Logger) error {
	cfg, err := setup(log)
	if err != nil {
		return err
	}
	return migrateUp(cfg.MigrationsDir, cfg.DatabaseURL, log)
}

func migrateUp(dir, databaseURL string, log *logrus.Logger) error {
	m, err := migrate.New("file://"+dir, databaseURL)
	if err != nil {
		return pkgerrors.Wrap(err, "open migrations")
	}
	defer func() {
		if serr, derr := m.Close(); serr != nil || derr != nil {
			log.WithFields(logrus.Fields{"source": serr, "database": derr}).Warn("migrate close")
		}
	}()

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Info("migrations already up to date")
			return nil
		}
		return pkgerrors.Wrap(err, "apply migrations")
	}
	log.Info("migrations applied")
	return nil
}

func runSeed(ctx context.Context, log *logrus.Logger) error {
	cfg, err := setup(log)
	if err != nil {
		return err
	}

	cont, err := di.NewContainer(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = cont.Close() }()

	n, err := cont.CatalogUC.SeedSample(ctx)
	if err != nil {
		return pkgerrors.Wrap(err, "seed catalog")
	}
	log.WithField("inserted", n).Info("seed complete")
	return nil
}
