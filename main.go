package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/scb/customers/internal/config"
	"github.com/scb/customers/internal/infra"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Build()
	if err != nil {
		logrus.Fatalf(err.Error())
	}

	pool, err := connectToDb(cfg)
	if err != nil {
		logrus.Fatalf(err.Error())
	}
	defer pool.Close()

	start(pool, cfg.ServerCfg)
}

func connectToDb(cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerCfg.ConnectTimeout)
	defer cancel()

	return infra.Postgresql(ctx, cfg.PostgresCfg)
}

func start(pool *pgxpool.Pool, cfg config.ServerCfg) {
	app, err := infra.Router(pool)
	if err != nil {
		logrus.Fatalf("failed to build application - %s", err)
	}

	shutdownCh := make(chan os.Signal, 1)
	errorCh := make(chan error, 1)
	signal.Notify(shutdownCh, os.Interrupt)

	go func() {
		errorCh <- app.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	select {
	case <-shutdownCh:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logrus.Infof("shutdown signal has been sent, stopping the server...")
		if err := app.Shutdown(ctx); err != nil {
			logrus.Fatalf("failed to stop server gracefully - %s", err)
		}
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("shutting down the server, unexpected error occurred - %s", err)
		}
	}
}
