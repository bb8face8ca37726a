package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/api"
	"github.com/tnthao/solienlac/core"
	logsvc "github.com/tnthao/solienlac/services/logger"
	"github.com/tnthao/solienlac/storage/memdb"
	"github.com/tnthao/solienlac/storage/pgdb"
)

func main() {
	conf := core.Conf
	logger := newLogger(conf)

	store, cleanup, err := openBackend(conf, logger)
	if err != nil {
		logger.Fatal("opening backend", err)
	}
	defer cleanup()

	app := api.NewServer(api.Options{
		Addr:   conf.Server.Address(),
		Store:  store,
		Logger: logger,
		Debug:  conf.Debug,
	})

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		logger.Info("api listening on " + conf.Server.Address())
		errs <- app.Start()
	}()

	stop := func(reason string) {
		logger.Info("shutting down", reason)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			logger.Fatal("graceful shutdown failed", err)
		}
	}

	select {
	case err := <-errs:
		logger.Fatal("server error", err)
	case sig := <-shutdown:
		stop(sig.String())
	case <-app.ShutdownSignal():
		stop("integrity failure")
	}
}

// newLogger reports to rollbar in deployed environments when a token is
// configured; everywhere else it writes to the console.
func newLogger(conf *core.Config) core.Logger {
	if conf.IsProd() && conf.RollbarToken != "" {
		std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
		return logsvc.NewRollbarLogger(std, conf)
	}
	return logsvc.NewConsoleLogger(conf)
}

// openBackend wires the configured data backend; both serve the row
// store the action API dispatches onto.
func openBackend(conf *core.Config, logger core.Logger) (api.TabStore, func(), error) {
	switch conf.Backend {
	case core.BackendPostgres:
		db, err := pgdb.Open(conf)
		if err != nil {
			return nil, nil, err
		}
		if err = pgdb.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("using postgres backend")
		return pgdb.NewProvider(db), func() { _ = db.Close() }, nil
	case core.BackendRemote:
		return nil, nil, errors.New("the api server is the remote backend's server side; configure memdb or postgres")
	default:
		db, err := memdb.Open(conf.DataFile)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using memdb backend", "dataFile", conf.DataFile)
		return db, func() {}, nil
	}
}
