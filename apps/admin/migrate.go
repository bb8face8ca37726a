package main

import (
	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core"
	"github.com/tnthao/solienlac/storage/pgdb"
)

func (cli *commandLine) runMigrate() error {
	if cli.conf.Backend != core.BackendPostgres {
		return errors.Errorf("migrate requires the postgres backend, got %q", cli.conf.Backend)
	}
	if err := pgdb.CreateIfNotExist(cli.conf); err != nil {
		return err
	}
	db, err := pgdb.Open(cli.conf)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := pgdb.Migrate(db); err != nil {
		return err
	}
	logger.Println("database is up to date")
	return nil
}
