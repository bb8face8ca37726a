package main

import (
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core"
	"github.com/tnthao/solienlac/core/classroom"
	emailsvc "github.com/tnthao/solienlac/services/email"
	logsvc "github.com/tnthao/solienlac/services/logger"
	"github.com/tnthao/solienlac/storage/memdb"
	"github.com/tnthao/solienlac/storage/pgdb"
	"github.com/tnthao/solienlac/storage/sheetapi"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.Conf
	cli := commandLine{conf: conf, appLog: logsvc.NewConsoleLogger(conf)}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

// service opens the configured backend on demand, so commands like
// migrate can run before the database exists.
func (cli *commandLine) service() (*classroom.Service, func(), error) {
	provider, cleanup, err := openProvider(cli.conf)
	if err != nil {
		return nil, nil, err
	}
	var mailSvc core.EmailService
	if cli.conf.Debug || cli.conf.SendgridAPIKey == "" {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(cli.appLog)
	}
	return classroom.NewService(provider, mailSvc, cli.appLog), cleanup, nil
}

func openProvider(conf *core.Config) (classroom.DataProvider, func(), error) {
	switch conf.Backend {
	case core.BackendPostgres:
		db, err := pgdb.Open(conf)
		if err != nil {
			return nil, nil, err
		}
		return pgdb.NewProvider(db), func() { _ = db.Close() }, nil
	case core.BackendRemote:
		if conf.RemoteURL == "" {
			return nil, nil, errors.New("remote backend selected but no remote URL configured")
		}
		return sheetapi.NewProvider(conf.RemoteURL), func() {}, nil
	default:
		db, err := memdb.Open(conf.DataFile)
		if err != nil {
			return nil, nil, err
		}
		return db, func() {}, nil
	}
}
