package main

import (
	"context"
	"flag"
	"os"

	"github.com/tnthao/solienlac/services/importer"
)

func (cli *commandLine) runImportRoster(args []string) error {
	fs := flag.NewFlagSet("importroster", flag.ExitOnError)
	file := fs.String("file", "", "Path to the roster workbook (.xlsx).")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		fs.Usage()
		return errHelp
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	svc, cleanup, err := cli.service()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := importer.ImportRoster(context.Background(), svc.Provider(), f)
	if err != nil {
		return err
	}
	logger.Printf("imported %d students, skipped %d existing", res.Added, len(res.Skipped))
	for _, code := range res.Skipped {
		logger.Printf("  skipped %s", code)
	}
	return nil
}
