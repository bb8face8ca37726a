package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/tnthao/solienlac/core"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf   *core.Config
	appLog core.Logger
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  adduser -username USERNAME -fullname NAME [-admin | -student CODE] - create an account; the password is prompted next")
	fmt.Println("  announce -class CLASSID -title TITLE -content TEXT [-target all|parents|students] [-author NAME] [-pin] - publish an announcement")
	fmt.Println("  importroster -file FILE.xlsx - import students from a roster workbook")
	fmt.Println("  seed [-force] - fill an empty backend with the starter dataset")
	fmt.Println("  migrate - create the database if needed and apply migrations (postgres backend)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "adduser":
		return cli.runAddUser(args[2:])
	case "announce":
		return cli.runAnnounce(args[2:])
	case "importroster":
		return cli.runImportRoster(args[2:])
	case "seed":
		return cli.runSeed(args[2:])
	case "migrate":
		return cli.runMigrate()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword(fs *flag.FlagSet) (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		fs.Usage()
		return "", errHelp
	}
	return string(pwd), nil
}
