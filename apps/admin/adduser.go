package main

import (
	"context"
	"flag"

	"github.com/tnthao/solienlac/core"
	"github.com/tnthao/solienlac/core/classroom"
)

func (cli *commandLine) runAddUser(args []string) error {
	fs := flag.NewFlagSet("adduser", flag.ExitOnError)
	username := fs.String("username", "", "The account's username. The password will be prompted next.")
	fullName := fs.String("fullname", "", "The account holder's full name.")
	admin := fs.Bool("admin", false, "Create a teacher/admin account.")
	student := fs.String("student", "", "Student code to link a family account to.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || (!*admin && *student == "") {
		fs.Usage()
		return errHelp
	}

	pwd, err := cli.promptPassword(fs)
	if err != nil {
		return err
	}
	svc, cleanup, err := cli.service()
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := context.Background()

	if *admin {
		return cli.addAdmin(ctx, svc, *username, *fullName, pwd)
	}
	usr, err := svc.Register(ctx, classroom.RegisterAccount{
		Username:        core.CleanString(*username, true /* lower */),
		Password:        pwd,
		PasswordConfirm: pwd,
		FullName:        *fullName,
		StudentCode:     *student,
	})
	if err != nil {
		return err
	}
	logger.Printf("created family account %q (id %s)", usr.Username, usr.ID)
	return nil
}

// addAdmin bypasses the family registration flow; admin accounts are not
// linked to a student.
func (cli *commandLine) addAdmin(ctx context.Context, svc *classroom.Service, username, fullName, pwd string) error {
	usr := classroom.User{
		Username: core.CleanString(username, true /* lower */),
		FullName: fullName,
		Role:     classroom.RoleAdmin,
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	created, err := svc.Provider().Register(ctx, usr)
	if err != nil {
		return err
	}
	logger.Printf("created admin account %q (id %s)", created.Username, created.ID)
	return nil
}
