package main

import (
	"context"
	"flag"

	"github.com/tnthao/solienlac/core/classroom"
)

func (cli *commandLine) runAnnounce(args []string) error {
	fs := flag.NewFlagSet("announce", flag.ExitOnError)
	classID := fs.String("class", "", "Class id the announcement belongs to.")
	title := fs.String("title", "", "Announcement title.")
	content := fs.String("content", "", "Announcement body.")
	target := fs.String("target", classroom.TargetAll, "Audience: all, parents or students.")
	author := fs.String("author", "Admin", "Displayed author name.")
	pin := fs.Bool("pin", false, "Pin the announcement to the top.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *classID == "" || *title == "" || *content == "" {
		fs.Usage()
		return errHelp
	}

	svc, cleanup, err := cli.service()
	if err != nil {
		return err
	}
	defer cleanup()

	ann, err := svc.PublishAnnouncement(context.Background(), classroom.NewAnnouncement{
		ClassID: *classID,
		Title:   *title,
		Content: *content,
		Author:  *author,
		Target:  *target,
		Pinned:  *pin,
	})
	if err != nil {
		return err
	}
	logger.Printf("published announcement %q (id %s)", ann.Title, ann.ID)
	return nil
}
