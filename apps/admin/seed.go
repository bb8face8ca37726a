package main

import (
	"context"
	"flag"
	"time"

	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core/classroom"
)

// runSeed fills an empty backend with the starter dataset: accounts,
// two classes with students, sample content for every feature. The memdb
// backend seeds itself on first open; this command exists for postgres.
func (cli *commandLine) runSeed(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	force := fs.Bool("force", false, "Seed even when classes already exist.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc, cleanup, err := cli.service()
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := context.Background()
	provider := svc.Provider()

	classes, err := provider.QueryClasses(ctx)
	if err != nil {
		return err
	}
	if len(classes) > 0 && !*force {
		return errors.Errorf("backend already holds %d classes; re-run with -force to seed anyway", len(classes))
	}

	now := time.Now().UTC().Format(time.RFC3339)
	today := time.Now().UTC().Format("2006-01-02")

	c1, err := provider.AddClass(ctx, classroom.ClassInfo{ClassName: "5A1", SchoolYear: "2023-2024", HomeroomTeacher: "Ms. Thao"})
	if err != nil {
		return err
	}
	if _, err = provider.AddClass(ctx, classroom.ClassInfo{ClassName: "5A2", SchoolYear: "2023-2024", HomeroomTeacher: "Mr. Ba"}); err != nil {
		return err
	}

	teo, err := provider.AddStudent(ctx, classroom.Student{
		Code: "HS001", FullName: "Nguyen Van Teo", ClassID: c1.ID,
		Gender: classroom.GenderMale, DOB: "2015-05-20", Address: "Ha Noi", Status: classroom.StudentActive,
	})
	if err != nil {
		return err
	}
	if _, err = provider.AddStudent(ctx, classroom.Student{
		Code: "HS002", FullName: "Tran Thi Ti", ClassID: c1.ID,
		Gender: classroom.GenderFemale, DOB: "2015-08-15", Address: "Ha Noi", Status: classroom.StudentActive,
	}); err != nil {
		return err
	}

	if _, err = provider.AddParent(ctx, classroom.Parent{
		FullName: "Nguyen Van An", Phone: "0901234567", Email: "an.nguyen@example.com",
		Relationship: "father", StudentID: teo.ID,
	}); err != nil {
		return err
	}

	admin := classroom.User{Username: "admin", FullName: "Ms. Thao", Role: classroom.RoleAdmin}
	if err = admin.SetPassword("admin123"); err != nil {
		return err
	}
	if _, err = provider.Register(ctx, admin); err != nil && err != classroom.ErrUsernameExists {
		return err
	}
	family := classroom.User{Username: "teo_family", FullName: "Teo's Father", Role: classroom.RoleApp, RelatedID: teo.ID}
	if err = family.SetPassword("family123"); err != nil {
		return err
	}
	if _, err = provider.Register(ctx, family); err != nil && err != classroom.ErrUsernameExists {
		return err
	}

	if _, err = provider.AddAnnouncement(ctx, classroom.Announcement{
		ClassID: c1.ID, Title: "Term opening parent meeting",
		Content: "All families are invited on Friday at 17:00.",
		Author:  "Ms. Thao", Target: classroom.TargetParents, Pinned: true, CreatedAt: now,
	}); err != nil {
		return err
	}
	if _, err = provider.AddDocument(ctx, classroom.ClassDocument{
		ClassID: c1.ID, Title: "Class rules", URL: "https://example.com/docs/rules.pdf",
		Category: "rules", CreatedAt: now,
	}); err != nil {
		return err
	}
	if _, err = provider.AddTask(ctx, classroom.Task{
		ClassID: c1.ID, Title: "Submit insurance form",
		Description: "Return the signed health insurance form.",
		DueDate:     today, RequireReply: true, CreatedAt: now,
	}); err != nil {
		return err
	}

	thread, err := provider.CreateThread(ctx, classroom.Thread{
		ThreadKey: teo.ID, Participants: []string{"Ms. Thao", "Teo's Father"}, LastMessageAt: now,
	})
	if err != nil {
		return err
	}
	if err = provider.SendMessage(ctx, classroom.Message{
		ThreadID: thread.ID, FromRole: classroom.FromTeacher,
		Content: "Teo has been doing very well lately.", CreatedAt: now,
	}); err != nil {
		return err
	}

	questions := []classroom.Question{
		{Content: "What is the capital of Vietnam?", Options: []string{"Ho Chi Minh City", "Da Nang", "Ha Noi", "Hai Phong"}, CorrectIndex: 2},
		{Content: "How much is 5 x 5?", Options: []string{"20", "25", "30", "35"}, CorrectIndex: 1},
		{Content: "Which animal lays eggs?", Options: []string{"Cat", "Dog", "Hen", "Cow"}, CorrectIndex: 2},
		{Content: "Which planet is closest to the sun?", Options: []string{"Venus", "Mercury", "Earth", "Mars"}, CorrectIndex: 1},
	}
	for _, q := range questions {
		if _, err = provider.AddQuestion(ctx, q); err != nil {
			return err
		}
	}

	logger.Printf("seeded starter dataset into the %s backend", cli.conf.Backend)
	return nil
}
