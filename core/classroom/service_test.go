package classroom_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnthao/solienlac/core"
	"github.com/tnthao/solienlac/core/classroom"
	emailsvc "github.com/tnthao/solienlac/services/email"
	"github.com/tnthao/solienlac/storage/memdb"
	testutil "github.com/tnthao/solienlac/tests"
)

func newTestService(t *testing.T) *classroom.Service {
	t.Helper()
	db, err := memdb.Open("")
	require.NoError(t, err)
	emailsvc.ClearSentMessages()
	return classroom.NewService(db, emailsvc.NewConsoleServiceMock(), testutil.NopLogger{})
}

func TestServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		svc := newTestService(t)
		usr, err := svc.Register(ctx, classroom.RegisterAccount{
			Username:        "Ti_Mother",
			Password:        "secret1",
			PasswordConfirm: "secret1",
			FullName:        "Ti's Mother",
			StudentCode:     "HS002",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, usr.ID)
		assert.Equal(t, "ti_mother", usr.Username) // lowercased
		assert.Equal(t, classroom.RoleApp, usr.Role)
		assert.Empty(t, usr.Password)

		// links to the student behind the code
		st, err := svc.Provider().GetStudentByCode(ctx, "HS002")
		require.NoError(t, err)
		require.NotNil(t, st)
		assert.Equal(t, st.ID, usr.RelatedID)
	})

	t.Run("unknown student code", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.Register(ctx, classroom.RegisterAccount{
			Username:        "nobody",
			Password:        "secret1",
			PasswordConfirm: "secret1",
			FullName:        "No One",
			StudentCode:     "HS999",
		})
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("duplicate username", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.Register(ctx, classroom.RegisterAccount{
			Username:        "admin", // seeded
			Password:        "secret1",
			PasswordConfirm: "secret1",
			FullName:        "Impostor",
			StudentCode:     "HS001",
		})
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("password mismatch", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.Register(ctx, classroom.RegisterAccount{
			Username:        "somebody",
			Password:        "secret1",
			PasswordConfirm: "secret2",
			FullName:        "Some Body",
			StudentCode:     "HS001",
		})
		require.Error(t, err)
	})
}

func TestServiceLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	t.Run("ok, case-insensitive username", func(t *testing.T) {
		usr, err := svc.Login(ctx, "  Admin ", "admin123")
		require.NoError(t, err)
		require.NotNil(t, usr)
		assert.Equal(t, "admin", usr.Username)
		assert.Empty(t, usr.Password)
	})

	t.Run("wrong password", func(t *testing.T) {
		usr, err := svc.Login(ctx, "admin", "nope")
		require.NoError(t, err)
		assert.Nil(t, usr)
	})

	t.Run("unknown user", func(t *testing.T) {
		usr, err := svc.Login(ctx, "ghost", "whatever")
		require.NoError(t, err)
		assert.Nil(t, usr)
	})
}

func TestServicePublishAnnouncement(t *testing.T) {
	ctx := context.Background()

	t.Run("parents are mailed", func(t *testing.T) {
		svc := newTestService(t)
		ann, err := svc.PublishAnnouncement(ctx, classroom.NewAnnouncement{
			ClassID: "c1",
			Title:   "PTA meeting",
			Content: "Friday 17:00 in the main hall.",
			Author:  "Ms. Thao",
			Target:  classroom.TargetParents,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, ann.ID)
		assert.NotEmpty(t, ann.CreatedAt)

		require.Len(t, emailsvc.SentMessages, 1)
		msg := emailsvc.SentMessages[0]
		assert.Equal(t, "PTA meeting", msg.Subject)
		require.Len(t, msg.Bcc, 1) // seed class c1 has one parent with an email
		assert.Equal(t, "an.nguyen@example.com", msg.Bcc[0].Address)
		assert.True(t, strings.Contains(msg.BodyStr, "Ms. Thao"))
	})

	t.Run("student-only target sends nothing", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.PublishAnnouncement(ctx, classroom.NewAnnouncement{
			ClassID: "c1",
			Title:   "Quiz",
			Content: "Quiz on Monday.",
			Author:  "Ms. Thao",
			Target:  classroom.TargetStudents,
		})
		require.NoError(t, err)
		assert.Empty(t, emailsvc.SentMessages)
	})

	t.Run("invalid target", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.PublishAnnouncement(ctx, classroom.NewAnnouncement{
			ClassID: "c1",
			Title:   "x",
			Content: "y",
			Author:  "z",
			Target:  "teachers",
		})
		require.Error(t, err)
	})
}

func TestServiceAddQuestion(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	t.Run("ok", func(t *testing.T) {
		q, err := svc.AddQuestion(ctx, classroom.NewQuestion{
			Content:      "How many legs does a spider have?",
			Options:      []string{"4", "6", "8", "10"},
			CorrectIndex: 2,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, q.ID)
	})

	t.Run("wrong option count", func(t *testing.T) {
		_, err := svc.AddQuestion(ctx, classroom.NewQuestion{
			Content:      "Yes or no?",
			Options:      []string{"Yes", "No"},
			CorrectIndex: 0,
		})
		require.Error(t, err)
	})

	t.Run("correct index out of range", func(t *testing.T) {
		_, err := svc.AddQuestion(ctx, classroom.NewQuestion{
			Content:      "Pick one",
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: 4,
		})
		require.Error(t, err)
	})
}

func TestServiceExport(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	require.NoError(t, svc.Provider().MarkAttendance(ctx, "c1", "2023-11-13", []classroom.Attendance{
		{StudentID: "s1", Status: classroom.AttendancePresent},
		{StudentID: "s2", Status: classroom.AttendanceAbsent, Note: "sick"},
	}))

	data, name, err := svc.Export(ctx, classroom.ExportAttendance, "c1", "2023-11-13", "2023-11-19")
	require.NoError(t, err)
	assert.Equal(t, "attendance_report_2023-11-13_2023-11-19.csv", name)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Code,Name,Status,Note", lines[0])
	assert.Contains(t, string(data), "HS001,Nguyen Van Teo,PRESENT")
	assert.Contains(t, string(data), "HS002,Tran Thi Ti,ABSENT,sick")

	_, _, err = svc.Export(ctx, "grades", "c1", "2023-11-13", "2023-11-19")
	require.Error(t, err)
}
