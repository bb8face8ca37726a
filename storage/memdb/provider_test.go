package memdb_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnthao/solienlac/core"
	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/memdb"
	testutil "github.com/tnthao/solienlac/tests"
)

func openTestDB(t *testing.T) *memdb.DB {
	t.Helper()
	db, err := memdb.Open("")
	require.NoError(t, err)
	return db
}

func TestAuth(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	t.Run("login ok", func(t *testing.T) {
		usr, err := db.Login(ctx, "admin", "admin123")
		require.NoError(t, err)
		require.NotNil(t, usr)
		assert.Equal(t, classroom.RoleAdmin, usr.Role)
		assert.Empty(t, usr.Password)
	})

	t.Run("login miss is not an error", func(t *testing.T) {
		usr, err := db.Login(ctx, "admin", "wrong")
		require.NoError(t, err)
		assert.Nil(t, usr)

		usr, err = db.Login(ctx, "ghost", "admin123")
		require.NoError(t, err)
		assert.Nil(t, usr)
	})

	t.Run("register assigns id and strips password", func(t *testing.T) {
		usr := testutil.CreateUser(t, db, "new.family", "secret1", classroom.RoleApp, "s2")
		assert.NotEmpty(t, usr.ID)
		assert.Empty(t, usr.Password)

		got, err := db.GetUserByUsername(ctx, "new.family")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, usr.ID, got.ID)
	})

	t.Run("register duplicate username", func(t *testing.T) {
		_, err := db.Register(ctx, classroom.User{Username: "admin", Role: classroom.RoleAdmin})
		assert.ErrorIs(t, err, classroom.ErrUsernameExists)
	})

	t.Run("unknown username lookup", func(t *testing.T) {
		got, err := db.GetUserByUsername(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestStudents(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	t.Run("query by class", func(t *testing.T) {
		all, err := db.QueryStudents(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2) // seed

		c1, err := db.QueryStudents(ctx, "c1")
		require.NoError(t, err)
		assert.Len(t, c1, 2)

		none, err := db.QueryStudents(ctx, "c2")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("get by code", func(t *testing.T) {
		st, err := db.GetStudentByCode(ctx, "HS001")
		require.NoError(t, err)
		require.NotNil(t, st)
		assert.Equal(t, "Nguyen Van Teo", st.FullName)

		missing, err := db.GetStudentByCode(ctx, "HS999")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("update missing id", func(t *testing.T) {
		err := db.UpdateStudent(ctx, classroom.Student{ID: "nope", Code: "X", FullName: "X"})
		assert.ErrorIs(t, err, classroom.ErrNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		st := testutil.CreateStudent(t, db, "HS777", "Temp Kid", "c2")
		require.NoError(t, db.RemoveStudent(ctx, st.ID))
		assert.ErrorIs(t, db.RemoveStudent(ctx, st.ID), classroom.ErrNotFound)
	})
}

func TestDeleteMissingID(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	tests := map[string]func() error{
		"class":        func() error { return db.RemoveClass(ctx, "nope") },
		"student":      func() error { return db.RemoveStudent(ctx, "nope") },
		"parent":       func() error { return db.RemoveParent(ctx, "nope") },
		"behavior":     func() error { return db.DeleteBehavior(ctx, "nope") },
		"announcement": func() error { return db.DeleteAnnouncement(ctx, "nope") },
		"document":     func() error { return db.DeleteDocument(ctx, "nope") },
		"task":         func() error { return db.DeleteTask(ctx, "nope") },
		"question":     func() error { return db.DeleteQuestion(ctx, "nope") },
	}
	for name, del := range tests {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, del(), classroom.ErrNotFound)
		})
	}
}

func TestMarkAttendanceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	items := []classroom.Attendance{
		{StudentID: "s1", Status: classroom.AttendancePresent},
		{StudentID: "s2", Status: classroom.AttendanceAbsent, Note: "sick"},
	}
	require.NoError(t, db.MarkAttendance(ctx, "c1", "2023-11-13", items))
	require.NoError(t, db.MarkAttendance(ctx, "c1", "2023-11-13", items))

	got, err := db.GetAttendanceByClassDate(ctx, "c1", "2023-11-13")
	require.NoError(t, err)
	require.Len(t, got, 2) // replaced, not appended
	for _, a := range got {
		assert.NotEmpty(t, a.ID)
		assert.Equal(t, "c1", a.ClassID)
		assert.Equal(t, "2023-11-13", a.Date)
	}

	// another day is untouched
	require.NoError(t, db.MarkAttendance(ctx, "c1", "2023-11-14", items[:1]))
	got, err = db.GetAttendanceByClassDate(ctx, "c1", "2023-11-13")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	ranged, err := db.GetAttendanceByRange(ctx, "c1", "2023-11-13", "2023-11-14")
	require.NoError(t, err)
	assert.Len(t, ranged, 3)
}

func TestListAttendanceByStudent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, db.MarkAttendance(ctx, "c1", "2023-11-13", []classroom.Attendance{
		{StudentID: "s1", Status: classroom.AttendancePresent},
	}))
	require.NoError(t, db.MarkAttendance(ctx, "c1", "2023-12-01", []classroom.Attendance{
		{StudentID: "s1", Status: classroom.AttendanceLate},
	}))

	nov, err := db.ListAttendanceByStudent(ctx, "s1", 11, 2023)
	require.NoError(t, err)
	require.Len(t, nov, 1)
	assert.Equal(t, classroom.AttendancePresent, nov[0].Status)

	dec, err := db.ListAttendanceByStudent(ctx, "s1", 12, 2023)
	require.NoError(t, err)
	require.Len(t, dec, 1)
	assert.Equal(t, classroom.AttendanceLate, dec[0].Status)
}

func TestSubmitTaskReplyUpserts(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	first := classroom.TaskReply{
		TaskID:    "t1",
		StudentID: "s1",
		ReplyText: "done",
		CreatedAt: "2023-11-13T08:00:00Z",
	}
	require.NoError(t, db.SubmitTaskReply(ctx, first))

	replies, err := db.QueryTaskReplies(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, replies, 1)
	originalID := replies[0].ID
	require.NotEmpty(t, originalID)

	second := classroom.TaskReply{
		TaskID:      "t1",
		StudentID:   "s1",
		ReplyText:   "done, with the form attached",
		Attachments: []string{"https://example.com/form.pdf"},
		CreatedAt:   "2023-11-14T08:00:00Z",
	}
	require.NoError(t, db.SubmitTaskReply(ctx, second))

	replies, err = db.QueryTaskReplies(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, replies, 1) // replaced in place
	assert.Equal(t, originalID, replies[0].ID)
	assert.Equal(t, "done, with the form attached", replies[0].ReplyText)
	assert.Equal(t, []string{"https://example.com/form.pdf"}, replies[0].Attachments)

	// a different student appends
	require.NoError(t, db.SubmitTaskReply(ctx, classroom.TaskReply{
		TaskID:    "t1",
		StudentID: "s2",
		ReplyText: "me too",
		CreatedAt: "2023-11-14T09:00:00Z",
	}))
	replies, err = db.QueryTaskReplies(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, replies, 2)
}

func TestMessaging(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	t.Run("thread lookup by student", func(t *testing.T) {
		th, err := db.GetThreadByStudent(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, th)
		assert.Equal(t, "th1", th.ID)

		missing, err := db.GetThreadByStudent(ctx, "s2")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("send message touches thread", func(t *testing.T) {
		msg := classroom.Message{
			ThreadID:  "th1",
			FromRole:  classroom.FromParent,
			Content:   "Is the trip still on?",
			CreatedAt: "2030-01-02T10:00:00Z",
		}
		require.NoError(t, db.SendMessage(ctx, msg))

		th, err := db.GetThreadByStudent(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, th)
		assert.Equal(t, "2030-01-02T10:00:00Z", th.LastMessageAt)

		msgs, err := db.QueryMessages(ctx, "th1")
		require.NoError(t, err)
		require.NotEmpty(t, msgs)
		assert.Equal(t, "Is the trip still on?", msgs[len(msgs)-1].Content) // ascending order
	})

	t.Run("send to unknown thread", func(t *testing.T) {
		err := db.SendMessage(ctx, classroom.Message{ThreadID: "nope", Content: "x", CreatedAt: "2030-01-01T00:00:00Z"})
		assert.ErrorIs(t, err, classroom.ErrNotFound)
	})

	t.Run("lazy thread creation", func(t *testing.T) {
		th, err := db.CreateThread(ctx, classroom.Thread{
			ThreadKey:     "s2",
			Participants:  []string{"Ms. Thao", "Ti's Mother"},
			LastMessageAt: "2030-01-03T08:00:00Z",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, th.ID)

		threads, err := db.QueryThreads(ctx)
		require.NoError(t, err)
		require.Len(t, threads, 2)
		assert.Equal(t, th.ID, threads[0].ID) // newest activity first
	})
}

func TestQueryAnnouncementsOrder(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	anns, err := db.QueryAnnouncements(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, anns, 2)
	assert.True(t, anns[0].Pinned) // pinned first
}

func TestGetReport(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, db.MarkAttendance(ctx, "c1", "2023-11-13", []classroom.Attendance{
		{StudentID: "s1", Status: classroom.AttendancePresent},
		{StudentID: "s2", Status: classroom.AttendanceAbsent},
	}))
	_, err := db.AddBehavior(ctx, classroom.Behavior{
		StudentID: "s1", Date: "2023-11-14", Type: classroom.BehaviorPraise,
		Content: "great answer", Points: 5,
	})
	require.NoError(t, err)

	report, err := db.GetReport(ctx, "c1", classroom.PeriodWeekly, "2023-11-13", "2023-11-19")
	require.NoError(t, err)

	assert.Equal(t, 50, report.Summary.AttendanceRate)
	assert.Equal(t, 1, report.Summary.AbsentCount)
	require.Len(t, report.Summary.TopPraised, 1)
	assert.Equal(t, "Nguyen Van Teo", report.Summary.TopPraised[0].StudentName)
	assert.Empty(t, report.Summary.TopWarned)
}

func TestSnapshotPersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	db, err := memdb.Open(path)
	require.NoError(t, err)
	st := testutil.CreateStudent(t, db, "HS100", "Persisted Kid", "c1")

	// reopen from the snapshot
	db2, err := memdb.Open(path)
	require.NoError(t, err)
	got, err := db2.GetStudentByCode(ctx, "HS100")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, st.ID, got.ID)
	assert.Equal(t, "Persisted Kid", got.FullName)
}

func TestSnapshotWriteFailureIsShutdown(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	db, err := memdb.Open(path)
	require.NoError(t, err)

	// a directory squatting on the staging file makes every write fail
	require.NoError(t, os.Mkdir(path+".tmp", 0o755))

	_, err = db.AddStudent(ctx, classroom.Student{Code: "HS999", FullName: "Never Saved", ClassID: "c1"})
	require.Error(t, err)
	assert.True(t, core.IsShutdown(err))
}
