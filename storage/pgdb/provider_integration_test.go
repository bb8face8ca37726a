package pgdb_test

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/pgdb"
)

// openLiveDB connects to the database named by TEST_DATABASE_URL, applies
// migrations and truncates every table. Tests skip when the variable is
// unset so the suite stays runnable without infrastructure.
func openLiveDB(t *testing.T) *pgdb.Provider {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sqlx.Connect("postgres", url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, pgdb.Migrate(db))

	_, err = db.Exec(`TRUNCATE users, classes, students, parents, attendance,
		behaviors, announcements, documents, tasks, task_replies, threads,
		messages, questions`)
	require.NoError(t, err)
	return pgdb.NewProvider(db)
}

func TestLiveAuth(t *testing.T) {
	ctx := context.Background()
	provider := openLiveDB(t)

	usr := classroom.User{Username: "admin", FullName: "Ms. Thao", Role: classroom.RoleAdmin}
	require.NoError(t, usr.SetPassword("admin123"))
	created, err := provider.Register(ctx, usr)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Empty(t, created.Password)

	_, err = provider.Register(ctx, classroom.User{Username: "admin", Role: classroom.RoleAdmin})
	assert.ErrorIs(t, err, classroom.ErrUsernameExists)

	loggedIn, err := provider.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.NotNil(t, loggedIn)
	assert.Equal(t, created.ID, loggedIn.ID)

	miss, err := provider.Login(ctx, "admin", "wrong")
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestLiveAttendanceAndReport(t *testing.T) {
	ctx := context.Background()
	provider := openLiveDB(t)

	info, err := provider.AddClass(ctx, classroom.ClassInfo{ClassName: "5A1", SchoolYear: "2023-2024"})
	require.NoError(t, err)
	an, err := provider.AddStudent(ctx, classroom.Student{
		Code: "HS001", FullName: "Nguyen Van An", ClassID: info.ID, Status: classroom.StudentActive,
	})
	require.NoError(t, err)
	binh, err := provider.AddStudent(ctx, classroom.Student{
		Code: "HS002", FullName: "Tran Van Binh", ClassID: info.ID, Status: classroom.StudentActive,
	})
	require.NoError(t, err)

	items := []classroom.Attendance{
		{StudentID: an.ID, Status: classroom.AttendancePresent},
		{StudentID: binh.ID, Status: classroom.AttendanceAbsent},
	}
	require.NoError(t, provider.MarkAttendance(ctx, info.ID, "2023-11-13", items))
	require.NoError(t, provider.MarkAttendance(ctx, info.ID, "2023-11-13", items))
	got, err := provider.GetAttendanceByClassDate(ctx, info.ID, "2023-11-13")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = provider.AddBehavior(ctx, classroom.Behavior{
		StudentID: an.ID, Date: "2023-11-14", Type: classroom.BehaviorPraise,
		Content: "great answer", Points: 5,
	})
	require.NoError(t, err)

	report, err := provider.GetReport(ctx, info.ID, classroom.PeriodWeekly, "2023-11-13", "2023-11-19")
	require.NoError(t, err)
	assert.Equal(t, 50, report.Summary.AttendanceRate)
	require.Len(t, report.Summary.TopPraised, 1)
	assert.Equal(t, "Nguyen Van An", report.Summary.TopPraised[0].StudentName)
}

func TestLiveReplyUpsert(t *testing.T) {
	ctx := context.Background()
	provider := openLiveDB(t)

	info, err := provider.AddClass(ctx, classroom.ClassInfo{ClassName: "5A1", SchoolYear: "2023-2024"})
	require.NoError(t, err)
	st, err := provider.AddStudent(ctx, classroom.Student{
		Code: "HS001", FullName: "Nguyen Van An", ClassID: info.ID, Status: classroom.StudentActive,
	})
	require.NoError(t, err)
	task, err := provider.AddTask(ctx, classroom.Task{
		ClassID: info.ID, Title: "Submit form", DueDate: "2023-12-31",
		RequireReply: true, CreatedAt: "2023-11-13T08:00:00Z",
	})
	require.NoError(t, err)

	require.NoError(t, provider.SubmitTaskReply(ctx, classroom.TaskReply{
		TaskID: task.ID, StudentID: st.ID, ReplyText: "done", CreatedAt: "2023-11-13T09:00:00Z",
	}))
	replies, err := provider.QueryTaskReplies(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	originalID := replies[0].ID

	require.NoError(t, provider.SubmitTaskReply(ctx, classroom.TaskReply{
		TaskID: task.ID, StudentID: st.ID, ReplyText: "done again",
		Attachments: []string{"https://example.com/form.pdf"},
		CreatedAt:   "2023-11-14T09:00:00Z",
	}))
	replies, err = provider.QueryTaskReplies(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, originalID, replies[0].ID)
	assert.Equal(t, "done again", replies[0].ReplyText)
	assert.Equal(t, []string{"https://example.com/form.pdf"}, replies[0].Attachments)
}

func TestLiveMessaging(t *testing.T) {
	ctx := context.Background()
	provider := openLiveDB(t)

	thread, err := provider.CreateThread(ctx, classroom.Thread{
		ThreadKey: "s1", Participants: []string{"Ms. Thao", "Teo's Father"},
		LastMessageAt: "2023-11-13T08:00:00Z",
	})
	require.NoError(t, err)

	require.NoError(t, provider.SendMessage(ctx, classroom.Message{
		ThreadID: thread.ID, FromRole: classroom.FromParent,
		Content: "Is the trip still on?", CreatedAt: "2023-11-14T10:00:00Z",
	}))
	got, err := provider.GetThreadByStudent(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2023-11-14T10:00:00Z", got.LastMessageAt)

	err = provider.SendMessage(ctx, classroom.Message{
		ThreadID: "missing", Content: "x", CreatedAt: "2023-11-14T11:00:00Z",
	})
	assert.ErrorIs(t, err, classroom.ErrNotFound)
}
