package sheetapi_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnthao/solienlac/api"
	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/memdb"
	"github.com/tnthao/solienlac/storage/sheetapi"
	testutil "github.com/tnthao/solienlac/tests"
)

// newTestBackend serves a fresh memdb store over the action API and points
// a remote provider at it, so every call in these tests crosses the wire.
func newTestBackend(t *testing.T) (*sheetapi.Provider, *memdb.DB) {
	t.Helper()
	db, err := memdb.Open("")
	require.NoError(t, err)
	srv := httptest.NewServer(api.NewServer(api.Options{
		Store:          db,
		Logger:         testutil.NopLogger{},
		DisableReqLogs: true,
	}))
	t.Cleanup(srv.Close)
	return sheetapi.NewProvider(srv.URL), db
}

func TestRemoteAuth(t *testing.T) {
	ctx := context.Background()
	provider, _ := newTestBackend(t)

	t.Run("login ok", func(t *testing.T) {
		usr, err := provider.Login(ctx, "admin", "admin123")
		require.NoError(t, err)
		require.NotNil(t, usr)
		assert.Equal(t, classroom.RoleAdmin, usr.Role)
		assert.Empty(t, usr.Password)
	})

	t.Run("login miss", func(t *testing.T) {
		usr, err := provider.Login(ctx, "admin", "wrong")
		require.NoError(t, err)
		assert.Nil(t, usr)
	})

	t.Run("register and fetch back", func(t *testing.T) {
		usr := classroom.User{Username: "ti.mother", FullName: "Ti's Mother", Role: classroom.RoleApp, RelatedID: "s2"}
		require.NoError(t, usr.SetPassword("secret1"))
		created, err := provider.Register(ctx, usr)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Empty(t, created.Password)

		got, err := provider.GetUserByUsername(ctx, "ti.mother")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created.ID, got.ID)

		missing, err := provider.GetUserByUsername(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("duplicate username survives the wire", func(t *testing.T) {
		_, err := provider.Register(ctx, classroom.User{Username: "admin", Role: classroom.RoleAdmin})
		assert.ErrorIs(t, err, classroom.ErrUsernameExists)
	})
}

func TestRemoteStudents(t *testing.T) {
	ctx := context.Background()
	provider, _ := newTestBackend(t)

	st, err := provider.AddStudent(ctx, classroom.Student{
		Code: "HS010", FullName: "Pham Van Bo", ClassID: "c2", Status: classroom.StudentActive,
	})
	require.NoError(t, err)
	require.NotEmpty(t, st.ID)

	got, err := provider.GetStudentByCode(ctx, "HS010")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, st.ID, got.ID)

	st.ClassID = "c1"
	require.NoError(t, provider.UpdateStudent(ctx, st))
	inC1, err := provider.QueryStudents(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, inC1, 3)

	require.NoError(t, provider.RemoveStudent(ctx, st.ID))
	assert.ErrorIs(t, provider.RemoveStudent(ctx, st.ID), classroom.ErrNotFound)
}

func TestRemoteMarkAttendanceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	provider, _ := newTestBackend(t)

	items := []classroom.Attendance{
		{StudentID: "s1", Status: classroom.AttendancePresent},
		{StudentID: "s2", Status: classroom.AttendanceAbsent, Note: "sick"},
	}
	require.NoError(t, provider.MarkAttendance(ctx, "c1", "2023-11-13", items))
	require.NoError(t, provider.MarkAttendance(ctx, "c1", "2023-11-13", items))

	got, err := provider.GetAttendanceByClassDate(ctx, "c1", "2023-11-13")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRemoteSubmitTaskReplyUpserts(t *testing.T) {
	ctx := context.Background()
	provider, _ := newTestBackend(t)

	require.NoError(t, provider.SubmitTaskReply(ctx, classroom.TaskReply{
		TaskID: "t1", StudentID: "s1", ReplyText: "done", CreatedAt: "2023-11-13T08:00:00Z",
	}))
	replies, err := provider.QueryTaskReplies(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, replies, 1)
	originalID := replies[0].ID

	require.NoError(t, provider.SubmitTaskReply(ctx, classroom.TaskReply{
		TaskID: "t1", StudentID: "s1", ReplyText: "done again",
		Attachments: []string{"https://example.com/form.pdf"},
		CreatedAt:   "2023-11-14T08:00:00Z",
	}))
	replies, err = provider.QueryTaskReplies(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, originalID, replies[0].ID)
	assert.Equal(t, "done again", replies[0].ReplyText)
	assert.Equal(t, []string{"https://example.com/form.pdf"}, replies[0].Attachments)
}

func TestRemoteMessaging(t *testing.T) {
	ctx := context.Background()
	provider, _ := newTestBackend(t)

	require.NoError(t, provider.SendMessage(ctx, classroom.Message{
		ThreadID: "th1", FromRole: classroom.FromParent,
		Content: "Is the trip still on?", CreatedAt: "2030-01-02T10:00:00Z",
	}))

	th, err := provider.GetThreadByStudent(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, th)
	assert.Equal(t, "2030-01-02T10:00:00Z", th.LastMessageAt)

	msgs, err := provider.QueryMessages(ctx, "th1")
	require.NoError(t, err)
	require.NotEmpty(t, msgs)
	assert.Equal(t, "Is the trip still on?", msgs[len(msgs)-1].Content)

	missing, err := provider.GetThreadByStudent(ctx, "s2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRemoteQuestionsCarryOptions(t *testing.T) {
	ctx := context.Background()
	provider, _ := newTestBackend(t)

	q, err := provider.AddQuestion(ctx, classroom.Question{
		Content:      "How many legs does a spider have?",
		Options:      []string{"6", "8", "10"},
		CorrectIndex: 1,
	})
	require.NoError(t, err)
	require.NotEmpty(t, q.ID)
	assert.Equal(t, []string{"6", "8", "10"}, q.Options)

	all, err := provider.QueryQuestions(ctx)
	require.NoError(t, err)
	var found bool
	for _, got := range all {
		if got.ID == q.ID {
			found = true
			assert.Equal(t, q.Options, got.Options)
		}
	}
	assert.True(t, found)
}

func TestRemoteReportMatchesLocal(t *testing.T) {
	ctx := context.Background()
	provider, db := newTestBackend(t)

	require.NoError(t, provider.MarkAttendance(ctx, "c1", "2023-11-13", []classroom.Attendance{
		{StudentID: "s1", Status: classroom.AttendancePresent},
		{StudentID: "s2", Status: classroom.AttendanceAbsent},
	}))
	_, err := provider.AddBehavior(ctx, classroom.Behavior{
		StudentID: "s1", Date: "2023-11-14", Type: classroom.BehaviorPraise,
		Content: "great answer", Points: 5,
	})
	require.NoError(t, err)

	remote, err := provider.GetReport(ctx, "c1", classroom.PeriodWeekly, "2023-11-13", "2023-11-19")
	require.NoError(t, err)
	local, err := db.GetReport(ctx, "c1", classroom.PeriodWeekly, "2023-11-13", "2023-11-19")
	require.NoError(t, err)

	testutil.Diff(t, local, remote)
}
