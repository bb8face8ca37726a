package classroom

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound reports an id-addressed mutation against a missing record.
	// Nullable lookups (Login, GetUserByUsername, GetStudentByCode,
	// GetThreadByStudent) return (nil, nil) on a miss instead.
	ErrNotFound = errors.New("record not found")

	// ErrUsernameExists fails Register fast on a duplicate username.
	ErrUsernameExists = errors.New("a user with this username already exists")
)

// DataProvider is the persistence contract every backend satisfies.
//
// Identifiers are opaque strings assigned by the backend at creation time;
// an empty id on input means "assign a new one". Calendar dates travel as
// YYYY-MM-DD strings and timestamps as full ISO-8601 instants, so inclusive
// range queries compare lexicographically.
//
// Multi-step operations (MarkAttendance, SubmitTaskReply, SendMessage) are
// not transactional on every backend; callers re-fetch after each mutation
// rather than rely on push.
type DataProvider interface {
	// Auth. Login and GetUserByUsername return nil without error when no
	// user matches; returned users always have the password stripped.
	Login(ctx context.Context, username, password string) (*User, error)
	Register(ctx context.Context, usr User) (User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	DashboardStats(ctx context.Context) (DashboardStats, error)

	// Classes
	QueryClasses(ctx context.Context) ([]ClassInfo, error)
	AddClass(ctx context.Context, info ClassInfo) (ClassInfo, error)
	UpdateClass(ctx context.Context, info ClassInfo) error
	RemoveClass(ctx context.Context, id string) error

	// Students. An empty classID queries all students.
	QueryStudents(ctx context.Context, classID string) ([]Student, error)
	AddStudent(ctx context.Context, st Student) (Student, error)
	UpdateStudent(ctx context.Context, st Student) error
	RemoveStudent(ctx context.Context, id string) error
	GetStudentByCode(ctx context.Context, code string) (*Student, error)

	// Parents. An empty studentID queries all parents.
	QueryParents(ctx context.Context, studentID string) ([]Parent, error)
	AddParent(ctx context.Context, p Parent) (Parent, error)
	UpdateParent(ctx context.Context, p Parent) error
	RemoveParent(ctx context.Context, id string) error

	// Attendance. MarkAttendance has replace semantics: every existing row
	// for exactly (classID, date) is removed first, then the given records
	// are inserted with fresh ids, which makes the call idempotent.
	GetAttendanceByClassDate(ctx context.Context, classID, date string) ([]Attendance, error)
	MarkAttendance(ctx context.Context, classID, date string, items []Attendance) error
	ListAttendanceByStudent(ctx context.Context, studentID string, month, year int) ([]Attendance, error)
	GetAttendanceByRange(ctx context.Context, classID, startDate, endDate string) ([]Attendance, error)

	// Behaviors, newest first. An empty studentID queries all.
	QueryBehaviors(ctx context.Context, studentID string) ([]Behavior, error)
	AddBehavior(ctx context.Context, b Behavior) (Behavior, error)
	UpdateBehavior(ctx context.Context, b Behavior) error
	DeleteBehavior(ctx context.Context, id string) error
	GetBehaviorsByClassRange(ctx context.Context, classID, startDate, endDate string) ([]Behavior, error)

	// Announcements, pinned first then newest first.
	QueryAnnouncements(ctx context.Context, classID string) ([]Announcement, error)
	AddAnnouncement(ctx context.Context, a Announcement) (Announcement, error)
	UpdateAnnouncement(ctx context.Context, a Announcement) error
	DeleteAnnouncement(ctx context.Context, id string) error

	// Documents
	QueryDocuments(ctx context.Context, classID string) ([]ClassDocument, error)
	AddDocument(ctx context.Context, d ClassDocument) (ClassDocument, error)
	UpdateDocument(ctx context.Context, d ClassDocument) error
	DeleteDocument(ctx context.Context, id string) error

	// Tasks, newest first.
	QueryTasks(ctx context.Context, classID string) ([]Task, error)
	AddTask(ctx context.Context, t Task) (Task, error)
	UpdateTask(ctx context.Context, t Task) error
	DeleteTask(ctx context.Context, id string) error

	// Task replies. SubmitTaskReply upserts by (TaskID, StudentID): an
	// existing reply keeps its id and has its fields replaced.
	QueryTaskReplies(ctx context.Context, taskID string) ([]TaskReply, error)
	SubmitTaskReply(ctx context.Context, r TaskReply) error

	// Messaging. The contract does not deduplicate threads: callers check
	// GetThreadByStudent before CreateThread. SendMessage appends the
	// message and unconditionally sets the thread's LastMessageAt to the
	// message's timestamp.
	QueryThreads(ctx context.Context) ([]Thread, error)
	GetThreadByStudent(ctx context.Context, studentID string) (*Thread, error)
	CreateThread(ctx context.Context, t Thread) (Thread, error)
	QueryMessages(ctx context.Context, threadID string) ([]Message, error)
	SendMessage(ctx context.Context, m Message) error

	// Question bank
	QueryQuestions(ctx context.Context) ([]Question, error)
	AddQuestion(ctx context.Context, q Question) (Question, error)
	UpdateQuestion(ctx context.Context, q Question) error
	DeleteQuestion(ctx context.Context, id string) error

	// GetReport aggregates attendance, behavior and task activity for a
	// class over [startDate, endDate]; see ComputeReport for the rules.
	GetReport(ctx context.Context, classID string, period Period, startDate, endDate string) (Report, error)
}
