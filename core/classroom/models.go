package classroom

import "golang.org/x/crypto/bcrypt"

// User roles
const (
	RoleAdmin = "admin" // homeroom teacher / portal admin
	RoleApp   = "app"   // family account linked to a student
)

// User is a portal account. Password holds the bcrypt hash at rest; every
// read path returns users with Password stripped.
type User struct {
	ID       string `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"password,omitempty" db:"password"`
	FullName string `json:"fullName" db:"full_name"`
	Role     string `json:"role" db:"role"`
	// RelatedID links app-role accounts to a Student.
	RelatedID string `json:"relatedId,omitempty" db:"related_id"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(pwd))
}

// Stripped returns a copy safe to hand to callers.
func (u User) Stripped() User {
	u.Password = ""
	return u
}

type ClassInfo struct {
	ID              string `json:"id" db:"id"`
	ClassName       string `json:"className" db:"class_name"`
	SchoolYear      string `json:"schoolYear" db:"school_year"`
	HomeroomTeacher string `json:"homeroomTeacher" db:"homeroom_teacher"`
	Note            string `json:"note,omitempty" db:"note"`
}

// Student enrollment statuses.
const (
	StudentActive      = "active"
	StudentLeft        = "left"
	StudentTransferred = "transferred"
)

// Student genders.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

type Student struct {
	ID string `json:"id" db:"id"`
	// Code is the human-facing student id, unique school-wide; family
	// accounts link to students through it.
	Code     string `json:"code" db:"code"`
	FullName string `json:"fullName" db:"full_name"`
	ClassID  string `json:"classId" db:"class_id"`
	Gender   string `json:"gender" db:"gender"`
	DOB      string `json:"dob" db:"dob"` // YYYY-MM-DD
	Address  string `json:"address,omitempty" db:"address"`
	Status   string `json:"status" db:"status"`
}

type Parent struct {
	ID           string `json:"id" db:"id"`
	FullName     string `json:"fullName" db:"full_name"`
	Phone        string `json:"phone" db:"phone"`
	Email        string `json:"email" db:"email"`
	Relationship string `json:"relationship" db:"relationship"`
	StudentID    string `json:"studentId" db:"student_id"`
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
)

// Valid reports whether the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	default:
		return false
	}
}

type Attendance struct {
	ID        string           `json:"id" db:"id"`
	ClassID   string           `json:"classId" db:"class_id"`
	StudentID string           `json:"studentId" db:"student_id"`
	Date      string           `json:"date" db:"date"` // YYYY-MM-DD
	Status    AttendanceStatus `json:"status" db:"status"`
	Note      string           `json:"note,omitempty" db:"note"`
}

type BehaviorType string

const (
	BehaviorPraise BehaviorType = "PRAISE"
	BehaviorWarn   BehaviorType = "WARN"
)

// Behavior records a praise or a warning. Points are stored positive;
// the sign is implied by Type.
type Behavior struct {
	ID        string       `json:"id" db:"id"`
	StudentID string       `json:"studentId" db:"student_id"`
	Date      string       `json:"date" db:"date"` // YYYY-MM-DD
	Type      BehaviorType `json:"type" db:"type"`
	Content   string       `json:"content" db:"content"`
	Points    int          `json:"points" db:"points"`
}

// Announcement targets.
const (
	TargetAll      = "all"
	TargetParents  = "parents"
	TargetStudents = "students"
)

type Announcement struct {
	ID        string `json:"id" db:"id"`
	ClassID   string `json:"classId" db:"class_id"`
	Title     string `json:"title" db:"title"`
	Content   string `json:"content" db:"content"`
	CreatedAt string `json:"createdAt" db:"created_at"` // ISO-8601 instant
	Author    string `json:"author" db:"author"`
	Target    string `json:"target" db:"target"`
	Pinned    bool   `json:"pinned" db:"pinned"`
}

type ClassDocument struct {
	ID        string `json:"id" db:"id"`
	ClassID   string `json:"classId" db:"class_id"`
	Title     string `json:"title" db:"title"`
	URL       string `json:"url" db:"url"`
	Category  string `json:"category" db:"category"`
	CreatedAt string `json:"createdAt" db:"created_at"`
}

type Task struct {
	ID           string `json:"id" db:"id"`
	ClassID      string `json:"classId" db:"class_id"`
	Title        string `json:"title" db:"title"`
	Description  string `json:"description" db:"description"`
	DueDate      string `json:"dueDate" db:"due_date"` // YYYY-MM-DD
	RequireReply bool   `json:"requireReply" db:"require_reply"`
	CreatedAt    string `json:"createdAt" db:"created_at"`
}

// TaskReply is keyed by (TaskID, StudentID); re-submission replaces the
// existing reply in place.
type TaskReply struct {
	ID          string   `json:"id"`
	TaskID      string   `json:"taskId"`
	StudentID   string   `json:"studentId"`
	ReplyText   string   `json:"replyText"`
	Attachments []string `json:"attachments"` // URLs
	CreatedAt   string   `json:"createdAt"`
}

// Thread is a messaging conversation keyed by a single student
// (ThreadKey == Student.ID), created lazily on first send.
type Thread struct {
	ID            string   `json:"id"`
	ThreadKey     string   `json:"threadKey"`
	Participants  []string `json:"participants"`
	LastMessageAt string   `json:"lastMessageAt"`
}

type MessageRole string

const (
	FromTeacher MessageRole = "TEACHER"
	FromParent  MessageRole = "PARENT"
	FromStudent MessageRole = "STUDENT"
)

type Message struct {
	ID        string      `json:"id" db:"id"`
	ThreadID  string      `json:"threadId" db:"thread_id"`
	FromRole  MessageRole `json:"fromRole" db:"from_role"`
	Content   string      `json:"content" db:"content"`
	CreatedAt string      `json:"createdAt" db:"created_at"`
}

// Question is a quiz question with exactly four options.
type Question struct {
	ID           string   `json:"id"`
	Content      string   `json:"content"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

type (
	PraiseRank struct {
		StudentName string `json:"studentName"`
		Count       int    `json:"count"`
		Points      int    `json:"points"`
	}

	WarnRank struct {
		StudentName string `json:"studentName"`
		Count       int    `json:"count"`
	}

	ReportSummary struct {
		AttendanceRate int          `json:"attendanceRate"`
		AbsentCount    int          `json:"absentCount"`
		LateCount      int          `json:"lateCount"`
		TopPraised     []PraiseRank `json:"topPraised"`
		TopWarned      []WarnRank   `json:"topWarned"`
		TasksDueCount  int          `json:"tasksDueCount"`
		RepliesCount   int          `json:"repliesCount"`
	}

	Report struct {
		Period    Period        `json:"period"`
		StartDate string        `json:"startDate"`
		EndDate   string        `json:"endDate"`
		Summary   ReportSummary `json:"summary"`
	}

	DashboardStats struct {
		TotalStudents        int `json:"totalStudents"`
		WeeklyAttendanceRate int `json:"weeklyAttendanceRate"`
		NewAnnouncements     int `json:"newAnnouncements"`
		PendingTasks         int `json:"pendingTasks"`
		TotalPraisePoints    int `json:"totalPraisePoints"`
		TotalWarnings        int `json:"totalWarnings"`
	}
)
