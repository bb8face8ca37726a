// Package memdb implements the classroom.DataProvider contract over a
// process-local store: one list per entity kind, optionally persisted to a
// flat JSON snapshot after every mutation. Filtering is a linear scan at
// query time; no secondary indexes are kept.
package memdb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core"
	"github.com/tnthao/solienlac/core/classroom"
)

type store struct {
	Users         []classroom.User          `json:"users"`
	Classes       []classroom.ClassInfo     `json:"classes"`
	Students      []classroom.Student       `json:"students"`
	Parents       []classroom.Parent        `json:"parents"`
	Attendance    []classroom.Attendance    `json:"attendance"`
	Behaviors     []classroom.Behavior      `json:"behaviors"`
	Announcements []classroom.Announcement  `json:"announcements"`
	Documents     []classroom.ClassDocument `json:"documents"`
	Tasks         []classroom.Task          `json:"tasks"`
	TaskReplies   []classroom.TaskReply     `json:"task_replies"`
	Threads       []classroom.Thread        `json:"threads"`
	Messages      []classroom.Message       `json:"messages"`
	Questions     []classroom.Question      `json:"questions"`
}

type DB struct {
	mu   sync.RWMutex
	path string
	data *store
}

var _ classroom.DataProvider = (*DB)(nil)

// Open loads the snapshot at path, or starts a seeded store when the file
// does not exist yet. An empty path keeps everything in memory (tests).
func Open(path string) (*DB, error) {
	db := &DB{path: path, data: &store{}}
	if path == "" {
		db.seed()
		return db, nil
	}
	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		db.seed()
		if err := db.save(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, errors.Wrapf(err, "opening snapshot %s", path)
	default:
		if err := json.Unmarshal(raw, db.data); err != nil {
			return nil, errors.Wrapf(err, "parsing snapshot %s", path)
		}
	}
	return db, nil
}

// save persists the whole store; the caller holds the write lock. The
// write-then-rename keeps a crash from truncating the snapshot. A write
// failure comes back as a shutdown error: the store must not keep
// accepting mutations it cannot persist.
func (db *DB) save() error {
	if db.path == "" {
		return nil
	}
	raw, err := json.Marshal(db.data)
	if err != nil {
		return core.NewShutdownError("encoding snapshot: " + err.Error())
	}
	tmp := db.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(db.path), 0o755); err != nil {
		return core.NewShutdownError("writing snapshot: " + err.Error())
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return core.NewShutdownError("writing snapshot: " + err.Error())
	}
	if err := os.Rename(tmp, db.path); err != nil {
		return core.NewShutdownError("writing snapshot: " + err.Error())
	}
	return nil
}

func nowISO() string { return time.Now().UTC().Format(time.RFC3339) }

// seed fills a brand-new store with a usable starter dataset: one admin and
// one family account (passwords "admin123" / "family123"), two classes with
// students, and sample content for every feature.
func (db *DB) seed() {
	admin := classroom.User{ID: "u1", Username: "admin", FullName: "Ms. Thao", Role: classroom.RoleAdmin}
	_ = admin.SetPassword("admin123")
	family := classroom.User{ID: "u2", Username: "teo.family", FullName: "Teo's Father", Role: classroom.RoleApp, RelatedID: "s1"}
	_ = family.SetPassword("family123")

	now := nowISO()
	yesterday := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)

	db.data = &store{
		Users: []classroom.User{admin, family},
		Classes: []classroom.ClassInfo{
			{ID: "c1", ClassName: "5A1", SchoolYear: "2023-2024", HomeroomTeacher: "Ms. Thao", Note: "selective class"},
			{ID: "c2", ClassName: "5A2", SchoolYear: "2023-2024", HomeroomTeacher: "Mr. Ba"},
		},
		Students: []classroom.Student{
			{ID: "s1", Code: "HS001", FullName: "Nguyen Van Teo", ClassID: "c1", Gender: classroom.GenderMale, DOB: "2015-05-20", Address: "Ha Noi", Status: classroom.StudentActive},
			{ID: "s2", Code: "HS002", FullName: "Tran Thi Ti", ClassID: "c1", Gender: classroom.GenderFemale, DOB: "2015-08-15", Address: "Ha Noi", Status: classroom.StudentActive},
		},
		Parents: []classroom.Parent{
			{ID: "p1", FullName: "Nguyen Van An", Phone: "0901234567", Email: "an.nguyen@example.com", Relationship: "father", StudentID: "s1"},
		},
		Announcements: []classroom.Announcement{
			{ID: "a1", ClassID: "c1", Title: "Term opening parent meeting", Content: "All families are invited on Friday at 17:00.", CreatedAt: now, Author: "Ms. Thao", Target: classroom.TargetParents, Pinned: true},
			{ID: "a2", ClassID: "c1", Title: "First semester exam schedule", Content: "The detailed schedule is attached to the class documents.", CreatedAt: yesterday, Author: "Ms. Thao", Target: classroom.TargetAll},
		},
		Documents: []classroom.ClassDocument{
			{ID: "d1", ClassID: "c1", Title: "Class rules", URL: "https://example.com/docs/rules.pdf", Category: "rules", CreatedAt: now},
			{ID: "d2", ClassID: "c1", Title: "Semester 1 timetable", URL: "https://example.com/docs/timetable.pdf", Category: "plans", CreatedAt: now},
		},
		Tasks: []classroom.Task{
			{ID: "t1", ClassID: "c1", Title: "Submit insurance form", Description: "Return the signed health insurance form.", DueDate: "2023-12-31", RequireReply: true, CreatedAt: now},
			{ID: "t2", ClassID: "c1", Title: "Weekend math homework", Description: "Exercises 1-5, textbook page 40.", DueDate: time.Now().UTC().Add(-24 * time.Hour).Format("2006-01-02"), CreatedAt: now},
		},
		Threads: []classroom.Thread{
			{ID: "th1", ThreadKey: "s1", Participants: []string{"Ms. Thao", "Teo's Father"}, LastMessageAt: now},
		},
		Messages: []classroom.Message{
			{ID: "m1", ThreadID: "th1", FromRole: classroom.FromTeacher, Content: "Teo has been doing very well lately.", CreatedAt: yesterday},
			{ID: "m2", ThreadID: "th1", FromRole: classroom.FromParent, Content: "Thank you, we will keep encouraging him.", CreatedAt: now},
		},
		Questions: []classroom.Question{
			{ID: "q1", Content: "What is the capital of Vietnam?", Options: []string{"Ho Chi Minh City", "Da Nang", "Ha Noi", "Hai Phong"}, CorrectIndex: 2},
			{ID: "q2", Content: "How much is 5 x 5?", Options: []string{"20", "25", "30", "35"}, CorrectIndex: 1},
			{ID: "q3", Content: "Which animal lays eggs?", Options: []string{"Cat", "Dog", "Hen", "Cow"}, CorrectIndex: 2},
			{ID: "q4", Content: "Which planet is closest to the sun?", Options: []string{"Venus", "Mercury", "Earth", "Mars"}, CorrectIndex: 1},
		},
	}
}

// newID wraps the shared token generator so storage code reads naturally.
func newID() string { return core.NewID() }
