package memdb

import (
	"context"
	"time"

	"github.com/tnthao/solienlac/core/classroom"
)

func (db *DB) GetAttendanceByClassDate(ctx context.Context, classID, date string) ([]classroom.Attendance, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]classroom.Attendance, 0)
	for _, a := range db.data.Attendance {
		if a.ClassID == classID && a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

// MarkAttendance replaces every row for exactly (classID, date) with the
// given records, assigning fresh ids. Calling it twice with the same
// records leaves the same final set, never duplicates.
func (db *DB) MarkAttendance(ctx context.Context, classID, date string, items []classroom.Attendance) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	kept := db.data.Attendance[:0]
	for _, a := range db.data.Attendance {
		if !(a.ClassID == classID && a.Date == date) {
			kept = append(kept, a)
		}
	}
	for _, item := range items {
		item.ID = newID()
		item.ClassID = classID
		item.Date = date
		kept = append(kept, item)
	}
	db.data.Attendance = kept
	return db.save()
}

func (db *DB) ListAttendanceByStudent(ctx context.Context, studentID string, month, year int) ([]classroom.Attendance, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]classroom.Attendance, 0)
	for _, a := range db.data.Attendance {
		if a.StudentID != studentID {
			continue
		}
		d, err := time.Parse("2006-01-02", a.Date)
		if err != nil {
			continue
		}
		if int(d.Month()) == month && d.Year() == year {
			out = append(out, a)
		}
	}
	return out, nil
}

func (db *DB) GetAttendanceByRange(ctx context.Context, classID, startDate, endDate string) ([]classroom.Attendance, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.attendanceByRange(classID, startDate, endDate), nil
}

// attendanceByRange expects the read lock to be held.
func (db *DB) attendanceByRange(classID, startDate, endDate string) []classroom.Attendance {
	out := make([]classroom.Attendance, 0)
	for _, a := range db.data.Attendance {
		if a.ClassID == classID && a.Date >= startDate && a.Date <= endDate {
			out = append(out, a)
		}
	}
	return out
}
