package memdb

import (
	"context"

	"github.com/tnthao/solienlac/core/classroom"
)

// GetReport gathers the class's rows and hands them to the shared engine;
// no aggregation happens in storage.
func (db *DB) GetReport(ctx context.Context, classID string, period classroom.Period, startDate, endDate string) (classroom.Report, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return classroom.ComputeReport(period, startDate, endDate, db.reportData(classID, startDate, endDate)), nil
}

// reportData expects the read lock to be held.
func (db *DB) reportData(classID, startDate, endDate string) classroom.ReportData {
	students := make([]classroom.Student, 0)
	for _, s := range db.data.Students {
		if s.ClassID == classID {
			students = append(students, s)
		}
	}
	tasks := make([]classroom.Task, 0)
	for _, t := range db.data.Tasks {
		if t.ClassID == classID {
			tasks = append(tasks, t)
		}
	}
	return classroom.ReportData{
		Students:   students,
		Attendance: db.attendanceByRange(classID, startDate, endDate),
		Behaviors:  db.behaviorsByClassRange(classID, startDate, endDate),
		Tasks:      tasks,
		Replies:    append([]classroom.TaskReply(nil), db.data.TaskReplies...),
	}
}

func (db *DB) DashboardStats(ctx context.Context) (classroom.DashboardStats, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return classroom.ComputeDashboardStats(
		db.data.Students,
		db.data.Announcements,
		db.data.Attendance,
		db.data.Behaviors,
		db.data.Tasks,
	), nil
}
