package pgdb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core/classroom"
)

// GetReport fetches the class's raw rows and defers to the shared
// aggregation engine, keeping summaries identical across backends.
func (p *Provider) GetReport(ctx context.Context, classID string, period classroom.Period, startDate, endDate string) (classroom.Report, error) {
	students, err := p.QueryStudents(ctx, classID)
	if err != nil {
		return classroom.Report{}, err
	}
	attendance, err := p.GetAttendanceByRange(ctx, classID, startDate, endDate)
	if err != nil {
		return classroom.Report{}, err
	}
	behaviors, err := p.GetBehaviorsByClassRange(ctx, classID, startDate, endDate)
	if err != nil {
		return classroom.Report{}, err
	}
	tasks, err := p.QueryTasks(ctx, classID)
	if err != nil {
		return classroom.Report{}, err
	}
	replies, err := p.allTaskReplies(ctx)
	if err != nil {
		return classroom.Report{}, err
	}
	data := classroom.ReportData{
		Students:   students,
		Attendance: attendance,
		Behaviors:  behaviors,
		Tasks:      tasks,
		Replies:    replies,
	}
	return classroom.ComputeReport(period, startDate, endDate, data), nil
}

func (p *Provider) allTaskReplies(ctx context.Context) ([]classroom.TaskReply, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, task_id, student_id, reply_text, attachments, created_at
		FROM task_replies`)
	if err != nil {
		return nil, errors.Wrap(err, "querying task replies")
	}
	defer func() { _ = rows.Close() }()

	out := make([]classroom.TaskReply, 0)
	for rows.Next() {
		var (
			r     classroom.TaskReply
			files jsonList
		)
		if err = rows.Scan(&r.ID, &r.TaskID, &r.StudentID, &r.ReplyText, &files, &r.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning task reply")
		}
		r.Attachments = files
		out = append(out, r)
	}
	return out, errors.Wrap(rows.Err(), "querying task replies")
}

func (p *Provider) DashboardStats(ctx context.Context) (classroom.DashboardStats, error) {
	students, err := p.QueryStudents(ctx, "")
	if err != nil {
		return classroom.DashboardStats{}, err
	}
	announcements, err := p.QueryAnnouncements(ctx, "")
	if err != nil {
		return classroom.DashboardStats{}, err
	}
	attendance := make([]classroom.Attendance, 0)
	if err = p.db.SelectContext(ctx, &attendance, `SELECT * FROM attendance`); err != nil {
		return classroom.DashboardStats{}, errors.Wrap(err, "querying attendance")
	}
	behaviors, err := p.QueryBehaviors(ctx, "")
	if err != nil {
		return classroom.DashboardStats{}, err
	}
	tasks, err := p.QueryTasks(ctx, "")
	if err != nil {
		return classroom.DashboardStats{}, err
	}
	return classroom.ComputeDashboardStats(students, announcements, attendance, behaviors, tasks), nil
}
