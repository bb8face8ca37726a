package sheetapi

import (
	"context"

	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/sheet"
)

// GetReport pulls the class's raw rows and aggregates locally with the
// shared engine, so both backends produce identical summaries.
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
	replyRows, err := p.getAll(ctx, sheet.TabTaskReplies)
	if err != nil {
		return classroom.Report{}, err
	}
	replies, err := expand[classroom.TaskReply](sheet.TabTaskReplies, replyRows)
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

func (p *Provider) DashboardStats(ctx context.Context) (classroom.DashboardStats, error) {
	students, err := p.QueryStudents(ctx, "")
	if err != nil {
		return classroom.DashboardStats{}, err
	}
	announcements, err := p.QueryAnnouncements(ctx, "")
	if err != nil {
		return classroom.DashboardStats{}, err
	}
	attRows, err := p.getAll(ctx, sheet.TabAttendance)
	if err != nil {
		return classroom.DashboardStats{}, err
	}
	attendance, err := expand[classroom.Attendance](sheet.TabAttendance, attRows)
	if err != nil {
		return classroom.DashboardStats{}, err
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
