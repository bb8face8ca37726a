package sheetapi

import (
	"context"
	"time"

	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/sheet"
)

func (p *Provider) GetAttendanceByClassDate(ctx context.Context, classID, date string) ([]classroom.Attendance, error) {
	rows, err := p.getAll(ctx, sheet.TabAttendance)
	if err != nil {
		return nil, err
	}
	all, err := expand[classroom.Attendance](sheet.TabAttendance, rows)
	if err != nil {
		return nil, err
	}
	day := classroom.DatePart(date)
	out := make([]classroom.Attendance, 0, len(all))
	for _, a := range all {
		if a.ClassID == classID && classroom.DatePart(a.Date) == day {
			out = append(out, a)
		}
	}
	return out, nil
}

// MarkAttendance replaces the day's records: delete what exists, then
// insert the new rows. The two phases are separate round trips, so a
// client failing midway leaves a partially written day; re-running the
// call repairs it.
func (p *Provider) MarkAttendance(ctx context.Context, classID, date string, items []classroom.Attendance) error {
	existing, err := p.GetAttendanceByClassDate(ctx, classID, date)
	if err != nil {
		return err
	}
	for _, rec := range existing {
		if err := p.delete(ctx, sheet.TabAttendance, rec.ID); err != nil {
			return err
		}
	}
	for _, item := range items {
		item.ID = ""
		item.ClassID = classID
		item.Date = date
		if _, err := p.create(ctx, sheet.TabAttendance, item); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) ListAttendanceByStudent(ctx context.Context, studentID string, month, year int) ([]classroom.Attendance, error) {
	rows, err := p.list(ctx, sheet.TabAttendance, "studentId", studentID)
	if err != nil {
		return nil, err
	}
	all, err := expand[classroom.Attendance](sheet.TabAttendance, rows)
	if err != nil {
		return nil, err
	}
	out := make([]classroom.Attendance, 0, len(all))
	for _, a := range all {
		d, err := time.Parse("2006-01-02", classroom.DatePart(a.Date))
		if err != nil {
			continue
		}
		if int(d.Month()) == month && d.Year() == year {
			out = append(out, a)
		}
	}
	return out, nil
}

func (p *Provider) GetAttendanceByRange(ctx context.Context, classID, startDate, endDate string) ([]classroom.Attendance, error) {
	rows, err := p.getAll(ctx, sheet.TabAttendance)
	if err != nil {
		return nil, err
	}
	all, err := expand[classroom.Attendance](sheet.TabAttendance, rows)
	if err != nil {
		return nil, err
	}
	out := make([]classroom.Attendance, 0, len(all))
	for _, a := range all {
		if a.ClassID == classID && a.Date >= startDate && a.Date <= endDate {
			out = append(out, a)
		}
	}
	return out, nil
}
