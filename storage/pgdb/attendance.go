package pgdb

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core/classroom"
)

func (p *Provider) GetAttendanceByClassDate(ctx context.Context, classID, date string) ([]classroom.Attendance, error) {
	out := make([]classroom.Attendance, 0)
	err := p.db.SelectContext(ctx, &out, `
		SELECT * FROM attendance
		WHERE class_id = $1 AND left(date, 10) = left($2, 10)`, classID, date)
	return out, errors.Wrap(err, "querying attendance")
}

// MarkAttendance replaces the day's records inside one transaction, so a
// retried call can never leave duplicates behind.
func (p *Provider) MarkAttendance(ctx context.Context, classID, date string, items []classroom.Attendance) error {
	return p.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM attendance
			WHERE class_id = $1 AND left(date, 10) = left($2, 10)`, classID, date)
		if err != nil {
			return errors.Wrap(err, "clearing attendance")
		}
		for _, item := range items {
			item.ID = newID()
			item.ClassID = classID
			item.Date = date
			_, err = tx.NamedExecContext(ctx, `
				INSERT INTO attendance (id, class_id, student_id, date, status, note)
				VALUES (:id, :class_id, :student_id, :date, :status, :note)`, item)
			if err != nil {
				return errors.Wrap(err, "inserting attendance")
			}
		}
		return nil
	})
}

func (p *Provider) ListAttendanceByStudent(ctx context.Context, studentID string, month, year int) ([]classroom.Attendance, error) {
	all := make([]classroom.Attendance, 0)
	err := p.db.SelectContext(ctx, &all, `
		SELECT * FROM attendance WHERE student_id = $1 ORDER BY date`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance")
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
	out := make([]classroom.Attendance, 0)
	err := p.db.SelectContext(ctx, &out, `
		SELECT * FROM attendance
		WHERE class_id = $1 AND date >= $2 AND date <= $3`, classID, startDate, endDate)
	return out, errors.Wrap(err, "querying attendance")
}
