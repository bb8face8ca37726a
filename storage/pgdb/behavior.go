package pgdb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core/classroom"
)

func (p *Provider) QueryBehaviors(ctx context.Context, studentID string) ([]classroom.Behavior, error) {
	out := make([]classroom.Behavior, 0)
	var err error
	if studentID == "" {
		err = p.db.SelectContext(ctx, &out, `SELECT * FROM behaviors ORDER BY date DESC`)
	} else {
		err = p.db.SelectContext(ctx, &out, `SELECT * FROM behaviors WHERE student_id = $1 ORDER BY date DESC`, studentID)
	}
	return out, errors.Wrap(err, "querying behaviors")
}

func (p *Provider) AddBehavior(ctx context.Context, b classroom.Behavior) (classroom.Behavior, error) {
	if b.ID == "" {
		b.ID = newID()
	}
	_, err := p.db.NamedExecContext(ctx, `
		INSERT INTO behaviors (id, student_id, date, type, content, points)
		VALUES (:id, :student_id, :date, :type, :content, :points)`, b)
	return b, errors.Wrap(err, "inserting behavior")
}

func (p *Provider) UpdateBehavior(ctx context.Context, b classroom.Behavior) error {
	res, err := p.db.NamedExecContext(ctx, `
		UPDATE behaviors
		SET student_id = :student_id, date = :date, type = :type,
		    content = :content, points = :points
		WHERE id = :id`, b)
	return affected(res, err, "updating behavior")
}

func (p *Provider) DeleteBehavior(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM behaviors WHERE id = $1`, id)
	return affected(res, err, "deleting behavior")
}

func (p *Provider) GetBehaviorsByClassRange(ctx context.Context, classID, startDate, endDate string) ([]classroom.Behavior, error) {
	out := make([]classroom.Behavior, 0)
	err := p.db.SelectContext(ctx, &out, `
		SELECT b.* FROM behaviors b
		JOIN students s ON s.id = b.student_id
		WHERE s.class_id = $1 AND b.date >= $2 AND b.date <= $3`, classID, startDate, endDate)
	return out, errors.Wrap(err, "querying behaviors")
}
