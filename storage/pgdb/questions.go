package pgdb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core/classroom"
)

func (p *Provider) QueryQuestions(ctx context.Context) ([]classroom.Question, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, content, options, correct_index FROM questions`)
	if err != nil {
		return nil, errors.Wrap(err, "querying questions")
	}
	defer func() { _ = rows.Close() }()

	out := make([]classroom.Question, 0)
	for rows.Next() {
		var (
			q       classroom.Question
			options jsonList
		)
		if err = rows.Scan(&q.ID, &q.Content, &options, &q.CorrectIndex); err != nil {
			return nil, errors.Wrap(err, "scanning question")
		}
		q.Options = options
		out = append(out, q)
	}
	return out, errors.Wrap(rows.Err(), "querying questions")
}

func (p *Provider) AddQuestion(ctx context.Context, q classroom.Question) (classroom.Question, error) {
	if q.ID == "" {
		q.ID = newID()
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO questions (id, content, options, correct_index)
		VALUES ($1, $2, $3, $4)`,
		q.ID, q.Content, jsonList(q.Options), q.CorrectIndex)
	return q, errors.Wrap(err, "inserting question")
}

func (p *Provider) UpdateQuestion(ctx context.Context, q classroom.Question) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE questions SET content = $1, options = $2, correct_index = $3
		WHERE id = $4`,
		q.Content, jsonList(q.Options), q.CorrectIndex, q.ID)
	return affected(res, err, "updating question")
}

func (p *Provider) DeleteQuestion(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return affected(res, err, "deleting question")
}
