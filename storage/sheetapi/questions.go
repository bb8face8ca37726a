package sheetapi

import (
	"context"

	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/sheet"
)

func (p *Provider) QueryQuestions(ctx context.Context) ([]classroom.Question, error) {
	rows, err := p.getAll(ctx, sheet.TabQuestions)
	if err != nil {
		return nil, err
	}
	return expand[classroom.Question](sheet.TabQuestions, rows)
}

func (p *Provider) AddQuestion(ctx context.Context, q classroom.Question) (classroom.Question, error) {
	row, err := p.create(ctx, sheet.TabQuestions, q)
	if err != nil {
		return classroom.Question{}, err
	}
	var stored classroom.Question
	err = sheet.Expand(sheet.TabQuestions, row, &stored)
	return stored, err
}

func (p *Provider) UpdateQuestion(ctx context.Context, q classroom.Question) error {
	return p.update(ctx, sheet.TabQuestions, q.ID, q)
}

func (p *Provider) DeleteQuestion(ctx context.Context, id string) error {
	return p.delete(ctx, sheet.TabQuestions, id)
}
