package sheetapi

import (
	"context"
	"sort"

	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/sheet"
)

func (p *Provider) QueryBehaviors(ctx context.Context, studentID string) ([]classroom.Behavior, error) {
	var (
		rows []sheet.Row
		err  error
	)
	if studentID == "" {
		rows, err = p.getAll(ctx, sheet.TabBehavior)
	} else {
		rows, err = p.list(ctx, sheet.TabBehavior, "studentId", studentID)
	}
	if err != nil {
		return nil, err
	}
	out, err := expand[classroom.Behavior](sheet.TabBehavior, rows)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (p *Provider) AddBehavior(ctx context.Context, b classroom.Behavior) (classroom.Behavior, error) {
	row, err := p.create(ctx, sheet.TabBehavior, b)
	if err != nil {
		return classroom.Behavior{}, err
	}
	var stored classroom.Behavior
	err = sheet.Expand(sheet.TabBehavior, row, &stored)
	return stored, err
}

func (p *Provider) UpdateBehavior(ctx context.Context, b classroom.Behavior) error {
	return p.update(ctx, sheet.TabBehavior, b.ID, b)
}

func (p *Provider) DeleteBehavior(ctx context.Context, id string) error {
	return p.delete(ctx, sheet.TabBehavior, id)
}

func (p *Provider) GetBehaviorsByClassRange(ctx context.Context, classID, startDate, endDate string) ([]classroom.Behavior, error) {
	students, err := p.QueryStudents(ctx, classID)
	if err != nil {
		return nil, err
	}
	inClass := make(map[string]bool, len(students))
	for _, s := range students {
		inClass[s.ID] = true
	}
	rows, err := p.getAll(ctx, sheet.TabBehavior)
	if err != nil {
		return nil, err
	}
	all, err := expand[classroom.Behavior](sheet.TabBehavior, rows)
	if err != nil {
		return nil, err
	}
	out := make([]classroom.Behavior, 0, len(all))
	for _, b := range all {
		if inClass[b.StudentID] && b.Date >= startDate && b.Date <= endDate {
			out = append(out, b)
		}
	}
	return out, nil
}
