package sheetapi

import (
	"context"

	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/sheet"
)

func (p *Provider) QueryClasses(ctx context.Context) ([]classroom.ClassInfo, error) {
	rows, err := p.getAll(ctx, sheet.TabClasses)
	if err != nil {
		return nil, err
	}
	return expand[classroom.ClassInfo](sheet.TabClasses, rows)
}

func (p *Provider) AddClass(ctx context.Context, info classroom.ClassInfo) (classroom.ClassInfo, error) {
	row, err := p.create(ctx, sheet.TabClasses, info)
	if err != nil {
		return classroom.ClassInfo{}, err
	}
	var stored classroom.ClassInfo
	err = sheet.Expand(sheet.TabClasses, row, &stored)
	return stored, err
}

func (p *Provider) UpdateClass(ctx context.Context, info classroom.ClassInfo) error {
	return p.update(ctx, sheet.TabClasses, info.ID, info)
}

func (p *Provider) RemoveClass(ctx context.Context, id string) error {
	return p.delete(ctx, sheet.TabClasses, id)
}

func (p *Provider) QueryStudents(ctx context.Context, classID string) ([]classroom.Student, error) {
	var (
		rows []sheet.Row
		err  error
	)
	if classID == "" {
		rows, err = p.getAll(ctx, sheet.TabStudents)
	} else {
		rows, err = p.list(ctx, sheet.TabStudents, "classId", classID)
	}
	if err != nil {
		return nil, err
	}
	return expand[classroom.Student](sheet.TabStudents, rows)
}

func (p *Provider) AddStudent(ctx context.Context, st classroom.Student) (classroom.Student, error) {
	row, err := p.create(ctx, sheet.TabStudents, st)
	if err != nil {
		return classroom.Student{}, err
	}
	var stored classroom.Student
	err = sheet.Expand(sheet.TabStudents, row, &stored)
	return stored, err
}

func (p *Provider) UpdateStudent(ctx context.Context, st classroom.Student) error {
	return p.update(ctx, sheet.TabStudents, st.ID, st)
}

func (p *Provider) RemoveStudent(ctx context.Context, id string) error {
	return p.delete(ctx, sheet.TabStudents, id)
}

func (p *Provider) GetStudentByCode(ctx context.Context, code string) (*classroom.Student, error) {
	rows, err := p.list(ctx, sheet.TabStudents, "code", code)
	if err != nil {
		return nil, err
	}
	return first[classroom.Student](sheet.TabStudents, rows)
}

func (p *Provider) QueryParents(ctx context.Context, studentID string) ([]classroom.Parent, error) {
	var (
		rows []sheet.Row
		err  error
	)
	if studentID == "" {
		rows, err = p.getAll(ctx, sheet.TabParents)
	} else {
		rows, err = p.list(ctx, sheet.TabParents, "studentId", studentID)
	}
	if err != nil {
		return nil, err
	}
	return expand[classroom.Parent](sheet.TabParents, rows)
}

func (p *Provider) AddParent(ctx context.Context, pr classroom.Parent) (classroom.Parent, error) {
	row, err := p.create(ctx, sheet.TabParents, pr)
	if err != nil {
		return classroom.Parent{}, err
	}
	var stored classroom.Parent
	err = sheet.Expand(sheet.TabParents, row, &stored)
	return stored, err
}

func (p *Provider) UpdateParent(ctx context.Context, pr classroom.Parent) error {
	return p.update(ctx, sheet.TabParents, pr.ID, pr)
}

func (p *Provider) RemoveParent(ctx context.Context, id string) error {
	return p.delete(ctx, sheet.TabParents, id)
}
