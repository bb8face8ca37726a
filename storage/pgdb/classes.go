package pgdb

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core/classroom"
)

func (p *Provider) QueryClasses(ctx context.Context) ([]classroom.ClassInfo, error) {
	out := make([]classroom.ClassInfo, 0)
	err := p.db.SelectContext(ctx, &out, `SELECT * FROM classes ORDER BY class_name`)
	return out, errors.Wrap(err, "querying classes")
}

func (p *Provider) AddClass(ctx context.Context, info classroom.ClassInfo) (classroom.ClassInfo, error) {
	if info.ID == "" {
		info.ID = newID()
	}
	_, err := p.db.NamedExecContext(ctx, `
		INSERT INTO classes (id, class_name, school_year, homeroom_teacher, note)
		VALUES (:id, :class_name, :school_year, :homeroom_teacher, :note)`, info)
	return info, errors.Wrap(err, "inserting class")
}

func (p *Provider) UpdateClass(ctx context.Context, info classroom.ClassInfo) error {
	res, err := p.db.NamedExecContext(ctx, `
		UPDATE classes
		SET class_name = :class_name, school_year = :school_year,
		    homeroom_teacher = :homeroom_teacher, note = :note
		WHERE id = :id`, info)
	return affected(res, err, "updating class")
}

func (p *Provider) RemoveClass(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
	return affected(res, err, "deleting class")
}

func (p *Provider) QueryStudents(ctx context.Context, classID string) ([]classroom.Student, error) {
	out := make([]classroom.Student, 0)
	var err error
	if classID == "" {
		err = p.db.SelectContext(ctx, &out, `SELECT * FROM students ORDER BY full_name`)
	} else {
		err = p.db.SelectContext(ctx, &out, `SELECT * FROM students WHERE class_id = $1 ORDER BY full_name`, classID)
	}
	return out, errors.Wrap(err, "querying students")
}

func (p *Provider) AddStudent(ctx context.Context, st classroom.Student) (classroom.Student, error) {
	if st.ID == "" {
		st.ID = newID()
	}
	_, err := p.db.NamedExecContext(ctx, `
		INSERT INTO students (id, code, full_name, class_id, gender, dob, address, status)
		VALUES (:id, :code, :full_name, :class_id, :gender, :dob, :address, :status)`, st)
	return st, errors.Wrap(err, "inserting student")
}

func (p *Provider) UpdateStudent(ctx context.Context, st classroom.Student) error {
	res, err := p.db.NamedExecContext(ctx, `
		UPDATE students
		SET code = :code, full_name = :full_name, class_id = :class_id,
		    gender = :gender, dob = :dob, address = :address, status = :status
		WHERE id = :id`, st)
	return affected(res, err, "updating student")
}

func (p *Provider) RemoveStudent(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	return affected(res, err, "deleting student")
}

func (p *Provider) GetStudentByCode(ctx context.Context, code string) (*classroom.Student, error) {
	var st classroom.Student
	err := p.db.GetContext(ctx, &st, `SELECT * FROM students WHERE code = $1`, code)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "querying student")
	}
	return &st, nil
}

func (p *Provider) QueryParents(ctx context.Context, studentID string) ([]classroom.Parent, error) {
	out := make([]classroom.Parent, 0)
	var err error
	if studentID == "" {
		err = p.db.SelectContext(ctx, &out, `SELECT * FROM parents ORDER BY full_name`)
	} else {
		err = p.db.SelectContext(ctx, &out, `SELECT * FROM parents WHERE student_id = $1 ORDER BY full_name`, studentID)
	}
	return out, errors.Wrap(err, "querying parents")
}

func (p *Provider) AddParent(ctx context.Context, pr classroom.Parent) (classroom.Parent, error) {
	if pr.ID == "" {
		pr.ID = newID()
	}
	_, err := p.db.NamedExecContext(ctx, `
		INSERT INTO parents (id, full_name, phone, email, relationship, student_id)
		VALUES (:id, :full_name, :phone, :email, :relationship, :student_id)`, pr)
	return pr, errors.Wrap(err, "inserting parent")
}

func (p *Provider) UpdateParent(ctx context.Context, pr classroom.Parent) error {
	res, err := p.db.NamedExecContext(ctx, `
		UPDATE parents
		SET full_name = :full_name, phone = :phone, email = :email,
		    relationship = :relationship, student_id = :student_id
		WHERE id = :id`, pr)
	return affected(res, err, "updating parent")
}

func (p *Provider) RemoveParent(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM parents WHERE id = $1`, id)
	return affected(res, err, "deleting parent")
}
