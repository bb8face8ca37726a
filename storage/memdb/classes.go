package memdb

import (
	"context"

	"github.com/tnthao/solienlac/core/classroom"
)

// Classes

func (db *DB) QueryClasses(ctx context.Context) ([]classroom.ClassInfo, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return append([]classroom.ClassInfo(nil), db.data.Classes...), nil
}

func (db *DB) AddClass(ctx context.Context, info classroom.ClassInfo) (classroom.ClassInfo, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if info.ID == "" {
		info.ID = newID()
	}
	db.data.Classes = append(db.data.Classes, info)
	return info, db.save()
}

func (db *DB) UpdateClass(ctx context.Context, info classroom.ClassInfo) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, c := range db.data.Classes {
		if c.ID == info.ID {
			db.data.Classes[i] = info
			return db.save()
		}
	}
	return classroom.ErrNotFound
}

func (db *DB) RemoveClass(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := db.data.Classes[:0]
	found := false
	for _, c := range db.data.Classes {
		if c.ID == id {
			found = true
			continue
		}
		out = append(out, c)
	}
	if !found {
		return classroom.ErrNotFound
	}
	db.data.Classes = out
	return db.save()
}

// Students

func (db *DB) QueryStudents(ctx context.Context, classID string) ([]classroom.Student, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]classroom.Student, 0, len(db.data.Students))
	for _, s := range db.data.Students {
		if classID == "" || s.ClassID == classID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (db *DB) AddStudent(ctx context.Context, st classroom.Student) (classroom.Student, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if st.ID == "" {
		st.ID = newID()
	}
	db.data.Students = append(db.data.Students, st)
	return st, db.save()
}

func (db *DB) UpdateStudent(ctx context.Context, st classroom.Student) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, s := range db.data.Students {
		if s.ID == st.ID {
			db.data.Students[i] = st
			return db.save()
		}
	}
	return classroom.ErrNotFound
}

func (db *DB) RemoveStudent(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := db.data.Students[:0]
	found := false
	for _, s := range db.data.Students {
		if s.ID == id {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		return classroom.ErrNotFound
	}
	db.data.Students = out
	return db.save()
}

func (db *DB) GetStudentByCode(ctx context.Context, code string) (*classroom.Student, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, s := range db.data.Students {
		if s.Code == code {
			found := s
			return &found, nil
		}
	}
	return nil, nil
}

// Parents

func (db *DB) QueryParents(ctx context.Context, studentID string) ([]classroom.Parent, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]classroom.Parent, 0, len(db.data.Parents))
	for _, p := range db.data.Parents {
		if studentID == "" || p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (db *DB) AddParent(ctx context.Context, p classroom.Parent) (classroom.Parent, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if p.ID == "" {
		p.ID = newID()
	}
	db.data.Parents = append(db.data.Parents, p)
	return p, db.save()
}

func (db *DB) UpdateParent(ctx context.Context, p classroom.Parent) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, cur := range db.data.Parents {
		if cur.ID == p.ID {
			db.data.Parents[i] = p
			return db.save()
		}
	}
	return classroom.ErrNotFound
}

func (db *DB) RemoveParent(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := db.data.Parents[:0]
	found := false
	for _, p := range db.data.Parents {
		if p.ID == id {
			found = true
			continue
		}
		out = append(out, p)
	}
	if !found {
		return classroom.ErrNotFound
	}
	db.data.Parents = out
	return db.save()
}
