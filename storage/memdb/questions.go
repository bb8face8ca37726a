package memdb

import (
	"context"

	"github.com/tnthao/solienlac/core/classroom"
)

func (db *DB) QueryQuestions(ctx context.Context) ([]classroom.Question, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return append([]classroom.Question(nil), db.data.Questions...), nil
}

func (db *DB) AddQuestion(ctx context.Context, q classroom.Question) (classroom.Question, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if q.ID == "" {
		q.ID = newID()
	}
	db.data.Questions = append(db.data.Questions, q)
	return q, db.save()
}

func (db *DB) UpdateQuestion(ctx context.Context, q classroom.Question) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, cur := range db.data.Questions {
		if cur.ID == q.ID {
			db.data.Questions[i] = q
			return db.save()
		}
	}
	return classroom.ErrNotFound
}

func (db *DB) DeleteQuestion(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := db.data.Questions[:0]
	found := false
	for _, q := range db.data.Questions {
		if q.ID == id {
			found = true
			continue
		}
		out = append(out, q)
	}
	if !found {
		return classroom.ErrNotFound
	}
	db.data.Questions = out
	return db.save()
}
