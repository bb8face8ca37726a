package memdb

import (
	"context"
	"sort"

	"github.com/tnthao/solienlac/core/classroom"
)

func (db *DB) QueryTasks(ctx context.Context, classID string) ([]classroom.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]classroom.Task, 0, len(db.data.Tasks))
	for _, t := range db.data.Tasks {
		if classID == "" || t.ClassID == classID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (db *DB) AddTask(ctx context.Context, t classroom.Task) (classroom.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if t.ID == "" {
		t.ID = newID()
	}
	db.data.Tasks = append(db.data.Tasks, t)
	return t, db.save()
}

func (db *DB) UpdateTask(ctx context.Context, t classroom.Task) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, cur := range db.data.Tasks {
		if cur.ID == t.ID {
			db.data.Tasks[i] = t
			return db.save()
		}
	}
	return classroom.ErrNotFound
}

func (db *DB) DeleteTask(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := db.data.Tasks[:0]
	found := false
	for _, t := range db.data.Tasks {
		if t.ID == id {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		return classroom.ErrNotFound
	}
	db.data.Tasks = out
	return db.save()
}

func (db *DB) QueryTaskReplies(ctx context.Context, taskID string) ([]classroom.TaskReply, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]classroom.TaskReply, 0)
	for _, r := range db.data.TaskReplies {
		if r.TaskID == taskID {
			out = append(out, r)
		}
	}
	return out, nil
}

// SubmitTaskReply upserts by (TaskID, StudentID): a re-submission keeps the
// stored id and replaces the remaining fields.
func (db *DB) SubmitTaskReply(ctx context.Context, r classroom.TaskReply) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, cur := range db.data.TaskReplies {
		if cur.TaskID == r.TaskID && cur.StudentID == r.StudentID {
			r.ID = cur.ID
			db.data.TaskReplies[i] = r
			return db.save()
		}
	}
	r.ID = newID()
	db.data.TaskReplies = append(db.data.TaskReplies, r)
	return db.save()
}
