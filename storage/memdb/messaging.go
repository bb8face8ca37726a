package memdb

import (
	"context"
	"sort"

	"github.com/tnthao/solienlac/core/classroom"
)

func (db *DB) QueryThreads(ctx context.Context) ([]classroom.Thread, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := append([]classroom.Thread(nil), db.data.Threads...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].LastMessageAt > out[j].LastMessageAt })
	return out, nil
}

func (db *DB) GetThreadByStudent(ctx context.Context, studentID string) (*classroom.Thread, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, t := range db.data.Threads {
		if t.ThreadKey == studentID {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

func (db *DB) CreateThread(ctx context.Context, t classroom.Thread) (classroom.Thread, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if t.ID == "" {
		t.ID = newID()
	}
	db.data.Threads = append(db.data.Threads, t)
	return t, db.save()
}

func (db *DB) QueryMessages(ctx context.Context, threadID string) ([]classroom.Message, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]classroom.Message, 0)
	for _, m := range db.data.Messages {
		if m.ThreadID == threadID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

// SendMessage appends the message and touches the parent thread's
// LastMessageAt in the same locked section.
func (db *DB) SendMessage(ctx context.Context, m classroom.Message) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	idx := -1
	for i, t := range db.data.Threads {
		if t.ID == m.ThreadID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return classroom.ErrNotFound
	}
	if m.ID == "" {
		m.ID = newID()
	}
	db.data.Messages = append(db.data.Messages, m)
	db.data.Threads[idx].LastMessageAt = m.CreatedAt
	return db.save()
}
