package memdb

import (
	"context"
	"sort"

	"github.com/tnthao/solienlac/core/classroom"
)

func (db *DB) QueryBehaviors(ctx context.Context, studentID string) ([]classroom.Behavior, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]classroom.Behavior, 0, len(db.data.Behaviors))
	for _, b := range db.data.Behaviors {
		if studentID == "" || b.StudentID == studentID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (db *DB) AddBehavior(ctx context.Context, b classroom.Behavior) (classroom.Behavior, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if b.ID == "" {
		b.ID = newID()
	}
	db.data.Behaviors = append(db.data.Behaviors, b)
	return b, db.save()
}

func (db *DB) UpdateBehavior(ctx context.Context, b classroom.Behavior) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, cur := range db.data.Behaviors {
		if cur.ID == b.ID {
			db.data.Behaviors[i] = b
			return db.save()
		}
	}
	return classroom.ErrNotFound
}

func (db *DB) DeleteBehavior(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := db.data.Behaviors[:0]
	found := false
	for _, b := range db.data.Behaviors {
		if b.ID == id {
			found = true
			continue
		}
		out = append(out, b)
	}
	if !found {
		return classroom.ErrNotFound
	}
	db.data.Behaviors = out
	return db.save()
}

func (db *DB) GetBehaviorsByClassRange(ctx context.Context, classID, startDate, endDate string) ([]classroom.Behavior, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.behaviorsByClassRange(classID, startDate, endDate), nil
}

// behaviorsByClassRange expects the read lock to be held.
func (db *DB) behaviorsByClassRange(classID, startDate, endDate string) []classroom.Behavior {
	inClass := make(map[string]bool)
	for _, s := range db.data.Students {
		if s.ClassID == classID {
			inClass[s.ID] = true
		}
	}
	out := make([]classroom.Behavior, 0)
	for _, b := range db.data.Behaviors {
		if inClass[b.StudentID] && b.Date >= startDate && b.Date <= endDate {
			out = append(out, b)
		}
	}
	return out
}
