package memdb

import (
	"context"
	"sort"

	"github.com/tnthao/solienlac/core/classroom"
)

// Announcements

func (db *DB) QueryAnnouncements(ctx context.Context, classID string) ([]classroom.Announcement, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]classroom.Announcement, 0, len(db.data.Announcements))
	for _, a := range db.data.Announcements {
		if classID == "" || a.ClassID == classID {
			out = append(out, a)
		}
	}
	// pinned first, then newest first
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out, nil
}

func (db *DB) AddAnnouncement(ctx context.Context, a classroom.Announcement) (classroom.Announcement, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if a.ID == "" {
		a.ID = newID()
	}
	db.data.Announcements = append(db.data.Announcements, a)
	return a, db.save()
}

func (db *DB) UpdateAnnouncement(ctx context.Context, a classroom.Announcement) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, cur := range db.data.Announcements {
		if cur.ID == a.ID {
			db.data.Announcements[i] = a
			return db.save()
		}
	}
	return classroom.ErrNotFound
}

func (db *DB) DeleteAnnouncement(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := db.data.Announcements[:0]
	found := false
	for _, a := range db.data.Announcements {
		if a.ID == id {
			found = true
			continue
		}
		out = append(out, a)
	}
	if !found {
		return classroom.ErrNotFound
	}
	db.data.Announcements = out
	return db.save()
}

// Documents

func (db *DB) QueryDocuments(ctx context.Context, classID string) ([]classroom.ClassDocument, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]classroom.ClassDocument, 0, len(db.data.Documents))
	for _, d := range db.data.Documents {
		if classID == "" || d.ClassID == classID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (db *DB) AddDocument(ctx context.Context, d classroom.ClassDocument) (classroom.ClassDocument, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if d.ID == "" {
		d.ID = newID()
	}
	db.data.Documents = append(db.data.Documents, d)
	return d, db.save()
}

func (db *DB) UpdateDocument(ctx context.Context, d classroom.ClassDocument) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, cur := range db.data.Documents {
		if cur.ID == d.ID {
			db.data.Documents[i] = d
			return db.save()
		}
	}
	return classroom.ErrNotFound
}

func (db *DB) DeleteDocument(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := db.data.Documents[:0]
	found := false
	for _, d := range db.data.Documents {
		if d.ID == id {
			found = true
			continue
		}
		out = append(out, d)
	}
	if !found {
		return classroom.ErrNotFound
	}
	db.data.Documents = out
	return db.save()
}
