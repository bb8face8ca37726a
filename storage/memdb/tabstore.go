package memdb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/sheet"
)

// The portal server speaks in tabs and rows, not in typed entities. This
// adapter exposes the store tab by tab so the wire verbs map one to one.

// tabOps is the row-level view of one entity list. All closures run with
// the store's write lock held.
type tabOps struct {
	rows   func() ([]sheet.Row, error)
	append func(sheet.Row) (sheet.Row, error)
	patch  func(id string, patch sheet.Row) (sheet.Row, error)
	remove func(id string) bool
}

func ops[T any](tab string, list *[]T) tabOps {
	return tabOps{
		rows: func() ([]sheet.Row, error) {
			out := make([]sheet.Row, 0, len(*list))
			for i := range *list {
				row, err := sheet.Flatten(tab, (*list)[i])
				if err != nil {
					return nil, err
				}
				out = append(out, row)
			}
			return out, nil
		},
		append: func(row sheet.Row) (sheet.Row, error) {
			row = row.Clone()
			if row.ID() == "" {
				row["id"] = newID()
			}
			var item T
			if err := sheet.Expand(tab, row, &item); err != nil {
				return nil, err
			}
			*list = append(*list, item)
			return row, nil
		},
		patch: func(id string, patch sheet.Row) (sheet.Row, error) {
			for i := range *list {
				cur, err := sheet.Flatten(tab, (*list)[i])
				if err != nil {
					return nil, err
				}
				if cur.ID() != id {
					continue
				}
				merged := cur.Merge(patch)
				merged["id"] = id
				var item T
				if err := sheet.Expand(tab, merged, &item); err != nil {
					return nil, err
				}
				(*list)[i] = item
				return merged, nil
			}
			return nil, classroom.ErrNotFound
		},
		remove: func(id string) bool {
			kept := (*list)[:0]
			found := false
			for i := range *list {
				row, err := sheet.Flatten(tab, (*list)[i])
				if err == nil && row.ID() == id {
					found = true
					continue
				}
				kept = append(kept, (*list)[i])
			}
			*list = kept
			return found
		},
	}
}

// tab resolves a wire tab name; the caller holds the write lock.
func (db *DB) tab(name string) (tabOps, error) {
	switch name {
	case sheet.TabUsers:
		return ops(name, &db.data.Users), nil
	case sheet.TabClasses:
		return ops(name, &db.data.Classes), nil
	case sheet.TabStudents:
		return ops(name, &db.data.Students), nil
	case sheet.TabParents:
		return ops(name, &db.data.Parents), nil
	case sheet.TabAttendance:
		return ops(name, &db.data.Attendance), nil
	case sheet.TabBehavior:
		return ops(name, &db.data.Behaviors), nil
	case sheet.TabAnnouncements:
		return ops(name, &db.data.Announcements), nil
	case sheet.TabDocuments:
		return ops(name, &db.data.Documents), nil
	case sheet.TabTasks:
		return ops(name, &db.data.Tasks), nil
	case sheet.TabTaskReplies:
		return ops(name, &db.data.TaskReplies), nil
	case sheet.TabThreads:
		return ops(name, &db.data.Threads), nil
	case sheet.TabMessages:
		return ops(name, &db.data.Messages), nil
	case sheet.TabQuestions:
		return ops(name, &db.data.Questions), nil
	}
	return tabOps{}, errors.Errorf("unknown tab %q", name)
}

// Rows lists every row of a tab. User rows never carry the password cell
// off the store.
func (db *DB) Rows(ctx context.Context, tab string) ([]sheet.Row, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	t, err := db.tab(tab)
	if err != nil {
		return nil, err
	}
	rows, err := t.rows()
	if err != nil {
		return nil, err
	}
	if tab == sheet.TabUsers {
		for _, row := range rows {
			delete(row, "password")
		}
	}
	return rows, nil
}

// Append inserts a row, generating an id when the client sent none. On the
// users tab it enforces username uniqueness the way Register does.
func (db *DB) Append(ctx context.Context, tab string, row sheet.Row) (sheet.Row, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	t, err := db.tab(tab)
	if err != nil {
		return nil, err
	}
	if tab == sheet.TabUsers {
		username := row.Str("username")
		for _, u := range db.data.Users {
			if u.Username == username {
				return nil, classroom.ErrUsernameExists
			}
		}
	}
	out, err := t.append(row)
	if err != nil {
		return nil, err
	}
	if err := db.save(); err != nil {
		return nil, err
	}
	if tab == sheet.TabUsers {
		out = out.Clone()
		delete(out, "password")
	}
	return out, nil
}

// Patch overlays the transmitted cells onto the row with the given id.
func (db *DB) Patch(ctx context.Context, tab, id string, patch sheet.Row) (sheet.Row, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	t, err := db.tab(tab)
	if err != nil {
		return nil, err
	}
	out, err := t.patch(id, patch)
	if err != nil {
		return nil, err
	}
	if err := db.save(); err != nil {
		return nil, err
	}
	if tab == sheet.TabUsers {
		out = out.Clone()
		delete(out, "password")
	}
	return out, nil
}

func (db *DB) Remove(ctx context.Context, tab, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	t, err := db.tab(tab)
	if err != nil {
		return err
	}
	if !t.remove(id) {
		return classroom.ErrNotFound
	}
	return db.save()
}
