package pgdb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/sheet"
)

// Row-level view for the action API. Rows are materialized from the
// typed queries and flattened per the wire model; mutations funnel back
// through the typed paths so constraints and upserts keep applying.

var tabTables = map[string]string{
	sheet.TabUsers:         "users",
	sheet.TabClasses:       "classes",
	sheet.TabStudents:      "students",
	sheet.TabParents:       "parents",
	sheet.TabAttendance:    "attendance",
	sheet.TabBehavior:      "behaviors",
	sheet.TabAnnouncements: "announcements",
	sheet.TabDocuments:     "documents",
	sheet.TabTasks:         "tasks",
	sheet.TabTaskReplies:   "task_replies",
	sheet.TabThreads:       "threads",
	sheet.TabMessages:      "messages",
	sheet.TabQuestions:     "questions",
}

func flattenAll[T any](tab string, items []T, err error) ([]sheet.Row, error) {
	if err != nil {
		return nil, err
	}
	out := make([]sheet.Row, 0, len(items))
	for i := range items {
		row, err := sheet.Flatten(tab, items[i])
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func (p *Provider) Rows(ctx context.Context, tab string) ([]sheet.Row, error) {
	switch tab {
	case sheet.TabUsers:
		users := make([]classroom.User, 0)
		err := p.db.SelectContext(ctx, &users, `SELECT * FROM users`)
		for i := range users {
			users[i] = users[i].Stripped()
		}
		return flattenAll(tab, users, errors.Wrap(err, "querying users"))
	case sheet.TabClasses:
		items, err := p.QueryClasses(ctx)
		return flattenAll(tab, items, err)
	case sheet.TabStudents:
		items, err := p.QueryStudents(ctx, "")
		return flattenAll(tab, items, err)
	case sheet.TabParents:
		items, err := p.QueryParents(ctx, "")
		return flattenAll(tab, items, err)
	case sheet.TabAttendance:
		items := make([]classroom.Attendance, 0)
		err := p.db.SelectContext(ctx, &items, `SELECT * FROM attendance`)
		return flattenAll(tab, items, errors.Wrap(err, "querying attendance"))
	case sheet.TabBehavior:
		items, err := p.QueryBehaviors(ctx, "")
		return flattenAll(tab, items, err)
	case sheet.TabAnnouncements:
		items, err := p.QueryAnnouncements(ctx, "")
		return flattenAll(tab, items, err)
	case sheet.TabDocuments:
		items, err := p.QueryDocuments(ctx, "")
		return flattenAll(tab, items, err)
	case sheet.TabTasks:
		items, err := p.QueryTasks(ctx, "")
		return flattenAll(tab, items, err)
	case sheet.TabTaskReplies:
		items, err := p.allTaskReplies(ctx)
		return flattenAll(tab, items, err)
	case sheet.TabThreads:
		items, err := p.QueryThreads(ctx)
		return flattenAll(tab, items, err)
	case sheet.TabMessages:
		items := make([]classroom.Message, 0)
		err := p.db.SelectContext(ctx, &items, `SELECT * FROM messages`)
		return flattenAll(tab, items, errors.Wrap(err, "querying messages"))
	case sheet.TabQuestions:
		items, err := p.QueryQuestions(ctx)
		return flattenAll(tab, items, err)
	}
	return nil, errors.Errorf("unknown tab %q", tab)
}

func (p *Provider) Append(ctx context.Context, tab string, row sheet.Row) (sheet.Row, error) {
	row = row.Clone()
	if row.ID() == "" {
		row["id"] = newID()
	}
	if err := p.insertRow(ctx, tab, row); err != nil {
		return nil, err
	}
	if tab == sheet.TabUsers {
		row = row.Clone()
		delete(row, "password")
	}
	return row, nil
}

func (p *Provider) insertRow(ctx context.Context, tab string, row sheet.Row) error {
	switch tab {
	case sheet.TabUsers:
		var usr classroom.User
		if err := sheet.Expand(tab, row, &usr); err != nil {
			return err
		}
		_, err := p.Register(ctx, usr)
		return err
	case sheet.TabClasses:
		return insertVia(tab, row, func(v classroom.ClassInfo) error { _, err := p.AddClass(ctx, v); return err })
	case sheet.TabStudents:
		return insertVia(tab, row, func(v classroom.Student) error { _, err := p.AddStudent(ctx, v); return err })
	case sheet.TabParents:
		return insertVia(tab, row, func(v classroom.Parent) error { _, err := p.AddParent(ctx, v); return err })
	case sheet.TabAttendance:
		return insertVia(tab, row, func(v classroom.Attendance) error {
			_, err := p.db.NamedExecContext(ctx, `
				INSERT INTO attendance (id, class_id, student_id, date, status, note)
				VALUES (:id, :class_id, :student_id, :date, :status, :note)`, v)
			return errors.Wrap(err, "inserting attendance")
		})
	case sheet.TabBehavior:
		return insertVia(tab, row, func(v classroom.Behavior) error { _, err := p.AddBehavior(ctx, v); return err })
	case sheet.TabAnnouncements:
		return insertVia(tab, row, func(v classroom.Announcement) error { _, err := p.AddAnnouncement(ctx, v); return err })
	case sheet.TabDocuments:
		return insertVia(tab, row, func(v classroom.ClassDocument) error { _, err := p.AddDocument(ctx, v); return err })
	case sheet.TabTasks:
		return insertVia(tab, row, func(v classroom.Task) error { _, err := p.AddTask(ctx, v); return err })
	case sheet.TabTaskReplies:
		return insertVia(tab, row, func(v classroom.TaskReply) error { return p.SubmitTaskReply(ctx, v) })
	case sheet.TabThreads:
		return insertVia(tab, row, func(v classroom.Thread) error { _, err := p.CreateThread(ctx, v); return err })
	case sheet.TabMessages:
		return insertVia(tab, row, func(v classroom.Message) error {
			_, err := p.db.NamedExecContext(ctx, `
				INSERT INTO messages (id, thread_id, from_role, content, created_at)
				VALUES (:id, :thread_id, :from_role, :content, :created_at)`, v)
			return errors.Wrap(err, "inserting message")
		})
	case sheet.TabQuestions:
		return insertVia(tab, row, func(v classroom.Question) error { _, err := p.AddQuestion(ctx, v); return err })
	}
	return errors.Errorf("unknown tab %q", tab)
}

func insertVia[T any](tab string, row sheet.Row, insert func(T) error) error {
	var v T
	if err := sheet.Expand(tab, row, &v); err != nil {
		return err
	}
	return insert(v)
}

// Patch overlays the transmitted cells onto the stored row, then writes
// the merged entity back through the typed update.
func (p *Provider) Patch(ctx context.Context, tab, id string, patch sheet.Row) (sheet.Row, error) {
	rows, err := p.Rows(ctx, tab)
	if err != nil {
		return nil, err
	}
	var cur sheet.Row
	for _, row := range rows {
		if row.ID() == id {
			cur = row
			break
		}
	}
	if cur == nil {
		return nil, classroom.ErrNotFound
	}
	merged := cur.Merge(patch)
	merged["id"] = id
	if err := p.updateMerged(ctx, tab, merged); err != nil {
		return nil, err
	}
	if tab == sheet.TabUsers {
		merged = merged.Clone()
		delete(merged, "password")
	}
	return merged, nil
}

func (p *Provider) updateMerged(ctx context.Context, tab string, row sheet.Row) error {
	switch tab {
	case sheet.TabUsers:
		return insertVia(tab, row, func(v classroom.User) error {
			res, err := p.db.NamedExecContext(ctx, `
				UPDATE users
				SET username = :username, full_name = :full_name,
				    role = :role, related_id = :related_id
				WHERE id = :id`, v)
			return affected(res, err, "updating user")
		})
	case sheet.TabClasses:
		return insertVia(tab, row, func(v classroom.ClassInfo) error { return p.UpdateClass(ctx, v) })
	case sheet.TabStudents:
		return insertVia(tab, row, func(v classroom.Student) error { return p.UpdateStudent(ctx, v) })
	case sheet.TabParents:
		return insertVia(tab, row, func(v classroom.Parent) error { return p.UpdateParent(ctx, v) })
	case sheet.TabAttendance:
		return insertVia(tab, row, func(v classroom.Attendance) error {
			res, err := p.db.NamedExecContext(ctx, `
				UPDATE attendance
				SET class_id = :class_id, student_id = :student_id,
				    date = :date, status = :status, note = :note
				WHERE id = :id`, v)
			return affected(res, err, "updating attendance")
		})
	case sheet.TabBehavior:
		return insertVia(tab, row, func(v classroom.Behavior) error { return p.UpdateBehavior(ctx, v) })
	case sheet.TabAnnouncements:
		return insertVia(tab, row, func(v classroom.Announcement) error { return p.UpdateAnnouncement(ctx, v) })
	case sheet.TabDocuments:
		return insertVia(tab, row, func(v classroom.ClassDocument) error { return p.UpdateDocument(ctx, v) })
	case sheet.TabTasks:
		return insertVia(tab, row, func(v classroom.Task) error { return p.UpdateTask(ctx, v) })
	case sheet.TabTaskReplies:
		return insertVia(tab, row, func(v classroom.TaskReply) error {
			res, err := p.db.ExecContext(ctx, `
				UPDATE task_replies
				SET task_id = $1, student_id = $2, reply_text = $3,
				    attachments = $4, created_at = $5
				WHERE id = $6`,
				v.TaskID, v.StudentID, v.ReplyText, jsonList(v.Attachments), v.CreatedAt, v.ID)
			return affected(res, err, "updating task reply")
		})
	case sheet.TabThreads:
		return insertVia(tab, row, func(v classroom.Thread) error {
			res, err := p.db.ExecContext(ctx, `
				UPDATE threads
				SET thread_key = $1, participants = $2, last_message_at = $3
				WHERE id = $4`,
				v.ThreadKey, jsonList(v.Participants), v.LastMessageAt, v.ID)
			return affected(res, err, "updating thread")
		})
	case sheet.TabMessages:
		return insertVia(tab, row, func(v classroom.Message) error {
			res, err := p.db.NamedExecContext(ctx, `
				UPDATE messages
				SET thread_id = :thread_id, from_role = :from_role,
				    content = :content, created_at = :created_at
				WHERE id = :id`, v)
			return affected(res, err, "updating message")
		})
	case sheet.TabQuestions:
		return insertVia(tab, row, func(v classroom.Question) error { return p.UpdateQuestion(ctx, v) })
	}
	return errors.Errorf("unknown tab %q", tab)
}

func (p *Provider) Remove(ctx context.Context, tab, id string) error {
	table, ok := tabTables[tab]
	if !ok {
		return errors.Errorf("unknown tab %q", tab)
	}
	res, err := p.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	return affected(res, err, "deleting "+tab+" row")
}
