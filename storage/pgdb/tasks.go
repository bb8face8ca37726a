package pgdb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core/classroom"
)

func (p *Provider) QueryTasks(ctx context.Context, classID string) ([]classroom.Task, error) {
	out := make([]classroom.Task, 0)
	var err error
	if classID == "" {
		err = p.db.SelectContext(ctx, &out, `SELECT * FROM tasks ORDER BY created_at DESC`)
	} else {
		err = p.db.SelectContext(ctx, &out, `
			SELECT * FROM tasks WHERE class_id = $1 ORDER BY created_at DESC`, classID)
	}
	return out, errors.Wrap(err, "querying tasks")
}

func (p *Provider) AddTask(ctx context.Context, t classroom.Task) (classroom.Task, error) {
	if t.ID == "" {
		t.ID = newID()
	}
	_, err := p.db.NamedExecContext(ctx, `
		INSERT INTO tasks (id, class_id, title, description, due_date, require_reply, created_at)
		VALUES (:id, :class_id, :title, :description, :due_date, :require_reply, :created_at)`, t)
	return t, errors.Wrap(err, "inserting task")
}

func (p *Provider) UpdateTask(ctx context.Context, t classroom.Task) error {
	res, err := p.db.NamedExecContext(ctx, `
		UPDATE tasks
		SET class_id = :class_id, title = :title, description = :description,
		    due_date = :due_date, require_reply = :require_reply, created_at = :created_at
		WHERE id = :id`, t)
	return affected(res, err, "updating task")
}

func (p *Provider) DeleteTask(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return affected(res, err, "deleting task")
}

func (p *Provider) QueryTaskReplies(ctx context.Context, taskID string) ([]classroom.TaskReply, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, task_id, student_id, reply_text, attachments, created_at
		FROM task_replies WHERE task_id = $1 ORDER BY created_at`, taskID)
	if err != nil {
		return nil, errors.Wrap(err, "querying task replies")
	}
	defer func() { _ = rows.Close() }()

	out := make([]classroom.TaskReply, 0)
	for rows.Next() {
		var (
			r     classroom.TaskReply
			files jsonList
		)
		if err = rows.Scan(&r.ID, &r.TaskID, &r.StudentID, &r.ReplyText, &files, &r.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning task reply")
		}
		r.Attachments = files
		out = append(out, r)
	}
	return out, errors.Wrap(rows.Err(), "querying task replies")
}

// SubmitTaskReply upserts on (task_id, student_id); a re-submission keeps
// the original id.
func (p *Provider) SubmitTaskReply(ctx context.Context, r classroom.TaskReply) error {
	if r.ID == "" {
		r.ID = newID()
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO task_replies (id, task_id, student_id, reply_text, attachments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (task_id, student_id) DO UPDATE
		SET reply_text = EXCLUDED.reply_text,
		    attachments = EXCLUDED.attachments,
		    created_at = EXCLUDED.created_at`,
		r.ID, r.TaskID, r.StudentID, r.ReplyText, jsonList(r.Attachments), r.CreatedAt)
	return errors.Wrap(err, "upserting task reply")
}
