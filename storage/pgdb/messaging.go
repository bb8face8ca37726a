package pgdb

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core/classroom"
)

func (p *Provider) QueryThreads(ctx context.Context) ([]classroom.Thread, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, thread_key, participants, last_message_at
		FROM threads ORDER BY last_message_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying threads")
	}
	defer func() { _ = rows.Close() }()

	out := make([]classroom.Thread, 0)
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, errors.Wrap(rows.Err(), "querying threads")
}

func scanThread(row interface{ Scan(...interface{}) error }) (classroom.Thread, error) {
	var (
		t            classroom.Thread
		participants jsonList
	)
	if err := row.Scan(&t.ID, &t.ThreadKey, &participants, &t.LastMessageAt); err != nil {
		return classroom.Thread{}, errors.Wrap(err, "scanning thread")
	}
	t.Participants = participants
	return t, nil
}

func (p *Provider) GetThreadByStudent(ctx context.Context, studentID string) (*classroom.Thread, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, thread_key, participants, last_message_at
		FROM threads WHERE thread_key = $1`, studentID)
	t, err := scanThread(row)
	if errors.Cause(err) == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (p *Provider) CreateThread(ctx context.Context, t classroom.Thread) (classroom.Thread, error) {
	if t.ID == "" {
		t.ID = newID()
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO threads (id, thread_key, participants, last_message_at)
		VALUES ($1, $2, $3, $4)`,
		t.ID, t.ThreadKey, jsonList(t.Participants), t.LastMessageAt)
	return t, errors.Wrap(err, "inserting thread")
}

func (p *Provider) QueryMessages(ctx context.Context, threadID string) ([]classroom.Message, error) {
	out := make([]classroom.Message, 0)
	err := p.db.SelectContext(ctx, &out, `
		SELECT * FROM messages WHERE thread_id = $1 ORDER BY created_at`, threadID)
	return out, errors.Wrap(err, "querying messages")
}

// SendMessage appends the message and touches the thread's
// last_message_at in one transaction.
func (p *Provider) SendMessage(ctx context.Context, m classroom.Message) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return p.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO messages (id, thread_id, from_role, content, created_at)
			VALUES (:id, :thread_id, :from_role, :content, :created_at)`, m)
		if err != nil {
			return errors.Wrap(err, "inserting message")
		}
		res, err := tx.ExecContext(ctx, `
			UPDATE threads SET last_message_at = $1 WHERE id = $2`, m.CreatedAt, m.ThreadID)
		return affected(res, err, "touching thread")
	})
}
