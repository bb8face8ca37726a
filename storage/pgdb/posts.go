package pgdb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core/classroom"
)

func (p *Provider) QueryAnnouncements(ctx context.Context, classID string) ([]classroom.Announcement, error) {
	out := make([]classroom.Announcement, 0)
	var err error
	if classID == "" {
		err = p.db.SelectContext(ctx, &out, `
			SELECT * FROM announcements ORDER BY pinned DESC, created_at DESC`)
	} else {
		err = p.db.SelectContext(ctx, &out, `
			SELECT * FROM announcements WHERE class_id = $1
			ORDER BY pinned DESC, created_at DESC`, classID)
	}
	return out, errors.Wrap(err, "querying announcements")
}

func (p *Provider) AddAnnouncement(ctx context.Context, a classroom.Announcement) (classroom.Announcement, error) {
	if a.ID == "" {
		a.ID = newID()
	}
	_, err := p.db.NamedExecContext(ctx, `
		INSERT INTO announcements (id, class_id, title, content, created_at, author, target, pinned)
		VALUES (:id, :class_id, :title, :content, :created_at, :author, :target, :pinned)`, a)
	return a, errors.Wrap(err, "inserting announcement")
}

func (p *Provider) UpdateAnnouncement(ctx context.Context, a classroom.Announcement) error {
	res, err := p.db.NamedExecContext(ctx, `
		UPDATE announcements
		SET class_id = :class_id, title = :title, content = :content,
		    created_at = :created_at, author = :author, target = :target, pinned = :pinned
		WHERE id = :id`, a)
	return affected(res, err, "updating announcement")
}

func (p *Provider) DeleteAnnouncement(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	return affected(res, err, "deleting announcement")
}

func (p *Provider) QueryDocuments(ctx context.Context, classID string) ([]classroom.ClassDocument, error) {
	out := make([]classroom.ClassDocument, 0)
	var err error
	if classID == "" {
		err = p.db.SelectContext(ctx, &out, `SELECT * FROM documents ORDER BY created_at DESC`)
	} else {
		err = p.db.SelectContext(ctx, &out, `
			SELECT * FROM documents WHERE class_id = $1 ORDER BY created_at DESC`, classID)
	}
	return out, errors.Wrap(err, "querying documents")
}

func (p *Provider) AddDocument(ctx context.Context, d classroom.ClassDocument) (classroom.ClassDocument, error) {
	if d.ID == "" {
		d.ID = newID()
	}
	_, err := p.db.NamedExecContext(ctx, `
		INSERT INTO documents (id, class_id, title, url, category, created_at)
		VALUES (:id, :class_id, :title, :url, :category, :created_at)`, d)
	return d, errors.Wrap(err, "inserting document")
}

func (p *Provider) UpdateDocument(ctx context.Context, d classroom.ClassDocument) error {
	res, err := p.db.NamedExecContext(ctx, `
		UPDATE documents
		SET class_id = :class_id, title = :title, url = :url,
		    category = :category, created_at = :created_at
		WHERE id = :id`, d)
	return affected(res, err, "updating document")
}

func (p *Provider) DeleteDocument(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	return affected(res, err, "deleting document")
}
