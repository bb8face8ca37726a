package sheetapi

import (
	"context"
	"sort"

	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/sheet"
)

func (p *Provider) QueryAnnouncements(ctx context.Context, classID string) ([]classroom.Announcement, error) {
	var (
		rows []sheet.Row
		err  error
	)
	if classID == "" {
		rows, err = p.getAll(ctx, sheet.TabAnnouncements)
	} else {
		rows, err = p.list(ctx, sheet.TabAnnouncements, "classId", classID)
	}
	if err != nil {
		return nil, err
	}
	out, err := expand[classroom.Announcement](sheet.TabAnnouncements, rows)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out, nil
}

func (p *Provider) AddAnnouncement(ctx context.Context, a classroom.Announcement) (classroom.Announcement, error) {
	row, err := p.create(ctx, sheet.TabAnnouncements, a)
	if err != nil {
		return classroom.Announcement{}, err
	}
	var stored classroom.Announcement
	err = sheet.Expand(sheet.TabAnnouncements, row, &stored)
	return stored, err
}

func (p *Provider) UpdateAnnouncement(ctx context.Context, a classroom.Announcement) error {
	return p.update(ctx, sheet.TabAnnouncements, a.ID, a)
}

func (p *Provider) DeleteAnnouncement(ctx context.Context, id string) error {
	return p.delete(ctx, sheet.TabAnnouncements, id)
}

func (p *Provider) QueryDocuments(ctx context.Context, classID string) ([]classroom.ClassDocument, error) {
	var (
		rows []sheet.Row
		err  error
	)
	if classID == "" {
		rows, err = p.getAll(ctx, sheet.TabDocuments)
	} else {
		rows, err = p.list(ctx, sheet.TabDocuments, "classId", classID)
	}
	if err != nil {
		return nil, err
	}
	return expand[classroom.ClassDocument](sheet.TabDocuments, rows)
}

func (p *Provider) AddDocument(ctx context.Context, d classroom.ClassDocument) (classroom.ClassDocument, error) {
	row, err := p.create(ctx, sheet.TabDocuments, d)
	if err != nil {
		return classroom.ClassDocument{}, err
	}
	var stored classroom.ClassDocument
	err = sheet.Expand(sheet.TabDocuments, row, &stored)
	return stored, err
}

func (p *Provider) UpdateDocument(ctx context.Context, d classroom.ClassDocument) error {
	return p.update(ctx, sheet.TabDocuments, d.ID, d)
}

func (p *Provider) DeleteDocument(ctx context.Context, id string) error {
	return p.delete(ctx, sheet.TabDocuments, id)
}
