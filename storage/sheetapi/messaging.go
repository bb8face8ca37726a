package sheetapi

import (
	"context"
	"sort"

	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/sheet"
)

func (p *Provider) QueryThreads(ctx context.Context) ([]classroom.Thread, error) {
	rows, err := p.getAll(ctx, sheet.TabThreads)
	if err != nil {
		return nil, err
	}
	out, err := expand[classroom.Thread](sheet.TabThreads, rows)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LastMessageAt > out[j].LastMessageAt })
	return out, nil
}

func (p *Provider) GetThreadByStudent(ctx context.Context, studentID string) (*classroom.Thread, error) {
	rows, err := p.list(ctx, sheet.TabThreads, "threadKey", studentID)
	if err != nil {
		return nil, err
	}
	return first[classroom.Thread](sheet.TabThreads, rows)
}

func (p *Provider) CreateThread(ctx context.Context, t classroom.Thread) (classroom.Thread, error) {
	row, err := p.create(ctx, sheet.TabThreads, t)
	if err != nil {
		return classroom.Thread{}, err
	}
	var stored classroom.Thread
	err = sheet.Expand(sheet.TabThreads, row, &stored)
	return stored, err
}

func (p *Provider) QueryMessages(ctx context.Context, threadID string) ([]classroom.Message, error) {
	rows, err := p.list(ctx, sheet.TabMessages, "threadId", threadID)
	if err != nil {
		return nil, err
	}
	out, err := expand[classroom.Message](sheet.TabMessages, rows)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

// SendMessage appends the message, then touches the thread's
// lastMessageAt in a second call. A failure between the two leaves the
// thread's ordering stale but never loses the message.
func (p *Provider) SendMessage(ctx context.Context, m classroom.Message) error {
	if _, err := p.create(ctx, sheet.TabMessages, m); err != nil {
		return err
	}
	return p.updateRow(ctx, sheet.TabThreads, m.ThreadID, sheet.Row{"lastMessageAt": m.CreatedAt})
}
