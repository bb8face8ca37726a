package sheetapi

import (
	"context"
	"sort"

	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/sheet"
)

func (p *Provider) QueryTasks(ctx context.Context, classID string) ([]classroom.Task, error) {
	var (
		rows []sheet.Row
		err  error
	)
	if classID == "" {
		rows, err = p.getAll(ctx, sheet.TabTasks)
	} else {
		rows, err = p.list(ctx, sheet.TabTasks, "classId", classID)
	}
	if err != nil {
		return nil, err
	}
	out, err := expand[classroom.Task](sheet.TabTasks, rows)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (p *Provider) AddTask(ctx context.Context, t classroom.Task) (classroom.Task, error) {
	row, err := p.create(ctx, sheet.TabTasks, t)
	if err != nil {
		return classroom.Task{}, err
	}
	var stored classroom.Task
	err = sheet.Expand(sheet.TabTasks, row, &stored)
	return stored, err
}

func (p *Provider) UpdateTask(ctx context.Context, t classroom.Task) error {
	return p.update(ctx, sheet.TabTasks, t.ID, t)
}

func (p *Provider) DeleteTask(ctx context.Context, id string) error {
	return p.delete(ctx, sheet.TabTasks, id)
}

func (p *Provider) QueryTaskReplies(ctx context.Context, taskID string) ([]classroom.TaskReply, error) {
	rows, err := p.list(ctx, sheet.TabTaskReplies, "taskId", taskID)
	if err != nil {
		return nil, err
	}
	return expand[classroom.TaskReply](sheet.TabTaskReplies, rows)
}

// SubmitTaskReply upserts by (TaskID, StudentID). The remote store has no
// upsert verb, so this lists the task's replies first and either patches
// the student's existing row, keeping its id, or appends a new one.
func (p *Provider) SubmitTaskReply(ctx context.Context, r classroom.TaskReply) error {
	existing, err := p.QueryTaskReplies(ctx, r.TaskID)
	if err != nil {
		return err
	}
	for _, old := range existing {
		if old.StudentID == r.StudentID {
			r.ID = old.ID
			return p.update(ctx, sheet.TabTaskReplies, old.ID, r)
		}
	}
	r.ID = ""
	_, err = p.create(ctx, sheet.TabTaskReplies, r)
	return err
}
