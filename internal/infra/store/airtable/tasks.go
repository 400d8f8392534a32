package airtable

import (
	"context"
	"time"

	"github.com/summitpeak/outreach-agent/internal/entity"
)

type TaskRepository struct {
	client *Client
	table  string
}

func NewTaskRepository(client *Client, table string) *TaskRepository {
	return &TaskRepository{client: client, table: table}
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	status := task.Status
	if status == "" {
		status = entity.TaskStatusOpen
	}

	fields := map[string]any{
		"leadId":  task.LeadID,
		"channel": task.Channel,
		"action":  task.Action,
		"content": task.Content,
		"status":  status,
	}
	if task.Due != nil {
		fields["due"] = task.Due.UTC().Format(time.RFC3339)
	}

	rec, err := r.client.createRecord(ctx, r.table, fields)
	if err != nil {
		return nil, err
	}
	return taskFromRecord(rec), nil
}

func (r *TaskRepository) SelectDue(ctx context.Context, limit int) ([]*entity.Task, error) {
	recs, err := r.client.selectRecords(ctx, r.table, dueTasksFormula, limit)
	if err != nil {
		return nil, err
	}
	tasks := make([]*entity.Task, len(recs))
	for i, rec := range recs {
		tasks[i] = taskFromRecord(rec)
	}
	return tasks, nil
}
