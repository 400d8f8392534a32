package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/summitpeak/outreach-agent/internal/entity"
)

type TaskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	created := *task
	created.ID = uuid.New().String()
	if created.Status == "" {
		created.Status = entity.TaskStatusOpen
	}

	query := `
		INSERT INTO tasks (id, lead_id, channel, action, content, due, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		created.ID,
		created.LeadID,
		created.Channel,
		created.Action,
		created.Content,
		created.Due,
		created.Status,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *TaskRepository) SelectDue(ctx context.Context, limit int) ([]*entity.Task, error) {
	query := `
		SELECT id, lead_id, channel, action, content, due, status FROM tasks
		WHERE status = 'open'
		  AND due IS NOT NULL
		  AND due < NOW()
		ORDER BY due
		LIMIT $1
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*entity.Task
	for rows.Next() {
		var task entity.Task
		var due sql.NullTime
		if err := rows.Scan(&task.ID, &task.LeadID, &task.Channel, &task.Action, &task.Content, &due, &task.Status); err != nil {
			return nil, err
		}
		if due.Valid {
			t := due.Time
			task.Due = &t
		}
		tasks = append(tasks, &task)
	}
	return tasks, rows.Err()
}
