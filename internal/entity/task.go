package entity

import (
	"context"
	"time"
)

// Outreach channels.
const (
	ChannelEmail    = "email"
	ChannelLinkedIn = "linkedin"
	ChannelFacebook = "facebook"
)

// Task actions, inferred from the step name that produced the task.
const (
	ActionConnect = "connect"
	ActionMessage = "message"
	ActionPost    = "post"
)

const (
	TaskStatusOpen = "open"
	TaskStatusDone = "done"
)

// Task is a non-email touch to be performed by a human operator.
// Tasks are write-only here: nothing in this service closes them.
type Task struct {
	ID      string     `json:"id"`
	LeadID  string     `json:"leadId"`
	Channel string     `json:"channel"`
	Action  string     `json:"action"`
	Content string     `json:"content"`
	Due     *time.Time `json:"due,omitempty"`
	Status  string     `json:"status,omitempty"`
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *Task) (*Task, error)

	// SelectDue returns open tasks whose due timestamp has passed,
	// up to limit records.
	SelectDue(ctx context.Context, limit int) ([]*Task, error)
}
