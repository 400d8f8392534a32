package entity

import (
	"context"
	"strings"
	"time"
)

// Lead lifecycle statuses. The store may hold custom values beyond these.
const (
	StatusNew     = "New"
	StatusWorking = "Working"
	StatusBooked  = "Booked"
	StatusUnsub   = "Unsub"
)

type Lead struct {
	ID       string     `json:"id"`
	Email    string     `json:"email"` // unique natural key
	Name     string     `json:"name,omitempty"`
	Company  string     `json:"company,omitempty"`
	Source   string     `json:"source,omitempty"`
	Status   string     `json:"status,omitempty"`
	Tags     []string   `json:"tags,omitempty"`
	LastStep string     `json:"lastStep,omitempty"`
	NextDue  *time.Time `json:"nextDue,omitempty"` // nil = not scheduled
	Notes    string     `json:"notes,omitempty"`
}

// TagString joins tags with commas for sequence matching.
func (l *Lead) TagString() string {
	return strings.Join(l.Tags, ",")
}

// LeadPatch is a partial update; nil fields are left untouched.
type LeadPatch struct {
	Status   *string
	LastStep *string
	NextDue  *time.Time
	Notes    *string
}

type LeadRepositoryInterface interface {
	// FindByEmail returns (nil, nil) when no record matches.
	FindByEmail(ctx context.Context, email string) (*Lead, error)

	Create(ctx context.Context, lead *Lead) (*Lead, error)

	Update(ctx context.Context, id string, patch LeadPatch) error

	// SelectDue returns leads whose status is not Unsub and whose
	// nextDue is set and already in the past, up to limit records.
	SelectDue(ctx context.Context, limit int) ([]*Lead, error)
}
