package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/summitpeak/outreach-agent/internal/entity"
)

const leadColumns = "id, email, name, company, source, status, tags, last_step, next_due, notes"

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	query := fmt.Sprintf("SELECT %s FROM leads WHERE email = $1", leadColumns)

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return lead, err
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) (*entity.Lead, error) {
	created := *lead
	created.ID = uuid.New().String()

	query := `
		INSERT INTO leads (id, email, name, company, source, status, tags, last_step, next_due, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		created.ID,
		created.Email,
		nullString(created.Name),
		nullString(created.Company),
		nullString(created.Source),
		nullString(created.Status),
		nullString(strings.Join(created.Tags, ",")),
		nullString(created.LastStep),
		created.NextDue,
		nullString(created.Notes),
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *LeadRepository) Update(ctx context.Context, id string, patch entity.LeadPatch) error {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.LastStep != nil {
		add("last_step", *patch.LastStep)
	}
	if patch.NextDue != nil {
		add("next_due", *patch.NextDue)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE leads SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	_, err := r.DB.ExecContext(ctx, query, args...)
	return err
}

func (r *LeadRepository) SelectDue(ctx context.Context, limit int) ([]*entity.Lead, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM leads
		WHERE status IS DISTINCT FROM 'Unsub'
		  AND next_due IS NOT NULL
		  AND next_due < NOW()
		ORDER BY next_due
		LIMIT $1
	`, leadColumns)

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var name, company, source, status, tags, lastStep, notes sql.NullString
	var nextDue sql.NullTime

	err := row.Scan(
		&lead.ID,
		&lead.Email,
		&name,
		&company,
		&source,
		&status,
		&tags,
		&lastStep,
		&nextDue,
		&notes,
	)
	if err != nil {
		return nil, err
	}

	lead.Name = name.String
	lead.Company = company.String
	lead.Source = source.String
	lead.Status = status.String
	lead.LastStep = lastStep.String
	lead.Notes = notes.String
	if tags.String != "" {
		lead.Tags = strings.Split(tags.String, ",")
	}
	if nextDue.Valid {
		t := nextDue.Time
		lead.NextDue = &t
	}
	return &lead, nil
}
