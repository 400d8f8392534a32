package airtable

import (
	"context"
	"fmt"
	"time"

	"github.com/summitpeak/outreach-agent/internal/entity"
)

type LeadRepository struct {
	client *Client
	table  string
}

func NewLeadRepository(client *Client, table string) *LeadRepository {
	return &LeadRepository{client: client, table: table}
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	formula := fmt.Sprintf("{email} = '%s'", escapeFormulaValue(email))
	recs, err := r.client.selectRecords(ctx, r.table, formula, 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return leadFromRecord(recs[0]), nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) (*entity.Lead, error) {
	fields := map[string]any{"email": lead.Email}
	if lead.Name != "" {
		fields["name"] = lead.Name
	}
	if lead.Company != "" {
		fields["company"] = lead.Company
	}
	if lead.Source != "" {
		fields["source"] = lead.Source
	}
	if lead.Status != "" {
		fields["status"] = lead.Status
	}
	if len(lead.Tags) > 0 {
		fields["tags"] = lead.Tags
	}
	if lead.LastStep != "" {
		fields["lastStep"] = lead.LastStep
	}
	if lead.NextDue != nil {
		fields["nextDue"] = lead.NextDue.UTC().Format(time.RFC3339)
	}
	if lead.Notes != "" {
		fields["notes"] = lead.Notes
	}

	rec, err := r.client.createRecord(ctx, r.table, fields)
	if err != nil {
		return nil, err
	}
	return leadFromRecord(rec), nil
}

func (r *LeadRepository) Update(ctx context.Context, id string, patch entity.LeadPatch) error {
	fields := map[string]any{}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}
	if patch.LastStep != nil {
		fields["lastStep"] = *patch.LastStep
	}
	if patch.NextDue != nil {
		fields["nextDue"] = patch.NextDue.UTC().Format(time.RFC3339)
	}
	if patch.Notes != nil {
		fields["notes"] = *patch.Notes
	}
	if len(fields) == 0 {
		return nil
	}

	return r.client.updateRecord(ctx, r.table, id, fields)
}

func (r *LeadRepository) SelectDue(ctx context.Context, limit int) ([]*entity.Lead, error) {
	recs, err := r.client.selectRecords(ctx, r.table, dueLeadsFormula, limit)
	if err != nil {
		return nil, err
	}
	leads := make([]*entity.Lead, len(recs))
	for i, rec := range recs {
		leads[i] = leadFromRecord(rec)
	}
	return leads, nil
}
