package usecase

import (
	"context"
	"log"
	"time"

	"github.com/summitpeak/outreach-agent/internal/entity"
	"github.com/summitpeak/outreach-agent/internal/infra/http/middleware"
	"github.com/summitpeak/outreach-agent/internal/infra/queue"
	"github.com/summitpeak/outreach-agent/internal/sequence"
)

// StartCampaignUseCase enrolls a lead into a campaign: it reuses or
// creates the lead record, schedules the first email due-date and
// creates operator tasks for the non-email steps.
type StartCampaignUseCase struct {
	Leads   entity.LeadRepositoryInterface
	Tasks   entity.TaskRepositoryInterface
	Catalog *sequence.Catalog
	Events  EventProducerInterface // optional
}

func NewStartCampaignUseCase(
	leads entity.LeadRepositoryInterface,
	tasks entity.TaskRepositoryInterface,
	catalog *sequence.Catalog,
	events EventProducerInterface,
) *StartCampaignUseCase {
	return &StartCampaignUseCase{
		Leads:   leads,
		Tasks:   tasks,
		Catalog: catalog,
		Events:  events,
	}
}

func (uc *StartCampaignUseCase) Execute(ctx context.Context, input StartCampaignInput) (*StartCampaignOutput, error) {
	if errs := ValidateStartCampaignInput(input); len(errs) > 0 {
		return nil, &DomainError{Code: "INVALID_INPUT", Message: joinValidationErrors(errs)}
	}

	stored, err := uc.Leads.FindByEmail(ctx, input.Lead.Email)
	if err != nil {
		return nil, &TechnicalError{Code: "STORE_ERROR", Message: "failed to look up lead", Cause: err}
	}

	if stored == nil {
		lead := &entity.Lead{
			Email:   input.Lead.Email,
			Name:    input.Lead.Name,
			Company: input.Lead.Company,
			Source:  input.Lead.Source,
			Tags:    input.Lead.Tags,
		}
		if lead.Source == "" {
			lead.Source = "manual"
		}
		lead.Status = entity.StatusNew

		stored, err = uc.Leads.Create(ctx, lead)
		if err != nil {
			return nil, &TechnicalError{Code: "STORE_ERROR", Message: "failed to create lead", Cause: err}
		}
		log.Printf("🆕 Lead created: %s (%s)", stored.Email, stored.ID)
	}

	steps, ok := uc.Catalog.ByCampaign(input.Campaign)
	if !ok {
		// Validation guarantees a known campaign; tag-based selection
		// is the fallback when no explicit campaign disambiguates.
		steps = uc.Catalog.For(stored)
	}

	now := time.Now()
	for _, s := range steps {
		due := s.DueAt(now)

		if s.Channel == entity.ChannelEmail {
			// Only the first unscheduled email step sets the timer:
			// enrolling an already-scheduled lead never resets it, and
			// later email steps are left to the periodic cadence.
			if stored.NextDue == nil {
				marker := sequence.MarkerQueued
				patch := entity.LeadPatch{LastStep: &marker, NextDue: &due}
				if err := uc.Leads.Update(ctx, stored.ID, patch); err != nil {
					return nil, &TechnicalError{Code: "STORE_ERROR", Message: "failed to schedule lead", Cause: err}
				}
				stored.NextDue = &due
				stored.LastStep = marker
			}
			continue
		}

		content := s.Build(*stored)
		task := &entity.Task{
			LeadID:  stored.ID,
			Channel: s.Channel,
			Action:  s.Action(),
			Content: content.TaskContent,
			Due:     &due,
			Status:  entity.TaskStatusOpen,
		}
		if _, err := uc.Tasks.Create(ctx, task); err != nil {
			// No rollback: tasks and updates from earlier steps stand.
			return nil, &TechnicalError{Code: "STORE_ERROR", Message: "failed to create task", Cause: err}
		}
		middleware.RecordTaskCreated(s.Channel)
	}

	middleware.RecordLeadEnrolled(input.Campaign)
	uc.publish(ctx, queue.OutreachEvent{
		Type:     queue.EventLeadEnrolled,
		LeadID:   stored.ID,
		Email:    stored.Email,
		Campaign: input.Campaign,
	})

	return &StartCampaignOutput{LeadID: stored.ID, Steps: len(steps)}, nil
}

func (uc *StartCampaignUseCase) publish(ctx context.Context, event queue.OutreachEvent) {
	if uc.Events == nil {
		return
	}
	if err := uc.Events.PublishEvent(ctx, event); err != nil {
		log.Printf("⚠️ Failed to publish %s event: %v", event.Type, err)
	}
}
