package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/summitpeak/outreach-agent/internal/entity"
	"github.com/summitpeak/outreach-agent/internal/infra/http/middleware"
	"github.com/summitpeak/outreach-agent/internal/infra/queue"
	"github.com/summitpeak/outreach-agent/internal/sequence"
)

// Batch bounds for one dispatch cycle.
const (
	DueLeadBatchSize = 50
	DueTaskBatchSize = 100
)

const fallbackSubject = "Hello from Summit Peak"

// DispatchDueUseCase runs one periodic cycle: send the next email to
// every due lead and advance its progress marker. Leads are processed
// sequentially; one lead's failure never aborts the batch, and a
// failed send leaves the lead untouched so the next cycle retries it.
type DispatchDueUseCase struct {
	Leads       entity.LeadRepositoryInterface
	Tasks       entity.TaskRepositoryInterface
	Catalog     *sequence.Catalog
	Email       EmailServiceInterface
	Events      EventProducerInterface // optional
	BookingLink string
}

func NewDispatchDueUseCase(
	leads entity.LeadRepositoryInterface,
	tasks entity.TaskRepositoryInterface,
	catalog *sequence.Catalog,
	email EmailServiceInterface,
	events EventProducerInterface,
	bookingLink string,
) *DispatchDueUseCase {
	return &DispatchDueUseCase{
		Leads:       leads,
		Tasks:       tasks,
		Catalog:     catalog,
		Email:       email,
		Events:      events,
		BookingLink: bookingLink,
	}
}

func (uc *DispatchDueUseCase) Execute(ctx context.Context) error {
	dueLeads, err := uc.Leads.SelectDue(ctx, DueLeadBatchSize)
	if err != nil {
		return &TechnicalError{Code: "STORE_ERROR", Message: "failed to select due leads", Cause: err}
	}

	for _, lead := range dueLeads {
		uc.dispatchLead(ctx, lead)
	}

	// Due tasks are fetched but not acted upon. The hook is reserved
	// for a digest notification; operators close tasks by hand.
	dueTasks, err := uc.Tasks.SelectDue(ctx, DueTaskBatchSize)
	if err != nil {
		log.Printf("⚠️ Failed to select due tasks: %v", err)
	} else if len(dueTasks) > 0 {
		log.Printf("📋 %d open task(s) past due", len(dueTasks))
	}

	return nil
}

func (uc *DispatchDueUseCase) dispatchLead(ctx context.Context, lead *entity.Lead) {
	emailSteps := sequence.EmailSteps(uc.Catalog.For(lead))
	sentCount := sequence.SentCount(lead.LastStep)

	step, ok := sequence.NextEmailStep(emailSteps, sentCount)
	if !ok {
		return
	}

	content := step.Build(*lead)
	subject, html := content.Subject, content.HTML
	if subject == "" {
		subject = fallbackSubject
	}
	if html == "" {
		greeting := ""
		if lead.Name != "" {
			greeting = ", " + lead.Name
		}
		html = fmt.Sprintf(`<p>Hi%s — quick chat?</p><p><a href="%s">Book a 30-min slot</a></p>`,
			greeting, uc.BookingLink)
	}

	if err := uc.Email.Send(lead.Email, subject, html); err != nil {
		log.Printf("❌ Email send failed for %s: %v", lead.Email, err)
		middleware.RecordEmailFailure()
		return
	}

	marker := sequence.ProgressMarker(sentCount + 1)
	next := time.Now().Add(sequence.FollowUpInterval)
	patch := entity.LeadPatch{LastStep: &marker, NextDue: &next}
	if lead.Status != entity.StatusUnsub {
		status := entity.StatusWorking
		patch.Status = &status
	}

	if err := uc.Leads.Update(ctx, lead.ID, patch); err != nil {
		log.Printf("⚠️ Sent to %s but failed to advance progress: %v", lead.Email, err)
		return
	}

	log.Printf("📧 Email -> %s: %s", lead.Email, subject)
	middleware.RecordEmailSent()
	uc.publish(ctx, queue.OutreachEvent{
		Type:      queue.EventEmailSent,
		LeadID:    lead.ID,
		Email:     lead.Email,
		Step:      step.Name,
		SentCount: sentCount + 1,
	})
}

func (uc *DispatchDueUseCase) publish(ctx context.Context, event queue.OutreachEvent) {
	if uc.Events == nil {
		return
	}
	if err := uc.Events.PublishEvent(ctx, event); err != nil {
		log.Printf("⚠️ Failed to publish %s event: %v", event.Type, err)
	}
}
