package handlers

import (
	"log"
	"net/http"

	"github.com/summitpeak/outreach-agent/internal/entity"
	"github.com/summitpeak/outreach-agent/internal/infra/http/middleware"
	"github.com/summitpeak/outreach-agent/internal/infra/mail"
	"github.com/summitpeak/outreach-agent/internal/infra/queue"
)

type UnsubscribeHandler struct {
	Leads  entity.LeadRepositoryInterface
	Secret string
	Events queue.ProducerInterface // optional
}

func NewUnsubscribeHandler(leads entity.LeadRepositoryInterface, secret string, events queue.ProducerInterface) *UnsubscribeHandler {
	return &UnsubscribeHandler{Leads: leads, Secret: secret, Events: events}
}

// Handle opts a lead out. The token must match the HMAC the mailer put
// in the footer; the rejection message never reveals whether the email
// is known. There is no re-subscribe path.
func (h *UnsubscribeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	token := r.URL.Query().Get("token")

	if email == "" || !mail.VerifyUnsubscribeToken(h.Secret, email, token) {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	found, err := h.Leads.FindByEmail(r.Context(), email)
	if err != nil {
		http.Error(w, "Error processing unsubscribe", http.StatusBadRequest)
		return
	}

	if found != nil {
		status := entity.StatusUnsub
		if err := h.Leads.Update(r.Context(), found.ID, entity.LeadPatch{Status: &status}); err != nil {
			http.Error(w, "Error processing unsubscribe", http.StatusBadRequest)
			return
		}
		log.Printf("🚫 Lead unsubscribed: %s", email)
		middleware.RecordUnsubscribe()
		if h.Events != nil {
			event := queue.OutreachEvent{Type: queue.EventLeadUnsubscribed, LeadID: found.ID, Email: email}
			if err := h.Events.PublishEvent(r.Context(), event); err != nil {
				log.Printf("⚠️ Failed to publish %s event: %v", event.Type, err)
			}
		}
	}

	w.Write([]byte("You have been unsubscribed."))
}
