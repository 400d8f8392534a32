package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/summitpeak/outreach-agent/internal/entity"
	"github.com/summitpeak/outreach-agent/internal/infra/queue"
)

// emailPaths are the alternate payload shapes Calendly (and proxies in
// front of it) have been seen to deliver, tried in order.
var emailPaths = [][]string{
	{"payload", "invitee", "email"},
	{"payload", "email"},
	{"invitee", "email"},
	{"email"},
}

type WebhookHandler struct {
	Leads  entity.LeadRepositoryInterface
	Events queue.ProducerInterface // optional
}

func NewWebhookHandler(leads entity.LeadRepositoryInterface, events queue.ProducerInterface) *WebhookHandler {
	return &WebhookHandler{Leads: leads, Events: events}
}

// HandleCalendly marks a lead as Booked when a booking notification
// arrives. It answers ok even when no lead matches or the payload has
// no email: the webhook sender retries on anything else.
func (h *WebhookHandler) HandleCalendly(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	email := extractEmail(body)
	if email == "" {
		writeJSON(w, http.StatusOK, okResponse{OK: true})
		return
	}

	found, err := h.Leads.FindByEmail(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if found != nil {
		// Booked wins over any prior status, Unsub included.
		status := entity.StatusBooked
		notes := "Calendly booked"
		patch := entity.LeadPatch{Status: &status, Notes: &notes}
		if err := h.Leads.Update(r.Context(), found.ID, patch); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("📅 Lead booked: %s", email)
		h.publish(r.Context(), queue.OutreachEvent{
			Type:   queue.EventLeadBooked,
			LeadID: found.ID,
			Email:  email,
		})
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// extractEmail tries each known payload shape and stops at the first
// string value it finds.
func extractEmail(body map[string]any) string {
	for _, path := range emailPaths {
		node := body
		for i, key := range path {
			if i == len(path)-1 {
				if s, ok := node[key].(string); ok && s != "" {
					return s
				}
				break
			}
			next, ok := node[key].(map[string]any)
			if !ok {
				break
			}
			node = next
		}
	}
	return ""
}

func (h *WebhookHandler) publish(ctx context.Context, event queue.OutreachEvent) {
	if h.Events == nil {
		return
	}
	if err := h.Events.PublishEvent(ctx, event); err != nil {
		log.Printf("⚠️ Failed to publish %s event: %v", event.Type, err)
	}
}
