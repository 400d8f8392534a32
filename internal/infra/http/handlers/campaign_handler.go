package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/summitpeak/outreach-agent/internal/usecase"
)

type StartCampaignExecutor interface {
	Execute(ctx context.Context, input usecase.StartCampaignInput) (*usecase.StartCampaignOutput, error)
}

type CampaignHandler struct {
	StartCampaign StartCampaignExecutor
}

func NewCampaignHandler(uc StartCampaignExecutor) *CampaignHandler {
	return &CampaignHandler{StartCampaign: uc}
}

func (h *CampaignHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var input usecase.StartCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	output, err := h.StartCampaign.Execute(r.Context(), input)
	if err != nil {
		// Store failures surface as client errors too; there is no
		// partial rollback to report.
		log.Printf("❌ Start campaign failed: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true, LeadID: output.LeadID, Steps: output.Steps})
}
