package handlers

import (
	"encoding/json"
	"net/http"
)

type okResponse struct {
	OK     bool   `json:"ok"`
	LeadID string `json:"leadId,omitempty"`
	Steps  int    `json:"steps,omitempty"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{OK: false, Error: message})
}
