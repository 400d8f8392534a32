package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/summitpeak/outreach-agent/internal/usecase"
)

func postStart(t *testing.T, handler *CampaignHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/campaigns/start", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	handler.HandleStart(w, req)
	return w
}

func TestStartCampaignHandlerSuccess(t *testing.T) {
	mockUC := new(MockStartCampaign)
	handler := NewCampaignHandler(mockUC)

	mockUC.On("Execute", mock.Anything, mock.MatchedBy(func(in usecase.StartCampaignInput) bool {
		return in.Lead.Email == "a@x.com" && in.Campaign == "seller_outreach"
	})).Return(&usecase.StartCampaignOutput{LeadID: "rec1", Steps: 4}, nil)

	w := postStart(t, handler, `{"lead":{"email":"a@x.com"},"campaign":"seller_outreach"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "rec1", body["leadId"])
	assert.Equal(t, float64(4), body["steps"])
}

func TestStartCampaignHandlerValidationFailure(t *testing.T) {
	mockUC := new(MockStartCampaign)
	handler := NewCampaignHandler(mockUC)

	mockUC.On("Execute", mock.Anything, mock.Anything).Return(
		nil, &usecase.DomainError{Code: "INVALID_INPUT", Message: "lead.email: is invalid"})

	w := postStart(t, handler, `{"lead":{"email":"nope"},"campaign":"seller_outreach"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "lead.email: is invalid", body["error"])
}

func TestStartCampaignHandlerInvalidJSON(t *testing.T) {
	mockUC := new(MockStartCampaign)
	handler := NewCampaignHandler(mockUC)

	w := postStart(t, handler, `{not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUC.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
