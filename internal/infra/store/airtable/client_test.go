package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitpeak/outreach-agent/internal/entity"
)

func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		apiToken: "test-token",
		baseURL:  srv.URL + "/v0/appBase123",
		http:     srv.Client(),
	}
}

func TestFindByEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/v0/appBase123/Leads", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "{email} = 'a@x.com'", r.URL.Query().Get("filterByFormula"))
		assert.Equal(t, "1", r.URL.Query().Get("maxRecords"))

		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{{
				"id": "rec123",
				"fields": map[string]any{
					"email":    "a@x.com",
					"name":     "Dana",
					"status":   "Working",
					"tags":     []string{"investor", "utah"},
					"lastStep": "email:1",
					"nextDue":  "2026-09-01T12:00:00Z",
				},
			}},
		})
	}))
	defer srv.Close()

	repo := NewLeadRepository(newTestClient(srv), "Leads")

	lead, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, lead)

	assert.Equal(t, "rec123", lead.ID)
	assert.Equal(t, "Dana", lead.Name)
	assert.Equal(t, []string{"investor", "utah"}, lead.Tags)
	assert.Equal(t, "email:1", lead.LastStep)
	require.NotNil(t, lead.NextDue)
	assert.Equal(t, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC), lead.NextDue.UTC())
}

func TestFindByEmailNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"records": []any{}})
	}))
	defer srv.Close()

	repo := NewLeadRepository(newTestClient(srv), "Leads")

	lead, err := repo.FindByEmail(context.Background(), "ghost@x.com")
	require.NoError(t, err)
	assert.Nil(t, lead)
}

func TestFindByEmailEscapesQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `{email} = 'o\'brien@x.com'`, r.URL.Query().Get("filterByFormula"))
		json.NewEncoder(w).Encode(map[string]any{"records": []any{}})
	}))
	defer srv.Close()

	repo := NewLeadRepository(newTestClient(srv), "Leads")

	_, err := repo.FindByEmail(context.Background(), "o'brien@x.com")
	require.NoError(t, err)
}

func TestCreateLeadSendsOnlySetFields(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v0/appBase123/Leads", r.URL.Path)

		var req struct {
			Fields map[string]any `json:"fields"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		captured = req.Fields

		json.NewEncoder(w).Encode(map[string]any{"id": "recNew", "fields": req.Fields})
	}))
	defer srv.Close()

	repo := NewLeadRepository(newTestClient(srv), "Leads")

	created, err := repo.Create(context.Background(), &entity.Lead{
		Email:  "a@x.com",
		Source: "manual",
		Status: "New",
	})
	require.NoError(t, err)

	assert.Equal(t, "recNew", created.ID)
	assert.Equal(t, map[string]any{
		"email":  "a@x.com",
		"source": "manual",
		"status": "New",
	}, captured)
}

func TestUpdateLeadPatchesOnlySetFields(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PATCH", r.Method)
		assert.Equal(t, "/v0/appBase123/Leads/rec123", r.URL.Path)

		var req struct {
			Fields map[string]any `json:"fields"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		captured = req.Fields

		json.NewEncoder(w).Encode(map[string]any{"id": "rec123"})
	}))
	defer srv.Close()

	repo := NewLeadRepository(newTestClient(srv), "Leads")

	marker := "email:2"
	due := time.Date(2026, 9, 4, 12, 0, 0, 0, time.UTC)
	err := repo.Update(context.Background(), "rec123", entity.LeadPatch{LastStep: &marker, NextDue: &due})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"lastStep": "email:2",
		"nextDue":  "2026-09-04T12:00:00Z",
	}, captured)
}

func TestSelectDueLeadsFormula(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, dueLeadsFormula, r.URL.Query().Get("filterByFormula"))
		assert.Equal(t, "50", r.URL.Query().Get("maxRecords"))
		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{
				{"id": "rec1", "fields": map[string]any{"email": "a@x.com"}},
				{"id": "rec2", "fields": map[string]any{"email": "b@x.com"}},
			},
		})
	}))
	defer srv.Close()

	repo := NewLeadRepository(newTestClient(srv), "Leads")

	leads, err := repo.SelectDue(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "a@x.com", leads[0].Email)
}

func TestSelectDueTasksFormula(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v0/appBase123/Tasks", r.URL.Path)
		assert.Equal(t, dueTasksFormula, r.URL.Query().Get("filterByFormula"))
		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{
				{"id": "task1", "fields": map[string]any{
					"leadId": "rec1", "channel": "linkedin", "action": "connect",
					"content": "LinkedIn: connect", "status": "open",
				}},
			},
		})
	}))
	defer srv.Close()

	repo := NewTaskRepository(newTestClient(srv), "Tasks")

	tasks, err := repo.SelectDue(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "rec1", tasks[0].LeadID)
	assert.Equal(t, "connect", tasks[0].Action)
}

func TestCreateTaskDefaultsStatusOpen(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Fields map[string]any `json:"fields"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		captured = req.Fields
		json.NewEncoder(w).Encode(map[string]any{"id": "taskNew", "fields": req.Fields})
	}))
	defer srv.Close()

	repo := NewTaskRepository(newTestClient(srv), "Tasks")

	task, err := repo.Create(context.Background(), &entity.Task{
		LeadID:  "rec1",
		Channel: entity.ChannelLinkedIn,
		Action:  entity.ActionConnect,
		Content: "LinkedIn: connect with Dana",
	})
	require.NoError(t, err)

	assert.Equal(t, "taskNew", task.ID)
	assert.Equal(t, "open", captured["status"])
	assert.Equal(t, "linkedin", captured["channel"])
}

func TestErrorResponsesSurface(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":{"type":"INVALID_FILTER_BY_FORMULA"}}`))
	}))
	defer srv.Close()

	repo := NewLeadRepository(newTestClient(srv), "Leads")

	_, err := repo.SelectDue(context.Background(), 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestTagsToleratesCommaString(t *testing.T) {
	fields := map[string]any{"tags": "investor, utah"}
	assert.Equal(t, []string{"investor", "utah"}, tagsField(fields, "tags"))
}
