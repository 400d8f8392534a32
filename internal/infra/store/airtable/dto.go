package airtable

import (
	"strings"
	"time"

	"github.com/summitpeak/outreach-agent/internal/entity"
)

type record struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

type recordPage struct {
	Records []record `json:"records"`
}

type createRequest struct {
	Fields map[string]any `json:"fields"`
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// tagsField tolerates both shapes Airtable hands back: a multi-select
// array or a plain comma-separated string.
func tagsField(fields map[string]any, key string) []string {
	switch v := fields[key].(type) {
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return nil
	}
}

func timeField(fields map[string]any, key string) *time.Time {
	s := stringField(fields, key)
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func leadFromRecord(rec record) *entity.Lead {
	return &entity.Lead{
		ID:       rec.ID,
		Email:    stringField(rec.Fields, "email"),
		Name:     stringField(rec.Fields, "name"),
		Company:  stringField(rec.Fields, "company"),
		Source:   stringField(rec.Fields, "source"),
		Status:   stringField(rec.Fields, "status"),
		Tags:     tagsField(rec.Fields, "tags"),
		LastStep: stringField(rec.Fields, "lastStep"),
		NextDue:  timeField(rec.Fields, "nextDue"),
		Notes:    stringField(rec.Fields, "notes"),
	}
}

func taskFromRecord(rec record) *entity.Task {
	return &entity.Task{
		ID:      rec.ID,
		LeadID:  stringField(rec.Fields, "leadId"),
		Channel: stringField(rec.Fields, "channel"),
		Action:  stringField(rec.Fields, "action"),
		Content: stringField(rec.Fields, "content"),
		Due:     timeField(rec.Fields, "due"),
		Status:  stringField(rec.Fields, "status"),
	}
}
