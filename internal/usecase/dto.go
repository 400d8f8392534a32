package usecase

import (
	"encoding/json"
	"strings"
)

// StringList accepts either a JSON array of strings or a single
// comma-separated string, which is how lead tags arrive from forms.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*s = arr
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}

	var out []string
	for _, part := range strings.Split(single, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*s = out
	return nil
}

type LeadInput struct {
	Name    string     `json:"name,omitempty"`
	Email   string     `json:"email"`
	Company string     `json:"company,omitempty"`
	Source  string     `json:"source,omitempty"`
	Tags    StringList `json:"tags,omitempty"`
}

type StartCampaignInput struct {
	Lead     LeadInput `json:"lead"`
	Campaign string    `json:"campaign"`
}

type StartCampaignOutput struct {
	LeadID string
	Steps  int
}
