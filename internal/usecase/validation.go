package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/summitpeak/outreach-agent/internal/sequence"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func joinValidationErrors(errs []ValidationError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

func ValidateStartCampaignInput(input StartCampaignInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Lead.Email) == "" {
		errors = append(errors, ValidationError{"lead.email", "is required"})
	} else if _, err := mail.ParseAddress(input.Lead.Email); err != nil {
		errors = append(errors, ValidationError{"lead.email", "is invalid"})
	}

	switch input.Campaign {
	case "":
		errors = append(errors, ValidationError{"campaign", "is required"})
	case sequence.CampaignSeller, sequence.CampaignInvestor:
	default:
		errors = append(errors, ValidationError{"campaign",
			fmt.Sprintf("must be %s or %s", sequence.CampaignSeller, sequence.CampaignInvestor)})
	}

	return errors
}
