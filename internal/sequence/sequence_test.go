package sequence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitpeak/outreach-agent/internal/entity"
)

const testBookingLink = "https://calendly.com/summitpeak/30min"

func TestCatalogSellerSequenceOrder(t *testing.T) {
	catalog := NewCatalog(testBookingLink)

	steps, ok := catalog.ByCampaign(CampaignSeller)
	require.True(t, ok)
	require.Len(t, steps, 4)

	assert.Equal(t, []int{0, 3, 6, 9}, offsets(steps))
	assert.Equal(t, entity.ChannelEmail, steps[0].Channel)
	assert.Equal(t, entity.ChannelLinkedIn, steps[1].Channel)
	assert.Equal(t, entity.ChannelEmail, steps[2].Channel)
	assert.Equal(t, entity.ChannelFacebook, steps[3].Channel)
}

func TestCatalogInvestorSequenceOrder(t *testing.T) {
	catalog := NewCatalog(testBookingLink)

	steps, ok := catalog.ByCampaign(CampaignInvestor)
	require.True(t, ok)
	require.Len(t, steps, 3)

	assert.Equal(t, []int{0, 4, 7}, offsets(steps))
}

func TestCatalogUnknownCampaign(t *testing.T) {
	catalog := NewCatalog(testBookingLink)

	_, ok := catalog.ByCampaign("partner_outreach")
	assert.False(t, ok)
}

func TestCatalogForSelectsByTags(t *testing.T) {
	catalog := NewCatalog(testBookingLink)

	tests := []struct {
		name     string
		tags     []string
		wantLen  int
		wantName string
	}{
		{"no tags", nil, 4, "seller_email_1"},
		{"unrelated tags", []string{"utah", "vip"}, 4, "seller_email_1"},
		{"investor tag", []string{"Investor"}, 3, "investor_email_1"},
		{"investor among others", []string{"vip", "INVESTOR", "utah"}, 3, "investor_email_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := &entity.Lead{Email: "a@x.com", Tags: tt.tags}
			steps := catalog.For(lead)
			require.Len(t, steps, tt.wantLen)
			assert.Equal(t, tt.wantName, steps[0].Name)
		})
	}
}

func TestStepAction(t *testing.T) {
	assert.Equal(t, entity.ActionConnect, Step{Name: "li_connect"}.Action())
	assert.Equal(t, entity.ActionPost, Step{Name: "fb_group_post_invite"}.Action())
	assert.Equal(t, entity.ActionMessage, Step{Name: "li_followup"}.Action())
}

func TestStepDueAt(t *testing.T) {
	enrolled := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	step := Step{OffsetDays: 3}

	assert.Equal(t, enrolled.Add(72*time.Hour), step.DueAt(enrolled))
}

func TestEmailSteps(t *testing.T) {
	catalog := NewCatalog(testBookingLink)

	seller, _ := catalog.ByCampaign(CampaignSeller)
	emails := EmailSteps(seller)
	require.Len(t, emails, 2)
	assert.Equal(t, "seller_email_1", emails[0].Name)
	assert.Equal(t, "seller_email_2", emails[1].Name)

	investor, _ := catalog.ByCampaign(CampaignInvestor)
	assert.Len(t, EmailSteps(investor), 2)
}

func TestSellerEmailOneFallbacks(t *testing.T) {
	catalog := NewCatalog(testBookingLink)
	seller, _ := catalog.ByCampaign(CampaignSeller)

	content := seller[0].Build(entity.Lead{Email: "a@x.com"})
	assert.Equal(t, "Quick question about your Utah property", content.Subject)
	assert.Contains(t, content.HTML, "Hey there")
	assert.Contains(t, content.HTML, testBookingLink)

	content = seller[0].Build(entity.Lead{Email: "a@x.com", Name: "Dana", Company: "Acme"})
	assert.Equal(t, "Quick question about Acme's Utah property", content.Subject)
	assert.Contains(t, content.HTML, "Hey Dana")
}

func TestTaskContentFallsBackToEmail(t *testing.T) {
	catalog := NewCatalog(testBookingLink)
	seller, _ := catalog.ByCampaign(CampaignSeller)

	content := seller[1].Build(entity.Lead{Email: "a@x.com"})
	assert.Contains(t, content.TaskContent, "connect with a@x.com")
	assert.Empty(t, content.Subject)

	content = seller[1].Build(entity.Lead{Email: "a@x.com", Name: "Dana"})
	assert.Contains(t, content.TaskContent, "connect with Dana")
}

func TestBuildIsDeterministic(t *testing.T) {
	catalog := NewCatalog(testBookingLink)
	seller, _ := catalog.ByCampaign(CampaignSeller)
	lead := entity.Lead{Email: "a@x.com", Name: "Dana"}

	first := seller[0].Build(lead)
	second := seller[0].Build(lead)
	assert.Equal(t, first, second)
}

func offsets(steps []Step) []int {
	out := make([]int, len(steps))
	for i, s := range steps {
		out[i] = s.OffsetDays
	}
	return out
}
