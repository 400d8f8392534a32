package sequence

import (
	"fmt"
	"strings"
	"time"

	"github.com/summitpeak/outreach-agent/internal/entity"
)

// Campaign identifiers accepted by the start-campaign endpoint.
const (
	CampaignSeller   = "seller_outreach"
	CampaignInvestor = "investor_outreach"
)

// Content is the rendered output of one step for one lead.
// Email steps fill Subject and HTML; other channels fill TaskContent.
type Content struct {
	Subject     string
	HTML        string
	TaskContent string
}

// Step is one planned touch within a sequence. Declaration order is
// enrollment order; downstream logic indexes steps positionally and
// never re-sorts by offset.
type Step struct {
	OffsetDays int
	Channel    string
	Name       string
	Build      func(lead entity.Lead) Content
}

// DueAt computes the step's due instant for a given enrollment time.
func (s Step) DueAt(enrolledAt time.Time) time.Time {
	return enrolledAt.Add(time.Duration(s.OffsetDays) * 24 * time.Hour)
}

// Action infers the operator action from the step name.
func (s Step) Action() string {
	switch {
	case strings.Contains(s.Name, "connect"):
		return entity.ActionConnect
	case strings.Contains(s.Name, "post"):
		return entity.ActionPost
	default:
		return entity.ActionMessage
	}
}

// EmailSteps filters a sequence down to its email-channel steps,
// preserving order.
func EmailSteps(steps []Step) []Step {
	var out []Step
	for _, s := range steps {
		if s.Channel == entity.ChannelEmail {
			out = append(out, s)
		}
	}
	return out
}

// Catalog holds the static sequences, parameterized by the booking link
// embedded in step content.
type Catalog struct {
	seller   []Step
	investor []Step
}

func NewCatalog(bookingLink string) *Catalog {
	return &Catalog{
		seller:   sellerSequence(bookingLink),
		investor: investorSequence(bookingLink),
	}
}

// ByCampaign returns the sequence for an explicit campaign identifier.
// ok is false for identifiers outside the closed set.
func (c *Catalog) ByCampaign(campaign string) ([]Step, bool) {
	switch campaign {
	case CampaignSeller:
		return c.seller, true
	case CampaignInvestor:
		return c.investor, true
	default:
		return nil, false
	}
}

// For selects a sequence from the lead's tags: any comma-joined tag
// string containing "investor" (case-insensitive) picks the investor
// sequence, everything else the seller sequence.
func (c *Catalog) For(lead *entity.Lead) []Step {
	if strings.Contains(strings.ToLower(lead.TagString()), "investor") {
		return c.investor
	}
	return c.seller
}

func sellerSequence(bookingLink string) []Step {
	return []Step{
		{
			OffsetDays: 0, Channel: entity.ChannelEmail, Name: "seller_email_1",
			Build: func(l entity.Lead) Content {
				return Content{
					Subject: fmt.Sprintf("Quick question about %s Utah property", companyPossessive(l)),
					HTML: fmt.Sprintf(
						"<p>Hey %s — Elliot here with Summit Peak Properties.</p>"+
							"<p>We buy Utah houses as-is for cash with flexible closing. Would you be open to a short chat?</p>"+
							`<p><a href="%s">Grab a 30-min slot</a> or reply with a time that works.</p>`,
						nameOr(l, "there"), bookingLink),
				}
			},
		},
		{
			OffsetDays: 3, Channel: entity.ChannelLinkedIn, Name: "li_connect",
			Build: func(l entity.Lead) Content {
				return Content{
					TaskContent: fmt.Sprintf(
						`LinkedIn: connect with %s — "I help UT owners sell as-is, quick. Open to a short call? %s"`,
						nameOrEmail(l), bookingLink),
				}
			},
		},
		{
			OffsetDays: 6, Channel: entity.ChannelEmail, Name: "seller_email_2",
			Build: func(l entity.Lead) Content {
				return Content{
					Subject: "Any interest in a no-obligation offer?",
					HTML: fmt.Sprintf(
						"<p>Following up, %s. We can give a clear cash offer — no repairs or fees.</p>"+
							`<p>Open to a quick walkthrough? <a href="%s">Book here</a>.</p>`+
							"<p>If now's not the time, just say so and I'll close your file.</p>",
						l.Name, bookingLink),
				}
			},
		},
		{
			OffsetDays: 9, Channel: entity.ChannelFacebook, Name: "fb_group_post_invite",
			Build: func(entity.Lead) Content {
				return Content{
					TaskContent: fmt.Sprintf(
						`Facebook Group: schedule a post offering a free "sell-as-is" consult. CTA: %s`,
						bookingLink),
				}
			},
		},
	}
}

func investorSequence(bookingLink string) []Step {
	return []Step{
		{
			OffsetDays: 0, Channel: entity.ChannelEmail, Name: "investor_email_1",
			Build: func(l entity.Lead) Content {
				return Content{
					Subject: "Off-market Utah deals (as-is, quick close)",
					HTML: fmt.Sprintf(
						"<p>Hi %s, I'm Elliot (Summit Peak Properties). We source off-market Utah properties.</p>"+
							"<p>Want on the VIP list? I send 1-2 vetted deals/week.</p>"+
							`<p><a href="%s">Book 30-min</a> to share your buy box, or reply with criteria.</p>`,
						l.Name, bookingLink),
				}
			},
		},
		{
			OffsetDays: 4, Channel: entity.ChannelLinkedIn, Name: "li_followup",
			Build: func(l entity.Lead) Content {
				return Content{
					TaskContent: fmt.Sprintf(
						`LinkedIn: message %s — "We get consistent off-market deals in UT. Want ones that match your buy box? Quick chat: %s"`,
						nameOrEmail(l), bookingLink),
				}
			},
		},
		{
			OffsetDays: 7, Channel: entity.ChannelEmail, Name: "investor_email_2",
			Build: func(entity.Lead) Content {
				return Content{
					Subject: "What's your buy box?",
					HTML: fmt.Sprintf(
						"<p>To send the right inventory, can you share: neighborhoods, price cap, beds/baths, rehab tolerance, target yield?</p>"+
							`<p>Fastest is a quick call: <a href="%s">book here</a>.</p>`,
						bookingLink),
				}
			},
		},
	}
}

func nameOr(l entity.Lead, fallback string) string {
	if l.Name != "" {
		return l.Name
	}
	return fallback
}

func nameOrEmail(l entity.Lead) string {
	if l.Name != "" {
		return l.Name
	}
	return l.Email
}

func companyPossessive(l entity.Lead) string {
	if l.Company != "" {
		return l.Company + "'s"
	}
	return "your"
}
