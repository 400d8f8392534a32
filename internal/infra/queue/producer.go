package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Outreach event types.
const (
	EventLeadEnrolled     = "lead_enrolled"
	EventEmailSent        = "email_sent"
	EventLeadBooked       = "lead_booked"
	EventLeadUnsubscribed = "lead_unsubscribed"
)

// OutreachEvent is published after state changes so downstream tooling
// (CRM sync, analytics) can react. Delivery is fire-and-forget.
type OutreachEvent struct {
	Type      string    `json:"type"`
	LeadID    string    `json:"lead_id"`
	Email     string    `json:"email"`
	Campaign  string    `json:"campaign,omitempty"`
	Step      string    `json:"step,omitempty"`
	SentCount int       `json:"sent_count,omitempty"`
	At        time.Time `json:"at"`
}

type ProducerInterface interface {
	PublishEvent(ctx context.Context, event OutreachEvent) error
}

type Producer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *Producer {
	return &Producer{Ch: ch}
}

func (p *Producer) PublishEvent(ctx context.Context, event OutreachEvent) error {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish outreach event: %w", err)
	}

	return nil
}
