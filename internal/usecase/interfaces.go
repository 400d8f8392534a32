package usecase

import (
	"context"

	"github.com/summitpeak/outreach-agent/internal/infra/queue"
)

type EmailServiceInterface interface {
	Send(to, subject, html string) error
}

type EventProducerInterface interface {
	PublishEvent(ctx context.Context, event queue.OutreachEvent) error
}
