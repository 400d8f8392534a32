package worker

import (
	"context"
	"log"
	"time"

	"github.com/summitpeak/outreach-agent/internal/infra/http/middleware"
)

type DispatchExecutor interface {
	Execute(ctx context.Context) error
}

// DispatchWorker wakes up on a fixed interval and runs one dispatch
// cycle. Cycles run to completion of their fetched batch; overlapping
// cycles are tolerated rather than locked out.
type DispatchWorker struct {
	dispatch     DispatchExecutor
	tickInterval time.Duration
	cycleTimeout time.Duration
}

func NewDispatchWorker(dispatch DispatchExecutor, tickInterval time.Duration) *DispatchWorker {
	return &DispatchWorker{
		dispatch:     dispatch,
		tickInterval: tickInterval,
		cycleTimeout: 2 * time.Minute,
	}
}

func (w *DispatchWorker) Start(ctx context.Context) {
	log.Printf("🕒 Dispatch worker started (every %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Dispatch worker stopped")
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *DispatchWorker) runCycle(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, w.cycleTimeout)
	defer cancel()

	if err := w.dispatch.Execute(cctx); err != nil {
		log.Printf("❌ Dispatch cycle failed: %v", err)
	}
	middleware.RecordDispatchCycle()
}
