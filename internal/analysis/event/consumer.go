package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/entity"
)

// Auditor records that an analysis record was created.
type Auditor interface {
	Audit(ctx context.Context, event entity.RecordCreatedEvent) error
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
}

// AuditConsumer drains the bus and hands each event to the auditor,
// deduplicating by event ID and retrying with exponential backoff.
type AuditConsumer struct {
	bus         *Bus
	auditor     Auditor
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        sync.Map
	wg          sync.WaitGroup
}

func NewAuditConsumer(bus *Bus, auditor Auditor, cfg ConsumerConfig) *AuditConsumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 4
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}

	return &AuditConsumer{
		bus:         bus,
		auditor:     auditor,
		workers:     workers,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

func (c *AuditConsumer) Start() {
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker()
	}
}

func (c *AuditConsumer) Stop(ctx context.Context) error {
	if c.bus != nil {
		c.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *AuditConsumer) worker() {
	defer c.wg.Done()

	for event := range c.bus.Subscribe() {
		c.processEvent(event)
	}
}

func (c *AuditConsumer) processEvent(event entity.RecordCreatedEvent) {
	if c.auditor == nil {
		return
	}

	if event.EventID != "" {
		if _, loaded := c.seen.LoadOrStore(event.EventID, struct{}{}); loaded {
			slog.Info("skip duplicate record created event", "event_id", event.EventID, "record_id", event.RecordID)
			return
		}
	}

	backoff := c.baseBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.auditor.Audit(context.Background(), event)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.Error("failed to audit record creation after retries", "event_id", event.EventID, "record_id", event.RecordID, "error", err)
			return
		}

		if !sleepBackoff(backoff) {
			return
		}
		backoff *= 2
	}
}

func sleepBackoff(d time.Duration) bool {
	if d <= 0 {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	<-timer.C
	return true
}

// LogAuditor writes the audit trail to the structured log.
type LogAuditor struct{}

func (LogAuditor) Audit(ctx context.Context, event entity.RecordCreatedEvent) error {
	if event.EventID == "" {
		return errors.New("missing event id")
	}

	slog.InfoContext(ctx, "analysis record created",
		"event_id", event.EventID,
		"record_id", event.RecordID,
		"owner", event.Owner,
		"file_name", event.FileName,
		"total_count", event.TotalCount,
	)
	return nil
}
