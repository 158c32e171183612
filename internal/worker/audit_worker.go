package worker

import (
	"context"
	"log/slog"
	"time"

	"support-router/internal/domain"
)

const (
	writeTimeout   = 10 * time.Second
	initialBackoff = 1 * time.Second
	maxBackoff     = 1 * time.Minute
	maxAttempts    = 3
)

// AuditWorker drains routing decisions off an in-memory queue and writes
// them to the audit store. Enqueue never blocks the request path: when
// the queue is full the decision is dropped with a warning, because a
// slow audit sink must not back-pressure routing.
type AuditWorker struct {
	decisionRepo domain.DecisionRepository
	queue        chan *domain.RoutingDecision
	logger       *slog.Logger
	stopChan     chan struct{}
	doneChan     chan struct{}
}

func NewAuditWorker(decisionRepo domain.DecisionRepository, queueSize int, logger *slog.Logger) *AuditWorker {
	return &AuditWorker{
		decisionRepo: decisionRepo,
		queue:        make(chan *domain.RoutingDecision, queueSize),
		logger:       logger,
		stopChan:     make(chan struct{}),
		doneChan:     make(chan struct{}),
	}
}

func (w *AuditWorker) Start() {
	w.logger.Info("Starting AuditWorker")
	go w.run()
}

// Stop drains the queue and waits for the writer to finish.
func (w *AuditWorker) Stop() {
	w.logger.Info("Stopping AuditWorker")
	close(w.stopChan)
	<-w.doneChan
}

// Enqueue hands a decision to the worker without blocking.
func (w *AuditWorker) Enqueue(decision *domain.RoutingDecision) {
	select {
	case w.queue <- decision:
	default:
		w.logger.Warn("audit_queue_full_decision_dropped",
			slog.String("decision_id", decision.DecisionID),
			slog.String("ticket_id", decision.TicketID))
	}
}

func (w *AuditWorker) run() {
	defer close(w.doneChan)

	for {
		select {
		case decision := <-w.queue:
			w.persist(decision)
		case <-w.stopChan:
			// Drain whatever is left before exiting.
			for {
				select {
				case decision := <-w.queue:
					w.persist(decision)
				default:
					return
				}
			}
		}
	}
}

func (w *AuditWorker) persist(decision *domain.RoutingDecision) {
	backoff := initialBackoff
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := w.decisionRepo.InsertDecision(ctx, decision)
		cancel()

		if err == nil {
			w.logger.Debug("decision_persisted",
				slog.String("decision_id", decision.DecisionID),
				slog.Int("attempt", attempt))
			return
		}

		w.logger.Error("failed to persist decision",
			slog.String("decision_id", decision.DecisionID),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))

		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff = min(backoff*2, maxBackoff)
		}
	}
}
