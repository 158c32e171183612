package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"support-router/internal/domain"
)

// DecisionSink receives finalized routing decisions for asynchronous
// persistence. Implementations must not block the caller.
type DecisionSink interface {
	Enqueue(decision *domain.RoutingDecision)
}

// RouteTicketUsecase composes the knowledge retriever and the request
// classifier into the final escalate-or-resolve decision.
type RouteTicketUsecase interface {
	Execute(ctx context.Context, query string, tc domain.TicketContext) (*domain.RoutingDecision, error)
	GetDecision(ctx context.Context, ticketID string) (*domain.RoutingDecision, error)
}

type routeTicketUsecase struct {
	retriever    RetrieveKnowledgeUsecase
	classifier   ClassifyTicketUsecase
	decisionRepo domain.DecisionRepository
	sink         DecisionSink
	cache        *lru.Cache[string, *domain.RoutingDecision]
	logger       *slog.Logger
	now          func() time.Time
}

// RouteTicketOption customizes the route usecase.
type RouteTicketOption func(*routeTicketUsecase)

// WithDecisionSink attaches an asynchronous persistence sink.
func WithDecisionSink(sink DecisionSink) RouteTicketOption {
	return func(u *routeTicketUsecase) { u.sink = sink }
}

// WithDecisionRepository attaches a repository for decision lookups.
func WithDecisionRepository(repo domain.DecisionRepository) RouteTicketOption {
	return func(u *routeTicketUsecase) { u.decisionRepo = repo }
}

// NewRouteTicketUsecase creates the escalation policy composition point.
// cacheSize bounds the in-memory decision cache used for idempotent
// re-reads by ticket ID.
func NewRouteTicketUsecase(
	retriever RetrieveKnowledgeUsecase,
	classifier ClassifyTicketUsecase,
	cacheSize int,
	logger *slog.Logger,
	opts ...RouteTicketOption,
) (RouteTicketUsecase, error) {
	cache, err := lru.New[string, *domain.RoutingDecision](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create decision cache: %w", err)
	}

	u := &routeTicketUsecase{
		retriever:  retriever,
		classifier: classifier,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

func (u *routeTicketUsecase) Execute(ctx context.Context, query string, tc domain.TicketContext) (*domain.RoutingDecision, error) {
	if tc.TicketID == "" {
		tc.TicketID = uuid.NewString()
	}

	// Both signals are independent and share no mutable state, so they
	// run in parallel.
	var (
		retrieval      domain.RetrievalResult
		classification domain.ClassificationResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		retrieval = u.retriever.Execute(gctx, query, tc)
		return nil
	})
	g.Go(func() error {
		classification = u.classifier.Execute(gctx, query, tc)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to evaluate routing signals: %w", err)
	}

	decision := &domain.RoutingDecision{
		DecisionID:     uuid.NewString(),
		TicketID:       tc.TicketID,
		Escalate:       classification.RequiresEscalation || retrieval.Escalate,
		Classification: classification,
		Retrieval:      retrieval,
		DecidedAt:      u.now(),
	}

	u.cache.Add(decision.TicketID, decision)
	if u.sink != nil {
		u.sink.Enqueue(decision)
	}

	u.logger.Info("routing_decision_made",
		slog.String("decision_id", decision.DecisionID),
		slog.String("ticket_id", decision.TicketID),
		slog.Bool("escalate", decision.Escalate),
		slog.String("category", string(classification.Category)),
		slog.String("confidence_level", string(retrieval.ConfidenceLevel)),
		slog.Any("recommended_agents", classification.RecommendedAgents))

	return decision, nil
}

// GetDecision returns a previously made decision, preferring the bounded
// in-memory cache over the audit store.
func (u *routeTicketUsecase) GetDecision(ctx context.Context, ticketID string) (*domain.RoutingDecision, error) {
	if decision, ok := u.cache.Get(ticketID); ok {
		return decision, nil
	}
	if u.decisionRepo == nil {
		return nil, nil
	}
	decision, err := u.decisionRepo.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to load decision: %w", err)
	}
	return decision, nil
}
