package usecase

import (
	"context"
	"log/slog"
	"time"

	"support-router/internal/domain"
)

// ClassifyTicketUsecase derives the category/priority/complexity triple,
// urgency score, and routing recommendation for a ticket from its text
// and requester metadata. Pure computation; never fails.
type ClassifyTicketUsecase interface {
	Execute(ctx context.Context, text string, tc domain.TicketContext) domain.ClassificationResult
}

type classifyTicketUsecase struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewClassifyTicketUsecase creates the classifier.
func NewClassifyTicketUsecase(logger *slog.Logger) ClassifyTicketUsecase {
	return &classifyTicketUsecase{logger: logger, now: time.Now}
}

func (u *classifyTicketUsecase) Execute(ctx context.Context, text string, tc domain.TicketContext) domain.ClassificationResult {
	category := domain.ClassifyCategory(text)
	priority := domain.ClassifyPriority(text, tc, u.now())
	complexity := domain.ClassifyComplexity(text)
	urgency := domain.UrgencyScore(text, priority, tc)
	escalate := domain.RequiresEscalation(text, priority, urgency)

	result := domain.ClassificationResult{
		Category:                category,
		Priority:                priority,
		Complexity:              complexity,
		UrgencyScore:            urgency,
		RequiresEscalation:      escalate,
		EstimatedResolutionTime: domain.EstimateResolutionTime(category, complexity, priority),
		RecommendedAgents:       domain.RecommendAgents(category, complexity, escalate),
		RoutingReason:           domain.RoutingReason(category, priority, complexity, escalate),
	}

	u.logger.Info("ticket_classified",
		slog.String("ticket_id", tc.TicketID),
		slog.String("category", string(category)),
		slog.String("priority", string(priority)),
		slog.String("complexity", string(complexity)),
		slog.Float64("urgency_score", urgency),
		slog.Bool("requires_escalation", escalate))

	return result
}
