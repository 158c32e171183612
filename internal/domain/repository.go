package domain

import "context"

// ArticleRepository loads the knowledge corpus. The engine reads the
// corpus once at construction; implementations own any refresh policy.
type ArticleRepository interface {
	ListArticles(ctx context.Context) ([]Article, error)
	UpsertArticle(ctx context.Context, article Article) error
}

// DecisionRepository persists routing decisions. It is a write-mostly
// audit sink; GetByTicketID exists for idempotent re-reads.
type DecisionRepository interface {
	InsertDecision(ctx context.Context, decision *RoutingDecision) error
	GetByTicketID(ctx context.Context, ticketID string) (*RoutingDecision, error)
}
