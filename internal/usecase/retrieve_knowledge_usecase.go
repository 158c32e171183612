package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"support-router/internal/domain"
)

// RetrieveKnowledgeUsecase scores a query against the knowledge corpus,
// buckets the result into a confidence level, and decides whether the
// request must escalate to a human.
//
// Degraded inputs (empty query, empty corpus, malformed articles) never
// produce an error; they collapse to the NONE/escalate outcome.
type RetrieveKnowledgeUsecase interface {
	Execute(ctx context.Context, query string, tc domain.TicketContext) domain.RetrievalResult
	CorpusSize() int
}

type retrieveKnowledgeUsecase struct {
	corpus []domain.Article
	config RetrievalConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewRetrieveKnowledgeUsecase builds the retriever over an immutable
// corpus snapshot. The slice is copied so later caller mutations cannot
// leak into concurrent retrievals.
func NewRetrieveKnowledgeUsecase(corpus []domain.Article, config RetrievalConfig, logger *slog.Logger) RetrieveKnowledgeUsecase {
	return &retrieveKnowledgeUsecase{
		corpus: append([]domain.Article(nil), corpus...),
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

func (u *retrieveKnowledgeUsecase) CorpusSize() int {
	return len(u.corpus)
}

func (u *retrieveKnowledgeUsecase) Execute(ctx context.Context, query string, tc domain.TicketContext) domain.RetrievalResult {
	scored := make([]domain.ScoredArticle, 0, len(u.corpus))
	for _, article := range u.corpus {
		scored = append(scored, domain.ScoreArticle(article, query))
	}

	// Ties keep corpus order: the tie-break is deliberately the stable
	// ingestion order, not alphabetical or random.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Relevance > scored[j].Relevance
	})

	top := scored
	if len(top) > u.config.TopArticles {
		top = top[:u.config.TopArticles]
	}

	level := u.confidenceLevel(top)
	escalate, reason := u.checkEscalation(top, level, query, tc)
	response := renderResponse(top, level, escalate)

	result := domain.RetrievalResult{
		Articles:         top,
		ConfidenceLevel:  level,
		Escalate:         escalate,
		EscalationReason: reason,
		Response:         response,
		Metadata:         u.buildMetadata(top, query, tc),
	}

	u.logger.Info("knowledge_retrieval_completed",
		slog.String("ticket_id", tc.TicketID),
		slog.Int("corpus_size", len(u.corpus)),
		slog.Int("articles_retrieved", len(top)),
		slog.String("confidence_level", string(level)),
		slog.Bool("escalate", escalate))

	return result
}

// confidenceLevel bands the maximum confidence score of the top articles.
func (u *retrieveKnowledgeUsecase) confidenceLevel(top []domain.ScoredArticle) domain.ConfidenceLevel {
	if len(top) == 0 {
		return domain.ConfidenceNone
	}

	maxConfidence := 0.0
	for _, a := range top {
		if a.Confidence > maxConfidence {
			maxConfidence = a.Confidence
		}
	}

	switch {
	case maxConfidence >= u.config.HighBand:
		return domain.ConfidenceHigh
	case maxConfidence >= u.config.MediumBand:
		return domain.ConfidenceMedium
	case maxConfidence >= u.config.LowBand:
		return domain.ConfidenceLow
	default:
		return domain.ConfidenceNone
	}
}

// checkEscalation applies the escalation rules in order; the first match
// wins.
func (u *retrieveKnowledgeUsecase) checkEscalation(
	top []domain.ScoredArticle,
	level domain.ConfidenceLevel,
	query string,
	tc domain.TicketContext,
) (bool, string) {
	if level == domain.ConfidenceNone {
		return true, "no relevant articles found in the knowledge base"
	}

	if len(top) > 0 && top[0].Confidence < u.config.EscalationFloor {
		return true, fmt.Sprintf("low confidence (%.2f) below escalation floor (%.2f)",
			top[0].Confidence, u.config.EscalationFloor)
	}

	if containsEscalationKeyword(query) {
		return true, "escalation keyword detected in query"
	}

	if tc.UserBlocked {
		return true, "user account is blocked"
	}
	if tc.Premium() && level == domain.ConfidenceLow {
		return true, "premium user with low confidence requires escalation"
	}

	return false, "sufficient knowledge base coverage available"
}

func containsEscalationKeyword(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range domain.EscalationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (u *retrieveKnowledgeUsecase) buildMetadata(top []domain.ScoredArticle, query string, tc domain.TicketContext) domain.RetrievalMetadata {
	md := domain.RetrievalMetadata{
		TotalArticlesSearched: len(u.corpus),
		ArticlesRetrieved:     len(top),
		RetrievedAt:           u.now().Format(time.RFC3339),
		QueryLength:           len(query),
		TicketContext:         tc,
	}
	if len(top) > 0 {
		md.HighestRelevance = top[0].Relevance
		sum := 0.0
		for _, a := range top {
			sum += a.Confidence
		}
		md.AverageConfidence = sum / float64(len(top))
	}
	return md
}
